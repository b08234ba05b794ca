package csvrecord_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oleg578/csvrecord"
)

const weatherSchema = `
name: weather
shape: row
fields:
  - name: station
    type: string
    trim: true
  - name: temp
    type: float
    precision: 1
  - name: day
    type: time
    layout: "2006-01-02"
`

func TestParseSchemaRow(t *testing.T) {
	t.Parallel()

	s, err := csvrecord.ParseSchema([]byte(weatherSchema))
	require.NoError(t, err)
	require.IsType(t, &csvrecord.RowSchema{}, s)
	assert.Equal(t, "weather", s.Name())
	assert.Equal(t, csvrecord.ShapeRow, s.Shape())
	assert.Equal(t, []string{"station", "temp", "day"}, s.FieldNames())

	rows, err := csvrecord.LoadRows(strings.NewReader("day,temp,station\n2024-05-01,21.26, north \n"), s.(*csvrecord.RowSchema))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	station, err := csvrecord.Get[string](rows[0], "station")
	require.NoError(t, err)
	assert.Equal(t, "north", station)

	assert.Equal(t, []string{"north", "21.3", "2024-05-01"}, rows[0].SerializedValues())
}

func TestParseSchemaColumns(t *testing.T) {
	t.Parallel()

	doc := `
name: series
shape: columns
fields:
  - name: id
    type: "[]uuid"
  - name: hits
    type: "list[int64]"
`
	s, err := csvrecord.ParseSchema([]byte(doc))
	require.NoError(t, err)
	require.IsType(t, &csvrecord.ColumnSchema{}, s)
	assert.Equal(t, csvrecord.ShapeColumn, s.Shape())

	for _, f := range s.Fields() {
		assert.True(t, f.Type().IsSequence(), f.Name())
	}

	text := "id,hits\n6ba7b810-9dad-11d1-80b4-00c04fd430c8,10\n6ba7b811-9dad-11d1-80b4-00c04fd430c8,20\n"
	cols, err := csvrecord.LoadColumns(strings.NewReader(text), s.(*csvrecord.ColumnSchema))
	require.NoError(t, err)

	hits, err := csvrecord.ColumnOf[int64](cols, "hits")
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20}, hits)
}

func TestParseSchemaErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "notYAML", doc: "name: [unclosed"},
		{name: "noFields", doc: "name: empty\n"},
		{name: "unknownType", doc: "name: x\nfields:\n  - name: a\n    type: decimal\n"},
		{name: "unknownShape", doc: "name: x\nshape: grid\nfields:\n  - name: a\n    type: int\n"},
		{name: "sequenceInRow", doc: "name: x\nfields:\n  - name: a\n    type: \"[]int\"\n"},
		{name: "scalarInColumns", doc: "name: x\nshape: column\nfields:\n  - name: a\n    type: int\n"},
		{name: "intPrecision", doc: "name: x\nfields:\n  - name: a\n    type: int\n    precision: 1\n"},
		{name: "int64ColumnPrecision", doc: "name: x\nshape: column\nfields:\n  - name: a\n    type: \"[]int64\"\n    precision: 0\n"},
		{name: "duplicate", doc: "name: x\nfields:\n  - name: a\n    type: int\n  - name: a\n    type: int\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, err := csvrecord.ParseSchema([]byte(tc.doc))
			assert.Nil(t, s)
			assert.ErrorIs(t, err, csvrecord.ErrSchema)
		})
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("unreadable") }

func TestReadSchema(t *testing.T) {
	t.Parallel()

	s, err := csvrecord.ReadSchema(strings.NewReader(weatherSchema))
	require.NoError(t, err)
	assert.Equal(t, "weather", s.Name())

	_, err = csvrecord.ReadSchema(errReader{})
	assert.ErrorContains(t, err, "unreadable")
}

func TestSchemaDocPrecisionRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := csvrecord.ParseSchema([]byte(weatherSchema))
	require.NoError(t, err)

	text := "station,temp,day\r\nnorth,21.0,2024-05-01\r\nsouth,-3.5,2024-05-02\r\n"
	d, err := csvrecord.LoadString(text, s)
	require.NoError(t, err)

	got, err := csvrecord.DumpString(d)
	require.NoError(t, err)
	assert.Equal(t, text, got)

	again, err := csvrecord.LoadString(got, s)
	require.NoError(t, err)
	assert.Equal(t, d.Len(), again.Len())
}
