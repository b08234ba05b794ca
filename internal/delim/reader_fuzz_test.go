package delim

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func FuzzReaderConsistency(f *testing.F) {
	seeds := []string{
		"",
		"a,b,c\n",
		"a,\"b,b\",c\n",
		"a,\"b\nc\",d\n",
		"\"unterminated\n",
		"a\"b,c\n",
		"one\r\ntwo\r\n",
		"trailing,newline\n",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 1<<12 {
			t.Skip()
		}

		recordsManual, errManual := readRecordsSequential(input, false)
		recordsReuse, errReuse := readRecordsSequential(input, true)
		recordsAll, errAll := readRecordsAll(input)

		if !sameReaderError(errManual, errReuse) {
			t.Fatalf("reuse mismatch: errManual=%v errReuse=%v input=%q", errManual, errReuse, truncateForMessage(input))
		}
		if !sameReaderError(errManual, errAll) {
			t.Fatalf("ReadAll mismatch: errManual=%v errAll=%v input=%q", errManual, errAll, truncateForMessage(input))
		}

		if errManual == nil {
			if !recordsEqual(recordsManual, recordsReuse) {
				t.Fatalf("records mismatch with reuse:\nmanual=%v\nreuse=%v\ninput=%q", recordsManual, recordsReuse, truncateForMessage(input))
			}
			if !recordsEqual(recordsManual, recordsAll) {
				t.Fatalf("records mismatch with ReadAll:\nmanual=%v\nreadAll=%v\ninput=%q", recordsManual, recordsAll, truncateForMessage(input))
			}
		}
	})
}

// FuzzWriterRoundTrip checks that whatever the reader accepts, the writer
// re-encodes into text that reads back to the same records.
func FuzzWriterRoundTrip(f *testing.F) {
	for _, seed := range []string{"a,b\n", "\"x\"\"y\",z\r\n", "\"\"\n", "one\rtwo", "a,\"b\nc\"\n"} {
		f.Add(seed, false)
	}

	f.Fuzz(func(t *testing.T, input string, crlf bool) {
		if len(input) > 1<<12 {
			t.Skip()
		}
		r := NewReader(strings.NewReader(input))
		r.FieldsPerRecord = -1
		records, err := r.ReadAll()
		if err != nil {
			t.Skip()
		}

		var buf bytes.Buffer
		w := NewWriter(&buf)
		w.UseCRLF = crlf
		if err := w.WriteAll(records); err != nil {
			t.Fatalf("WriteAll() error = %v", err)
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("Flush() error = %v", err)
		}

		back := NewReader(&buf)
		back.FieldsPerRecord = -1
		again, err := back.ReadAll()
		if err != nil {
			t.Fatalf("re-read error = %v, output=%q", err, truncateForMessage(buf.String()))
		}
		if !recordsEqual(records, again) {
			t.Fatalf("round trip mismatch:\nfirst=%q\nagain=%q\ninput=%q", records, again, truncateForMessage(input))
		}
	})
}

func readRecordsSequential(input string, reuse bool) ([][]string, error) {
	r := NewReader(strings.NewReader(input))
	r.ReuseRecord = reuse

	var out [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, cloneStrings(rec))
	}
}

func readRecordsAll(input string) ([][]string, error) {
	r := NewReader(strings.NewReader(input))
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	copied := make([][]string, len(records))
	for i, rec := range records {
		copied[i] = cloneStrings(rec)
	}
	return copied, nil
}

func sameReaderError(a, b error) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	sigA, lineA, colA := readerErrorSignature(a)
	sigB, lineB, colB := readerErrorSignature(b)
	return sigA == sigB && lineA == lineB && colA == colB
}

func readerErrorSignature(err error) (sig string, line int, column int) {
	var perr *ParseError
	if errors.As(err, &perr) {
		switch {
		case errors.Is(perr.Err, ErrBareQuote):
			return "bare_quote", perr.Line, perr.Column
		case errors.Is(perr.Err, ErrUnterminatedQuote):
			return "unterminated_quote", perr.Line, perr.Column
		default:
			return perr.Err.Error(), perr.Line, perr.Column
		}
	}
	return err.Error(), 0, 0
}

func recordsEqual(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func truncateForMessage(s string) string {
	const max = 256
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
