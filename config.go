package csvrecord

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the file form of the settings a program passes to Load and Dump.
//
//	dialect:
//	  comma: ";"
//	  quote: "\""
//	  line_terminator: lf
//	  always_quote: false
//	schema: weather.schema.yaml
type Config struct {
	Format DialectConfig `mapstructure:"dialect"`

	// SchemaFile is the path of a YAML schema document, relative to the
	// config file's directory unless absolute.
	SchemaFile string `mapstructure:"schema"`

	dir string
}

// DialectConfig is the dialect section of Config.
type DialectConfig struct {
	Comma          string `mapstructure:"comma"`
	Quote          string `mapstructure:"quote"`
	LineTerminator string `mapstructure:"line_terminator"`
	AlwaysQuote    bool   `mapstructure:"always_quote"`
}

// LoadConfig reads a YAML config file. Unset dialect settings keep the
// DefaultDialect values.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	def := DefaultDialect()
	v.SetDefault("dialect.comma", string(def.Comma))
	v.SetDefault("dialect.quote", string(def.Quote))
	v.SetDefault("dialect.line_terminator", "crlf")
	v.SetDefault("dialect.always_quote", def.AlwaysQuote)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.dir = filepath.Dir(path)
	return &cfg, nil
}

// Dialect validates the dialect section and converts it.
func (c *Config) Dialect() (Dialect, error) {
	comma, err := singleByte("comma", c.Format.Comma)
	if err != nil {
		return Dialect{}, err
	}
	quote, err := singleByte("quote", c.Format.Quote)
	if err != nil {
		return Dialect{}, err
	}
	if comma == quote || comma == '\r' || comma == '\n' {
		return Dialect{}, fmt.Errorf("config: invalid comma %q", comma)
	}

	var crlf bool
	switch strings.ToLower(c.Format.LineTerminator) {
	case "", "crlf", "\r\n":
		crlf = true
	case "lf", "\n":
	default:
		return Dialect{}, fmt.Errorf("config: unknown line_terminator %q", c.Format.LineTerminator)
	}

	return Dialect{
		Comma:       comma,
		Quote:       quote,
		UseCRLF:     crlf,
		AlwaysQuote: c.Format.AlwaysQuote,
	}, nil
}

// Schema loads the schema document the config points to.
func (c *Config) Schema() (Schema, error) {
	if c.SchemaFile == "" {
		return nil, fmt.Errorf("config: no schema file set")
	}
	path := c.SchemaFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return ParseSchema(data)
}

// Options returns the Load/Dump options the config describes.
func (c *Config) Options() ([]Option, error) {
	d, err := c.Dialect()
	if err != nil {
		return nil, err
	}
	return []Option{WithDialect(d)}, nil
}

func singleByte(key, s string) (byte, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("config: %s must be a single byte, got %q", key, s)
	}
	return s[0], nil
}
