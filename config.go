package relaxcsv

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Config holds the options for splitting and normalizing a line.
// A Config is copied into a [Parser] by [NewParser] and never changes afterwards.
type Config struct {
	// Separator is the field delimiter. It may be longer than one character
	// and is matched as a byte substring.
	Separator string

	// Quote is the quote character. A quote preceded by a backslash does not
	// open or close a quoted span.
	Quote rune

	// KeepAbsentAsNil reports unquoted blank fields as absent (Field.Valid == false)
	// while an explicitly quoted empty field stays an empty string.
	// When false, both are empty strings.
	KeepAbsentAsNil bool

	// Accelerate selects the bitmask scanner instead of the reference scanner.
	// Both produce identical records.
	Accelerate bool
}

// DefaultConfig returns a comma-separated, double-quoted configuration.
func DefaultConfig() Config {
	return Config{
		Separator: ",",
		Quote:     '"',
	}
}

// Validate checks the preconditions the scanner relies on.
func (c Config) Validate() error {
	if c.Separator == "" {
		return &ConfigError{Field: "separator", Err: ErrEmptySeparator}
	}
	if !utf8.ValidString(c.Separator) {
		return &ConfigError{Field: "separator", Err: ErrInvalidSeparator}
	}
	if c.Quote <= 0 || c.Quote == '\\' || !utf8.ValidRune(c.Quote) {
		return &ConfigError{Field: "quote", Err: ErrInvalidQuote}
	}
	return nil
}

// fileConfig is the YAML shape of a Config. The quote is written as a string
// so that `quote: "'"` reads naturally.
type fileConfig struct {
	Separator       *string `yaml:"separator"`
	Quote           *string `yaml:"quote"`
	KeepAbsentAsNil *bool   `yaml:"keep_absent_as_nil"`
	Accelerate      *bool   `yaml:"accelerate"`
}

// ParseConfig decodes YAML data on top of [DefaultConfig] and validates the result.
// Keys missing from data keep their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if fc.Separator != nil {
		cfg.Separator = *fc.Separator
	}
	if fc.Quote != nil {
		r, size := utf8.DecodeRuneInString(*fc.Quote)
		if size == 0 || size != len(*fc.Quote) || r == utf8.RuneError {
			return Config{}, &ConfigError{Field: "quote", Err: ErrInvalidQuote}
		}
		cfg.Quote = r
	}
	if fc.KeepAbsentAsNil != nil {
		cfg.KeepAbsentAsNil = *fc.KeepAbsentAsNil
	}
	if fc.Accelerate != nil {
		cfg.Accelerate = *fc.Accelerate
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}
