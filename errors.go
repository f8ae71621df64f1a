package relaxcsv

import (
	"errors"
	"fmt"
)

// Sentinel errors. Configuration errors are wrapped in [ConfigError],
// reader errors in [ParseError]. [Writer.Write] wraps ErrUnwritableField.
var (
	ErrEmptySeparator   = errors.New("separator must not be empty")
	ErrInvalidSeparator = errors.New("separator must be valid UTF-8")
	ErrInvalidQuote     = errors.New("quote must be a single valid rune other than backslash")
	ErrLineTooLong      = errors.New("line exceeds maximum allowed size")
	ErrUnwritableField  = errors.New("field cannot be written so that it reads back unchanged")
)

// DefaultMaxLineSize is the default maximum line length accepted by [Reader] (64MB).
const DefaultMaxLineSize = 64 * 1024 * 1024

// ConfigError reports a [Config] value that violates a precondition.
type ConfigError struct {
	Field string // Config field name
	Err   error  // Underlying error
}

// Error returns a formatted error message naming the offending field.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error for use with [errors.Is] and [errors.As].
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ParseError represents a reader failure with location information.
type ParseError struct {
	Line int   // Line where the error occurred (1-indexed)
	Err  error // Underlying error
}

// Error returns a formatted error message with location information.
func (e *ParseError) Error() string {
	return fmt.Sprintf("read error on line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error for use with [errors.Is] and [errors.As].
func (e *ParseError) Unwrap() error {
	return e.Err
}
