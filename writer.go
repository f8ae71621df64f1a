package relaxcsv

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Writer writes records as delimiter-separated lines that a [Parser] with the
// same configuration reads back.
//
// Absent fields are written as nothing at all and empty strings as a pair of
// quotes, so a reader with KeepAbsentAsNil recovers the distinction. A value
// is quoted when it contains the separator or the quote, has surrounding
// whitespace, is empty, or ends with the start of the separator.
//
// Values that no quoting reads back unchanged are rejected with
// ErrUnwritableField: line breaks, and quoted values that end in a backslash,
// contain a backslash before the quote or follow a separator ending in one.
//
// The writes of individual records are buffered. After all data has been
// written, the client should call Flush and then check Error.
type Writer struct {
	UseCRLF bool // True to use \r\n as the line terminator

	sep          string
	quote        string
	doubledQuote string

	w   *bufio.Writer
	err error
}

// NewWriter returns a new Writer that writes to w with the separator and
// quote of cfg.
func NewWriter(w io.Writer, cfg Config) *Writer {
	quote := string(cfg.Quote)
	return &Writer{
		sep:          cfg.Separator,
		quote:        quote,
		doubledQuote: quote + quote,
		w:            bufio.NewWriter(w),
	}
}

// Write writes a single record followed by a line terminator.
// If a field is unwritable, nothing is written and the error wraps
// ErrUnwritableField; the Writer stays usable.
func (w *Writer) Write(record Record) error {
	if w.err != nil {
		return w.err
	}

	for i, field := range record {
		if field.Valid && !w.fieldWritable(field.Value, i > 0) {
			return fmt.Errorf("field %d %q: %w", i, field.Value, ErrUnwritableField)
		}
	}

	for i, field := range record {
		if i > 0 {
			if _, w.err = w.w.WriteString(w.sep); w.err != nil {
				return w.err
			}
		}
		if w.err = w.writeField(field); w.err != nil {
			return w.err
		}
	}

	return w.writeLineEnding()
}

// WriteAll writes multiple records using Write and then calls Flush.
func (w *Writer) WriteAll(records []Record) error {
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil && w.err == nil {
		w.err = err
	}
	return w.err
}

// Error reports any error that has occurred during a previous Write or Flush.
func (w *Writer) Error() error {
	return w.err
}

// writeField writes a single field, quoting if necessary.
func (w *Writer) writeField(field Field) error {
	if !field.Valid {
		return nil
	}
	if !w.fieldNeedsQuotes(field.Value) {
		_, err := w.w.WriteString(field.Value)
		return err
	}
	return w.writeQuotedField(field.Value)
}

// writeLineEnding writes the appropriate line ending.
func (w *Writer) writeLineEnding() error {
	if w.UseCRLF {
		_, w.err = w.w.WriteString("\r\n")
	} else {
		w.err = w.w.WriteByte('\n')
	}
	return w.err
}

// fieldNeedsQuotes reports whether value must be quoted to read back unchanged.
func (w *Writer) fieldNeedsQuotes(value string) bool {
	if value == "" {
		return true
	}
	if trimSpace(value) != value {
		return true
	}
	if strings.Contains(value, w.sep) || strings.Contains(value, w.quote) {
		return true
	}
	// A suffix that starts the separator would join the next separator
	// into a longer match.
	for i := 1; i < len(w.sep); i++ {
		if strings.HasSuffix(value, w.sep[:i]) {
			return true
		}
	}
	return false
}

// fieldWritable reports whether value reads back unchanged once written.
// afterSep is true when a separator precedes the field.
func (w *Writer) fieldWritable(value string, afterSep bool) bool {
	if strings.ContainsAny(value, "\r\n") {
		return false
	}
	if !w.fieldNeedsQuotes(value) {
		return true
	}
	if afterSep && strings.HasSuffix(w.sep, `\`) {
		return false
	}
	return !strings.HasSuffix(value, `\`) && !strings.Contains(value, `\`+w.quote)
}

// writeQuotedField writes value between quotes with inner quotes doubled.
func (w *Writer) writeQuotedField(value string) error {
	if _, err := w.w.WriteString(w.quote); err != nil {
		return err
	}
	if _, err := w.w.WriteString(strings.ReplaceAll(value, w.quote, w.doubledQuote)); err != nil {
		return err
	}
	_, err := w.w.WriteString(w.quote)
	return err
}
