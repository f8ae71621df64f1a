package relaxcsv

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// Reader reads lines from an io.Reader and parses each one with a [Parser].
//
// Lines end at '\n'; a '\r' before it is removed. Quoted spans never cross
// lines. The exported fields can be changed before the first call to Read,
// ReadAll or Header.
type Reader struct {
	// HasHeader treats the first line as a header. Every following line is
	// parsed with the header width as its bound, so trailing separators do not
	// produce extra fields.
	HasHeader bool

	// MaxLineSize limits the length of one line, excluding its terminator.
	// It is set to DefaultMaxLineSize by NewReader.
	MaxLineSize int

	r *bufio.Reader
	p *Parser

	// Internal state
	numLine    int
	line       []byte
	header     Record
	headerRead bool
	err        error
}

// NewReader returns a new Reader that reads from r and parses with p.
func NewReader(r io.Reader, p *Parser) *Reader {
	return &Reader{
		MaxLineSize: DefaultMaxLineSize,
		r:           bufio.NewReader(r),
		p:           p,
	}
}

// Header returns the header record, reading it first if needed.
// It returns nil, nil when HasHeader is false.
func (r *Reader) Header() (Record, error) {
	if !r.HasHeader {
		return nil, nil
	}
	if err := r.readHeader(); err != nil {
		return nil, err
	}
	return r.header, nil
}

// Line returns the 1-based number of the last line read.
func (r *Reader) Line() int {
	return r.numLine
}

// Read reads and parses one line.
// If there is no data left to be read, Read returns nil, io.EOF.
// Errors other than io.EOF are *ParseError values and are returned again by
// every later call.
func (r *Reader) Read() (Record, error) {
	if r.HasHeader {
		if err := r.readHeader(); err != nil {
			return nil, err
		}
	}

	line, err := r.readLine()
	if err != nil {
		return nil, err
	}

	bound := NoBound
	if r.HasHeader {
		bound = len(r.header)
	}
	record, _ := r.p.ParseBounded(string(line), bound)
	return record, nil
}

// ReadAll reads all remaining lines. A successful call returns err == nil,
// not err == io.EOF.
func (r *Reader) ReadAll() ([]Record, error) {
	var records []Record
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
}

// readHeader parses the first line as the header, once.
func (r *Reader) readHeader() error {
	if r.headerRead {
		return nil
	}
	line, err := r.readLine()
	if err != nil {
		return err
	}
	r.header, _ = r.p.Parse(string(line))
	r.headerRead = true
	return nil
}

// readLine returns the next line without its terminator. The result is only
// valid until the next call.
func (r *Reader) readLine() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}

	r.line = r.line[:0]
	for {
		chunk, err := r.r.ReadSlice('\n')
		r.line = append(r.line, chunk...)
		if r.MaxLineSize > 0 && len(r.line) > r.MaxLineSize+2 {
			return nil, r.fail(ErrLineTooLong)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(r.line) > 0 {
				break
			}
			if errors.Is(err, io.EOF) {
				r.err = io.EOF
				return nil, io.EOF
			}
			return nil, r.fail(err)
		}
		break
	}

	r.numLine++
	line := bytes.TrimSuffix(r.line, []byte{'\n'})
	line = bytes.TrimSuffix(line, []byte{'\r'})
	if r.MaxLineSize > 0 && len(line) > r.MaxLineSize {
		r.numLine--
		return nil, r.fail(ErrLineTooLong)
	}
	return line, nil
}

// fail records a sticky error for the line being read.
func (r *Reader) fail(err error) error {
	r.err = &ParseError{Line: r.numLine + 1, Err: err}
	return r.err
}
