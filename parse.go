// Package relaxcsv splits one line of delimiter-separated text into fields
// using relaxed quoting rules.
//
// Quoting is evaluated within the line only: a separator inside an odd number
// of quote characters is part of the field, a quote preceded by a backslash is
// ignored for that count, one enclosing pair of quotes is stripped from each
// field and doubled quotes collapse into one. Fields can be reported as absent
// (see [Config.KeepAbsentAsNil]) to tell `a,,b` apart from `a,"",b`.
//
// Two engines implement the same contract: the reference engine scans one byte
// at a time, the accelerated engine scans structural bitmasks 64 bytes at a
// time. They return identical records for every input.
package relaxcsv

// Parser parses lines with a fixed configuration.
// A Parser is safe for concurrent use by multiple goroutines.
type Parser struct {
	cfg    Config
	engine Engine
}

// NewParser validates cfg and returns a Parser using the engine cfg selects.
func NewParser(cfg Config) (*Parser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Parser{cfg: cfg}
	if cfg.Accelerate {
		p.engine = newAcceleratedEngine(cfg)
	} else {
		p.engine = newReferenceEngine(cfg)
	}
	return p, nil
}

// Config returns the parser's configuration.
func (p *Parser) Config() Config {
	return p.cfg
}

// Engine returns the name of the engine in use.
func (p *Parser) Engine() string {
	return p.engine.Name()
}

// Parse returns the fields of line and their count.
// An empty line yields one field.
func (p *Parser) Parse(line string) (Record, int) {
	return p.ParseBounded(line, NoBound)
}

// ParseBytes is like Parse for a byte slice. A nil slice is an absent line
// and yields no fields; a non-nil empty slice yields one field.
// The returned values do not alias line.
func (p *Parser) ParseBytes(line []byte) (Record, int) {
	if line == nil {
		return Record{}, 0
	}
	return p.ParseBounded(string(line), NoBound)
}

// ParseBounded returns at most headerSize fields of line and their count.
// Content after the headerSize-th field is discarded, which lets data rows with
// trailing separators be read against a known header width.
// A negative headerSize (see [NoBound]) disables the bound.
func (p *Parser) ParseBounded(line string, headerSize int) (Record, int) {
	record := p.engine.Parse(line, headerSize)
	return record, len(record)
}

// ParseLine parses a single line with cfg.
// Callers parsing many lines should build a [Parser] once instead.
func ParseLine(line string, cfg Config) (Record, int, error) {
	p, err := NewParser(cfg)
	if err != nil {
		return nil, 0, err
	}
	record, n := p.Parse(line)
	return record, n, nil
}
