package relaxcsv

// Engine splits and normalizes one line. Implementations must be
// interchangeable: for the same configuration, line and header size every
// Engine returns the same Record.
type Engine interface {
	// Name identifies the implementation.
	Name() string

	// Parse returns the fields of line. A negative headerSize disables the bound.
	Parse(line string, headerSize int) Record
}

// Engine names.
const (
	ReferenceEngineName   = "reference"
	AcceleratedEngineName = "accelerated"
)

// =============================================================================
// Reference Engine
// =============================================================================

// referenceEngine is the byte-at-a-time tokenizer followed by normalization.
type referenceEngine struct {
	sep   string
	quote string
	norm  normalizer
}

func newReferenceEngine(cfg Config) *referenceEngine {
	quote := string(cfg.Quote)
	return &referenceEngine{
		sep:   cfg.Separator,
		quote: quote,
		norm:  newNormalizer(quote, cfg.KeepAbsentAsNil),
	}
}

func (e *referenceEngine) Name() string {
	return ReferenceEngineName
}

func (e *referenceEngine) Parse(line string, headerSize int) Record {
	buf := acquireSpans()
	defer buf.release()

	buf.spans = tokenize(line, e.sep, e.quote, headerSize, buf.spans)

	record := make(Record, len(buf.spans))
	for i, f := range buf.spans {
		record[i] = e.norm.field(line, f)
	}
	return record
}

// =============================================================================
// Accelerated Engine
// =============================================================================

// acceleratedEngine finds spans with structural bitmasks and skips quote
// handling for fields that contain no quote byte.
type acceleratedEngine struct {
	sep       string
	quote     string
	quoteByte byte
	masked    bool // Mask path applies to this configuration
	norm      normalizer
	fallback  *referenceEngine
}

func newAcceleratedEngine(cfg Config) *acceleratedEngine {
	quote := string(cfg.Quote)
	e := &acceleratedEngine{
		sep:      cfg.Separator,
		quote:    quote,
		masked:   maskScannable(cfg.Separator, quote),
		norm:     newNormalizer(quote, cfg.KeepAbsentAsNil),
		fallback: newReferenceEngine(cfg),
	}
	if e.masked {
		e.quoteByte = quote[0]
	}
	return e
}

func (e *acceleratedEngine) Name() string {
	return AcceleratedEngineName
}

func (e *acceleratedEngine) Parse(line string, headerSize int) Record {
	if !e.masked {
		return e.fallback.Parse(line, headerSize)
	}

	buf := acquireMarkedSpans()
	defer buf.release()

	buf.spans = scanLine(line, e.sep, e.quoteByte, headerSize, buf.spans)

	record := make(Record, len(buf.spans))
	for i, f := range buf.spans {
		if f.hasQuote {
			record[i] = e.norm.field(line, f.rawField)
		} else {
			record[i] = e.norm.plainField(line[f.start:f.end])
		}
	}
	return record
}
