package relaxcsv

import "strings"

// =============================================================================
// Field Normalization
// =============================================================================
//
// Every raw field goes through the same steps, in this order:
//
//   1. trim surrounding whitespace
//   2. strip one enclosing pair of quote tokens
//   3. collapse each doubled quote token into one
//   4. decide between absent, empty and value
//
// Whitespace outside the quotes is trimmed before the pair is examined, so
// ` "a" ` becomes `a` while `" a "` keeps its inner spaces.
//
// =============================================================================

// normalizer holds the per-parser inputs of normalization.
type normalizer struct {
	quote           string
	doubledQuote    string
	keepAbsentAsNil bool
}

func newNormalizer(quote string, keepAbsentAsNil bool) normalizer {
	return normalizer{
		quote:           quote,
		doubledQuote:    quote + quote,
		keepAbsentAsNil: keepAbsentAsNil,
	}
}

// field normalizes the span f of line.
func (n normalizer) field(line string, f rawField) Field {
	return n.normalize(line[f.start:f.end], true, line, f.start)
}

// plainField normalizes a raw field that contains no quote byte. Unquoting is
// the identity on such fields, and the line cannot continue with a quote at
// the field start, so only trimming and the blank check remain.
// Precondition: the separator contains no quote byte.
func (n normalizer) plainField(raw string) Field {
	value := trimSpace(raw)
	if value == "" && n.keepAbsentAsNil {
		return Null()
	}
	return Text(value)
}

// normalize turns a raw field into a Field. present is false for an absent raw
// field; rawStart is the offset of raw within line, before trimming.
func (n normalizer) normalize(raw string, present bool, line string, rawStart int) Field {
	if !present {
		return Null()
	}

	value := n.unquote(trimSpace(raw))

	if n.keepAbsentAsNil {
		if isBlank(value) && !strings.HasPrefix(line[rawStart:], n.quote) {
			return Null()
		}
		return Text(value)
	}

	if isBlank(value) {
		return Text("")
	}
	return Text(value)
}

// unquote strips one enclosing pair of quote tokens from trimmed and collapses
// doubled quote tokens. A lone quote token unquotes to the empty string.
func (n normalizer) unquote(trimmed string) string {
	if strings.HasPrefix(trimmed, n.quote) && strings.HasSuffix(trimmed, n.quote) {
		trimmed = strings.TrimPrefix(trimmed, n.quote)
		trimmed = strings.TrimSuffix(trimmed, n.quote)
	}
	if !strings.Contains(trimmed, n.doubledQuote) {
		return trimmed
	}
	return strings.ReplaceAll(trimmed, n.doubledQuote, n.quote)
}

// asciiSpace is the whitespace trimmed from fields. Other Unicode spaces,
// such as U+00A0, are field content.
const asciiSpace = " \t\n\v\f\r"

// trimSpace removes leading and trailing ASCII whitespace.
func trimSpace(s string) string {
	return strings.Trim(s, asciiSpace)
}

// isBlank reports whether s is empty or whitespace only.
func isBlank(s string) bool {
	return trimSpace(s) == ""
}
