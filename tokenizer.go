package relaxcsv

import "strings"

// =============================================================================
// Reference Tokenizer
// =============================================================================
//
// The reference tokenizer walks the line one byte at a time and keeps a running
// count of quote tokens that are not immediately preceded by a backslash:
//
//   even count  ---(separator)-->  emit field, skip len(separator) bytes
//   odd count   ---(separator)-->  part of the field, advance one byte
//
// Backslash detection is a heuristic, not an escape mechanism: `\"` never
// changes the count, even when the backslash is itself escaped.
//
// =============================================================================

// NoBound disables the header-size bound of [Parser.ParseBounded].
const NoBound = -1

// rawField is a half-open byte span [start, end) of the line, inclusive of
// quotes and surrounding whitespace.
type rawField struct {
	start int
	end   int
}

// boundReached reports whether emitted fields already fill headerSize.
// A negative headerSize never bounds.
func boundReached(emitted, headerSize int) bool {
	return headerSize >= 0 && emitted >= headerSize
}

// isUnescapedQuote reports whether the quote token starts at i and is not
// preceded by a literal backslash.
func isUnescapedQuote(line string, i int, quote string) bool {
	if !strings.HasPrefix(line[i:], quote) {
		return false
	}
	return i == 0 || line[i-1] != '\\'
}

// tokenize splits line into raw field spans appended to dst, which must be empty.
// Emission stops once headerSize spans exist.
func tokenize(line, sep, quote string, headerSize int, dst []rawField) []rawField {
	quoteCount := 0
	start := 0
	i := 0

	for i < len(line) {
		if quoteCount%2 == 0 && strings.HasPrefix(line[i:], sep) {
			if boundReached(len(dst), headerSize) {
				return dst
			}
			dst = append(dst, rawField{start: start, end: i})
			i += len(sep)
			start = i
			continue
		}
		if isUnescapedQuote(line, i, quote) {
			quoteCount++
		}
		i++
	}

	if boundReached(len(dst), headerSize) {
		return dst
	}
	return append(dst, rawField{start: start, end: len(line)})
}
