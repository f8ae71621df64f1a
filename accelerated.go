package relaxcsv

import (
	"math/bits"
	"strings"
	"unsafe"
)

// =============================================================================
// Accelerated Tokenizer
// =============================================================================
//
// The accelerated tokenizer finds the same spans as tokenize without visiting
// every byte in a branchy loop:
//
//   1. generate quote, backslash and separator-lead masks per chunk
//   2. drop quote bits preceded by a backslash bit (carried across chunks)
//   3. prefix-XOR the remaining quote bits into an "inside quotes" mask
//   4. walk separator-lead bits outside quotes in position order, confirm the
//      full separator, and skip candidates overlapping the previous match
//
// Step 3 only agrees with the reference count when no quote byte is consumed as
// part of a separator, so the mask path requires a single-byte quote that does
// not occur in the separator. Other configurations use tokenize.
//
// =============================================================================

// scanState holds state carried between chunks.
type scanState struct {
	quoted        uint64 // Quote state flag (0=outside, ^0=inside)
	prevBackslash uint64 // 1 if the previous chunk ended with a backslash
	fieldStart    int    // Start of the current field
	nextAllowed   int    // First position a separator may start at
	sawQuote      bool   // A quote byte was seen in the current field
}

// markedField is a raw span plus whether it contains any quote byte.
type markedField struct {
	rawField
	hasQuote bool
}

// maskScannable reports whether the mask path matches tokenize for sep and quote.
func maskScannable(sep, quote string) bool {
	return len(quote) == 1 && !strings.Contains(sep, quote)
}

// lineBytes views s as a byte slice without copying. The result must not be modified.
func lineBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// scanLine splits line into spans appended to dst, which must be empty.
// Precondition: maskScannable(sep, quote).
func scanLine(line, sep string, quote byte, headerSize int, dst []markedField) []markedField {
	if boundReached(0, headerSize) {
		return dst
	}

	data := lineBytes(line)
	mb := maskBytes{quote: quote, sepLead: sep[0]}
	state := scanState{}

	chunkCount := (len(data) + simdChunkSize - 1) / simdChunkSize
	for chunkIdx := 0; chunkIdx < chunkCount; chunkIdx++ {
		offset := chunkIdx * simdChunkSize

		var m chunkMasks
		if len(data)-offset >= simdChunkSize {
			m = generateMasks(data[offset:offset+simdChunkSize], mb)
		} else {
			m, _ = generateMasksPadded(data[offset:], mb)
		}

		var done bool
		dst, done = processChunk(line, sep, offset, m, &state, headerSize, dst)
		if done {
			return dst
		}
	}

	if boundReached(len(dst), headerSize) {
		return dst
	}
	return append(dst, markedField{
		rawField: rawField{start: state.fieldStart, end: len(line)},
		hasQuote: state.sawQuote,
	})
}

// processChunk walks the quote and separator events of one chunk in position order.
// It returns done=true once headerSize spans have been emitted.
func processChunk(line, sep string, offset int, m chunkMasks, state *scanState, headerSize int, dst []markedField) ([]markedField, bool) {
	escaped := (m.backslash << 1) | state.prevBackslash
	state.prevBackslash = m.backslash >> 63

	countedQuotes := m.quote &^ escaped
	inside := prefixXOR(countedQuotes) ^ state.quoted
	state.quoted = uint64(int64(inside) >> 63)

	sepMask := m.sepLead &^ inside
	quoteMask := m.quote

	// Fast path: nothing structural in this chunk.
	if sepMask|quoteMask == 0 {
		return dst, false
	}

	combined := sepMask | quoteMask
	for combined != 0 {
		pos := bits.TrailingZeros64(combined)
		bit := uint64(1) << pos
		absPos := offset + pos

		if quoteMask&bit != 0 {
			state.sawQuote = true
			quoteMask &^= bit
		} else {
			if absPos >= state.nextAllowed && strings.HasPrefix(line[absPos:], sep) {
				if boundReached(len(dst), headerSize) {
					return dst, true
				}
				dst = append(dst, markedField{
					rawField: rawField{start: state.fieldStart, end: absPos},
					hasQuote: state.sawQuote,
				})
				state.fieldStart = absPos + len(sep)
				state.nextAllowed = state.fieldStart
				state.sawQuote = false
			}
			sepMask &^= bit
		}

		combined = sepMask | quoteMask
	}
	return dst, false
}
