package relaxcsv

import "encoding/binary"

// =============================================================================
// Structural Masks
// =============================================================================
//
// The accelerated engine looks at a line in simdChunkSize-byte chunks and, for
// each chunk, builds one 64-bit mask per byte class: quote, backslash and the
// first byte of the separator. Bit i of a mask is set when byte i of the chunk
// belongs to the class.
//
// Two generators produce bit-identical masks:
//   - generateMasksSWAR: portable, eight bytes per step (every build)
//   - generateMasksAVX512: vector compare (GOEXPERIMENT=simd on amd64 only)
//
// =============================================================================

// SIMD processing constants
const (
	// simdChunkSize is the number of bytes processed per iteration (one 64-bit mask).
	simdChunkSize = 64

	// simdHalfChunk is the size of one 256-bit vector load.
	simdHalfChunk = 32

	// swarWordSize is the number of bytes compared per SWAR step.
	swarWordSize = 8
)

// SWAR constants
const (
	lowSevenBits = 0x7f7f7f7f7f7f7f7f
	everyByte    = 0x0101010101010101

	// gatherHighBits moves bit 8k of a word to bit 56+k.
	gatherHighBits = 0x0102040810204080
)

// chunkMasks holds the structural masks of one chunk.
type chunkMasks struct {
	quote     uint64 // Quote byte positions
	backslash uint64 // Backslash positions
	sepLead   uint64 // Positions of the separator's first byte
}

// maskBytes holds the byte values the masks are built for.
type maskBytes struct {
	quote   byte
	sepLead byte
}

// generateMasksSWAR generates masks eight bytes at a time using word arithmetic.
// Precondition: data is at least simdChunkSize bytes.
func generateMasksSWAR(data []byte, mb maskBytes) chunkMasks {
	quoteCmp := everyByte * uint64(mb.quote)
	backslashCmp := everyByte * uint64('\\')
	sepCmp := everyByte * uint64(mb.sepLead)

	var m chunkMasks
	for w := 0; w < simdChunkSize/swarWordSize; w++ {
		word := binary.LittleEndian.Uint64(data[w*swarWordSize:])
		shift := uint(w * swarWordSize)
		m.quote |= zeroByteMask(word^quoteCmp) << shift
		m.backslash |= zeroByteMask(word^backslashCmp) << shift
		m.sepLead |= zeroByteMask(word^sepCmp) << shift
	}
	return m
}

// zeroByteMask returns an 8-bit mask with bit k set when byte k of x is zero.
// The addition never carries across bytes, so there are no false positives.
func zeroByteMask(x uint64) uint64 {
	t := ((x & lowSevenBits) + lowSevenBits) | x
	high := ^(t | lowSevenBits)
	return ((high >> 7) * gatherHighBits) >> 56
}

// generateMasksPadded processes chunks smaller than simdChunkSize bytes.
// It copies data to a simdChunkSize-byte buffer (stack allocated), generates masks,
// then masks off bits beyond the actual data length.
func generateMasksPadded(data []byte, mb maskBytes) (chunkMasks, int) {
	validBits := len(data)
	if validBits == 0 {
		return chunkMasks{}, 0
	}

	var padded [simdChunkSize]byte
	copy(padded[:], data)

	m := generateMasks(padded[:], mb)

	if validBits < simdChunkSize {
		valid := (uint64(1) << validBits) - 1
		m.quote &= valid
		m.backslash &= valid
		m.sepLead &= valid
	}
	return m, validBits
}

// prefixXOR returns a mask whose bit i is the parity of the set bits of x at
// positions <= i.
func prefixXOR(x uint64) uint64 {
	x ^= x << 1
	x ^= x << 2
	x ^= x << 4
	x ^= x << 8
	x ^= x << 16
	x ^= x << 32
	return x
}
