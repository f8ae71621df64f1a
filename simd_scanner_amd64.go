//go:build goexperiment.simd && amd64

package relaxcsv

import (
	"simd/archsimd"
	"unsafe"
)

// =============================================================================
// AVX-512 Mask Generation
// =============================================================================
//
// NOTE: The simd/archsimd package in Go 1.26 is an experimental feature enabled via
// GOEXPERIMENT=simd. archsimd.Int8x32.Equal().ToBits() uses the VPMOVB2M
// instruction (AVX-512BW), which raises SIGILL on CPUs without AVX-512, so the
// vector path is only taken when useAVX512 is set.
//
// TODO: Switch to an AVX2 mask extraction (VPMOVMSKB) once archsimd exposes one,
// so that CI runners without AVX-512 exercise the vector path too.
//
// =============================================================================

// vectorMasksAvailable reports whether generateMasks uses vector instructions.
func vectorMasksAvailable() bool {
	return useAVX512
}

// generateMasks dispatches to the AVX-512 or SWAR implementation.
// Precondition: data is at least simdChunkSize bytes.
func generateMasks(data []byte, mb maskBytes) chunkMasks {
	if useAVX512 {
		return generateMasksAVX512(data, mb)
	}
	return generateMasksSWAR(data, mb)
}

// generateMasksAVX512 generates masks using AVX-512 SIMD instructions.
// Precondition: data is at least simdChunkSize bytes.
func generateMasksAVX512(data []byte, mb maskBytes) chunkMasks {
	quoteCmp := archsimd.BroadcastInt8x32(int8(mb.quote))
	backslashCmp := archsimd.BroadcastInt8x32('\\')
	sepCmp := archsimd.BroadcastInt8x32(int8(mb.sepLead))

	// Positions 0-31
	low := archsimd.LoadInt8x32((*[simdHalfChunk]int8)(unsafe.Pointer(&data[0])))
	quoteLow := low.Equal(quoteCmp).ToBits()
	backslashLow := low.Equal(backslashCmp).ToBits()
	sepLow := low.Equal(sepCmp).ToBits()

	// Positions 32-63
	high := archsimd.LoadInt8x32((*[simdHalfChunk]int8)(unsafe.Pointer(&data[simdHalfChunk])))
	quoteHigh := high.Equal(quoteCmp).ToBits()
	backslashHigh := high.Equal(backslashCmp).ToBits()
	sepHigh := high.Equal(sepCmp).ToBits()

	return chunkMasks{
		quote:     uint64(quoteLow) | (uint64(quoteHigh) << 32),
		backslash: uint64(backslashLow) | (uint64(backslashHigh) << 32),
		sepLead:   uint64(sepLow) | (uint64(sepHigh) << 32),
	}
}
