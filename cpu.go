package relaxcsv

import "golang.org/x/sys/cpu"

// useAVX512 indicates whether AVX-512 instructions are available at runtime.
// It is set once at init time and only consulted by the vector mask generator,
// which exists in GOEXPERIMENT=simd amd64 builds.
//
// NOTE: All three feature flags are required:
//   - AVX512F: Foundation 512-bit vector operations
//   - AVX512BW: Byte/word granularity operations (ToBits() uses VPMOVB2M)
//   - AVX512VL: 128/256-bit vector support with AVX-512 instructions
var useAVX512 bool

func init() {
	useAVX512 = cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW && cpu.X86.HasAVX512VL
}

// AccelerationAvailable reports whether the accelerated engine generates its
// masks with vector instructions on this CPU. When it returns false the
// accelerated engine still works, using portable word-at-a-time mask generation.
func AccelerationAvailable() bool {
	return vectorMasksAvailable()
}
