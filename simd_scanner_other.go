//go:build !(goexperiment.simd && amd64)

package relaxcsv

// vectorMasksAvailable reports whether generateMasks uses vector instructions.
func vectorMasksAvailable() bool {
	return false
}

// generateMasks uses the portable SWAR implementation.
// Precondition: data is at least simdChunkSize bytes.
func generateMasks(data []byte, mb maskBytes) chunkMasks {
	return generateMasksSWAR(data, mb)
}
