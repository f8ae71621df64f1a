package relaxcsv

import "strings"

// =============================================================================
// Benchmark Data Generators
// =============================================================================

// generateSimpleLine generates a line of simple unquoted fields.
func generateSimpleLine(numCols int, sep string) string {
	var sb strings.Builder
	for j := 0; j < numCols; j++ {
		if j > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString("field")
	}
	return sb.String()
}

// generateQuotedLine generates a line of quoted fields containing separators.
func generateQuotedLine(numCols int) string {
	var sb strings.Builder
	for j := 0; j < numCols; j++ {
		if j > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(`"field,with,commas"`)
	}
	return sb.String()
}

// generateMixedLine generates a line of mixed quoted, unquoted and blank fields.
func generateMixedLine(numCols int) string {
	var sb strings.Builder
	for j := 0; j < numCols; j++ {
		if j > 0 {
			sb.WriteByte(',')
		}
		switch j % 4 {
		case 0:
			sb.WriteString("simple")
		case 1:
			sb.WriteString(`"quoted,field"`)
		case 2:
			sb.WriteString("  ")
		default:
			sb.WriteString(`"he said ""hello"" to me"`)
		}
	}
	return sb.String()
}
