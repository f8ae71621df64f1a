package relaxcsv

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderTable writes header and rows as a column-aligned text table.
// Columns are padded to their display width, so wide characters line up.
// Absent fields print as nullText. A nil header renders the rows only.
func RenderTable(w io.Writer, header Record, rows []Record, nullText string) error {
	widths := columnWidths(header, rows, nullText)
	bw := bufio.NewWriter(w)

	if header != nil {
		writeTableRow(bw, header, widths, nullText)
		writeTableRule(bw, widths)
	}
	for _, row := range rows {
		writeTableRow(bw, row, widths, nullText)
	}
	return bw.Flush()
}

// cellText returns the printed text of f.
func cellText(f Field, nullText string) string {
	if !f.Valid {
		return nullText
	}
	return f.Value
}

// columnWidths returns the display width of every column.
func columnWidths(header Record, rows []Record, nullText string) []int {
	var widths []int
	measure := func(r Record) {
		for i, f := range r {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := runewidth.StringWidth(cellText(f, nullText)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}
	return widths
}

func writeTableRow(bw *bufio.Writer, r Record, widths []int, nullText string) {
	for i, width := range widths {
		if i > 0 {
			bw.WriteString(" | ")
		}
		text := ""
		if i < len(r) {
			text = cellText(r[i], nullText)
		}
		if i == len(widths)-1 {
			bw.WriteString(text)
			continue
		}
		bw.WriteString(runewidth.FillRight(text, width))
	}
	bw.WriteByte('\n')
}

func writeTableRule(bw *bufio.Writer, widths []int) {
	for i, width := range widths {
		if i > 0 {
			bw.WriteString("-+-")
		}
		bw.WriteString(strings.Repeat("-", width))
	}
	bw.WriteByte('\n')
}
