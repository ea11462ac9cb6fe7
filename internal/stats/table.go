package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// renderTable lays out rows under headers, padding every column to its
// widest cell. Columns listed in rightAlign are right-aligned. Widths are
// measured in terminal cells so wide runes line up.
func renderTable(headers []string, rows [][]string, rightAlign ...int) []string {
	cols := len(headers)
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil
	}

	alignRight := make(map[int]bool, len(rightAlign))
	for _, col := range rightAlign {
		alignRight[col] = true
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i := 0; i < cols && i < len(row); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	format := func(row []string) string {
		var b strings.Builder
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i > 0 {
				b.WriteString("  ")
			}
			pad := widths[i] - runewidth.StringWidth(cell)
			if pad < 0 {
				pad = 0
			}
			if alignRight[i] {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if i < cols-1 {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
		}
		return b.String()
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, format(headers))
	for _, row := range rows {
		lines = append(lines, format(row))
	}
	return lines
}
