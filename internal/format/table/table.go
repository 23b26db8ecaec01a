// Package table lays out rows of text in aligned columns measured in
// terminal cells.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Alignment selects the padding side of a column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column describes one column. The zero value is left aligned and uncapped.
type Column struct {
	Align Alignment
	// Max caps the width in cells; longer values end in an ellipsis.
	Max int
}

// Gap separates adjacent columns.
const Gap = "  "

const ellipsis = "…"

// Format pads every row to the widest value of each column. Columns beyond
// len(columns) use the zero Column.
func Format(rows [][]string, columns []Column) []string {
	if len(rows) == 0 {
		return nil
	}
	column := func(c int) Column {
		if c < len(columns) {
			return columns[c]
		}
		return Column{}
	}

	cells := make([][]string, len(rows))
	var widths []int
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for c, value := range row {
			if limit := column(c).Max; limit > 0 {
				value = runewidth.Truncate(value, limit, ellipsis)
			}
			cells[i][c] = value
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			widths[c] = max(widths[c], runewidth.StringWidth(value))
		}
	}

	out := make([]string, len(cells))
	for i, row := range cells {
		padded := make([]string, len(row))
		for c, value := range row {
			if column(c).Align == AlignRight {
				padded[c] = runewidth.FillLeft(value, widths[c])
			} else {
				padded[c] = runewidth.FillRight(value, widths[c])
			}
		}
		out[i] = strings.Join(padded, Gap)
	}
	return out
}
