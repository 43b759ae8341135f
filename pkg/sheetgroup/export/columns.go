package export

import (
	"strings"

	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
)

// ColumnKind tags a body column for value cleanup.
type ColumnKind int

const (
	// ColumnNumeric holds uniformly non-text values (numbers, booleans or
	// dates) and missing values. Its cells are written unchanged.
	ColumnNumeric ColumnKind = iota
	// ColumnText holds text, or a mix of value kinds. Its text cells are
	// trimmed and blanks become missing.
	ColumnText
)

// String returns the tag name.
func (k ColumnKind) String() string {
	if k == ColumnText {
		return "text"
	}
	return "numeric"
}

// TagColumns classifies each of width columns of body once, before any
// cell is rewritten.
func TagColumns(body [][]models.Cell, width int) []ColumnKind {
	kinds := make([]ColumnKind, width)
	for col := 0; col < width; col++ {
		seen := models.CellEmpty
		for _, row := range body {
			if col >= len(row) {
				continue
			}
			k := row[col].Kind
			if k == models.CellEmpty {
				continue
			}
			if k == models.CellText || (seen != models.CellEmpty && seen != k) {
				kinds[col] = ColumnText
				break
			}
			seen = k
		}
	}
	return kinds
}

// cleanText trims the text cells of text columns in place. Text that is
// blank after trimming becomes missing; other kinds are left alone.
func cleanText(body [][]models.Cell, kinds []ColumnKind) {
	for _, row := range body {
		for col, kind := range kinds {
			if kind != ColumnText || col >= len(row) {
				continue
			}
			cell := row[col]
			if cell.Kind != models.CellText {
				continue
			}
			if cell.IsMissing() {
				row[col] = models.EmptyCell()
				continue
			}
			row[col] = models.TextCell(strings.TrimSpace(cell.Text))
		}
	}
}
