package parser

import (
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
)

// DataRange returns the A1 range bounding the non-missing cells of a sheet,
// or "" when the sheet holds no values.
func DataRange(s models.Sheet) string {
	b, ok := findDataBounds(s)
	if !ok {
		return ""
	}
	rangeStr, err := FormatRange(b)
	if err != nil {
		return ""
	}
	return rangeStr
}

// Summarize describes a sheet's extent.
func Summarize(s models.Sheet) models.SheetSummary {
	return models.SheetSummary{
		Name:      s.Name,
		Rows:      s.RowCount(),
		Columns:   s.ColumnCount(),
		DataRange: DataRange(s),
	}
}

// findDataBounds finds the zero-based half-open box of non-missing cells.
func findDataBounds(s models.Sheet) (models.Bounds, bool) {
	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1

	for rowIdx, row := range s.Rows {
		for colIdx, cell := range row {
			if cell.IsMissing() {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	if minRow < 0 {
		return models.Bounds{}, false
	}
	return models.Bounds{R0: minRow, R1: maxRow + 1, C0: minCol, C1: maxCol + 1}, true
}
