package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
	"github.com/xuri/excelize/v2"
)

// ParseWindow parses an A1-style range such as "A1:C1" or "'Sheet 1'!$B$2:$D$4"
// into a window. A sheet prefix is ignored. The range is inclusive on both
// corners, so "A1:C1" selects row 0 across columns 1 to 3.
func ParseWindow(ref string) (models.Window, error) {
	rangeStr := strings.TrimSpace(ref)
	if idx := strings.LastIndex(rangeStr, "!"); idx >= 0 {
		rangeStr = rangeStr[idx+1:]
	}
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return models.Window{}, fmt.Errorf("%w: range %q must have the form A1:B2", models.ErrInvalidWindow, ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.Window{}, fmt.Errorf("%w: %v", models.ErrInvalidWindow, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.Window{}, fmt.Errorf("%w: %v", models.ErrInvalidWindow, err)
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}

	w := models.Window{
		StartRow: startRow - 1,
		EndRow:   endRow,
		StartCol: startCol,
		EndCol:   endCol,
	}
	return w, w.Validate()
}

// FormatRange renders zero-based half-open bounds as an A1 range.
func FormatRange(b models.Bounds) (string, error) {
	if b.Rows() <= 0 || b.Cols() <= 0 {
		return "", fmt.Errorf("empty range")
	}
	startCell, err := excelize.CoordinatesToCellName(b.C0+1, b.R0+1)
	if err != nil {
		return "", err
	}
	endCell, err := excelize.CoordinatesToCellName(b.C1, b.R1)
	if err != nil {
		return "", err
	}
	return startCell + ":" + endCell, nil
}
