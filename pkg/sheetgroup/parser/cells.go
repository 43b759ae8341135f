// Package parser reads workbook sheets into typed grids and converts
// between A1 ranges and windows.
package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
	"github.com/xuri/excelize/v2"
)

// ReadSheet reads a sheet into a rectangular grid of typed cells.
// Row 0 is ordinary data; no header is consumed.
func ReadSheet(f *excelize.File, sheetName string) (models.Sheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Sheet{}, err
	}
	date1904, err := uses1904Dates(f)
	if err != nil {
		return models.Sheet{}, err
	}

	styles := make(map[int]bool)
	grid := make([][]models.Cell, len(rows))
	for rowIdx, row := range rows {
		cells := make([]models.Cell, len(row))
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return models.Sheet{}, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return models.Sheet{}, err
			}
			cells[colIdx] = parseCell(raw, cellType, date1904, func() bool {
				return isDateStyled(f, sheetName, cellName, styles)
			})
		}
		grid[rowIdx] = cells
	}

	return trimTrailingEmpty(models.NewSheet(sheetName, grid)), nil
}

// uses1904Dates reports whether the workbook counts date serials from 1904.
func uses1904Dates(f *excelize.File) (bool, error) {
	props, err := f.GetWorkbookProps()
	if err != nil {
		return false, err
	}
	return props.Date1904 != nil && *props.Date1904, nil
}

// parseCell converts a raw cell value to a typed cell. dateStyled is only
// consulted for numeric values; date1904 selects the serial date epoch.
func parseCell(raw string, cellType excelize.CellType, date1904 bool, dateStyled func() bool) models.Cell {
	switch cellType {
	case excelize.CellTypeBool:
		return models.BoolCell(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return models.DateCell(t)
		}
		if t, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
			return models.DateCell(t)
		}
		return models.TextCell(raw)
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.TextCell(raw)
		}
		if dateStyled != nil && dateStyled() {
			if t, err := excelize.ExcelDateToTime(n, date1904); err == nil {
				return models.DateCell(t)
			}
		}
		return models.NumberCell(n)
	}
	return models.TextCell(raw)
}

// isDateStyled reports whether the cell's number format renders a date.
// Results are cached per style ID.
func isDateStyled(f *excelize.File, sheetName, cellName string, cache map[int]bool) bool {
	styleID, err := f.GetCellStyle(sheetName, cellName)
	if err != nil || styleID == 0 {
		return false
	}
	if isDate, ok := cache[styleID]; ok {
		return isDate
	}
	isDate := false
	if style, err := f.GetStyle(styleID); err == nil {
		isDate = isDateFormat(style.NumFmt)
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		}
	}
	cache[styleID] = isDate
	return isDate
}

// isDateFormat reports whether a built-in number format ID is a date or
// time format.
func isDateFormat(fmtID int) bool {
	switch fmtID {
	case 14, 15, 16, 17, 18, 19, 20, 21, 22, 27, 30, 36, 45, 46, 47, 50, 57:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom format code contains date or
// time tokens outside quoted literals and bracketed sections.
func isDateFormatCode(code string) bool {
	inQuote, inBracket := false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		case r == 'y', r == 'd', r == 'm', r == 'h', r == 's':
			return true
		}
	}
	return false
}

// trimTrailingEmpty drops trailing rows and columns that hold no value, so
// that a sheet with only blank cells reports a 0x0 extent.
func trimTrailingEmpty(s models.Sheet) models.Sheet {
	lastRow, lastCol := -1, -1
	for r, row := range s.Rows {
		for c, cell := range row {
			if cell.Kind != models.CellEmpty {
				if r > lastRow {
					lastRow = r
				}
				if c > lastCol {
					lastCol = c
				}
			}
		}
	}
	if lastRow < 0 {
		return models.Sheet{Name: s.Name}
	}
	rows := make([][]models.Cell, lastRow+1)
	for r := range rows {
		rows[r] = s.Rows[r][:lastCol+1]
	}
	return models.Sheet{Name: s.Name, Rows: rows}
}
