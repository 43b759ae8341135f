package models

// Sheet is a named, rectangular grid of cells addressed by zero-based
// row and column index.
type Sheet struct {
	// Name is the sheet identifier, unique within a workbook.
	Name string `json:"name"`
	// Rows holds the grid; every row has ColumnCount cells.
	Rows [][]Cell `json:"rows,omitempty"`
}

// NewSheet builds a sheet from possibly ragged rows, right-padding short
// rows with empty cells.
func NewSheet(name string, rows [][]Cell) Sheet {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	grid := make([][]Cell, len(rows))
	for i, row := range rows {
		padded := make([]Cell, width)
		copy(padded, row)
		grid[i] = padded
	}
	return Sheet{Name: name, Rows: grid}
}

// RowCount returns the number of rows.
func (s Sheet) RowCount() int {
	return len(s.Rows)
}

// ColumnCount returns the number of columns.
func (s Sheet) ColumnCount() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return len(s.Rows[0])
}

// IsEmpty reports whether the sheet has zero rows and zero columns.
func (s Sheet) IsEmpty() bool {
	return s.RowCount() == 0 && s.ColumnCount() == 0
}

// Cell returns the cell at (row, col), or an empty cell when out of range.
func (s Sheet) Cell(row, col int) Cell {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return EmptyCell()
	}
	return s.Rows[row][col]
}

// Head returns a sheet holding at most the first n rows, sharing storage
// with s.
func (s Sheet) Head(n int) Sheet {
	if n < 0 || n >= len(s.Rows) {
		return s
	}
	return Sheet{Name: s.Name, Rows: s.Rows[:n]}
}

// SheetSummary describes a sheet without its cells.
type SheetSummary struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Rows is the row count.
	Rows int `json:"rows"`
	// Columns is the column count.
	Columns int `json:"columns"`
	// DataRange is the bounding range of non-empty cells (e.g., "A1:D10").
	DataRange string `json:"data_range,omitempty"`
}
