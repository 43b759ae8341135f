package models

import (
	"errors"
	"fmt"
)

// ErrInvalidWindow indicates a window whose start is not before its end on
// either axis.
var ErrInvalidWindow = errors.New("invalid window")

// Window is the rectangle of cells a signature is computed from.
type Window struct {
	// StartRow is the first row (0-based, inclusive).
	StartRow int `json:"start_row" yaml:"start_row"`
	// EndRow is the row after the last one (0-based, exclusive).
	EndRow int `json:"end_row" yaml:"end_row"`
	// StartCol is the first column (1-based, inclusive).
	StartCol int `json:"start_col" yaml:"start_col"`
	// EndCol is the last column (1-based, inclusive), i.e. the 0-based
	// exclusive end.
	EndCol int `json:"end_col" yaml:"end_col"`
}

// DefaultWindow covers the first row across the first ten columns.
func DefaultWindow() Window {
	return Window{StartRow: 0, EndRow: 1, StartCol: 1, EndCol: 10}
}

// Validate checks that start < end on both axes.
func (w Window) Validate() error {
	if w.StartRow >= w.EndRow {
		return fmt.Errorf("%w: start row %d must be less than end row %d", ErrInvalidWindow, w.StartRow, w.EndRow)
	}
	if w.StartCol >= w.EndCol {
		return fmt.Errorf("%w: start column %d must be less than end column %d", ErrInvalidWindow, w.StartCol, w.EndCol)
	}
	return nil
}

// Bounds is a zero-based half-open cell range.
type Bounds struct {
	R0, R1 int
	C0, C1 int
}

// Rows returns the number of rows covered.
func (b Bounds) Rows() int { return b.R1 - b.R0 }

// Cols returns the number of columns covered.
func (b Bounds) Cols() int { return b.C1 - b.C0 }

// Clamp converts the window to zero-based bounds limited to a grid of the
// given extent. The second result reports whether any bound was cut.
func (w Window) Clamp(rows, cols int) (Bounds, bool) {
	b := Bounds{R0: w.StartRow, R1: w.EndRow, C0: w.StartCol - 1, C1: w.EndCol}
	clamped := false
	clampAxis := func(lo, hi *int, extent int) {
		if *lo < 0 {
			*lo = 0
		}
		if *hi > extent {
			*hi = extent
			clamped = true
		}
		if *lo > extent {
			*lo = extent
			clamped = true
		}
		if *hi < *lo {
			*hi = *lo
		}
	}
	clampAxis(&b.R0, &b.R1, rows)
	clampAxis(&b.C0, &b.C1, cols)
	return b, clamped
}

// String renders the window as shown in group labels.
func (w Window) String() string {
	return fmt.Sprintf("rows %d-%d, cols %d-%d", w.StartRow, w.EndRow, w.StartCol, w.EndCol)
}
