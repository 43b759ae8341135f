// Package models defines data structures for workbook classification and export.
package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// CellKind identifies the scalar type held by a Cell.
type CellKind int

const (
	// CellEmpty is a missing value.
	CellEmpty CellKind = iota
	// CellText is a string value.
	CellText
	// CellNumber is a numeric value.
	CellNumber
	// CellBool is a boolean value.
	CellBool
	// CellDate is a date or date-time value.
	CellDate
)

// String returns the kind name used in JSON output.
func (k CellKind) String() string {
	switch k {
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellBool:
		return "bool"
	case CellDate:
		return "date"
	}
	return "empty"
}

// Cell is one heterogeneous scalar in a sheet grid.
type Cell struct {
	// Kind selects which of the value fields is meaningful.
	Kind CellKind
	// Text holds the value of a CellText cell.
	Text string
	// Number holds the value of a CellNumber cell.
	Number float64
	// Bool holds the value of a CellBool cell.
	Bool bool
	// Time holds the value of a CellDate cell.
	Time time.Time
}

// EmptyCell returns a missing value.
func EmptyCell() Cell { return Cell{} }

// TextCell returns a text cell.
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// NumberCell returns a numeric cell.
func NumberCell(n float64) Cell { return Cell{Kind: CellNumber, Number: n} }

// BoolCell returns a boolean cell.
func BoolCell(b bool) Cell { return Cell{Kind: CellBool, Bool: b} }

// DateCell returns a date cell.
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Time: t} }

// IsMissing reports whether the cell carries no value: empty, or text that
// is blank after trimming.
func (c Cell) IsMissing() bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellText:
		return strings.TrimSpace(c.Text) == ""
	}
	return false
}

// String renders the cell the way it is printed in signatures and exports.
// Whole numbers print without a fractional part; dates at midnight print as
// a bare date.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellBool:
		if c.Bool {
			return "True"
		}
		return "False"
	case CellDate:
		if c.Time.Hour() == 0 && c.Time.Minute() == 0 && c.Time.Second() == 0 && c.Time.Nanosecond() == 0 {
			return c.Time.Format("2006-01-02")
		}
		return c.Time.Format("2006-01-02 15:04:05")
	}
	return ""
}

// MarshalJSON encodes the cell as its natural JSON scalar.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellText:
		return json.Marshal(c.Text)
	case CellNumber:
		return json.Marshal(c.Number)
	case CellBool:
		return json.Marshal(c.Bool)
	case CellDate:
		return json.Marshal(c.String())
	}
	return []byte("null"), nil
}
