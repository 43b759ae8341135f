// Package classify groups sheets by the normalized content of a window of
// cells.
package classify

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
)

// Signature is the ordered sequence of normalized row strings taken from a
// window of a sheet.
type Signature []string

// Empty reports whether the signature has no rows.
func (s Signature) Empty() bool {
	return len(s) == 0
}

// Equal reports exact, order-sensitive equality.
func (s Signature) Equal(other Signature) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Key returns a string usable as a map key. Row strings only contain
// letters, digits and underscores, so the separator cannot collide; the
// length prefix keeps [""] distinct from [].
func (s Signature) Key() string {
	return strconv.Itoa(len(s)) + ":" + strings.Join(s, "\x00")
}

// Extract computes the signature of a sheet under a window. Windows
// extending past the sheet are clamped to its extent.
func Extract(sheet models.Sheet, w models.Window) Signature {
	if sheet.IsEmpty() {
		return Signature{}
	}

	b, _ := w.Clamp(sheet.RowCount(), sheet.ColumnCount())
	sig := make(Signature, 0, b.Rows())
	var sb strings.Builder
	for r := b.R0; r < b.R1; r++ {
		sb.Reset()
		for c := b.C0; c < b.C1; c++ {
			sb.WriteString(NormalizeToken(sheet.Rows[r][c]))
		}
		sig = append(sig, sb.String())
	}
	return sig
}

// NormalizeToken stringifies a cell, keeps only letters, digits and
// underscores, and lower-cases the result. Missing values yield "".
func NormalizeToken(c models.Cell) string {
	if c.IsMissing() {
		return ""
	}
	return normalize(c.String())
}

func normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}
