package classify

import (
	"fmt"

	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
)

// EmptyMarker replaces the column count in the label of the group of
// sheets with an empty signature.
const EmptyMarker = "empty sheets"

// Classify partitions sheets into groups of identical signature under w.
// Groups are numbered in order of first encounter, so the input order
// fixes the labels. The window is validated before any signature is
// computed.
func Classify(sheets []models.Sheet, w models.Window) (*models.Classification, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	result := &models.Classification{Window: w, Groups: []models.Group{}}
	index := make(map[string]int)

	for _, sheet := range sheets {
		sig := Extract(sheet, w)
		if !sheet.IsEmpty() && !covers(sheet, w) {
			result.Clamped = append(result.Clamped, sheet.Name)
		}

		key := sig.Key()
		if i, ok := index[key]; ok {
			result.Groups[i].Sheets = append(result.Groups[i].Sheets, sheet.Name)
			continue
		}

		group := models.Group{
			Index:     len(result.Groups) + 1,
			Empty:     sig.Empty(),
			Signature: []string(sig),
			Sheets:    []string{sheet.Name},
		}
		if !group.Empty {
			group.Columns = sheet.ColumnCount()
		}
		group.Label = Label(group.Index, group.Columns, group.Empty, w)

		index[key] = len(result.Groups)
		result.Groups = append(result.Groups, group)
	}

	return result, nil
}

// covers reports whether any cell of the sheet lies inside the window.
func covers(sheet models.Sheet, w models.Window) bool {
	b, _ := w.Clamp(sheet.RowCount(), sheet.ColumnCount())
	return b.Rows() > 0 && b.Cols() > 0
}

// Label builds the display label of a group.
func Label(index, columns int, empty bool, w models.Window) string {
	size := fmt.Sprintf("%d columns", columns)
	if empty {
		size = EmptyMarker
	}
	return fmt.Sprintf("Group %02d | %s | %s", index, size, w)
}
