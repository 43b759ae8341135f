package models

// Workbook is the ordered set of content-bearing sheets of one file.
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets lists sheets in workbook tab order.
	Sheets []Sheet `json:"sheets"`
}

// Empty reports whether the workbook has no content-bearing sheets.
func (w *Workbook) Empty() bool {
	return len(w.Sheets) == 0
}

// Names returns sheet names in workbook order.
func (w *Workbook) Names() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet looks a sheet up by name.
func (w *Workbook) Sheet(name string) (Sheet, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

// Subset returns the named sheets in the order given. An empty names list
// selects every sheet. The second return value lists names that were not
// found.
func (w *Workbook) Subset(names []string) ([]Sheet, []string) {
	if len(names) == 0 {
		return w.Sheets, nil
	}
	var (
		selected []Sheet
		missing  []string
	)
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		s, ok := w.Sheet(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		selected = append(selected, s)
	}
	return selected, missing
}
