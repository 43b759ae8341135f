// Package sheetgroup loads workbooks, classifies their sheets by the
// content of a window of cells, and exports sheets as ZIP archives of
// delimited text.
package sheetgroup

// DefaultPreviewRows is the number of rows shown in sheet previews.
const DefaultPreviewRows = 50

// LoadOptions configures workbook loading.
type LoadOptions struct {
	// Password opens encrypted workbooks.
	Password string
	// Sheets restricts loading to the named sheets. Empty loads all.
	Sheets []string
}

// DefaultLoadOptions returns options that load every sheet.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{}
}

func (o LoadOptions) wants(sheet string) bool {
	if len(o.Sheets) == 0 {
		return true
	}
	for _, name := range o.Sheets {
		if name == sheet {
			return true
		}
	}
	return false
}
