package export

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
)

// Extension is appended to every entry name.
const Extension = ".csv"

// Archive is an in-memory ZIP of uniquely named text entries.
type Archive struct {
	buf     bytes.Buffer
	zw      *zip.Writer
	names   map[string]bool
	entries []string
	closed  bool
}

// NewArchive creates an empty archive.
func NewArchive() *Archive {
	a := &Archive{names: make(map[string]bool)}
	a.zw = zip.NewWriter(&a.buf)
	return a
}

// UniqueName returns base+Extension, or base_1, base_2, ... with the
// extension, whichever is first absent from taken.
func UniqueName(base string, taken map[string]bool) string {
	name := base + Extension
	for counter := 1; taken[name]; counter++ {
		name = fmt.Sprintf("%s_%d%s", base, counter, Extension)
	}
	return name
}

// Add stores data under a unique name derived from base and returns that
// name.
func (a *Archive) Add(base string, data []byte) (string, error) {
	if a.closed {
		return "", fmt.Errorf("archive already closed")
	}
	name := UniqueName(base, a.names)
	w, err := a.zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return "", err
	}
	if _, err := w.Write(data); err != nil {
		return "", err
	}
	a.names[name] = true
	a.entries = append(a.entries, name)
	return name, nil
}

// Entries returns entry names in insertion order.
func (a *Archive) Entries() []string {
	return append([]string(nil), a.entries...)
}

// Bytes finalizes the archive and returns its bytes. No entries can be
// added afterwards.
func (a *Archive) Bytes() ([]byte, error) {
	if !a.closed {
		if err := a.zw.Close(); err != nil {
			return nil, err
		}
		a.closed = true
	}
	return a.buf.Bytes(), nil
}

// Entry describes one exported sheet.
type Entry struct {
	// Name is the archive entry name.
	Name string `json:"name"`
	// Sheet is the source sheet name.
	Sheet string `json:"sheet"`
	// Rows is the number of data rows written.
	Rows int `json:"rows"`
}

// Result is the outcome of WriteArchive.
type Result struct {
	// Data is the ZIP archive.
	Data []byte `json:"-"`
	// Entries lists written entries in sheet order.
	Entries []Entry `json:"entries"`
	// Skipped lists sheets without data rows.
	Skipped []string `json:"skipped,omitempty"`
}

// WriteArchive exports each sheet with at least one data row as a
// delimited document and packs them into one archive. Input sheets are
// not modified.
func WriteArchive(sheets []models.Sheet, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	a := NewArchive()
	result := &Result{Entries: []Entry{}}
	for _, sheet := range sheets {
		doc, ok, err := NewDocument(sheet)
		if err != nil {
			return nil, err
		}
		if !ok {
			result.Skipped = append(result.Skipped, sheet.Name)
			continue
		}
		data, err := doc.Render(opts)
		if err != nil {
			return nil, err
		}
		name, err := a.Add(Sanitize(sheet.Name), data)
		if err != nil {
			return nil, NewExportError(sheet.Name, "archive", err)
		}
		result.Entries = append(result.Entries, Entry{Name: name, Sheet: sheet.Name, Rows: len(doc.Body)})
	}

	data, err := a.Bytes()
	if err != nil {
		return nil, NewExportError("", "archive", err)
	}
	result.Data = data
	return result, nil
}
