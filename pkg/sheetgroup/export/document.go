package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tiendc/go-deepcopy"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
)

// Document is one sheet prepared for delimited output: row 0 supplies the
// header, the remaining rows the body.
type Document struct {
	SheetName string
	Header    []string
	Body      [][]models.Cell
	Columns   []ColumnKind
}

// NewDocument prepares a sheet for export on a private copy, so the input
// sheet is never modified. ok is false for sheets with no data rows.
func NewDocument(sheet models.Sheet) (doc *Document, ok bool, err error) {
	if sheet.RowCount() < 2 {
		return nil, false, nil
	}

	var work models.Sheet
	if err := deepcopy.Copy(&work, &sheet); err != nil {
		return nil, false, NewExportError(sheet.Name, "copy", err)
	}

	width := work.ColumnCount()
	// Header names are trimmed like body text.
	header := make([]string, width)
	for i, cell := range work.Rows[0] {
		if cell.Kind != models.CellEmpty {
			header[i] = strings.TrimSpace(cell.String())
		}
	}

	body := work.Rows[1:]
	kinds := TagColumns(body, width)
	cleanText(body, kinds)

	return &Document{
		SheetName: sheet.Name,
		Header:    header,
		Body:      body,
		Columns:   kinds,
	}, true, nil
}

// Render serializes the document as delimited text in the configured
// encoding.
func (d *Document) Render(opts Options) ([]byte, error) {
	sep, _ := utf8.DecodeRuneInString(string(opts.Separator))
	if sep == utf8.RuneError {
		sep = ','
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = sep

	header := d.Header
	if opts.IncludeIndex {
		header = append([]string{""}, header...)
	}
	if err := w.Write(header); err != nil {
		return nil, NewExportError(d.SheetName, "serialize", err)
	}

	record := make([]string, 0, len(header))
	for i, row := range d.Body {
		record = record[:0]
		if opts.IncludeIndex {
			record = append(record, strconv.Itoa(i))
		}
		for _, cell := range row {
			if cell.Kind == models.CellEmpty {
				record = append(record, opts.MissingMarker)
				continue
			}
			record = append(record, cell.String())
		}
		if err := w.Write(record); err != nil {
			return nil, NewExportError(d.SheetName, "serialize", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, NewExportError(d.SheetName, "serialize", err)
	}

	data, err := encode(buf.Bytes(), opts.Encoding)
	if err != nil {
		return nil, NewExportError(d.SheetName, "encode", err)
	}
	return data, nil
}
