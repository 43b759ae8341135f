package sheetgroup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/parser"
	"github.com/xuri/excelize/v2"
)

// LoadFile loads a workbook from disk.
func LoadFile(ctx context.Context, path string, opts LoadOptions) (*models.Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	return Load(ctx, f, filepath.Base(path), opts)
}

// Load reads every sheet of a workbook into typed grids. Sheets with zero
// rows and zero columns are dropped. A workbook without content-bearing
// sheets is returned without error; see Workbook.Empty.
func Load(ctx context.Context, r io.Reader, bookName string, opts LoadOptions) (*models.Workbook, error) {
	log := zerolog.Ctx(ctx)

	f, err := excelize.OpenReader(r, excelize.Options{Password: opts.Password})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	wb := &models.Workbook{BookName: bookName, Sheets: []models.Sheet{}}
	for _, sheetName := range f.GetSheetList() {
		if !opts.wants(sheetName) {
			continue
		}
		sheet, err := parser.ReadSheet(f, sheetName)
		if err != nil {
			return nil, NewLoadError(sheetName, err)
		}
		if sheet.IsEmpty() {
			log.Debug().Str("sheet", sheetName).Msg("dropping empty sheet")
			continue
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	log.Debug().
		Str("book", bookName).
		Int("sheets", len(wb.Sheets)).
		Msg("workbook loaded")
	return wb, nil
}

// Summaries describes every sheet of a workbook.
func Summaries(wb *models.Workbook) []models.SheetSummary {
	out := make([]models.SheetSummary, len(wb.Sheets))
	for i, s := range wb.Sheets {
		out[i] = parser.Summarize(s)
	}
	return out
}

// Preview returns the first n rows of every sheet; n <= 0 uses
// DefaultPreviewRows.
func Preview(wb *models.Workbook, n int) []models.Sheet {
	if n <= 0 {
		n = DefaultPreviewRows
	}
	out := make([]models.Sheet, len(wb.Sheets))
	for i, s := range wb.Sheets {
		out[i] = s.Head(n)
	}
	return out
}
