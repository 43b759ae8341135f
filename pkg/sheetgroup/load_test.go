package sheetgroup

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes an in-memory workbook whose sheets hold the given
// rows, in order. The default first sheet is renamed to the first name.
func buildWorkbook(t *testing.T, names []string, rows map[string][][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range names {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range rows[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func scenarioWorkbook(t *testing.T) []byte {
	return buildWorkbook(t, []string{"S1", "S2", "Blank", "S3"}, map[string][][]interface{}{
		"S1": {{"H1", "H2"}, {"a", 1}},
		"S2": {{"H1", "H2"}, {"b", 2}},
		"S3": {{"X"}, {"c"}},
	})
}

func TestLoad(t *testing.T) {
	data := scenarioWorkbook(t)

	wb, err := Load(context.Background(), bytes.NewReader(data), "book.xlsx", DefaultLoadOptions())
	require.NoError(t, err)

	assert.Equal(t, "book.xlsx", wb.BookName)
	assert.Equal(t, []string{"S1", "S2", "S3"}, wb.Names())
	s1, ok := wb.Sheet("S1")
	require.True(t, ok)
	assert.Equal(t, 2, s1.RowCount())
	assert.Equal(t, 2, s1.ColumnCount())
	assert.Equal(t, "1", s1.Cell(1, 1).String())
}

func TestLoadSelectedSheets(t *testing.T) {
	data := scenarioWorkbook(t)

	wb, err := Load(context.Background(), bytes.NewReader(data), "book.xlsx", LoadOptions{Sheets: []string{"S3"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"S3"}, wb.Names())
}

func TestLoadInvalidFormat(t *testing.T) {
	_, err := Load(context.Background(), strings.NewReader("not a workbook"), "bad.xlsx", DefaultLoadOptions())
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestLoadEmptyWorkbook(t *testing.T) {
	data := buildWorkbook(t, []string{"Only"}, nil)

	wb, err := Load(context.Background(), bytes.NewReader(data), "empty.xlsx", DefaultLoadOptions())
	require.NoError(t, err)
	assert.True(t, wb.Empty())
	assert.NotNil(t, wb.Sheets)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, os.WriteFile(path, scenarioWorkbook(t), 0o644))

	wb, err := LoadFile(context.Background(), path, DefaultLoadOptions())
	require.NoError(t, err)
	assert.Equal(t, "book.xlsx", wb.BookName)
	assert.Len(t, wb.Sheets, 3)

	_, err = LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"), DefaultLoadOptions())
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestSummariesAndPreview(t *testing.T) {
	data := buildWorkbook(t, []string{"Long"}, map[string][][]interface{}{
		"Long": {{"id"}, {1}, {2}, {3}, {4}},
	})
	wb, err := Load(context.Background(), bytes.NewReader(data), "long.xlsx", DefaultLoadOptions())
	require.NoError(t, err)

	summaries := Summaries(wb)
	require.Len(t, summaries, 1)
	assert.Equal(t, 5, summaries[0].Rows)
	assert.Equal(t, "A1:A5", summaries[0].DataRange)

	preview := Preview(wb, 2)
	require.Len(t, preview, 1)
	assert.Equal(t, 2, preview[0].RowCount())
	assert.Equal(t, 5, Preview(wb, 0)[0].RowCount())
}
