package sheetgroup

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/export"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
)

func loadScenario(t *testing.T) *models.Workbook {
	t.Helper()
	wb, err := Load(context.Background(), bytes.NewReader(scenarioWorkbook(t)), "Quarterly Report.xlsx", DefaultLoadOptions())
	require.NoError(t, err)
	return wb
}

func zipEntries(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		out[f.Name] = string(b)
	}
	return out
}

func TestClassifyWorkbook(t *testing.T) {
	wb := loadScenario(t)

	cls, err := Classify(context.Background(), wb, models.Window{StartRow: 0, EndRow: 1, StartCol: 1, EndCol: 3})
	require.NoError(t, err)
	require.Len(t, cls.Groups, 2)
	assert.Equal(t, []string{"S1", "S2"}, cls.Groups[0].Sheets)
	assert.Equal(t, []string{"S3"}, cls.Groups[1].Sheets)

	_, err = Classify(context.Background(), wb, models.Window{StartRow: 1, EndRow: 0, StartCol: 1, EndCol: 3})
	assert.True(t, errors.Is(err, ErrInvalidWindow))
}

func TestExportGroup(t *testing.T) {
	wb := loadScenario(t)
	cls, err := Classify(context.Background(), wb, models.Window{StartRow: 0, EndRow: 1, StartCol: 1, EndCol: 3})
	require.NoError(t, err)

	archive, err := ExportGroup(context.Background(), wb, cls, cls.Groups[0].Label, export.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "Quarterly_Report_group_01_csvs.zip", archive.Name)

	entries := zipEntries(t, archive.Data)
	assert.Equal(t, map[string]string{
		"S1.csv": "H1,H2\na,1\n",
		"S2.csv": "H1,H2\nb,2\n",
	}, entries)

	_, err = ExportGroup(context.Background(), wb, cls, "Group 99", export.DefaultOptions())
	assert.True(t, errors.Is(err, ErrUnknownGroup))
}

func TestExport(t *testing.T) {
	wb := loadScenario(t)

	archive, err := Export(context.Background(), wb, nil, export.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "Quarterly_Report_csvs.zip", archive.Name)
	assert.Len(t, zipEntries(t, archive.Data), 3)

	archive, err = Export(context.Background(), wb, []string{"S3"}, export.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"S3.csv": "X\nc\n"}, zipEntries(t, archive.Data))

	_, err = Export(context.Background(), wb, []string{"S3", "Nope"}, export.DefaultOptions())
	assert.True(t, errors.Is(err, ErrUnknownSheet))
}

func TestArchiveName(t *testing.T) {
	tests := []struct {
		book, part, want string
	}{
		{"Report Q1.xlsx", "", "Report_Q1_csvs.zip"},
		{"data.xls", "group_02", "data_group_02_csvs.zip"},
		{"", "", "sheet_csvs.zip"},
		{"a/b:c.xlsx", "", "a_b_c_csvs.zip"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ArchiveName(tt.book, tt.part))
	}
}
