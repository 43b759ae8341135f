package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
)

// readZip returns entry name to content, plus names in archive order.
func readZip(t *testing.T, data []byte) (map[string]string, []string) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	contents := make(map[string]string)
	var names []string
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, zip.Deflate, f.Method)
		contents[f.Name] = string(b)
		names = append(names, f.Name)
	}
	return contents, names
}

func TestUniqueName(t *testing.T) {
	taken := map[string]bool{}
	assert.Equal(t, "name.csv", UniqueName("name", taken))

	taken["name.csv"] = true
	assert.Equal(t, "name_1.csv", UniqueName("name", taken))

	taken["name_1.csv"] = true
	assert.Equal(t, "name_2.csv", UniqueName("name", taken))
}

func TestArchiveAdd(t *testing.T) {
	a := NewArchive()
	first, err := a.Add("name", []byte("a\n"))
	require.NoError(t, err)
	second, err := a.Add("name", []byte("b\n"))
	require.NoError(t, err)

	assert.Equal(t, "name.csv", first)
	assert.Equal(t, "name_1.csv", second)
	assert.Equal(t, []string{"name.csv", "name_1.csv"}, a.Entries())

	data, err := a.Bytes()
	require.NoError(t, err)
	contents, _ := readZip(t, data)
	assert.Equal(t, "a\n", contents["name.csv"])
	assert.Equal(t, "b\n", contents["name_1.csv"])

	_, err = a.Add("late", nil)
	assert.Error(t, err)
}

func TestWriteArchive(t *testing.T) {
	sheets := []models.Sheet{
		models.NewSheet("Report: Q1/2024", [][]models.Cell{
			{models.TextCell("Name"), models.TextCell("Amount")},
			{models.TextCell("  Bob  "), models.NumberCell(5)},
		}),
		models.NewSheet("Report Q1 2024", [][]models.Cell{
			{models.TextCell("Name")},
			{models.TextCell("Ann")},
			{models.TextCell("Cy")},
		}),
		models.NewSheet("Header only", [][]models.Cell{
			{models.TextCell("Name")},
		}),
	}

	result, err := WriteArchive(sheets, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, result.Entries, 2)
	assert.Equal(t, Entry{Name: "Report_Q1_2024.csv", Sheet: "Report: Q1/2024", Rows: 1}, result.Entries[0])
	assert.Equal(t, Entry{Name: "Report_Q1_2024_1.csv", Sheet: "Report Q1 2024", Rows: 2}, result.Entries[1])
	assert.Equal(t, []string{"Header only"}, result.Skipped)

	contents, names := readZip(t, result.Data)
	assert.Equal(t, []string{"Report_Q1_2024.csv", "Report_Q1_2024_1.csv"}, names)
	assert.Equal(t, "Name,Amount\nBob,5\n", contents["Report_Q1_2024.csv"])
	assert.Equal(t, "Name\nAnn\nCy\n", contents["Report_Q1_2024_1.csv"])

	// Inputs are read-only.
	assert.Equal(t, "  Bob  ", sheets[0].Rows[1][0].Text)
}

func TestWriteArchiveDeterministic(t *testing.T) {
	sheets := []models.Sheet{amountSheet()}

	first, err := WriteArchive(sheets, DefaultOptions())
	require.NoError(t, err)
	second, err := WriteArchive(sheets, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, first.Data, second.Data)
}

func TestWriteArchiveNoEntries(t *testing.T) {
	result, err := WriteArchive(nil, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Entries)

	contents, _ := readZip(t, result.Data)
	assert.Empty(t, contents)
}

func TestWriteArchiveRejectsOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Separator = ":"
	_, err := WriteArchive([]models.Sheet{amountSheet()}, opts)
	assert.True(t, errors.Is(err, ErrUnsupportedSeparator))

	opts = DefaultOptions()
	opts.Encoding = "utf-16"
	_, err = WriteArchive([]models.Sheet{amountSheet()}, opts)
	assert.True(t, errors.Is(err, ErrUnsupportedEncoding))
}

func TestWriteArchiveEncodingFailure(t *testing.T) {
	opts := DefaultOptions()
	opts.Encoding = EncodingLatin1
	sheets := []models.Sheet{models.NewSheet("Kanji", [][]models.Cell{
		{models.TextCell("Name")},
		{models.TextCell("漢字")},
	})}

	_, err := WriteArchive(sheets, opts)
	var exportErr *ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, "Kanji", exportErr.SheetName)
	assert.ErrorIs(t, err, ErrEncoding)
}
