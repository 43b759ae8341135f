package sheetgroup

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/classify"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/export"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
)

// ArchiveSuffix ends every suggested archive name.
const ArchiveSuffix = "_csvs.zip"

// Archive is an export result together with its suggested file name.
type Archive struct {
	// Name is the suggested download file name.
	Name string `json:"name"`
	*export.Result
}

// Classify groups the workbook's sheets by their signature under w.
func Classify(ctx context.Context, wb *models.Workbook, w models.Window) (*models.Classification, error) {
	log := zerolog.Ctx(ctx)

	result, err := classify.Classify(wb.Sheets, w)
	if err != nil {
		return nil, err
	}
	if len(result.Clamped) > 0 {
		log.Debug().
			Strs("sheets", result.Clamped).
			Str("window", w.String()).
			Msg("window outside sheet extent")
	}
	log.Debug().
		Str("book", wb.BookName).
		Int("groups", len(result.Groups)).
		Msg("workbook classified")
	return result, nil
}

// Export archives the named sheets, or every sheet when names is empty.
func Export(ctx context.Context, wb *models.Workbook, names []string, opts export.Options) (*Archive, error) {
	sheets, missing := wb.Subset(names)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSheet, strings.Join(missing, ", "))
	}
	return write(ctx, sheets, ArchiveName(wb.BookName, ""), opts)
}

// ExportGroup archives the member sheets of the group with the given label.
func ExportGroup(ctx context.Context, wb *models.Workbook, cls *models.Classification, label string, opts export.Options) (*Archive, error) {
	group, ok := cls.Group(label)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, label)
	}
	sheets, missing := wb.Subset(group.Sheets)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSheet, strings.Join(missing, ", "))
	}
	return write(ctx, sheets, ArchiveName(wb.BookName, fmt.Sprintf("group_%02d", group.Index)), opts)
}

func write(ctx context.Context, sheets []models.Sheet, name string, opts export.Options) (*Archive, error) {
	result, err := export.WriteArchive(sheets, opts)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().
		Str("archive", name).
		Int("entries", len(result.Entries)).
		Strs("skipped", result.Skipped).
		Msg("archive written")
	return &Archive{Name: name, Result: result}, nil
}

// ArchiveName suggests a download name from the workbook file name, e.g.
// "Report Q1.xlsx" becomes "Report_Q1_csvs.zip". A non-empty part is
// appended after the stem.
func ArchiveName(bookName, part string) string {
	stem := strings.TrimSuffix(bookName, filepath.Ext(bookName))
	name := export.Sanitize(stem)
	if part != "" {
		name += "_" + export.Sanitize(part)
	}
	return name + ArchiveSuffix
}
