// Package tool exposes workbook classification and export as MCP tools.
package tool

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ukaji3/sheetgroup-go/internal/config"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/export"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/parser"
)

// MetadataListSheets describes the list_sheets tool.
var MetadataListSheets = &mcp.Tool{
	Name:        "list_sheets",
	Description: "List the content-bearing sheets of a workbook with their row and column counts.",
}

// MetadataClassifyWorkbook describes the classify_workbook tool.
var MetadataClassifyWorkbook = &mcp.Tool{
	Name: "classify_workbook",
	Description: "Group the sheets of a workbook by the normalized content of a window of cells, " +
		"usually the header row. Sheets whose window holds the same text after dropping " +
		"punctuation and case land in the same group. Returns one label per group with its sheets.",
}

// MetadataExportWorkbook describes the export_workbook tool.
var MetadataExportWorkbook = &mcp.Tool{
	Name: "export_workbook",
	Description: "Export sheets of a workbook as a base64 ZIP archive of delimited text files. " +
		"Exports every sheet, the sheets listed in 'sheets', or the members of the group named " +
		"by 'group' under the given window.",
}

// WorkbookInput carries an uploaded workbook.
type WorkbookInput struct {
	Content  string `json:"content" jsonschema:"base64-encoded workbook bytes"`
	FileName string `json:"file_name,omitempty" jsonschema:"workbook file name, used to name archives"`
	Password string `json:"password,omitempty" jsonschema:"password of an encrypted workbook"`
}

// WindowInput selects the cells compared across sheets.
type WindowInput struct {
	Range  string         `json:"range,omitempty" jsonschema:"A1-style range such as A1:J1; overrides window"`
	Window *models.Window `json:"window,omitempty" jsonschema:"rows are zero-based half-open, columns one-based inclusive"`
}

// InputListSheets is the input for the ListSheets tool.
type InputListSheets struct {
	WorkbookInput
}

// OutputListSheets is the output for the ListSheets tool.
type OutputListSheets struct {
	BookName string                `json:"book_name"`
	Sheets   []models.SheetSummary `json:"sheets"`
}

// InputClassifyWorkbook is the input for the ClassifyWorkbook tool.
type InputClassifyWorkbook struct {
	WorkbookInput
	WindowInput
}

// OutputClassifyWorkbook is the output for the ClassifyWorkbook tool.
type OutputClassifyWorkbook struct {
	BookName string         `json:"book_name"`
	Window   models.Window  `json:"window"`
	Groups   []models.Group `json:"groups"`
	// Clamped lists sheets with no cell inside the window.
	Clamped []string `json:"clamped,omitempty"`
}

// InputExportWorkbook is the input for the ExportWorkbook tool.
type InputExportWorkbook struct {
	WorkbookInput
	WindowInput
	Sheets        []string `json:"sheets,omitempty" jsonschema:"sheet names to export; all when empty"`
	Group         string   `json:"group,omitempty" jsonschema:"group label from classify_workbook; overrides sheets"`
	Separator     string   `json:"separator,omitempty" jsonschema:"one of comma, semicolon, tab, pipe"`
	Encoding      string   `json:"encoding,omitempty" jsonschema:"one of utf-8, utf-8-sig, latin-1"`
	IncludeIndex  bool     `json:"include_index,omitempty" jsonschema:"prepend a zero-based row index column"`
	MissingMarker *string  `json:"missing_marker,omitempty" jsonschema:"text written for missing values"`
}

// OutputExportWorkbook is the output for the ExportWorkbook tool.
type OutputExportWorkbook struct {
	ArchiveName string         `json:"archive_name"`
	Archive     string         `json:"archive"`
	Entries     []export.Entry `json:"entries"`
	Skipped     []string       `json:"skipped,omitempty"`
}

// Tools binds tool handlers to configured defaults.
type Tools struct {
	cfg *config.Config
}

// NewTools creates the tool handlers.
func NewTools(cfg *config.Config) *Tools {
	return &Tools{cfg: cfg}
}

// ListSheets describes the sheets of a workbook.
func (t *Tools) ListSheets(ctx context.Context, _ *mcp.CallToolRequest, input InputListSheets) (*mcp.CallToolResult, OutputListSheets, error) {
	wb, err := t.load(ctx, input.WorkbookInput)
	if err != nil {
		return nil, OutputListSheets{}, err
	}
	return nil, OutputListSheets{BookName: wb.BookName, Sheets: sheetgroup.Summaries(wb)}, nil
}

// ClassifyWorkbook groups the sheets of a workbook.
func (t *Tools) ClassifyWorkbook(ctx context.Context, _ *mcp.CallToolRequest, input InputClassifyWorkbook) (*mcp.CallToolResult, OutputClassifyWorkbook, error) {
	w, err := t.window(input.WindowInput)
	if err != nil {
		return nil, OutputClassifyWorkbook{}, err
	}
	wb, err := t.load(ctx, input.WorkbookInput)
	if err != nil {
		return nil, OutputClassifyWorkbook{}, err
	}
	cls, err := sheetgroup.Classify(ctx, wb, w)
	if err != nil {
		return nil, OutputClassifyWorkbook{}, err
	}
	return nil, OutputClassifyWorkbook{
		BookName: wb.BookName,
		Window:   cls.Window,
		Groups:   cls.Groups,
		Clamped:  cls.Clamped,
	}, nil
}

// ExportWorkbook archives sheets of a workbook.
func (t *Tools) ExportWorkbook(ctx context.Context, _ *mcp.CallToolRequest, input InputExportWorkbook) (*mcp.CallToolResult, OutputExportWorkbook, error) {
	opts, err := t.exportOptions(input)
	if err != nil {
		return nil, OutputExportWorkbook{}, err
	}
	wb, err := t.load(ctx, input.WorkbookInput)
	if err != nil {
		return nil, OutputExportWorkbook{}, err
	}

	var archive *sheetgroup.Archive
	if input.Group != "" {
		w, err := t.window(input.WindowInput)
		if err != nil {
			return nil, OutputExportWorkbook{}, err
		}
		cls, err := sheetgroup.Classify(ctx, wb, w)
		if err != nil {
			return nil, OutputExportWorkbook{}, err
		}
		archive, err = sheetgroup.ExportGroup(ctx, wb, cls, input.Group, opts)
		if err != nil {
			return nil, OutputExportWorkbook{}, err
		}
	} else {
		archive, err = sheetgroup.Export(ctx, wb, input.Sheets, opts)
		if err != nil {
			return nil, OutputExportWorkbook{}, err
		}
	}

	return nil, OutputExportWorkbook{
		ArchiveName: archive.Name,
		Archive:     base64.StdEncoding.EncodeToString(archive.Data),
		Entries:     archive.Entries,
		Skipped:     archive.Skipped,
	}, nil
}

func (t *Tools) load(ctx context.Context, input WorkbookInput) (*models.Workbook, error) {
	if input.Content == "" {
		return nil, fmt.Errorf("content is required")
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(input.Content))
	if err != nil {
		return nil, fmt.Errorf("content must be base64: %w", err)
	}
	name := input.FileName
	if name == "" {
		name = "workbook.xlsx"
	}
	wb, err := sheetgroup.Load(ctx, bytes.NewReader(data), name, sheetgroup.LoadOptions{Password: input.Password})
	if err != nil {
		return nil, err
	}
	if wb.Empty() {
		return nil, fmt.Errorf("workbook %s has no sheets with data", name)
	}
	return wb, nil
}

func (t *Tools) window(input WindowInput) (models.Window, error) {
	if input.Range != "" {
		return parser.ParseWindow(input.Range)
	}
	w := t.cfg.Window
	if input.Window != nil {
		w = *input.Window
	}
	return w, w.Validate()
}

func (t *Tools) exportOptions(input InputExportWorkbook) (export.Options, error) {
	opts := t.cfg.Export
	if input.Separator != "" {
		sep, err := export.ParseSeparator(input.Separator)
		if err != nil {
			return opts, err
		}
		opts.Separator = sep
	}
	if input.Encoding != "" {
		enc, err := export.ParseEncoding(input.Encoding)
		if err != nil {
			return opts, err
		}
		opts.Encoding = enc
	}
	if input.IncludeIndex {
		opts.IncludeIndex = true
	}
	if input.MissingMarker != nil {
		opts.MissingMarker = *input.MissingMarker
	}
	return opts, opts.Validate()
}
