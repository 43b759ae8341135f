package main

import (
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/export"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/parser"
)

// windowFlags selects the cells compared across sheets.
type windowFlags struct {
	rangeRef string
	startRow int
	endRow   int
	startCol int
	endCol   int
}

func (f *windowFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.rangeRef, "range", "", "Window as an A1 range, e.g. A1:J1 (overrides the bounds flags)")
	cmd.Flags().IntVar(&f.startRow, "start-row", 0, "First window row, zero-based")
	cmd.Flags().IntVar(&f.endRow, "end-row", 1, "Window end row, zero-based exclusive")
	cmd.Flags().IntVar(&f.startCol, "start-col", 1, "First window column, one-based")
	cmd.Flags().IntVar(&f.endCol, "end-col", 10, "Last window column, one-based inclusive")
}

// resolve applies explicitly set flags over the configured window.
func (f *windowFlags) resolve(cmd *cobra.Command, def models.Window) (models.Window, error) {
	if f.rangeRef != "" {
		return parser.ParseWindow(f.rangeRef)
	}
	w := def
	if cmd.Flags().Changed("start-row") {
		w.StartRow = f.startRow
	}
	if cmd.Flags().Changed("end-row") {
		w.EndRow = f.endRow
	}
	if cmd.Flags().Changed("start-col") {
		w.StartCol = f.startCol
	}
	if cmd.Flags().Changed("end-col") {
		w.EndCol = f.endCol
	}
	return w, w.Validate()
}

// exportFlags configures delimited output.
type exportFlags struct {
	separator string
	encoding  string
	index     bool
	missing   string
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.separator, "sep", "", "Field separator: comma, semicolon, tab, pipe")
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "Text encoding: utf-8, utf-8-sig, latin-1")
	cmd.Flags().BoolVar(&f.index, "index", false, "Prepend a zero-based row index column")
	cmd.Flags().StringVar(&f.missing, "missing", "", "Text written for missing values")
}

func (f *exportFlags) resolve(cmd *cobra.Command, def export.Options) (export.Options, error) {
	opts := def
	if f.separator != "" {
		sep, err := export.ParseSeparator(f.separator)
		if err != nil {
			return opts, err
		}
		opts.Separator = sep
	}
	if f.encoding != "" {
		enc, err := export.ParseEncoding(f.encoding)
		if err != nil {
			return opts, err
		}
		opts.Encoding = enc
	}
	if cmd.Flags().Changed("index") {
		opts.IncludeIndex = f.index
	}
	if cmd.Flags().Changed("missing") {
		opts.MissingMarker = f.missing
	}
	return opts, opts.Validate()
}
