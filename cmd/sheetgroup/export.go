package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetgroup-go/internal/logger"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/export"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/output"
)

type exportResult struct {
	Path    string         `json:"path"`
	Entries []export.Entry `json:"entries"`
	Skipped []string       `json:"skipped,omitempty"`
}

func newExportCmd(c *cli) *cobra.Command {
	var (
		window     windowFlags
		opts       exportFlags
		sheets     []string
		group      string
		outputPath string
	)
	cmd := &cobra.Command{
		Use:   "export [input.xlsx]",
		Short: "Export sheets as a ZIP archive of CSV files",
		Long: `Export every sheet of a workbook, the sheets named with --sheet, or the
members of the group named with --group, as a ZIP archive of CSV files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			exportOpts, err := opts.resolve(cmd, c.cfg.Export)
			if err != nil {
				return err
			}
			wb, err := c.loadWorkbook(cmd, args[0])
			if err != nil {
				return err
			}

			var archive *sheetgroup.Archive
			if group != "" {
				w, err := window.resolve(cmd, c.cfg.Window)
				if err != nil {
					return err
				}
				cls, err := sheetgroup.Classify(ctx, wb, w)
				if err != nil {
					return err
				}
				archive, err = sheetgroup.ExportGroup(ctx, wb, cls, group, exportOpts)
				if err != nil {
					return err
				}
			} else {
				archive, err = sheetgroup.Export(ctx, wb, sheets, exportOpts)
				if err != nil {
					return err
				}
			}

			path := archivePath(outputPath, archive.Name)
			if err := os.WriteFile(path, archive.Data, 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			logger.InfoLog(ctx, "wrote %d entries to %s", len(archive.Entries), path)

			return output.WriteJSON(cmd.OutOrStdout(), exportResult{
				Path:    path,
				Entries: archive.Entries,
				Skipped: archive.Skipped,
			}, c.pretty)
		},
	}
	window.register(cmd)
	opts.register(cmd)
	cmd.Flags().StringArrayVar(&sheets, "sheet", nil, "Sheet to export (repeatable; default: all)")
	cmd.Flags().StringVar(&group, "group", "", "Export the members of the group with this label")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file or directory (default: suggested name in the current directory)")
	cmd.MarkFlagsMutuallyExclusive("sheet", "group")
	return cmd
}

// archivePath resolves -o: an existing directory receives the suggested
// name, anything else is used as the file path.
func archivePath(outputPath, suggested string) string {
	if outputPath == "" {
		return suggested
	}
	if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		return filepath.Join(outputPath, suggested)
	}
	return outputPath
}
