package main

import (
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/output"
)

type sheetsResult struct {
	BookName string                `json:"book_name"`
	Sheets   []models.SheetSummary `json:"sheets"`
	Preview  []models.Sheet        `json:"preview,omitempty"`
}

func newSheetsCmd(c *cli) *cobra.Command {
	var preview int
	cmd := &cobra.Command{
		Use:   "sheets [input.xlsx]",
		Short: "List the sheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := c.loadWorkbook(cmd, args[0])
			if err != nil {
				return err
			}

			rows := c.cfg.Preview.Rows
			if cmd.Flags().Changed("preview") {
				rows = preview
			}
			result := sheetsResult{BookName: wb.BookName, Sheets: sheetgroup.Summaries(wb)}
			if rows > 0 {
				result.Preview = sheetgroup.Preview(wb, rows)
			}
			return output.WriteJSON(cmd.OutOrStdout(), result, c.pretty)
		},
	}
	cmd.Flags().IntVar(&preview, "preview", 0, "Rows to preview per sheet (0 disables)")
	return cmd
}
