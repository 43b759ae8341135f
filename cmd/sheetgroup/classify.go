package main

import (
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetgroup-go/internal/logger"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/output"
)

type classifyResult struct {
	BookName string `json:"book_name"`
	*models.Classification
}

func newClassifyCmd(c *cli) *cobra.Command {
	var window windowFlags
	cmd := &cobra.Command{
		Use:   "classify [input.xlsx]",
		Short: "Group sheets by the content of a window of cells",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := window.resolve(cmd, c.cfg.Window)
			if err != nil {
				return err
			}
			wb, err := c.loadWorkbook(cmd, args[0])
			if err != nil {
				return err
			}

			cls, err := sheetgroup.Classify(cmd.Context(), wb, w)
			if err != nil {
				return err
			}
			for _, name := range cls.Clamped {
				logger.WarnLog(cmd.Context(), "window %s lies outside sheet %q", w, name)
			}
			return output.WriteJSON(cmd.OutOrStdout(), classifyResult{BookName: wb.BookName, Classification: cls}, c.pretty)
		},
	}
	window.register(cmd)
	return cmd
}
