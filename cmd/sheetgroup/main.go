// Package main provides the CLI entry point for sheetgroup.
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetgroup-go/internal/config"
	"github.com/ukaji3/sheetgroup-go/internal/logger"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
)

var version = "dev"

// cli holds the state shared by every subcommand of one invocation.
type cli struct {
	configPath string
	logLevel   string
	pretty     bool
	password   string

	cfg       *config.Config
	logCloser io.Closer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	rootCmd := &cobra.Command{
		Use:   "sheetgroup",
		Short: "Group workbook sheets by structure and export them as CSV archives",
		Long: `sheetgroup compares a window of cells (usually the header row) across the
sheets of a workbook, groups sheets whose window content matches, and
exports whole workbooks, sheet subsets or groups as ZIP archives of CSV files.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logCloser != nil {
				c.logCloser.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "Configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&c.pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().StringVar(&c.password, "password", "", "Password of an encrypted workbook")

	rootCmd.AddCommand(
		newSheetsCmd(c),
		newClassifyCmd(c),
		newExportCmd(c),
		newServeCmd(c),
		newMCPCmd(c),
	)
	return rootCmd
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	closer, err := logger.Init(cfg.Log)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logCloser = closer
	return nil
}

// loadWorkbook reads the input file and rejects workbooks without data.
func (c *cli) loadWorkbook(cmd *cobra.Command, path string) (*models.Workbook, error) {
	wb, err := sheetgroup.LoadFile(cmd.Context(), path, sheetgroup.LoadOptions{Password: c.password})
	if err != nil {
		return nil, err
	}
	if wb.Empty() {
		logger.WarnLog(cmd.Context(), "%s has no sheets with data", path)
	}
	return wb, nil
}
