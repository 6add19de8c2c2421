package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/casebook/internal/api"
	"github.com/fyrsmithlabs/casebook/internal/config"
	"github.com/fyrsmithlabs/casebook/internal/export"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export case data to a file",
}

var exportJSONCmd = &cobra.Command{
	Use:   "json",
	Short: "Write a full JSON backup of all cases and sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, func(cases []api.Case, now time.Time) (string, []byte, error) {
			buf, err := export.JSONBackup(cases, now)
			return export.BackupFilename(now), buf, err
		})
	},
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Write a CSV spreadsheet of all cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, func(cases []api.Case, now time.Time) (string, []byte, error) {
			return export.CSVFilename(now), export.CSV(cases), nil
		})
	},
}

var exportXLSXCmd = &cobra.Command{
	Use:   "xlsx",
	Short: "Write an Excel workbook of all cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, func(cases []api.Case, now time.Time) (string, []byte, error) {
			buf, err := export.XLSX(cases)
			return export.XLSXFilename(now), buf, err
		})
	},
}

// runExport fetches the case list, renders it with the given encoder, and
// records the export time in local state.
func runExport(cmd *cobra.Command, encode func([]api.Case, time.Time) (string, []byte, error)) error {
	now := time.Now()

	cases, err := client.ListCases(cmd.Context())
	if err != nil {
		return err
	}

	name, content, err := encode(cases, now)
	if err != nil {
		return err
	}

	path := filepath.Join(exportDir, name)
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}

	statePath, err := config.DefaultStatePath()
	if err == nil {
		state, loadErr := config.LoadState(statePath)
		if loadErr != nil {
			state = &config.State{}
		}
		state.LastExportAt = now
		if saveErr := state.Save(statePath); saveErr != nil {
			logger.Warn("could not record export time", zap.Error(saveErr))
		}
	}

	fmt.Printf("Exported %d cases to %s\n", len(cases), path)
	return nil
}

func init() {
	exportCmd.PersistentFlags().StringVar(&exportDir, "out", ".", "directory to write the export file to")
	exportCmd.AddCommand(exportJSONCmd)
	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportXLSXCmd)
}
