package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citescholar/internal/store"
	"github.com/pdiddy/citescholar/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved citations to YAML or JSON",
	Long: `Export writes every saved citation to stdout in insertion order,
as YAML (default) or JSON.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	format, _ := cmd.Flags().GetString("format")

	s, err := store.Open(types.StoreConfig{Path: dbPath})
	if err != nil {
		return err
	}
	defer s.Close()

	return s.Export(cmd.Context(), os.Stdout, format)
}

func init() {
	exportCmd.Flags().String("db", "", "SQLite3 database file path (default citations.db)")
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	rootCmd.AddCommand(exportCmd)
}
