// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citescholar/internal/store"
	"github.com/pdiddy/citescholar/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List citations saved in the database",
	Long: `List prints the citations saved in the local SQLite database, newest
first, as a table or as JSON.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := store.Open(types.StoreConfig{Path: dbPath})
	if err != nil {
		return err
	}
	defer s.Close()

	citations, err := s.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(citations)
	}

	if len(citations) == 0 {
		fmt.Println("No citations saved.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-60s  %-8s  %s\n", "ID", "Title", "Style", "Saved")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 96))

	for _, c := range citations {
		title := c.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-60s  %-8s  %s\n",
			c.ID, title, c.Style, c.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintf(os.Stdout, "\n%d citation(s)\n", len(citations))
	return nil
}

func init() {
	listCmd.Flags().String("db", "", "SQLite3 database file path (default citations.db)")
	listCmd.Flags().Int("limit", 0, "maximum rows to list (0 = all)")
	listCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(listCmd)
}
