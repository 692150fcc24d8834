// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citescholar CLI: look up a
// publication's citation by title via a scholarly-search API, print it
// in the requested style, and optionally save it to a SQLite database.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citescholar/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds provider credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if non-empty, otherwise the loaded
// secret value for key, otherwise "".
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command; running it performs the lookup pipeline.
var rootCmd = &cobra.Command{
	Use:   "citescholar",
	Short: "Get citations from scholarly search APIs and optionally save them to SQLite",
	Long: `citescholar searches a scholarly API for a publication by title, prints
its citation in the requested style, and saves it to a local SQLite
database unless told not to.

Examples:
  citescholar -t "Attention Is All You Need"
  citescholar -t "Attention Is All You Need" --provider crossref -c apa
  citescholar -t "Neural Networks" --no-save
  citescholar -t "Deep Learning" -s citations.db`,
	RunE: runCite,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadedSecrets = secrets.Load(".secrets/")
		if len(loadedSecrets) > 0 {
			keys := make([]string, 0, len(loadedSecrets))
			for k := range loadedSecrets {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citescholar.yaml or ~/.config/citescholar/config.yaml)")

	rootCmd.Flags().StringP("title", "t", "", "title of the paper to search for")
	rootCmd.Flags().StringP("cite", "c", "", "citation style (default bibtex)")
	rootCmd.Flags().Bool("no-save", false, "do not save the citation to the database")
	rootCmd.Flags().StringP("sqlite3", "s", "", "SQLite3 database file path (default citations.db)")
	rootCmd.Flags().String("provider", "", "search provider: semantic_scholar or crossref")
	rootCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.MarkFlagsMutuallyExclusive("no-save", "sqlite3")
	_ = rootCmd.MarkFlagRequired("title")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citescholar")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "citescholar"))
		}
	}

	viper.SetEnvPrefix("CITESCHOLAR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
