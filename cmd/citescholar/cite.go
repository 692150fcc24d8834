package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citescholar/internal/cite"
	"github.com/pdiddy/citescholar/internal/scholar"
	"github.com/pdiddy/citescholar/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "citescholar/0.1"
	defaultProvider  = "semantic_scholar"
)

// runCite executes the lookup pipeline on the root command. Flag values
// win over config file values, which win over built-in defaults.
func runCite(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")

	style, _ := cmd.Flags().GetString("cite")
	if style == "" {
		style = viper.GetString("style")
	}

	dbPath, _ := cmd.Flags().GetString("sqlite3")
	if dbPath == "" {
		dbPath = viper.GetString("database")
	}

	providerName, _ := cmd.Flags().GetString("provider")
	if providerName == "" {
		providerName = viper.GetString("provider")
	}
	if providerName == "" {
		providerName = defaultProvider
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	cfg := types.LookupConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Provider:              providerName,
		SemanticScholarAPIKey: secretDefault("semantic-scholar-api-key", viper.GetString("semantic_scholar_api_key")),
		CrossrefMailto:        secretDefault("crossref-mailto", viper.GetString("crossref_mailto")),
	}

	client := &http.Client{Timeout: cfg.Timeout}
	provider, err := scholar.New(providerName, client, cfg)
	if err != nil {
		return err
	}

	noSave, _ := cmd.Flags().GetBool("no-save")

	opts := cite.Options{
		Title:  title,
		Style:  types.Style(style),
		NoSave: noSave,
		DBPath: dbPath,
	}
	return cite.Run(cmd.Context(), provider, opts, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
