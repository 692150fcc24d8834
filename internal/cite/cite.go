// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite orchestrates the lookup pipeline: validate the title,
// query the provider, render the citation, optionally persist it.
package cite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/citescholar/internal/scholar"
	"github.com/pdiddy/citescholar/internal/store"
	"github.com/pdiddy/citescholar/pkg/types"
)

// Options holds the per-invocation pipeline parameters.
type Options struct {
	// Title is the paper title to search for. Required.
	Title string

	// Style is the citation style. Empty means bibtex.
	Style types.Style

	// NoSave skips persistence entirely.
	NoSave bool

	// DBPath is the SQLite database file. Empty means store.DefaultPath.
	DBPath string
}

// Run executes one lookup: it validates opts, queries provider for the
// first record matching the title, writes the rendered citation to out,
// and inserts it into the database unless opts.NoSave is set. Progress
// messages go to msg. The store is opened only after a successful
// render, so lookup and style failures never touch the database file.
func Run(ctx context.Context, provider scholar.Provider, opts Options, cfg types.LookupConfig, out, msg io.Writer) error {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		return fmt.Errorf("title is required")
	}

	style := opts.Style
	if style == "" {
		style = types.StyleBibTeX
	}

	pub, err := provider.Lookup(ctx, title, cfg)
	if err != nil {
		if errors.Is(err, scholar.ErrNotFound) {
			return fmt.Errorf("no publication matching %q found via %s", title, provider.Name())
		}
		return err
	}

	fmt.Fprintf(msg, "Found: %s\n", Summary(pub))

	citation, err := Format(ctx, provider, pub, style, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, citation)

	if opts.NoSave {
		return nil
	}

	s, err := store.Open(types.StoreConfig{Path: opts.DBPath})
	if err != nil {
		return err
	}
	defer s.Close()

	added, err := s.Insert(ctx, pub.Title, string(style), citation)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(msg, "Saved to %s\n", s.Path())
	} else {
		fmt.Fprintf(msg, "Citation already saved in %s\n", s.Path())
	}
	return nil
}

// Format renders pub in the requested style. The csl pseudo-style is a
// serialization of the record itself and is handled locally; every other
// style is rendered by the provider.
func Format(ctx context.Context, provider scholar.Provider, pub types.Publication, style types.Style, cfg types.LookupConfig) (string, error) {
	if style == types.StyleCSL {
		return scholar.FormatCSL(pub)
	}
	return provider.Render(ctx, pub, style, cfg)
}

// Summary returns a one-line human-readable description of the record.
func Summary(pub types.Publication) string {
	var b strings.Builder
	b.WriteString(pub.Title)

	if len(pub.Authors) > 0 {
		b.WriteString(" - ")
		if len(pub.Authors) > 3 {
			b.WriteString(strings.Join(pub.Authors[:3], ", "))
			b.WriteString(" et al.")
		} else {
			b.WriteString(strings.Join(pub.Authors, ", "))
		}
	}

	var details []string
	if pub.Venue != "" {
		details = append(details, pub.Venue)
	}
	if pub.Year > 0 {
		details = append(details, fmt.Sprintf("%d", pub.Year))
	}
	if len(details) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(details, ", "))
		b.WriteString(")")
	}

	return b.String()
}
