// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar queries scholarly-search providers for bibliographic
// records and provider-rendered citations.
package scholar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/citescholar/pkg/types"
)

// ErrNotFound reports that no publication matched the searched title.
var ErrNotFound = errors.New("no matching publication found")

// Provider looks up a publication by title and renders citations in the
// styles the provider itself supports. Each provider (Semantic Scholar,
// Crossref) implements this interface per the Strategy pattern.
type Provider interface {
	Name() string

	// Lookup returns the first record matching title, or ErrNotFound.
	Lookup(ctx context.Context, title string, cfg types.LookupConfig) (types.Publication, error)

	// Render returns pub formatted in style, or an *UnsupportedStyleError
	// when the provider cannot render that style.
	Render(ctx context.Context, pub types.Publication, style types.Style, cfg types.LookupConfig) (string, error)
}

// UnsupportedStyleError reports a citation style the provider cannot render.
type UnsupportedStyleError struct {
	Provider  string
	Style     types.Style
	Supported []types.Style
}

func (e *UnsupportedStyleError) Error() string {
	supported := make([]string, len(e.Supported))
	for i, s := range e.Supported {
		supported[i] = string(s)
	}
	return fmt.Sprintf("style %q is not supported by %s (supported: %s)",
		e.Style, e.Provider, strings.Join(supported, ", "))
}

// New returns the provider registered under name. An empty name selects
// Semantic Scholar. Credentials come from cfg.
func New(name string, client *http.Client, cfg types.LookupConfig) (Provider, error) {
	switch name {
	case "", "semantic_scholar":
		return &SemanticScholarProvider{Client: client, APIKey: cfg.SemanticScholarAPIKey}, nil
	case "crossref":
		return &CrossrefProvider{Client: client, Mailto: cfg.CrossrefMailto}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q: use semantic_scholar or crossref", name)
	}
}
