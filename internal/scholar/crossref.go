// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/citescholar/pkg/types"
)

// crossrefAPIBase is the Crossref works endpoint, used both for title
// search and for the content-negotiation transform that renders
// citations. Declared as a var so tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// CrossrefProvider queries the Crossref REST API. Crossref renders
// citations server-side through content negotiation: BibTeX via
// application/x-bibtex and any CSL style (apa, chicago, ...) via
// text/x-bibliography.
type CrossrefProvider struct {
	Client *http.Client
	// Mailto is sent as the mailto parameter for polite pool access.
	Mailto string
}

// Name returns the provider identifier.
func (p *CrossrefProvider) Name() string { return "crossref" }

// Lookup searches Crossref by title and returns the first match.
func (p *CrossrefProvider) Lookup(ctx context.Context, title string, cfg types.LookupConfig) (types.Publication, error) {
	if strings.TrimSpace(title) == "" {
		return types.Publication{}, fmt.Errorf("empty title")
	}

	params := url.Values{
		"query.title": {title},
		"rows":        {"1"},
	}
	if p.Mailto != "" {
		params.Set("mailto", p.Mailto)
	}
	reqURL := crossrefAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.Publication{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return types.Publication{}, fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Publication{}, fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return types.Publication{}, fmt.Errorf("parsing Crossref response: %w", err)
	}

	if len(cr.Message.Items) == 0 {
		return types.Publication{}, ErrNotFound
	}

	return crossrefToPublication(cr.Message.Items[0]), nil
}

// Render asks the Crossref transform endpoint to format pub in style.
// An HTTP 406 from the endpoint means the style is unknown to Crossref.
func (p *CrossrefProvider) Render(ctx context.Context, pub types.Publication, style types.Style, cfg types.LookupConfig) (string, error) {
	if pub.DOI == "" {
		return "", fmt.Errorf("record for %q carries no DOI, cannot render via Crossref", pub.Title)
	}

	reqURL := crossrefAPIBase + "/" + url.PathEscape(pub.DOI) + "/transform"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	if style == types.StyleBibTeX {
		req.Header.Set("Accept", "application/x-bibtex")
	} else {
		req.Header.Set("Accept", fmt.Sprintf("text/x-bibliography; style=%s", style))
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("Crossref transform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotAcceptable {
		return "", &UnsupportedStyleError{
			Provider:  p.Name(),
			Style:     style,
			Supported: []types.Style{types.StyleBibTeX, types.StyleAPA},
		}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Crossref transform returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading Crossref transform response: %w", err)
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "", fmt.Errorf("Crossref returned an empty %s rendering for %s", style, pub.DOI)
	}
	return text, nil
}

// crossrefToPublication maps a Crossref work item onto a Publication.
func crossrefToPublication(item crossrefWork) types.Publication {
	pub := types.Publication{
		Identifier: item.DOI,
		DOI:        item.DOI,
		Abstract:   item.Abstract,
		Source:     "crossref",
	}

	if len(item.Title) > 0 {
		pub.Title = item.Title[0]
	}
	if len(item.ContainerTitle) > 0 {
		pub.Venue = item.ContainerTitle[0]
	}

	for _, a := range item.Author {
		name := strings.TrimSpace(a.Given + " " + a.Family)
		if name != "" {
			pub.Authors = append(pub.Authors, name)
		}
	}

	// Issued date-parts: [[year, month, day]] with month and day optional.
	if len(item.Issued.DateParts) > 0 && len(item.Issued.DateParts[0]) > 0 {
		parts := item.Issued.DateParts[0]
		pub.Year = parts[0]
		month, day := 1, 1
		if len(parts) > 1 {
			month = parts[1]
		}
		if len(parts) > 2 {
			day = parts[2]
		}
		pub.Date = time.Date(parts[0], time.Month(month), day, 0, 0, 0, 0, time.UTC)
	}

	return pub
}

// Crossref API JSON structures.
type crossrefResponse struct {
	Status  string          `json:"status"`
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	Items []crossrefWork `json:"items"`
}

type crossrefWork struct {
	DOI            string           `json:"DOI"`
	Title          []string         `json:"title"`
	ContainerTitle []string         `json:"container-title"`
	Author         []crossrefAuthor `json:"author"`
	Issued         crossrefDate     `json:"issued"`
	Abstract       string           `json:"abstract"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}
