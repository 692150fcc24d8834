// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/citescholar/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,abstract,authors,venue,year,publicationDate,externalIds,citationStyles"

// SemanticScholarProvider queries the Semantic Scholar Graph API. The API
// renders BibTeX itself via the citationStyles field, captured at lookup.
type SemanticScholarProvider struct {
	Client *http.Client
	APIKey string
}

// Name returns the provider identifier.
func (p *SemanticScholarProvider) Name() string { return "semantic_scholar" }

// Lookup searches Semantic Scholar by title and returns the first match.
func (p *SemanticScholarProvider) Lookup(ctx context.Context, title string, cfg types.LookupConfig) (types.Publication, error) {
	if strings.TrimSpace(title) == "" {
		return types.Publication{}, fmt.Errorf("empty title")
	}

	params := url.Values{
		"query":  {title},
		"limit":  {"1"},
		"fields": {semanticFields},
	}
	reqURL := semanticAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.Publication{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if p.APIKey != "" {
		req.Header.Set("x-api-key", p.APIKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return types.Publication{}, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Publication{}, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return types.Publication{}, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	if len(sr.Data) == 0 {
		return types.Publication{}, ErrNotFound
	}

	paper := sr.Data[0]
	pub := types.Publication{
		Title:    paper.Title,
		Abstract: paper.Abstract,
		Venue:    paper.Venue,
		Year:     paper.Year,
		DOI:      paper.ExternalIDs.DOI,
		Source:   "semantic_scholar",
	}

	for _, a := range paper.Authors {
		pub.Authors = append(pub.Authors, a.Name)
	}

	if paper.PublicationDate != "" {
		if t, parseErr := time.Parse("2006-01-02", paper.PublicationDate); parseErr == nil {
			pub.Date = t
		}
	} else if paper.Year > 0 {
		pub.Date = time.Date(paper.Year, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	// Identifier preference: arXiv ID, then DOI, then internal paper ID.
	switch {
	case paper.ExternalIDs.ArXiv != "":
		pub.Identifier = paper.ExternalIDs.ArXiv
	case paper.ExternalIDs.DOI != "":
		pub.Identifier = paper.ExternalIDs.DOI
	default:
		pub.Identifier = paper.PaperID
	}

	if paper.CitationStyles.BibTeX != "" {
		pub.Renderings = map[types.Style]string{
			types.StyleBibTeX: strings.TrimSpace(paper.CitationStyles.BibTeX),
		}
	}

	return pub, nil
}

// Render returns the BibTeX citation captured at lookup. Semantic Scholar
// renders no other style.
func (p *SemanticScholarProvider) Render(ctx context.Context, pub types.Publication, style types.Style, cfg types.LookupConfig) (string, error) {
	if style != types.StyleBibTeX {
		return "", &UnsupportedStyleError{
			Provider:  p.Name(),
			Style:     style,
			Supported: []types.Style{types.StyleBibTeX},
		}
	}

	text, ok := pub.Renderings[types.StyleBibTeX]
	if !ok || text == "" {
		return "", fmt.Errorf("record for %q carries no bibtex rendering", pub.Title)
	}
	return text, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID         string                 `json:"paperId"`
	Title           string                 `json:"title"`
	Abstract        string                 `json:"abstract"`
	Venue           string                 `json:"venue"`
	Year            int                    `json:"year"`
	PublicationDate string                 `json:"publicationDate"`
	Authors         []semanticAuthor       `json:"authors"`
	ExternalIDs     semanticExternalIDs    `json:"externalIds"`
	CitationStyles  semanticCitationStyles `json:"citationStyles"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI      string `json:"DOI"`
	ArXiv    string `json:"ArXiv"`
	CorpusID int    `json:"CorpusId"`
}

type semanticCitationStyles struct {
	BibTeX string `json:"bibtex"`
}
