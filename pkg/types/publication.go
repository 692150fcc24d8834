// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the citescholar CLI:
// the bibliographic record returned by a search provider, the citation
// style token, and the configuration structs bound from flags and config.
package types

import "time"

// Style is a citation style token. Known values are the constants below;
// other tokens pass through to the provider and fail as unsupported if the
// provider cannot render them.
type Style string

const (
	// StyleBibTeX is the default style, rendered by every provider.
	StyleBibTeX Style = "bibtex"

	// StyleAPA is rendered by providers with CSL formatting support.
	StyleAPA Style = "apa"

	// StyleCSL is not a citation style proper: it emits the bibliographic
	// record itself as CSL-YAML, consumable by Pandoc and reference managers.
	StyleCSL Style = "csl"
)

// Publication is a bibliographic record for a single publication as
// returned by a search provider. Constructed transiently per invocation;
// never retained beyond process lifetime.
type Publication struct {
	// Identifier is the canonical ID from the source (arXiv ID, DOI, or
	// provider-internal ID, in that order of preference).
	Identifier string `json:"identifier" yaml:"identifier"`

	// Title is the publication title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors lists the authors in source order, as "Given Family" strings.
	Authors []string `json:"authors" yaml:"authors"`

	// Venue is the journal, conference, or container title.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Year is the publication year, zero when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Date is the publication date when the source provides one.
	Date time.Time `json:"date,omitempty" yaml:"date,omitempty"`

	// Abstract is the abstract or summary, when available.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// DOI is the Digital Object Identifier, when available.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Source identifies the provider that returned this record
	// (e.g. "semantic_scholar", "crossref").
	Source string `json:"source" yaml:"source"`

	// Renderings holds citation strings the provider supplied at lookup
	// time, keyed by style. Providers that render on demand leave it empty.
	Renderings map[Style]string `json:"-" yaml:"-"`
}
