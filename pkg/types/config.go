package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citescholar/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LookupConfig holds settings for the provider lookup.
type LookupConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the search provider: semantic_scholar or crossref.
	Provider string `json:"provider" yaml:"provider"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// CrossrefMailto is an optional contact email sent to Crossref for
	// polite pool access.
	CrossrefMailto string `json:"crossref_mailto,omitempty" yaml:"crossref_mailto,omitempty"`
}

// StoreConfig holds settings for the citations store.
type StoreConfig struct {
	// Path is the SQLite database file (default "citations.db").
	Path string `json:"path" yaml:"path"`
}
