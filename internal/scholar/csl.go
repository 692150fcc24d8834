package scholar

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citescholar/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL renders the publication record as a single-item CSL-YAML list.
func FormatCSL(pub types.Publication) (string, error) {
	data, err := yaml.Marshal([]CSLItem{toCSLItem(pub)})
	if err != nil {
		return "", fmt.Errorf("marshaling CSL-YAML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// toCSLItem converts a Publication to a CSLItem.
func toCSLItem(pub types.Publication) CSLItem {
	item := CSLItem{
		ID:             pub.Identifier,
		Type:           "article",
		Title:          pub.Title,
		ContainerTitle: pub.Venue,
		Abstract:       pub.Abstract,
		DOI:            pub.DOI,
	}

	for _, a := range pub.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}

	switch {
	case !pub.Date.IsZero():
		item.Issued = &CSLDate{
			DateParts: [][]int{{pub.Date.Year(), int(pub.Date.Month()), pub.Date.Day()}},
		}
	case pub.Year > 0:
		item.Issued = &CSLDate{DateParts: [][]int{{pub.Year}}}
	}

	// Fall back to the DOI-shaped identifier when the record has no DOI field.
	if item.DOI == "" && strings.HasPrefix(pub.Identifier, "10.") {
		item.DOI = pub.Identifier
	}

	return item
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
