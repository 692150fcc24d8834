// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// Export writes all saved citations to w in the requested format,
// oldest first so the output reads in insertion order.
func (s *Store) Export(ctx context.Context, w io.Writer, format string) error {
	citations, err := s.List(ctx, 0)
	if err != nil {
		return err
	}

	// List returns newest first; reverse for export.
	for i, j := 0, len(citations)-1; i < j; i, j = i+1, j-1 {
		citations[i], citations[j] = citations[j], citations[i]
	}

	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(citations)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(citations)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}
