// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads provider credentials from a directory of
// plain-text files, one file per key: the filename is the key name and
// the file contents (trimmed) are the value.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// knownKeys lists the secret files citescholar looks for.
var knownKeys = []string{
	"semantic-scholar-api-key",
	"crossref-mailto",
}

// Load reads the known key files from dir. Missing directory or files
// are not errors; the corresponding keys are simply absent from the
// result. An unreadable file produces a warning on stderr.
func Load(dir string) map[string]string {
	secrets := make(map[string]string)

	for _, key := range knownKeys {
		data, err := os.ReadFile(filepath.Join(dir, key))
		if err != nil {
			if !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", key, err)
			}
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[key] = value
		}
	}

	return secrets
}
