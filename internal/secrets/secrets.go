// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials for the search backends.
// Each file in the secrets directory represents one secret: the filename is
// the key name and the file contents (trimmed) are the value. Environment
// variables override files, so CI and containers need no secrets directory.
//
// Supported key files: brave-api-key, searx-url.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// envPrefix namespaces the environment-variable form of each key:
// brave-api-key becomes CLAIMCHECK_BRAVE_API_KEY.
const envPrefix = "CLAIMCHECK_"

// knownKeys are the secrets the pipeline understands. Only these are
// looked up in the environment; the directory may hold arbitrary keys.
var knownKeys = []string{"brave-api-key", "searx-url"}

// Load reads all files in dir and returns a map of filename to trimmed
// contents, with environment variables overlaid for known keys.
// A missing directory or missing files are not errors; Load returns an
// empty map. Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	secrets := make(map[string]string)

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[entry.Name()] = value
		}
	}

	for _, key := range knownKeys {
		if value := strings.TrimSpace(os.Getenv(EnvName(key))); value != "" {
			secrets[key] = value
		}
	}

	return secrets, nil
}

// EnvName converts a key filename to its environment-variable form.
func EnvName(key string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}
