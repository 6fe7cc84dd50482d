// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads Jira credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: jira-api-token, jira-email, jira-base-url.
package secrets

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Key files read by JiraCredentials.
const (
	KeyJiraAPIToken = "jira-api-token"
	KeyJiraEmail    = "jira-email"
	KeyJiraBaseURL  = "jira-base-url"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("could not read secret", "name", name, "error", err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Credentials are the Jira connection values a secrets directory can supply.
type Credentials struct {
	BaseURL  string
	Email    string
	APIToken string
}

// JiraCredentials picks the Jira keys out of a loaded secrets map. Missing
// keys leave the matching field empty.
func JiraCredentials(m map[string]string) Credentials {
	return Credentials{
		BaseURL:  m[KeyJiraBaseURL],
		Email:    m[KeyJiraEmail],
		APIToken: m[KeyJiraAPIToken],
	}
}

// Names returns the loaded key names, sorted and without values, for logging.
func Names(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
