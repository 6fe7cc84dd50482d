// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   map[string]string
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "jira-api-token", "  ATATT3xFf  \n")
				writeFile(t, dir, "jira-email", "dev@example.com")
				writeFile(t, dir, "jira-base-url", "https://example.atlassian.net\n")
				return dir
			},
			want: map[string]string{
				"jira-api-token": "ATATT3xFf",
				"jira-email":     "dev@example.com",
				"jira-base-url":  "https://example.atlassian.net",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "jira-api-token", "valid-token")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{
				"jira-api-token": "valid-token",
			},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "jira-email", "real@example.com")
				return dir
			},
			want: map[string]string{
				"jira-email": "real@example.com",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "jira-base-url", "https://x.atlassian.net")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"jira-base-url": "https://x.atlassian.net",
			},
		},
		{
			name: "returns empty map for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good-key", "value123")

	// Create a file then remove read permission.
	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir)
	require.NoError(t, err)
	// The good file should still be returned; the bad file is skipped with a warning.
	assert.Equal(t, "value123", got["good-key"])
	_, hasBad := got["bad-key"]
	assert.False(t, hasBad, "unreadable file should not appear in result")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestJiraCredentials(t *testing.T) {
	creds := JiraCredentials(map[string]string{
		KeyJiraBaseURL:  "https://example.atlassian.net",
		KeyJiraEmail:    "dev@example.com",
		KeyJiraAPIToken: "tok",
		"unrelated":     "ignored",
	})
	assert.Equal(t, Credentials{
		BaseURL:  "https://example.atlassian.net",
		Email:    "dev@example.com",
		APIToken: "tok",
	}, creds)

	assert.Equal(t, Credentials{}, JiraCredentials(nil))
}

func TestNames(t *testing.T) {
	names := Names(map[string]string{"jira-email": "a", "jira-api-token": "b"})
	assert.Equal(t, []string{"jira-api-token", "jira-email"}, names)
	assert.Empty(t, Names(map[string]string{}))
}
