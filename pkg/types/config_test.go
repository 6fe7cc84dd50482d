// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultTimeout, cfg.Jira.Timeout)
	assert.Equal(t, DefaultMaxRetries, cfg.Jira.MaxRetries)
	assert.Equal(t, DefaultSprintField, cfg.Jira.Fields.Sprint)
	assert.Equal(t, DefaultArchiveDir, cfg.Archive.Dir)
	assert.Error(t, cfg.Jira.Validate(), "no base URL by default")
}

func TestJiraConfigValidate(t *testing.T) {
	tests := []struct {
		baseURL string
		errMsg  string
	}{
		{"https://example.atlassian.net", ""},
		{"http://localhost:8080/jira", ""},
		{"  ", "not set"},
		{"example.atlassian.net", "scheme"},
		{"https://", "missing host"},
		{"://bad", "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.baseURL, func(t *testing.T) {
			err := JiraConfig{BaseURL: tt.baseURL}.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestJiraConfigNeverSerializesToken(t *testing.T) {
	cfg := JiraConfig{BaseURL: "https://example.atlassian.net", APIToken: "s3cret"}

	j, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(j), "s3cret")

	y, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(y), "s3cret")
	assert.Contains(t, string(y), "user_agent", "HTTP settings are inlined")
}
