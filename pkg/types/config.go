// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// HTTPConfig holds shared HTTP settings used for calls to the tracker.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "jira-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries of transient failures (502/503/504 and
	// transport errors) for a single request (default 2).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// FieldConfig names the custom fields that hold agile data. Jira Cloud site
// IDs differ, so both are configurable.
type FieldConfig struct {
	// EpicLink is the legacy "Epic Link" field (default customfield_10014).
	EpicLink string `json:"epic_link" yaml:"epic_link" mapstructure:"epic_link"`

	// Sprint is the "Sprint" field (default customfield_10020).
	Sprint string `json:"sprint" yaml:"sprint" mapstructure:"sprint"`
}

// JiraConfig holds connection settings for the Jira Cloud REST API.
type JiraConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the site root, e.g. "https://example.atlassian.net".
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Email is the account email used for Basic auth with an API token.
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`

	// APIToken is the Atlassian API token. Never written to output.
	APIToken string `json:"-" yaml:"-" mapstructure:"api_token"`

	Fields FieldConfig `json:"fields" yaml:"fields" mapstructure:"fields"`
}

// Validate reports configuration that would make every request fail.
func (c JiraConfig) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("jira base URL is not set (jira.base_url or JIRA_DIGEST_JIRA_BASE_URL)")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid jira base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid jira base URL %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid jira base URL %q: missing host", c.BaseURL)
	}
	return nil
}

// ArchiveConfig holds settings for the local ticket archive.
type ArchiveConfig struct {
	// Dir holds the archive database (archive.db).
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default list/search limit (default 50).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// OutputFormat selects how command results are written.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
	OutputText OutputFormat = "text"
)

// Config groups all settings read from the config file and environment.
type Config struct {
	Jira    JiraConfig    `json:"jira" yaml:"jira" mapstructure:"jira"`
	Archive ArchiveConfig `json:"archive" yaml:"archive" mapstructure:"archive"`
}

// Defaults used when the config file and environment leave a value unset.
const (
	DefaultTimeout        = 30 * time.Second
	DefaultUserAgent      = "jira-digest/0.1"
	DefaultMaxRetries     = 2
	DefaultEpicLinkField  = "customfield_10014"
	DefaultSprintField    = "customfield_10020"
	DefaultArchiveDir     = ".jira-digest"
	DefaultArchiveResults = 50
)

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{
		Jira: JiraConfig{
			HTTPConfig: HTTPConfig{
				Timeout:    DefaultTimeout,
				UserAgent:  DefaultUserAgent,
				MaxRetries: DefaultMaxRetries,
			},
			Fields: FieldConfig{
				EpicLink: DefaultEpicLinkField,
				Sprint:   DefaultSprintField,
			},
		},
		Archive: ArchiveConfig{
			Dir:        DefaultArchiveDir,
			MaxResults: DefaultArchiveResults,
		},
	}
}
