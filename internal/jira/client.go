// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jira fetches issue data from the Jira Cloud REST API (v3) and
// reshapes it into the simplified records in pkg/types. Each exported fetch
// method issues exactly one GET.
package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/jira-digest/internal/httputil"
	"github.com/pdiddy/jira-digest/pkg/types"
)

// apiPrefix is the REST API v3 root relative to the site URL.
const apiPrefix = "/rest/api/3"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 16 << 20

var (
	// ErrNotFound is matched by an *APIError with status 404.
	ErrNotFound = errors.New("jira: not found")
	// ErrUnauthorized is matched by an *APIError with status 401 or 403.
	ErrUnauthorized = errors.New("jira: unauthorized")
	// ErrRateLimited is matched by an *APIError with status 429.
	ErrRateLimited = errors.New("jira: rate limited")
)

// APIError is a non-2xx response from Jira.
type APIError struct {
	StatusCode int
	Path       string
	// Messages holds Jira's errorMessages and field errors, when the body
	// carried them.
	Messages []string
	Body     string
}

func (e *APIError) Error() string {
	detail := strings.Join(e.Messages, "; ")
	if detail == "" {
		detail = strings.TrimSpace(e.Body)
	}
	if len(detail) > 200 {
		detail = detail[:197] + "..."
	}
	if detail == "" {
		return fmt.Sprintf("jira API returned HTTP %d for %s", e.StatusCode, e.Path)
	}
	return fmt.Sprintf("jira API returned HTTP %d for %s: %s", e.StatusCode, e.Path, detail)
}

// Is lets errors.Is match the sentinel errors by status code.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// errorBody is the error envelope Jira returns on failures.
type errorBody struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

func newAPIError(path string, status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Path: path, Body: string(body)}
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		e.Messages = append(e.Messages, eb.ErrorMessages...)
		for field, msg := range eb.Errors {
			e.Messages = append(e.Messages, field+": "+msg)
		}
	}
	return e
}

// Client talks to one Jira Cloud site.
type Client struct {
	baseURL    string
	email      string
	token      string
	userAgent  string
	maxRetries int
	fields     types.FieldConfig
	http       *http.Client
}

// NewClient builds a client from cfg. When hc is nil a client with
// cfg.Timeout is created.
func NewClient(cfg types.JiraConfig, hc *http.Client) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	fields := cfg.Fields
	if fields.EpicLink == "" {
		fields.EpicLink = types.DefaultEpicLinkField
	}
	if fields.Sprint == "" {
		fields.Sprint = types.DefaultSprintField
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = types.DefaultUserAgent
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		email:      cfg.Email,
		token:      cfg.APIToken,
		userAgent:  userAgent,
		maxRetries: cfg.MaxRetries,
		fields:     fields,
		http:       hc,
	}, nil
}

// BaseURL returns the site root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// BrowseURL returns the web URL of an issue.
func (c *Client) BrowseURL(key string) string {
	return c.baseURL + "/browse/" + key
}

// GetJSON issues one GET to the site path (e.g. "/rest/api/3/issue/ABC-1")
// and decodes the response into out. Non-2xx responses return *APIError.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating jira request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if auth := c.authorization(); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	slog.Debug("jira request", "path", path, "query", query.Encode())

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return fmt.Errorf("jira request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading jira response for %s: %w", path, err)
	}

	slog.Debug("jira response", "path", path, "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(path, resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing jira response for %s: %w", path, err)
	}
	return nil
}

// authorization builds the Basic auth header. A token that already holds
// "email:token" is used as is; otherwise the configured email is paired
// with it, or an empty username when no email is set.
func (c *Client) authorization() string {
	if c.token == "" {
		return ""
	}
	cred := c.token
	if !strings.Contains(cred, ":") {
		cred = c.email + ":" + cred
	}
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(cred))
}

var keyPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*-[0-9]+|[0-9]+)$`)

// ValidateKey checks that key looks like an issue key ("ABC-123") or a
// numeric issue ID.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("invalid issue key %q: expected PROJECT-123 or a numeric ID", key)
	}
	return nil
}

func issuePath(key string) string {
	return apiPrefix + "/issue/" + url.PathEscape(key)
}
