// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jira

import (
	"context"
	"net/url"
	"strings"

	"github.com/pdiddy/jira-digest/internal/richtext"
	"github.com/pdiddy/jira-digest/pkg/types"
)

// getIssue fetches one issue. An empty fields list asks Jira for all of them.
func (c *Client) getIssue(ctx context.Context, key string, fields ...string) (*issueResponse, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	var query url.Values
	if len(fields) > 0 {
		query = url.Values{"fields": {strings.Join(fields, ",")}}
	}
	var issue issueResponse
	if err := c.GetJSON(ctx, issuePath(key), query, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// Ticket fetches an issue and returns its digest: headline fields, the
// description as plain text, its Requirements and Acceptance Criteria
// sections, the epic it belongs to, and its sprints.
func (c *Client) Ticket(ctx context.Context, key string) (types.Ticket, error) {
	issue, err := c.getIssue(ctx, key)
	if err != nil {
		return types.Ticket{}, err
	}
	return c.toTicket(issue), nil
}

func (c *Client) toTicket(issue *issueResponse) types.Ticket {
	f := &issue.Fields
	t := types.Ticket{
		Key:            issue.Key,
		Summary:        f.Summary,
		Status:         f.Status.name(),
		StatusCategory: f.Status.category(),
		Type:           f.IssueType.name(),
		Priority:       f.Priority.name(),
		Assignee:       f.Assignee.name(),
		Reporter:       f.Reporter.name(),
		Resolution:     f.Resolution.name(),
		Labels:         nonNil(f.Labels),
		Components:     names(f.Components),
		FixVersions:    names(f.FixVersions),
		Created:        f.Created.Time,
		Updated:        f.Updated.Time,
		DueDate:        f.DueDate,
		Parent:         f.Parent.key(),
		URL:            c.BrowseURL(issue.Key),
		Description:    richtext.Flatten(f.Description),
		Sprints:        parseSprints(f.custom(c.fields.Sprint)),
	}
	t.Requirements, t.AcceptanceCriteria = sections(f.Description)
	t.Epic = c.resolveEpic(issue, false)
	return t
}

// sections extracts both labeled sections, never returning nil slices so
// JSON output carries [] rather than null.
func sections(b richtext.Body) (requirements, acceptance []string) {
	return nonNil(richtext.ExtractSection(b, richtext.Requirements)),
		nonNil(richtext.ExtractSection(b, richtext.AcceptanceCriteria))
}

// Sections fetches an issue's description and returns its Requirements and
// Acceptance Criteria.
func (c *Client) Sections(ctx context.Context, key string) (types.Sections, error) {
	issue, err := c.getIssue(ctx, key, "description")
	if err != nil {
		return types.Sections{}, err
	}
	s := types.Sections{Key: issue.Key}
	s.Requirements, s.AcceptanceCriteria = sections(issue.Fields.Description)
	return s, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
