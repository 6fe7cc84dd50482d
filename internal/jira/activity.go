// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jira

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/pdiddy/jira-digest/internal/richtext"
	"github.com/pdiddy/jira-digest/pkg/types"
)

// Comments fetches the first page of an issue's comments, oldest first,
// with each body flattened to plain text.
func (c *Client) Comments(ctx context.Context, key string) ([]types.Comment, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	var resp commentsResponse
	query := url.Values{"orderBy": {"created"}}
	if err := c.GetJSON(ctx, issuePath(key)+"/comment", query, &resp); err != nil {
		return nil, err
	}
	if resp.Total > len(resp.Comments) {
		slog.Warn("comments truncated to first page", "key", key, "returned", len(resp.Comments), "total", resp.Total)
	}

	comments := make([]types.Comment, 0, len(resp.Comments))
	for _, jc := range resp.Comments {
		comments = append(comments, types.Comment{
			ID:      jc.ID,
			Author:  jc.Author.name(),
			Body:    richtext.Flatten(jc.Body),
			Created: jc.Created.Time,
			Updated: jc.Updated.Time,
		})
	}
	return comments, nil
}

// Links fetches an issue's links to other issues, each seen from the
// requested issue's side.
func (c *Client) Links(ctx context.Context, key string) ([]types.Link, error) {
	issue, err := c.getIssue(ctx, key, "issuelinks")
	if err != nil {
		return nil, err
	}
	return toLinks(issue.Fields.IssueLinks), nil
}

func toLinks(raw []jiraIssueLink) []types.Link {
	links := make([]types.Link, 0, len(raw))
	for _, l := range raw {
		var (
			other     *jiraLinkedIssue
			direction types.LinkDirection
			relation  string
		)
		switch {
		case l.OutwardIssue != nil:
			other, direction = l.OutwardIssue, types.LinkOutward
			if l.Type != nil {
				relation = l.Type.Outward
			}
		case l.InwardIssue != nil:
			other, direction = l.InwardIssue, types.LinkInward
			if l.Type != nil {
				relation = l.Type.Inward
			}
		default:
			continue
		}

		link := types.Link{
			ID:        l.ID,
			Direction: direction,
			Relation:  relation,
			Key:       other.Key,
			Summary:   other.fields().Summary,
			Status:    other.fields().Status.name(),
			IssueType: other.fields().IssueType.name(),
		}
		if l.Type != nil {
			link.Type = l.Type.Name
		}
		links = append(links, link)
	}
	return links
}

// RemoteLinks fetches the web links attached to an issue.
func (c *Client) RemoteLinks(ctx context.Context, key string) ([]types.RemoteLink, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	var raw []jiraRemoteLink
	if err := c.GetJSON(ctx, issuePath(key)+"/remotelink", nil, &raw); err != nil {
		return nil, err
	}

	links := make([]types.RemoteLink, 0, len(raw))
	for _, r := range raw {
		link := types.RemoteLink{
			ID:           r.ID,
			Relationship: r.Relationship,
			Application:  r.Application.name(),
		}
		if r.Object != nil {
			link.URL = r.Object.URL
			link.Title = r.Object.Title
		}
		links = append(links, link)
	}
	return links, nil
}

// Attachments fetches the metadata of an issue's attachments. File
// contents are not downloaded.
func (c *Client) Attachments(ctx context.Context, key string) ([]types.Attachment, error) {
	issue, err := c.getIssue(ctx, key, "attachment")
	if err != nil {
		return nil, err
	}

	attachments := make([]types.Attachment, 0, len(issue.Fields.Attachment))
	for _, a := range issue.Fields.Attachment {
		attachments = append(attachments, types.Attachment{
			ID:        a.ID,
			Filename:  a.Filename,
			MimeType:  a.MimeType,
			Size:      a.Size,
			Author:    a.Author.name(),
			Created:   a.Created.Time,
			URL:       a.Content,
			Thumbnail: a.Thumbnail,
		})
	}
	return attachments, nil
}
