// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jira

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/jira-digest/pkg/types"
)

const sampleCommentsJSON = `{
  "startAt": 0,
  "maxResults": 50,
  "total": 2,
  "comments": [
    {
      "id": "100",
      "author": {"displayName": "Alice Smith"},
      "body": {"type": "doc", "version": 1, "content": [
        {"type": "paragraph", "content": [{"type": "text", "text": "Looks good."}, {"type": "hardBreak"}, {"type": "text", "text": "Ship it."}]}
      ]},
      "created": "2025-02-01T09:00:00.000+0000",
      "updated": "2025-02-01T09:05:00.000+0000"
    },
    {
      "id": "101",
      "author": null,
      "body": "legacy plain comment",
      "created": "2025-02-02T09:00:00.000+0000",
      "updated": "2025-02-02T09:00:00.000+0000"
    }
  ]
}`

func TestComments(t *testing.T) {
	ts, seen := jiraTestServer(t, http.StatusOK, sampleCommentsJSON)
	c := testClient(t, ts)

	comments, err := c.Comments(context.Background(), "SHOP-42")
	require.NoError(t, err)

	assert.Equal(t, "/rest/api/3/issue/SHOP-42/comment", seen.URL.Path)
	assert.Equal(t, "created", seen.URL.Query().Get("orderBy"))

	require.Len(t, comments, 2)
	assert.Equal(t, types.Comment{
		ID:      "100",
		Author:  "Alice Smith",
		Body:    "Looks good.\nShip it.",
		Created: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC),
		Updated: time.Date(2025, 2, 1, 9, 5, 0, 0, time.UTC),
	}, normalizeComment(comments[0]))
	assert.Equal(t, "", comments[1].Author)
	assert.Equal(t, "legacy plain comment", comments[1].Body)
}

func normalizeComment(c types.Comment) types.Comment {
	c.Created = c.Created.UTC()
	c.Updated = c.Updated.UTC()
	return c
}

func TestComments_Empty(t *testing.T) {
	ts, _ := jiraTestServer(t, http.StatusOK, `{"comments":[]}`)
	c := testClient(t, ts)

	comments, err := c.Comments(context.Background(), "A-1")
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

const sampleLinksJSON = `{
  "key": "SHOP-42",
  "fields": {
    "issuelinks": [
      {
        "id": "5001",
        "type": {"name": "Blocks", "inward": "is blocked by", "outward": "blocks"},
        "outwardIssue": {"key": "SHOP-50", "fields": {"summary": "Receipt email", "status": {"name": "To Do"}, "issuetype": {"name": "Task"}}}
      },
      {
        "id": "5002",
        "type": {"name": "Blocks", "inward": "is blocked by", "outward": "blocks"},
        "inwardIssue": {"key": "PAY-7", "fields": {"summary": "Payment callback", "status": {"name": "Done"}}}
      },
      {
        "id": "5003",
        "type": {"name": "Relates"}
      },
      {
        "id": "5004",
        "inwardIssue": {"key": "PAY-8"}
      }
    ]
  }
}`

func TestLinks(t *testing.T) {
	ts, seen := jiraTestServer(t, http.StatusOK, sampleLinksJSON)
	c := testClient(t, ts)

	links, err := c.Links(context.Background(), "SHOP-42")
	require.NoError(t, err)
	assert.Equal(t, "issuelinks", seen.URL.Query().Get("fields"))

	assert.Equal(t, []types.Link{
		{ID: "5001", Type: "Blocks", Direction: types.LinkOutward, Relation: "blocks", Key: "SHOP-50", Summary: "Receipt email", Status: "To Do", IssueType: "Task"},
		{ID: "5002", Type: "Blocks", Direction: types.LinkInward, Relation: "is blocked by", Key: "PAY-7", Summary: "Payment callback", Status: "Done"},
		{ID: "5004", Direction: types.LinkInward, Key: "PAY-8"},
	}, links)
}

func TestRemoteLinks(t *testing.T) {
	body := `[
	  {"id": 10000, "relationship": "mentioned in", "object": {"url": "https://wiki.example.com/page", "title": "Design page"}, "application": {"name": "Confluence"}},
	  {"id": 10001}
	]`
	ts, seen := jiraTestServer(t, http.StatusOK, body)
	c := testClient(t, ts)

	links, err := c.RemoteLinks(context.Background(), "SHOP-42")
	require.NoError(t, err)
	assert.Equal(t, "/rest/api/3/issue/SHOP-42/remotelink", seen.URL.Path)
	assert.Equal(t, []types.RemoteLink{
		{ID: 10000, Title: "Design page", URL: "https://wiki.example.com/page", Relationship: "mentioned in", Application: "Confluence"},
		{ID: 10001},
	}, links)
}

func TestAttachments(t *testing.T) {
	body := `{"key":"SHOP-42","fields":{"attachment":[
	  {"id":"900","filename":"trace.har","author":{"displayName":"Alice Smith"},"created":"2025-02-03T12:00:00.000+0000","size":2048,"mimeType":"application/json","content":"https://example.atlassian.net/rest/api/3/attachment/content/900","thumbnail":""},
	  {"id":"901","filename":"screen.png","size":10,"mimeType":"image/png","content":"https://example.atlassian.net/rest/api/3/attachment/content/901","thumbnail":"https://example.atlassian.net/rest/api/3/attachment/thumbnail/901"}
	]}}`
	ts, seen := jiraTestServer(t, http.StatusOK, body)
	c := testClient(t, ts)

	attachments, err := c.Attachments(context.Background(), "SHOP-42")
	require.NoError(t, err)
	assert.Equal(t, "attachment", seen.URL.Query().Get("fields"))

	require.Len(t, attachments, 2)
	assert.Equal(t, "trace.har", attachments[0].Filename)
	assert.Equal(t, "Alice Smith", attachments[0].Author)
	assert.Equal(t, int64(2048), attachments[0].Size)
	assert.Equal(t, "application/json", attachments[0].MimeType)
	assert.Equal(t, 2025, attachments[0].Created.Year())
	assert.Equal(t, "https://example.atlassian.net/rest/api/3/attachment/content/900", attachments[0].URL)
	assert.Empty(t, attachments[1].Author)
	assert.True(t, attachments[1].Created.IsZero())
	assert.Equal(t, "https://example.atlassian.net/rest/api/3/attachment/thumbnail/901", attachments[1].Thumbnail)
}

func TestAttachments_None(t *testing.T) {
	ts, _ := jiraTestServer(t, http.StatusOK, `{"key":"A-1","fields":{}}`)
	c := testClient(t, ts)

	attachments, err := c.Attachments(context.Background(), "A-1")
	require.NoError(t, err)
	assert.NotNil(t, attachments)
	assert.Empty(t, attachments)
}
