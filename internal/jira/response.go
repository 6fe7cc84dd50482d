// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jira

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pdiddy/jira-digest/internal/richtext"
)

// Jira API JSON structures. Nested objects are pointers so that absent
// values stay nil; the accessor methods below return "" for any missing
// link in the chain.

type issueResponse struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Self   string      `json:"self"`
	Fields issueFields `json:"fields"`
}

type issueFields struct {
	Summary     string           `json:"summary"`
	Description richtext.Body    `json:"description"`
	Status      *jiraStatus      `json:"status"`
	IssueType   *jiraIssueType   `json:"issuetype"`
	Priority    *jiraNamed       `json:"priority"`
	Assignee    *jiraUser        `json:"assignee"`
	Reporter    *jiraUser        `json:"reporter"`
	Resolution  *jiraNamed       `json:"resolution"`
	Labels      []string         `json:"labels"`
	Components  []jiraNamed      `json:"components"`
	FixVersions []jiraNamed      `json:"fixVersions"`
	Created     jiraTime         `json:"created"`
	Updated     jiraTime         `json:"updated"`
	DueDate     string           `json:"duedate"`
	Parent      *jiraParent      `json:"parent"`
	IssueLinks  []jiraIssueLink  `json:"issuelinks"`
	Attachment  []jiraAttachment `json:"attachment"`

	// Custom holds every field by ID, for site-specific custom fields.
	Custom map[string]json.RawMessage `json:"-"`
}

func (f *issueFields) UnmarshalJSON(data []byte) error {
	type plain issueFields
	if err := json.Unmarshal(data, (*plain)(f)); err != nil {
		return err
	}
	return json.Unmarshal(data, &f.Custom)
}

// custom returns the raw value of a custom field, or nil when unset.
func (f *issueFields) custom(id string) json.RawMessage {
	raw, ok := f.Custom[id]
	if !ok || string(raw) == "null" {
		return nil
	}
	return raw
}

type jiraNamed struct {
	Name string `json:"name"`
}

func (n *jiraNamed) name() string {
	if n == nil {
		return ""
	}
	return n.Name
}

func names(items []jiraNamed) []string {
	out := make([]string, 0, len(items))
	for i := range items {
		if name := items[i].name(); name != "" {
			out = append(out, name)
		}
	}
	return out
}

type jiraStatus struct {
	Name           string              `json:"name"`
	StatusCategory *jiraStatusCategory `json:"statusCategory"`
}

type jiraStatusCategory struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

func (s *jiraStatus) name() string {
	if s == nil {
		return ""
	}
	return s.Name
}

func (s *jiraStatus) category() string {
	if s == nil || s.StatusCategory == nil {
		return ""
	}
	return s.StatusCategory.Name
}

type jiraIssueType struct {
	Name           string `json:"name"`
	Subtask        bool   `json:"subtask"`
	HierarchyLevel *int   `json:"hierarchyLevel"`
}

func (t *jiraIssueType) name() string {
	if t == nil {
		return ""
	}
	return t.Name
}

// isEpic reports whether the type is an epic: named "Epic" or sitting one
// level above standard issues in the hierarchy.
func (t *jiraIssueType) isEpic() bool {
	if t == nil {
		return false
	}
	if strings.EqualFold(t.Name, "epic") {
		return true
	}
	return t.HierarchyLevel != nil && *t.HierarchyLevel == 1
}

type jiraUser struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

func (u *jiraUser) name() string {
	if u == nil {
		return ""
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.EmailAddress
}

// jiraLinkedFields is the field subset Jira embeds for parents and linked issues.
type jiraLinkedFields struct {
	Summary   string         `json:"summary"`
	Status    *jiraStatus    `json:"status"`
	IssueType *jiraIssueType `json:"issuetype"`
}

type jiraParent struct {
	ID     string            `json:"id"`
	Key    string            `json:"key"`
	Fields *jiraLinkedFields `json:"fields"`
}

func (p *jiraParent) key() string {
	if p == nil {
		return ""
	}
	return p.Key
}

func (p *jiraParent) fields() *jiraLinkedFields {
	if p == nil || p.Fields == nil {
		return &jiraLinkedFields{}
	}
	return p.Fields
}

type jiraIssueLink struct {
	ID           string           `json:"id"`
	Type         *jiraLinkType    `json:"type"`
	InwardIssue  *jiraLinkedIssue `json:"inwardIssue"`
	OutwardIssue *jiraLinkedIssue `json:"outwardIssue"`
}

type jiraLinkType struct {
	Name    string `json:"name"`
	Inward  string `json:"inward"`
	Outward string `json:"outward"`
}

type jiraLinkedIssue struct {
	Key    string            `json:"key"`
	Fields *jiraLinkedFields `json:"fields"`
}

func (l *jiraLinkedIssue) fields() *jiraLinkedFields {
	if l == nil || l.Fields == nil {
		return &jiraLinkedFields{}
	}
	return l.Fields
}

type jiraAttachment struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Author    *jiraUser `json:"author"`
	Created   jiraTime  `json:"created"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mimeType"`
	Content   string    `json:"content"`
	Thumbnail string    `json:"thumbnail"`
}

type commentsResponse struct {
	StartAt    int           `json:"startAt"`
	MaxResults int           `json:"maxResults"`
	Total      int           `json:"total"`
	Comments   []jiraComment `json:"comments"`
}

type jiraComment struct {
	ID      string        `json:"id"`
	Author  *jiraUser     `json:"author"`
	Body    richtext.Body `json:"body"`
	Created jiraTime      `json:"created"`
	Updated jiraTime      `json:"updated"`
}

type jiraRemoteLink struct {
	ID           int               `json:"id"`
	Relationship string            `json:"relationship"`
	Object       *jiraRemoteObject `json:"object"`
	Application  *jiraNamed        `json:"application"`
}

type jiraRemoteObject struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// jiraTime parses Jira timestamps ("2025-01-15T10:00:00.000+0000"). Values
// that do not parse decode to the zero time.
type jiraTime struct {
	time.Time
}

var jiraTimeLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	time.RFC3339Nano,
	"2006-01-02",
}

func (t *jiraTime) UnmarshalJSON(data []byte) error {
	var s string
	if json.Unmarshal(data, &s) != nil {
		t.Time = time.Time{}
		return nil
	}
	t.Time = parseJiraTime(s)
	return nil
}

func parseJiraTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == "<null>" {
		return time.Time{}
	}
	for _, layout := range jiraTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
