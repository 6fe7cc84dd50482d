// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the simplified records jira-digest produces from
// Jira REST responses, plus the configuration shared by its commands.
package types

import "time"

// Ticket is the digest of one issue: its headline fields, its description
// flattened to plain text, and the sections parsed out of it.
type Ticket struct {
	Key            string    `json:"key" yaml:"key"`
	Summary        string    `json:"summary" yaml:"summary"`
	Status         string    `json:"status" yaml:"status"`
	StatusCategory string    `json:"status_category,omitempty" yaml:"status_category,omitempty"`
	Type           string    `json:"type" yaml:"type"`
	Priority       string    `json:"priority,omitempty" yaml:"priority,omitempty"`
	Assignee       string    `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Reporter       string    `json:"reporter,omitempty" yaml:"reporter,omitempty"`
	Resolution     string    `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	Labels         []string  `json:"labels" yaml:"labels"`
	Components     []string  `json:"components" yaml:"components"`
	FixVersions    []string  `json:"fix_versions" yaml:"fix_versions"`
	Created        time.Time `json:"created" yaml:"created"`
	Updated        time.Time `json:"updated" yaml:"updated"`
	DueDate        string    `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Parent         string    `json:"parent,omitempty" yaml:"parent,omitempty"`
	URL            string    `json:"url" yaml:"url"`

	// Description is the description rendered as plain text.
	Description string `json:"description" yaml:"description"`

	// Requirements and AcceptanceCriteria are the cleaned lines of the
	// matching description sections, empty when absent.
	Requirements       []string `json:"requirements" yaml:"requirements"`
	AcceptanceCriteria []string `json:"acceptance_criteria" yaml:"acceptance_criteria"`

	Epic    *Epic    `json:"epic,omitempty" yaml:"epic,omitempty"`
	Sprints []Sprint `json:"sprints" yaml:"sprints"`
}

// Comment is one issue comment with its body as plain text.
type Comment struct {
	ID      string    `json:"id" yaml:"id"`
	Author  string    `json:"author" yaml:"author"`
	Body    string    `json:"body" yaml:"body"`
	Created time.Time `json:"created" yaml:"created"`
	Updated time.Time `json:"updated" yaml:"updated"`
}

// LinkDirection says which side of an issue link the other issue is on.
type LinkDirection string

const (
	LinkInward  LinkDirection = "inward"
	LinkOutward LinkDirection = "outward"
)

// Link is an issue-to-issue link seen from the requested issue. Relation is
// the phrase read from that side, e.g. "is blocked by".
type Link struct {
	ID        string        `json:"id" yaml:"id"`
	Type      string        `json:"type" yaml:"type"`
	Direction LinkDirection `json:"direction" yaml:"direction"`
	Relation  string        `json:"relation" yaml:"relation"`
	Key       string        `json:"key" yaml:"key"`
	Summary   string        `json:"summary,omitempty" yaml:"summary,omitempty"`
	Status    string        `json:"status,omitempty" yaml:"status,omitempty"`
	IssueType string        `json:"issue_type,omitempty" yaml:"issue_type,omitempty"`
}

// RemoteLink is a web link attached to an issue.
type RemoteLink struct {
	ID           int    `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	URL          string `json:"url" yaml:"url"`
	Relationship string `json:"relationship,omitempty" yaml:"relationship,omitempty"`
	Application  string `json:"application,omitempty" yaml:"application,omitempty"`
}

// Attachment describes a file attached to an issue. Content is not fetched.
type Attachment struct {
	ID        string    `json:"id" yaml:"id"`
	Filename  string    `json:"filename" yaml:"filename"`
	MimeType  string    `json:"mime_type" yaml:"mime_type"`
	Size      int64     `json:"size" yaml:"size"`
	Author    string    `json:"author,omitempty" yaml:"author,omitempty"`
	Created   time.Time `json:"created" yaml:"created"`
	URL       string    `json:"url" yaml:"url"`
	Thumbnail string    `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// EpicSource records where an epic reference was found.
type EpicSource string

const (
	EpicFromSelf     EpicSource = "self"
	EpicFromParent   EpicSource = "parent"
	EpicFromEpicLink EpicSource = "epic_link"
)

// Epic is the epic an issue belongs to. Summary and Status are empty when
// only the key is known (legacy Epic Link field).
type Epic struct {
	Key     string     `json:"key" yaml:"key"`
	Summary string     `json:"summary,omitempty" yaml:"summary,omitempty"`
	Status  string     `json:"status,omitempty" yaml:"status,omitempty"`
	Source  EpicSource `json:"source" yaml:"source"`
}

// Sprint is one sprint an issue has been part of.
type Sprint struct {
	ID           int       `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	State        string    `json:"state" yaml:"state"`
	Goal         string    `json:"goal,omitempty" yaml:"goal,omitempty"`
	BoardID      int       `json:"board_id,omitempty" yaml:"board_id,omitempty"`
	StartDate    time.Time `json:"start_date,omitzero" yaml:"start_date,omitempty"`
	EndDate      time.Time `json:"end_date,omitzero" yaml:"end_date,omitempty"`
	CompleteDate time.Time `json:"complete_date,omitzero" yaml:"complete_date,omitempty"`
}

// Sections holds the Requirements and Acceptance Criteria parsed from a
// description.
type Sections struct {
	Key                string   `json:"key,omitempty" yaml:"key,omitempty"`
	Requirements       []string `json:"requirements" yaml:"requirements"`
	AcceptanceCriteria []string `json:"acceptance_criteria" yaml:"acceptance_criteria"`
}

// ArchivedTicket is a Ticket stored in the local archive.
type ArchivedTicket struct {
	Ticket     `yaml:",inline"`
	ArchivedAt time.Time `json:"archived_at" yaml:"archived_at"`
}
