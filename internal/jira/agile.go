// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jira

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/jira-digest/pkg/types"
)

// Epic fetches the epic an issue belongs to. A parent of epic type wins
// over the legacy Epic Link field; an issue that is itself an epic is
// returned as its own epic. It returns nil when no epic is set.
func (c *Client) Epic(ctx context.Context, key string) (*types.Epic, error) {
	issue, err := c.getIssue(ctx, key, "summary", "status", "issuetype", "parent", c.fields.EpicLink)
	if err != nil {
		return nil, err
	}
	return c.resolveEpic(issue, true), nil
}

func (c *Client) resolveEpic(issue *issueResponse, includeSelf bool) *types.Epic {
	f := &issue.Fields
	if includeSelf && f.IssueType.isEpic() {
		return &types.Epic{
			Key:     issue.Key,
			Summary: f.Summary,
			Status:  f.Status.name(),
			Source:  types.EpicFromSelf,
		}
	}
	if pf := f.Parent.fields(); f.Parent.key() != "" && pf.IssueType.isEpic() {
		return &types.Epic{
			Key:     f.Parent.key(),
			Summary: pf.Summary,
			Status:  pf.Status.name(),
			Source:  types.EpicFromParent,
		}
	}
	var link string
	if raw := f.custom(c.fields.EpicLink); raw != nil && json.Unmarshal(raw, &link) == nil && link != "" {
		return &types.Epic{Key: link, Source: types.EpicFromEpicLink}
	}
	return nil
}

// Sprints fetches the sprints an issue has been part of, oldest first as
// Jira stores them.
func (c *Client) Sprints(ctx context.Context, key string) ([]types.Sprint, error) {
	issue, err := c.getIssue(ctx, key, c.fields.Sprint)
	if err != nil {
		return nil, err
	}
	return parseSprints(issue.Fields.custom(c.fields.Sprint)), nil
}

type jiraSprint struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	State        string `json:"state"`
	Goal         string `json:"goal"`
	BoardID      int    `json:"boardId"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	CompleteDate string `json:"completeDate"`
}

func (s jiraSprint) toSprint() types.Sprint {
	return types.Sprint{
		ID:           s.ID,
		Name:         s.Name,
		State:        strings.ToLower(s.State),
		Goal:         s.Goal,
		BoardID:      s.BoardID,
		StartDate:    parseJiraTime(s.StartDate),
		EndDate:      parseJiraTime(s.EndDate),
		CompleteDate: parseJiraTime(s.CompleteDate),
	}
}

// parseSprints reads the sprint field in either of its forms: Cloud
// objects, or the legacy GreenHopper strings
// "com.atlassian.greenhopper.service.sprint.Sprint@1f[id=7,rapidViewId=3,state=ACTIVE,name=S1,...]".
// Entries in neither form are skipped.
func parseSprints(raw json.RawMessage) []types.Sprint {
	sprints := []types.Sprint{}
	if raw == nil {
		return sprints
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return sprints
	}
	for _, item := range items {
		var obj jiraSprint
		if err := json.Unmarshal(item, &obj); err == nil {
			sprints = append(sprints, obj.toSprint())
			continue
		}
		var legacy string
		if err := json.Unmarshal(item, &legacy); err == nil {
			if s, ok := parseLegacySprint(legacy); ok {
				sprints = append(sprints, s)
			}
		}
	}
	return sprints
}

var (
	legacyBody = regexp.MustCompile(`\[(.*)\]\s*$`)
	legacyKey  = regexp.MustCompile(`(?:^|,)([A-Za-z]+)=`)
)

func parseLegacySprint(s string) (types.Sprint, bool) {
	m := legacyBody.FindStringSubmatch(s)
	if m == nil {
		return types.Sprint{}, false
	}
	body := m[1]

	// Values run from one "key=" to the next, so commas inside a goal
	// survive unless followed by something that looks like a key.
	attrs := make(map[string]string)
	locs := legacyKey.FindAllStringSubmatchIndex(body, -1)
	for i, loc := range locs {
		end := len(body)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		val := body[loc[1]:end]
		if val == "<null>" {
			val = ""
		}
		attrs[body[loc[2]:loc[3]]] = val
	}
	if len(attrs) == 0 {
		return types.Sprint{}, false
	}

	id, _ := strconv.Atoi(attrs["id"])
	board, _ := strconv.Atoi(attrs["rapidViewId"])
	return types.Sprint{
		ID:           id,
		Name:         attrs["name"],
		State:        strings.ToLower(attrs["state"]),
		Goal:         attrs["goal"],
		BoardID:      board,
		StartDate:    parseJiraTime(attrs["startDate"]),
		EndDate:      parseJiraTime(attrs["endDate"]),
		CompleteDate: parseJiraTime(attrs["completeDate"]),
	}, true
}
