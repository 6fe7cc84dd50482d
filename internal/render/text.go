// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/jira-digest/pkg/types"
)

const dateLayout = "2006-01-02"

// TicketText writes a ticket as a header block followed by its description
// and sections.
func TicketText(w io.Writer, t types.Ticket) error {
	p := &printer{w: w}
	p.printf("%s  %s\n", t.Key, t.Summary)
	p.println(strings.Repeat("-", 72))

	p.field("Type", t.Type)
	p.field("Status", t.Status)
	p.field("Priority", t.Priority)
	p.field("Assignee", t.Assignee)
	p.field("Reporter", t.Reporter)
	p.field("Resolution", t.Resolution)
	p.field("Labels", strings.Join(t.Labels, ", "))
	p.field("Components", strings.Join(t.Components, ", "))
	p.field("Fix versions", strings.Join(t.FixVersions, ", "))
	p.field("Created", formatDate(t.Created))
	p.field("Updated", formatDate(t.Updated))
	p.field("Due", t.DueDate)
	p.field("Parent", t.Parent)
	if t.Epic != nil {
		p.field("Epic", strings.TrimSpace(t.Epic.Key+" "+t.Epic.Summary))
	}
	if len(t.Sprints) > 0 {
		names := make([]string, len(t.Sprints))
		for i, s := range t.Sprints {
			names[i] = fmt.Sprintf("%s (%s)", s.Name, s.State)
		}
		p.field("Sprints", strings.Join(names, ", "))
	}
	p.field("URL", t.URL)

	if t.Description != "" {
		p.printf("\nDescription\n\n%s\n", t.Description)
	}
	p.list("Requirements", t.Requirements)
	p.list("Acceptance Criteria", t.AcceptanceCriteria)
	return p.err
}

func commentsText(w io.Writer, comments []types.Comment) error {
	p := &printer{w: w}
	if len(comments) == 0 {
		p.println("No comments.")
		return p.err
	}
	for i, c := range comments {
		if i > 0 {
			p.println()
		}
		p.printf("%s  %s\n", c.Author, c.Created.Format("2006-01-02 15:04"))
		p.println(c.Body)
	}
	p.printf("\n%d comments\n", len(comments))
	return p.err
}

func linksText(w io.Writer, links []types.Link) error {
	p := &printer{w: w}
	if len(links) == 0 {
		p.println("No linked issues.")
		return p.err
	}
	p.printf("%-20s  %-12s  %-12s  %s\n", "Relation", "Key", "Status", "Summary")
	p.println(strings.Repeat("-", 90))
	for _, l := range links {
		p.printf("%-20s  %-12s  %-12s  %s\n",
			truncate(l.Relation, 20), l.Key, truncate(l.Status, 12), truncate(l.Summary, 40))
	}
	return p.err
}

func remoteLinksText(w io.Writer, links []types.RemoteLink) error {
	p := &printer{w: w}
	if len(links) == 0 {
		p.println("No remote links.")
		return p.err
	}
	for _, l := range links {
		title := l.Title
		if title == "" {
			title = l.URL
		}
		p.printf("%s\n  %s\n", title, l.URL)
	}
	return p.err
}

func attachmentsText(w io.Writer, attachments []types.Attachment) error {
	p := &printer{w: w}
	if len(attachments) == 0 {
		p.println("No attachments.")
		return p.err
	}
	p.printf("%-40s  %-24s  %10s  %s\n", "Filename", "Type", "Size", "Created")
	p.println(strings.Repeat("-", 90))
	for _, a := range attachments {
		p.printf("%-40s  %-24s  %10d  %s\n",
			truncate(a.Filename, 40), truncate(a.MimeType, 24), a.Size, formatDate(a.Created))
	}
	return p.err
}

func epicText(w io.Writer, e *types.Epic) error {
	p := &printer{w: w}
	if e == nil {
		p.println("No epic.")
		return p.err
	}
	p.field("Epic", e.Key)
	p.field("Summary", e.Summary)
	p.field("Status", e.Status)
	p.field("Source", string(e.Source))
	return p.err
}

func sprintsText(w io.Writer, sprints []types.Sprint) error {
	p := &printer{w: w}
	if len(sprints) == 0 {
		p.println("No sprints.")
		return p.err
	}
	p.printf("%-6s  %-30s  %-8s  %-10s  %s\n", "ID", "Name", "State", "Start", "End")
	p.println(strings.Repeat("-", 72))
	for _, s := range sprints {
		p.printf("%-6d  %-30s  %-8s  %-10s  %s\n",
			s.ID, truncate(s.Name, 30), s.State, formatDate(s.StartDate), formatDate(s.EndDate))
	}
	return p.err
}

func sectionsText(w io.Writer, s types.Sections) error {
	p := &printer{w: w}
	if s.Key != "" {
		p.println(s.Key)
	}
	p.list("Requirements", s.Requirements)
	p.list("Acceptance Criteria", s.AcceptanceCriteria)
	if len(s.Requirements) == 0 && len(s.AcceptanceCriteria) == 0 {
		p.println("No sections found.")
	}
	return p.err
}

func archiveText(w io.Writer, tickets []types.ArchivedTicket) error {
	p := &printer{w: w}
	if len(tickets) == 0 {
		p.println("No archived tickets.")
		return p.err
	}
	p.printf("%-12s  %-14s  %-16s  %s\n", "Key", "Status", "Archived", "Summary")
	p.println(strings.Repeat("-", 90))
	for _, t := range tickets {
		p.printf("%-12s  %-14s  %-16s  %s\n",
			t.Key, truncate(t.Status, 14), t.ArchivedAt.Format("2006-01-02 15:04"), truncate(t.Summary, 40))
	}
	p.printf("\n%d tickets\n", len(tickets))
	return p.err
}

// printer remembers the first write error so views can print freely and
// check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}

func (p *printer) println(args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintln(p.w, args...)
	}
}

// field prints "Name: value", skipping empty values.
func (p *printer) field(name, value string) {
	if value == "" {
		return
	}
	p.printf("%-13s %s\n", name+":", value)
}

func (p *printer) list(title string, items []string) {
	if len(items) == 0 {
		return
	}
	p.printf("\n%s\n", title)
	for _, item := range items {
		p.printf("  - %s\n", item)
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
