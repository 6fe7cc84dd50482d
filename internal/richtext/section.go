// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package richtext

import (
	"regexp"
	"strings"
)

// Label names a section that ExtractSection can locate.
type Label int

const (
	// Requirements matches "Requirement" or "Requirements", with an optional colon.
	Requirements Label = iota
	// AcceptanceCriteria matches "Acceptance Criteria", with an optional colon.
	AcceptanceCriteria
)

// String returns the label as it appears in ticket text.
func (l Label) String() string {
	switch l {
	case Requirements:
		return "Requirements"
	case AcceptanceCriteria:
		return "Acceptance Criteria"
	default:
		return "unknown"
	}
}

// sectionPattern pairs the heading that opens a section with the terms that
// close it. Boundaries are literal words, not structure: a body line that
// mentions the sibling heading ends the section early.
type sectionPattern struct {
	start *regexp.Regexp
	end   *regexp.Regexp
}

var sections = map[Label]sectionPattern{
	Requirements: {
		start: regexp.MustCompile(`(?is)requirements?:?\s*`),
		end:   regexp.MustCompile(`(?is)\n\n|acceptance`),
	},
	AcceptanceCriteria: {
		start: regexp.MustCompile(`(?is)acceptance criteria:?\s*`),
		end:   regexp.MustCompile(`(?is)\n\n|requirements`),
	},
}

// marker matches a leading bullet or numbering prefix such as "-", "*", "1.".
var marker = regexp.MustCompile(`^[*\-\d.]*`)

// ExtractSection returns the cleaned lines of the labeled section in b.
// Documents are flattened first. It returns nil when the body is empty or
// the section is not present.
func ExtractSection(b Body, label Label) []string {
	if b.IsZero() {
		return nil
	}
	return ExtractText(Flatten(b), label)
}

// ExtractText is ExtractSection for text that is already plain.
func ExtractText(text string, label Label) []string {
	if text == "" {
		return nil
	}
	p, ok := sections[label]
	if !ok {
		return nil
	}

	loc := p.start.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	body := text[loc[1]:]
	if end := p.end.FindStringIndex(body); end != nil {
		body = body[:end[0]]
	}

	var lines []string
	for _, line := range strings.Split(body, "\n") {
		if line = StripMarker(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// StripMarker removes one leading list marker from line and trims the
// result. Applying it to an already clean line changes nothing.
func StripMarker(line string) string {
	return strings.TrimSpace(marker.ReplaceAllString(line, ""))
}
