// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes command results as JSON, YAML or plain text.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/jira-digest/pkg/types"
)

// ParseFormat maps a --output value to an OutputFormat. The empty string
// selects text.
func ParseFormat(s string) (types.OutputFormat, error) {
	switch f := types.OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return types.OutputText, nil
	case types.OutputJSON, types.OutputYAML, types.OutputText:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q: use json, yaml or text", s)
	}
}

// Write encodes v to w in the given format.
func Write(w io.Writer, format types.OutputFormat, v any) error {
	switch format {
	case types.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case types.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	case types.OutputText, "":
		return Text(w, v)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// Text writes the human-readable view of v. Types without a dedicated view
// fall back to YAML.
func Text(w io.Writer, v any) error {
	switch v := v.(type) {
	case types.Ticket:
		return TicketText(w, v)
	case types.ArchivedTicket:
		if err := TicketText(w, v.Ticket); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\nArchived: %s\n", v.ArchivedAt.Format("2006-01-02 15:04"))
		return err
	case []types.Comment:
		return commentsText(w, v)
	case []types.Link:
		return linksText(w, v)
	case []types.RemoteLink:
		return remoteLinksText(w, v)
	case []types.Attachment:
		return attachmentsText(w, v)
	case *types.Epic:
		return epicText(w, v)
	case []types.Sprint:
		return sprintsText(w, v)
	case types.Sections:
		return sectionsText(w, v)
	case []types.ArchivedTicket:
		return archiveText(w, v)
	case []string:
		p := &printer{w: w}
		for _, line := range v {
			p.printf("- %s\n", line)
		}
		return p.err
	case string:
		_, err := fmt.Fprintln(w, v)
		return err
	default:
		return Write(w, types.OutputYAML, v)
	}
}
