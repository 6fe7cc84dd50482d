// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/jira-digest/internal/richtext"
	"github.com/pdiddy/jira-digest/pkg/types"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections [KEY]",
	Short: "Extract Requirements and Acceptance Criteria",
	Long: `Sections prints the Requirements and Acceptance Criteria lines found in a
description. With KEY it fetches the issue's description; with --file it reads
a local file instead ("-" for stdin). A file whose content is a JSON object is
read as an ADF document; anything else is read as plain text.

Use --label to print only one section.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSections,
}

func runSections(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	labelName, _ := cmd.Flags().GetString("label")

	var label *richtext.Label
	if labelName != "" {
		l, err := parseLabel(labelName)
		if err != nil {
			return err
		}
		label = &l
	}

	var s types.Sections
	switch {
	case file != "" && len(args) > 0:
		return fmt.Errorf("give either an issue key or --file, not both")
	case file != "":
		body, err := readBody(cmd, file)
		if err != nil {
			return err
		}
		s = types.Sections{
			Requirements:       nonNil(richtext.ExtractSection(body, richtext.Requirements)),
			AcceptanceCriteria: nonNil(richtext.ExtractSection(body, richtext.AcceptanceCriteria)),
		}
	case len(args) == 1:
		c, err := newJiraClient()
		if err != nil {
			return err
		}
		s, err = c.Sections(cmd.Context(), args[0])
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("issue key or --file required")
	}

	if label == nil {
		return writeResult(cmd, s)
	}
	if *label == richtext.Requirements {
		return writeResult(cmd, s.Requirements)
	}
	return writeResult(cmd, s.AcceptanceCriteria)
}

var flattenCmd = &cobra.Command{
	Use:   "flatten",
	Short: "Flatten an ADF document to plain text",
	Long: `Flatten reads an ADF document (or plain text) from --file, "-" for stdin,
and prints it as plain text. No request is made to Jira.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			return fmt.Errorf("--file is required")
		}
		body, err := readBody(cmd, file)
		if err != nil {
			return err
		}
		return writeResult(cmd, richtext.Flatten(body))
	},
}

// parseLabel maps a --label value to a section label.
func parseLabel(s string) (richtext.Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "requirements", "requirement", "req":
		return richtext.Requirements, nil
	case "acceptance", "acceptance-criteria", "ac":
		return richtext.AcceptanceCriteria, nil
	default:
		return 0, fmt.Errorf("unknown label %q: use requirements or acceptance", s)
	}
}

// readBody loads a description from path, or stdin for "-". JSON objects
// are parsed as ADF documents, everything else is plain text.
func readBody(cmd *cobra.Command, path string) (richtext.Body, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return richtext.Body{}, fmt.Errorf("reading %s: %w", path, err)
	}

	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		doc, err := richtext.ParseDocument(data)
		if err == nil {
			return richtext.DocBody(doc), nil
		}
	}
	return richtext.PlainBody(string(data)), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func init() {
	sectionsCmd.Flags().String("file", "", `read the description from a file ("-" for stdin) instead of Jira`)
	sectionsCmd.Flags().String("label", "", "print only one section: requirements or acceptance")
	flattenCmd.Flags().String("file", "", `ADF JSON or text file to flatten ("-" for stdin)`)

	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(flattenCmd)
}
