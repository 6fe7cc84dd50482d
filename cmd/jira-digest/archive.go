// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/jira-digest/internal/archive"
	"github.com/pdiddy/jira-digest/internal/render"
	"github.com/pdiddy/jira-digest/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Keep local snapshots of tickets (save, list, show, search, delete, export)",
	Long: `Archive manages a local SQLite store of ticket digests. Saving a ticket
fetches it once and stores the result; the other subcommands work offline.
Fetch commands never read from the archive.`,
}

// --- save subcommand ---

var archiveSaveCmd = &cobra.Command{
	Use:   "save KEY...",
	Short: "Fetch tickets and store them in the archive",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArchiveSave,
}

func runArchiveSave(cmd *cobra.Command, args []string) error {
	c, err := newJiraClient()
	if err != nil {
		return err
	}
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	w := cmd.OutOrStdout()
	var failed int
	for _, key := range args {
		t, err := c.Ticket(cmd.Context(), key)
		if err == nil {
			err = store.Save(cmd.Context(), t)
		}
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", key, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "saved   %s\n", t.Key)
	}

	if failed > 0 {
		return fmt.Errorf("%d ticket(s) failed to archive", failed)
	}
	return nil
}

// --- list subcommand ---

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived tickets, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		tickets, err := store.List(cmd.Context(), listOptsFromFlags(cmd))
		if err != nil {
			return err
		}
		return writeResult(cmd, tickets)
	},
}

// --- show subcommand ---

var archiveShowCmd = &cobra.Command{
	Use:   "show KEY",
	Short: "Show an archived ticket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		t, err := store.Get(cmd.Context(), strings.ToUpper(args[0]))
		if err != nil {
			return err
		}
		return writeResult(cmd, t)
	},
}

// --- search subcommand ---

var archiveSearchCmd = &cobra.Command{
	Use:   "search TEXT",
	Short: "Search archived summaries, descriptions and sections",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		tickets, err := store.Search(cmd.Context(), strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		return writeResult(cmd, tickets)
	},
}

// --- delete subcommand ---

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete KEY...",
	Short: "Remove tickets from the archive",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		for _, key := range args {
			if err := store.Delete(cmd.Context(), strings.ToUpper(key)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", strings.ToUpper(key))
		}
		return nil
	},
}

// --- export subcommand ---

var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the archive to YAML or JSON",
	Long: `Export writes every archived ticket (or the subset matching --project and
--status) as a YAML or JSON list, to stdout or to --file.`,
	Args: cobra.NoArgs,
	RunE: runArchiveExport,
}

func runArchiveExport(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	path, _ := cmd.Flags().GetString("file")

	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if format == types.OutputText {
		return fmt.Errorf("unsupported format %q: use yaml or json", formatName)
	}

	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	var w io.Writer = cmd.OutOrStdout()
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	if err := store.Export(cmd.Context(), w, format, listOptsFromFlags(cmd)); err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	}
	return nil
}

// --- shared helpers ---

func listOptsFromFlags(cmd *cobra.Command) archive.ListOptions {
	project, _ := cmd.Flags().GetString("project")
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")
	return archive.ListOptions{Project: project, Status: status, Limit: limit}
}

func init() {
	for _, c := range []*cobra.Command{archiveListCmd, archiveExportCmd} {
		c.Flags().String("project", "", "filter by project key, e.g. SHOP")
		c.Flags().String("status", "", "filter by status name")
	}
	archiveListCmd.Flags().Int("limit", 0, "maximum results (0 = archive.max_results)")
	archiveSearchCmd.Flags().Int("limit", 0, "maximum results (0 = archive.max_results)")
	archiveExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	archiveExportCmd.Flags().String("file", "", "write to this file instead of stdout")

	archiveCmd.AddCommand(archiveSaveCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveSearchCmd)
	archiveCmd.AddCommand(archiveDeleteCmd)
	archiveCmd.AddCommand(archiveExportCmd)

	rootCmd.AddCommand(archiveCmd)
}
