// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
)

var ticketCmd = &cobra.Command{
	Use:   "ticket KEY",
	Short: "Show an issue's fields, description and sections",
	Long: `Ticket fetches one issue and prints its headline fields, its description
flattened to plain text, the Requirements and Acceptance Criteria found in the
description, its epic and its sprints.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newJiraClient()
		if err != nil {
			return err
		}
		t, err := c.Ticket(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeResult(cmd, t)
	},
}

var commentsCmd = &cobra.Command{
	Use:   "comments KEY",
	Short: "List an issue's comments as plain text, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newJiraClient()
		if err != nil {
			return err
		}
		comments, err := c.Comments(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeResult(cmd, comments)
	},
}

var linksCmd = &cobra.Command{
	Use:   "links KEY",
	Short: "List an issue's links to other issues",
	Long: `Links lists the issues linked to KEY with the relation read from KEY's
side (e.g. "is blocked by"). With --remote it lists web links instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		remote, _ := cmd.Flags().GetBool("remote")

		c, err := newJiraClient()
		if err != nil {
			return err
		}
		if remote {
			links, err := c.RemoteLinks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeResult(cmd, links)
		}
		links, err := c.Links(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeResult(cmd, links)
	},
}

var attachmentsCmd = &cobra.Command{
	Use:   "attachments KEY",
	Short: "List an issue's attachments (metadata only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newJiraClient()
		if err != nil {
			return err
		}
		attachments, err := c.Attachments(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeResult(cmd, attachments)
	},
}

var epicCmd = &cobra.Command{
	Use:   "epic KEY",
	Short: "Show the epic an issue belongs to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newJiraClient()
		if err != nil {
			return err
		}
		epic, err := c.Epic(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeResult(cmd, epic)
	},
}

var sprintCmd = &cobra.Command{
	Use:   "sprint KEY",
	Short: "List the sprints an issue has been part of",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newJiraClient()
		if err != nil {
			return err
		}
		sprints, err := c.Sprints(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeResult(cmd, sprints)
	},
}

func init() {
	linksCmd.Flags().Bool("remote", false, "list web links instead of issue links")

	rootCmd.AddCommand(ticketCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(attachmentsCmd)
	rootCmd.AddCommand(epicCmd)
	rootCmd.AddCommand(sprintCmd)
}
