// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the jira-digest CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/jira-digest/internal/render"
	"github.com/pdiddy/jira-digest/internal/secrets"
	"github.com/pdiddy/jira-digest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the jira-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "jira-digest",
	Short: "Fetch Jira Cloud issues as plain-text digests",
	Long: `jira-digest fetches issue data from the Jira Cloud REST API and reshapes it
into compact summaries: ticket fields, comments, links, attachments, epic and
sprints. Rich-text descriptions are flattened to plain text and their
Requirements and Acceptance Criteria sections are extracted.

Each fetch command issues a single GET. Use "archive" to keep snapshots of
tickets for offline listing, search and export.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			slog.Debug("loaded secrets", "keys", secrets.Names(s))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./jira-digest.yaml or ~/.config/jira-digest/jira-digest.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log HTTP requests and other debug detail to stderr")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("jira-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "jira-digest"))
		}
	}

	// Defaults register every key so environment overrides reach Unmarshal.
	defaults := types.DefaultConfig()
	viper.SetDefault("jira.base_url", "")
	viper.SetDefault("jira.email", "")
	viper.SetDefault("jira.api_token", "")
	viper.SetDefault("jira.timeout", defaults.Jira.Timeout)
	viper.SetDefault("jira.user_agent", defaults.Jira.UserAgent)
	viper.SetDefault("jira.max_retries", defaults.Jira.MaxRetries)
	viper.SetDefault("jira.fields.epic_link", defaults.Jira.Fields.EpicLink)
	viper.SetDefault("jira.fields.sprint", defaults.Jira.Fields.Sprint)
	viper.SetDefault("archive.dir", defaults.Archive.Dir)
	viper.SetDefault("archive.max_results", defaults.Archive.MaxResults)

	viper.SetEnvPrefix("JIRA_DIGEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// writeResult renders v to the command's output in the --output format.
func writeResult(cmd *cobra.Command, v any) error {
	name, _ := rootCmd.PersistentFlags().GetString("output")
	format, err := render.ParseFormat(name)
	if err != nil {
		return err
	}
	return render.Write(cmd.OutOrStdout(), format, v)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
