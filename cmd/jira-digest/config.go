// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"cmp"
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/jira-digest/internal/archive"
	"github.com/pdiddy/jira-digest/internal/jira"
	"github.com/pdiddy/jira-digest/internal/secrets"
	"github.com/pdiddy/jira-digest/pkg/types"
)

// loadConfig reads settings from viper (file, then environment) and fills
// any missing credentials from .secrets/.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("reading configuration: %w", err)
	}

	creds := secrets.JiraCredentials(loadedSecrets)
	cfg.Jira.BaseURL = cmp.Or(cfg.Jira.BaseURL, creds.BaseURL)
	cfg.Jira.Email = cmp.Or(cfg.Jira.Email, creds.Email)
	cfg.Jira.APIToken = cmp.Or(cfg.Jira.APIToken, creds.APIToken)
	return cfg, nil
}

func newJiraClient() (*jira.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return jira.NewClient(cfg.Jira, nil)
}

func openArchive() (*archive.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return archive.Open(cfg.Archive)
}
