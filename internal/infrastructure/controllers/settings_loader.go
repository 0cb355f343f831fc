package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
)

// AddSettingsFlags adds the flags that override the configuration file.
func AddSettingsFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().StringP("repo", "r", ".",
		"Path inside the repository of the root module")
	cmd.PersistentFlags().StringSlice("include", nil,
		"Only report modules matching this regex (repeatable)")
	cmd.PersistentFlags().StringSlice("exclude", nil,
		"Never report modules matching this regex (repeatable)")
	cmd.PersistentFlags().StringSlice("ignore", nil,
		"Leave files matching this glob out of stats (repeatable)")
	cmd.PersistentFlags().String("workspace", "",
		"Directory dependency repositories are cloned into")
	cmd.PersistentFlags().Duration("timeout", 0,
		"Limit for each fetch or log call (e.g. 2m)")
	cmd.PersistentFlags().String("token", "",
		"GitHub token for pull request lookups (overrides config)")
	cmd.PersistentFlags().String("gitlab-token", "",
		"GitLab token for merge request lookups (overrides config)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")
}

// loadSettings reads the configuration file (explicit, discovered, or none) and
// applies the command-line overrides on top.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")

	settings := entities.DefaultSettings()
	if configPath == "" {
		if found, err := entities.FindConfigFile(); err == nil {
			configPath = found
		}
	}
	if configPath != "" {
		logger.Infof("Using config file: %s", configPath)
		loaded, err := entities.NewSettings(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		settings = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("include") {
		settings.Include, _ = flags.GetStringSlice("include")
	}
	if flags.Changed("exclude") {
		settings.Exclude, _ = flags.GetStringSlice("exclude")
	}
	if flags.Changed("ignore") {
		settings.IgnoreFiles, _ = flags.GetStringSlice("ignore")
	}
	if flags.Changed("workspace") {
		settings.Workspace, _ = flags.GetString("workspace")
	}
	if flags.Changed("timeout") {
		settings.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("token") {
		settings.GitHubToken, _ = flags.GetString("token")
	}
	if flags.Changed("gitlab-token") {
		settings.GitLabToken, _ = flags.GetString("gitlab-token")
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}
