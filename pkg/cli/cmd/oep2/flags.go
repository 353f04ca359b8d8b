package oep2

import (
	"fmt"

	"github.com/openedx/repotools/pkg/client/forge"
	"github.com/openedx/repotools/pkg/io/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func addGitHubFlags(flags *pflag.FlagSet) {
	flags.String(config.KeyGitHubToken, "",
		"GitHub token; defaults to REPOTOOLS_GITHUB_TOKEN, GITHUB_TOKEN, then the gh CLI login")
	flags.String(config.KeyGitHubAPIURL, "",
		"GitHub Enterprise API URL; empty targets github.com")
}

// loadSettings reads flags, environment and config file into Settings.
func loadSettings(viperInstance *viper.Viper) (config.Settings, error) {
	settings, err := config.Load(viperInstance)
	if err != nil {
		return config.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	return settings, nil
}

func newClient(factory forge.Factory, settings config.Settings) (forge.Client, error) {
	client, err := factory.New(settings.GitHubToken, settings.GitHubAPIURL)
	if err != nil {
		return nil, fmt.Errorf("create github client: %w", err)
	}

	return client, nil
}
