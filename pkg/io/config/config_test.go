package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openedx/repotools/pkg/io/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, name := range []string{
		"GITHUB_TOKEN",
		"REPOTOOLS_GITHUB_TOKEN",
		"REPOTOOLS_GITHUB_API_URL",
		"REPOTOOLS_REGISTRY",
		"REPOTOOLS_REGISTRY_PATH",
		"REPOTOOLS_REGISTRY_REF",
		"REPOTOOLS_BRANCH",
		"REPOTOOLS_ORGS",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	settings, err := config.Load(config.InitializeViper())
	require.NoError(t, err)

	assert.Equal(t, config.DefaultRegistry, settings.Registry)
	assert.Equal(t, config.DefaultRegistryPath, settings.RegistryPath)
	assert.Equal(t, config.DefaultBranch, settings.Branch)
	assert.Equal(t, config.DefaultOrgs, settings.Orgs)
	assert.Empty(t, settings.GitHubToken)
	require.NoError(t, settings.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPOTOOLS_REGISTRY", "openedx/registry")
	t.Setenv("REPOTOOLS_GITHUB_API_URL", "https://github.example.com/api/v3/")
	t.Setenv("REPOTOOLS_ORGS", "openedx,edx")
	t.Setenv("GITHUB_TOKEN", " fallback-token \n")

	settings, err := config.Load(config.InitializeViper())
	require.NoError(t, err)

	assert.Equal(t, "openedx/registry", settings.Registry)
	assert.Equal(t, "https://github.example.com/api/v3/", settings.GitHubAPIURL)
	assert.Equal(t, []string{"openedx", "edx"}, settings.Orgs)
	assert.Equal(t, "fallback-token", settings.GitHubToken)
}

func TestLoadPrefersPrefixedToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "fallback-token")
	t.Setenv("REPOTOOLS_GITHUB_TOKEN", "prefixed-token")

	settings, err := config.Load(config.InitializeViper())
	require.NoError(t, err)

	assert.Equal(t, "prefixed-token", settings.GitHubToken)
}

func TestLoadFromConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "repotools.yaml")
	require.NoError(t, os.WriteFile(path, []byte("registry: openedx/data\nbranch: oep2-sync\norgs:\n  - openedx\n"), 0o600))

	viperInstance := config.InitializeViper()
	viperInstance.SetConfigFile(path)

	settings, err := config.Load(viperInstance)
	require.NoError(t, err)

	assert.Equal(t, "openedx/data", settings.Registry)
	assert.Equal(t, "oep2-sync", settings.Branch)
	assert.Equal(t, []string{"openedx"}, settings.Orgs)
}

func TestLoadInvalidConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "repotools.yaml")
	require.NoError(t, os.WriteFile(path, []byte("registry: [unterminated\n"), 0o600))

	viperInstance := config.InitializeViper()
	viperInstance.SetConfigFile(path)

	_, err := config.Load(viperInstance)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestBindFlagsOverridesEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPOTOOLS_BRANCH", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(config.KeyBranch, config.DefaultBranch, "")
	flags.Bool("dry-run", false, "")
	require.NoError(t, flags.Parse([]string{"--branch", "from-flag"}))

	viperInstance := config.InitializeViper()
	require.NoError(t, config.BindFlags(viperInstance, flags))

	settings, err := config.Load(viperInstance)
	require.NoError(t, err)

	assert.Equal(t, "from-flag", settings.Branch)
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings config.Settings
		wantErr  error
	}{
		{
			name:     "valid",
			settings: config.Settings{Registry: "edx/repo-tools-data", Branch: "add-openedx-yaml"},
		},
		{
			name:     "registry without owner",
			settings: config.Settings{Registry: "repo-tools-data", Branch: "add-openedx-yaml"},
			wantErr:  config.ErrMissingRegistry,
		},
		{
			name:     "empty branch",
			settings: config.Settings{Registry: "edx/repo-tools-data", Branch: " "},
			wantErr:  config.ErrMissingBranch,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.settings.Validate()
			if testCase.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}
