package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by repotools.
const EnvPrefix = "REPOTOOLS"

// Setting keys, shared by flags, environment variables and the config file.
const (
	KeyGitHubToken  = "github-token"
	KeyGitHubAPIURL = "github-api-url"
	KeyRegistry     = "registry"
	KeyRegistryPath = "registry-path"
	KeyRegistryRef  = "registry-ref"
	KeyBranch       = "branch"
	KeyOrgs         = "orgs"
)

// Defaults of the OEP-2 sync.
const (
	DefaultRegistry     = "edx/repo-tools-data"
	DefaultRegistryPath = "repos.yaml"
	DefaultBranch       = "add-openedx-yaml"
)

// DefaultOrgs are scanned by implode when no --org is given.
//
//nolint:gochecknoglobals // read-only defaults
var DefaultOrgs = []string{"edx", "edx-ops", "edx-solutions"}

var (
	// ErrMissingRegistry is returned when no registry repository is configured.
	ErrMissingRegistry = errors.New("registry repository must be set as owner/name")
	// ErrMissingBranch is returned when the sync branch name is empty.
	ErrMissingBranch = errors.New("sync branch must not be empty")
)

// Settings are the resolved repotools settings.
type Settings struct {
	GitHubToken  string   `mapstructure:"github-token"`
	GitHubAPIURL string   `mapstructure:"github-api-url"`
	Registry     string   `mapstructure:"registry"`
	RegistryPath string   `mapstructure:"registry-path"`
	RegistryRef  string   `mapstructure:"registry-ref"`
	Branch       string   `mapstructure:"branch"`
	Orgs         []string `mapstructure:"orgs"`
}

// InitializeViper returns a viper instance with defaults, environment binding
// and config file search paths set up.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()

	viperInstance.SetDefault(KeyGitHubToken, "")
	viperInstance.SetDefault(KeyGitHubAPIURL, "")
	viperInstance.SetDefault(KeyRegistry, DefaultRegistry)
	viperInstance.SetDefault(KeyRegistryPath, DefaultRegistryPath)
	viperInstance.SetDefault(KeyRegistryRef, "")
	viperInstance.SetDefault(KeyBranch, DefaultBranch)
	viperInstance.SetDefault(KeyOrgs, DefaultOrgs)

	viperInstance.SetConfigName("repotools")
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")
	viperInstance.AddConfigPath("$HOME/.config/repotools")

	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viperInstance.AutomaticEnv()

	// The error is only returned for an empty key.
	_ = viperInstance.BindEnv(KeyGitHubToken, EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN")

	return viperInstance
}

// BindFlags binds every flag of flags whose name is a setting key.
func BindFlags(viperInstance *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error

	flags.VisitAll(func(flag *pflag.Flag) {
		if bindErr != nil || !isSettingKey(flag.Name) {
			return
		}

		err := viperInstance.BindPFlag(flag.Name, flag)
		if err != nil {
			bindErr = fmt.Errorf("bind flag --%s: %w", flag.Name, err)
		}
	})

	return bindErr
}

// Load reads the optional config file and decodes the settings.
func Load(viperInstance *viper.Viper) (Settings, error) {
	err := viperInstance.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return Settings{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings

	err = viperInstance.Unmarshal(&settings, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			trimStringsHook(),
		)
	})
	if err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}

	return settings, nil
}

// Validate checks the settings needed by the OEP-2 sync.
func (s Settings) Validate() error {
	owner, name, ok := strings.Cut(s.Registry, "/")
	if !ok || owner == "" || name == "" {
		return fmt.Errorf("%w: got %q", ErrMissingRegistry, s.Registry)
	}

	if strings.TrimSpace(s.Branch) == "" {
		return ErrMissingBranch
	}

	return nil
}

func isSettingKey(name string) bool {
	switch name {
	case KeyGitHubToken, KeyGitHubAPIURL, KeyRegistry, KeyRegistryPath, KeyRegistryRef, KeyBranch, KeyOrgs:
		return true
	default:
		return false
	}
}

// trimStringsHook strips surrounding whitespace from string settings, which
// mostly matters for tokens pasted into environment variables.
func trimStringsHook() mapstructure.DecodeHookFuncKind {
	return func(from, to reflect.Kind, data any) (any, error) {
		if from != reflect.String || to != reflect.String {
			return data, nil
		}

		text, _ := data.(string)

		return strings.TrimSpace(text), nil
	}
}
