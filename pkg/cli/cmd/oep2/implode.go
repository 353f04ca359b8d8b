package oep2

import (
	"fmt"

	"github.com/openedx/repotools/pkg/client/forge"
	"github.com/openedx/repotools/pkg/di"
	"github.com/openedx/repotools/pkg/io/config"
	oep2svc "github.com/openedx/repotools/pkg/svc/oep2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const implodeLongDesc = `Collect the openedx.yaml files of every repository in the given
organizations and print them as one registry document on stdout.

Examples:
  # Rebuild the registry from the default organizations
  repotools oep2 implode > repos.yaml

  # Prefer files still waiting in the sync branch
  repotools oep2 implode --org edx --branch add-openedx-yaml --branch master`

// NewImplodeCmd creates the oep2 implode command.
func NewImplodeCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var branches []string

	viperInstance := config.InitializeViper()

	cmd := &cobra.Command{
		Use:          "implode",
		Short:        "Gather openedx.yaml files into a registry document",
		Long:         implodeLongDesc,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.RunE = di.RunEWithRuntime(runtimeContainer, di.WithForgeFactory(
		func(cmd *cobra.Command, _ di.Injector, factory forge.Factory) error {
			return runImplode(cmd, viperInstance, factory, branches)
		},
	))

	flags := cmd.Flags()
	addGitHubFlags(flags)
	flags.StringSlice("org", config.DefaultOrgs, "Organization to scan (repeatable)")
	flags.StringSliceVar(&branches, "branch", nil,
		"Branch to read openedx.yaml from, tried in order (repeatable); default is each repository's default branch")

	_ = viperInstance.BindPFlag(config.KeyGitHubToken, flags.Lookup(config.KeyGitHubToken))
	_ = viperInstance.BindPFlag(config.KeyGitHubAPIURL, flags.Lookup(config.KeyGitHubAPIURL))
	_ = viperInstance.BindPFlag(config.KeyOrgs, flags.Lookup("org"))

	return cmd
}

func runImplode(cmd *cobra.Command, viperInstance *viper.Viper, factory forge.Factory, branches []string) error {
	settings, err := loadSettings(viperInstance)
	if err != nil {
		return err
	}

	client, err := newClient(factory, settings)
	if err != nil {
		return err
	}

	registry, err := oep2svc.NewImploder(client, oep2svc.ImplodeOptions{
		Orgs:     settings.Orgs,
		Branches: branches,
		Out:      cmd.ErrOrStderr(),
	}).Collect(cmd.Context())
	if err != nil {
		return fmt.Errorf("implode: %w", err)
	}

	rendered, err := oep2svc.RenderRegistry(registry)
	if err != nil {
		return fmt.Errorf("implode: %w", err)
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
	if err != nil {
		return fmt.Errorf("write registry: %w", err)
	}

	return nil
}
