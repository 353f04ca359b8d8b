package oep2

import (
	"fmt"

	"github.com/openedx/repotools/pkg/client/forge"
	"github.com/openedx/repotools/pkg/di"
	"github.com/openedx/repotools/pkg/io/config"
	oep2svc "github.com/openedx/repotools/pkg/svc/oep2"
	"github.com/openedx/repotools/pkg/utils/notify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const explodeLongDesc = `Write each registry entry to an openedx.yaml file in its repository.

For every repository in the registry file, the metadata is committed to a
branch and a pull request is opened against the default branch. Existing
files and pull requests are updated when they differ. Forks and repositories
without commits are skipped.

Settings can also come from REPOTOOLS_* environment variables or a
repotools.yaml file in the current directory or ~/.config/repotools.

Examples:
  # Show what would change without touching any repository
  repotools oep2 explode --dry-run

  # Use a registry file from a feature branch
  repotools oep2 explode --registry-ref my-branch`

// NewExplodeCmd creates the oep2 explode command.
func NewExplodeCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var dryRun bool

	viperInstance := config.InitializeViper()

	cmd := &cobra.Command{
		Use:          "explode",
		Short:        "Push registry entries out to openedx.yaml files",
		Long:         explodeLongDesc,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.RunE = di.RunEWithRuntime(runtimeContainer, di.WithForgeFactory(
		func(cmd *cobra.Command, _ di.Injector, factory forge.Factory) error {
			return runExplode(cmd, viperInstance, factory, dryRun)
		},
	))

	flags := cmd.Flags()
	flags.BoolVar(&dryRun, "dry-run", false, "Report changes without applying them")
	addGitHubFlags(flags)
	flags.String(config.KeyRegistry, config.DefaultRegistry, "Repository holding the registry file (owner/name)")
	flags.String(config.KeyRegistryPath, config.DefaultRegistryPath, "Path of the registry file")
	flags.String(config.KeyRegistryRef, "", "Ref to read the registry from; empty uses the default branch")
	flags.String(config.KeyBranch, config.DefaultBranch, "Branch receiving openedx.yaml and opening the pull request")

	// The error is only returned for a nil flag set.
	_ = config.BindFlags(viperInstance, flags)

	return cmd
}

func runExplode(cmd *cobra.Command, viperInstance *viper.Viper, factory forge.Factory, dryRun bool) error {
	settings, err := loadSettings(viperInstance)
	if err != nil {
		return err
	}

	err = settings.Validate()
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	registry, err := forge.ParseRepoRef(settings.Registry)
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	client, err := newClient(factory, settings)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	notify.Titlef(out, "📤", "Explode %s:%s...", registry, settings.RegistryPath)

	summary, err := oep2svc.NewExploder(client, oep2svc.ExplodeOptions{
		Registry:     registry,
		RegistryPath: settings.RegistryPath,
		RegistryRef:  settings.RegistryRef,
		Branch:       settings.Branch,
		DryRun:       dryRun,
		Out:          out,
	}).Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("explode: %w", err)
	}

	notify.WriteMessage(notify.Message{
		Type: notify.SuccessType,
		Content: "%d repositories, %d skipped, %d files created, %d updated, " +
			"%d pull requests created, %d updated",
		Args: []any{
			summary.Repositories, summary.Skipped,
			summary.FilesCreated, summary.FilesUpdated,
			summary.PullsCreated, summary.PullsUpdated,
		},
		DryRun: dryRun,
		Writer: out,
	})

	return nil
}
