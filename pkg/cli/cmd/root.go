package cmd

import (
	"context"
	"fmt"

	"github.com/openedx/repotools/pkg/cli/cmd/oep2"
	"github.com/openedx/repotools/pkg/cli/cmd/tox"
	"github.com/openedx/repotools/pkg/cli/ui/errorhandler"
	"github.com/openedx/repotools/pkg/di"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(di.NewRuntime(), version, commit, date)
}

// NewRootCmdWithRuntime is NewRootCmd with an explicit dependency runtime.
func NewRootCmdWithRuntime(runtimeContainer *di.Runtime, version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "repotools",
		Short:        "Maintenance utilities for Open edX repositories",
		Long:         "repotools upgrades tox configurations and keeps OEP-2 openedx.yaml metadata in sync.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.AddCommand(tox.NewToxCmd(runtimeContainer))
	cmd.AddCommand(oep2.NewOEP2Cmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(ctx context.Context, cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(ctx, cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// Help only fails when the output writer does.
	_ = cmd.Help()

	return nil
}
