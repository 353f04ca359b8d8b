// Package oep2 provides the CLI commands syncing OEP-2 openedx.yaml files
// between the central registry and the repositories it describes.
package oep2

import (
	"fmt"

	"github.com/openedx/repotools/pkg/di"
	"github.com/spf13/cobra"
)

// NewOEP2Cmd creates the oep2 command group.
func NewOEP2Cmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oep2",
		Short: "Sync OEP-2 repository metadata",
		Long: "Push the repository metadata registry out to openedx.yaml files (explode), " +
			"or gather openedx.yaml files back into one registry document (implode).",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := cmd.Help()
			if err != nil {
				return fmt.Errorf("displaying oep2 command help: %w", err)
			}

			return nil
		},
	}

	cmd.AddCommand(NewExplodeCmd(runtimeContainer))
	cmd.AddCommand(NewImplodeCmd(runtimeContainer))

	return cmd
}
