// Package tox provides the CLI commands working on tox configuration files.
package tox

import (
	"fmt"

	"github.com/openedx/repotools/pkg/di"
	"github.com/spf13/cobra"
)

// NewToxCmd creates the tox command group.
func NewToxCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tox",
		Short:        "Maintain tox configuration files",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := cmd.Help()
			if err != nil {
				return fmt.Errorf("displaying tox command help: %w", err)
			}

			return nil
		},
	}

	cmd.AddCommand(NewModernizeCmd(runtimeContainer))

	return cmd
}
