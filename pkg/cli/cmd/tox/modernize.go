package tox

import (
	"fmt"
	"io"

	"github.com/openedx/repotools/pkg/di"
	"github.com/openedx/repotools/pkg/fsutil"
	"github.com/openedx/repotools/pkg/svc/modernizer"
	"github.com/openedx/repotools/pkg/utils/notify"
	"github.com/spf13/cobra"
)

const modernizeLongDesc = `Rewrite a tox.ini in place for Python 3.8 and Django 2.2.

The [tox] envlist has its py{...} factor replaced with py{38} and its
django{...} factor replaced with django{22}. In [testenv] deps, the django111
and django20 lines are removed and the django21 line becomes a django22 line,
unless one already exists. Running the command twice changes nothing.

The file must contain a [tox] or a [testenv] section; otherwise it is left
untouched and the command fails.

Examples:
  # Modernize the tox.ini of the current repository
  repotools tox modernize tox.ini

  # Modernize a checkout elsewhere
  repotools tox modernize ~/src/edx-platform/tox.ini`

// NewModernizeCmd creates the tox modernize command.
func NewModernizeCmd(_ *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "modernize <path>",
		Short:        "Upgrade the Python and Django versions tested by a tox.ini",
		Long:         modernizeLongDesc,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModernize(cmd.OutOrStdout(), args[0])
		},
	}
}

func runModernize(out io.Writer, path string) error {
	expanded, err := fsutil.ExpandHomePath(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	notify.Titlef(out, "🐍", "Modernize %s...", expanded)

	mod, err := modernizer.NewFromFile(expanded)
	if err != nil {
		return fmt.Errorf("modernize %s: %w", expanded, err)
	}

	result, err := mod.Modernize()
	if err != nil {
		return fmt.Errorf("modernize %s: %w", expanded, err)
	}

	reportModernize(out, result)

	return nil
}

func reportModernize(out io.Writer, result modernizer.Result) {
	for _, field := range result.Skipped {
		notify.Warningf(out, "%s not found, skipped", field)
	}

	if result.EnvListChanged {
		notify.Activityf(out, "envlist set to %q", result.EnvList)
	}

	for _, line := range result.Dependencies.Removed {
		notify.Activityf(out, "removed dependency %q", line)
	}

	for _, line := range result.Dependencies.Added {
		notify.Activityf(out, "added dependency %q", line)
	}

	if !result.EnvListChanged && !result.Dependencies.Changed() {
		notify.Infof(out, "already up to date")
	}

	if result.Written {
		notify.Successf(out, "updated %s", result.Path)
	}
}
