// Package main is the entry point for the repotools application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/openedx/repotools/internal/buildmeta"
	"github.com/openedx/repotools/pkg/cli/cmd"
	"github.com/openedx/repotools/pkg/utils/notify"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	exitCode := runSafely(os.Args[1:], func(args []string) int {
		return runWithArgs(ctx, args)
	}, os.Stderr)

	stop()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

//nolint:nonamedreturns // Named return simplifies panic recovery logic.
func runSafely(args []string, runner func([]string) int, errWriter io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			notify.WriteMessage(notify.Message{
				Type:    notify.ErrorType,
				Content: fmt.Sprintf("panic recovered: %v\n%s", r, debug.Stack()),
				Writer:  errWriter,
			})

			exitCode = 1
		}
	}()

	return runner(args)
}

func runWithArgs(ctx context.Context, args []string) int {
	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)

	err := cmd.Execute(ctx, rootCmd)
	if err != nil {
		notify.Errorf(rootCmd.ErrOrStderr(), "%v", err)

		return 1
	}

	return 0
}
