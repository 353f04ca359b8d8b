// Package errorhandler runs the repotools command tree and turns cobra's
// error output into a single printable error.
package errorhandler

import (
	"bytes"
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// Normalizer cleans the text cobra wrote to its error stream.
type Normalizer interface {
	Normalize(raw string) string
}

// Executor runs a command with its error stream captured.
type Executor struct {
	normalizer Normalizer
}

// NewExecutor returns an Executor using DefaultNormalizer.
func NewExecutor() *Executor {
	return &Executor{normalizer: DefaultNormalizer{}}
}

// Execute runs cmd with ctx. On failure it returns a *CommandError holding
// the normalized stderr text and the original error.
func (e *Executor) Execute(ctx context.Context, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var captured bytes.Buffer

	previous := cmd.ErrOrStderr()

	cmd.SetErr(&captured)
	defer cmd.SetErr(previous)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	return &CommandError{
		message: e.normalizer.Normalize(captured.String()),
		cause:   err,
	}
}

// CommandError is a failed command run.
type CommandError struct {
	message string
	cause   error
}

// Error returns the normalized output, followed by the cause when the
// output does not already mention it.
func (e *CommandError) Error() string {
	if e == nil {
		return ""
	}

	if e.cause == nil {
		return e.message
	}

	cause := e.cause.Error()

	switch {
	case e.message == "":
		return cause
	case strings.Contains(e.message, cause):
		return e.message
	default:
		return e.message + ": " + cause
	}
}

// Unwrap returns the error the command returned.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// DefaultNormalizer trims the captured text and drops cobra's "Error: "
// prefix from the first line. Following lines, such as usage hints, are kept.
type DefaultNormalizer struct{}

// Normalize implements Normalizer.
func (DefaultNormalizer) Normalize(raw string) string {
	first, rest, multiline := strings.Cut(strings.TrimSpace(raw), "\n")

	first = strings.TrimPrefix(strings.TrimSpace(first), "Error: ")
	if !multiline {
		return first
	}

	return first + "\n" + rest
}
