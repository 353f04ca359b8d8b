package fsutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// ReplaceFile atomically replaces the file at output with whatever write produces.
//
// The content is staged in a temporary file in the same directory, fsynced and
// renamed over the destination, so readers observe either the old or the new
// file and never a partial write. Permissions of an existing destination are kept.
// A symlinked destination is written through, so the link itself survives.
//
// Parameters:
//   - output: The destination file path
//   - write: Callback streaming the new content into the staged file
//
// Returns:
//   - error: ErrEmptyOutputPath if output is empty, or the staging/rename error
func ReplaceFile(output string, write func(io.Writer) error) error {
	if output == "" {
		return ErrEmptyOutputPath
	}

	output = filepath.Clean(output)

	target, err := filepath.EvalSymlinks(output)
	switch {
	case err == nil:
		output = target
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to resolve file %s: %w", output, err)
	}

	pending, err := renameio.NewPendingFile(output, renameio.WithExistingPermissions())
	if err != nil {
		return fmt.Errorf("failed to stage file %s: %w", output, err)
	}

	// Cleanup is a no-op once the file has been committed.
	defer func() { _ = pending.Cleanup() }()

	err = write(pending)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", output, err)
	}

	err = pending.CloseAtomicallyReplace()
	if err != nil {
		return fmt.Errorf("failed to replace file %s: %w", output, err)
	}

	return nil
}
