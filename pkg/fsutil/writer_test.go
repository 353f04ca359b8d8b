package fsutil_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/openedx/repotools/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testContent     = "[tox]\nenvlist = py{38}\n"
	originalContent = "[tox]\nenvlist = py{27}\n"
)

var errWriteAborted = errors.New("write aborted")

func TestReplaceFile(t *testing.T) {
	t.Parallel()

	t.Run("empty output", func(t *testing.T) {
		t.Parallel()

		err := fsutil.ReplaceFile("", func(io.Writer) error { return nil })

		require.ErrorIs(t, err, fsutil.ErrEmptyOutputPath)
	})

	t.Run("new file", func(t *testing.T) {
		t.Parallel()

		output := filepath.Join(t.TempDir(), "tox.ini")

		err := fsutil.ReplaceFile(output, writeString(testContent))
		require.NoError(t, err)

		assertFileContent(t, output, testContent)
	})

	t.Run("existing file is replaced", func(t *testing.T) {
		t.Parallel()

		output := filepath.Join(t.TempDir(), "tox.ini")
		require.NoError(t, os.WriteFile(output, []byte(originalContent), 0o600))

		err := fsutil.ReplaceFile(output, writeString(testContent))
		require.NoError(t, err)

		assertFileContent(t, output, testContent)
	})

	t.Run("existing permissions are kept", func(t *testing.T) {
		t.Parallel()

		output := filepath.Join(t.TempDir(), "tox.ini")
		require.NoError(t, os.WriteFile(output, []byte(originalContent), 0o640))
		require.NoError(t, os.Chmod(output, 0o640))

		err := fsutil.ReplaceFile(output, writeString(testContent))
		require.NoError(t, err)

		info, err := os.Stat(output)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
	})

	t.Run("symlink is written through", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "shared.ini")
		output := filepath.Join(dir, "tox.ini")
		require.NoError(t, os.WriteFile(target, []byte(originalContent), 0o600))
		require.NoError(t, os.Symlink(target, output))

		err := fsutil.ReplaceFile(output, writeString(testContent))
		require.NoError(t, err)

		info, err := os.Lstat(output)
		require.NoError(t, err)
		assert.Equal(t, os.ModeSymlink, info.Mode().Type(), "link must stay a link")
		assertFileContent(t, target, testContent)
	})

	t.Run("failed write leaves original untouched", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		output := filepath.Join(dir, "tox.ini")
		require.NoError(t, os.WriteFile(output, []byte(originalContent), 0o600))

		err := fsutil.ReplaceFile(output, func(w io.Writer) error {
			_, _ = io.WriteString(w, "partial")

			return errWriteAborted
		})

		require.ErrorIs(t, err, errWriteAborted)
		assertFileContent(t, output, originalContent)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "staged file should be cleaned up")
	})
}

func writeString(content string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, content)

		return err
	}
}

func assertFileContent(t *testing.T, path, want string) {
	t.Helper()

	got, err := os.ReadFile(path) //nolint:gosec // test-controlled path
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}
