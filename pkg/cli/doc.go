// Package cli holds the repotools command line interface.
//
// Subpackages:
//   - cmd: the cobra command tree (tox, oep2)
//   - ui/errorhandler: command execution with normalized error output
package cli
