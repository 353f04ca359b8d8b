// Package notify provides utilities for sending formatted notifications to CLI users.
//
// [WriteMessage] renders a message with a type-specific symbol and color:
// success (✔), error (✗), warning (⚠), info (ℹ), activity (►), generate (✚),
// titles with a custom emoji, and indented code blocks for file
// contents. Messages describing a mutation that a dry run skipped carry a
// "(dry run)" marker so the output reads the same either way.
//
// notify is the logging layer of repotools: commands write through it to the
// cobra command's writers instead of using a separate logger.
package notify
