// Package cmd assembles the repotools command tree.
package cmd
