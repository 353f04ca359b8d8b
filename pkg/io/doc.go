// Package io provides configuration and file format handling.
//
// Subpackages:
//   - config: repotools settings from flags, environment and repotools.yaml
//   - toxini: tox.ini documents, parsed and written in configparser layout
//
// For atomic file replacement and path helpers, see the fsutil package.
package io
