// Package config loads repotools settings from flags, environment variables
// and an optional repotools.yaml file.
//
// Priority is defaults < config file < environment < flags. Environment
// variables use the REPOTOOLS_ prefix with dashes turned into underscores
// (REPOTOOLS_GITHUB_TOKEN); GITHUB_TOKEN is accepted as a fallback token.
package config
