// Package di wires repotools' command dependencies with samber/do.
//
// A Runtime holds provider modules; each command invocation gets a fresh
// injector built from them, so tests can swap a dependency with an extra module.
package di
