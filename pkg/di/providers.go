package di

import (
	"github.com/openedx/repotools/pkg/client/forge"
	"github.com/samber/do/v2"
)

// Dependency providers.

// NewRuntime constructs the shared runtime container used by root command and tests.
// It registers the GitHub-backed forge client factory.
func NewRuntime() *Runtime {
	return New(
		provideForgeFactory,
	)
}

// ProvideForgeFactory returns a module registering factory, replacing the default one.
func ProvideForgeFactory(factory forge.Factory) Module {
	return func(i Injector) error {
		do.OverrideValue(i, factory)

		return nil
	}
}

// provideForgeFactory registers the forge client factory dependency.
func provideForgeFactory(i Injector) error {
	do.Provide(i, func(Injector) (forge.Factory, error) {
		return forge.GitHubFactory{}, nil
	})

	return nil
}
