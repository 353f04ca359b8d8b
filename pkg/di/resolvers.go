package di

import (
	"fmt"

	"github.com/openedx/repotools/pkg/client/forge"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Dependency resolvers.

// ResolveForgeFactory retrieves the forge client factory from the injector.
func ResolveForgeFactory(injector Injector) (forge.Factory, error) {
	factory, err := do.Invoke[forge.Factory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve forge factory dependency: %w", err)
	}

	return factory, nil
}

// Handler decorators.

// WithForgeFactory decorates a handler to automatically resolve the forge factory.
func WithForgeFactory(
	handler func(cmd *cobra.Command, injector Injector, factory forge.Factory) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		factory, err := ResolveForgeFactory(injector)
		if err != nil {
			return err
		}

		return handler(cmd, injector, factory)
	}
}
