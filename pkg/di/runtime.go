package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container handed to command handlers.
type Injector = do.Injector

// Module registers dependencies on an injector.
type Module func(Injector) error

// Runtime holds the modules every command invocation starts from.
type Runtime struct {
	modules []Module
}

// New creates a Runtime from the given modules. Nil modules are ignored.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke builds a fresh injector, applies the runtime modules followed by
// extra, then runs handler. The injector is shut down afterwards.
func (r *Runtime) Invoke(handler func(Injector) error, extra ...Module) error {
	injector := do.New()

	defer func() {
		_ = injector.Shutdown()
	}()

	for _, module := range append(append([]Module(nil), r.modules...), extra...) {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts handler to a cobra RunE running inside rt.
func RunEWithRuntime(
	rt *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return rt.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		})
	}
}
