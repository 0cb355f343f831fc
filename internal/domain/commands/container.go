package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewDeltasCommand); err != nil {
		return err
	}
	if err := container.Provide(NewChangelogCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *DeltasCommand) Deltas {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ChangelogCommand) Changelog {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
