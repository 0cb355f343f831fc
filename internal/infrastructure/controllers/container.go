package controllers

import (
	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewChangelogController); err != nil {
		return err
	}
	if err := container.Provide(NewDeltasController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates the subcommand controllers into a slice for the AppInternal.
// The changelog controller is the root command and is not part of it.
func NewControllers(
	deltasController *DeltasController,
) *[]entities.Controller {
	return &[]entities.Controller{
		deltasController,
	}
}
