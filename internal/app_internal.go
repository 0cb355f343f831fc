package internal

import (
	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"github.com/rios0rios0/releaselog/internal/infrastructure/controllers"
)

// AppInternal holds the controllers the CLI is built from.
type AppInternal struct {
	root        *controllers.ChangelogController
	controllers []entities.Controller
}

// NewAppInternal creates the application from the injected controllers.
func NewAppInternal(
	root *controllers.ChangelogController,
	subcommands *[]entities.Controller,
) *AppInternal {
	return &AppInternal{root: root, controllers: *subcommands}
}

// GetRootController returns the controller bound to the root command.
func (it *AppInternal) GetRootController() entities.Controller {
	return it.root
}

// GetControllers returns the controllers bound to subcommands.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
