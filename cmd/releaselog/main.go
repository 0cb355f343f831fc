package main

import (
	"os"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/releaselog/internal"
	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"github.com/rios0rios0/releaselog/internal/infrastructure/controllers"
)

const maxRangeArgs = 2

func buildCommand(controller entities.Controller) *cobra.Command {
	bind := controller.GetBind()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:           bind.Use,
		Short:         bind.Short,
		Long:          bind.Long,
		Args:          cobra.MaximumNArgs(maxRangeArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          controller.Execute,
	}
	controller.AddFlags(cmd)
	return cmd
}

func buildRootCommand(appContext *internal.AppInternal) *cobra.Command {
	rootCmd := buildCommand(appContext.GetRootController())

	// Global persistent flags
	controllers.AddSettingsFlags(rootCmd)

	for _, controller := range appContext.GetControllers() {
		rootCmd.AddCommand(buildCommand(controller))
	}
	return rootCmd
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})

	// a missing .env file is not an error
	_ = godotenv.Load()

	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	cobraRoot := buildRootCommand(injectAppContext())
	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'releaselog': %s", err)
	}
}
