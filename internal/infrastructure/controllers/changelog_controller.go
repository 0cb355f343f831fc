package controllers

import (
	"fmt"
	"io"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/releaselog/internal/domain/commands"
	"github.com/rios0rios0/releaselog/internal/domain/entities"
	infraRepos "github.com/rios0rios0/releaselog/internal/infrastructure/repositories"
)

const outputFileMode = 0o644

// ChangelogController handles the root command: the release changelog between two references.
type ChangelogController struct {
	command commands.Changelog
	reports *infraRepos.ReportRegistry
}

// NewChangelogController creates a new ChangelogController.
func NewChangelogController(
	command commands.Changelog,
	reports *infraRepos.ReportRegistry,
) *ChangelogController {
	return &ChangelogController{command: command, reports: reports}
}

// GetBind returns the Cobra command metadata for the changelog controller.
func (it *ChangelogController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "releaselog [start] [end]",
		Short: "Generate the release changelog of a Go module and its dependencies",
		Long: `Generate a release changelog for the Go module in the current repository
and for every dependency whose version changed between two references,
followed by a table of contributors.

start defaults to the latest release tag that is not a release candidate,
end defaults to HEAD.`,
	}
}

// AddFlags adds the changelog-specific flags to the given Cobra command.
func (it *ChangelogController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "markdown",
		fmt.Sprintf("Output format %v", it.reports.Names()))
	cmd.Flags().StringP("output", "o", "",
		"Write the report to this file instead of stdout")
}

// Execute generates the changelog and writes it in the requested format.
func (it *ChangelogController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	exporter, err := it.reports.Get(format)
	if err != nil {
		return err
	}

	opts := rangeOptions(cmd, args)
	report, err := it.command.Execute(cmd.Context(), settings, opts)
	if err != nil {
		return err
	}

	for _, warning := range report.Warnings {
		logger.Warn(warning)
	}

	output, _ := cmd.Flags().GetString("output")
	return writeReport(cmd.OutOrStdout(), output, func(w io.Writer) error {
		return exporter.Export(w, report)
	})
}

// rangeOptions reads the optional start and end positional arguments.
func rangeOptions(cmd *cobra.Command, args []string) commands.ChangelogOptions {
	repoDir, _ := cmd.Flags().GetString("repo")
	verbose, _ := cmd.Flags().GetBool("verbose")

	opts := commands.ChangelogOptions{RepoDir: repoDir, Verbose: verbose}
	if len(args) > 0 {
		opts.Start = args[0]
	}
	if len(args) > 1 {
		opts.End = args[1]
	}
	return opts
}

// writeReport sends the output to path, or to stdout when path is empty.
func writeReport(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFileMode)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	if err = write(file); err != nil {
		_ = file.Close()
		return err
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	logger.Infof("Report written to %s", path)
	return nil
}
