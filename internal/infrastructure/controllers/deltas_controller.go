package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/releaselog/internal/domain/commands"
	"github.com/rios0rios0/releaselog/internal/domain/entities"
)

const (
	tabMinWidth = 0
	tabWidth    = 8
	tabPadding  = 2
)

// DeltasController handles the "deps" subcommand: the dependency version changes
// between two references, without fetching any dependency repository.
type DeltasController struct {
	command commands.Deltas
}

// NewDeltasController creates a new DeltasController.
func NewDeltasController(command commands.Deltas) *DeltasController {
	return &DeltasController{command: command}
}

// GetBind returns the Cobra command metadata for the deltas controller.
func (it *DeltasController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "deps [start] [end]",
		Short: "List the dependencies whose version changed",
		Long: `List the dependencies of the root module whose version changed between
two references, after the include and exclude filters are applied.`,
	}
}

// AddFlags adds the deps-specific flags to the given Cobra command.
func (it *DeltasController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Print the changes as JSON")
}

// Execute prints one line per changed dependency.
func (it *DeltasController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	set, err := it.command.Execute(cmd.Context(), settings, rangeOptions(cmd, args))
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(set)
	}

	logger.Infof("%d dependencies of %s changed between %s and %s",
		len(set.Deltas), set.Module, set.Start, set.End)
	return writeDeltas(cmd.OutOrStdout(), set.Deltas)
}

func writeDeltas(w io.Writer, deltas []entities.DependencyDelta) error {
	table := tabwriter.NewWriter(w, tabMinWidth, tabWidth, tabPadding, ' ', 0)
	for _, delta := range deltas {
		if _, err := fmt.Fprintf(table, "%s\t%s\t->\t%s\n",
			delta.Path, delta.OldVersion, delta.NewVersion); err != nil {
			return err
		}
	}
	return table.Flush()
}
