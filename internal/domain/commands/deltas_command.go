package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"github.com/rios0rios0/releaselog/internal/domain/repositories"
)

// Deltas is the interface for the deltas command.
type Deltas interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ChangelogOptions) (*entities.DeltaSet, error)
}

// ChangelogOptions holds runtime options for a single run.
type ChangelogOptions struct {
	RepoDir string
	Start   string // Defaults to the latest non-rc release tag
	End     string // Defaults to HEAD
	Verbose bool
}

// DeltasCommand finds the in-scope dependency version changes of the root module
// between two references: snapshot -> resolve -> diff -> filter.
type DeltasCommand struct {
	manifests repositories.ManifestRepository
	sources   repositories.SourceRepository
}

// NewDeltasCommand creates a new DeltasCommand.
func NewDeltasCommand(
	manifests repositories.ManifestRepository,
	sources repositories.SourceRepository,
) *DeltasCommand {
	return &DeltasCommand{manifests: manifests, sources: sources}
}

// Execute compares the manifests. Modules whose version cannot be resolved on
// either side are skipped with a warning; a malformed manifest aborts.
func (it *DeltasCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ChangelogOptions,
) (*entities.DeltaSet, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	filter, err := entities.NewModuleFilter(settings.Include, settings.Exclude)
	if err != nil {
		return nil, err
	}

	root, err := it.sources.Root(opts.RepoDir)
	if err != nil {
		return nil, fmt.Errorf("failed to locate repository: %w", err)
	}

	module, err := it.manifests.MainModule(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to read main module: %w", err)
	}

	start, end, err := it.resolveRange(ctx, root, opts)
	if err != nil {
		return nil, err
	}

	logger.Infof("Computing old deps at %s...", start)
	oldSnapshot, err := it.manifests.Snapshot(ctx, root, start)
	if err != nil {
		return nil, fmt.Errorf("failed to read dependencies at %s: %w", start, err)
	}

	logger.Infof("Computing new deps at %s...", end)
	newSnapshot, err := it.manifests.Snapshot(ctx, root, end)
	if err != nil {
		return nil, fmt.Errorf("failed to read dependencies at %s: %w", end, err)
	}

	oldResolved, oldFailures := oldSnapshot.Resolve()
	newResolved, newFailures := newSnapshot.Resolve()

	warnings := make([]string, 0, len(oldFailures)+len(newFailures))
	for _, failures := range [][]error{oldFailures, newFailures} {
		for _, failure := range failures {
			logger.Warnf("Skipping %v", failure)
			warnings = append(warnings, failure.Error())
		}
	}

	deltas := entities.FilterDeltas(entities.DiffSnapshots(oldResolved, newResolved), filter)
	logger.Infof("Found %d changed dependencies in scope", len(deltas))

	return &entities.DeltaSet{
		Module:   module,
		Root:     root,
		Start:    start,
		End:      end,
		Deltas:   deltas,
		Warnings: warnings,
	}, nil
}

// resolveRange fills in the default start and end references.
func (it *DeltasCommand) resolveRange(
	ctx context.Context,
	root string,
	opts ChangelogOptions,
) (string, string, error) {
	start := opts.Start
	if start == "" {
		tag, err := it.sources.LatestReleaseTag(ctx, root)
		if err != nil {
			return "", "", fmt.Errorf("failed to find the latest release tag: %w", err)
		}
		start = tag
	}

	end := opts.End
	if end == "" {
		head, err := it.sources.Head(ctx, root)
		if err != nil {
			return "", "", fmt.Errorf("failed to resolve HEAD: %w", err)
		}
		end = head
	}

	return start, end, nil
}
