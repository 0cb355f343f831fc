package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"github.com/rios0rios0/releaselog/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/releaselog/internal/infrastructure/repositories"
)

// Changelog is the interface for the changelog command.
type Changelog interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ChangelogOptions) (*entities.Report, error)
}

// ChangelogCommand builds the release changelog of a module and its dependencies:
// snapshot -> resolve -> diff -> filter -> collect each module -> aggregate.
type ChangelogCommand struct {
	deltas           Deltas
	sources          repositories.SourceRepository
	history          repositories.HistoryRepository
	pullRequestHosts *infraRepos.PullRequestRegistry
}

// NewChangelogCommand creates a new ChangelogCommand with the given collaborators.
func NewChangelogCommand(
	deltas Deltas,
	sources repositories.SourceRepository,
	history repositories.HistoryRepository,
	pullRequestHosts *infraRepos.PullRequestRegistry,
) *ChangelogCommand {
	return &ChangelogCommand{
		deltas:           deltas,
		sources:          sources,
		history:          history,
		pullRequestHosts: pullRequestHosts,
	}
}

// collectTarget is one repository range whose history goes into the report.
type collectTarget struct {
	dir      string
	repoPath string
	start    string
	end      string
}

// Execute generates the report. Unresolvable versions and unreachable repositories
// only affect their own module; a malformed manifest or an unknown stat event
// aborts the run.
func (it *ChangelogCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ChangelogOptions,
) (*entities.Report, error) {
	set, err := it.deltas.Execute(ctx, settings, opts)
	if err != nil {
		return nil, err
	}
	module, root, start, end := set.Module, set.Root, set.Start, set.End

	mailmap := settings.Mailmap
	if mailmap == "" {
		mailmap = filepath.Join(root, ".mailmap")
	}

	logger.Infof("Generating changelog for %s %s..%s", module, start, end)

	results := make([]entities.ModuleResult, 0, len(set.Deltas)+1)
	rootResult, err := it.collect(ctx, settings, mailmap, collectTarget{
		dir:      root,
		repoPath: entities.RepositoryPath(module),
		start:    start,
		end:      end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect history of %s: %w", module, err)
	}
	rootResult.Changelog.Path = module
	rootResult.Changelog.OldVersion = start
	rootResult.Changelog.NewVersion = end
	rootResult.Changelog.Root = true
	results = append(results, rootResult)

	for _, delta := range set.Deltas {
		result, collectErr := it.collectDelta(ctx, settings, mailmap, delta)
		if collectErr != nil {
			return nil, collectErr
		}
		results = append(results, result)
	}

	report := entities.NewReport(module, start, end, results, set.Warnings)
	logger.Infof(
		"Changelog complete: %d modules changed, %d failed, %d contributors",
		len(set.Deltas), len(report.Failures()), len(report.Contributors),
	)
	return report, nil
}

// collectDelta fetches one dependency and collects its history. Fetch and log
// failures become a failed result; only structural errors are returned.
func (it *ChangelogCommand) collectDelta(
	ctx context.Context,
	settings *entities.Settings,
	mailmap string,
	delta entities.DependencyDelta,
) (entities.ModuleResult, error) {
	logger.Infof("Collecting %s (%s -> %s)", delta.Path, delta.OldVersion, delta.NewVersion)

	dir, err := it.ensure(ctx, settings, delta.Path, delta.NewRef)
	if err == nil {
		_, err = it.ensure(ctx, settings, delta.Path, delta.OldRef)
	}
	if err != nil {
		logger.Warnf("Failed to fetch %s: %v", delta.Path, err)
		return entities.NewFailedModuleResult(delta, err), nil
	}

	result, err := it.collect(ctx, settings, mailmap, collectTarget{
		dir:      dir,
		repoPath: entities.RepositoryPath(delta.Path),
		start:    delta.OldRef,
		end:      delta.NewRef,
	})
	if err != nil {
		if errors.Is(err, entities.ErrUnknownStatEvent) {
			return entities.ModuleResult{}, fmt.Errorf("failed to collect stats of %s: %w", delta.Path, err)
		}
		logger.Warnf("Failed to read history of %s: %v", delta.Path, err)
		return entities.NewFailedModuleResult(delta, err), nil
	}

	result.Changelog.Path = delta.Path
	result.Changelog.OldVersion = delta.OldVersion
	result.Changelog.NewVersion = delta.NewVersion
	return result, nil
}

func (it *ChangelogCommand) ensure(
	ctx context.Context,
	settings *entities.Settings,
	modulePath, ref string,
) (string, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, settings.Timeout)
	defer cancel()
	return it.sources.Ensure(fetchCtx, settings.Workspace, modulePath, ref)
}

// collect reads the changelog entries and commit statistics of one repository range.
func (it *ChangelogCommand) collect(
	ctx context.Context,
	settings *entities.Settings,
	mailmap string,
	target collectTarget,
) (entities.ModuleResult, error) {
	logCtx, cancel := context.WithTimeout(ctx, settings.Timeout)
	defer cancel()

	query := repositories.HistoryQuery{
		Dir:         target.dir,
		Start:       target.start,
		End:         target.end,
		IgnoreFiles: settings.IgnoreFiles,
		Mailmap:     mailmap,
	}

	commits, err := it.history.Changes(logCtx, query)
	if err != nil {
		return entities.ModuleResult{}, err
	}

	entries := make([]entities.ChangeEntry, 0, len(commits))
	for _, commit := range commits {
		if commit.OnlyTouches(settings.IgnoreFiles) {
			logger.Debugf("Skipping %s: only ignored files changed", commit.Hash)
			continue
		}
		entry := entities.NewChangeEntry(target.repoPath, commit)
		if entry.Merge && entry.Description == "" {
			entry.Description = it.pullRequestTitle(logCtx, settings, target.repoPath, entry.PullRequest, commit.Subject)
		}
		entries = append(entries, entry)
	}

	stats, err := it.history.Stats(logCtx, query)
	if err != nil {
		return entities.ModuleResult{}, err
	}

	return entities.ModuleResult{
		Changelog: entities.ModuleChangelog{Entries: entries},
		Stats:     stats,
	}, nil
}

// pullRequestTitle asks the hosting service for the title of a merged pull request,
// falling back to the commit subject.
func (it *ChangelogCommand) pullRequestTitle(
	ctx context.Context,
	settings *entities.Settings,
	repoPath string,
	number int,
	fallback string,
) string {
	host, _, _ := strings.Cut(repoPath, "/")
	provider, err := it.pullRequestHosts.Get(host, settings.TokenFor(host))
	if err != nil {
		logger.Debugf("No pull request lookup for %s: %v", repoPath, err)
		return fallback
	}

	title, err := provider.Title(ctx, repoPath, number)
	if err != nil || title == "" {
		logger.Debugf("Could not read title of %s#%d: %v", repoPath, number, err)
		return fallback
	}
	return title
}
