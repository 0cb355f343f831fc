//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaselog/internal/domain/commands"
	"github.com/rios0rios0/releaselog/internal/domain/entities"
)

// StubChangelogCommand is a stub implementation of commands.Changelog.
type StubChangelogCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           *entities.Report
	LastSettings     *entities.Settings
	LastOpts         commands.ChangelogOptions
}

var _ commands.Changelog = (*StubChangelogCommand)(nil)

func (s *StubChangelogCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.ChangelogOptions,
) (*entities.Report, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.Report, s.ExecuteErr
}
