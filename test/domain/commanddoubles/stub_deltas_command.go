//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaselog/internal/domain/commands"
	"github.com/rios0rios0/releaselog/internal/domain/entities"
)

// StubDeltasCommand is a stub implementation of commands.Deltas.
type StubDeltasCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	DeltaSet         *entities.DeltaSet
	LastOpts         commands.ChangelogOptions
}

var _ commands.Deltas = (*StubDeltasCommand)(nil)

func (s *StubDeltasCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.ChangelogOptions,
) (*entities.DeltaSet, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.DeltaSet, s.ExecuteErr
}
