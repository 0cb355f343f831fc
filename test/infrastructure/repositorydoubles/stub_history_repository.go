//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"github.com/rios0rios0/releaselog/internal/domain/repositories"
)

// StubHistoryRepository implements repositories.HistoryRepository with
// responses keyed by repository directory.
type StubHistoryRepository struct {
	// --- Changes ---
	Commits    map[string][]entities.Commit // dir -> commits
	ChangesErr map[string]error

	// --- Stats ---
	Records  map[string][]entities.CommitStatRecord // dir -> records
	StatsErr map[string]error

	// spy: queries received by Stats
	StatsQueries []repositories.HistoryQuery
}

var _ repositories.HistoryRepository = (*StubHistoryRepository)(nil)

func (s *StubHistoryRepository) Changes(
	_ context.Context, query repositories.HistoryQuery,
) ([]entities.Commit, error) {
	if err := s.ChangesErr[query.Dir]; err != nil {
		return nil, err
	}
	return s.Commits[query.Dir], nil
}

func (s *StubHistoryRepository) Stats(
	_ context.Context, query repositories.HistoryQuery,
) ([]entities.CommitStatRecord, error) {
	s.StatsQueries = append(s.StatsQueries, query)
	if err := s.StatsErr[query.Dir]; err != nil {
		return nil, err
	}
	return s.Records[query.Dir], nil
}
