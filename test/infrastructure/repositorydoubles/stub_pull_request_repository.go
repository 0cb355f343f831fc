//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaselog/internal/domain/repositories"
)

// StubPullRequestRepository implements repositories.PullRequestRepository.
type StubPullRequestRepository struct {
	Titles     map[int]string
	TitleErr   error
	TitleCalls int
}

var _ repositories.PullRequestRepository = (*StubPullRequestRepository)(nil)

func (s *StubPullRequestRepository) Title(
	_ context.Context, _ string, number int,
) (string, error) {
	s.TitleCalls++
	if s.TitleErr != nil {
		return "", s.TitleErr
	}
	return s.Titles[number], nil
}
