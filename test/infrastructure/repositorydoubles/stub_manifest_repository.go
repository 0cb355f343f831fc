//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"github.com/rios0rios0/releaselog/internal/domain/repositories"
)

// StubManifestRepository implements repositories.ManifestRepository with
// snapshots keyed by reference.
type StubManifestRepository struct {
	// --- MainModule ---
	Module        string
	MainModuleErr error

	// --- Snapshot ---
	Snapshots   map[string]entities.Snapshot // ref -> snapshot
	SnapshotErr error
	// spy: refs that were requested
	SnapshotRefs []string
}

var _ repositories.ManifestRepository = (*StubManifestRepository)(nil)

func (s *StubManifestRepository) MainModule(_ context.Context, _ string) (string, error) {
	return s.Module, s.MainModuleErr
}

func (s *StubManifestRepository) Snapshot(
	_ context.Context, _ string, ref string,
) (entities.Snapshot, error) {
	s.SnapshotRefs = append(s.SnapshotRefs, ref)
	if s.SnapshotErr != nil {
		return nil, s.SnapshotErr
	}
	snapshot, ok := s.Snapshots[ref]
	if !ok {
		return nil, fmt.Errorf("no snapshot for %s", ref)
	}
	return snapshot, nil
}
