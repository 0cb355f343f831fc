//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"path/filepath"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"github.com/rios0rios0/releaselog/internal/domain/repositories"
)

// SpySourceRepository implements repositories.SourceRepository as a configurable spy.
type SpySourceRepository struct {
	// --- Root ---
	RootDir string
	RootErr error

	// --- LatestReleaseTag ---
	LatestTag    string
	LatestTagErr error

	// --- Head ---
	HeadHash string
	HeadErr  error

	// --- Ensure ---
	EnsureErrs  map[string]error // module path -> error
	EnsureCalls []EnsureCall
}

// EnsureCall records a single invocation of Ensure.
type EnsureCall struct {
	Workspace  string
	ModulePath string
	Ref        string
}

var _ repositories.SourceRepository = (*SpySourceRepository)(nil)

func (s *SpySourceRepository) Root(_ string) (string, error) {
	return s.RootDir, s.RootErr
}

func (s *SpySourceRepository) LatestReleaseTag(_ context.Context, _ string) (string, error) {
	return s.LatestTag, s.LatestTagErr
}

func (s *SpySourceRepository) Head(_ context.Context, _ string) (string, error) {
	return s.HeadHash, s.HeadErr
}

// Ensure returns workspace/<repository path> unless an error is configured for the module.
func (s *SpySourceRepository) Ensure(
	_ context.Context, workspace, modulePath, ref string,
) (string, error) {
	s.EnsureCalls = append(s.EnsureCalls, EnsureCall{Workspace: workspace, ModulePath: modulePath, Ref: ref})
	if err := s.EnsureErrs[modulePath]; err != nil {
		return "", err
	}
	return filepath.Join(workspace, entities.RepositoryPath(modulePath)), nil
}
