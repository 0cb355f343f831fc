package repositories

import (
	"context"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
)

// ManifestRepository reads the dependency manifest of a module at a point in history.
type ManifestRepository interface {
	// MainModule returns the module path declared by the repository's go.mod.
	MainModule(ctx context.Context, repoDir string) (string, error)

	// Snapshot returns the full dependency set (direct and transitive) pinned at ref.
	// An entry missing a required field yields entities.ErrMalformedManifest.
	Snapshot(ctx context.Context, repoDir, ref string) (entities.Snapshot, error)
}
