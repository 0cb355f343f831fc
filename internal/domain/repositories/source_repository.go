package repositories

import "context"

// SourceRepository locates module repositories and makes references available locally.
type SourceRepository interface {
	// Root returns the top-level directory of the repository containing dir.
	Root(dir string) (string, error)

	// LatestReleaseTag returns the highest v* tag that is not a release candidate.
	LatestReleaseTag(ctx context.Context, repoDir string) (string, error)

	// Head returns the commit hash HEAD points at.
	Head(ctx context.Context, repoDir string) (string, error)

	// Ensure clones the repository hosting modulePath into the workspace when absent,
	// fetches when ref is missing, and returns the local directory. It returns an error
	// wrapping entities.ErrFetchFailure when ref cannot be made available.
	Ensure(ctx context.Context, workspace, modulePath, ref string) (string, error)
}
