package git

import "context"

// ParseStats exports parseStats for testing.
var ParseStats = parseStats //nolint:gochecknoglobals // test export

// ParseChanges exports parseChanges for testing.
var ParseChanges = parseChanges //nolint:gochecknoglobals // test export

// LatestRelease exports latestRelease for testing.
var LatestRelease = latestRelease //nolint:gochecknoglobals // test export

// ExcludePathspecs exports excludePathspecs for testing.
var ExcludePathspecs = excludePathspecs //nolint:gochecknoglobals // test export

// ChangedFiles exposes the per-commit file listing of the history repository.
func ChangedFiles(ctx context.Context, dir, hash string) []string {
	return (&HistoryRepository{}).changedFiles(ctx, dir, hash)
}
