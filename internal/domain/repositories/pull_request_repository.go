package repositories

import "context"

// PullRequestRepository looks up pull requests on a Git hosting service.
type PullRequestRepository interface {
	// Title returns the title of pull request number of the repository at repoPath
	// (e.g. "github.com/owner/name").
	Title(ctx context.Context, repoPath string, number int) (string, error)
}
