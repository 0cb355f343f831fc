package github

import gh "github.com/google/go-github/v66/github"

// SplitRepoPath exports splitRepoPath for testing.
var SplitRepoPath = splitRepoPath //nolint:gochecknoglobals // test export

// NewPullRequestRepositoryWithClient exports newPullRequestRepository for testing.
func NewPullRequestRepositoryWithClient(client *gh.Client) *PullRequestRepository {
	return newPullRequestRepository(client)
}
