package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/releaselog/internal/domain/repositories"
)

const hostPrefix = "github.com/"

// PullRequestRepository implements repositories.PullRequestRepository for GitHub.
type PullRequestRepository struct {
	client *gh.Client
}

// NewPullRequestRepository creates a GitHub pull request lookup. An empty token
// uses unauthenticated requests.
func NewPullRequestRepository(token string) repositories.PullRequestRepository {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return newPullRequestRepository(client)
}

func newPullRequestRepository(client *gh.Client) *PullRequestRepository {
	return &PullRequestRepository{client: client}
}

// Title returns the title of the pull request.
func (r *PullRequestRepository) Title(ctx context.Context, repoPath string, number int) (string, error) {
	owner, name, err := splitRepoPath(repoPath)
	if err != nil {
		return "", err
	}

	pr, _, err := r.client.PullRequests.Get(ctx, owner, name, number)
	if err != nil {
		return "", fmt.Errorf("failed to get pull request %s#%d: %w", repoPath, number, err)
	}
	return pr.GetTitle(), nil
}

// splitRepoPath turns "github.com/owner/name[/sub]" into owner and name.
func splitRepoPath(repoPath string) (string, string, error) {
	if !strings.HasPrefix(repoPath, hostPrefix) {
		return "", "", fmt.Errorf("not a GitHub repository: %s", repoPath)
	}
	segments := strings.Split(strings.TrimPrefix(repoPath, hostPrefix), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" { //nolint:mnd // owner + name
		return "", "", fmt.Errorf("cannot extract owner/name from %s", repoPath)
	}
	return segments[0], segments[1], nil
}
