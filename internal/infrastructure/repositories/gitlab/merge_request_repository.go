package gitlab

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/releaselog/internal/domain/repositories"
)

const hostPrefix = "gitlab.com/"

var errClientNotInitialized = errors.New("gitlab client not initialized")

// MergeRequestRepository implements repositories.PullRequestRepository for GitLab merge requests.
type MergeRequestRepository struct {
	client *gl.Client
}

// NewMergeRequestRepository creates a GitLab merge request lookup with the given token.
func NewMergeRequestRepository(token string) repositories.PullRequestRepository {
	client, err := gl.NewClient(token)
	if err != nil {
		// Return a lookup that will fail on use rather than panicking at construction
		return &MergeRequestRepository{client: nil}
	}
	return &MergeRequestRepository{client: client}
}

// Title returns the title of merge request number of the project at repoPath.
func (r *MergeRequestRepository) Title(ctx context.Context, repoPath string, number int) (string, error) {
	if r.client == nil {
		return "", errClientNotInitialized
	}

	pid, err := projectID(repoPath)
	if err != nil {
		return "", err
	}

	mr, _, err := r.client.MergeRequests.GetMergeRequest(
		pid,
		int64(number),
		&gl.GetMergeRequestsOptions{},
		gl.WithContext(ctx),
	)
	if err != nil {
		return "", fmt.Errorf("failed to get merge request %s!%d: %w", repoPath, number, err)
	}
	return mr.Title, nil
}

// projectID turns "gitlab.com/group/sub/project" into the "group/sub/project" namespace path.
func projectID(repoPath string) (string, error) {
	pid := strings.TrimPrefix(repoPath, hostPrefix)
	if pid == repoPath || !strings.Contains(pid, "/") {
		return "", fmt.Errorf("not a GitLab project: %s", repoPath)
	}
	return pid, nil
}
