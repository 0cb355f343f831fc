package gitlab

import gl "gitlab.com/gitlab-org/api/client-go"

// ProjectID exports projectID for testing.
var ProjectID = projectID //nolint:gochecknoglobals // test export

// NewMergeRequestRepositoryWithClient builds the lookup on a preconfigured client.
func NewMergeRequestRepositoryWithClient(client *gl.Client) *MergeRequestRepository {
	return &MergeRequestRepository{client: client}
}
