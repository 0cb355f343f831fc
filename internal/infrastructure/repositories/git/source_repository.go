package git

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"github.com/rios0rios0/releaselog/internal/domain/repositories"
)

const (
	remoteName       = "origin"
	workspaceDirMode = 0o755
)

// SourceRepository implements repositories.SourceRepository with go-git.
// Dependency repositories are cloned into <workspace>/<repository path>,
// mirroring the GOPATH layout.
type SourceRepository struct{}

// NewSourceRepository creates a new go-git backed source repository.
func NewSourceRepository() repositories.SourceRepository {
	return &SourceRepository{}
}

// Root returns the top-level directory of the repository containing dir.
func (r *SourceRepository) Root(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

// LatestReleaseTag returns the highest semver tag that is not a release candidate.
func (r *SourceRepository) LatestReleaseTag(_ context.Context, repoDir string) (string, error) {
	repo, err := openRepo(repoDir)
	if err != nil {
		return "", err
	}

	tags, err := repo.Tags()
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}

	var names []string
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("iterating tags: %w", err)
	}

	latest := latestRelease(names)
	if latest == "" {
		return "", fmt.Errorf("no release tag found in %s", repoDir)
	}
	return latest, nil
}

// Head returns the commit hash HEAD points at.
func (r *SourceRepository) Head(_ context.Context, repoDir string) (string, error) {
	repo, err := openRepo(repoDir)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	return head.Hash().String(), nil
}

// Ensure clones the repository hosting modulePath when absent and fetches when
// ref cannot be resolved locally.
func (r *SourceRepository) Ensure(
	ctx context.Context,
	workspace, modulePath, ref string,
) (string, error) {
	repoPath := entities.RepositoryPath(modulePath)
	dir := filepath.Join(workspace, filepath.FromSlash(repoPath))

	repo, err := gogit.PlainOpen(dir)
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		repo, err = cloneRepo(ctx, dir, repoPath)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", entities.ErrFetchFailure, repoPath, err)
	}

	if resolves(repo, ref) {
		return dir, nil
	}

	logger.Infof("Fetching %s...", repoPath)
	fetchErr := repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: remoteName,
		RefSpecs: []config.RefSpec{
			config.RefSpec("+refs/heads/*:refs/remotes/" + remoteName + "/*"),
		},
		Tags:  gogit.AllTags,
		Force: true,
	})
	if fetchErr != nil && !errors.Is(fetchErr, gogit.NoErrAlreadyUpToDate) {
		return "", fmt.Errorf("%w: %s: %w", entities.ErrFetchFailure, repoPath, fetchErr)
	}

	if !resolves(repo, ref) {
		return "", fmt.Errorf("%w: %s has no reference %q", entities.ErrFetchFailure, repoPath, ref)
	}
	return dir, nil
}

// openRepo opens the repository containing path, walking up to find .git.
func openRepo(path string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

func cloneRepo(ctx context.Context, dir, repoPath string) (*gogit.Repository, error) {
	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading workspace directory: %w", err)
	}
	if len(entries) > 0 {
		return nil, fmt.Errorf("%s exists and is not a git repository", dir)
	}

	logger.Infof("Cloning %s...", repoPath)

	if err = os.MkdirAll(filepath.Dir(dir), workspaceDirMode); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory: %w", err)
	}

	// PlainCloneContext removes what it created when the clone fails
	repo, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:        "https://" + repoPath,
		RemoteName: remoteName,
		Tags:       gogit.AllTags,
	})
	if err != nil {
		return nil, fmt.Errorf("clone failed: %w", err)
	}
	return repo, nil
}

func resolves(repo *gogit.Repository, ref string) bool {
	_, err := repo.ResolveRevision(plumbing.Revision(ref))
	return err == nil
}

// latestRelease picks the highest valid semver tag, skipping release candidates.
func latestRelease(tags []string) string {
	latest := ""
	for _, tag := range tags {
		if !strings.HasPrefix(tag, "v") || strings.Contains(tag, "-rc") || !semver.IsValid(tag) {
			continue
		}
		if latest == "" || semver.Compare(tag, latest) > 0 {
			latest = tag
		}
	}
	return latest
}
