//go:build unit

package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"github.com/rios0rios0/releaselog/internal/infrastructure/repositories/git"
)

// initRepo creates a repository in dir with one commit per tag, tagging each.
func initRepo(t *testing.T, dir string, tags ...string) []plumbing.Hash {
	t.Helper()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)

	hashes := make([]plumbing.Hash, 0, len(tags))
	for _, tag := range tags {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "VERSION"), []byte(tag), 0o644))
		_, err = worktree.Add("VERSION")
		require.NoError(t, err)
		hash, commitErr := worktree.Commit("release "+tag, &gogit.CommitOptions{
			Author: &object.Signature{Name: "Test", Email: "test@test.com"},
		})
		require.NoError(t, commitErr)
		_, err = repo.CreateTag(tag, hash, nil)
		require.NoError(t, err)
		hashes = append(hashes, hash)
	}
	return hashes
}

func TestLatestRelease(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tags     []string
		expected string
	}{
		{name: "should pick the highest semver tag", tags: []string{"v1.2.0", "v1.10.0", "v1.9.9"}, expected: "v1.10.0"},
		{name: "should skip release candidates", tags: []string{"v1.0.0", "v2.0.0-rc1", "v2.0.0-rc.2"}, expected: "v1.0.0"},
		{name: "should skip tags that are not versions", tags: []string{"latest", "release-3", "v1.0.1"}, expected: "v1.0.1"},
		{name: "should return empty without releases", tags: []string{"nightly"}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			latest := git.LatestRelease(tt.tags)

			// then
			assert.Equal(t, tt.expected, latest)
		})
	}
}

func TestSourceRepository(t *testing.T) {
	t.Parallel()

	t.Run("should find the repository root from a subdirectory", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		initRepo(t, dir, "v0.1.0")
		sub := filepath.Join(dir, "pkg", "inner")
		require.NoError(t, os.MkdirAll(sub, 0o755))

		// when
		root, err := git.NewSourceRepository().Root(sub)

		// then
		require.NoError(t, err)
		assert.Equal(t, dir, root)
	})

	t.Run("should read the latest release tag and HEAD", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		hashes := initRepo(t, dir, "v1.0.0", "v1.1.0", "v1.2.0-rc1")
		sources := git.NewSourceRepository()

		// when
		tag, tagErr := sources.LatestReleaseTag(context.Background(), dir)
		head, headErr := sources.Head(context.Background(), dir)

		// then
		require.NoError(t, tagErr)
		require.NoError(t, headErr)
		assert.Equal(t, "v1.1.0", tag)
		assert.Equal(t, hashes[2].String(), head)
	})

	t.Run("should fail without release tags", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		initRepo(t, dir, "snapshot")

		// when
		_, err := git.NewSourceRepository().LatestReleaseTag(context.Background(), dir)

		// then
		require.Error(t, err)
	})

	t.Run("should reuse a workspace clone that already has the reference", func(t *testing.T) {
		t.Parallel()

		// given
		workspace := t.TempDir()
		dir := filepath.Join(workspace, "github.com", "acme", "lib")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		initRepo(t, dir, "v2.0.0")

		// when
		got, err := git.NewSourceRepository().Ensure(context.Background(), workspace, "github.com/acme/lib/v2", "v2.0.0")

		// then
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})

	t.Run("should report a fetch failure when the reference cannot be fetched", func(t *testing.T) {
		t.Parallel()

		// given
		workspace := t.TempDir()
		dir := filepath.Join(workspace, "github.com", "acme", "lib")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		initRepo(t, dir, "v1.0.0")

		// when
		_, err := git.NewSourceRepository().Ensure(context.Background(), workspace, "github.com/acme/lib", "v9.9.9")

		// then
		require.ErrorIs(t, err, entities.ErrFetchFailure)
	})

	t.Run("should keep the files of a workspace directory that is not a repository", func(t *testing.T) {
		t.Parallel()

		// given
		workspace := t.TempDir()
		dir := filepath.Join(workspace, "127.0.0.1:1", "acme", "lib")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		kept := filepath.Join(dir, "main.go")
		require.NoError(t, os.WriteFile(kept, []byte("package lib\n"), 0o644))

		// when
		_, err := git.NewSourceRepository().Ensure(context.Background(), workspace, "127.0.0.1:1/acme/lib", "v1.0.0")

		// then
		require.ErrorIs(t, err, entities.ErrFetchFailure)
		content, readErr := os.ReadFile(kept)
		require.NoError(t, readErr)
		assert.Equal(t, "package lib\n", string(content))
	})
}
