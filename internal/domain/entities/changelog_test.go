//go:build unit

package entities_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
)

func TestNewChangeEntry(t *testing.T) {
	t.Parallel()

	t.Run("should describe a plain commit by its subject", func(t *testing.T) {
		t.Parallel()

		// given
		commit := entities.Commit{Hash: "abc", Subject: "fix typo in README"}

		// when
		entry := entities.NewChangeEntry("github.com/acme/tool", commit)

		// then
		assert.Equal(t, "fix typo in README", entry.Description)
		assert.Empty(t, entry.Link)
		assert.False(t, entry.Merge)
		assert.Equal(t, "fix typo in README", entry.String())
	})

	t.Run("should describe a merge by the first body line and link the pull request", func(t *testing.T) {
		t.Parallel()

		// given
		commit := entities.Commit{
			Hash:    "abc",
			Subject: "Merge pull request #42 from someone/feature",
			Body:    "\nAdd the frobnicator\n\nLonger explanation.",
		}

		// when
		entry := entities.NewChangeEntry("github.com/acme/tool", commit)

		// then
		assert.True(t, entry.Merge)
		assert.Equal(t, 42, entry.PullRequest)
		assert.Equal(t, "Add the frobnicator", entry.Description)
		assert.Equal(t,
			"Add the frobnicator ([acme/tool#42](https://github.com/acme/tool/pull/42))",
			entry.String(),
		)
	})

	t.Run("should leave the description empty for a merge without body", func(t *testing.T) {
		t.Parallel()

		// given
		commit := entities.Commit{Subject: "Merge pull request #7 from someone/fix"}

		// when
		entry := entities.NewChangeEntry("github.com/acme/tool", commit)

		// then
		assert.True(t, entry.Merge)
		assert.Empty(t, entry.Description)
		assert.Equal(t, 7, entry.PullRequest)
	})

	t.Run("should describe a GitLab merge by its title", func(t *testing.T) {
		t.Parallel()

		// given
		commit := entities.Commit{
			Subject: "Merge branch 'feature' into 'main'",
			Body:    "Add caching\n\nSee merge request group/project!17",
		}

		// when
		entry := entities.NewChangeEntry("gitlab.com/group/project", commit)

		// then
		assert.True(t, entry.Merge)
		assert.Equal(t, 17, entry.PullRequest)
		assert.Equal(t, "Add caching", entry.Description)
		assert.Equal(t, "[group/project!17](https://gitlab.com/group/project/-/merge_requests/17)", entry.Link)
	})

	t.Run("should keep a branch merge without merge request as is", func(t *testing.T) {
		t.Parallel()

		// given
		commit := entities.Commit{Subject: "Merge branch 'release' into 'main'"}

		// when
		entry := entities.NewChangeEntry("gitlab.com/group/project", commit)

		// then
		assert.False(t, entry.Merge)
		assert.Equal(t, "Merge branch 'release' into 'main'", entry.Description)
		assert.Empty(t, entry.Link)
	})

	t.Run("should link a squashed pull request", func(t *testing.T) {
		t.Parallel()

		// given
		commit := entities.Commit{Subject: "feat: add retries (#123)"}

		// when
		entry := entities.NewChangeEntry("github.com/acme/tool", commit)

		// then
		assert.False(t, entry.Merge)
		assert.Equal(t, "feat: add retries (#123)", entry.Description)
		assert.Equal(t, "[acme/tool#123](https://github.com/acme/tool/pull/123)", entry.Link)
	})
}

func TestPullRequestLink(t *testing.T) {
	t.Parallel()

	t.Run("should keep the host for unknown hosting services", func(t *testing.T) {
		t.Parallel()

		// when
		link := entities.PullRequestLink("git.example.com/team/project", 5)

		// then
		assert.Equal(t, "[git.example.com/team/project#5](https://git.example.com/team/project/pull/5)", link)
	})

	t.Run("should link a GitLab merge request", func(t *testing.T) {
		t.Parallel()

		// when
		link := entities.PullRequestLink("gitlab.com/group/sub/project", 5)

		// then
		assert.Equal(t, "[group/sub/project!5](https://gitlab.com/group/sub/project/-/merge_requests/5)", link)
	})
}

func TestCommitOnlyTouches(t *testing.T) {
	t.Parallel()

	patterns := []string{"go.mod", "go.sum", ".gx/*"}

	t.Run("should be true when every file is ignored", func(t *testing.T) {
		t.Parallel()

		// given
		commit := entities.Commit{Files: []string{"go.mod", "sub/go.sum", ".gx/lastpubver"}}

		// when / then
		assert.True(t, commit.OnlyTouches(patterns))
	})

	t.Run("should be false when one file is not ignored", func(t *testing.T) {
		t.Parallel()

		// given
		commit := entities.Commit{Files: []string{"go.mod", "main.go"}}

		// when / then
		assert.False(t, commit.OnlyTouches(patterns))
	})

	t.Run("should be false when the files are unknown", func(t *testing.T) {
		t.Parallel()

		// given
		commit := entities.Commit{}

		// when / then
		assert.False(t, commit.OnlyTouches(patterns))
	})
}

func TestRepositoryPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		module   string
		expected string
	}{
		{name: "should keep a path without major version", module: "github.com/acme/tool", expected: "github.com/acme/tool"},
		{name: "should strip a major version suffix", module: "github.com/acme/tool/v3", expected: "github.com/acme/tool"},
		{name: "should keep a gopkg.in version", module: "gopkg.in/yaml.v3", expected: "gopkg.in/yaml.v3"},
		{name: "should keep the version of another gopkg.in package", module: "gopkg.in/check.v1", expected: "gopkg.in/check.v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			path := entities.RepositoryPath(tt.module)

			// then
			assert.Equal(t, tt.expected, path)
		})
	}
}

func TestModuleChangelog(t *testing.T) {
	t.Parallel()

	t.Run("should render the version change in the heading", func(t *testing.T) {
		t.Parallel()

		// given
		section := entities.ModuleChangelog{Path: "github.com/a/a", OldVersion: "v1.0.0", NewVersion: "v1.1.0"}

		// when / then
		assert.Equal(t, "github.com/a/a (v1.0.0 -> v1.1.0)", section.Heading())
	})

	t.Run("should render only the path for the root module", func(t *testing.T) {
		t.Parallel()

		// given
		section := entities.ModuleChangelog{Path: "github.com/a/a", OldVersion: "v1.0.0", NewVersion: "HEAD", Root: true}

		// when / then
		assert.Equal(t, "github.com/a/a", section.Heading())
	})

	t.Run("should build a failed result from a delta", func(t *testing.T) {
		t.Parallel()

		// given
		delta := entities.DependencyDelta{Path: "github.com/b/b", OldVersion: "v1", NewVersion: "v2"}
		cause := errors.New("network down")

		// when
		result := entities.NewFailedModuleResult(delta, cause)

		// then
		require.ErrorIs(t, result.Err, cause)
		assert.True(t, result.Changelog.Failed())
		assert.Equal(t, "network down", result.Changelog.Failure)
		assert.Equal(t, "github.com/b/b (v1 -> v2)", result.Changelog.Heading())
		assert.Empty(t, result.Stats)
		assert.NotNil(t, result.Changelog.Entries)
		assert.Empty(t, result.Changelog.Entries)
	})
}
