package entities

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/module"
)

//nolint:gochecknoglobals // compiled once, read-only
var (
	mergePullRequestPattern  = regexp.MustCompile(`^Merge pull request #([0-9]+) from`)
	squashPullRequestPattern = regexp.MustCompile(`\(#([0-9]+)\)$`)
	mergeBranchPattern       = regexp.MustCompile(`^Merge branch '`)
	mergeRequestPattern      = regexp.MustCompile(`(?m)^See merge request \S+!([0-9]+)\s*$`)
)

const gitLabHost = "gitlab.com/"

// Commit is one first-parent commit of a module's history.
type Commit struct {
	Hash    string
	Subject string
	Body    string
	// Files lists the paths the commit touched; nil when unknown.
	Files []string
}

// OnlyTouches reports whether every file of the commit matches one of the patterns.
// Commits with unknown files are never considered ignorable.
func (c Commit) OnlyTouches(patterns []string) bool {
	if c.Files == nil {
		return false
	}
	for _, file := range c.Files {
		if !MatchesAnyFile(patterns, file) {
			return false
		}
	}
	return true
}

// MatchesAnyFile reports whether the repository-relative file matches one of the
// glob patterns, either as a whole path or by base name.
func MatchesAnyFile(patterns []string, file string) bool {
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, file); ok {
			return true
		}
		if ok, _ := path.Match(pattern, path.Base(file)); ok {
			return true
		}
	}
	return false
}

// RepositoryPath strips a major-version suffix such as /v2 from a module path,
// giving the path of the repository that hosts it.
func RepositoryPath(modulePath string) string {
	prefix, pathMajor, ok := module.SplitPathVersion(modulePath)
	// gopkg.in keeps its .vN suffix in the repository URL
	if !ok || prefix == "" || !strings.HasPrefix(pathMajor, "/") {
		return modulePath
	}
	return prefix
}

// ChangeEntry is a single line of a module's changelog.
type ChangeEntry struct {
	Hash        string `json:"hash"`
	Description string `json:"description"`
	PullRequest int    `json:"pull_request,omitempty"`
	Link        string `json:"link,omitempty"`
	// Merge is true for "Merge pull request" commits.
	Merge bool `json:"-"`
}

// NewChangeEntry describes a commit of the repository at repoPath. Merge commits are
// described by the first line of their body; squashed commits ending in (#N) and
// merges both get a pull-request link. GitLab merges are recognized by the
// "See merge request group/project!N" trailer.
func NewChangeEntry(repoPath string, commit Commit) ChangeEntry {
	entry := ChangeEntry{Hash: commit.Hash, Description: commit.Subject}

	if match := mergePullRequestPattern.FindStringSubmatch(commit.Subject); match != nil {
		entry.Merge = true
		entry.Description = firstLine(commit.Body)
		entry.setPullRequest(repoPath, match[1])
	} else if match = squashPullRequestPattern.FindStringSubmatch(commit.Subject); match != nil {
		entry.setPullRequest(repoPath, match[1])
	} else if mergeBranchPattern.MatchString(commit.Subject) {
		if match = mergeRequestPattern.FindStringSubmatch(commit.Body); match != nil {
			entry.Merge = true
			entry.Description = firstLine(mergeRequestPattern.ReplaceAllString(commit.Body, ""))
			entry.setPullRequest(repoPath, match[1])
		}
	}

	return entry
}

func (e *ChangeEntry) setPullRequest(repoPath, number string) {
	n, err := strconv.Atoi(number)
	if err != nil {
		return
	}
	e.PullRequest = n
	e.Link = PullRequestLink(repoPath, n)
}

// PullRequestLink renders a Markdown link to pull request n of the repository.
func PullRequestLink(repoPath string, n int) string {
	if name, ok := strings.CutPrefix(repoPath, gitLabHost); ok {
		return fmt.Sprintf("[%s!%d](https://%s/-/merge_requests/%d)", name, n, repoPath, n)
	}
	name := strings.TrimPrefix(repoPath, "github.com/")
	return fmt.Sprintf("[%s#%d](https://%s/pull/%d)", name, n, repoPath, n)
}

// String renders the entry as it appears in the changelog.
func (e ChangeEntry) String() string {
	if e.Link == "" {
		return e.Description
	}
	return fmt.Sprintf("%s (%s)", e.Description, e.Link)
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// ModuleChangelog is the changelog section of one module.
type ModuleChangelog struct {
	Path       string        `json:"path"`
	OldVersion string        `json:"old_version,omitempty"`
	NewVersion string        `json:"new_version,omitempty"`
	Root       bool          `json:"root,omitempty"`
	Entries    []ChangeEntry `json:"entries"`
	Failure    string        `json:"failure,omitempty"`
}

// Failed reports whether the module's history could not be collected.
func (m ModuleChangelog) Failed() bool {
	return m.Failure != ""
}

// Heading renders the top-level bullet text of the section.
func (m ModuleChangelog) Heading() string {
	if m.Root {
		return m.Path
	}
	return fmt.Sprintf("%s (%s -> %s)", m.Path, m.OldVersion, m.NewVersion)
}

// ModuleResult is the outcome of collecting one module: either its changelog and
// statistics, or the reason collection failed.
type ModuleResult struct {
	Changelog ModuleChangelog
	Stats     []CommitStatRecord
	Err       error
}

// NewFailedModuleResult records that the delta's history could not be collected.
func NewFailedModuleResult(delta DependencyDelta, err error) ModuleResult {
	return ModuleResult{
		Changelog: ModuleChangelog{
			Path:       delta.Path,
			OldVersion: delta.OldVersion,
			NewVersion: delta.NewVersion,
			Entries:    []ChangeEntry{},
			Failure:    err.Error(),
		},
		Err: err,
	}
}
