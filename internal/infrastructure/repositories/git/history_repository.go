package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
	"github.com/rios0rios0/releaselog/internal/domain/repositories"
)

const (
	fieldSeparator  = "\x1f"
	recordSeparator = "\x1e"
	changesFormat   = "--format=tformat:%H%x1f%s%x1f%b%x1e"
	statsFormat     = "--pretty=tformat:%H%x09%aN%x09%aE"
	headerFields    = 3 // hash, author name, author email
	mailmapFile     = ".mailmap"
)

// HistoryRepository implements repositories.HistoryRepository with the git CLI,
// which is needed for mailmap normalization and shortstat output.
type HistoryRepository struct{}

// NewHistoryRepository creates a new git CLI history reader.
func NewHistoryRepository() repositories.HistoryRepository {
	return &HistoryRepository{}
}

// Changes lists the first-parent commits between start and end.
func (r *HistoryRepository) Changes(
	ctx context.Context,
	query repositories.HistoryQuery,
) ([]entities.Commit, error) {
	output, err := runGit(ctx, query.Dir, "log", "--first-parent", changesFormat, revisionRange(query))
	if err != nil {
		return nil, err
	}

	commits := parseChanges(string(output))
	for i := range commits {
		commits[i].Files = r.changedFiles(ctx, query.Dir, commits[i].Hash)
	}
	return commits, nil
}

// Stats returns the shortstat of every non-merge commit between start and end.
func (r *HistoryRepository) Stats(
	ctx context.Context,
	query repositories.HistoryQuery,
) ([]entities.CommitStatRecord, error) {
	var args []string
	if mailmap := resolveMailmap(query); mailmap != "" {
		args = append(args, "-c", "mailmap.file="+mailmap)
	}
	args = append(args,
		"log", "--use-mailmap", "--shortstat", "--no-merges", statsFormat,
		revisionRange(query), "--", ".",
	)
	args = append(args, excludePathspecs(query.IgnoreFiles)...)

	output, err := runGit(ctx, query.Dir, args...)
	if err != nil {
		return nil, err
	}
	return parseStats(bytes.NewReader(output))
}

// changedFiles lists the paths a commit changed relative to its first parent.
// It returns nil when the list cannot be computed, e.g. for a root commit.
func (r *HistoryRepository) changedFiles(ctx context.Context, dir, hash string) []string {
	output, err := runGit(ctx, dir, "diff-tree", "--no-commit-id", "--name-only", "-r", hash+"^", hash)
	if err != nil {
		logger.Debugf("[git] cannot list files of %s: %v", hash, err)
		return nil
	}

	files := make([]string, 0)
	for _, line := range strings.Split(string(output), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files
}

func revisionRange(query repositories.HistoryQuery) string {
	return query.Start + ".." + query.End
}

// resolveMailmap prefers the repository's own .mailmap over the configured one.
func resolveMailmap(query repositories.HistoryQuery) string {
	own := filepath.Join(query.Dir, mailmapFile)
	if _, err := os.Stat(own); err == nil {
		return own
	}
	return query.Mailmap
}

func excludePathspecs(patterns []string) []string {
	specs := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		specs = append(specs, ":!"+pattern)
	}
	return specs
}

// parseChanges splits `git log` output written with changesFormat.
func parseChanges(output string) []entities.Commit {
	var commits []entities.Commit
	for _, record := range strings.Split(output, recordSeparator) {
		record = strings.TrimLeft(record, "\n")
		if strings.TrimSpace(record) == "" {
			continue
		}
		fields := strings.SplitN(record, fieldSeparator, 3) //nolint:mnd // hash, subject, body
		commit := entities.Commit{Hash: strings.TrimSpace(fields[0])}
		if len(fields) > 1 {
			commit.Subject = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 { //nolint:mnd // body present
			commit.Body = strings.TrimSpace(fields[2])
		}
		commits = append(commits, commit)
	}
	return commits
}

// parseStats reads `git log --shortstat` output written with statsFormat: a
// tab-separated header per commit, optionally followed by a summary line such as
// " 3 files changed, 10 insertions(+), 2 deletions(-)".
func parseStats(r io.Reader) ([]entities.CommitStatRecord, error) {
	var (
		records []entities.CommitStatRecord
		pending *entities.CommitStatRecord
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.Contains(line, "\t") {
			if pending != nil {
				records = append(records, *pending)
			}
			fields := strings.SplitN(line, "\t", headerFields)
			if len(fields) != headerFields {
				return nil, fmt.Errorf("malformed commit header %q", line)
			}
			pending = &entities.CommitStatRecord{
				CommitHash:  fields[0],
				AuthorName:  fields[1],
				AuthorEmail: fields[2],
			}
			continue
		}

		if pending == nil {
			return nil, fmt.Errorf("stat line %q without a commit header", line)
		}
		if err := applyStatLine(pending, line); err != nil {
			return nil, err
		}
		records = append(records, *pending)
		pending = nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stats: %w", err)
	}

	if pending != nil {
		records = append(records, *pending)
	}
	return records, nil
}

func applyStatLine(record *entities.CommitStatRecord, line string) error {
	for _, part := range strings.Split(line, ", ") {
		countText, label, ok := strings.Cut(strings.TrimSpace(part), " ")
		if !ok {
			return fmt.Errorf("%w: %q", entities.ErrUnknownStatEvent, part)
		}
		count, err := strconv.Atoi(countText)
		if err != nil {
			return fmt.Errorf("%w: %q", entities.ErrUnknownStatEvent, part)
		}

		switch label {
		case "file changed", "files changed":
			record.FilesChanged = count
		case "insertion(+)", "insertions(+)":
			record.Insertions = count
		case "deletion(-)", "deletions(-)":
			record.Deletions = count
		default:
			return fmt.Errorf("%w: %q", entities.ErrUnknownStatEvent, label)
		}
	}
	return nil
}
