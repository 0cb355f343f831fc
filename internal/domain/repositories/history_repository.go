package repositories

import (
	"context"

	"github.com/rios0rios0/releaselog/internal/domain/entities"
)

// HistoryQuery selects the commits between two references of a local repository.
type HistoryQuery struct {
	Dir         string
	Start       string
	End         string
	IgnoreFiles []string
	// Mailmap is used when the repository has no .mailmap of its own.
	Mailmap string
}

// HistoryRepository reads commit logs and diff statistics.
type HistoryRepository interface {
	// Changes lists the first-parent commits of the range, newest first, with the
	// files each commit touched.
	Changes(ctx context.Context, query HistoryQuery) ([]entities.Commit, error)

	// Stats returns one record per non-merge commit of the range and author identity,
	// with ignored files left out of the counts. Authors are mailmap-normalized.
	// A statistic label other than files, insertions or deletions yields
	// entities.ErrUnknownStatEvent.
	Stats(ctx context.Context, query HistoryQuery) ([]entities.CommitStatRecord, error)
}
