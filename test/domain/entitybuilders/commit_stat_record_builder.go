//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/releaselog/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// CommitStatRecordBuilder helps create test commit statistics with a fluent interface.
type CommitStatRecordBuilder struct {
	*testkit.BaseBuilder
	hash       string
	author     string
	email      string
	files      int
	insertions int
	deletions  int
}

// NewCommitStatRecordBuilder creates a new builder with sensible defaults.
func NewCommitStatRecordBuilder() *CommitStatRecordBuilder {
	return &CommitStatRecordBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		hash:        "0123456789abcdef0123456789abcdef01234567",
		author:      "Test Author",
		email:       "author@example.com",
		files:       1,
		insertions:  1,
		deletions:   0,
	}
}

// WithHash sets the commit hash.
func (b *CommitStatRecordBuilder) WithHash(hash string) *CommitStatRecordBuilder {
	b.hash = hash
	return b
}

// WithAuthor sets the author name.
func (b *CommitStatRecordBuilder) WithAuthor(author string) *CommitStatRecordBuilder {
	b.author = author
	return b
}

// WithEmail sets the author email.
func (b *CommitStatRecordBuilder) WithEmail(email string) *CommitStatRecordBuilder {
	b.email = email
	return b
}

// WithChanges sets the files changed, insertions and deletions.
func (b *CommitStatRecordBuilder) WithChanges(files, insertions, deletions int) *CommitStatRecordBuilder {
	b.files = files
	b.insertions = insertions
	b.deletions = deletions
	return b
}

// Build creates the record (satisfies testkit.Builder interface).
func (b *CommitStatRecordBuilder) Build() interface{} {
	return b.BuildRecord()
}

// BuildRecord creates the record with a concrete return type.
func (b *CommitStatRecordBuilder) BuildRecord() entities.CommitStatRecord {
	return entities.CommitStatRecord{
		CommitHash:   b.hash,
		AuthorName:   b.author,
		AuthorEmail:  b.email,
		FilesChanged: b.files,
		Insertions:   b.insertions,
		Deletions:    b.deletions,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *CommitStatRecordBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.hash = "0123456789abcdef0123456789abcdef01234567"
	b.author = "Test Author"
	b.email = "author@example.com"
	b.files = 1
	b.insertions = 1
	b.deletions = 0
	return b
}

// Clone creates a deep copy of the CommitStatRecordBuilder.
func (b *CommitStatRecordBuilder) Clone() testkit.Builder {
	return &CommitStatRecordBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		hash:        b.hash,
		author:      b.author,
		email:       b.email,
		files:       b.files,
		insertions:  b.insertions,
		deletions:   b.deletions,
	}
}
