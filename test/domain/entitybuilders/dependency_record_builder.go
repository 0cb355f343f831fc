//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/releaselog/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// DependencyRecordBuilder helps create test dependency records with a fluent interface.
type DependencyRecordBuilder struct {
	*testkit.BaseBuilder
	path    string
	version string
}

// NewDependencyRecordBuilder creates a new dependency record builder with sensible defaults.
func NewDependencyRecordBuilder() *DependencyRecordBuilder {
	return &DependencyRecordBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		path:        "github.com/test/dep",
		version:     "v1.0.0",
	}
}

// WithPath sets the module path.
func (b *DependencyRecordBuilder) WithPath(path string) *DependencyRecordBuilder {
	b.path = path
	return b
}

// WithVersion sets the pinned version.
func (b *DependencyRecordBuilder) WithVersion(version string) *DependencyRecordBuilder {
	b.version = version
	return b
}

// Build creates the record (satisfies testkit.Builder interface).
func (b *DependencyRecordBuilder) Build() interface{} {
	return b.BuildRecord()
}

// BuildRecord creates the record with a concrete return type.
func (b *DependencyRecordBuilder) BuildRecord() entities.DependencyRecord {
	return entities.DependencyRecord{Path: b.path, Version: b.version}
}

// Reset clears the builder state, allowing it to be reused.
func (b *DependencyRecordBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.path = "github.com/test/dep"
	b.version = "v1.0.0"
	return b
}

// Clone creates a deep copy of the DependencyRecordBuilder.
func (b *DependencyRecordBuilder) Clone() testkit.Builder {
	return &DependencyRecordBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		path:        b.path,
		version:     b.version,
	}
}
