package entities

import (
	"fmt"
	"sort"
)

// DependencyRecord is one module pinned in a manifest.
type DependencyRecord struct {
	Path    string `json:"path"`
	Version string `json:"version"`
}

// Snapshot is a manifest at one point in history, keyed by module path.
type Snapshot map[string]DependencyRecord

// NewSnapshot indexes the given records by path. A record without a path or
// a duplicate path makes the manifest unusable.
func NewSnapshot(records []DependencyRecord) (Snapshot, error) {
	snapshot := make(Snapshot, len(records))
	for i, record := range records {
		if record.Path == "" {
			return nil, fmt.Errorf("%w: entry %d has no module path", ErrMalformedManifest, i)
		}
		if record.Version == "" {
			return nil, fmt.Errorf("%w: module %q has no version", ErrMalformedManifest, record.Path)
		}
		if _, exists := snapshot[record.Path]; exists {
			return nil, fmt.Errorf("%w: module %q listed twice", ErrMalformedManifest, record.Path)
		}
		snapshot[record.Path] = record
	}
	return snapshot, nil
}

// Paths returns the module paths of the snapshot in lexical order.
func (s Snapshot) Paths() []string {
	paths := make([]string, 0, len(s))
	for path := range s {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// ResolvedDependency is a DependencyRecord annotated with the reference its version points at.
type ResolvedDependency struct {
	DependencyRecord
	Ref string `json:"ref"`
}

// ResolvedSnapshot holds the records of a Snapshot whose versions resolved to a reference.
type ResolvedSnapshot map[string]ResolvedDependency

// Resolve annotates every record with its reference. Records whose version does
// not resolve are left out of the result and reported as errors, one per record,
// in path order.
func (s Snapshot) Resolve() (ResolvedSnapshot, []error) {
	resolved := make(ResolvedSnapshot, len(s))
	var failures []error
	for _, path := range s.Paths() {
		record := s[path]
		ref, err := ResolveRef(record.Version)
		if err != nil {
			failures = append(failures, fmt.Errorf("module %s: %w", path, err))
			continue
		}
		resolved[path] = ResolvedDependency{DependencyRecord: record, Ref: ref}
	}
	return resolved, failures
}

// Paths returns the module paths of the resolved snapshot in lexical order.
func (s ResolvedSnapshot) Paths() []string {
	paths := make([]string, 0, len(s))
	for path := range s {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
