package entities

// DependencyDelta is a version change of one module between two manifests.
type DependencyDelta struct {
	Path       string `json:"path"`
	OldVersion string `json:"old_version"`
	NewVersion string `json:"new_version"`
	OldRef     string `json:"old_ref"`
	NewRef     string `json:"new_ref"`
}

// DiffSnapshots returns one delta per module present in both snapshots whose
// version changed, ordered by path. Modules that were added or removed are not
// reported.
func DiffSnapshots(oldSnapshot, newSnapshot ResolvedSnapshot) []DependencyDelta {
	deltas := make([]DependencyDelta, 0)
	for _, path := range newSnapshot.Paths() {
		newDep := newSnapshot[path]
		oldDep, ok := oldSnapshot[path]
		if !ok || oldDep.Version == newDep.Version {
			continue
		}
		deltas = append(deltas, DependencyDelta{
			Path:       path,
			OldVersion: oldDep.Version,
			NewVersion: newDep.Version,
			OldRef:     oldDep.Ref,
			NewRef:     newDep.Ref,
		})
	}
	return deltas
}

// FilterDeltas keeps the deltas whose path the filter allows.
func FilterDeltas(deltas []DependencyDelta, filter *ModuleFilter) []DependencyDelta {
	kept := make([]DependencyDelta, 0, len(deltas))
	for _, delta := range deltas {
		if filter.Allows(delta.Path) {
			kept = append(kept, delta)
		}
	}
	return kept
}
