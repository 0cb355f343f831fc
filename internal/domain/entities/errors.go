package entities

import "errors"

var (
	// ErrUnresolvableVersion is returned when a version string maps to no source-control reference.
	ErrUnresolvableVersion = errors.New("unresolvable version")

	// ErrFetchFailure is returned when a repository cannot be made to contain a reference.
	ErrFetchFailure = errors.New("fetch failure")

	// ErrMalformedManifest is returned when a manifest entry is missing a required field.
	ErrMalformedManifest = errors.New("malformed manifest")

	// ErrUnknownStatEvent is returned when a shortstat line carries a label that is not
	// files, insertions or deletions.
	ErrUnknownStatEvent = errors.New("unknown stat event")
)
