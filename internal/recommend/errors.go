package recommend

import "errors"

// Sentinel errors surfaced to the calling boundary. The recommender
// performs no I/O, so none of these are retryable.
var (
	// ErrInvalidPreset is returned for an unrecognized mood, feeling,
	// or emotion category label.
	ErrInvalidPreset = errors.New("unknown preset")

	// ErrInvalidArgument is returned for a bad recommendation count or
	// an empty catalog.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientCatalog is returned when a mood journey cannot
	// find enough distinct candidates with a nonzero match.
	ErrInsufficientCatalog = errors.New("not enough matching movies in catalog")
)
