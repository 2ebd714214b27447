package driver

import "errors"

var (
	// ErrCancelled is returned when cancellation was observed between
	// levels or within a level's pipeline (spec.md §5, §7).
	ErrCancelled = errors.New("driver: cancelled")

	// ErrFatal wraps an internal invariant violation recovered from a
	// panic (spec.md §7's Fatal class). Unlike a Load error or
	// Cancellation, a Fatal error aborts the whole run, not just the
	// current level.
	ErrFatal = errors.New("driver: fatal internal invariant violation")
)
