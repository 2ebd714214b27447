// Package report implements the diagnostic taxonomy spec.md §7 describes:
// Fatal, LoadError, Cancelled, Overflow (soft/hard), Warning, and BadArgs.
// Routine conditions accumulate into a Report value rather than being
// returned as errors from inner pipeline routines; only Fatal conditions
// and true Go errors (load failures, cancellation) propagate as error
// values from package driver's entry point.
package report
