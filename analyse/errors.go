package analyse

import "errors"

// ErrLevelNil is returned by Run when given a nil *level.Level.
var ErrLevelNil = errors.New("analyse: level is nil")

// ErrCancelled is returned by Run when the supplied context is cancelled
// between steps.
var ErrCancelled = errors.New("analyse: cancelled")
