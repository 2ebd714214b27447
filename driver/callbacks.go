package driver

// Callbacks is the host-supplied hook set spec.md §9's "dynamic dispatch
// via function-pointer tables" note asks to be modelled as an interface
// rather than a hard-wired logger or UI dependency: a progress ticker, a
// message printer, and a fatal-condition notifier. The core never calls
// these from a tight inner loop (picker/splitter/blockmap rasteriser);
// only between passes and at level boundaries.
type Callbacks interface {
	// Progress reports overall completion as a fraction in [0, 1].
	Progress(fraction float64)

	// Message reports an informational or warning string (e.g. a
	// report.Entry rendered for display).
	Message(string)

	// Fatal reports an unrecoverable condition for the level currently
	// being compiled; the driver has already abandoned that level by the
	// time this is called.
	Fatal(string)
}

// NopCallbacks implements Callbacks with no-ops, for callers that don't
// need progress reporting (e.g. tests, or batch/headless runs).
type NopCallbacks struct{}

func (NopCallbacks) Progress(float64) {}
func (NopCallbacks) Message(string)   {}
func (NopCallbacks) Fatal(string)     {}
