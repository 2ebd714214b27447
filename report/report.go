package report

import "fmt"

// Severity classifies a single diagnostic entry per spec.md §7's taxonomy.
// Fatal and Cancelled are not represented here: Fatal surfaces as a Go
// panic recovered at the driver boundary, and Cancelled surfaces as a Go
// error from the entry point that observed it, exactly as spec.md §7's
// "Propagation" paragraph distinguishes them from the accumulating kinds.
type Severity int

const (
	// SeverityWarning covers spec.md §7's Warning class: unclosed sector at
	// a cut, near-miss partition, loss of accuracy on a very long
	// partition, blockmap truncated to fit, duplicate lump, window effect.
	SeverityWarning Severity = iota

	// SeveritySoftOverflow is an Overflow classified as soft: the output
	// exceeds the format's native range but modern source ports tolerate
	// it.
	SeveritySoftOverflow

	// SeverityHardOverflow is an Overflow classified as hard: vanilla
	// Doom/Hexen will misbehave or crash on this output.
	SeverityHardOverflow

	// SeverityBadArgs records a configuration value outside its permitted
	// range that the driver silently auto-corrected.
	SeverityBadArgs
)

// String renders a Severity for diagnostic printing.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeveritySoftOverflow:
		return "soft-overflow"
	case SeverityHardOverflow:
		return "hard-overflow"
	case SeverityBadArgs:
		return "bad-args"
	default:
		return "unknown"
	}
}

// Entry is one accumulated diagnostic: its severity, a short machine-
// readable Kind (e.g. "window-effect", "unclosed-sector", "blockmap-cell"),
// a human-readable Message, and the zero-based level index it was raised
// against.
type Entry struct {
	Severity Severity
	Kind     string
	Message  string
	Level    int
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] level %d: %s: %s", e.Severity, e.Level, e.Kind, e.Message)
}

// Report accumulates every diagnostic raised while compiling one or more
// levels, plus whether V2→V3/V5 GL-nodes format escalation was triggered
// by overflow (spec.md §7).
type Report struct {
	Entries []Entry

	// UpgradedSpecVersion is set to the new spec version when an Overflow
	// triggers a silent GL-nodes format upgrade (spec.md §7); zero if no
	// upgrade occurred.
	UpgradedSpecVersion int
}

// Warn appends a Warning-severity entry.
func (r *Report) Warn(level int, kind, format string, args ...any) {
	r.add(SeverityWarning, level, kind, format, args...)
}

// SoftOverflow appends a soft-Overflow entry.
func (r *Report) SoftOverflow(level int, kind, format string, args ...any) {
	r.add(SeveritySoftOverflow, level, kind, format, args...)
}

// HardOverflow appends a hard-Overflow entry.
func (r *Report) HardOverflow(level int, kind, format string, args ...any) {
	r.add(SeverityHardOverflow, level, kind, format, args...)
}

// BadArgs appends a BadArgs entry, recording an auto-corrected configuration
// value.
func (r *Report) BadArgs(level int, kind, format string, args ...any) {
	r.add(SeverityBadArgs, level, kind, format, args...)
}

func (r *Report) add(sev Severity, level int, kind, format string, args ...any) {
	r.Entries = append(r.Entries, Entry{
		Severity: sev,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Level:    level,
	})
}

// HasHardOverflow reports whether any hard-Overflow entry was recorded,
// the signal spec.md §7 says should tell the user "the map won't run".
func (r *Report) HasHardOverflow() bool {
	for _, e := range r.Entries {
		if e.Severity == SeverityHardOverflow {
			return true
		}
	}

	return false
}

// HasSoftOverflow reports whether any soft-Overflow entry was recorded,
// the signal spec.md §7 says should tell the user their map needs a
// modern source port.
func (r *Report) HasSoftOverflow() bool {
	for _, e := range r.Entries {
		if e.Severity == SeveritySoftOverflow {
			return true
		}
	}

	return false
}

// Count returns the number of entries of the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, e := range r.Entries {
		if e.Severity == sev {
			n++
		}
	}

	return n
}
