// Package driver orchestrates one level's compilation end to end: Load
// (package wad) → Analyse (package analyse) → Build (package bsp) →
// Finalise (package bsp) → Blockmap (package blockmap) → Reject (package
// reject) → Write (package wad), per spec.md §4.L. It owns the per-level
// arena for the duration of one level and is the single recovery
// boundary for the Fatal error class spec.md §7 describes: an internal
// invariant panic anywhere in the pipeline is caught here, turned into a
// report.Entry, and surfaced as an error rather than crashing the whole
// batch run.
package driver
