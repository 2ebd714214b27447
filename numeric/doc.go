// Package numeric provides the 2D geometry primitives shared by every other
// package in bspc: angle and distance computation, perpendicular/parallel
// distance against an oriented partition line, and box-vs-partition
// classification.
//
// Every routine here is a pure function of its arguments — no package-level
// state, no allocation on the hot paths. The partition picker (package bsp)
// calls into this package from its innermost loops, so it is kept
// allocation-free and branch-light.
package numeric
