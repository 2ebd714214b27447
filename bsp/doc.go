// Package bsp builds the binary space partition tree for one level:
// it owns the output-side arena (Seg, Subsector, Node, plus the extra
// vertices split points create), the Superblock spatial accelerator, the
// partition picker and seg splitter, the miniseg stitcher, the recursive
// builder, and the three finalisation sweeps.
//
// The input-side arena (vertices, linedefs, sidedefs, sectors) is owned
// by package level and referenced here by index; package analyse must
// have already run on it. Compile (or CompileFast, when an original node
// tree is available for partition reuse) is the package's entry point,
// matching spec.md §4.H-I's "recurse then finalise" shape.
package bsp
