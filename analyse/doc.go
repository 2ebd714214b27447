// Package analyse runs the fixed nine-step pipeline that turns raw,
// loaded map lumps into a canonicalised *level.Level ready for BSP
// building: duplicate vertex/sidedef detection, linedef/vertex/sidedef
// pruning, the wall-tip fan, overlap detection, window-effect detection,
// and (Hexen only) polyobject line grouping.
//
// Run is the only exported entry point; it executes the nine steps in the
// fixed order spec.md §4.C requires, because later steps depend on the
// equivalence pointers and ref counts earlier ones establish. It accepts
// a context.Context and polls ctx.Err() between steps.
package analyse
