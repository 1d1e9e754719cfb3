// Package craftcad is the engine core of a 2D CAD tool for fabrication
// workflows (wood / leather / sheet stock): draw entities, derive parts
// from closed faces, nest parts onto sheets, and persist everything in a
// single portable archive.
//
// 🚀 What is craftcad?
//
//	A deterministic, synchronous engine library that brings together:
//
//	  • Geometry kernel: intersect / project / split / offset / trim /
//	    fillet / chamfer / mirror over lines, circles, arcs, polylines
//	  • Transactional commands: begin/update/commit/cancel producing
//	    reversible deltas with grouping, undo and redo
//	  • Face extraction: closed polygons → oriented outer/hole hierarchies
//	  • Nesting: seeded, bounded shelf packing with reproducible output
//	  • Persistence: a zipped manifest+document archive with validation
//
// ✨ Why this shape?
//
//   - Deterministic        — fixed seeds and tolerances give bit-identical output
//   - Reversible           — every mutation is a delta that round-trips byte-exact
//   - Structured failures  — one closed catalog of reason codes, never a panic
//   - Pure functions       — the kernel has no global state and no hidden clock
//
// Everything is organized under nine subpackages:
//
//	epsilon/   — the tolerance policy and deterministic numeric helpers
//	geom/      — the Geom2D tagged union and its pure operations
//	face/      — outer/hole face extraction from closed loops
//	model/     — the document graph, validation and normalization
//	serialize/ — the .diycad ZIP archive reader/writer
//	command/   — the command lifecycle and the sealed Delta set
//	history/   — undo/redo stacks and atomic delta groups
//	nest/      — the seeded shelf-packing nesting engine
//	reason/    — the closed error taxonomy
//
//	go get github.com/teru1991/craftcad
package craftcad
