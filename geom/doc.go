// Package geom implements the deterministic 2D geometry kernel:
// intersect, project, split, offset, trim, fillet, chamfer, and mirror over
// Line, Circle, Arc, and Polyline primitives.
//
// Geom2D is one tagged-union type shared by the kernel, the face
// extractor, and the document model; there is exactly one Geom2D in this
// module, never a pair of near-identical types bridged through JSON.
//
// Every operation is a pure function of its inputs and an epsilon.Policy:
// no global state, no hidden clock, no randomness. Failures are always a
// *reason.Reason drawn from the closed catalog (package reason); there are
// no panics on malformed-but-well-typed input.
package geom
