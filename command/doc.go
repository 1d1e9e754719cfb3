// Package command implements the transactional command protocol: a
// four-phase begin/update/commit/cancel lifecycle that turns validated
// user input into a Delta, the closed set of reversible state changes
// package history tracks.
//
// Delta is a sealed interface with a closed set of concrete types
// declared only in this package, each a total function over the document
// for Apply/Revert, with its own memoized before/after cache guarded by a
// mutex under a first-apply-wins discipline.
//
// Command[Input] is the generic state machine (Idle → Ready → Previewing
// → Committed); each concrete command family (CreateLine, OffsetEntity,
// RunNesting, ...) supplies a validate/build pair and gets the lifecycle
// for free.
package command
