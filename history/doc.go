// Package history implements the undo/redo stacks: push, undo, redo, and
// atomic delta groups, built on top of the command package's Delta
// values. A new edit always clears the redo stack; a command group
// applies/reverts its members as a single unit in insertion/reverse
// order.
package history
