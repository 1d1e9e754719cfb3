// Package nest implements the deterministic nesting engine:
// expanding a NestJob's parts under margin/kerf/rotation
// constraints, shelf-packing them onto sheet instances across a bounded,
// seeded search, and reporting per-part placement status plus utilization
// metrics and a trace.
//
// Run is the single public entry point. It never mutates its inputs; the
// RunNesting command (command.NewRunNestingCommand) is the only caller
// that writes the result back onto a NestJob, via a Delta.
package nest
