// Package epsilon centralizes the engine's numeric tolerances and the small
// set of deterministic helpers that every other package builds on: angle
// normalization, arc-sweep/range tests, and point deduplication.
//
// Policy's four tolerances govern every numeric decision in the kernel.
// There is no separate "fuzzy" mode — callers that need looser
// behavior construct a Policy with larger tolerances; the kernel itself
// never chooses tolerances implicitly.
//
// All comparisons here use a total ordering on float64: no partial
// order, no NaN propagates past a boundary check.
package epsilon
