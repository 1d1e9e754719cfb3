// Package reason implements the engine's closed error taxonomy.
//
// Every failure the engine core raises is a Reason: a domain-prefixed Code
// drawn from a closed catalog, plus two ordered key→value bags (Params for
// user-facing context, Debug for diagnostics). Callers branch on Code, not
// on Go's error-wrapping chain, so Reason implements error but exposes Code
// directly for exact matching.
//
// The catalog is closed by construction: New panics on an unregistered
// code, and the catalog map is the single source of truth for each code's
// domain and Severity. catalog_test.go checks the domain prefix of one code
// per domain and that New panics on an unregistered code.
package reason
