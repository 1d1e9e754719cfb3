package reason

import "fmt"

// Severity ranks how actionable a Reason is. Fatal codes still carry a
// user-actionable hint; the engine core never aborts the process on any
// severity.
type Severity string

// Closed set of severities, ordered Info < Warn < Error < Fatal.
const (
	Info  Severity = "INFO"
	Warn  Severity = "WARN"
	Error Severity = "ERROR"
	Fatal Severity = "FATAL"
)

// KV is an ordered key→value pair. Reason.Params and Reason.Debug are
// slices of KV rather than maps so that encode(Reason) is deterministic
// and insertion order survives a round-trip through JSON.
type KV struct {
	Key   string
	Value any
}

// Reason is the engine's structured error value. It implements error so it
// composes with errors.As/errors.Is-based callers, but code that wants to
// branch on the taxonomy should compare Code directly (or use Is).
type Reason struct {
	Code   Code
	Params []KV
	Debug  []KV
}

// New constructs a Reason for a catalog code. It panics if code is not a
// member of the closed catalog (see catalog.go) — raising an
// unregistered code is a programmer error, never a runtime condition.
func New(code Code) *Reason {
	if _, ok := catalog[code]; !ok {
		panic(fmt.Sprintf("reason: code %q is not in the closed catalog", code))
	}
	return &Reason{Code: code}
}

// WithParam appends a user-visible parameter and returns the receiver,
// allowing New(code).WithParam(...).WithDebug(...) chaining.
func (r *Reason) WithParam(key string, value any) *Reason {
	r.Params = append(r.Params, KV{Key: key, Value: value})
	return r
}

// WithDebug appends a diagnostic-only key, not intended for end users.
func (r *Reason) WithDebug(key string, value any) *Reason {
	r.Debug = append(r.Debug, KV{Key: key, Value: value})
	return r
}

// Severity reports the catalog-declared severity for r.Code.
func (r *Reason) Severity() Severity {
	return catalog[r.Code].severity
}

// Error satisfies the error interface; it never discloses Debug contents,
// only Code and the first-class Params already meant for the caller.
func (r *Reason) Error() string {
	if len(r.Params) == 0 {
		return string(r.Code)
	}
	s := string(r.Code) + " ("
	for i, kv := range r.Params {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%v", kv.Key, kv.Value)
	}
	return s + ")"
}

// Is reports whether err is a *Reason carrying exactly this code, enabling
// errors.Is(err, reason.New(reason.GeomDegenerate)) style comparisons.
func (r *Reason) Is(target error) bool {
	t, ok := target.(*Reason)
	if !ok {
		return false
	}
	return t.Code == r.Code
}

// Get returns the value and presence for a key in Params, in insertion
// order (first match wins — callers should not insert duplicate keys).
func (r *Reason) Get(key string) (any, bool) {
	for _, kv := range r.Params {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// GetDebug mirrors Get but searches Debug.
func (r *Reason) GetDebug(key string) (any, bool) {
	for _, kv := range r.Debug {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}
