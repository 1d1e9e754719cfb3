package epsilon

import "math"

// Policy bundles the four tolerances that parametrize every numeric
// decision in the kernel. Zero-value Policy is invalid; use
// Default() or construct explicitly and call Validate().
type Policy struct {
	// EqDist is the point-equality and degenerate-length threshold.
	EqDist float64
	// SnapDist is the pick-to-geometry snap radius.
	SnapDist float64
	// IntersectTol is the base allowed numerical slack in intersection
	// tests; Intersect (package geom) escalates this ×10 up to three
	// attempts before giving up.
	IntersectTol float64
	// AreaTol is the polygon-area smallness threshold.
	AreaTol float64
}

// Default returns the engine-wide default policy:
// eq_dist=1e-6, snap_dist=1e-2, intersect_tol=1e-6, area_tol=1e-6.
func Default() Policy {
	return Policy{
		EqDist:       1e-6,
		SnapDist:     1e-2,
		IntersectTol: 1e-6,
		AreaTol:      1e-6,
	}
}

// Validate reports whether every tolerance is finite and strictly positive.
func (p Policy) Validate() bool {
	for _, v := range []float64{p.EqDist, p.SnapDist, p.IntersectTol, p.AreaTol} {
		if !isFinite(v) || v <= 0 {
			return false
		}
	}
	return true
}

// Escalated returns a copy of p with IntersectTol multiplied by 10^n,
// the rungs of the intersection numeric-fallback ladder. n is expected in
// [0,2]; callers stop retrying at n==2 (3 total attempts).
func (p Policy) Escalated(n int) Policy {
	q := p
	for i := 0; i < n; i++ {
		q.IntersectTol *= 10
	}
	return q
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// IsFinite reports whether v is neither NaN nor ±Inf. The kernel's
// boundary checks (geom.Vec2.Finite, Geom2D.Validate) use it to reject
// non-finite numerics with reason.GeomInvalidNumeric.
func IsFinite(v float64) bool { return isFinite(v) }
