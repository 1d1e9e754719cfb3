package epsilon

import (
	"math"
	"sort"
)

// Point2 is the minimal (x,y) pair epsilon needs; geom.Vec2 is
// structurally identical and the two are used interchangeably at call
// sites via explicit field construction (no shared dependency is
// introduced in either direction — epsilon sits below geom).
type Point2 struct {
	X, Y float64
}

// TotalCmp totally orders a and b, NaN and signed zero included:
// NaN is never compared with <, so every ordering decision in the kernel
// routes through this instead of the raw operators. Inputs are expected
// finite (callers reject NaN/Inf at the boundary); TotalCmp still orders
// them consistently if one slips through, rather than panicking.
func TotalCmp(a, b float64) int {
	// Reinterpret the sign-magnitude float as a sign-ordered integer:
	// flipping every non-sign bit of a negative value makes integer order
	// follow the IEEE-754 totalOrder predicate (-0 sorts before +0).
	ai := int64(math.Float64bits(a))
	bi := int64(math.Float64bits(b))
	ai ^= int64(uint64(ai>>63) >> 1)
	bi ^= int64(uint64(bi>>63) >> 1)
	switch {
	case ai < bi:
		return -1
	case ai > bi:
		return 1
	default:
		return 0
	}
}

// NormalizeAngle maps any finite angle (radians) to (−π, π], wrapping by
// 2π as many times as needed.
func NormalizeAngle(theta float64) float64 {
	const twoPi = 2 * math.Pi
	theta = math.Mod(theta, twoPi)
	if theta <= -math.Pi {
		theta += twoPi
	} else if theta > math.Pi {
		theta -= twoPi
	}
	return theta
}

// ArcSweep returns the nonnegative angle swept from start to end, honoring
// direction ccw. Both angles should already be normalized by the caller;
// ArcSweep normalizes the difference itself so callers never have to.
func ArcSweep(start, end float64, ccw bool) float64 {
	const twoPi = 2 * math.Pi
	d := math.Mod(end-start, twoPi)
	if d < 0 {
		d += twoPi
	}
	if !ccw {
		d = twoPi - d
		if d >= twoPi {
			d = 0
		}
	}
	return d
}

// InArcRange reports whether angle theta (radians, any representation)
// lies within the swept range [start, start+sweep] (direction ccw),
// allowing tol slack past the end of the sweep only: an angle just
// before start counts as outside the range.
func InArcRange(theta, start, end float64, ccw bool, tol float64) bool {
	sweep := ArcSweep(start, end, ccw)
	norm := NormalizeAngle(theta)
	const twoPi = 2 * math.Pi

	var d float64
	if ccw {
		d = math.Mod(norm-start, twoPi)
	} else {
		d = math.Mod(start-norm, twoPi)
	}
	if d < 0 {
		d += twoPi
	}
	return d <= sweep+tol
}

// Dedupe total-orders points lexicographically on (x,y) under TotalCmp,
// then collapses any run of points within eps of each other, keeping the
// first of each run. The input slice is not mutated; a new slice is
// returned in the documented order.
func Dedupe(points []Point2, eps float64) []Point2 {
	if len(points) == 0 {
		return nil
	}
	ordered := make([]Point2, len(points))
	copy(ordered, points)
	sort.Slice(ordered, func(i, j int) bool {
		if c := TotalCmp(ordered[i].X, ordered[j].X); c != 0 {
			return c < 0
		}
		return TotalCmp(ordered[i].Y, ordered[j].Y) < 0
	})

	out := ordered[:0:0]
	out = append(out, ordered[0])
	for _, p := range ordered[1:] {
		last := out[len(out)-1]
		dx := p.X - last.X
		dy := p.Y - last.Y
		if math.Hypot(dx, dy) > eps {
			out = append(out, p)
		}
	}
	return out
}
