package geom

import (
	"math"

	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/reason"
)

// Vec2 is a pair of finite float64 coordinates. Geom2D.Validate rejects a
// geometry holding a non-finite Vec2 with reason.GeomInvalidNumeric;
// Intersect, ProjectPoint, SplitAt, Offset and MirrorGeom validate their
// geometry arguments before any arithmetic, and ProjectPoint also checks
// its query point. FilletLines, ChamferLines, mirror axes, trim pick
// points and split points are not checked for finiteness.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Finite reports whether both components are finite.
func (v Vec2) Finite() bool { return epsilon.IsFinite(v.X) && epsilon.IsFinite(v.Y) }

func (v Vec2) sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) mul(s float64) Vec2   { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vec2) len() float64         { return math.Hypot(v.X, v.Y) }
func dist(a, b Vec2) float64        { return a.sub(b).len() }
func lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Kind discriminates the Geom2D tagged union.
type Kind string

const (
	KindLine     Kind = "Line"
	KindCircle   Kind = "Circle"
	KindArc      Kind = "Arc"
	KindPolyline Kind = "Polyline"
)

// Geom2D is the single tagged-union geometry type shared across the
// kernel, the face extractor, and the document model. Only
// the fields relevant to Kind are meaningful; constructors below are the
// supported way to build one.
type Geom2D struct {
	Kind Kind `json:"type"`

	// Line
	A Vec2 `json:"a,omitempty"`
	B Vec2 `json:"b,omitempty"`

	// Circle / Arc
	C          Vec2    `json:"c,omitempty"`
	R          float64 `json:"r,omitempty"`
	StartAngle float64 `json:"start_angle,omitempty"`
	EndAngle   float64 `json:"end_angle,omitempty"`
	CCW        bool    `json:"ccw,omitempty"`

	// Polyline
	Pts    []Vec2 `json:"pts,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// Line constructs a Line geometry from two endpoints.
func Line(a, b Vec2) Geom2D { return Geom2D{Kind: KindLine, A: a, B: b} }

// Circle constructs a Circle geometry with center c and radius r.
func Circle(c Vec2, r float64) Geom2D { return Geom2D{Kind: KindCircle, C: c, R: r} }

// Arc constructs an Arc geometry. start/end angles are normalized to
// (−π, π] by NormalizedArc; Arc stores them as given.
func Arc(c Vec2, r, start, end float64, ccw bool) Geom2D {
	return Geom2D{Kind: KindArc, C: c, R: r, StartAngle: start, EndAngle: end, CCW: ccw}
}

// NormalizedArc is Arc with start/end pre-normalized to (−π, π].
func NormalizedArc(c Vec2, r, start, end float64, ccw bool) Geom2D {
	return Arc(c, r, epsilon.NormalizeAngle(start), epsilon.NormalizeAngle(end), ccw)
}

// Polyline constructs a Polyline geometry from an ordered point sequence.
func Polyline(pts []Vec2, closed bool) Geom2D {
	return Geom2D{Kind: KindPolyline, Pts: pts, Closed: closed}
}

// Validate checks the structural invariants: finite coordinates,
// positive radii, a minimum point count for polylines, and no
// degenerate segment below eps.EqDist for non-degenerate shapes.
func (g Geom2D) Validate(eps epsilon.Policy) *reason.Reason {
	switch g.Kind {
	case KindLine:
		if !g.A.Finite() || !g.B.Finite() {
			return reason.New(reason.GeomInvalidNumeric)
		}
		if dist(g.A, g.B) <= eps.EqDist {
			return reason.New(reason.GeomDegenerate)
		}
	case KindCircle:
		if !g.C.Finite() || !epsilon.IsFinite(g.R) {
			return reason.New(reason.GeomInvalidNumeric)
		}
		if g.R <= 0 {
			return reason.New(reason.GeomCircleRadiusInvalid)
		}
	case KindArc:
		if !g.C.Finite() || !epsilon.IsFinite(g.R) || !epsilon.IsFinite(g.StartAngle) || !epsilon.IsFinite(g.EndAngle) {
			return reason.New(reason.GeomInvalidNumeric)
		}
		if g.R <= 0 {
			return reason.New(reason.GeomCircleRadiusInvalid)
		}
	case KindPolyline:
		min := 2
		if g.Closed {
			min = 3
		}
		if len(g.Pts) < min {
			return reason.New(reason.GeomDegenerate)
		}
		for _, p := range g.Pts {
			if !p.Finite() {
				return reason.New(reason.GeomInvalidNumeric)
			}
		}
	}
	return nil
}

// segCount returns the number of segments for a polyline: n for closed,
// n-1 for open.
func segCount(pts []Vec2, closed bool) int {
	if closed {
		return len(pts)
	}
	if len(pts) == 0 {
		return 0
	}
	return len(pts) - 1
}

// segment returns the i-th segment endpoints of a polyline, wrapping to
// pts[0] for the closing segment of a closed polyline.
func segment(pts []Vec2, i int) (Vec2, Vec2) {
	a := pts[i]
	if i+1 < len(pts) {
		return a, pts[i+1]
	}
	return a, pts[0]
}
