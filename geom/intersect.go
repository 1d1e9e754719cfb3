package geom

import (
	"math"
	"sort"

	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/reason"
)

// maxFallbackAttempts bounds the ×10 escalation ladder: the
// base tolerance, then ×10, then ×100 — three attempts total.
const maxFallbackAttempts = 3

// maxReportedCandidates caps how many intersection points Debug reports
// before flagging truncation.
const maxReportedCandidates = 16

// Intersect computes the intersection of two geometries under eps,
// escalating eps.IntersectTol ×10 up to three attempts when an attempt
// finds no intersection, and annotating Debug["info"] with
// "GEOM_NUMERIC_UNSTABLE_FALLBACK_USED" whenever a later attempt is the
// one that succeeded. Only GeomNoIntersection triggers the ladder: every
// other failure is terminal and widening the tolerance could not change
// it — GeomIntersectionAmbiguous in particular must reach the caller
// as-is so it can disambiguate, never be masked by the retry budget. If
// every attempt misses, the final attempt's GeomNoIntersection is
// returned verbatim: a clean miss is a clean miss, not
// GeomFallbackLimitReached.
func Intersect(a, b Geom2D, eps epsilon.Policy) (*IntersectionSet, *reason.Reason) {
	var last *reason.Reason
	for attempt := 0; attempt < maxFallbackAttempts; attempt++ {
		e := eps.Escalated(attempt)
		set, err := intersectOnce(a, b, e)
		if err == nil {
			if attempt > 0 {
				set.setDebug("info", "GEOM_NUMERIC_UNSTABLE_FALLBACK_USED")
			}
			return set, nil
		}
		if err.Code != reason.GeomNoIntersection {
			return nil, err
		}
		last = err
	}
	return nil, last
}

// intersectOnce dispatches a single attempt at a fixed epsilon. Dispatch
// is symmetric: every supported pair has a case for both operand orders
// calling the same solver, so intersect(a,b) produces the same multiset
// of points as intersect(b,a). Pairs with no case (an Arc against a
// Circle or another Arc) fail with GeomNoIntersection tagged
// unsupported_pair.
func intersectOnce(a, b Geom2D, eps epsilon.Policy) (*IntersectionSet, *reason.Reason) {
	if err := a.Validate(eps); err != nil {
		return nil, err
	}
	if err := b.Validate(eps); err != nil {
		return nil, err
	}

	switch {
	case a.Kind == KindLine && b.Kind == KindLine:
		return lineLineSet(a.A, a.B, b.A, b.B, eps)
	case a.Kind == KindLine && b.Kind == KindCircle:
		return lineCircleSet(a.A, a.B, b.C, b.R, eps)
	case a.Kind == KindCircle && b.Kind == KindLine:
		return lineCircleSet(b.A, b.B, a.C, a.R, eps)
	case a.Kind == KindLine && b.Kind == KindArc:
		return lineArcSet(a.A, a.B, b, eps)
	case a.Kind == KindArc && b.Kind == KindLine:
		return lineArcSet(b.A, b.B, a, eps)
	case a.Kind == KindCircle && b.Kind == KindCircle:
		return circleCircleSet(a.C, a.R, b.C, b.R, eps)
	case a.Kind == KindPolyline && b.Kind == KindLine:
		return polylineWithSet(a, b, eps, lineSegIntersect)
	case a.Kind == KindLine && b.Kind == KindPolyline:
		return polylineWithSet(b, a, eps, lineSegIntersect)
	case a.Kind == KindPolyline && b.Kind == KindCircle:
		return polylineWithSet(a, b, eps, circleSegIntersect)
	case a.Kind == KindCircle && b.Kind == KindPolyline:
		return polylineWithSet(b, a, eps, circleSegIntersect)
	case a.Kind == KindPolyline && b.Kind == KindArc:
		return polylineWithSet(a, b, eps, arcSegIntersect)
	case a.Kind == KindArc && b.Kind == KindPolyline:
		return polylineWithSet(b, a, eps, arcSegIntersect)
	case a.Kind == KindPolyline && b.Kind == KindPolyline:
		return polylinePolylineSet(a, b, eps)
	default:
		return nil, reason.New(reason.GeomNoIntersection).WithDebug("unsupported_pair", true)
	}
}

// lineLine solves for the (t,u) parameters of two segments via the
// r×s bivector method. It returns the intersection point plus
// t (on a) and u (on b) when both lie in [0,1]±tol.
func lineLine(a0, a1, b0, b1 Vec2, eps epsilon.Policy) (Vec2, float64, float64, *reason.Reason) {
	r := a1.sub(a0)
	s := b1.sub(b0)
	denom := r.cross(s)
	qp := b0.sub(a0)
	qpxr := qp.cross(r)

	if math.Abs(denom) <= eps.IntersectTol {
		if math.Abs(qpxr) <= eps.IntersectTol {
			return Vec2{}, 0, 0, reason.New(reason.GeomIntersectionAmbiguous).
				WithDebug("case", "colinear_overlap")
		}
		return Vec2{}, 0, 0, reason.New(reason.GeomNoIntersection).
			WithDebug("denom", denom).WithDebug("qpxr", qpxr)
	}

	t := (qp.X*s.Y - qp.Y*s.X) / denom
	u := (qp.X*r.Y - qp.Y*r.X) / denom
	if t < -eps.IntersectTol || t > 1+eps.IntersectTol || u < -eps.IntersectTol || u > 1+eps.IntersectTol {
		return Vec2{}, 0, 0, reason.New(reason.GeomNoIntersection).
			WithDebug("t", t).WithDebug("u", u)
	}
	p := Vec2{a0.X + t*r.X, a0.Y + t*r.Y}
	return p, t, u, nil
}

func lineLineSet(a0, a1, b0, b1 Vec2, eps epsilon.Policy) (*IntersectionSet, *reason.Reason) {
	p, t, u, err := lineLine(a0, a1, b0, b1, eps)
	if err != nil {
		return nil, err
	}
	set := &IntersectionSet{Points: []Vec2{p}, Ambiguous: false}
	set.setDebug("classification", "tangent_or_single")
	set.setDebug("t", t)
	set.setDebug("u", u)
	return set, nil
}

// lineCircle parametrizes the line and solves the quadratic for
// intersection with a circle, clamping a small negative discriminant to
// zero to recognize tangency.
func lineCircle(a, b, c Vec2, r float64, eps epsilon.Policy) ([]Vec2, string) {
	d := b.sub(a)
	f := a.sub(c)
	aCoef := d.dot(d)
	bCoef := 2 * f.dot(d)
	cCoef := f.dot(f) - r*r

	disc := bCoef*bCoef - 4*aCoef*cCoef
	if disc < -eps.IntersectTol {
		return nil, ""
	}
	if disc < 0 {
		disc = 0
	}
	sq := math.Sqrt(disc)

	t1 := (-bCoef - sq) / (2 * aCoef)
	t2 := (-bCoef + sq) / (2 * aCoef)

	var out []Vec2
	inRange := func(t float64) bool { return t >= -eps.IntersectTol && t <= 1+eps.IntersectTol }
	if inRange(t1) {
		out = append(out, lerp(a, b, t1))
	}
	if math.Abs(t2-t1) > eps.EqDist && inRange(t2) {
		out = append(out, lerp(a, b, t2))
	}
	classification := "secant"
	if len(out) <= 1 {
		classification = "tangent_or_single"
	}
	return out, classification
}

func lineCircleSet(a, b, c Vec2, r float64, eps epsilon.Policy) (*IntersectionSet, *reason.Reason) {
	pts, classification := lineCircle(a, b, c, r, eps)
	if len(pts) == 0 {
		return nil, reason.New(reason.GeomNoIntersection)
	}
	pts = dedupeVec2(pts, eps.EqDist)
	return finishSet(pts, classification), nil
}

func lineArcSet(a, b Vec2, arcGeom Geom2D, eps epsilon.Policy) (*IntersectionSet, *reason.Reason) {
	pts, _ := lineCircle(a, b, arcGeom.C, arcGeom.R, eps)
	var filtered []Vec2
	for _, p := range pts {
		theta := math.Atan2(p.Y-arcGeom.C.Y, p.X-arcGeom.C.X)
		if epsilon.InArcRange(theta, arcGeom.StartAngle, arcGeom.EndAngle, arcGeom.CCW, eps.IntersectTol) {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return nil, reason.New(reason.GeomNoIntersection)
	}
	filtered = dedupeVec2(filtered, eps.EqDist)
	classification := "secant"
	if len(filtered) <= 1 {
		classification = "tangent_or_single"
	}
	return finishSet(filtered, classification), nil
}

// circleCircleSet classifies by center distance vs radius sum/difference,
// reporting coincident circles as ambiguous.
func circleCircleSet(c1 Vec2, r1 float64, c2 Vec2, r2 float64, eps epsilon.Policy) (*IntersectionSet, *reason.Reason) {
	d := dist(c1, c2)
	if d <= eps.IntersectTol && math.Abs(r1-r2) <= eps.IntersectTol {
		return nil, reason.New(reason.GeomIntersectionAmbiguous).WithDebug("case", "coincident_circles")
	}
	if d > r1+r2+eps.IntersectTol || d < math.Abs(r1-r2)-eps.IntersectTol {
		return nil, reason.New(reason.GeomNoIntersection).WithDebug("center_dist", d)
	}
	if d <= eps.IntersectTol {
		return nil, reason.New(reason.GeomNoIntersection).WithDebug("zero_center_distance", true)
	}
	a := (r1*r1 - r2*r2 + d*d) / (2 * d)
	h2 := r1*r1 - a*a
	if h2 < -eps.IntersectTol {
		return nil, reason.New(reason.GeomNoIntersection)
	}
	if h2 < 0 {
		h2 = 0
	}
	h := math.Sqrt(h2)
	ux := (c2.X - c1.X) / d
	uy := (c2.Y - c1.Y) / d
	mid := Vec2{c1.X + a*ux, c1.Y + a*uy}

	classification := "secant"
	var pts []Vec2
	if h <= eps.EqDist {
		classification = "tangent_or_single"
		pts = []Vec2{mid}
	} else {
		pts = []Vec2{
			{mid.X - h*uy, mid.Y + h*ux},
			{mid.X + h*uy, mid.Y - h*ux},
		}
	}
	pts = dedupeVec2(pts, eps.EqDist)
	if len(pts) <= 1 {
		classification = "tangent_or_single"
	}
	return finishSet(pts, classification), nil
}

type segIntersectFn func(p0, p1 Vec2, other Geom2D, eps epsilon.Policy) []Vec2

func lineSegIntersect(p0, p1 Vec2, other Geom2D, eps epsilon.Policy) []Vec2 {
	if p, _, _, err := lineLine(p0, p1, other.A, other.B, eps); err == nil {
		return []Vec2{p}
	}
	return nil
}

func circleSegIntersect(p0, p1 Vec2, other Geom2D, eps epsilon.Policy) []Vec2 {
	pts, _ := lineCircle(p0, p1, other.C, other.R, eps)
	return pts
}

func arcSegIntersect(p0, p1 Vec2, other Geom2D, eps epsilon.Policy) []Vec2 {
	pts, _ := lineCircle(p0, p1, other.C, other.R, eps)
	var out []Vec2
	for _, p := range pts {
		theta := math.Atan2(p.Y-other.C.Y, p.X-other.C.X)
		if epsilon.InArcRange(theta, other.StartAngle, other.EndAngle, other.CCW, eps.IntersectTol) {
			out = append(out, p)
		}
	}
	return out
}

// polylineWithSet iterates every segment of a polyline against a single
// other geometry, deduping results under eq_dist.
func polylineWithSet(poly, other Geom2D, eps epsilon.Policy, fn segIntersectFn) (*IntersectionSet, *reason.Reason) {
	sc := segCount(poly.Pts, poly.Closed)
	var out []Vec2
	for i := 0; i < sc; i++ {
		p0, p1 := segment(poly.Pts, i)
		out = append(out, fn(p0, p1, other, eps)...)
	}
	if len(out) == 0 {
		return nil, reason.New(reason.GeomNoIntersection)
	}
	out = dedupeVec2(out, eps.EqDist)
	classification := "secant"
	if len(out) <= 1 {
		classification = "tangent_or_single"
	}
	return finishSet(out, classification), nil
}

// polylinePolylineSet intersects every segment pair across two polylines.
func polylinePolylineSet(a, b Geom2D, eps epsilon.Policy) (*IntersectionSet, *reason.Reason) {
	scA := segCount(a.Pts, a.Closed)
	scB := segCount(b.Pts, b.Closed)
	var out []Vec2
	for i := 0; i < scA; i++ {
		p0, p1 := segment(a.Pts, i)
		for j := 0; j < scB; j++ {
			q0, q1 := segment(b.Pts, j)
			if p, _, _, err := lineLine(p0, p1, q0, q1, eps); err == nil {
				out = append(out, p)
			}
		}
	}
	if len(out) == 0 {
		return nil, reason.New(reason.GeomNoIntersection)
	}
	out = dedupeVec2(out, eps.EqDist)
	classification := "secant"
	if len(out) <= 1 {
		classification = "tangent_or_single"
	}
	return finishSet(out, classification), nil
}

// finishSet sorts points lexicographically under TotalCmp, caps the
// reported candidate count at 16, and sets Ambiguous/Debug per the
// classification contract.
func finishSet(pts []Vec2, classification string) *IntersectionSet {
	sort.Slice(pts, func(i, j int) bool {
		if c := epsilon.TotalCmp(pts[i].X, pts[j].X); c != 0 {
			return c < 0
		}
		return epsilon.TotalCmp(pts[i].Y, pts[j].Y) < 0
	})
	truncated := false
	reported := pts
	if len(pts) > maxReportedCandidates {
		reported = pts[:maxReportedCandidates]
		truncated = true
	}
	set := &IntersectionSet{Points: reported, Ambiguous: len(pts) > 1}
	set.setDebug("classification", classification)
	set.setDebug("candidate_count", len(pts))
	set.setDebug("truncated", truncated)
	return set
}

func dedupeVec2(pts []Vec2, eps float64) []Vec2 {
	conv := make([]epsilon.Point2, len(pts))
	for i, p := range pts {
		conv[i] = epsilon.Point2{X: p.X, Y: p.Y}
	}
	deduped := epsilon.Dedupe(conv, eps)
	out := make([]Vec2, len(deduped))
	for i, p := range deduped {
		out[i] = Vec2{X: p.X, Y: p.Y}
	}
	return out
}
