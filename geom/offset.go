package geom

import (
	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/reason"
)

// Offset displaces a Line or open Polyline by dist along its left-hand
// normal; positive dist offsets left of the direction of travel.
// Each segment is displaced independently and adjacent displaced
// segments are re-intersected at their shared vertex so corners stay
// mitered instead of gapped or overlapped. Circle, Arc, and closed
// Polyline are rejected: a correct closed-curve offset needs self-
// intersection trimming this kernel does not implement.
func Offset(g Geom2D, d float64, eps epsilon.Policy) (Geom2D, *reason.Reason) {
	if err := g.Validate(eps); err != nil {
		return Geom2D{}, err
	}
	if !epsilon.IsFinite(d) {
		return Geom2D{}, reason.New(reason.GeomInvalidNumeric)
	}

	switch g.Kind {
	case KindLine:
		return offsetLine(g, d), nil
	case KindPolyline:
		if g.Closed {
			return Geom2D{}, reason.New(reason.GeomOffsetNotSupported).
				WithDebug("reason", "closed_polyline_offset_unsupported")
		}
		return offsetPolyline(g, d, eps)
	default:
		return Geom2D{}, reason.New(reason.GeomOffsetNotSupported).
			WithDebug("kind", string(g.Kind))
	}
}

// leftNormal returns the unit left-hand normal of direction a->b.
func leftNormal(a, b Vec2) Vec2 {
	dir := b.sub(a)
	n := dir.len()
	if n == 0 {
		return Vec2{}
	}
	return Vec2{-dir.Y / n, dir.X / n}
}

func offsetLine(g Geom2D, d float64) Geom2D {
	n := leftNormal(g.A, g.B)
	disp := n.mul(d)
	return Line(g.A.add(disp), g.B.add(disp))
}

// infiniteLineIntersect intersects the infinite extensions of a->b and
// c->d, unlike lineLine which clamps to the segment bounds — miter
// corners commonly fall outside either original segment.
func infiniteLineIntersect(a, b, c, d Vec2, tol float64) (Vec2, bool) {
	r := b.sub(a)
	s := d.sub(c)
	denom := r.cross(s)
	if denom == 0 || (denom > -tol && denom < tol) {
		return Vec2{}, false
	}
	qp := c.sub(a)
	t := (qp.X*s.Y - qp.Y*s.X) / denom
	return Vec2{a.X + t*r.X, a.Y + t*r.Y}, true
}

func offsetPolyline(g Geom2D, d float64, eps epsilon.Policy) (Geom2D, *reason.Reason) {
	sc := segCount(g.Pts, g.Closed)
	type displacedSeg struct{ a, b Vec2 }
	segs := make([]displacedSeg, sc)
	for i := 0; i < sc; i++ {
		a, b := segment(g.Pts, i)
		n := leftNormal(a, b)
		disp := n.mul(d)
		segs[i] = displacedSeg{a.add(disp), b.add(disp)}
	}

	out := make([]Vec2, 0, len(g.Pts))
	out = append(out, segs[0].a)
	for i := 0; i < sc-1; i++ {
		p, ok := infiniteLineIntersect(segs[i].a, segs[i].b, segs[i+1].a, segs[i+1].b, eps.IntersectTol)
		if !ok {
			// parallel segments: fall back to the displaced vertex itself
			// rather than failing the whole offset.
			out = append(out, segs[i].b)
			continue
		}
		out = append(out, p)
	}
	out = append(out, segs[sc-1].b)

	for i := 1; i < len(out); i++ {
		if dist(out[i-1], out[i]) <= eps.EqDist {
			return Geom2D{}, reason.New(reason.GeomOffsetSelfIntersection).
				WithDebug("reason", "coincident_vertex").WithDebug("vertex_index", i)
		}
	}

	result := Polyline(out, false)
	if verr := result.Validate(eps); verr != nil {
		return Geom2D{}, reason.New(reason.GeomOffsetSelfIntersection).WithDebug("cause", string(verr.Code))
	}
	return result, nil
}
