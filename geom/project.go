package geom

import (
	"math"

	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/reason"
)

// ProjectPoint finds the closest point on g to p, expressed as a
// TGlobal in [0,1]: for a Line, t is the ordinary line
// parameter; for an Arc, t is the fraction of the angular sweep; for a
// Polyline, t is (segment index + local t) / segment count, i.e. a
// single global parameter spanning every segment in order.
func ProjectPoint(g Geom2D, p Vec2, eps epsilon.Policy) (*ProjectHit, *reason.Reason) {
	if err := g.Validate(eps); err != nil {
		return nil, err
	}
	if !p.Finite() {
		return nil, reason.New(reason.GeomInvalidNumeric)
	}

	switch g.Kind {
	case KindLine:
		return projectOnSegment(g.A, g.B, p), nil
	case KindArc:
		return projectOnArc(g, p, eps), nil
	case KindCircle:
		return projectOnCircle(g.C, g.R, p), nil
	case KindPolyline:
		return projectOnPolyline(g, p), nil
	default:
		return nil, reason.New(reason.GeomInvalidNumeric)
	}
}

func projectOnSegment(a, b, p Vec2) *ProjectHit {
	ab := b.sub(a)
	len2 := ab.dot(ab)
	t := 0.0
	if len2 > 0 {
		t = ab.dot(p.sub(a)) / len2
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	proj := lerp(a, b, t)
	return &ProjectHit{Point: proj, TGlobal: t, Dist: dist(p, proj)}
}

func projectOnCircle(c Vec2, r float64, p Vec2) *ProjectHit {
	theta := math.Atan2(p.Y-c.Y, p.X-c.X)
	proj := Vec2{c.X + r*math.Cos(theta), c.Y + r*math.Sin(theta)}
	t := epsilon.NormalizeAngle(theta)/(2*math.Pi) + 0.5
	return &ProjectHit{Point: proj, TGlobal: t, Dist: dist(p, proj)}
}

func projectOnArc(g Geom2D, p Vec2, eps epsilon.Policy) *ProjectHit {
	theta := math.Atan2(p.Y-g.C.Y, p.X-g.C.X)
	sweep := epsilon.ArcSweep(g.StartAngle, g.EndAngle, g.CCW)
	var frac float64
	if epsilon.InArcRange(theta, g.StartAngle, g.EndAngle, g.CCW, eps.IntersectTol) {
		covered := epsilon.ArcSweep(g.StartAngle, theta, g.CCW)
		if sweep > 0 {
			frac = covered / sweep
		}
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
	} else {
		// outside the sweep: snap to whichever endpoint is angularly closer
		distToStart := math.Abs(epsilon.NormalizeAngle(theta - g.StartAngle))
		distToEnd := math.Abs(epsilon.NormalizeAngle(theta - g.EndAngle))
		if distToStart <= distToEnd {
			frac = 0
		} else {
			frac = 1
		}
	}
	angle := g.StartAngle
	if g.CCW {
		angle += sweep * frac
	} else {
		angle -= sweep * frac
	}
	proj := Vec2{g.C.X + g.R*math.Cos(angle), g.C.Y + g.R*math.Sin(angle)}
	return &ProjectHit{Point: proj, TGlobal: frac, Dist: dist(p, proj)}
}

func projectOnPolyline(g Geom2D, p Vec2) *ProjectHit {
	sc := segCount(g.Pts, g.Closed)
	var best *ProjectHit
	var bestSeg int
	for i := 0; i < sc; i++ {
		a, b := segment(g.Pts, i)
		hit := projectOnSegment(a, b, p)
		if best == nil || hit.Dist < best.Dist {
			best = hit
			bestSeg = i
		}
	}
	if best == nil {
		return &ProjectHit{}
	}
	globalT := (float64(bestSeg) + best.TGlobal) / float64(sc)
	return &ProjectHit{Point: best.Point, TGlobal: globalT, Dist: best.Dist}
}
