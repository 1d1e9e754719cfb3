package geom

import (
	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/reason"
)

// SplitAt splits a Line or open Polyline at the location described by by,
// returning the two resulting pieces plus the exact split point.
// Circle, Arc, and closed Polyline are not supported: the kernel
// has no representation for "a Line that wraps back on itself" short of
// promoting Arc/Circle to Polyline first, which is a modeling decision
// left to the caller (a documented gap, not an oversight).
func SplitAt(g Geom2D, by SplitBy, eps epsilon.Policy) (*SplitResult, *reason.Reason) {
	if err := g.Validate(eps); err != nil {
		return nil, err
	}

	switch g.Kind {
	case KindLine:
		return splitLine(g, by, eps)
	case KindPolyline:
		if g.Closed {
			return nil, reason.New(reason.GeomSplitPointNotOnGeom).
				WithDebug("reason", "closed_polyline_split_unsupported")
		}
		return splitPolyline(g, by, eps)
	default:
		return nil, reason.New(reason.GeomSplitPointNotOnGeom).
			WithDebug("kind", string(g.Kind))
	}
}

func splitLine(g Geom2D, by SplitBy, eps epsilon.Policy) (*SplitResult, *reason.Reason) {
	t := by.t
	if !by.byT {
		hit := projectOnSegment(g.A, g.B, by.point)
		if hit.Dist > eps.SnapDist {
			return nil, reason.New(reason.GeomSplitPointNotOnGeom).WithDebug("dist", hit.Dist)
		}
		t = hit.TGlobal
	}
	if t <= eps.EqDist || t >= 1-eps.EqDist {
		return nil, reason.New(reason.GeomSplitPointNotOnGeom).WithDebug("t", t)
	}
	p := lerp(g.A, g.B, t)
	return &SplitResult{
		Left:       Line(g.A, p),
		Right:      Line(p, g.B),
		SplitPoint: p,
	}, nil
}

func splitPolyline(g Geom2D, by SplitBy, eps epsilon.Policy) (*SplitResult, *reason.Reason) {
	sc := segCount(g.Pts, g.Closed)
	var segIdx int
	var localT float64
	var splitPoint Vec2

	if by.byT {
		gt := by.t * float64(sc)
		segIdx = int(gt)
		if segIdx >= sc {
			segIdx = sc - 1
		}
		localT = gt - float64(segIdx)
		a, b := segment(g.Pts, segIdx)
		splitPoint = lerp(a, b, localT)
	} else {
		hit := projectOnPolyline(g, by.point)
		if hit.Dist > eps.SnapDist {
			return nil, reason.New(reason.GeomSplitPointNotOnGeom).WithDebug("dist", hit.Dist)
		}
		gt := hit.TGlobal * float64(sc)
		segIdx = int(gt)
		if segIdx >= sc {
			segIdx = sc - 1
		}
		localT = gt - float64(segIdx)
		splitPoint = hit.Point
	}

	if segIdx == 0 && localT <= eps.EqDist {
		return nil, reason.New(reason.GeomSplitPointNotOnGeom).WithDebug("reason", "at_start_endpoint")
	}
	if segIdx == sc-1 && localT >= 1-eps.EqDist {
		return nil, reason.New(reason.GeomSplitPointNotOnGeom).WithDebug("reason", "at_end_endpoint")
	}

	left := make([]Vec2, 0, segIdx+2)
	left = append(left, g.Pts[:segIdx+1]...)
	left = append(left, splitPoint)

	right := make([]Vec2, 0, len(g.Pts)-segIdx+1)
	right = append(right, splitPoint)
	right = append(right, g.Pts[segIdx+1:]...)

	return &SplitResult{
		Left:       Polyline(left, false),
		Right:      Polyline(right, false),
		SplitPoint: splitPoint,
	}, nil
}
