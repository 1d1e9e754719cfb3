package face

import (
	"sort"

	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/geom"
	"github.com/teru1991/craftcad/model"
	"github.com/teru1991/craftcad/reason"
)

type loopInfo struct {
	pts     []geom.Vec2
	areaAbs float64
	parent  int // -1 means no parent
	depth   int
}

// Extract builds oriented faces from a set of closed Polyline
// geometries. Non-closed-Polyline inputs are ignored. A coincident
// first/last vertex is dropped before processing. Faces are returned
// largest-outer-area first.
func Extract(polylines []geom.Geom2D, eps epsilon.Policy) ([]model.Polygon2D, *reason.Reason) {
	var loops []loopInfo
	for _, g := range polylines {
		if g.Kind != geom.KindPolyline || !g.Closed {
			continue
		}
		pts := append([]geom.Vec2(nil), g.Pts...)
		if len(pts) >= 2 {
			first, last := pts[0], pts[len(pts)-1]
			if abs(first.X-last.X) <= eps.EqDist && abs(first.Y-last.Y) <= eps.EqDist {
				pts = pts[:len(pts)-1]
			}
		}
		if len(pts) < 3 {
			return nil, reason.New(reason.FaceNoClosedLoop)
		}
		for _, p := range pts {
			if !p.Finite() {
				return nil, reason.New(reason.GeomInvalidNumeric)
			}
		}
		if i, j, ok := selfIntersects(pts, eps); ok {
			return nil, reason.New(reason.FaceSelfIntersection).
				WithDebug("seg_i", i).WithDebug("seg_j", j)
		}
		loops = append(loops, loopInfo{
			pts:     pts,
			areaAbs: abs(SignedArea(pts)),
			parent:  -1,
			depth:   0,
		})
	}

	if len(loops) == 0 {
		return nil, reason.New(reason.FaceNoClosedLoop)
	}

	for i := range loops {
		sample := loops[i].pts[0]
		var parents []int
		for j := range loops {
			if i == j {
				continue
			}
			switch pointInPoly(sample, loops[j].pts, eps) {
			case pipBoundary:
				return nil, reason.New(reason.FaceAmbiguousLoop).
					WithDebug("loop_i", i).WithDebug("loop_j", j)
			case pipIn:
				parents = append(parents, j)
			}
		}
		sort.Slice(parents, func(a, b int) bool {
			return loops[parents[a]].areaAbs < loops[parents[b]].areaAbs
		})
		if len(parents) > 0 {
			loops[i].parent = parents[0]
		}
	}

	for i := range loops {
		computeDepth(i, loops)
	}

	var faces []model.Polygon2D
	for i := range loops {
		if loops[i].depth%2 != 0 {
			continue
		}
		outer := append([]geom.Vec2(nil), loops[i].pts...)
		ensureCCW(outer)

		var holes [][]geom.Vec2
		for j := range loops {
			if loops[j].parent == i && loops[j].depth%2 == 1 {
				h := append([]geom.Vec2(nil), loops[j].pts...)
				ensureCW(h)
				holes = append(holes, h)
			}
		}
		faces = append(faces, model.Polygon2D{Outer: outer, Holes: holes})
	}

	sort.Slice(faces, func(a, b int) bool {
		return abs(SignedArea(faces[a].Outer)) > abs(SignedArea(faces[b].Outer))
	})

	return faces, nil
}

// computeDepth memoizes loops[i].depth via its parent chain. A loop with
// no parent stays at depth 0: root and unset collapse to the same value.
func computeDepth(i int, loops []loopInfo) int {
	if loops[i].depth != 0 || loops[i].parent == -1 {
		return loops[i].depth
	}
	loops[i].depth = computeDepth(loops[i].parent, loops) + 1
	return loops[i].depth
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
