package face

import (
	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/geom"
)

type pip int

const (
	pipIn pip = iota
	pipOut
	pipBoundary
)

func orient(a, b, c geom.Vec2) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	acx, acy := c.X-a.X, c.Y-a.Y
	return abx*acy - aby*acx
}

func onSegment(a, b, p geom.Vec2, eps epsilon.Policy) bool {
	if abs(orient(a, b, p)) > eps.IntersectTol {
		return false
	}
	minX, maxX := minF(a.X, b.X)-eps.EqDist, maxF(a.X, b.X)+eps.EqDist
	minY, maxY := minF(a.Y, b.Y)-eps.EqDist, maxF(a.Y, b.Y)+eps.EqDist
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// segIntersect reports whether segments a1-a2 and b1-b2 cross, including
// touching/collinear-overlap cases.
func segIntersect(a1, a2, b1, b2 geom.Vec2, eps epsilon.Policy) bool {
	o1 := orient(a1, a2, b1)
	o2 := orient(a1, a2, b2)
	o3 := orient(b1, b2, a1)
	o4 := orient(b1, b2, a2)

	if ((o1 > eps.IntersectTol && o2 < -eps.IntersectTol) || (o1 < -eps.IntersectTol && o2 > eps.IntersectTol)) &&
		((o3 > eps.IntersectTol && o4 < -eps.IntersectTol) || (o3 < -eps.IntersectTol && o4 > eps.IntersectTol)) {
		return true
	}

	return onSegment(a1, a2, b1, eps) || onSegment(a1, a2, b2, eps) ||
		onSegment(b1, b2, a1, eps) || onSegment(b1, b2, a2, eps)
}

// selfIntersects returns the first pair of non-adjacent segment indices
// that cross, skipping segments that share an endpoint.
func selfIntersects(pts []geom.Vec2, eps epsilon.Policy) (int, int, bool) {
	n := len(pts)
	for i := 0; i < n; i++ {
		i2 := (i + 1) % n
		for j := i + 1; j < n; j++ {
			j2 := (j + 1) % n
			if i == j || i2 == j || j2 == i {
				continue
			}
			if i == 0 && j2 == 0 {
				continue
			}
			if segIntersect(pts[i], pts[i2], pts[j], pts[j2], eps) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// pointInPoly tests whether p is inside, outside, or on the boundary of
// the closed ring pts, using ray casting.
func pointInPoly(p geom.Vec2, pts []geom.Vec2, eps epsilon.Policy) pip {
	inside := false
	n := len(pts)
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		if onSegment(a, b, p, eps) {
			return pipBoundary
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			denom := b.Y - a.Y
			if abs(denom) <= eps.EqDist {
				continue
			}
			xAtY := (b.X-a.X)*(p.Y-a.Y)/denom + a.X
			if p.X < xAtY {
				inside = !inside
			}
		}
	}
	if inside {
		return pipIn
	}
	return pipOut
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
