package face

import "github.com/teru1991/craftcad/geom"

// SignedArea returns the shoelace signed area of a closed ring. Positive is
// CCW, negative is CW, matching the convention used throughout this
// package.
func SignedArea(pts []geom.Vec2) float64 {
	if len(pts) < 3 {
		return 0
	}
	var a float64
	n := len(pts)
	for i := 0; i < n; i++ {
		p := pts[i]
		q := pts[(i+1)%n]
		a += p.X*q.Y - q.X*p.Y
	}
	return 0.5 * a
}

// ensureCCW reverses pts in place if it is wound clockwise.
func ensureCCW(pts []geom.Vec2) {
	if SignedArea(pts) < 0 {
		reverse(pts)
	}
}

// ensureCW reverses pts in place if it is wound counter-clockwise.
func ensureCW(pts []geom.Vec2) {
	if SignedArea(pts) > 0 {
		reverse(pts)
	}
}

func reverse(pts []geom.Vec2) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
