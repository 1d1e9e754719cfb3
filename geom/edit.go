package geom

import (
	"math"

	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/reason"
)

// FilletLines replaces the corner where a and b meet with a tangent arc
// of the given radius, returning the two trimmed lines and the
// connecting arc in meeting order. a and b must share an
// endpoint (within eps.SnapDist); radius is rejected if it would require
// trimming past either line's far endpoint.
func FilletLines(a, b Geom2D, radius float64, eps epsilon.Policy) (trimmedA, arc, trimmedB Geom2D, err *reason.Reason) {
	if a.Kind != KindLine || b.Kind != KindLine {
		return Geom2D{}, Geom2D{}, Geom2D{}, reason.New(reason.EditInvalidNumeric).WithDebug("reason", "fillet_requires_lines")
	}
	if !epsilon.IsFinite(radius) || radius <= 0 {
		return Geom2D{}, Geom2D{}, Geom2D{}, reason.New(reason.EditInvalidNumeric)
	}

	corner, aFar, bFar, ok := sharedEndpoint(a, b, eps.SnapDist)
	if !ok {
		return Geom2D{}, Geom2D{}, Geom2D{}, reason.New(reason.GeomNoIntersection).WithDebug("reason", "no_shared_endpoint")
	}

	dirA := corner.sub(aFar)
	lenA := dirA.len()
	dirB := corner.sub(bFar)
	lenB := dirB.len()
	if lenA == 0 || lenB == 0 {
		return Geom2D{}, Geom2D{}, Geom2D{}, reason.New(reason.GeomDegenerate)
	}
	ua := dirA.mul(1 / lenA)
	ub := dirB.mul(1 / lenB)

	cosTheta := ua.dot(ub)
	cosTheta = clamp(cosTheta, -1, 1)
	theta := math.Acos(cosTheta)
	if theta <= eps.IntersectTol || theta >= math.Pi-eps.IntersectTol {
		return Geom2D{}, Geom2D{}, Geom2D{}, reason.New(reason.EditFilletRadiusTooLarge).
			WithDebug("reason", "degenerate_corner_angle")
	}

	tanDist := radius / math.Tan(theta/2)
	if tanDist >= lenA || tanDist >= lenB {
		return Geom2D{}, Geom2D{}, Geom2D{}, reason.New(reason.EditFilletRadiusTooLarge).
			WithDebug("tan_dist", tanDist)
	}

	tangentA := corner.sub(ua.mul(tanDist))
	tangentB := corner.sub(ub.mul(tanDist))

	bisector := ua.add(ub)
	blen := bisector.len()
	if blen == 0 {
		return Geom2D{}, Geom2D{}, Geom2D{}, reason.New(reason.EditFilletRadiusTooLarge).
			WithDebug("reason", "opposing_directions")
	}
	bisector = bisector.mul(1 / blen)
	centerDist := radius / math.Sin(theta/2)
	center := corner.sub(bisector.mul(centerDist))

	startAngle := math.Atan2(tangentA.Y-center.Y, tangentA.X-center.X)
	endAngle := math.Atan2(tangentB.Y-center.Y, tangentB.X-center.X)
	ccw := isCCWTurn(aFar, corner, bFar)

	trimmedALine := Line(aFar, tangentA)
	trimmedBLine := Line(tangentB, bFar)
	arcGeom := NormalizedArc(center, radius, startAngle, endAngle, ccw)

	return trimmedALine, arcGeom, trimmedBLine, nil
}

// ChamferLines replaces the corner where a and b meet with a straight
// cut at the given distance along each line.
func ChamferLines(a, b Geom2D, d float64, eps epsilon.Policy) (trimmedA, chamfer, trimmedB Geom2D, err *reason.Reason) {
	if a.Kind != KindLine || b.Kind != KindLine {
		return Geom2D{}, Geom2D{}, Geom2D{}, reason.New(reason.EditInvalidNumeric).WithDebug("reason", "chamfer_requires_lines")
	}
	if !epsilon.IsFinite(d) || d <= 0 {
		return Geom2D{}, Geom2D{}, Geom2D{}, reason.New(reason.EditInvalidNumeric)
	}

	corner, aFar, bFar, ok := sharedEndpoint(a, b, eps.SnapDist)
	if !ok {
		return Geom2D{}, Geom2D{}, Geom2D{}, reason.New(reason.GeomNoIntersection).WithDebug("reason", "no_shared_endpoint")
	}

	dirA := corner.sub(aFar)
	lenA := dirA.len()
	dirB := corner.sub(bFar)
	lenB := dirB.len()
	if lenA == 0 || lenB == 0 {
		return Geom2D{}, Geom2D{}, Geom2D{}, reason.New(reason.GeomDegenerate)
	}
	if d >= lenA || d >= lenB {
		return Geom2D{}, Geom2D{}, Geom2D{}, reason.New(reason.EditChamferDistanceTooLarge).WithDebug("distance", d)
	}

	cutA := corner.sub(dirA.mul(d / lenA))
	cutB := corner.sub(dirB.mul(d / lenB))

	return Line(aFar, cutA), Line(cutA, cutB), Line(cutB, bFar), nil
}

// MirrorGeom reflects g across the infinite line through axisA-axisB.
func MirrorGeom(g Geom2D, axisA, axisB Vec2, eps epsilon.Policy) (Geom2D, *reason.Reason) {
	if err := g.Validate(eps); err != nil {
		return Geom2D{}, err
	}
	if dist(axisA, axisB) <= eps.EqDist {
		return Geom2D{}, reason.New(reason.EditMirrorAxisInvalid)
	}
	reflect := func(p Vec2) Vec2 { return reflectPoint(p, axisA, axisB) }

	switch g.Kind {
	case KindLine:
		return Line(reflect(g.A), reflect(g.B)), nil
	case KindCircle:
		return Circle(reflect(g.C), g.R), nil
	case KindArc:
		rc := reflect(g.C)
		startPt := reflect(Vec2{g.C.X + g.R*math.Cos(g.StartAngle), g.C.Y + g.R*math.Sin(g.StartAngle)})
		endPt := reflect(Vec2{g.C.X + g.R*math.Cos(g.EndAngle), g.C.Y + g.R*math.Sin(g.EndAngle)})
		start := math.Atan2(startPt.Y-rc.Y, startPt.X-rc.X)
		end := math.Atan2(endPt.Y-rc.Y, endPt.X-rc.X)
		// mirroring flips chirality: the reflected start still leads to the
		// reflected end, but in the opposite winding direction
		return NormalizedArc(rc, g.R, start, end, !g.CCW), nil
	case KindPolyline:
		pts := make([]Vec2, len(g.Pts))
		for i, p := range g.Pts {
			pts[i] = reflect(p)
		}
		return Polyline(pts, g.Closed), nil
	default:
		return Geom2D{}, reason.New(reason.EditInvalidNumeric)
	}
}

func reflectPoint(p, axisA, axisB Vec2) Vec2 {
	d := axisB.sub(axisA)
	n := d.len()
	if n == 0 {
		return p
	}
	u := d.mul(1 / n)
	ap := p.sub(axisA)
	proj := u.mul(ap.dot(u))
	perp := ap.sub(proj)
	return axisA.add(proj).sub(perp)
}

// sharedEndpoint finds the endpoint a and b have in common (within tol)
// and returns it plus each line's other, "far" endpoint.
func sharedEndpoint(a, b Geom2D, tol float64) (corner, aFar, bFar Vec2, ok bool) {
	pairs := []struct{ corner, aFar, bFar Vec2 }{
		{a.B, a.A, b.B}, // a.B == b.A, so b's far point is b.B
		{a.B, a.A, b.A}, // a.B == b.B, so b's far point is b.A
		{a.A, a.B, b.B}, // a.A == b.A, so b's far point is b.B
		{a.A, a.B, b.A}, // a.A == b.B, so b's far point is b.A
	}
	candidates := [][2]Vec2{{a.B, b.A}, {a.B, b.B}, {a.A, b.A}, {a.A, b.B}}
	for i, c := range candidates {
		if dist(c[0], c[1]) <= tol {
			return pairs[i].corner, pairs[i].aFar, pairs[i].bFar, true
		}
	}
	return Vec2{}, Vec2{}, Vec2{}, false
}

func isCCWTurn(p0, p1, p2 Vec2) bool {
	v1 := p1.sub(p0)
	v2 := p2.sub(p1)
	return v1.cross(v2) >= 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
