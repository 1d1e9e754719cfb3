package geom

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teru1991/craftcad/epsilon"
)

// Offsetting by +d then -d must land back on the original vertices to
// within 10*EqDist, whenever both offsets are supported and
// non-self-intersecting.
func TestOffsetRoundTripReturnsToOriginal(t *testing.T) {
	eps := epsilon.Default()
	g := Polyline([]Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 10}}, false)

	out, r := Offset(g, 2, eps)
	require.Nil(t, r)
	back, r := Offset(out, -2, eps)
	require.Nil(t, r)

	require.Len(t, back.Pts, len(g.Pts))
	for i, p := range g.Pts {
		require.InDelta(t, p.X, back.Pts[i].X, 10*eps.EqDist)
		require.InDelta(t, p.Y, back.Pts[i].Y, 10*eps.EqDist)
	}
}

// Projecting onto a reversed polyline finds the same nearest point at the
// mirrored parameter t' = 1 - t.
func TestProjectPointOnReversedPolylineMirrorsParameter(t *testing.T) {
	eps := epsilon.Default()
	pts := []Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	fwd := Polyline(pts, false)
	rev := Polyline([]Vec2{pts[2], pts[1], pts[0]}, false)

	p := Vec2{X: 4, Y: 3}
	hitF, r := ProjectPoint(fwd, p, eps)
	require.Nil(t, r)
	hitR, r := ProjectPoint(rev, p, eps)
	require.Nil(t, r)

	require.InDelta(t, hitF.Point.X, hitR.Point.X, eps.EqDist)
	require.InDelta(t, hitF.Point.Y, hitR.Point.Y, eps.EqDist)
	require.InDelta(t, hitF.Dist, hitR.Dist, eps.EqDist)
	require.InDelta(t, 1-hitF.TGlobal, hitR.TGlobal, eps.EqDist)
}

// Intersect must report the escalation in debug.info when only a widened
// tolerance finds the hit, and never on a clean first attempt.
func TestIntersectCleanHitCarriesNoFallbackNote(t *testing.T) {
	eps := epsilon.Default()
	set, r := Intersect(
		Line(Vec2{X: 0, Y: 0}, Vec2{X: 10, Y: 0}),
		Line(Vec2{X: 5, Y: -5}, Vec2{X: 5, Y: 5}),
		eps,
	)
	require.Nil(t, r)
	for _, kv := range set.Debug {
		if kv.Key == "info" {
			require.NotEqual(t, "GEOM_NUMERIC_UNSTABLE_FALLBACK_USED", kv.Value)
		}
	}
}
