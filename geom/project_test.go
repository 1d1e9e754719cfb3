package geom_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/geom"
)

func TestProjectPointOnLineClampsToEndpoints(t *testing.T) {
	t.Parallel()
	eps := epsilon.Default()

	line := geom.Line(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 10, Y: 0})

	hit, err := geom.ProjectPoint(line, geom.Vec2{X: 5, Y: 3}, eps)
	require.Nil(t, err)
	require.InDelta(t, 5, hit.Point.X, 1e-9)
	require.InDelta(t, 0.5, hit.TGlobal, 1e-9)
	require.InDelta(t, 3, hit.Dist, 1e-9)

	hit, err = geom.ProjectPoint(line, geom.Vec2{X: -5, Y: 0}, eps)
	require.Nil(t, err)
	require.InDelta(t, 0, hit.TGlobal, 1e-9)

	hit, err = geom.ProjectPoint(line, geom.Vec2{X: 15, Y: 0}, eps)
	require.Nil(t, err)
	require.InDelta(t, 1, hit.TGlobal, 1e-9)
}

func TestProjectPointOnPolylineGlobalParameter(t *testing.T) {
	t.Parallel()
	eps := epsilon.Default()

	poly := geom.Polyline([]geom.Vec2{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10},
	}, false)

	hit, err := geom.ProjectPoint(poly, geom.Vec2{X: 10, Y: 5}, eps)
	require.Nil(t, err)
	// second segment spans global t in [0.5, 1.0]; midpoint of it is t=0.75
	require.InDelta(t, 0.75, hit.TGlobal, 1e-9)
}

func TestProjectPointOnCircle(t *testing.T) {
	t.Parallel()
	eps := epsilon.Default()

	c := geom.Circle(geom.Vec2{X: 0, Y: 0}, 5)
	hit, err := geom.ProjectPoint(c, geom.Vec2{X: 10, Y: 0}, eps)
	require.Nil(t, err)
	require.InDelta(t, 5, hit.Point.X, 1e-9)
	require.InDelta(t, 0, hit.Point.Y, 1e-9)
	require.InDelta(t, 5, hit.Dist, 1e-9)
}
