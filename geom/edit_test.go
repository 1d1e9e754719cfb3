package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/geom"
	"github.com/teru1991/craftcad/reason"
)

func TestFilletLinesRightAngleCorner(t *testing.T) {
	t.Parallel()
	eps := epsilon.Default()

	a := geom.Line(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 10, Y: 0})
	b := geom.Line(geom.Vec2{X: 10, Y: 0}, geom.Vec2{X: 10, Y: 10})

	trimmedA, arc, trimmedB, err := geom.FilletLines(a, b, 2, eps)
	require.Nil(t, err)
	require.Equal(t, geom.KindArc, arc.Kind)
	require.InDelta(t, 2, arc.R, 1e-9)
	require.InDelta(t, 8, trimmedA.B.X, 1e-6)
	require.InDelta(t, 10, trimmedB.A.X, 1e-6)
	require.InDelta(t, 2, trimmedB.A.Y, 1e-6)
}

func TestFilletLinesRadiusTooLarge(t *testing.T) {
	t.Parallel()
	eps := epsilon.Default()

	a := geom.Line(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 2, Y: 0})
	b := geom.Line(geom.Vec2{X: 2, Y: 0}, geom.Vec2{X: 2, Y: 2})

	_, _, _, err := geom.FilletLines(a, b, 100, eps)
	require.NotNil(t, err)
	require.Equal(t, reason.EditFilletRadiusTooLarge, err.Code)
}

func TestChamferLinesRightAngleCorner(t *testing.T) {
	t.Parallel()
	eps := epsilon.Default()

	a := geom.Line(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 10, Y: 0})
	b := geom.Line(geom.Vec2{X: 10, Y: 0}, geom.Vec2{X: 10, Y: 10})

	trimmedA, chamfer, trimmedB, err := geom.ChamferLines(a, b, 2, eps)
	require.Nil(t, err)
	require.Equal(t, geom.KindLine, chamfer.Kind)
	require.InDelta(t, 8, trimmedA.B.X, 1e-9)
	require.InDelta(t, 0, trimmedA.B.Y, 1e-9)
	require.InDelta(t, 10, trimmedB.A.X, 1e-9)
	require.InDelta(t, 2, trimmedB.A.Y, 1e-9)
}

func TestChamferDistanceTooLarge(t *testing.T) {
	t.Parallel()
	eps := epsilon.Default()

	a := geom.Line(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 2, Y: 0})
	b := geom.Line(geom.Vec2{X: 2, Y: 0}, geom.Vec2{X: 2, Y: 2})

	_, _, _, err := geom.ChamferLines(a, b, 50, eps)
	require.NotNil(t, err)
	require.Equal(t, reason.EditChamferDistanceTooLarge, err.Code)
}

func TestMirrorGeomAcrossYAxis(t *testing.T) {
	t.Parallel()
	eps := epsilon.Default()

	line := geom.Line(geom.Vec2{X: 1, Y: 1}, geom.Vec2{X: 5, Y: 5})
	mirrored, err := geom.MirrorGeom(line, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 0, Y: 1}, eps)
	require.Nil(t, err)
	require.InDelta(t, -1, mirrored.A.X, 1e-9)
	require.InDelta(t, 1, mirrored.A.Y, 1e-9)
	require.InDelta(t, -5, mirrored.B.X, 1e-9)
	require.InDelta(t, 5, mirrored.B.Y, 1e-9)
}

func TestMirrorGeomInvalidAxis(t *testing.T) {
	t.Parallel()
	eps := epsilon.Default()

	line := geom.Line(geom.Vec2{X: 1, Y: 1}, geom.Vec2{X: 5, Y: 5})
	_, err := geom.MirrorGeom(line, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 0, Y: 0}, eps)
	require.NotNil(t, err)
	require.Equal(t, reason.EditMirrorAxisInvalid, err.Code)
}

func TestMirrorGeomCircleKeepsRadius(t *testing.T) {
	t.Parallel()
	eps := epsilon.Default()

	c := geom.Circle(geom.Vec2{X: 3, Y: 4}, 5)
	mirrored, err := geom.MirrorGeom(c, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 1, Y: 0}, eps)
	require.Nil(t, err)
	require.InDelta(t, 5, mirrored.R, 1e-9)
	require.InDelta(t, 3, mirrored.C.X, 1e-9)
	require.InDelta(t, -4, mirrored.C.Y, 1e-9)
}

func TestFilletArcSweepIsPositive(t *testing.T) {
	t.Parallel()
	eps := epsilon.Default()

	a := geom.Line(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 10, Y: 0})
	b := geom.Line(geom.Vec2{X: 10, Y: 0}, geom.Vec2{X: 10, Y: 10})
	_, arc, _, err := geom.FilletLines(a, b, 2, eps)
	require.Nil(t, err)
	sweep := math.Abs(arc.EndAngle - arc.StartAngle)
	require.Greater(t, sweep, 0.0)
}

func TestFilletLinesDisjointFailsNoIntersection(t *testing.T) {
	t.Parallel()
	eps := epsilon.Default()

	a := geom.Line(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 10, Y: 0})
	b := geom.Line(geom.Vec2{X: 50, Y: 50}, geom.Vec2{X: 60, Y: 50})

	_, _, _, err := geom.FilletLines(a, b, 2, eps)
	require.NotNil(t, err)
	require.Equal(t, reason.GeomNoIntersection, err.Code)

	_, _, _, err = geom.ChamferLines(a, b, 1, eps)
	require.NotNil(t, err)
	require.Equal(t, reason.GeomNoIntersection, err.Code)
}
