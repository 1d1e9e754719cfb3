package epsilon_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teru1991/craftcad/epsilon"
)

func TestNormalizeAngleRange(t *testing.T) {
	require.InDelta(t, math.Pi, epsilon.NormalizeAngle(math.Pi), 1e-12)
	require.InDelta(t, -math.Pi+0.1, epsilon.NormalizeAngle(math.Pi+0.1), 1e-9)
	require.InDelta(t, 0, epsilon.NormalizeAngle(2*math.Pi), 1e-9)
}

func TestArcSweepCCWAndCW(t *testing.T) {
	require.InDelta(t, math.Pi/2, epsilon.ArcSweep(0, math.Pi/2, true), 1e-9)
	require.InDelta(t, 3*math.Pi/2, epsilon.ArcSweep(0, math.Pi/2, false), 1e-9)
}

func TestInArcRangeBoundary(t *testing.T) {
	require.True(t, epsilon.InArcRange(math.Pi/4, 0, math.Pi/2, true, 1e-6))
	require.False(t, epsilon.InArcRange(math.Pi, 0, math.Pi/2, true, 1e-6))
	require.True(t, epsilon.InArcRange(math.Pi/2+1e-9, 0, math.Pi/2, true, 1e-6))
}

func TestDedupeCollapsesNearbyPoints(t *testing.T) {
	pts := []epsilon.Point2{
		{X: 1, Y: 1},
		{X: 0, Y: 0},
		{X: 0 + 1e-9, Y: 0},
	}
	out := epsilon.Dedupe(pts, 1e-6)
	require.Len(t, out, 2)
	require.Equal(t, epsilon.Point2{X: 0, Y: 0}, out[0])
	require.Equal(t, epsilon.Point2{X: 1, Y: 1}, out[1])
}

func TestTotalCmpOrdersNegativeBeforePositive(t *testing.T) {
	require.Equal(t, -1, epsilon.TotalCmp(-1, 1))
	require.Equal(t, 0, epsilon.TotalCmp(2.5, 2.5))
	require.Equal(t, 1, epsilon.TotalCmp(0.1, -0.1))
}

func TestPolicyDefaults(t *testing.T) {
	p := epsilon.Default()
	require.True(t, p.Validate())
	require.Equal(t, 1e-6, p.EqDist)
	require.Equal(t, 1e-2, p.SnapDist)

	esc := p.Escalated(2)
	require.InDelta(t, 1e-4, esc.IntersectTol, 1e-12)
}
