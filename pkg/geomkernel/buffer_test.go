package geomkernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferRobust_ZeroDistance(t *testing.T) {
	poly := square(10)
	result, err := BufferRobust(poly, 0)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.InDelta(t, Area(poly), Area(result[0]), 1e-6)
}

func TestBufferRobust_OutwardIncreasesArea(t *testing.T) {
	poly := square(10)
	result, err := BufferRobust(poly, 1.0)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Greater(t, Area(result[0]), Area(poly))
}

func TestBufferRobust_InwardDecreasesArea(t *testing.T) {
	poly := square(10)
	result, err := BufferRobust(poly, -1.0)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Less(t, Area(result[0]), Area(poly))
}

func TestBufferRobust_ConvexContainsOriginal(t *testing.T) {
	poly := square(10)
	result, err := BufferRobust(poly, 2.0)
	require.NoError(t, err)
	require.Len(t, result, 1)
	for _, p := range poly {
		assert.True(t, PointInPolygon(p, result[0]) || onBoundary(p, result[0]))
	}
}

func TestBufferFallback_OutwardIncreasesArea(t *testing.T) {
	poly := square(10)
	result, err := BufferFallback(poly, 1.0)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Greater(t, Area(result[0]), Area(poly))
}

func TestBufferRobust_InvalidPolygon(t *testing.T) {
	_, err := BufferRobust(Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}, 1.0)
	require.Error(t, err)
}

// onBoundary is a loose tolerance check used only to accommodate the
// round-join approximation at corners.
func onBoundary(p Point, poly Polygon) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		if distToSegment(p, a, b) < 1e-2 {
			return true
		}
	}
	return false
}

func distToSegment(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		dxp, dyp := p.X-a.X, p.Y-a.Y
		return dxp*dxp + dyp*dyp
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	projX, projY := a.X+t*dx, a.Y+t*dy
	ddx, ddy := p.X-projX, p.Y-projY
	return ddx*ddx + ddy*ddy
}
