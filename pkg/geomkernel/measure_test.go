package geomkernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(side float64) Polygon {
	return Polygon{
		{X: 0, Y: 0},
		{X: side, Y: 0},
		{X: side, Y: side},
		{X: 0, Y: side},
	}
}

func TestBBoxOf(t *testing.T) {
	poly := Polygon{{X: -1, Y: 2}, {X: 5, Y: -3}, {X: 2, Y: 8}}
	bb, err := BBoxOf(poly)
	require.NoError(t, err)
	assert.Equal(t, BBox{MinX: -1, MinY: -3, MaxX: 5, MaxY: 8}, bb)
}

func TestBBoxOf_InvalidPolygon(t *testing.T) {
	_, err := BBoxOf(nil)
	require.Error(t, err)
	var gerr *GeometryError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, InvalidPolygon, gerr.Kind)
}

func TestArea_Square(t *testing.T) {
	assert.InDelta(t, 100.0, Area(square(10)), 1e-9)
}

func TestArea_OrientationInvariant(t *testing.T) {
	ccw := square(4)
	cw := Polygon{ccw[3], ccw[2], ccw[1], ccw[0]}
	assert.InDelta(t, Area(ccw), Area(cw), 1e-9)
}

func TestArea_Degenerate(t *testing.T) {
	assert.Equal(t, 0.0, Area(Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}}))
	assert.Equal(t, 0.0, Area(Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}))
}

func TestCentroid(t *testing.T) {
	c := Centroid(square(10))
	assert.InDelta(t, 5.0, c.X, 1e-9)
	assert.InDelta(t, 5.0, c.Y, 1e-9)
}

func TestBBox_Intersects(t *testing.T) {
	a := BBox{MinX: 0, MinY: 0, MaxX: 5, MaxY: 5}
	b := BBox{MinX: 4, MinY: 4, MaxX: 10, MaxY: 10}
	c := BBox{MinX: 6, MinY: 6, MaxX: 10, MaxY: 10}
	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c))
}

func TestBBox_Inflate(t *testing.T) {
	b := BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	inflated := b.Inflate(2)
	assert.Equal(t, BBox{MinX: -2, MinY: -2, MaxX: 12, MaxY: 12}, inflated)
}
