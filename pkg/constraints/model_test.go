package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archiplan/floorplan/pkg/floorplan"
	"github.com/archiplan/floorplan/pkg/geomkernel"
)

func squareBoundary(side float64) floorplan.Polygon {
	return floorplan.Polygon{
		{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side},
	}
}

func TestResolveBoundary_Explicit(t *testing.T) {
	plan := &floorplan.FloorPlan{Boundary: squareBoundary(10)}
	b, err := ResolveBoundary(plan)
	require.NoError(t, err)
	assert.Len(t, b, 4)
}

func TestResolveBoundary_FromBounds(t *testing.T) {
	plan := &floorplan.FloorPlan{Bounds: &floorplan.Rect{MinX: 0, MinY: 0, MaxX: 5, MaxY: 5}}
	b, err := ResolveBoundary(plan)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, geomkernel.Area(b), 1e-9)
}

func TestResolveBoundary_FromWallHull(t *testing.T) {
	plan := &floorplan.FloorPlan{
		Walls: []floorplan.Segment{
			{A: floorplan.Point{X: 0, Y: 0}, B: floorplan.Point{X: 10, Y: 0}},
			{A: floorplan.Point{X: 10, Y: 0}, B: floorplan.Point{X: 10, Y: 10}},
			{A: floorplan.Point{X: 10, Y: 10}, B: floorplan.Point{X: 0, Y: 10}},
			{A: floorplan.Point{X: 0, Y: 10}, B: floorplan.Point{X: 0, Y: 0}},
		},
	}
	b, err := ResolveBoundary(plan)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, geomkernel.Area(b), 1e-6)
}

func TestResolveBoundary_MissingEverything(t *testing.T) {
	plan := &floorplan.FloorPlan{}
	_, err := ResolveBoundary(plan)
	require.Error(t, err)
	coreErr, ok := err.(*floorplan.CoreError)
	require.True(t, ok)
	assert.Equal(t, floorplan.MissingBoundary, coreErr.Kind)
}

func TestBuild_EmptyPlanAllowsWholeBoundary(t *testing.T) {
	plan := &floorplan.FloorPlan{Boundary: squareBoundary(20)}
	k := geomkernel.NewKernel()
	cfg := floorplan.DefaultPlacementCfg()

	model, err := Build(k, plan, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, model.AllowedRegion)

	total := 0.0
	for _, p := range model.AllowedRegion {
		total += geomkernel.Area(p)
	}
	assert.InDelta(t, 400.0, total, 1e-3)
}

func TestBuild_DoorClearanceCarvesHole(t *testing.T) {
	plan := &floorplan.FloorPlan{
		Boundary: squareBoundary(20),
		Doors:    []floorplan.Door{{Position: floorplan.Point{X: 10, Y: 10}}},
	}
	k := geomkernel.NewKernel()
	cfg := floorplan.DefaultPlacementCfg()

	model, err := Build(k, plan, cfg)
	require.NoError(t, err)

	total := 0.0
	for _, p := range model.AllowedRegion {
		total += geomkernel.Area(p)
	}
	assert.Less(t, total, 400.0)
}

func TestBuild_FullyForbiddenYieldsNoFeasibleSpace(t *testing.T) {
	plan := &floorplan.FloorPlan{
		Boundary: squareBoundary(2),
		RedZones: []floorplan.Polygon{squareBoundary(10)},
	}
	k := geomkernel.NewKernel()
	cfg := floorplan.DefaultPlacementCfg()

	_, err := Build(k, plan, cfg)
	require.Error(t, err)
	coreErr, ok := err.(*floorplan.CoreError)
	require.True(t, ok)
	assert.Equal(t, floorplan.NoFeasibleSpace, coreErr.Kind)
}

func TestBuild_WallsCarveForbiddenStrip(t *testing.T) {
	plan := &floorplan.FloorPlan{
		Boundary: squareBoundary(20),
		Walls: []floorplan.Segment{
			{A: floorplan.Point{X: 0, Y: 10}, B: floorplan.Point{X: 20, Y: 10}, Thickness: 0.2},
		},
	}
	k := geomkernel.NewKernel()
	cfg := floorplan.DefaultPlacementCfg()

	model, err := Build(k, plan, cfg)
	require.NoError(t, err)

	total := 0.0
	for _, p := range model.AllowedRegion {
		total += geomkernel.Area(p)
	}
	assert.Less(t, total, 400.0)
}
