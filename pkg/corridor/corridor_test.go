package corridor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archiplan/floorplan/pkg/floorplan"
	"github.com/archiplan/floorplan/pkg/geomkernel"
)

func openRoom(w, h float64) []geomkernel.Polygon {
	return []geomkernel.Polygon{
		{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}},
	}
}

func TestBuildNavGrid_OpenRoomIsWalkable(t *testing.T) {
	cfg := floorplan.DefaultCorridorCfg()
	grid, err := BuildNavGrid(openRoom(20, 15), nil, cfg)
	require.NoError(t, err)
	assert.True(t, grid.Walkable(grid.Cols/2, grid.Rows/2))
}

func TestBuildNavGrid_EmptyAllowedRegionErrors(t *testing.T) {
	cfg := floorplan.DefaultCorridorCfg()
	_, err := BuildNavGrid(nil, nil, cfg)
	require.Error(t, err)
}

func TestAStar_FindsPathAcrossOpenRoom(t *testing.T) {
	cfg := floorplan.DefaultCorridorCfg()
	grid, err := BuildNavGrid(openRoom(20, 15), nil, cfg)
	require.NoError(t, err)

	startCol, startRow, ok := grid.NearestWalkable(geomkernel.Point{X: 1, Y: 7.5})
	require.True(t, ok)
	goalCol, goalRow, ok := grid.NearestWalkable(geomkernel.Point{X: 19, Y: 7.5})
	require.True(t, ok)

	path, err := AStar(context.Background(), grid, gridCell{startCol, startRow}, gridCell{goalCol, goalRow}, cfg)
	require.NoError(t, err)
	assert.Greater(t, len(path), 1)
}

func TestExtrude_ProducesNonZeroAreaPolygon(t *testing.T) {
	centerline := []geomkernel.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	poly := Extrude(centerline, 2.0)
	require.Len(t, poly, 4)
	assert.InDelta(t, 20.0, geomkernel.Area(poly), 1e-6)
}

func TestSmoothPath_PreservesEndpoints(t *testing.T) {
	allowed := openRoom(20, 15)
	path := []geomkernel.Point{{X: 1, Y: 7.5}, {X: 5, Y: 10}, {X: 10, Y: 5}, {X: 19, Y: 7.5}}
	smoothed := SmoothPath(path, allowed, 3)
	require.Len(t, smoothed, len(path))
	assert.Equal(t, path[0], smoothed[0])
	assert.Equal(t, path[len(path)-1], smoothed[len(smoothed)-1])
}

func TestBuild_ConnectsEntranceToIlot(t *testing.T) {
	allowed := openRoom(20, 15)
	plan := &floorplan.FloorPlan{Entrances: []floorplan.Point{{X: 0.5, Y: 7.5}}}
	ilots := []floorplan.Ilot{
		{ID: "ilot-000", Center: floorplan.Point{X: 15, Y: 7.5}, Width: 3, Height: 2, Valid: true,
			Polygon: floorplan.MakeIlotPolygon(floorplan.Point{X: 15, Y: 7.5}, 3, 2)},
	}
	cfg := floorplan.DefaultCorridorCfg()

	// Besides the entrance and the ilot, all five circulation anchors land on
	// walkable cells of this open room: 7 key points, so the MST has 6 edges.
	corridors, stats, err := Build(context.Background(), allowed, plan, ilots, cfg)
	require.NoError(t, err)
	require.Len(t, corridors, 6)
	assert.Equal(t, 6, stats.PathsFound)
	assert.Greater(t, corridors[0].Area, 0.0)
}

func TestBuild_NoKeyPointsYieldsZeroCorridors(t *testing.T) {
	allowed := openRoom(20, 15)
	plan := &floorplan.FloorPlan{}
	cfg := floorplan.DefaultCorridorCfg()

	corridors, _, err := Build(context.Background(), allowed, plan, nil, cfg)
	require.NoError(t, err)
	assert.Empty(t, corridors)
}
