package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/archiplan/floorplan/pkg/floorplan"
	"github.com/archiplan/floorplan/pkg/geomkernel"
)

func squareAllowed(side float64) []geomkernel.Polygon {
	return []geomkernel.Polygon{
		{{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side}},
	}
}

func TestCheckIlotContainment_PassesWhenInside(t *testing.T) {
	ilots := []floorplan.Ilot{
		{ID: "ilot-000", Polygon: floorplan.MakeIlotPolygon(floorplan.Point{X: 5, Y: 5}, 2, 2)},
	}
	result := CheckIlotContainment(ilots, squareAllowed(20))
	assert.True(t, result.Satisfied)
}

func TestCheckIlotContainment_FailsWhenOutside(t *testing.T) {
	ilots := []floorplan.Ilot{
		{ID: "ilot-000", Polygon: floorplan.MakeIlotPolygon(floorplan.Point{X: 25, Y: 25}, 2, 2)},
	}
	result := CheckIlotContainment(ilots, squareAllowed(20))
	assert.False(t, result.Satisfied)
}

func TestCheckIlotSeparation_FailsWhenTooClose(t *testing.T) {
	ilots := []floorplan.Ilot{
		{ID: "a", Valid: true, Polygon: floorplan.MakeIlotPolygon(floorplan.Point{X: 5, Y: 5}, 2, 2)},
		{ID: "b", Valid: true, Polygon: floorplan.MakeIlotPolygon(floorplan.Point{X: 6, Y: 5}, 2, 2)},
	}
	result := CheckIlotSeparation(ilots, 2.0)
	assert.False(t, result.Satisfied)
}

func TestCheckIlotSeparation_IgnoresInvalidIlots(t *testing.T) {
	ilots := []floorplan.Ilot{
		{ID: "a", Valid: false, Polygon: floorplan.MakeIlotPolygon(floorplan.Point{X: 5, Y: 5}, 2, 2)},
		{ID: "b", Valid: false, Polygon: floorplan.MakeIlotPolygon(floorplan.Point{X: 6, Y: 5}, 2, 2)},
	}
	result := CheckIlotSeparation(ilots, 2.0)
	assert.True(t, result.Satisfied)
}

func TestCheckCorridorContainment_PassesWhenInside(t *testing.T) {
	corridors := []floorplan.Corridor{
		{ID: "c", Polygon: floorplan.Polygon{{X: 8, Y: 8}, {X: 12, Y: 8}, {X: 12, Y: 10}, {X: 8, Y: 10}}},
	}
	result := CheckCorridorContainment(corridors, squareAllowed(20), nil)
	assert.True(t, result.Satisfied)
}

func TestCheckCorridorContainment_FailsWhenOutsideAllowedRegion(t *testing.T) {
	corridors := []floorplan.Corridor{
		{ID: "c", Polygon: floorplan.Polygon{{X: 18, Y: 18}, {X: 25, Y: 18}, {X: 25, Y: 20}, {X: 18, Y: 20}}},
	}
	result := CheckCorridorContainment(corridors, squareAllowed(20), nil)
	assert.False(t, result.Satisfied)
}

func TestCheckCorridorContainment_FailsWhenOverlappingIlot(t *testing.T) {
	corridors := []floorplan.Corridor{
		{ID: "c", Polygon: floorplan.Polygon{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}}},
	}
	ilots := []floorplan.Ilot{
		{ID: "ilot-000", Valid: true, Polygon: floorplan.MakeIlotPolygon(floorplan.Point{X: 5, Y: 5}, 4, 4)},
	}
	result := CheckCorridorContainment(corridors, squareAllowed(20), ilots)
	assert.False(t, result.Satisfied)
}

func TestCheckCorridorWidth_FailsOutsideBounds(t *testing.T) {
	corridors := []floorplan.Corridor{{ID: "c", Width: 0.5}}
	result := CheckCorridorWidth(corridors, 1.5, 3.0)
	assert.False(t, result.Satisfied)
}

func TestCheckNetworkConnectivity_SkippedWhenNotRequired(t *testing.T) {
	result := CheckNetworkConnectivity(&floorplan.FloorPlan{}, nil, nil, false)
	assert.True(t, result.Satisfied)
}

func TestCheckNetworkConnectivity_FailsWhenDisconnected(t *testing.T) {
	plan := &floorplan.FloorPlan{Entrances: []floorplan.Point{{X: 0, Y: 0}}}
	ilots := []floorplan.Ilot{{ID: "ilot-000", Valid: true}}
	result := CheckNetworkConnectivity(plan, ilots, nil, true)
	assert.False(t, result.Satisfied)
}
