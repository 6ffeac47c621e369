package placement

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archiplan/floorplan/pkg/constraints"
	"github.com/archiplan/floorplan/pkg/floorplan"
	"github.com/archiplan/floorplan/pkg/geomkernel"
	"github.com/archiplan/floorplan/pkg/rng"
)

func bigSquareModel() *constraints.Model {
	boundary := geomkernel.Polygon{
		{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 30}, {X: 0, Y: 30},
	}
	return &constraints.Model{Boundary: boundary, AllowedRegion: []geomkernel.Polygon{boundary}}
}

func testSeed(stage string) *rng.RNG {
	h := sha256.Sum256([]byte("placement_test_config"))
	return rng.NewRNG(42, stage, h[:])
}

func TestPlace_ProducesIlotsWithinCap(t *testing.T) {
	model := bigSquareModel()
	plan := &floorplan.FloorPlan{}
	cfg := floorplan.DefaultPlacementCfg()
	cfg.MaxIlots = 10

	ilots, stats, err := Place(context.Background(), model, plan, cfg, testSeed("placement"))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(ilots), 10)
	assert.Equal(t, len(ilots), stats.IlotsAccepted)
	assert.Greater(t, stats.CandidatesTried, 0)
}

func TestPlace_IsDeterministic(t *testing.T) {
	model := bigSquareModel()
	plan := &floorplan.FloorPlan{}
	cfg := floorplan.DefaultPlacementCfg()
	cfg.MaxIlots = 8

	ilotsA, _, err := Place(context.Background(), model, plan, cfg, testSeed("placement"))
	require.NoError(t, err)
	ilotsB, _, err := Place(context.Background(), model, plan, cfg, testSeed("placement"))
	require.NoError(t, err)

	require.Equal(t, len(ilotsA), len(ilotsB))
	for i := range ilotsA {
		assert.InDelta(t, ilotsA[i].Center.X, ilotsB[i].Center.X, 1e-9)
		assert.InDelta(t, ilotsA[i].Center.Y, ilotsB[i].Center.Y, 1e-9)
		assert.Equal(t, ilotsA[i].Kind, ilotsB[i].Kind)
	}
}

func TestPlace_NoCollisionsBetweenAcceptedIlots(t *testing.T) {
	model := bigSquareModel()
	plan := &floorplan.FloorPlan{}
	cfg := floorplan.DefaultPlacementCfg()
	cfg.MaxIlots = 20

	ilots, _, err := Place(context.Background(), model, plan, cfg, testSeed("placement"))
	require.NoError(t, err)

	for i := range ilots {
		for j := i + 1; j < len(ilots); j++ {
			bi, err := geomkernel.BBoxOf(ilots[i].Polygon.ToKernel())
			require.NoError(t, err)
			bj, err := geomkernel.BBoxOf(ilots[j].Polygon.ToKernel())
			require.NoError(t, err)
			dist := geomkernel.BBoxDistance(bi, bj)
			if !ilots[i].Valid || !ilots[j].Valid {
				continue
			}
			assert.GreaterOrEqual(t, dist, cfg.MinIlotDistance-1e-6)
		}
	}
}

func TestScore_CapsAtOne(t *testing.T) {
	model := bigSquareModel()
	weights := floorplan.WeightsCfg{Space: 1, Accessibility: 1, Workflow: 1}
	rect := rectPolygon(geomkernel.Point{X: 5, Y: 5}, 3, 2)
	score := Score(rect, geomkernel.Point{X: 5, Y: 5}, model.AllowedRegion, nil, weights)
	assert.LessOrEqual(t, score, 1.0)
}

func TestPlace_ParallelScoringMatchesSerial(t *testing.T) {
	model := bigSquareModel()
	plan := &floorplan.FloorPlan{}
	serialCfg := floorplan.DefaultPlacementCfg()
	serialCfg.MaxIlots = 12
	parallelCfg := serialCfg
	parallelCfg.Parallel = true

	serial, _, err := Place(context.Background(), model, plan, serialCfg, testSeed("placement"))
	require.NoError(t, err)
	parallel, _, err := Place(context.Background(), model, plan, parallelCfg, testSeed("placement"))
	require.NoError(t, err)

	require.Equal(t, len(serial), len(parallel))
	for i := range serial {
		assert.InDelta(t, serial[i].Center.X, parallel[i].Center.X, 1e-9)
		assert.InDelta(t, serial[i].Center.Y, parallel[i].Center.Y, 1e-9)
		assert.Equal(t, serial[i].Kind, parallel[i].Kind)
	}
}

// Outside the allowed region only the spatial term drops to zero; the access
// and workflow terms still give 0.8*0.3 + 0.8*0.3 = 0.48.
func TestScore_SpatialTermZeroWhenOutsideAllowedRegion(t *testing.T) {
	model := bigSquareModel()
	weights := floorplan.DefaultPlacementCfg().Weights
	rect := rectPolygon(geomkernel.Point{X: 500, Y: 500}, 3, 2)
	score := Score(rect, geomkernel.Point{X: 500, Y: 500}, model.AllowedRegion, nil, weights)
	assert.Less(t, score, 0.5)
}
