package placement

import (
	"golang.org/x/sync/errgroup"

	"github.com/archiplan/floorplan/pkg/constraints"
	"github.com/archiplan/floorplan/pkg/floorplan"
	"github.com/archiplan/floorplan/pkg/geomkernel"
)

// scoreCandidates builds a candidateCtx per raw center and scores it.
// Scoring one candidate never reads or writes another's state, so when
// cfg.Parallel is set the work fans out over an errgroup; results are
// written into pre-sized slots by index so the subsequent sort sees the same
// order regardless of goroutine interleaving, preserving determinism.
func scoreCandidates(raw []geomkernel.Point, model *constraints.Model, plan *floorplan.FloorPlan, cfg floorplan.PlacementCfg) []candidateCtx {
	candidates := make([]candidateCtx, len(raw))

	score := func(i int) {
		c := raw[i]
		kind, width, height := kindAndSize(i, cfg)
		rect := rectPolygon(c, width, height)
		s := Score(rect, c, model.AllowedRegion, plan.Doors, cfg.Weights)
		candidates[i] = candidateCtx{order: i, center: c, kind: kind, width: width, height: height, rect: rect, score: s}
	}

	if !cfg.Parallel {
		for i := range raw {
			score(i)
		}
		return candidates
	}

	var g errgroup.Group
	for i := range raw {
		i := i
		g.Go(func() error {
			score(i)
			return nil
		})
	}
	_ = g.Wait()

	return candidates
}
