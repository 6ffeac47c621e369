package placement

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/archiplan/floorplan/pkg/constraints"
	"github.com/archiplan/floorplan/pkg/floorplan"
	"github.com/archiplan/floorplan/pkg/geomkernel"
	"github.com/archiplan/floorplan/pkg/rng"
)

// Stats reports what happened during a Place call, folded into
// floorplan.RunStats by the orchestrator.
type Stats struct {
	CandidatesTried int
	IlotsAccepted   int
	InvalidIlots    int
	TimedOut        bool
}

const maxImprovementPasses = 50
const perturbationsPerPass = 8

// defaultCapacity is a coarse occupancy heuristic per kind; not specified
// precisely by the scoring model, only used to populate Ilot.Capacity.
var defaultCapacity = map[floorplan.IlotKind]int{
	floorplan.KindWorkspace:     1,
	floorplan.KindMeeting:       6,
	floorplan.KindSocial:        8,
	floorplan.KindStorage:       0,
	floorplan.KindBreak:         4,
	floorplan.KindFocus:         1,
	floorplan.KindCollaboration: 4,
}

type candidateCtx struct {
	order  int
	center geomkernel.Point
	kind   floorplan.IlotKind
	width  float64
	height float64
	rect   geomkernel.Polygon
	score  float64
}

func kindMultiplier(cfg floorplan.PlacementCfg, kind floorplan.IlotKind) float64 {
	if m, ok := cfg.KindMultipliers[kind]; ok && m > 0 {
		return m
	}
	return 1.0
}

func kindAndSize(order int, cfg floorplan.PlacementCfg) (floorplan.IlotKind, float64, float64) {
	kind := floorplan.AllKinds[order%len(floorplan.AllKinds)]
	scale := math.Sqrt(kindMultiplier(cfg, kind))
	return kind, cfg.DefaultWidth * scale, cfg.DefaultHeight * scale
}

func rectPolygon(center geomkernel.Point, width, height float64) geomkernel.Polygon {
	hw, hh := width/2, height/2
	return geomkernel.Polygon{
		{X: center.X - hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y + hh},
		{X: center.X - hw, Y: center.Y + hh},
	}
}

// Place runs candidate generation, greedy rank-and-place, iterative
// improvement, and pairwise validation.
func Place(ctx context.Context, model *constraints.Model, plan *floorplan.FloorPlan, cfg floorplan.PlacementCfg, seed *rng.RNG) ([]floorplan.Ilot, Stats, error) {
	raw := GenerateCandidates(ctx, cfg, model.AllowedRegion, seed)
	candidates := scoreCandidates(raw, model, plan, cfg)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	totalAllowedArea := 0.0
	for _, p := range model.AllowedRegion {
		totalAllowedArea += geomkernel.Area(p)
	}
	avgIlotArea := cfg.DefaultWidth * cfg.DefaultHeight
	targetCount := cfg.MaxIlots
	if avgIlotArea > 0 {
		if t := int(totalAllowedArea * cfg.TargetCoverage / avgIlotArea); t < targetCount {
			targetCount = t
		}
	}
	if targetCount < 0 {
		targetCount = 0
	}

	tree := geomkernel.NewRTree()
	accepted := make([]floorplan.Ilot, 0, targetCount)
	acceptedRects := make([]geomkernel.Polygon, 0, targetCount)

	stats := Stats{CandidatesTried: len(candidates)}

	for _, cand := range candidates {
		if len(accepted) >= targetCount {
			break
		}
		if ctx.Err() != nil {
			stats.TimedOut = true
			break
		}

		bb, err := geomkernel.BBoxOf(cand.rect)
		if err != nil {
			continue
		}
		inflated := bb.Inflate(cfg.MinIlotDistance / 2)

		hits, err := tree.Search(inflated)
		if err != nil {
			continue
		}
		if len(hits) > 0 {
			continue
		}
		if !fitsAllowedRegion(cand.rect, model.AllowedRegion) {
			continue
		}
		if intersectsHardForbidden(cand.rect, model.Forbidden) {
			continue
		}

		if err := tree.Insert(inflated, len(accepted)); err != nil {
			continue
		}

		ilot := floorplan.Ilot{
			ID:       fmt.Sprintf("ilot-%03d", len(accepted)),
			Kind:     cand.kind,
			Center:   floorplan.Point{X: cand.center.X, Y: cand.center.Y},
			Width:    cand.width,
			Height:   cand.height,
			Polygon:  floorplan.PolygonFromKernel(cand.rect),
			Capacity: defaultCapacity[cand.kind],
			Score:    cand.score,
			Valid:    true,
		}
		accepted = append(accepted, ilot)
		acceptedRects = append(acceptedRects, cand.rect)
	}

	improve(ctx, model, plan, cfg, seed, accepted, acceptedRects)

	invalid := validate(accepted, acceptedRects, cfg.MinIlotDistance)

	stats.IlotsAccepted = len(accepted)
	stats.InvalidIlots = invalid
	return accepted, stats, nil
}

// improve runs up to maxImprovementPasses of small perturbations per ilot,
// committing any that keep every invariant and improve score by at least
// 10%. Mutates accepted/rects in place.
func improve(ctx context.Context, model *constraints.Model, plan *floorplan.FloorPlan, cfg floorplan.PlacementCfg, seed *rng.RNG, accepted []floorplan.Ilot, rects []geomkernel.Polygon) {
	neighborhood := cfg.MinIlotDistance / 4
	if neighborhood <= 0 {
		neighborhood = 0.25
	}

	for pass := 0; pass < maxImprovementPasses; pass++ {
		if ctx.Err() != nil {
			return
		}
		changed := false

		for i := range accepted {
			current := rects[i]
			currentCenter := geomkernel.Point{X: accepted[i].Center.X, Y: accepted[i].Center.Y}
			currentScore := Score(current, currentCenter, model.AllowedRegion, plan.Doors, cfg.Weights)

			bestScore := currentScore
			bestCenter := currentCenter
			bestRect := current
			found := false

			for k := 0; k < perturbationsPerPass; k++ {
				dx := seed.Float64Range(-neighborhood, neighborhood)
				dy := seed.Float64Range(-neighborhood, neighborhood)
				cand := geomkernel.Point{X: currentCenter.X + dx, Y: currentCenter.Y + dy}
				rect := rectPolygon(cand, accepted[i].Width, accepted[i].Height)

				if !fitsAllowedRegion(rect, model.AllowedRegion) {
					continue
				}
				if intersectsHardForbidden(rect, model.Forbidden) {
					continue
				}
				if collidesWithOthers(rect, rects, i, cfg.MinIlotDistance) {
					continue
				}

				score := Score(rect, cand, model.AllowedRegion, plan.Doors, cfg.Weights)
				if score >= bestScore*1.10 {
					bestScore, bestCenter, bestRect, found = score, cand, rect, true
				}
			}

			if found {
				accepted[i].Center = floorplan.Point{X: bestCenter.X, Y: bestCenter.Y}
				accepted[i].Polygon = floorplan.PolygonFromKernel(bestRect)
				accepted[i].Score = bestScore
				rects[i] = bestRect
				changed = true
			}
		}

		if !changed {
			return
		}
	}
}

func collidesWithOthers(rect geomkernel.Polygon, rects []geomkernel.Polygon, selfIdx int, minDist float64) bool {
	bb, err := geomkernel.BBoxOf(rect)
	if err != nil {
		return true
	}
	for j, other := range rects {
		if j == selfIdx {
			continue
		}
		otherBB, err := geomkernel.BBoxOf(other)
		if err != nil {
			continue
		}
		if geomkernel.BBoxDistance(bb, otherBB) < minDist {
			return true
		}
	}
	return false
}

// validate checks the pairwise min-distance invariant,
// flagging both members of any violating pair as invalid.
func validate(accepted []floorplan.Ilot, rects []geomkernel.Polygon, minDist float64) int {
	n := len(accepted)
	invalidSet := make(map[int]bool)
	for i := 0; i < n; i++ {
		bbI, err := geomkernel.BBoxOf(rects[i])
		if err != nil {
			invalidSet[i] = true
			continue
		}
		for j := i + 1; j < n; j++ {
			bbJ, err := geomkernel.BBoxOf(rects[j])
			if err != nil {
				invalidSet[j] = true
				continue
			}
			if geomkernel.BBoxDistance(bbI, bbJ) < minDist {
				invalidSet[i] = true
				invalidSet[j] = true
			}
		}
	}
	for idx := range invalidSet {
		accepted[idx].Valid = false
	}
	return len(invalidSet)
}
