package placement

import (
	"context"
	"math"

	"github.com/archiplan/floorplan/pkg/floorplan"
	"github.com/archiplan/floorplan/pkg/geomkernel"
	"github.com/archiplan/floorplan/pkg/rng"
)

func anyContains(p geomkernel.Point, allowed []geomkernel.Polygon) bool {
	for _, poly := range allowed {
		if geomkernel.PointInPolygon(p, poly) {
			return true
		}
	}
	return false
}

func unionBBoxOf(polys []geomkernel.Polygon) (geomkernel.BBox, bool) {
	var result geomkernel.BBox
	found := false
	for _, p := range polys {
		bb, err := geomkernel.BBoxOf(p)
		if err != nil {
			continue
		}
		if !found {
			result, found = bb, true
			continue
		}
		result.MinX = math.Min(result.MinX, bb.MinX)
		result.MinY = math.Min(result.MinY, bb.MinY)
		result.MaxX = math.Max(result.MaxX, bb.MaxX)
		result.MaxY = math.Max(result.MaxY, bb.MaxY)
	}
	return result, found
}

// GenerateCandidates dispatches to the configured strategy.
func GenerateCandidates(ctx context.Context, cfg floorplan.PlacementCfg, allowed []geomkernel.Polygon, r *rng.RNG) []geomkernel.Point {
	switch cfg.Strategy {
	case floorplan.StrategyGrid:
		return gridCandidates(cfg, allowed)
	case floorplan.StrategyRandom:
		return randomCandidates(ctx, cfg, allowed, r)
	default:
		return poissonDiskCandidates(ctx, cfg, allowed, r)
	}
}

// gridCandidates lays out an axis-aligned lattice with cell step
// default_size + min_ilot_distance, offset by half-size, keeping only
// centers that land inside the allowed region.
func gridCandidates(cfg floorplan.PlacementCfg, allowed []geomkernel.Polygon) []geomkernel.Point {
	bb, ok := unionBBoxOf(allowed)
	if !ok {
		return nil
	}
	stepX := cfg.DefaultWidth + cfg.MinIlotDistance
	stepY := cfg.DefaultHeight + cfg.MinIlotDistance
	if stepX <= 0 || stepY <= 0 {
		return nil
	}

	var out []geomkernel.Point
	for y := bb.MinY + stepY/2; y <= bb.MaxY; y += stepY {
		for x := bb.MinX + stepX/2; x <= bb.MaxX; x += stepX {
			p := geomkernel.Point{X: x, Y: y}
			if anyContains(p, allowed) {
				out = append(out, p)
			}
			if len(out) >= cfg.MaxIterations {
				return out
			}
		}
	}
	return out
}

// randomCandidates performs rejection sampling in the allowed region's
// bounding box.
func randomCandidates(ctx context.Context, cfg floorplan.PlacementCfg, allowed []geomkernel.Polygon, r *rng.RNG) []geomkernel.Point {
	bb, ok := unionBBoxOf(allowed)
	if !ok {
		return nil
	}
	if bb.Width() <= 0 || bb.Height() <= 0 {
		return nil
	}

	var out []geomkernel.Point
	for attempt := 0; attempt < cfg.MaxIterations; attempt++ {
		if attempt%256 == 0 && ctx.Err() != nil {
			break
		}
		p := geomkernel.Point{
			X: r.Float64Range(bb.MinX, bb.MaxX),
			Y: r.Float64Range(bb.MinY, bb.MaxY),
		}
		if anyContains(p, allowed) {
			out = append(out, p)
		}
	}
	return out
}

type poissonGrid struct {
	cellSize float64
	cells    map[[2]int][]geomkernel.Point
}

func newPoissonGrid(cellSize float64) *poissonGrid {
	return &poissonGrid{cellSize: cellSize, cells: make(map[[2]int][]geomkernel.Point)}
}

func (g *poissonGrid) cellOf(p geomkernel.Point) [2]int {
	return [2]int{int(math.Floor(p.X / g.cellSize)), int(math.Floor(p.Y / g.cellSize))}
}

func (g *poissonGrid) insert(p geomkernel.Point) {
	cell := g.cellOf(p)
	g.cells[cell] = append(g.cells[cell], p)
}

// farEnough checks the 5x5 neighbour window around p's cell for any
// previously accepted point within minDist.
func (g *poissonGrid) farEnough(p geomkernel.Point, minDist float64) bool {
	cx, cy := int(math.Floor(p.X/g.cellSize)), int(math.Floor(p.Y/g.cellSize))
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			for _, q := range g.cells[[2]int{cx + dx, cy + dy}] {
				if math.Hypot(p.X-q.X, p.Y-q.Y) < minDist {
					return false
				}
			}
		}
	}
	return true
}

// poissonDiskCandidates implements Bridson's algorithm over the allowed
// region. Determinism follows from r being a stage-seeded
// RNG consumed in a fixed order: active-point selection, then up to
// poisson_tries dart throws per active point.
func poissonDiskCandidates(ctx context.Context, cfg floorplan.PlacementCfg, allowed []geomkernel.Polygon, r *rng.RNG) []geomkernel.Point {
	bb, ok := unionBBoxOf(allowed)
	if !ok || bb.Width() <= 0 || bb.Height() <= 0 {
		return nil
	}

	cellSize := cfg.PoissonRadius / math.Sqrt2
	grid := newPoissonGrid(cellSize)

	var seed geomkernel.Point
	seeded := false
	for attempt := 0; attempt < 200; attempt++ {
		p := geomkernel.Point{
			X: r.Float64Range(bb.MinX, bb.MaxX),
			Y: r.Float64Range(bb.MinY, bb.MaxY),
		}
		if anyContains(p, allowed) {
			seed, seeded = p, true
			break
		}
	}
	if !seeded {
		return nil
	}

	samples := []geomkernel.Point{seed}
	grid.insert(seed)
	active := []int{0}

	for len(active) > 0 && len(samples) < cfg.MaxIterations {
		if len(samples)%128 == 0 && ctx.Err() != nil {
			break
		}
		pick := r.Intn(len(active))
		originIdx := active[pick]
		origin := samples[originIdx]

		found := false
		for try := 0; try < cfg.PoissonTries; try++ {
			ux, uy := r.UnitVector2D()
			radius := r.PoissonDartRadius(cfg.PoissonRadius)
			cand := geomkernel.Point{X: origin.X + ux*radius, Y: origin.Y + uy*radius}
			if !anyContains(cand, allowed) {
				continue
			}
			if !grid.farEnough(cand, cfg.PoissonRadius) {
				continue
			}
			samples = append(samples, cand)
			grid.insert(cand)
			active = append(active, len(samples)-1)
			found = true
			break
		}
		if !found {
			active[pick] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}

	return samples
}
