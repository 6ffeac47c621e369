package corridor

import (
	"context"
	"fmt"
	"math"

	"github.com/archiplan/floorplan/pkg/floorplan"
	"github.com/archiplan/floorplan/pkg/geomkernel"
	"github.com/archiplan/floorplan/pkg/netgraph"
)

// Stats reports what happened during a Build call, folded into
// floorplan.RunStats by the orchestrator.
type Stats struct {
	PathsFound   int
	PathsDropped int
	Warnings     []string
}

func clampWidth(cfg *floorplan.CorridorCfg, stats *Stats) {
	if cfg.DefaultWidth < cfg.MinWidth {
		stats.Warnings = append(stats.Warnings, fmt.Sprintf("corridor width %.2f below min_width %.2f, clamped", cfg.DefaultWidth, cfg.MinWidth))
		cfg.DefaultWidth = cfg.MinWidth
	} else if cfg.DefaultWidth > cfg.MaxWidth {
		stats.Warnings = append(stats.Warnings, fmt.Sprintf("corridor width %.2f above max_width %.2f, clamped", cfg.DefaultWidth, cfg.MaxWidth))
		cfg.DefaultWidth = cfg.MaxWidth
	}
}

// Build runs nav-grid rasterization, key-point identification, MST network
// topology, per-edge A*, smoothing, and extrusion. Failures in the nav grid
// itself (NavGridEmpty) or the total absence of key points do not propagate
// as pipeline errors: the corridor stage simply produces zero corridors,
// with a NavGridEmpty warning in the first case and no warning in the
// second.
func Build(ctx context.Context, allowed []geomkernel.Polygon, plan *floorplan.FloorPlan, ilots []floorplan.Ilot, cfg floorplan.CorridorCfg) ([]floorplan.Corridor, Stats, error) {
	var stats Stats
	clampWidth(&cfg, &stats)

	grid, err := BuildNavGrid(allowed, ilots, cfg)
	if err != nil {
		stats.Warnings = append(stats.Warnings, "NavGridEmpty: "+err.Error())
		return nil, stats, nil
	}

	nodes := IdentifyKeyPoints(plan, ilots, grid)
	if len(nodes) < 2 {
		return nil, stats, nil
	}

	nodeByID := make(map[string]netgraph.Node, len(nodes))
	for _, n := range nodes {
		nodeByID[n.ID] = n
	}

	tree := netgraph.MST(nodes)

	var corridors []floorplan.Corridor
	for _, edge := range tree {
		if ctx.Err() != nil {
			stats.Warnings = append(stats.Warnings, "corridor stage cancelled before all edges routed")
			break
		}

		from, to := nodeByID[edge.From], nodeByID[edge.To]
		startCol, startRow, ok1 := grid.NearestWalkable(geomkernel.Point{X: from.X, Y: from.Y})
		goalCol, goalRow, ok2 := grid.NearestWalkable(geomkernel.Point{X: to.X, Y: to.Y})
		if !ok1 || !ok2 {
			stats.PathsDropped++
			stats.Warnings = append(stats.Warnings, fmt.Sprintf("PathNotFound: %s -> %s has no reachable walkable cell", edge.From, edge.To))
			continue
		}

		rawPath, err := AStar(ctx, grid, gridCell{startCol, startRow}, gridCell{goalCol, goalRow}, cfg)
		if err != nil {
			stats.PathsDropped++
			stats.Warnings = append(stats.Warnings, fmt.Sprintf("PathNotFound: %s -> %s: %v", edge.From, edge.To, err))
			continue
		}

		smoothed := SmoothPath(rawPath, allowed, cfg.SmoothingIters)
		polygon := Extrude(smoothed, cfg.DefaultWidth)
		area := geomkernel.Area(polygon)
		if area <= 1e-9 {
			stats.PathsDropped++
			continue
		}

		centerline := floorplan.PolygonFromKernel(smoothed)
		corridors = append(corridors, floorplan.Corridor{
			ID:         fmt.Sprintf("corridor-%03d", len(corridors)),
			Centerline: []floorplan.Point(centerline),
			Width:      cfg.DefaultWidth,
			Polygon:    floorplan.PolygonFromKernel(polygon),
			Length:     pathLengthEuclidean(smoothed),
			Area:       area,
			Endpoints:  [2]string{edge.From, edge.To},
		})
		stats.PathsFound++
	}

	return corridors, stats, nil
}

func pathLengthEuclidean(path []geomkernel.Point) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		dx := path[i].X - path[i-1].X
		dy := path[i].Y - path[i-1].Y
		total += math.Sqrt(dx*dx + dy*dy)
	}
	return total
}
