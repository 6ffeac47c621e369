package corridor

import (
	"math"

	"github.com/archiplan/floorplan/pkg/floorplan"
	"github.com/archiplan/floorplan/pkg/geomkernel"
)

// NavGrid is a rasterized walkability map over the allowed region's bbox,
// at CorridorCfg.grid_resolution.
type NavGrid struct {
	Resolution float64
	MinX, MinY float64
	Cols, Rows int
	walkable   []bool
}

func (g *NavGrid) index(col, row int) int { return row*g.Cols + col }

// InBounds reports whether (col, row) names a grid cell.
func (g *NavGrid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// Walkable reports whether (col, row) is a navigable cell.
func (g *NavGrid) Walkable(col, row int) bool {
	if !g.InBounds(col, row) {
		return false
	}
	return g.walkable[g.index(col, row)]
}

// CellCenter returns the world-space center of cell (col, row).
func (g *NavGrid) CellCenter(col, row int) geomkernel.Point {
	return geomkernel.Point{
		X: g.MinX + (float64(col)+0.5)*g.Resolution,
		Y: g.MinY + (float64(row)+0.5)*g.Resolution,
	}
}

// CellOf returns the grid cell containing p.
func (g *NavGrid) CellOf(p geomkernel.Point) (int, int) {
	col := int(math.Floor((p.X - g.MinX) / g.Resolution))
	row := int(math.Floor((p.Y - g.MinY) / g.Resolution))
	return col, row
}

// NearestWalkable finds the walkable cell nearest to p via an expanding
// ring search, used to snap an entrance/ilot position onto the nav grid
// for A*.
func (g *NavGrid) NearestWalkable(p geomkernel.Point) (col, row int, ok bool) {
	c0, r0 := g.CellOf(p)
	if g.Walkable(c0, r0) {
		return c0, r0, true
	}
	maxRadius := g.Cols + g.Rows
	for radius := 1; radius <= maxRadius; radius++ {
		for dc := -radius; dc <= radius; dc++ {
			for _, dr := range []int{-radius, radius} {
				if g.Walkable(c0+dc, r0+dr) {
					return c0 + dc, r0 + dr, true
				}
			}
		}
		for dr := -radius + 1; dr <= radius-1; dr++ {
			for _, dc := range []int{-radius, radius} {
				if g.Walkable(c0+dc, r0+dr) {
					return c0 + dc, r0 + dr, true
				}
			}
		}
	}
	return 0, 0, false
}

func unionBBox(polys []geomkernel.Polygon) (geomkernel.BBox, bool) {
	var out geomkernel.BBox
	found := false
	for _, p := range polys {
		bb, err := geomkernel.BBoxOf(p)
		if err != nil {
			continue
		}
		if !found {
			out, found = bb, true
			continue
		}
		out.MinX = math.Min(out.MinX, bb.MinX)
		out.MinY = math.Min(out.MinY, bb.MinY)
		out.MaxX = math.Max(out.MaxX, bb.MaxX)
		out.MaxY = math.Max(out.MaxY, bb.MaxY)
	}
	return out, found
}

func anyContains(p geomkernel.Point, polys []geomkernel.Polygon) bool {
	for _, poly := range polys {
		if geomkernel.PointInPolygon(p, poly) {
			return true
		}
	}
	return false
}

// BuildNavGrid rasterizes allowed at cfg.grid_resolution. A cell is
// walkable iff its center and four cardinal clearance probes (at radius
// default_width/2) lie in allowed and, when cfg.CorridorAvoidsIlots is set,
// the cell does not overlap any valid ilot footprint inflated by
// default_width/2.
func BuildNavGrid(allowed []geomkernel.Polygon, ilots []floorplan.Ilot, cfg floorplan.CorridorCfg) (*NavGrid, error) {
	bb, ok := unionBBox(allowed)
	if !ok || bb.Width() <= 0 || bb.Height() <= 0 {
		return nil, floorplan.NewNoFeasibleSpaceError("nav grid: allowed region has no area")
	}

	res := cfg.GridResolution
	cols := int(math.Ceil(bb.Width()/res)) + 1
	rows := int(math.Ceil(bb.Height()/res)) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	grid := &NavGrid{Resolution: res, MinX: bb.MinX, MinY: bb.MinY, Cols: cols, Rows: rows, walkable: make([]bool, cols*rows)}

	clearance := cfg.DefaultWidth / 2
	ilotInflated := make([]geomkernel.BBox, 0, len(ilots))
	for _, i := range ilots {
		if !cfg.CorridorAvoidsIlots || !i.Valid {
			continue
		}
		bb, err := geomkernel.BBoxOf(i.Polygon.ToKernel())
		if err != nil {
			continue
		}
		ilotInflated = append(ilotInflated, bb.Inflate(clearance))
	}

	anyWalkable := false
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			center := grid.CellCenter(col, row)
			if !anyContains(center, allowed) {
				continue
			}
			probes := []geomkernel.Point{
				{X: center.X + clearance, Y: center.Y},
				{X: center.X - clearance, Y: center.Y},
				{X: center.X, Y: center.Y + clearance},
				{X: center.X, Y: center.Y - clearance},
			}
			clear := true
			for _, p := range probes {
				if !anyContains(p, allowed) {
					clear = false
					break
				}
			}
			if !clear {
				continue
			}
			blocked := false
			halfCell := res / 2
			for _, ib := range ilotInflated {
				if center.X+halfCell >= ib.MinX && center.X-halfCell <= ib.MaxX && center.Y+halfCell >= ib.MinY && center.Y-halfCell <= ib.MaxY {
					blocked = true
					break
				}
			}
			if blocked {
				continue
			}
			grid.walkable[grid.index(col, row)] = true
			anyWalkable = true
		}
	}

	if !anyWalkable {
		return nil, floorplan.NewNoFeasibleSpaceError("nav grid: no walkable cells (NavGridEmpty)")
	}
	return grid, nil
}
