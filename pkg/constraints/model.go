package constraints

import (
	"math"

	"github.com/archiplan/floorplan/pkg/floorplan"
	"github.com/archiplan/floorplan/pkg/geomkernel"
)

// ConstraintKind distinguishes regions that must be strictly avoided from
// regions that may be entered at a score penalty.
type ConstraintKind string

const (
	Hard ConstraintKind = "hard"
	Soft ConstraintKind = "soft"
)

// doorClearanceSides is the regular-polygon approximation fidelity for a
// door/window clearance disc.
const doorClearanceSides = 16

// windowClearanceFactor shrinks a window's soft-forbidden disc relative to
// a door's hard clearance radius.
const windowClearanceFactor = 0.5

// ForbiddenRegion is one contributor to the union that is subtracted from
// the boundary to produce the AllowedRegion.
type ForbiddenRegion struct {
	Polygon    geomkernel.Polygon
	Constraint ConstraintKind
	Priority   float64
	Source     string
}

// Model is the L1 output: the resolved boundary, the full list of
// contributing forbidden regions (hard and soft, for scoring use in L2a),
// and the allowed region hard regions have already been subtracted from.
type Model struct {
	Boundary      geomkernel.Polygon
	Forbidden     []ForbiddenRegion
	AllowedRegion []geomkernel.Polygon
}

// ResolveBoundary resolves a FloorPlan's outer boundary: the explicit
// boundary polygon if present, else the bounds rectangle, else the convex
// hull of wall vertices, else MissingBoundary.
func ResolveBoundary(plan *floorplan.FloorPlan) (geomkernel.Polygon, error) {
	if len(plan.Boundary) >= 3 {
		return plan.Boundary.ToKernel(), nil
	}
	if plan.Bounds != nil {
		b := plan.Bounds
		return geomkernel.Polygon{
			{X: b.MinX, Y: b.MinY},
			{X: b.MaxX, Y: b.MinY},
			{X: b.MaxX, Y: b.MaxY},
			{X: b.MinX, Y: b.MaxY},
		}, nil
	}
	if len(plan.Walls) > 0 {
		pts := make([]geomkernel.Point, 0, len(plan.Walls)*2)
		for _, w := range plan.Walls {
			pts = append(pts, geomkernel.Point{X: w.A.X, Y: w.A.Y}, geomkernel.Point{X: w.B.X, Y: w.B.Y})
		}
		hull := geomkernel.ConvexHull(pts)
		if len(hull) >= 3 {
			return hull, nil
		}
	}
	return nil, floorplan.NewMissingBoundaryError("no boundary, bounds, or wall geometry to derive a floorplan boundary from")
}

// wallRectangle builds the length x thickness rectangle for a wall segment,
// in object space (long axis along A->B), returned already in world
// coordinates.
func wallRectangle(a, b geomkernel.Point, thickness float64) geomkernel.Polygon {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		// Degenerate wall: treat as a small square around the point so it
		// still contributes a nonzero forbidden region.
		half := thickness / 2
		if half <= 0 {
			half = 0.05
		}
		return geomkernel.Polygon{
			{X: a.X - half, Y: a.Y - half},
			{X: a.X + half, Y: a.Y - half},
			{X: a.X + half, Y: a.Y + half},
			{X: a.X - half, Y: a.Y + half},
		}
	}
	ux, uy := dx/length, dy/length
	nx, ny := -uy, ux
	half := thickness / 2
	if half <= 0 {
		half = 0.05
	}
	return geomkernel.Polygon{
		{X: a.X + nx*half, Y: a.Y + ny*half},
		{X: b.X + nx*half, Y: b.Y + ny*half},
		{X: b.X - nx*half, Y: b.Y - ny*half},
		{X: a.X - nx*half, Y: a.Y - ny*half},
	}
}

// Build resolves the boundary, folds walls, door/window clearances and
// declared zones into forbidden space, and subtracts the hard regions to
// produce the AllowedRegion, running entirely through k so robust/degraded
// kernel-mode accounting stays centralized.
func Build(k *geomkernel.Kernel, plan *floorplan.FloorPlan, cfg floorplan.PlacementCfg) (*Model, error) {
	boundary, err := ResolveBoundary(plan)
	if err != nil {
		return nil, err
	}

	var forbidden []ForbiddenRegion

	for _, w := range plan.Walls {
		thickness := w.Thickness
		if thickness <= 0 {
			thickness = 0.2
		}
		rect := wallRectangle(geomkernel.Point{X: w.A.X, Y: w.A.Y}, geomkernel.Point{X: w.B.X, Y: w.B.Y}, thickness)
		buffered, err := k.Buffer(rect, cfg.MinWallDistance)
		if err != nil {
			return nil, floorplan.NewKernelDegradedError("buffering wall segment", err)
		}
		for _, p := range buffered {
			forbidden = append(forbidden, ForbiddenRegion{Polygon: p, Constraint: Hard, Priority: 1.0, Source: "wall"})
		}
	}

	for _, d := range plan.Doors {
		disc := geomkernel.RegularPolygon(geomkernel.Point{X: d.Position.X, Y: d.Position.Y}, cfg.MinDoorClearance, doorClearanceSides)
		forbidden = append(forbidden, ForbiddenRegion{Polygon: disc, Constraint: Hard, Priority: 0.9, Source: "door"})
	}

	for _, w := range plan.Windows {
		disc := geomkernel.RegularPolygon(geomkernel.Point{X: w.Position.X, Y: w.Position.Y}, cfg.MinDoorClearance*windowClearanceFactor, doorClearanceSides)
		forbidden = append(forbidden, ForbiddenRegion{Polygon: disc, Constraint: Soft, Priority: 0.3, Source: "window"})
	}

	for _, z := range plan.RedZones {
		forbidden = append(forbidden, ForbiddenRegion{Polygon: z.ToKernel(), Constraint: Hard, Priority: 1.0, Source: "red_zone"})
	}
	for _, z := range plan.BlueZones {
		forbidden = append(forbidden, ForbiddenRegion{Polygon: z.ToKernel(), Constraint: Hard, Priority: 0.7, Source: "blue_zone"})
	}

	var hardPolys []geomkernel.Polygon
	for _, f := range forbidden {
		if f.Constraint == Hard {
			hardPolys = append(hardPolys, f.Polygon)
		}
	}

	allowed := []geomkernel.Polygon{boundary}
	if len(hardPolys) > 0 {
		unionForbidden, err := k.Union(hardPolys)
		if err != nil {
			return nil, floorplan.NewKernelDegradedError("unioning forbidden regions", err)
		}
		for _, hole := range unionForbidden {
			var next []geomkernel.Polygon
			for _, piece := range allowed {
				diff, err := k.Difference(piece, hole)
				if err != nil {
					return nil, floorplan.NewKernelDegradedError("subtracting forbidden region", err)
				}
				next = append(next, diff...)
			}
			allowed = next
			if len(allowed) == 0 {
				break
			}
		}
	}

	if len(allowed) == 0 {
		return nil, floorplan.NewNoFeasibleSpaceError("allowed region is empty after subtracting forbidden regions")
	}

	return &Model{Boundary: boundary, Forbidden: forbidden, AllowedRegion: allowed}, nil
}
