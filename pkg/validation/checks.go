package validation

import (
	"fmt"

	"github.com/archiplan/floorplan/pkg/constraints"
	"github.com/archiplan/floorplan/pkg/floorplan"
	"github.com/archiplan/floorplan/pkg/geomkernel"
	"github.com/archiplan/floorplan/pkg/netgraph"
)

const gapEpsilon = 1e-3

// CheckIlotContainment verifies P1: every ilot's rectangle lies inside
// AllowedRegion.
func CheckIlotContainment(ilots []floorplan.Ilot, allowed []geomkernel.Polygon) ConstraintResult {
	for _, ilot := range ilots {
		rect := ilot.Polygon.ToKernel()
		for _, corner := range rect {
			if !pointInAny(corner, allowed) {
				return ConstraintResult{
					Constraint: "P1_ilot_containment",
					Satisfied:  false,
					Score:      0,
					Details:    fmt.Sprintf("ilot %s has a vertex outside AllowedRegion", ilot.ID),
				}
			}
		}
	}
	return ConstraintResult{Constraint: "P1_ilot_containment", Satisfied: true, Score: 1}
}

// CheckIlotSeparation verifies P2: every pair of distinct valid ilots keeps
// at least min_ilot_distance - epsilon of axis-aligned gap.
func CheckIlotSeparation(ilots []floorplan.Ilot, minDistance float64) ConstraintResult {
	for i := 0; i < len(ilots); i++ {
		if !ilots[i].Valid {
			continue
		}
		bi, err := geomkernel.BBoxOf(ilots[i].Polygon.ToKernel())
		if err != nil {
			continue
		}
		for j := i + 1; j < len(ilots); j++ {
			if !ilots[j].Valid {
				continue
			}
			bj, err := geomkernel.BBoxOf(ilots[j].Polygon.ToKernel())
			if err != nil {
				continue
			}
			if geomkernel.BBoxDistance(bi, bj) < minDistance-gapEpsilon {
				return ConstraintResult{
					Constraint: "P2_ilot_separation",
					Satisfied:  false,
					Score:      0,
					Details:    fmt.Sprintf("ilots %s and %s are closer than min_ilot_distance", ilots[i].ID, ilots[j].ID),
				}
			}
		}
	}
	return ConstraintResult{Constraint: "P2_ilot_separation", Satisfied: true, Score: 1}
}

// CheckCorridorContainment verifies P3: every corridor polygon lies inside
// AllowedRegion minus the union of valid ilot rectangles. Checked via
// vertex sampling since AllowedRegion may be concave: each corridor vertex
// must lie in AllowedRegion and outside every valid ilot; no tolerance is
// applied.
func CheckCorridorContainment(corridors []floorplan.Corridor, allowed []geomkernel.Polygon, ilots []floorplan.Ilot) ConstraintResult {
	for _, c := range corridors {
		poly := c.Polygon.ToKernel()
		for _, v := range poly {
			if !pointInAny(v, allowed) {
				return ConstraintResult{
					Constraint: "P3_corridor_containment",
					Satisfied:  false,
					Score:      0,
					Details:    fmt.Sprintf("corridor %s has a vertex outside AllowedRegion", c.ID),
				}
			}
			for _, ilot := range ilots {
				if !ilot.Valid {
					continue
				}
				if geomkernel.PointInPolygon(v, ilot.Polygon.ToKernel()) {
					return ConstraintResult{
						Constraint: "P3_corridor_containment",
						Satisfied:  false,
						Score:      0,
						Details:    fmt.Sprintf("corridor %s overlaps ilot %s", c.ID, ilot.ID),
					}
				}
			}
		}
	}
	return ConstraintResult{Constraint: "P3_corridor_containment", Satisfied: true, Score: 1}
}

// CheckCorridorWidth verifies P4: every corridor's width falls within
// [min_width, max_width].
func CheckCorridorWidth(corridors []floorplan.Corridor, minWidth, maxWidth float64) ConstraintResult {
	for _, c := range corridors {
		if c.Width < minWidth-gapEpsilon || c.Width > maxWidth+gapEpsilon {
			return ConstraintResult{
				Constraint: "P4_corridor_width",
				Satisfied:  false,
				Score:      0,
				Details:    fmt.Sprintf("corridor %s width %.2f outside [%.2f, %.2f]", c.ID, c.Width, minWidth, maxWidth),
			}
		}
	}
	return ConstraintResult{Constraint: "P4_corridor_width", Satisfied: true, Score: 1}
}

// CheckNetworkConnectivity verifies P5: with connect_all_entrances=true,
// the corridor network connects every entrance to every valid ilot.
func CheckNetworkConnectivity(plan *floorplan.FloorPlan, ilots []floorplan.Ilot, corridors []floorplan.Corridor, requireConnected bool) ConstraintResult {
	if !requireConnected {
		return ConstraintResult{Constraint: "P5_network_connectivity", Satisfied: true, Score: 1, Details: "connect_all_entrances disabled"}
	}
	if len(plan.Entrances) == 0 {
		return ConstraintResult{Constraint: "P5_network_connectivity", Satisfied: true, Score: 1, Details: "no entrances to connect"}
	}

	g := netgraph.NewGraph()
	for i := range plan.Entrances {
		g.AddNode(fmt.Sprintf("entrance-%d", i))
	}
	for _, ilot := range ilots {
		if ilot.Valid {
			g.AddNode(ilot.ID)
		}
	}
	for _, c := range corridors {
		g.AddEdge(c.Endpoints[0], c.Endpoints[1])
	}

	if !g.IsConnected() {
		return ConstraintResult{
			Constraint: "P5_network_connectivity",
			Satisfied:  false,
			Score:      0,
			Details:    "corridor network does not connect every entrance to every valid ilot",
		}
	}
	return ConstraintResult{Constraint: "P5_network_connectivity", Satisfied: true, Score: 1}
}

func pointInAny(p geomkernel.Point, polys []geomkernel.Polygon) bool {
	for _, poly := range polys {
		if geomkernel.PointInPolygon(p, poly) {
			return true
		}
	}
	return false
}

// Validate runs every hard invariant check and assembles a Report.
func Validate(layout *floorplan.Layout, model *constraints.Model, placementCfg floorplan.PlacementCfg, corridorCfg floorplan.CorridorCfg, plan *floorplan.FloorPlan) *Report {
	report := newReport()

	report.recordHard(CheckIlotContainment(layout.Ilots, model.AllowedRegion))
	report.recordHard(CheckIlotSeparation(layout.Ilots, placementCfg.MinIlotDistance))
	report.recordHard(CheckCorridorContainment(layout.Corridors, model.AllowedRegion, layout.Ilots))
	report.recordHard(CheckCorridorWidth(layout.Corridors, corridorCfg.MinWidth, corridorCfg.MaxWidth))
	report.recordSoft(CheckNetworkConnectivity(plan, layout.Ilots, layout.Corridors, corridorCfg.ConnectAllEntrances))

	return report
}
