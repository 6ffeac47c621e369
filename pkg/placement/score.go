package placement

import (
	"math"

	"github.com/archiplan/floorplan/pkg/constraints"
	"github.com/archiplan/floorplan/pkg/floorplan"
	"github.com/archiplan/floorplan/pkg/geomkernel"
)

const (
	accessPreferredMin = 1.5
	accessPreferredMax = 10.0
)

// fitsAllowedRegion reports whether every corner of rect lies inside some
// component of allowed.
func fitsAllowedRegion(rect geomkernel.Polygon, allowed []geomkernel.Polygon) bool {
	for _, corner := range rect {
		if !anyContains(corner, allowed) {
			return false
		}
	}
	return true
}

// intersectsHardForbidden reports whether rect intersects any hard
// ForbiddenRegion, re-testing independently of the AllowedRegion
// derivation.
func intersectsHardForbidden(rect geomkernel.Polygon, forbidden []constraints.ForbiddenRegion) bool {
	for _, f := range forbidden {
		if f.Constraint != constraints.Hard {
			continue
		}
		if geomkernel.PolygonsIntersect(rect, f.Polygon) {
			return true
		}
	}
	return false
}

func sSpatial(rect geomkernel.Polygon, allowed []geomkernel.Polygon) float64 {
	if !fitsAllowedRegion(rect, allowed) {
		return 0
	}
	return 0.8
}

func sAccess(center geomkernel.Point, doors []floorplan.Door) float64 {
	if len(doors) == 0 {
		return 0.8
	}
	nearest := math.Inf(1)
	for _, d := range doors {
		dist := math.Hypot(center.X-d.Position.X, center.Y-d.Position.Y)
		if dist < nearest {
			nearest = dist
		}
	}
	if nearest >= accessPreferredMin && nearest <= accessPreferredMax {
		return 1.0
	}
	return 0.8
}

// sWorkflow is a constant placeholder: a full workflow
// model would weigh adjacency to related ilot kinds, not implemented in v1.
func sWorkflow() float64 {
	return 0.8
}

// Score computes the weighted composite score (spatial fit, accessibility,
// workflow) for a candidate rectangle, capped at 1.
func Score(rect geomkernel.Polygon, center geomkernel.Point, allowed []geomkernel.Polygon, doors []floorplan.Door, weights floorplan.WeightsCfg) float64 {
	s := sSpatial(rect, allowed)*weights.Space +
		sAccess(center, doors)*weights.Accessibility +
		sWorkflow()*weights.Workflow
	if s > 1 {
		s = 1
	}
	return s
}
