package corridor

import (
	"fmt"

	"github.com/archiplan/floorplan/pkg/floorplan"
	"github.com/archiplan/floorplan/pkg/geomkernel"
	"github.com/archiplan/floorplan/pkg/netgraph"
)

const maxCirculationAnchors = 5

// IdentifyKeyPoints collects entrances, valid ilot centres, and up to five
// circulation anchors, returning them as netgraph.Node so
// the MST builder can consume them directly.
func IdentifyKeyPoints(plan *floorplan.FloorPlan, ilots []floorplan.Ilot, grid *NavGrid) []netgraph.Node {
	var nodes []netgraph.Node

	for i, e := range plan.Entrances {
		nodes = append(nodes, netgraph.Node{ID: fmt.Sprintf("entrance-%d", i), X: e.X, Y: e.Y})
	}

	for _, ilot := range ilots {
		if !ilot.Valid {
			continue
		}
		nodes = append(nodes, netgraph.Node{ID: ilot.ID, X: ilot.Center.X, Y: ilot.Center.Y})
	}

	for i, anchor := range circulationAnchors(grid) {
		col, row := grid.CellOf(anchor)
		if !grid.Walkable(col, row) {
			continue
		}
		nodes = append(nodes, netgraph.Node{ID: fmt.Sprintf("anchor-%d", i), X: anchor.X, Y: anchor.Y})
	}

	return nodes
}

// circulationAnchors returns the centre of the nav grid's extent plus the
// centres of its four quadrants, capped at maxCirculationAnchors. The grid
// extent starts at the allowed-region bbox minimum and reaches at least one
// and less than two cells past the bbox maximum on each axis, so these
// points sit slightly up and right of the bbox centroids.
func circulationAnchors(grid *NavGrid) []geomkernel.Point {
	minX, minY := grid.MinX, grid.MinY
	maxX := grid.MinX + float64(grid.Cols)*grid.Resolution
	maxY := grid.MinY + float64(grid.Rows)*grid.Resolution
	midX, midY := (minX+maxX)/2, (minY+maxY)/2

	anchors := []geomkernel.Point{
		{X: midX, Y: midY},
		{X: (minX + midX) / 2, Y: (minY + midY) / 2},
		{X: (midX + maxX) / 2, Y: (minY + midY) / 2},
		{X: (minX + midX) / 2, Y: (midY + maxY) / 2},
		{X: (midX + maxX) / 2, Y: (midY + maxY) / 2},
	}
	if len(anchors) > maxCirculationAnchors {
		anchors = anchors[:maxCirculationAnchors]
	}
	return anchors
}
