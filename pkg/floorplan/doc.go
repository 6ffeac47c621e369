// Package floorplan defines the data model shared by every stage of the
// layout pipeline (FloorPlan input, Ilot/Corridor/Layout output, RunStats)
// and the orchestrator that runs constraint modeling, placement, and
// corridor generation in sequence to turn a FloorPlan into a Layout.
//
// All types round-trip through JSON with snake_case keys: this is the
// contract to an upstream CAD/DXF adapter and a downstream visualisation
// layer, neither of which is part of this module.
package floorplan
