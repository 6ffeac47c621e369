// Package constraints implements the L1 constraint model: it turns a
// floorplan.FloorPlan into an AllowedRegion ready for the placement engine,
// by resolving the boundary and folding walls, door/window clearances and
// declared zones into forbidden space.
package constraints
