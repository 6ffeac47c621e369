// Package geomkernel implements the geometry primitives the rest of the
// layout pipeline is built on: bounding boxes, area/centroid, point-in-polygon
// and polygon-intersection tests, polygon buffering, boolean set operations,
// and a spatial R-tree index.
//
// All coordinates are float64 meters. Polygons are simple (non-self-intersecting)
// exterior rings represented as an ordered slice of points, implicitly closed.
//
// Boolean set operations (union/intersect/difference) and buffering are
// expressed behind the BooleanBackend interface so a degraded fallback can
// stand in when the robust backend is unavailable. The caller is expected to
// create one Kernel per pipeline run and discard it afterward; a Kernel is not
// safe for concurrent use without external synchronization.
package geomkernel
