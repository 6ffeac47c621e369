// Package corridor implements the L2b corridor generator: navigation-grid
// rasterization of the allowed space, key-point identification, a
// minimum-spanning-tree network over those points, per-edge A* routing,
// endpoint-preserving centerline smoothing, and polygon extrusion
//.
package corridor
