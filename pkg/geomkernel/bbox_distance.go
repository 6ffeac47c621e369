package geomkernel

import "math"

// BBoxDistance returns the Euclidean gap between two axis-aligned boxes: 0
// if they overlap or touch, else the distance between their nearest edges
// (accounting for the case where they're offset along only one axis).
func BBoxDistance(a, b BBox) float64 {
	dx := 0.0
	if a.MaxX < b.MinX {
		dx = b.MinX - a.MaxX
	} else if b.MaxX < a.MinX {
		dx = a.MinX - b.MaxX
	}
	dy := 0.0
	if a.MaxY < b.MinY {
		dy = b.MinY - a.MaxY
	} else if b.MaxY < a.MinY {
		dy = a.MinY - b.MaxY
	}
	return math.Hypot(dx, dy)
}
