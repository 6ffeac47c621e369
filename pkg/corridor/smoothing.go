package corridor

import (
	"math"

	"github.com/archiplan/floorplan/pkg/geomkernel"
)

// SmoothPath runs `iters` passes of endpoint-preserving Laplacian smoothing
//: p_i <- (p_{i-1} + 2p_i + p_{i+1}) / 4, reverting any
// step that would move a point out of the allowed region.
func SmoothPath(path []geomkernel.Point, allowed []geomkernel.Polygon, iters int) []geomkernel.Point {
	if len(path) < 3 || iters <= 0 {
		return path
	}
	current := make([]geomkernel.Point, len(path))
	copy(current, path)

	for pass := 0; pass < iters; pass++ {
		next := make([]geomkernel.Point, len(current))
		next[0] = current[0]
		next[len(current)-1] = current[len(current)-1]
		for i := 1; i < len(current)-1; i++ {
			smoothed := geomkernel.Point{
				X: (current[i-1].X + 2*current[i].X + current[i+1].X) / 4,
				Y: (current[i-1].Y + 2*current[i].Y + current[i+1].Y) / 4,
			}
			if anyContains(smoothed, allowed) {
				next[i] = smoothed
			} else {
				next[i] = current[i]
			}
		}
		current = next
	}
	return current
}

func segmentNormal(a, b geomkernel.Point) (float64, float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		return 0, 0
	}
	return -dy / length, dx / length
}

// vertexNormals returns, for each vertex, the average of the unit normals
// of its adjacent segments (a single segment's normal at the endpoints).
func vertexNormals(path []geomkernel.Point) [][2]float64 {
	n := len(path)
	normals := make([][2]float64, n)
	for i := 0; i < n; i++ {
		var nx, ny float64
		count := 0
		if i > 0 {
			snx, sny := segmentNormal(path[i-1], path[i])
			nx += snx
			ny += sny
			count++
		}
		if i < n-1 {
			snx, sny := segmentNormal(path[i], path[i+1])
			nx += snx
			ny += sny
			count++
		}
		if count > 0 {
			nx /= float64(count)
			ny /= float64(count)
			length := math.Hypot(nx, ny)
			if length > 1e-9 {
				nx /= length
				ny /= length
			}
		}
		normals[i] = [2]float64{nx, ny}
	}
	return normals
}

// Extrude offsets each centerline vertex along its averaged perpendicular
// by width/2 to produce a left and right rail, then closes
// left ++ reverse(right) into a single polygon.
func Extrude(centerline []geomkernel.Point, width float64) geomkernel.Polygon {
	if len(centerline) < 2 {
		return nil
	}
	half := width / 2
	normals := vertexNormals(centerline)

	left := make(geomkernel.Polygon, len(centerline))
	right := make(geomkernel.Polygon, len(centerline))
	for i, p := range centerline {
		nx, ny := normals[i][0], normals[i][1]
		left[i] = geomkernel.Point{X: p.X + nx*half, Y: p.Y + ny*half}
		right[i] = geomkernel.Point{X: p.X - nx*half, Y: p.Y - ny*half}
	}

	poly := make(geomkernel.Polygon, 0, len(left)+len(right))
	poly = append(poly, left...)
	for i := len(right) - 1; i >= 0; i-- {
		poly = append(poly, right[i])
	}
	return poly
}
