package geomkernel

import (
	"math"
	"sort"
)

// ConvexHull returns the convex hull of points in CCW order using Andrew's
// monotone chain. Used to synthesise a boundary from wall endpoints when a
// FloorPlan supplies neither an explicit boundary nor bounds.
func ConvexHull(points []Point) Polygon {
	pts := make([]Point, 0, len(points))
	seen := make(map[Point]bool, len(points))
	for _, p := range points {
		if !isFinite(p) || seen[p] {
			continue
		}
		seen[p] = true
		pts = append(pts, p)
	}
	if len(pts) < 3 {
		return Polygon(pts)
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	cross := func(o, a, b Point) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	lower := make([]Point, 0, len(pts))
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	upper := make([]Point, 0, len(pts))
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	hull := make(Polygon, 0, len(lower)+len(upper)-2)
	hull = append(hull, lower[:len(lower)-1]...)
	hull = append(hull, upper[:len(upper)-1]...)
	return hull
}

// RegularPolygon approximates a disc of the given radius centered at c with
// sides vertices, used for door/window clearance approximations.
func RegularPolygon(c Point, radius float64, sides int) Polygon {
	if sides < 3 {
		sides = 3
	}
	poly := make(Polygon, sides)
	for i := 0; i < sides; i++ {
		angle := 2 * math.Pi * float64(i) / float64(sides)
		poly[i] = Point{
			X: c.X + radius*math.Cos(angle),
			Y: c.Y + radius*math.Sin(angle),
		}
	}
	return poly
}
