package geomkernel

import "math"

// Epsilon is the default tolerance for edge/vertex ambiguity in
// point-in-polygon and intersection tests.
const Epsilon = 1e-3

// PointInPolygon reports whether p lies inside polygon using an even-odd
// horizontal ray cast. Behavior for points within Epsilon of an edge or
// vertex is unspecified; callers must not depend on either answer there.
func PointInPolygon(p Point, polygon Polygon) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := polygon[i], polygon[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xCross := vi.X + (p.Y-vi.Y)/(vj.Y-vi.Y)*(vj.X-vi.X)
			if p.X < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// PolygonsIntersect reports whether polygons a and b share any area or
// boundary. It bbox-rejects first, then checks vertex containment in either
// direction, then pairwise edge crossing.
func PolygonsIntersect(a, b Polygon) bool {
	bbA, errA := BBoxOf(a)
	bbB, errB := BBoxOf(b)
	if errA != nil || errB != nil {
		return false
	}
	if !bbA.Intersects(bbB) {
		return false
	}

	for _, p := range a {
		if PointInPolygon(p, b) {
			return true
		}
	}
	for _, p := range b {
		if PointInPolygon(p, a) {
			return true
		}
	}

	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		s1 := Segment{A: a[i], B: a[(i+1)%na]}
		for j := 0; j < nb; j++ {
			s2 := Segment{A: b[j], B: b[(j+1)%nb]}
			if segmentsIntersect(s1, s2) {
				return true
			}
		}
	}
	return false
}

// segmentsIntersect reports whether two segments cross or touch, using the
// standard orientation predicate with Epsilon tolerance; collinear overlap
// counts as intersecting.
func segmentsIntersect(s1, s2 Segment) bool {
	o1 := orientation(s1.A, s1.B, s2.A)
	o2 := orientation(s1.A, s1.B, s2.B)
	o3 := orientation(s2.A, s2.B, s1.A)
	o4 := orientation(s2.A, s2.B, s1.B)

	if o1 != o2 && o3 != o4 {
		return true
	}

	if o1 == 0 && onSegment(s1.A, s2.A, s1.B) {
		return true
	}
	if o2 == 0 && onSegment(s1.A, s2.B, s1.B) {
		return true
	}
	if o3 == 0 && onSegment(s2.A, s1.A, s2.B) {
		return true
	}
	if o4 == 0 && onSegment(s2.A, s1.B, s2.B) {
		return true
	}
	return false
}

// orientation returns -1 for CCW, 1 for CW, 0 for collinear (within Epsilon).
func orientation(a, b, c Point) int {
	val := (b.Y-a.Y)*(c.X-b.X) - (b.X-a.X)*(c.Y-b.Y)
	if math.Abs(val) < Epsilon {
		return 0
	}
	if val > 0 {
		return 1
	}
	return -1
}

// onSegment reports whether q lies on the closed segment p-r, given the
// three points are already known to be collinear.
func onSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X)+Epsilon && q.X >= math.Min(p.X, r.X)-Epsilon &&
		q.Y <= math.Max(p.Y, r.Y)+Epsilon && q.Y >= math.Min(p.Y, r.Y)-Epsilon
}
