package geomkernel

import (
	polyclip "github.com/akavel/polyclip-go"
)

// BooleanBackend is the small interface the kernel consumes for buffering
// and boolean set operations, so a degraded fallback can stand in for the
// robust backend when it is unavailable.
type BooleanBackend interface {
	// Name identifies the backend for RunStats.KernelMode ("robust" or
	// "degraded").
	Name() string
	Buffer(polygon Polygon, distance float64) ([]Polygon, error)
	Union(polygons []Polygon) ([]Polygon, error)
	Intersect(a, b Polygon) ([]Polygon, error)
	Difference(a, b Polygon) ([]Polygon, error)
}

// RobustBackend delegates union/intersect/difference to a martinez-style
// boolean clipping library (polyclip-go) and buffers via an integer-scaled
// edge offset march (see buffer.go).
type RobustBackend struct{}

func (RobustBackend) Name() string { return "robust" }

func (RobustBackend) Buffer(polygon Polygon, distance float64) ([]Polygon, error) {
	return BufferRobust(polygon, distance)
}

func (RobustBackend) Union(polygons []Polygon) ([]Polygon, error) {
	valid := make([]Polygon, 0, len(polygons))
	for _, p := range polygons {
		if len(p) >= 3 {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return nil, nil
	}
	acc := toPolyclip(valid[0])
	for _, p := range valid[1:] {
		acc = acc.Construct(polyclip.UNION, toPolyclip(p))
	}
	return fromPolyclip(acc), nil
}

func (RobustBackend) Intersect(a, b Polygon) ([]Polygon, error) {
	if len(a) < 3 || len(b) < 3 {
		return nil, nil
	}
	result := toPolyclip(a).Construct(polyclip.INTERSECTION, toPolyclip(b))
	return fromPolyclip(result), nil
}

func (RobustBackend) Difference(a, b Polygon) ([]Polygon, error) {
	if len(a) < 3 {
		return nil, nil
	}
	if len(b) < 3 {
		return []Polygon{a}, nil
	}
	result := toPolyclip(a).Construct(polyclip.DIFFERENCE, toPolyclip(b))
	return fromPolyclip(result), nil
}

// FallbackBackend implements degraded semantics for use when the robust
// backend is unavailable: union collapses to the bounding
// rectangle of its inputs, difference returns the minuend unchanged, and
// intersect returns the bbox overlap rectangle. None of these preserve
// concave shape — callers must record RunStats.KernelMode = "degraded"
// whenever this backend is in force.
type FallbackBackend struct{}

func (FallbackBackend) Name() string { return "degraded" }

func (FallbackBackend) Buffer(polygon Polygon, distance float64) ([]Polygon, error) {
	return BufferFallback(polygon, distance)
}

func (FallbackBackend) Union(polygons []Polygon) ([]Polygon, error) {
	var bb BBox
	found := false
	for _, p := range polygons {
		b, err := BBoxOf(p)
		if err != nil {
			continue
		}
		if !found {
			bb, found = b, true
			continue
		}
		bb = unionBBox(bb, b)
	}
	if !found {
		return nil, nil
	}
	return []Polygon{rectPolygon(bb)}, nil
}

func (FallbackBackend) Intersect(a, b Polygon) ([]Polygon, error) {
	bbA, errA := BBoxOf(a)
	bbB, errB := BBoxOf(b)
	if errA != nil || errB != nil || !bbA.Intersects(bbB) {
		return nil, nil
	}
	overlap := BBox{
		MinX: max(bbA.MinX, bbB.MinX),
		MinY: max(bbA.MinY, bbB.MinY),
		MaxX: min(bbA.MaxX, bbB.MaxX),
		MaxY: min(bbA.MaxY, bbB.MaxY),
	}
	if overlap.Width() <= 0 || overlap.Height() <= 0 {
		return nil, nil
	}
	return []Polygon{rectPolygon(overlap)}, nil
}

func (FallbackBackend) Difference(a, b Polygon) ([]Polygon, error) {
	if len(a) < 3 {
		return nil, nil
	}
	return []Polygon{a}, nil
}

func unionBBox(a, b BBox) BBox {
	return BBox{
		MinX: min(a.MinX, b.MinX),
		MinY: min(a.MinY, b.MinY),
		MaxX: max(a.MaxX, b.MaxX),
		MaxY: max(a.MaxY, b.MaxY),
	}
}

func rectPolygon(bb BBox) Polygon {
	return Polygon{
		{X: bb.MinX, Y: bb.MinY},
		{X: bb.MaxX, Y: bb.MinY},
		{X: bb.MaxX, Y: bb.MaxY},
		{X: bb.MinX, Y: bb.MaxY},
	}
}

func toPolyclip(p Polygon) polyclip.Polygon {
	contour := make(polyclip.Contour, len(p))
	for i, v := range p {
		contour[i] = polyclip.Point{X: v.X, Y: v.Y}
	}
	return polyclip.Polygon{contour}
}

func fromPolyclip(p polyclip.Polygon) []Polygon {
	out := make([]Polygon, 0, len(p))
	for _, contour := range p {
		if len(contour) < 3 {
			continue
		}
		poly := make(Polygon, len(contour))
		for i, v := range contour {
			poly[i] = Point{X: v.X, Y: v.Y}
		}
		out = append(out, poly)
	}
	return out
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
