package geomkernel

// Kernel bundles a BooleanBackend with an error counter. One Kernel is
// created at the start of a pipeline run and discarded at the end; it is not
// safe for concurrent use.
type Kernel struct {
	backend      BooleanBackend
	fallback     BooleanBackend
	degraded     bool
	KernelErrors int
}

// NewKernel returns a Kernel backed by the robust boolean/buffer
// implementation, falling back automatically to the degraded backend if a
// robust operation fails.
func NewKernel() *Kernel {
	return &Kernel{backend: RobustBackend{}, fallback: FallbackBackend{}}
}

// Mode reports which backend is currently in force: "robust" or "degraded".
// Once degraded, a Kernel stays degraded for the rest of its life, matching
// the single-pass, non-recovering nature of a pipeline run.
func (k *Kernel) Mode() string {
	if k.degraded {
		return k.fallback.Name()
	}
	return k.backend.Name()
}

func (k *Kernel) markDegraded() {
	k.degraded = true
}

// Buffer offsets polygon by distance, outward if positive, inward if
// negative. Falls back to BufferFallback and marks the kernel degraded if
// the robust path errors or cannot produce a simple result.
func (k *Kernel) Buffer(polygon Polygon, distance float64) ([]Polygon, error) {
	if k.degraded {
		return BufferFallback(polygon, distance)
	}
	result, err := BufferRobust(polygon, distance)
	if err != nil {
		k.KernelErrors++
		k.markDegraded()
		return BufferFallback(polygon, distance)
	}
	if !isSimpleResult(result) {
		k.markDegraded()
		k.KernelErrors++
		return BufferFallback(polygon, distance)
	}
	return result, nil
}

// Union computes the union of all input polygons.
func (k *Kernel) Union(polygons []Polygon) ([]Polygon, error) {
	if k.degraded {
		return k.fallback.Union(polygons)
	}
	result, err := k.backend.Union(polygons)
	if err != nil {
		k.KernelErrors++
		k.markDegraded()
		return k.fallback.Union(polygons)
	}
	return result, nil
}

// Intersect computes the intersection of a and b.
func (k *Kernel) Intersect(a, b Polygon) ([]Polygon, error) {
	if k.degraded {
		return k.fallback.Intersect(a, b)
	}
	result, err := k.backend.Intersect(a, b)
	if err != nil {
		k.KernelErrors++
		k.markDegraded()
		return k.fallback.Intersect(a, b)
	}
	return result, nil
}

// Difference computes a minus b.
func (k *Kernel) Difference(a, b Polygon) ([]Polygon, error) {
	if k.degraded {
		return k.fallback.Difference(a, b)
	}
	result, err := k.backend.Difference(a, b)
	if err != nil {
		k.KernelErrors++
		k.markDegraded()
		return k.fallback.Difference(a, b)
	}
	return result, nil
}

// isSimpleResult is a cheap sanity check (each output ring has at least 3
// vertices and nonzero area) standing in for a full simplicity test; a
// result that fails it is treated as a robust-backend failure.
func isSimpleResult(polys []Polygon) bool {
	for _, p := range polys {
		if len(p) < 3 || Area(p) <= 0 {
			return false
		}
	}
	return true
}
