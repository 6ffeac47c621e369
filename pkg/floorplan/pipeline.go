package floorplan

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/google/uuid"

	"github.com/archiplan/floorplan/pkg/constraints"
	"github.com/archiplan/floorplan/pkg/corridor"
	"github.com/archiplan/floorplan/pkg/geomkernel"
	"github.com/archiplan/floorplan/pkg/placement"
	"github.com/archiplan/floorplan/pkg/rng"
)

// ProduceLayout runs the constraint model, placement engine and corridor
// generator in order on plan and returns the resulting Layout together with
// its RunStats. cfg.Placement.Seed derives every stage's RNG, and Layout.RunID
// itself, via rng.NewRNG, so identical plan+cfg always produce a
// byte-identical serialised Layout apart from the wall-clock stage timings
// in Stats. Each stage's timeout_ms budget starts when that stage starts.
//
// A CoreError of kind InvalidInput, MissingBoundary or NoFeasibleSpace is
// returned and aborts the run. Every other CoreError kind (KernelDegraded,
// TimeoutExpired, PathNotFound, Cancelled) is recoverable: it is folded into
// stats.Warnings and the run continues with a partial Layout instead of
// propagating.
func ProduceLayout(ctx context.Context, plan *FloorPlan, cfg Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, NewInvalidInputError(err.Error())
	}

	stats := RunStats{}
	configHash := cfg.Hash()
	runID := deriveRunID(cfg.Placement.Seed, configHash)
	kernel := geomkernel.NewKernel()

	constraintStart := time.Now()
	model, err := constraints.Build(kernel, plan, cfg.Placement)
	stats.ConstraintMs = time.Since(constraintStart).Milliseconds()
	stats.KernelMode = kernel.Mode()
	stats.KernelScale = geomkernel.Scale
	stats.KernelErrors = kernel.KernelErrors
	if err != nil {
		if foldStageError(err, &stats) {
			return &Layout{RunID: runID, Stats: stats}, nil
		}
		return &Layout{RunID: runID, Stats: stats}, err
	}
	if kernel.KernelErrors > 0 {
		stats.Warnings = append(stats.Warnings, "geometry kernel fell back to the degraded backend during constraint resolution")
	}

	if ctx.Err() != nil {
		stats.Cancelled = true
		return &Layout{RunID: runID, Stats: stats}, nil
	}

	placementSeed := rng.NewRNG(cfg.Placement.Seed, "placement", configHash)
	placementCtx, cancelPlacement := withStageDeadline(ctx, cfg.Placement.TimeoutMs)
	defer cancelPlacement()
	placementStart := time.Now()
	ilots, placementStats, err := placement.Place(placementCtx, model, plan, cfg.Placement, placementSeed)
	stats.PlacementMs = time.Since(placementStart).Milliseconds()
	stats.CandidatesTried = placementStats.CandidatesTried
	stats.IlotsAccepted = placementStats.IlotsAccepted
	stats.InvalidIlots = placementStats.InvalidIlots
	if err != nil {
		if foldStageError(err, &stats) {
			return &Layout{RunID: runID, Ilots: ilots, Stats: stats}, nil
		}
		return &Layout{RunID: runID, Ilots: ilots, Stats: stats}, err
	}
	if placementStats.TimedOut {
		stats.TimedOut = true
		stats.Warnings = append(stats.Warnings, "placement stage stopped early: timeout or cancellation")
	}
	stats.Coverage = coverage(ilots, model.AllowedRegion)

	if ctx.Err() != nil {
		stats.Cancelled = true
		return &Layout{RunID: runID, Ilots: ilots, Stats: stats}, nil
	}

	corridorCtx, cancelCorridor := withStageDeadline(ctx, cfg.Corridor.TimeoutMs)
	defer cancelCorridor()
	corridorStart := time.Now()
	corridors, corridorStats, err := corridor.Build(corridorCtx, model.AllowedRegion, plan, ilots, cfg.Corridor)
	stats.CorridorMs = time.Since(corridorStart).Milliseconds()
	stats.PathsFound = corridorStats.PathsFound
	stats.PathsDropped = corridorStats.PathsDropped
	stats.Warnings = append(stats.Warnings, corridorStats.Warnings...)
	if err != nil {
		if foldStageError(err, &stats) {
			return &Layout{RunID: runID, Ilots: ilots, Stats: stats}, nil
		}
		return &Layout{RunID: runID, Ilots: ilots, Stats: stats}, err
	}

	if ctx.Err() != nil {
		stats.Cancelled = true
	}

	return &Layout{RunID: runID, Ilots: ilots, Corridors: corridors, Stats: stats}, nil
}

// foldStageError reports whether err is a recoverable CoreError. If so, it is
// appended to stats.Warnings and the caller should continue with a partial
// Layout rather than propagate. A non-recoverable CoreError, or any other
// error, is left untouched for the caller to return as-is.
func foldStageError(err error, stats *RunStats) bool {
	coreErr, ok := err.(*CoreError)
	if !ok || !coreErr.Recoverable() {
		return false
	}
	stats.Warnings = append(stats.Warnings, coreErr.Error())
	return true
}

// deriveRunID derives a stable UUID from the same (seed, configHash) inputs
// that seed every stage RNG, via the stage name "run_id". It carries no
// geometry and exists purely for log correlation, but must still be
// deterministic: two runs over identical inputs must serialise to an
// identical Layout.
func deriveRunID(masterSeed uint64, configHash []byte) string {
	r := rng.NewRNG(masterSeed, "run_id", configHash)
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], r.Uint64())
	binary.BigEndian.PutUint64(b[8:], r.Uint64())
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	id, _ := uuid.FromBytes(b[:])
	return id.String()
}

// withStageDeadline derives a child context bounded by timeoutMs, or ctx
// itself unchanged when timeoutMs is zero.
func withStageDeadline(ctx context.Context, timeoutMs int64) (context.Context, context.CancelFunc) {
	if timeoutMs <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
}

func coverage(ilots []Ilot, allowed []geomkernel.Polygon) float64 {
	totalAllowed := 0.0
	for _, p := range allowed {
		totalAllowed += geomkernel.Area(p)
	}
	if totalAllowed <= 0 {
		return 0
	}
	used := 0.0
	for _, ilot := range ilots {
		if ilot.Valid {
			used += ilot.Width * ilot.Height
		}
	}
	return used / totalAllowed
}
