// Package rng provides deterministic random number generation for the
// floor-plan layout pipeline.
//
// # Overview
//
// The RNG type ensures reproducible layouts by deriving stage-specific
// seeds from a master seed. This allows each pipeline stage (constraint
// modeling, placement, corridor generation) to have independent random
// sequences while the overall run stays deterministic.
//
// # Sub-Seed Derivation
//
// Each RNG derives its seed using SHA-256:
//
//	seed_stage = H(masterSeed, stageName, configHash)
//
// where:
//   - masterSeed: the top-level Seed from PlacementCfg
//   - stageName: pipeline stage identifier (e.g., "constraints", "placement")
//   - configHash: hash of configuration parameters
//
// This ensures:
//  1. Same inputs always produce same RNG sequence (determinism)
//  2. Different stages get independent random sequences (isolation)
//  3. Config changes result in different sequences (sensitivity)
//
// # Usage
//
// Create an RNG for each pipeline stage:
//
//	configHash := sha256.Sum256([]byte(configJSON))
//	placementRNG := rng.NewRNG(masterSeed, "placement", configHash[:])
//	corridorRNG := rng.NewRNG(masterSeed, "corridor", configHash[:])
//
// Use the RNG for all random decisions in that stage:
//
//	angle := placementRNG.Float64Range(0, 2*math.Pi)
//	darts := placementRNG.IntRange(1, cfg.PoissonTries)
//
// # Thread Safety
//
// RNG instances are NOT thread-safe. Each goroutine should use its own RNG
// instance. Create stage-specific RNGs before spawning goroutines and pass
// them explicitly; when candidate scoring is parallelized (PlacementCfg.Parallel),
// derive one RNG per worker up front rather than sharing one across goroutines.
package rng
