// Package placement implements the L2a placement engine: candidate
// generation (grid, random, or Poisson-disk "optimized"), scoring, greedy
// rank-and-place against an R-tree of accepted footprints, iterative
// improvement, and pairwise validation.
package placement
