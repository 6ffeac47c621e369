package floorplan

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// PlacementStrategy selects the candidate-generation algorithm for L2a
//.
type PlacementStrategy string

const (
	StrategyGrid      PlacementStrategy = "grid"
	StrategyRandom    PlacementStrategy = "random"
	StrategyOptimized PlacementStrategy = "optimized"
)

// WeightsCfg is the scoring weight triple; must sum to 1.0 within epsilon.
type WeightsCfg struct {
	Space         float64 `yaml:"space" json:"space"`
	Accessibility float64 `yaml:"accessibility" json:"accessibility"`
	Workflow      float64 `yaml:"workflow" json:"workflow"`
}

// PlacementCfg configures the L2a placement engine.
type PlacementCfg struct {
	Strategy         PlacementStrategy    `yaml:"strategy" json:"strategy"`
	MinWallDistance  float64              `yaml:"min_wall_distance" json:"min_wall_distance"`
	MinIlotDistance  float64              `yaml:"min_ilot_distance" json:"min_ilot_distance"`
	MinDoorClearance float64              `yaml:"min_door_clearance" json:"min_door_clearance"`
	TargetCoverage   float64              `yaml:"target_coverage" json:"target_coverage"`
	DefaultWidth     float64              `yaml:"default_width" json:"default_width"`
	DefaultHeight    float64              `yaml:"default_height" json:"default_height"`
	KindMultipliers  map[IlotKind]float64 `yaml:"kind_multipliers" json:"kind_multipliers"`
	MaxIlots         int                  `yaml:"max_ilots" json:"max_ilots"`
	PoissonRadius    float64              `yaml:"poisson_radius" json:"poisson_radius"`
	PoissonTries     int                  `yaml:"poisson_tries" json:"poisson_tries"`
	MaxIterations    int                  `yaml:"max_iterations" json:"max_iterations"`
	TimeoutMs        int64                `yaml:"timeout_ms" json:"timeout_ms"`
	Weights          WeightsCfg           `yaml:"weights" json:"weights"`
	Seed             uint64               `yaml:"seed" json:"seed"`
	Parallel         bool                 `yaml:"parallel,omitempty" json:"parallel,omitempty"`
}

// CorridorCfg configures the L2b corridor generator.
type CorridorCfg struct {
	DefaultWidth           float64 `yaml:"default_width" json:"default_width"`
	MinWidth               float64 `yaml:"min_width" json:"min_width"`
	MaxWidth               float64 `yaml:"max_width" json:"max_width"`
	GridResolution         float64 `yaml:"grid_resolution" json:"grid_resolution"`
	Diagonal               bool    `yaml:"diagonal" json:"diagonal"`
	DiagonalCost           float64 `yaml:"diagonal_cost" json:"diagonal_cost"`
	SmoothingIters         int     `yaml:"smoothing_iters" json:"smoothing_iters"`
	ConnectAllEntrances    bool    `yaml:"connect_all_entrances" json:"connect_all_entrances"`
	MaxPathLength          float64 `yaml:"max_path_length" json:"max_path_length"`
	MaxNodes               int     `yaml:"max_nodes" json:"max_nodes"`
	TimeoutMs              int64   `yaml:"timeout_ms" json:"timeout_ms"`
	CorridorAvoidsIlots    bool    `yaml:"corridor_avoids_ilots" json:"corridor_avoids_ilots"`
	RequireRedundantPaths  bool    `yaml:"require_redundant_paths,omitempty" json:"require_redundant_paths,omitempty"`
}

// Config bundles both stage configurations for a single pipeline run.
type Config struct {
	Placement PlacementCfg `yaml:"placement" json:"placement"`
	Corridor  CorridorCfg  `yaml:"corridor" json:"corridor"`
}

// DefaultPlacementCfg returns the stage's documented default values.
func DefaultPlacementCfg() PlacementCfg {
	return PlacementCfg{
		Strategy:         StrategyOptimized,
		MinWallDistance:  0.5,
		MinIlotDistance:  2.0,
		MinDoorClearance: 1.5,
		TargetCoverage:   0.30,
		DefaultWidth:     3.0,
		DefaultHeight:    2.0,
		KindMultipliers: map[IlotKind]float64{
			KindWorkspace: 1.0,
			KindMeeting:   1.3,
			KindSocial:    1.5,
			KindStorage:   0.8,
			KindBreak:     1.2,
		},
		MaxIlots:      50,
		PoissonRadius: 3.0,
		PoissonTries:  30,
		MaxIterations: 1000,
		TimeoutMs:     30000,
		Weights:       WeightsCfg{Space: 0.4, Accessibility: 0.3, Workflow: 0.3},
	}
}

// DefaultCorridorCfg returns the stage's documented default values.
func DefaultCorridorCfg() CorridorCfg {
	return CorridorCfg{
		DefaultWidth:        1.8,
		MinWidth:            1.5,
		MaxWidth:            3.0,
		GridResolution:      0.5,
		Diagonal:            true,
		DiagonalCost:        math.Sqrt2,
		SmoothingIters:      3,
		ConnectAllEntrances: true,
		MaxPathLength:       100,
		MaxNodes:            10000,
		TimeoutMs:           30000,
		CorridorAvoidsIlots: true,
	}
}

// DefaultConfig returns a Config populated with both stage defaults.
func DefaultConfig() Config {
	return Config{Placement: DefaultPlacementCfg(), Corridor: DefaultCorridorCfg()}
}

const weightSumEpsilon = 1e-6

// Validate checks every PlacementCfg field against its documented range.
func (p *PlacementCfg) Validate() error {
	switch p.Strategy {
	case StrategyGrid, StrategyRandom, StrategyOptimized:
	default:
		return fmt.Errorf("strategy must be one of grid, random, optimized, got %q", p.Strategy)
	}
	if p.MinWallDistance < 0 {
		return errors.New("min_wall_distance must be >= 0")
	}
	if p.MinIlotDistance < 0 {
		return errors.New("min_ilot_distance must be >= 0")
	}
	if p.MinDoorClearance < 0 {
		return errors.New("min_door_clearance must be >= 0")
	}
	if p.TargetCoverage < 0 || p.TargetCoverage > 1 {
		return fmt.Errorf("target_coverage must be in [0, 1], got %f", p.TargetCoverage)
	}
	if p.DefaultWidth <= 0 || p.DefaultHeight <= 0 {
		return errors.New("default_width and default_height must be positive")
	}
	for kind, mult := range p.KindMultipliers {
		if mult <= 0 {
			return fmt.Errorf("kind_multipliers[%s] must be positive, got %f", kind, mult)
		}
	}
	if p.MaxIlots < 0 {
		return errors.New("max_ilots must be >= 0")
	}
	if p.PoissonRadius <= 0 {
		return errors.New("poisson_radius must be positive")
	}
	if p.PoissonTries < 1 {
		return errors.New("poisson_tries must be >= 1")
	}
	if p.MaxIterations < 0 {
		return errors.New("max_iterations must be >= 0")
	}
	if p.TimeoutMs < 0 {
		return errors.New("timeout_ms must be >= 0")
	}
	sum := p.Weights.Space + p.Weights.Accessibility + p.Weights.Workflow
	if math.Abs(sum-1.0) > weightSumEpsilon {
		return fmt.Errorf("weights must sum to 1.0 +/- %g, got %f", weightSumEpsilon, sum)
	}
	return nil
}

// Validate checks every CorridorCfg field against its documented range.
func (c *CorridorCfg) Validate() error {
	if c.DefaultWidth <= 0 {
		return errors.New("default_width must be positive")
	}
	if c.MinWidth <= 0 || c.MaxWidth <= 0 || c.MinWidth > c.MaxWidth {
		return fmt.Errorf("min_width (%f) must be positive and <= max_width (%f)", c.MinWidth, c.MaxWidth)
	}
	if c.GridResolution <= 0 {
		return errors.New("grid_resolution must be positive")
	}
	if c.DiagonalCost <= 0 {
		return errors.New("diagonal_cost must be positive")
	}
	if c.SmoothingIters < 0 {
		return errors.New("smoothing_iters must be >= 0")
	}
	if !c.ConnectAllEntrances {
		return errors.New("connect_all_entrances is required to be true")
	}
	if c.MaxPathLength <= 0 {
		return errors.New("max_path_length must be positive")
	}
	if c.MaxNodes < 1 {
		return errors.New("max_nodes must be >= 1")
	}
	if c.TimeoutMs < 0 {
		return errors.New("timeout_ms must be >= 0")
	}
	return nil
}

// Validate checks both stage configurations.
func (c *Config) Validate() error {
	if err := c.Placement.Validate(); err != nil {
		return fmt.Errorf("placement: %w", err)
	}
	if err := c.Corridor.Validate(); err != nil {
		return fmt.Errorf("corridor: %w", err)
	}
	return nil
}

// LoadConfig reads and validates a YAML configuration file. Unknown keys
// are rejected so typos surface as InvalidInput rather than silent defaults
//.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses and validates YAML configuration from a byte
// slice, starting from DefaultConfig so omitted sections keep spec defaults.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

// Hash computes a deterministic hash of the configuration, used for
// deriving per-stage RNG seeds (pkg/rng).
func (c *Config) Hash() []byte {
	data, err := yaml.Marshal(c)
	if err != nil {
		h := sha256.Sum256([]byte(fmt.Sprintf("%d", c.Placement.Seed)))
		return h[:]
	}
	h := sha256.Sum256(data)
	return h[:]
}
