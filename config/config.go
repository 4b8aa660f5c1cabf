// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Boundary  BoundaryConfig  `yaml:"boundary"`
	Tadpole   TadpoleConfig   `yaml:"tadpole"`
	Fish      FishConfig      `yaml:"fish"`
	LilyPad   LilyPadConfig   `yaml:"lily_pad"`
	Food      FoodConfig      `yaml:"food"`
	Decor     DecorConfig     `yaml:"decor"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds pond world dimensions.
type WorldConfig struct {
	Width     int     `yaml:"width"`     // 0 = use screen width
	Height    int     `yaml:"height"`    // 0 = use screen height
	Thickness float64 `yaml:"thickness"` // bank thickness, inset of the play rectangle
}

// PhysicsConfig holds tick parameters.
type PhysicsConfig struct {
	DT           float64 `yaml:"dt"`             // seconds per tick, used by the simulated clock
	GridCellSize float64 `yaml:"grid_cell_size"` // 0 = tadpole interaction radius
}

// BoundaryConfig holds pond outline generation parameters.
// Absolute values win over the *_frac values, which scale with min(world dims).
type BoundaryConfig struct {
	Variation           float64 `yaml:"variation"`
	VariationFrac       float64 `yaml:"variation_frac"`
	CornerBuffer        float64 `yaml:"corner_buffer"`
	CornerBufferFrac    float64 `yaml:"corner_buffer_frac"`
	CornerThreshold     float64 `yaml:"corner_threshold"`
	CornerThresholdFrac float64 `yaml:"corner_threshold_frac"`
	MinPointsPerSide    int     `yaml:"min_points_per_side"`
	MaxPointsPerSide    int     `yaml:"max_points_per_side"`
	Attempts            int     `yaml:"attempts"` // regenerations before giving up
}

// TadpoleConfig holds flocking agent parameters.
type TadpoleConfig struct {
	Count             int     `yaml:"count"`
	Radius            float64 `yaml:"radius"`
	InteractionRadius float64 `yaml:"interaction_radius"`
	Cohesion          float64 `yaml:"cohesion"`
	Alignment         float64 `yaml:"alignment"`
	Separation        float64 `yaml:"separation"`
	MaxSpeed          float64 `yaml:"max_speed"`
	Jitter            float64 `yaml:"jitter"`      // per-tick random velocity range
	FlockNoise        float64 `yaml:"flock_noise"` // extra random range when neighbours exist
	RepelDistance     float64 `yaml:"repel_distance"`
	RepelFactor       float64 `yaml:"repel_factor"`
	TrailEase         float64 `yaml:"trail_ease"`
}

// FishConfig holds foraging agent parameters.
type FishConfig struct {
	Count            int     `yaml:"count"`
	MinSize          float64 `yaml:"min_size"`
	MaxSize          float64 `yaml:"max_size"`
	DetectionRadius  float64 `yaml:"detection_radius"`
	ConsumeRadius    float64 `yaml:"consume_radius"`
	BiteSize         float64 `yaml:"bite_size"`
	Growth           float64 `yaml:"growth"`
	GrowthCap        float64 `yaml:"growth_cap"` // 0 = unbounded
	SteerSpeed       float64 `yaml:"steer_speed"`
	SearchJitter     float64 `yaml:"search_jitter"`
	Easing           float64 `yaml:"easing"`
	EdgeBufferFactor float64 `yaml:"edge_buffer_factor"`
	EdgeCorrection   float64 `yaml:"edge_correction"`
	MinSpeed         float64 `yaml:"min_speed"`
	MaxSpeed         float64 `yaml:"max_speed"`
	WiggleFactor     float64 `yaml:"wiggle_factor"`
}

// LilyPadConfig holds floating body parameters.
type LilyPadConfig struct {
	Count        int     `yaml:"count"`
	MinSize      float64 `yaml:"min_size"`
	MaxSize      float64 `yaml:"max_size"`
	InitialSpeed float64 `yaml:"initial_speed"` // per-axis velocity range
	Spin         float64 `yaml:"spin"`          // rotation speed range (radians/tick)
	MaxSpeed     float64 `yaml:"max_speed"`
	FlowerChance float64 `yaml:"flower_chance"`
}

// FoodConfig holds food resource parameters.
type FoodConfig struct {
	InitialSize   float64 `yaml:"initial_size"`
	Lifetime      float64 `yaml:"lifetime"`        // seconds
	AutoDropTicks int     `yaml:"auto_drop_ticks"` // headless food drops, 0 = off
}

// DecorConfig holds static bank decoration parameters.
type DecorConfig struct {
	Rocks        int     `yaml:"rocks"`
	Grass        int     `yaml:"grass"`         // 0 = world area * grass_density
	GrassDensity float64 `yaml:"grass_density"` // tufts attempted per square unit
	MinRockSize  float64 `yaml:"min_rock_size"`
	MaxRockSize  float64 `yaml:"max_rock_size"`
	EdgeRocks    bool    `yaml:"edge_rocks"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32            float32       // Physics.DT as float32
	TickDuration    time.Duration // Physics.DT as a duration
	WorldW32        float32       // Effective world width
	WorldH32        float32       // Effective world height
	Thickness32     float32       // World.Thickness as float32
	Variation       float64       // Resolved boundary variation
	CornerBuffer    float64       // Resolved boundary corner buffer
	CornerThreshold float64       // Resolved boundary corner threshold
	GridCellSize    float32       // Resolved spatial grid cell size
	FoodLifetime    time.Duration // Food.Lifetime as a duration
	GrassCount      int           // Resolved grass placement attempts
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.TickDuration = time.Duration(c.Physics.DT * float64(time.Second))

	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)
	c.Derived.Thickness32 = float32(c.World.Thickness)

	// Boundary constants scale with the smaller world dimension unless pinned
	minDim := math.Min(float64(worldW), float64(worldH))
	c.Derived.Variation = resolve(c.Boundary.Variation, c.Boundary.VariationFrac, minDim)
	c.Derived.CornerBuffer = resolve(c.Boundary.CornerBuffer, c.Boundary.CornerBufferFrac, minDim)
	c.Derived.CornerThreshold = resolve(c.Boundary.CornerThreshold, c.Boundary.CornerThresholdFrac, minDim)

	c.Derived.GridCellSize = float32(c.Physics.GridCellSize)
	if c.Derived.GridCellSize <= 0 {
		c.Derived.GridCellSize = float32(c.Tadpole.InteractionRadius)
	}

	c.Derived.FoodLifetime = time.Duration(c.Food.Lifetime * float64(time.Second))

	c.Derived.GrassCount = c.Decor.Grass
	if c.Derived.GrassCount == 0 {
		c.Derived.GrassCount = int(float64(worldW*worldH) * c.Decor.GrassDensity)
	}
}

func resolve(abs, frac, minDim float64) float64 {
	if abs > 0 {
		return abs
	}
	return frac * minDim
}

// Validate checks parameter ranges that would otherwise produce degenerate geometry.
func (c *Config) Validate() error {
	w, h := float64(c.Derived.WorldW32), float64(c.Derived.WorldH32)
	switch {
	case w <= 0 || h <= 0:
		return fmt.Errorf("%w: world must be positive, got %vx%v", ErrInvalidConfig, w, h)
	case c.World.Thickness < 0 || 2*c.World.Thickness >= math.Min(w, h):
		return fmt.Errorf("%w: thickness %v does not fit a %vx%v world", ErrInvalidConfig, c.World.Thickness, w, h)
	case c.Boundary.MinPointsPerSide < 2:
		return fmt.Errorf("%w: boundary.min_points_per_side must be >= 2, got %d", ErrInvalidConfig, c.Boundary.MinPointsPerSide)
	case c.Boundary.MaxPointsPerSide < c.Boundary.MinPointsPerSide:
		return fmt.Errorf("%w: boundary.max_points_per_side %d < min %d", ErrInvalidConfig, c.Boundary.MaxPointsPerSide, c.Boundary.MinPointsPerSide)
	case c.Tadpole.MaxSpeed <= 0:
		return fmt.Errorf("%w: tadpole.max_speed must be positive", ErrInvalidConfig)
	case c.Fish.MinSpeed <= 0 || c.Fish.MaxSpeed < c.Fish.MinSpeed:
		return fmt.Errorf("%w: fish speed bounds [%v, %v]", ErrInvalidConfig, c.Fish.MinSpeed, c.Fish.MaxSpeed)
	case c.Fish.MaxSize < c.Fish.MinSize:
		return fmt.Errorf("%w: fish size bounds [%v, %v]", ErrInvalidConfig, c.Fish.MinSize, c.Fish.MaxSize)
	case c.LilyPad.MaxSize < c.LilyPad.MinSize:
		return fmt.Errorf("%w: lily pad size bounds [%v, %v]", ErrInvalidConfig, c.LilyPad.MinSize, c.LilyPad.MaxSize)
	case c.LilyPad.MaxSpeed < padSpeedBound(c.LilyPad):
		return fmt.Errorf("%w: lily_pad.max_speed %v below reachable speed %.3f", ErrInvalidConfig, c.LilyPad.MaxSpeed, padSpeedBound(c.LilyPad))
	case c.Tadpole.Cohesion < 0 || c.Tadpole.Alignment < 0 || c.Tadpole.Separation < 0:
		return fmt.Errorf("%w: tadpole weights must be non-negative", ErrInvalidConfig)
	case c.Food.InitialSize <= 0:
		return fmt.Errorf("%w: food.initial_size must be positive", ErrInvalidConfig)
	case c.Physics.DT <= 0:
		return fmt.Errorf("%w: physics.dt must be positive", ErrInvalidConfig)
	}
	return nil
}

// padSpeedBound is the fastest any single pad can move. Pads spawn with
// per-axis velocity in ±InitialSpeed/2 and collisions conserve kinetic energy.
func padSpeedBound(p LilyPadConfig) float64 {
	return math.Sqrt(float64(p.Count)/2) * p.InitialSpeed
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
