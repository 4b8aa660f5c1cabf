// Package game wires the pond systems into a runnable simulation.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pond/components"
	"github.com/pthm-cable/pond/config"
	"github.com/pthm-cable/pond/systems"
	"github.com/pthm-cable/pond/telemetry"
	"github.com/pthm-cable/pond/ui"
)

// Options configures game initialization.
type Options struct {
	Seed           int64                             // 0 = time-based
	Headless       bool                              // skip raylib resources
	StepsPerUpdate int                               // ticks per Update call
	LogStats       bool                              // log window stats via slog
	StatsWindowSec float64                           // 0 = config telemetry.stats_window
	OutputDir      string                            // CSV, config and GeoJSON output; empty = off
	FoodEvery      int                               // drop food every N ticks at a random pond point; 0 = config food.auto_drop_ticks
	Clock          func() time.Time                  // nil = wall clock, or simulated time when headless
	StatsCallback  func(stats telemetry.WindowStats) // called on every flushed window
}

// Game holds the complete pond state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	seed  int64
	cfg   *config.Config

	// Entity mappers
	tadpoleMapper *ecs.Map4[components.Position, components.Velocity, components.Body, components.Trail]
	fishMapper    *ecs.Map5[components.Position, components.Velocity, components.Rotation, components.Body, components.Forager]
	padMapper     *ecs.Map5[components.Position, components.Velocity, components.Rotation, components.Body, components.Floater]

	// Read-only views for sampling and drawing
	tadpoleFilter *ecs.Filter3[components.Position, components.Body, components.Trail]
	fishFilter    *ecs.Filter4[components.Position, components.Rotation, components.Body, components.Forager]
	padFilter     *ecs.Filter4[components.Position, components.Rotation, components.Body, components.Floater]

	// Systems
	pond     *systems.Boundary
	bounds   systems.Bounds
	decor    []systems.DecorItem
	foods    *systems.FoodStore
	flocking *systems.FlockingSystem
	foraging *systems.ForagingSystem
	floating *systems.FloatingSystem

	// Input
	pointer   systems.Pointer
	foodEvery int
	clock     func() time.Time
	startTime time.Time

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
	lastStats        telemetry.WindowStats

	// State
	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int

	// Graphics-only state
	hud          *ui.HUD
	perfPanel    *ui.PerfPanel
	weightsPanel *ui.WeightsPanel
	showPerf     bool
}

// NewGame creates a game with default options.
func NewGame() (*Game, error) {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions creates a new game with the loaded config and options.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	foodEvery := opts.FoodEvery
	if foodEvery <= 0 {
		foodEvery = cfg.Food.AutoDropTicks
	}

	g := &Game{
		world:          world,
		rng:            rand.New(rand.NewSource(seed)),
		seed:           seed,
		cfg:            cfg,
		headless:       opts.Headless,
		stepsPerUpdate: stepsPerUpdate,
		foodEvery:      foodEvery,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		bounds: systems.Bounds{
			Width:     cfg.Derived.WorldW32,
			Height:    cfg.Derived.WorldH32,
			Thickness: cfg.Derived.Thickness32,
		},

		tadpoleMapper: ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Trail](world),
		fishMapper:    ecs.NewMap5[components.Position, components.Velocity, components.Rotation, components.Body, components.Forager](world),
		padMapper:     ecs.NewMap5[components.Position, components.Velocity, components.Rotation, components.Body, components.Floater](world),
		tadpoleFilter: ecs.NewFilter3[components.Position, components.Body, components.Trail](world),
		fishFilter:    ecs.NewFilter4[components.Position, components.Rotation, components.Body, components.Forager](world),
		padFilter:     ecs.NewFilter4[components.Position, components.Rotation, components.Body, components.Floater](world),

		collector:        telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
	}

	g.startTime = time.Now()
	g.clock = opts.Clock
	if g.clock == nil {
		if opts.Headless {
			g.clock = g.simulatedNow
		} else {
			g.clock = time.Now
		}
	}

	if err := g.buildPond(); err != nil {
		return nil, err
	}

	g.foods = systems.NewFoodStore(world)
	g.flocking = systems.NewFlockingSystem(world, systems.FlockParamsFromConfig(cfg), g.bounds, cfg.Derived.GridCellSize)
	g.foraging = systems.NewForagingSystem(world, systems.ForageParamsFromConfig(cfg), g.bounds)
	g.floating = systems.NewFloatingSystem(world, systems.FloatParamsFromConfig(cfg), g.bounds)

	g.spawnTadpoles()
	g.spawnFish()
	g.spawnPads()

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
	if err := om.WriteBoundary(g.pond.Polygon(), g.playArea()); err != nil {
		slog.Error("failed to write boundary", "error", err)
	}

	if !opts.Headless {
		p := g.flocking.Params()
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(int32(cfg.Screen.Width)-230, 10)
		g.weightsPanel = ui.NewWeightsPanel(10, 100, 260, ui.Weights{
			Cohesion:   p.Cohesion,
			Alignment:  p.Alignment,
			Separation: p.Separation,
		})
	}

	slog.Info("simulation_started",
		"seed", seed,
		"world_w", g.bounds.Width,
		"world_h", g.bounds.Height,
		"tadpoles", cfg.Tadpole.Count,
		"fish", cfg.Fish.Count,
		"lily_pads", cfg.LilyPad.Count,
		"food_every", g.foodEvery,
	)

	return g, nil
}

// buildPond generates the pond outline and scatters the bank decor.
func (g *Game) buildPond() error {
	params := systems.BoundaryParamsFromConfig(g.cfg)
	pond, rejected, err := systems.GenerateBoundaryRetry(g.rng, params, g.cfg.Boundary.Attempts)
	if rejected > 0 {
		slog.Warn("boundary_rejected", "attempts", rejected)
	}
	if err != nil {
		return fmt.Errorf("generating pond boundary: %w", err)
	}
	g.pond = pond

	counts := pond.SideCounts()
	slog.Info("boundary_generated",
		"points", len(pond.Points()),
		"top", counts[systems.SideTop],
		"right", counts[systems.SideRight],
		"bottom", counts[systems.SideBottom],
		"left", counts[systems.SideLeft],
		"area", pond.Area(),
	)

	g.decor = systems.ScatterDecor(g.rng, pond, systems.DecorParamsFromConfig(g.cfg))
	return nil
}

// simulatedNow advances one tick duration per simulation tick.
func (g *Game) simulatedNow() time.Time {
	return g.startTime.Add(time.Duration(g.tick) * g.cfg.Derived.TickDuration)
}

// SetPointer sets the pointer input used by the next ticks.
func (g *Game) SetPointer(p systems.Pointer) {
	g.pointer = p
}

// Pointer returns the current pointer input.
func (g *Game) Pointer() systems.Pointer {
	return g.pointer
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// SetWeights replaces the flocking steering weights.
func (g *Game) SetWeights(cohesion, alignment, separation float32) {
	g.flocking.SetWeights(cohesion, alignment, separation)
}

// FishEntities returns handles of every fish, destroyed or not.
func (g *Game) FishEntities() []ecs.Entity {
	var out []ecs.Entity
	query := g.fishFilter.Query()
	for query.Next() {
		out = append(out, query.Entity())
	}
	return out
}

// DestroyFish takes a fish out of play. It stops moving and drops any target.
// Returns false if e is not a fish.
func (g *Game) DestroyFish(e ecs.Entity) bool {
	if !g.world.Alive(e) || !g.fishMapper.HasAll(e) {
		return false
	}
	_, _, _, _, fish := g.fishMapper.Get(e)
	fish.Destroy()
	return true
}

// Pond returns the generated pond outline.
func (g *Game) Pond() *systems.Boundary {
	return g.pond
}

// Bounds returns the inset rectangle agents move within.
func (g *Game) Bounds() systems.Bounds {
	return g.bounds
}

// Decor returns the static bank decorations.
func (g *Game) Decor() []systems.DecorItem {
	return g.decor
}

// Foods returns the live food store.
func (g *Game) Foods() *systems.FoodStore {
	return g.foods
}

// FlockMetrics returns the current flock summary.
func (g *Game) FlockMetrics() systems.FlockMetrics {
	return g.flocking.Metrics()
}

// LastStats returns the most recently flushed telemetry window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}

// Seed returns the RNG seed in use.
func (g *Game) Seed() int64 {
	return g.seed
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Unload releases output files.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
