package game

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"
	"github.com/paulmach/orb"

	"github.com/pthm-cable/pond/components"
	"github.com/pthm-cable/pond/systems"
)

// spawnTadpoles creates the flock at random points in the play area.
func (g *Game) spawnTadpoles() {
	cfg := g.cfg
	radius := float32(cfg.Tadpole.Radius)

	for i := 0; i < cfg.Tadpole.Count; i++ {
		x, y := g.bounds.RandomPoint(g.rng, 0)
		pos := components.Position{X: x, Y: y}
		vel := components.Velocity{X: g.rng.Float32()*2 - 1, Y: g.rng.Float32()*2 - 1}
		body := components.Body{Radius: radius}
		trail := components.NewTrail(pos)
		g.tadpoleMapper.NewEntity(&pos, &vel, &body, &trail)
	}
}

// spawnFish creates the fish, keeping each clear of the banks by its size.
func (g *Game) spawnFish() {
	cfg := g.cfg
	b := g.bounds

	for i := 0; i < cfg.Fish.Count; i++ {
		size := float32(cfg.Fish.MinSize + g.rng.Float64()*(cfg.Fish.MaxSize-cfg.Fish.MinSize))
		x := b.MinX() + 2*size + g.rng.Float32()*(b.MaxX()-b.MinX()-4*size)
		y := b.MinY() + size + g.rng.Float32()*(b.MaxY()-b.MinY()-2*size)
		heading := g.rng.Float32() * 2 * math.Pi

		pos := components.Position{X: x, Y: y}
		vel := components.Velocity{
			X: float32(math.Cos(float64(heading))) * float32(cfg.Fish.MinSpeed),
			Y: float32(math.Sin(float64(heading))) * float32(cfg.Fish.MinSpeed),
		}
		rot := components.Rotation{Heading: heading}
		body := components.Body{Radius: size}
		fish := components.Forager{Wiggle: g.rng.Float32() * 2 * math.Pi}
		g.fishMapper.NewEntity(&pos, &vel, &rot, &body, &fish)
	}
}

// spawnPads creates the lily pads with a gentle drift and spin.
func (g *Game) spawnPads() {
	cfg := g.cfg
	speed := float32(cfg.LilyPad.InitialSpeed)
	spin := float32(cfg.LilyPad.Spin)

	for i := 0; i < cfg.LilyPad.Count; i++ {
		size := float32(cfg.LilyPad.MinSize + g.rng.Float64()*(cfg.LilyPad.MaxSize-cfg.LilyPad.MinSize))
		x, y := g.bounds.RandomPoint(g.rng, size)

		pos := components.Position{X: x, Y: y}
		vel := components.Velocity{X: (g.rng.Float32() - 0.5) * speed, Y: (g.rng.Float32() - 0.5) * speed}
		rot := components.Rotation{Heading: g.rng.Float32() * 2 * math.Pi, AngVel: (g.rng.Float32() - 0.5) * spin}
		body := components.Body{Radius: size}
		pad := components.Floater{HasFlower: g.rng.Float64() < cfg.LilyPad.FlowerChance}
		g.padMapper.NewEntity(&pos, &vel, &rot, &body, &pad)
	}
}

// SpawnFood drops a fresh food item at (x, y).
func (g *Game) SpawnFood(x, y float32) ecs.Entity {
	food := components.NewFood(float32(g.cfg.Food.InitialSize), g.clock(), g.cfg.Derived.FoodLifetime)
	e := g.foods.Spawn(x, y, food, systems.NewFoodShape(g.rng))
	g.collector.RecordFoodSpawned()

	slog.Info("food_spawned", "tick", g.tick, "x", x, "y", y, "live", g.foods.Len())
	return e
}

// randomWaterPoint picks a point in the play area that is also inside the
// pond outline, falling back to the pond centroid.
func (g *Game) randomWaterPoint() (x, y float32) {
	for i := 0; i < 32; i++ {
		x, y = g.bounds.RandomPoint(g.rng, 0)
		if g.pond.Contains(float64(x), float64(y)) {
			return x, y
		}
	}
	c := g.pond.Centroid()
	return float32(c.X()), float32(c.Y())
}

// playArea returns the inset rectangle as an orb bound.
func (g *Game) playArea() orb.Bound {
	b := g.bounds
	return orb.Bound{
		Min: orb.Point{float64(b.MinX()), float64(b.MinY())},
		Max: orb.Point{float64(b.MaxX()), float64(b.MaxY())},
	}
}
