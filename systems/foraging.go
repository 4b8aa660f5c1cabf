package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pond/components"
	"github.com/pthm-cable/pond/config"
)

// ForageParams holds fish behaviour parameters.
type ForageParams struct {
	DetectionRadius  float32
	ConsumeRadius    float32
	BiteSize         float32
	Growth           float32
	GrowthCap        float32 // 0 = unbounded
	SteerSpeed       float32
	SearchJitter     float32
	Easing           float32
	EdgeBufferFactor float32
	EdgeCorrection   float32
	MinSpeed         float32
	MaxSpeed         float32
	WiggleFactor     float32
}

// ForageParamsFromConfig reads fish parameters from the loaded config.
func ForageParamsFromConfig(cfg *config.Config) ForageParams {
	f := cfg.Fish
	return ForageParams{
		DetectionRadius:  float32(f.DetectionRadius),
		ConsumeRadius:    float32(f.ConsumeRadius),
		BiteSize:         float32(f.BiteSize),
		Growth:           float32(f.Growth),
		GrowthCap:        float32(f.GrowthCap),
		SteerSpeed:       float32(f.SteerSpeed),
		SearchJitter:     float32(f.SearchJitter),
		Easing:           float32(f.Easing),
		EdgeBufferFactor: float32(f.EdgeBufferFactor),
		EdgeCorrection:   float32(f.EdgeCorrection),
		MinSpeed:         float32(f.MinSpeed),
		MaxSpeed:         float32(f.MaxSpeed),
		WiggleFactor:     float32(f.WiggleFactor),
	}
}

// ForageEvent reports what a fish did this tick.
type ForageEvent struct {
	Acquired bool // picked a new target
	Lost     bool // target vanished before it was eaten
	Bit      bool // took a bite
	Emptied  bool // the bite finished the food
}

// ForageFish advances one fish by a tick.
func ForageFish(
	pos *components.Position,
	vel *components.Velocity,
	rot *components.Rotation,
	body *components.Body,
	fish *components.Forager,
	foods FoodSource,
	p ForageParams,
	b Bounds,
	rng *rand.Rand,
) ForageEvent {
	var ev ForageEvent
	if fish.Destroyed {
		return ev
	}

	if !fish.HasTarget {
		detectSq := p.DetectionRadius * p.DetectionRadius
		for _, e := range foods.Entities() {
			fpos, food, ok := foods.Resolve(e)
			if !ok || food.Destroyed {
				continue
			}
			if distanceSq(pos.X, pos.Y, fpos.X, fpos.Y) < detectSq {
				fish.SetTarget(e)
				ev.Acquired = true
				break
			}
		}
	}

	if fish.HasTarget {
		fpos, food, ok := foods.Resolve(fish.Target)
		if !ok || food.Destroyed {
			fish.ClearTarget()
			ev.Lost = true
		} else {
			dx := fpos.X - pos.X
			dy := fpos.Y - pos.Y
			d := velocityMagnitude(dx, dy)
			if d < p.ConsumeRadius {
				ev.Bit = true
				if food.ReduceSize(p.BiteSize) {
					grow(body, p)
					fish.State = components.StateConsuming
				} else {
					ev.Emptied = true
					fish.ClearTarget()
				}
			} else {
				vel.X = dx / d * p.SteerSpeed
				vel.Y = dy / d * p.SteerSpeed
				fish.State = components.StateTracking
			}
		}
	} else {
		vel.X += randomSpread(rng, p.SearchJitter)
		vel.Y += randomSpread(rng, p.SearchJitter)
	}

	// The tail wiggles with the steered speed, before easing and edge turns
	fish.Wiggle += velocityMagnitude(vel.X, vel.Y) * p.WiggleFactor

	vel.X += randomSpread(rng, p.Easing)
	vel.Y += randomSpread(rng, p.Easing)

	// Turn away from the play area edges before reaching them
	buffer := body.Radius * p.EdgeBufferFactor
	if pos.X-buffer <= b.MinX() {
		vel.X += p.EdgeCorrection
	} else if pos.X+buffer >= b.MaxX() {
		vel.X -= p.EdgeCorrection
	}
	if pos.Y-buffer <= b.MinY() {
		vel.Y += p.EdgeCorrection
	} else if pos.Y+buffer >= b.MaxY() {
		vel.Y -= p.EdgeCorrection
	}

	pos.X += vel.X
	pos.Y += vel.Y

	speed := velocityMagnitude(vel.X, vel.Y)
	if speed > epsilon {
		rot.Heading = float32(math.Atan2(float64(vel.Y), float64(vel.X)))
	}

	switch {
	case speed > p.MaxSpeed:
		vel.X = vel.X / speed * p.MaxSpeed
		vel.Y = vel.Y / speed * p.MaxSpeed
	case speed < p.MinSpeed && speed > epsilon:
		vel.X = vel.X / speed * p.MinSpeed
		vel.Y = vel.Y / speed * p.MinSpeed
	case speed <= epsilon:
		// Stalled: restart along the current heading
		vel.X = float32(math.Cos(float64(rot.Heading))) * p.MinSpeed
		vel.Y = float32(math.Sin(float64(rot.Heading))) * p.MinSpeed
	}

	return ev
}

func grow(body *components.Body, p ForageParams) {
	body.Radius += p.Growth
	if p.GrowthCap > 0 && body.Radius > p.GrowthCap {
		body.Radius = p.GrowthCap
	}
}

// ForageTickStats aggregates fish events over one tick.
type ForageTickStats struct {
	Acquired int
	Lost     int
	Bites    int
	Emptied  int
}

// ForagingSystem runs every fish against the live food collection.
type ForagingSystem struct {
	filter *ecs.Filter5[components.Position, components.Velocity, components.Rotation, components.Body, components.Forager]
	params ForageParams
	bounds Bounds
}

// NewForagingSystem creates a foraging system over all fish in world.
func NewForagingSystem(world *ecs.World, params ForageParams, bounds Bounds) *ForagingSystem {
	return &ForagingSystem{
		filter: ecs.NewFilter5[components.Position, components.Velocity, components.Rotation, components.Body, components.Forager](world),
		params: params,
		bounds: bounds,
	}
}

// Params returns the fish parameters.
func (s *ForagingSystem) Params() ForageParams {
	return s.params
}

// Update runs one foraging tick.
func (s *ForagingSystem) Update(rng *rand.Rand, foods FoodSource) ForageTickStats {
	var st ForageTickStats
	query := s.filter.Query()
	for query.Next() {
		pos, vel, rot, body, fish := query.Get()
		ev := ForageFish(pos, vel, rot, body, fish, foods, s.params, s.bounds, rng)
		if ev.Acquired {
			st.Acquired++
		}
		if ev.Lost {
			st.Lost++
		}
		if ev.Bit {
			st.Bites++
		}
		if ev.Emptied {
			st.Emptied++
		}
	}
	return st
}
