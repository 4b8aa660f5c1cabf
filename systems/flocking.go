package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pond/components"
	"github.com/pthm-cable/pond/config"
)

// Pointer is the per-tick pointer input. The most recent value wins.
type Pointer struct {
	X, Y   float32
	Active bool // false when no pointer is over the pond
}

// FlockParams holds tadpole steering parameters.
type FlockParams struct {
	Radius        float32 // neighbour interaction radius
	Cohesion      float32
	Alignment     float32
	Separation    float32
	MaxSpeed      float32
	Jitter        float32 // random velocity range applied every tick
	FlockNoise    float32 // random velocity range applied when neighbours exist
	RepelDistance float32
	RepelFactor   float32
	TrailEase     float32
}

// FlockParamsFromConfig reads tadpole parameters from the loaded config.
func FlockParamsFromConfig(cfg *config.Config) FlockParams {
	t := cfg.Tadpole
	return FlockParams{
		Radius:        float32(t.InteractionRadius),
		Cohesion:      float32(t.Cohesion),
		Alignment:     float32(t.Alignment),
		Separation:    float32(t.Separation),
		MaxSpeed:      float32(t.MaxSpeed),
		Jitter:        float32(t.Jitter),
		FlockNoise:    float32(t.FlockNoise),
		RepelDistance: float32(t.RepelDistance),
		RepelFactor:   float32(t.RepelFactor),
		TrailEase:     float32(t.TrailEase),
	}
}

// FlockSums accumulates neighbour contributions for one tadpole.
type FlockSums struct {
	SepX, SepY float32 // sum of unit vectors pointing away from neighbours
	VelX, VelY float32 // sum of neighbour velocities
	PosX, PosY float32 // sum of neighbour positions
	Count      int
}

// Add accumulates one neighbour. dx, dy point from the tadpole to the neighbour.
// Coincident neighbours add nothing to separation but still count.
func (s *FlockSums) Add(dx, dy float32, npos components.Position, nvel components.Velocity) {
	d := velocityMagnitude(dx, dy)
	if d > epsilon {
		s.SepX -= dx / d
		s.SepY -= dy / d
	}
	s.VelX += nvel.X
	s.VelY += nvel.Y
	s.PosX += npos.X
	s.PosY += npos.Y
	s.Count++
}

// FlockTadpole advances one tadpole by a tick.
// Neighbour steering is followed by jitter, pointer repulsion, trail easing,
// integration, edge bounce and the speed limit, in that order.
func FlockTadpole(
	pos *components.Position,
	vel *components.Velocity,
	trail *components.Trail,
	radius float32,
	sums FlockSums,
	ptr Pointer,
	p FlockParams,
	b Bounds,
	rng *rand.Rand,
) {
	if sums.Count > 0 {
		n := float32(sums.Count)
		cohX := (sums.PosX/n - pos.X) * p.Cohesion
		cohY := (sums.PosY/n - pos.Y) * p.Cohesion
		aliX := (sums.VelX/n - vel.X) * p.Alignment
		aliY := (sums.VelY/n - vel.Y) * p.Alignment
		sepX := sums.SepX / n * p.Separation
		sepY := sums.SepY / n * p.Separation

		vel.X += sepX + aliX + cohX
		vel.Y += sepY + aliY + cohY

		// Lets individuals break away from the group
		vel.X += randomSpread(rng, p.FlockNoise)
		vel.Y += randomSpread(rng, p.FlockNoise)
	}

	vel.X += randomSpread(rng, p.Jitter)
	vel.Y += randomSpread(rng, p.Jitter)

	if ptr.Active {
		dx := pos.X - ptr.X
		dy := pos.Y - ptr.Y
		d := velocityMagnitude(dx, dy)
		if d < p.RepelDistance && d > epsilon {
			vel.X += dx / d * p.RepelFactor
			vel.Y += dy / d * p.RepelFactor
		}
	}

	// Trail follows the pre-move position
	t1, t2 := &trail.Points[0], &trail.Points[1]
	t2.X += (t1.X - t2.X) * p.TrailEase
	t2.Y += (t1.Y - t2.Y) * p.TrailEase
	t1.X += (pos.X - t1.X) * p.TrailEase
	t1.Y += (pos.Y - t1.Y) * p.TrailEase

	pos.X += vel.X
	pos.Y += vel.Y

	// Reflect only; tadpoles are never clamped back inside
	if pos.X-radius <= b.MinX() || pos.X+radius >= b.MaxX() {
		vel.X = -vel.X
	}
	if pos.Y-radius <= b.MinY() || pos.Y+radius >= b.MaxY() {
		vel.Y = -vel.Y
	}

	limitSpeed(vel, p.MaxSpeed)
}

// maxStep bounds how far a tadpole can travel in one tick before its speed is limited.
func maxStep(p FlockParams) float32 {
	abs := func(v float32) float32 { return float32(math.Abs(float64(v))) }
	steer := p.Radius*abs(p.Cohesion) + 2*p.MaxSpeed*abs(p.Alignment) + abs(p.Separation)
	return p.MaxSpeed + steer + p.FlockNoise + p.Jitter + p.RepelFactor
}

// FlockingSystem steers every tadpole each tick.
type FlockingSystem struct {
	filter *ecs.Filter4[components.Position, components.Velocity, components.Body, components.Trail]
	posMap *ecs.Map1[components.Position]
	velMap *ecs.Map1[components.Velocity]
	grid   *SpatialGrid

	params    FlockParams
	bounds    Bounds
	neighbors []Neighbor
}

// NewFlockingSystem creates a flocking system over all tadpoles in world.
func NewFlockingSystem(world *ecs.World, params FlockParams, bounds Bounds, cellSize float32) *FlockingSystem {
	grid := NewSpatialGrid(bounds.Width, bounds.Height, cellSize)
	grid.SetMargin(maxStep(params))
	return &FlockingSystem{
		filter: ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Trail](world),
		posMap: ecs.NewMap1[components.Position](world),
		velMap: ecs.NewMap1[components.Velocity](world),
		grid:   grid,
		params: params,
		bounds: bounds,
	}
}

// Params returns the current steering parameters.
func (s *FlockingSystem) Params() FlockParams {
	return s.params
}

// SetWeights replaces the cohesion, alignment and separation weights.
func (s *FlockingSystem) SetWeights(cohesion, alignment, separation float32) {
	s.params.Cohesion = cohesion
	s.params.Alignment = alignment
	s.params.Separation = separation
	s.grid.SetMargin(maxStep(s.params))
}

// Update runs one flocking tick. Neighbour state is read live, so tadpoles
// earlier in iteration order have already moved when later ones look at them.
func (s *FlockingSystem) Update(rng *rand.Rand, ptr Pointer) {
	s.grid.Clear()
	query := s.filter.Query()
	for query.Next() {
		pos, _, _, _ := query.Get()
		s.grid.Insert(query.Entity(), pos.X, pos.Y)
	}

	query = s.filter.Query()
	for query.Next() {
		e := query.Entity()
		pos, vel, body, trail := query.Get()

		s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], pos.X, pos.Y, s.params.Radius, e, s.posMap)

		var sums FlockSums
		for _, n := range s.neighbors {
			sums.Add(n.DX, n.DY, *s.posMap.Get(n.E), *s.velMap.Get(n.E))
		}

		FlockTadpole(pos, vel, trail, body.Radius, sums, ptr, s.params, s.bounds, rng)
	}
}

// FlockMetrics summarises the flock for telemetry.
type FlockMetrics struct {
	Count        int
	MeanSpeed    float64
	Polarisation float64 // 1 when every tadpole heads the same way, 0 when headings cancel
	MeanCrowding float64 // mean neighbour count within the interaction radius
}

// Metrics computes flock summary statistics from the current state.
func (s *FlockingSystem) Metrics() FlockMetrics {
	var m FlockMetrics
	var sumHX, sumHY, sumSpeed float64
	var crowd int

	query := s.filter.Query()
	for query.Next() {
		e := query.Entity()
		pos, vel, _, _ := query.Get()
		speed := float64(velocityMagnitude(vel.X, vel.Y))
		sumSpeed += speed
		if speed > epsilon {
			sumHX += float64(vel.X) / speed
			sumHY += float64(vel.Y) / speed
		}
		s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], pos.X, pos.Y, s.params.Radius, e, s.posMap)
		crowd += len(s.neighbors)
		m.Count++
	}

	if m.Count > 0 {
		n := float64(m.Count)
		m.MeanSpeed = sumSpeed / n
		m.Polarisation = math.Hypot(sumHX, sumHY) / n
		m.MeanCrowding = float64(crowd) / n
	}
	return m
}
