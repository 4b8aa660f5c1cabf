package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pond/components"
	"github.com/pthm-cable/pond/config"
)

// FloatParams holds lily pad parameters.
type FloatParams struct {
	MaxSpeed float32
}

// FloatParamsFromConfig reads lily pad parameters from the loaded config.
func FloatParamsFromConfig(cfg *config.Config) FloatParams {
	return FloatParams{MaxSpeed: float32(cfg.LilyPad.MaxSpeed)}
}

// CollidePads resolves overlap between two pads of equal mass.
// The normal components of their velocities are exchanged and each pad is
// pushed out by half the overlap. Coincident centres are skipped.
// Returns true if the pads overlapped.
func CollidePads(
	posA *components.Position, velA *components.Velocity, sizeA float32,
	posB *components.Position, velB *components.Velocity, sizeB float32,
) bool {
	dx := posA.X - posB.X
	dy := posA.Y - posB.Y
	d := velocityMagnitude(dx, dy)
	minDist := sizeA + sizeB
	if d >= minDist || d <= epsilon {
		return false
	}

	nx := dx / d
	ny := dy / d

	impulse := -((velA.X-velB.X)*nx + (velA.Y-velB.Y)*ny)
	velA.X += impulse * nx
	velA.Y += impulse * ny
	velB.X -= impulse * nx
	velB.Y -= impulse * ny

	push := (minDist - d) * 0.5
	posA.X += push * nx
	posA.Y += push * ny
	posB.X -= push * nx
	posB.Y -= push * ny

	return true
}

// ContainPad reflects a pad off the play area edges and clamps it inside.
func ContainPad(pos *components.Position, vel *components.Velocity, size float32, b Bounds) {
	minX, maxX := b.MinX()+size, b.MaxX()-size
	minY, maxY := b.MinY()+size, b.MaxY()-size

	if pos.X < minX || pos.X > maxX {
		vel.X = -vel.X
	}
	if pos.Y < minY || pos.Y > maxY {
		vel.Y = -vel.Y
	}

	pos.X = clampPad(pos.X, minX, maxX)
	pos.Y = clampPad(pos.Y, minY, maxY)
}

// clampPad is clampFloat that tolerates a pad wider than the play area.
func clampPad(v, lo, hi float32) float32 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return clampFloat(v, lo, hi)
}

// FloatingSystem moves lily pads and resolves their collisions.
type FloatingSystem struct {
	filter *ecs.Filter5[components.Position, components.Velocity, components.Rotation, components.Body, components.Floater]
	mapper *ecs.Map4[components.Position, components.Velocity, components.Rotation, components.Body]
	params FloatParams
	bounds Bounds
	pads   []ecs.Entity
}

// NewFloatingSystem creates a floating system over all lily pads in world.
func NewFloatingSystem(world *ecs.World, params FloatParams, bounds Bounds) *FloatingSystem {
	return &FloatingSystem{
		filter: ecs.NewFilter5[components.Position, components.Velocity, components.Rotation, components.Body, components.Floater](world),
		mapper: ecs.NewMap4[components.Position, components.Velocity, components.Rotation, components.Body](world),
		params: params,
		bounds: bounds,
	}
}

// Update runs one floating tick and returns the number of overlapping pairs resolved.
// Each pad moves, then collides with every other pad, then meets the edges,
// before the next pad moves. A pair is therefore visited from both sides.
func (s *FloatingSystem) Update() int {
	s.pads = s.pads[:0]
	query := s.filter.Query()
	for query.Next() {
		s.pads = append(s.pads, query.Entity())
	}

	contacts := 0
	for i, e := range s.pads {
		pos, vel, rot, body := s.mapper.Get(e)

		pos.X += vel.X
		pos.Y += vel.Y
		rot.Heading = normalizeAngle(rot.Heading + rot.AngVel)

		for j, other := range s.pads {
			if i == j {
				continue
			}
			opos, ovel, _, obody := s.mapper.Get(other)
			if CollidePads(pos, vel, body.Radius, opos, ovel, obody.Radius) {
				contacts++
			}
		}

		ContainPad(pos, vel, body.Radius, s.bounds)
	}

	// Exchanges can push a pad above the limit after its own turn has passed
	for _, e := range s.pads {
		_, vel, _, _ := s.mapper.Get(e)
		limitSpeed(vel, s.params.MaxSpeed)
	}

	return contacts
}
