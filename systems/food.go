package systems

import (
	"math"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pond/components"
)

// FoodShapePoints is the number of outline points on a food pellet.
const FoodShapePoints = 10

// FoodShape holds the wobbly outline of a pellet as radius multipliers.
type FoodShape struct {
	Radii [FoodShapePoints]float32
}

// NewFoodShape returns a random outline with radii in [1, 1.5).
func NewFoodShape(rng *rand.Rand) FoodShape {
	var s FoodShape
	for i := range s.Radii {
		s.Radii[i] = 1 + rng.Float32()*0.5
	}
	return s
}

// Vertex returns outline point i scaled by size, relative to the pellet centre.
func (s FoodShape) Vertex(i int, size float32) (x, y float32) {
	angle := float64(i) * 2 * math.Pi / FoodShapePoints
	r := s.Radii[i%FoodShapePoints] * size
	return float32(math.Cos(angle)) * r, float32(math.Sin(angle)) * r
}

// FoodSource is the live food collection as seen by foragers.
type FoodSource interface {
	// Entities returns food handles in collection order.
	Entities() []ecs.Entity
	// Resolve returns the food behind a handle, or false if it no longer exists.
	Resolve(e ecs.Entity) (*components.Position, *components.Food, bool)
}

// SweepResult counts food removed by a sweep.
type SweepResult struct {
	Expired  int
	Depleted int
	Removed  int
}

// Total returns the number of food items removed.
func (r SweepResult) Total() int {
	return r.Expired + r.Depleted + r.Removed
}

// FoodStore owns the food entities and keeps them in spawn order.
type FoodStore struct {
	world   *ecs.World
	mapper  *ecs.Map3[components.Position, components.Food, FoodShape]
	posMap  *ecs.Map1[components.Position]
	foodMap *ecs.Map1[components.Food]
	order   []ecs.Entity
	dead    []ecs.Entity
}

// NewFoodStore creates an empty food store in world.
func NewFoodStore(world *ecs.World) *FoodStore {
	return &FoodStore{
		world:   world,
		mapper:  ecs.NewMap3[components.Position, components.Food, FoodShape](world),
		posMap:  ecs.NewMap1[components.Position](world),
		foodMap: ecs.NewMap1[components.Food](world),
	}
}

// Spawn adds a food item at (x, y) and returns its handle.
func (s *FoodStore) Spawn(x, y float32, food components.Food, shape FoodShape) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	e := s.mapper.NewEntity(&pos, &food, &shape)
	s.order = append(s.order, e)
	return e
}

// Entities returns food handles in spawn order. Callers must not modify it.
func (s *FoodStore) Entities() []ecs.Entity {
	return s.order
}

// Len returns the number of food items not yet swept.
func (s *FoodStore) Len() int {
	return len(s.order)
}

// Resolve returns the food behind a handle, or false if the entity was removed.
func (s *FoodStore) Resolve(e ecs.Entity) (*components.Position, *components.Food, bool) {
	if !s.world.Alive(e) || !s.foodMap.HasAll(e) {
		return nil, nil, false
	}
	return s.posMap.Get(e), s.foodMap.Get(e), true
}

// Get returns all components of a food entity. The entity must be alive.
func (s *FoodStore) Get(e ecs.Entity) (*components.Position, *components.Food, *FoodShape) {
	return s.mapper.Get(e)
}

// Sweep updates every food item and removes those that are no longer live.
// Dead items are collected first and removed after the pass, so the remaining
// items keep their relative order.
func (s *FoodStore) Sweep(now time.Time) SweepResult {
	var res SweepResult

	s.dead = s.dead[:0]
	kept := s.order[:0]
	for _, e := range s.order {
		food := s.foodMap.Get(e)
		if food.Update(now) {
			kept = append(kept, e)
			continue
		}
		food.Destroy()
		switch food.Fate {
		case components.FoodExpired:
			res.Expired++
		case components.FoodDepleted:
			res.Depleted++
		default:
			res.Removed++
		}
		s.dead = append(s.dead, e)
	}
	// Clear the tail so removed handles are not retained
	for i := len(kept); i < len(s.order); i++ {
		s.order[i] = ecs.Entity{}
	}
	s.order = kept

	for _, e := range s.dead {
		s.world.RemoveEntity(e)
	}

	return res
}
