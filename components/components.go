// Package components defines ECS components for the simulation.
package components

import "time"

// FoodFate records how a food item left play.
type FoodFate uint8

const (
	FoodActive   FoodFate = iota
	FoodExpired           // lifetime elapsed
	FoodDepleted          // eaten down to nothing
	FoodRemoved           // destroyed directly
)

// Food is a transient resource dropped into the pond.
// Size never increases and nothing mutates a destroyed food.
type Food struct {
	Size      float32
	Created   time.Time
	Lifetime  time.Duration
	Destroyed bool
	Fate      FoodFate
}

// NewFood returns an active food item created at the given time.
func NewFood(size float32, created time.Time, lifetime time.Duration) Food {
	return Food{
		Size:     size,
		Created:  created,
		Lifetime: lifetime,
	}
}

// Update reports whether the food is still live at time now.
// A food past its lifetime is destroyed here.
func (f *Food) Update(now time.Time) bool {
	if f.Destroyed {
		return false
	}
	if now.Sub(f.Created) > f.Lifetime {
		f.destroy(FoodExpired)
		return false
	}
	return f.Size > 0
}

// ReduceSize takes a bite of the given amount and reports whether any food is left.
// The food is destroyed when its size reaches zero. A destroyed food is unchanged.
func (f *Food) ReduceSize(amount float32) bool {
	if f.Destroyed {
		return false
	}
	f.Size -= amount
	if f.Size <= 0 {
		f.destroy(FoodDepleted)
		return false
	}
	return true
}

// Destroy removes the food from play. Calling it again has no effect.
func (f *Food) Destroy() {
	f.destroy(FoodRemoved)
}

func (f *Food) destroy(fate FoodFate) {
	if f.Destroyed {
		return
	}
	f.Destroyed = true
	f.Fate = fate
}

// Live reports whether the food can still be targeted.
func (f *Food) Live() bool {
	return !f.Destroyed && f.Size > 0
}
