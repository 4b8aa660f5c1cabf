package components

import "github.com/mlange-42/ark/ecs"

// ForageState is the behavioural state of a fish.
type ForageState uint8

const (
	StateSearching ForageState = iota // wandering, scanning for food
	StateTracking                     // steering toward a target
	StateConsuming                    // within bite range of a target
)

// Forager holds fish behaviour state.
// Target is a non-owning handle; it must be re-resolved every tick because the
// food it names may have been destroyed or swept since it was acquired.
type Forager struct {
	Target    ecs.Entity
	HasTarget bool
	State     ForageState
	Wiggle    float32 // tail animation phase
	Destroyed bool
}

// ClearTarget drops the current target and returns to searching.
func (f *Forager) ClearTarget() {
	f.Target = ecs.Entity{}
	f.HasTarget = false
	f.State = StateSearching
}

// SetTarget records a new target. The state is left for the caller to set.
func (f *Forager) SetTarget(e ecs.Entity) {
	f.Target = e
	f.HasTarget = true
}

// Destroy marks the fish as removed from play. Idempotent.
func (f *Forager) Destroy() {
	f.Destroyed = true
	f.ClearTarget()
}
