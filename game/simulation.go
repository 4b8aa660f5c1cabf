package game

import (
	"github.com/pthm-cable/pond/components"
	"github.com/pthm-cable/pond/telemetry"
)

// Update handles input and runs stepsPerUpdate ticks unless paused.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs stepsPerUpdate ticks without touching raylib.
func (g *Game) UpdateHeadless() {
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Step runs exactly one tick regardless of pause state.
func (g *Game) Step() {
	g.simulationStep()
}

// simulationStep runs a single tick in fixed order.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	// Headless food drops land before anyone moves
	if g.foodEvery > 0 && g.tick > 0 && g.tick%int32(g.foodEvery) == 0 {
		g.SpawnFood(g.randomWaterPoint())
	}

	// 1. Tadpoles flock around each other and away from the pointer
	g.perfCollector.StartPhase(telemetry.PhaseFlocking)
	g.flocking.Update(g.rng, g.pointer)

	// 2. Fish chase and eat the live food
	g.perfCollector.StartPhase(telemetry.PhaseForaging)
	fs := g.foraging.Update(g.rng, g.foods)
	g.collector.RecordForaging(fs.Acquired, fs.Lost, fs.Bites)

	// 3. Lily pads drift and collide
	g.perfCollector.StartPhase(telemetry.PhaseFloating)
	g.collector.RecordPadContacts(g.floating.Update())

	// 4. Expired and eaten food leaves the pond
	g.perfCollector.StartPhase(telemetry.PhaseFoodSweep)
	swept := g.foods.Sweep(g.clock())
	g.collector.RecordFoodRemoved(components.FoodExpired, swept.Expired)
	g.collector.RecordFoodRemoved(components.FoodDepleted, swept.Depleted)
	g.collector.RecordFoodRemoved(components.FoodRemoved, swept.Removed)

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}
