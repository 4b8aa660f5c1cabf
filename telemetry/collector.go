// Package telemetry provides windowed pond statistics, perf timing, bookmarks and CSV output.
package telemetry

import (
	"math"

	"github.com/pthm-cable/pond/components"
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	foodSpawned     int
	foodExpired     int
	foodDepleted    int
	foodRemoved     int
	bites           int
	targetsAcquired int
	targetsLost     int
	padContacts     int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordFoodSpawned records a food item dropped into the pond.
func (c *Collector) RecordFoodSpawned() {
	c.foodSpawned++
}

// RecordFoodRemoved records a food item swept from the pond with its fate.
func (c *Collector) RecordFoodRemoved(fate components.FoodFate, n int) {
	switch fate {
	case components.FoodExpired:
		c.foodExpired += n
	case components.FoodDepleted:
		c.foodDepleted += n
	case components.FoodRemoved:
		c.foodRemoved += n
	}
}

// RecordForaging records one tick of fish activity.
func (c *Collector) RecordForaging(acquired, lost, bites int) {
	c.targetsAcquired += acquired
	c.targetsLost += lost
	c.bites += bites
}

// RecordPadContacts records lily pad collisions resolved in one tick.
func (c *Collector) RecordPadContacts(n int) {
	c.padContacts += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample is the pond state observed at the end of a window.
type Sample struct {
	Tadpoles         int
	TadpoleMeanSpeed float64
	Polarisation     float64
	Crowding         float64
	FishSizes        []float64
	FishStates       []int // indexed by components.ForageState
	FoodLive         int
	Pads             int
}

func (s Sample) stateCount(st components.ForageState) int {
	if int(st) < len(s.FishStates) {
		return s.FishStates[st]
	}
	return 0
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	sizes := ComputeSizeStats(s.FishSizes)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Tadpoles:         s.Tadpoles,
		TadpoleMeanSpeed: s.TadpoleMeanSpeed,
		Polarisation:     s.Polarisation,
		Crowding:         s.Crowding,

		Fish:          len(s.FishSizes),
		FishSearching: s.stateCount(components.StateSearching),
		FishTracking:  s.stateCount(components.StateTracking),
		FishConsuming: s.stateCount(components.StateConsuming),
		FishSizeMean:  sizes.Mean,
		FishSizeStd:   sizes.Std,
		FishSizeP10:   sizes.P10,
		FishSizeP50:   sizes.P50,
		FishSizeP90:   sizes.P90,

		FoodLive:     s.FoodLive,
		FoodSpawned:  c.foodSpawned,
		FoodExpired:  c.foodExpired,
		FoodDepleted: c.foodDepleted,
		FoodRemoved:  c.foodRemoved,
		Bites:        c.bites,

		TargetsAcquired: c.targetsAcquired,
		TargetsLost:     c.targetsLost,

		Pads:        s.Pads,
		PadContacts: c.padContacts,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.foodSpawned = 0
	c.foodExpired = 0
	c.foodDepleted = 0
	c.foodRemoved = 0
	c.bites = 0
	c.targetsAcquired = 0
	c.targetsLost = 0
	c.padContacts = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
