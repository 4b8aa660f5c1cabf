package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/pond/game"
	"github.com/pthm-cable/pond/telemetry"
)

// Quality scoring.
const (
	warmupWindows    = 1   // skip windows while the flock settles
	stabilityBonus   = 0.2 // max fitness bonus for steady polarisation
	crowdingPenalty  = 0.5 // fitness cost per unit of relative over-crowding
	minScoredWindows = 1
)

// FitnessEvaluator runs headless ponds and scores flock behaviour.
type FitnessEvaluator struct {
	params         *ParamVector
	maxTicks       int32
	seeds          []int64
	statsWindow    float64
	targetCrowding float64

	mu   sync.Mutex
	last runScore // averaged score from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, statsWindow, targetCrowding float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:         params,
		maxTicks:       maxTicks,
		seeds:          seeds,
		statsWindow:    statsWindow,
		targetCrowding: targetCrowding,
	}
}

// runScore summarises one run.
type runScore struct {
	Polarisation float64 // mean over scored windows
	Stability    float64 // exp(-cv²) of polarisation
	Crowding     float64 // mean neighbours per tadpole
}

// LastScore returns the averaged score from the most recent evaluation.
func (fe *FitnessEvaluator) LastScore() runScore {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Evaluate computes fitness for raw weights (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	w := fe.params.Weights(x)

	scores := make([]runScore, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			scores[idx] = fe.scoreWindows(fe.runSimulation(s, w.Cohesion, w.Alignment, w.Separation))
		}(i, seed)
	}
	wg.Wait()

	var avg runScore
	for _, s := range scores {
		avg.Polarisation += s.Polarisation
		avg.Stability += s.Stability
		avg.Crowding += s.Crowding
	}
	n := float64(len(scores))
	avg.Polarisation /= n
	avg.Stability /= n
	avg.Crowding /= n

	fe.mu.Lock()
	fe.last = avg
	fe.mu.Unlock()

	return fe.computeFitness(avg)
}

// runSimulation runs one headless pond and returns its window stats.
func (fe *FitnessEvaluator) runSimulation(seed int64, cohesion, alignment, separation float32) []telemetry.WindowStats {
	var windows []telemetry.WindowStats

	g, err := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		return nil
	}
	defer g.Unload()

	g.SetWeights(cohesion, alignment, separation)
	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return windows
}

// scoreWindows reduces window stats to a runScore.
func (fe *FitnessEvaluator) scoreWindows(windows []telemetry.WindowStats) runScore {
	if len(windows) < warmupWindows+minScoredWindows {
		return runScore{}
	}

	valid := windows[warmupWindows:]
	pol := make([]float64, len(valid))
	crowd := make([]float64, len(valid))
	for i, w := range valid {
		pol[i] = w.Polarisation
		crowd[i] = w.Crowding
	}

	var s runScore
	s.Crowding = stat.Mean(crowd, nil)
	if len(pol) < 2 {
		s.Polarisation = pol[0]
		s.Stability = 1
		return s
	}

	mean, std := stat.MeanStdDev(pol, nil)
	s.Polarisation = mean
	if mean > 0 {
		cv := std / mean
		s.Stability = math.Exp(-cv * cv)
	}
	return s
}

// computeFitness rewards an aligned, steady flock and penalises clumping
// beyond the target neighbour count.
func (fe *FitnessEvaluator) computeFitness(s runScore) float64 {
	fitness := -s.Polarisation * (1 + stabilityBonus*s.Stability)
	if fe.targetCrowding > 0 && s.Crowding > fe.targetCrowding {
		fitness += crowdingPenalty * (s.Crowding - fe.targetCrowding) / fe.targetCrowding
	}
	return fitness
}
