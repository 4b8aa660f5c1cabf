package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseFlocking)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseForaging)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.PhaseAvg[PhaseFlocking] <= 0 {
		t.Error("expected flocking phase to be tracked")
	}
	if stats.PhaseAvg[PhaseForaging] <= 0 {
		t.Error("expected foraging phase to be tracked")
	}
	if stats.PhaseAvg[PhaseFloating] != 0 {
		t.Error("floating phase never ran but has time")
	}
	if stats.MinTickDuration > stats.AvgTickDuration || stats.AvgTickDuration > stats.MaxTickDuration {
		t.Errorf("min/avg/max out of order: %v %v %v", stats.MinTickDuration, stats.AvgTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseFoodSweep)
		pc.EndTick()
	}

	if pc.sampleCount != 5 {
		t.Errorf("sampleCount = %d, want window size 5", pc.sampleCount)
	}
	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		var s PerfSample
		s.Phases[PhaseFloating] = 100 * time.Microsecond
		s.Phases[PhaseFlocking] = 700 * time.Microsecond
		s.Phases[PhaseTelemetry] = 200 * time.Microsecond
		s.TickDuration = time.Millisecond
		pc.record(s)
	}

	stats := pc.Stats()
	want := map[Phase]float64{PhaseFloating: 10, PhaseFlocking: 70, PhaseTelemetry: 20, PhaseForaging: 0}
	for ph, pct := range want {
		if math.Abs(stats.PhasePct[ph]-pct) > 1e-9 {
			t.Errorf("%s share = %v%%, want %v%%", ph, stats.PhasePct[ph], pct)
		}
	}
	if stats.AvgTickDuration != time.Millisecond || stats.TicksPerSecond != 1000 {
		t.Errorf("avg tick = %v at %v/s, want 1ms at 1000/s", stats.AvgTickDuration, stats.TicksPerSecond)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()
	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Error("expected zero stats for empty collector")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("FPS = %v, want in (0, 70] for 16ms frames", stats.FPS)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseFoodSweep.String() != "food_sweep" {
		t.Errorf("PhaseFoodSweep.String() = %q", PhaseFoodSweep.String())
	}
	if NumPhases.String() != "unknown" {
		t.Errorf("NumPhases.String() = %q, want unknown", NumPhases.String())
	}
	csv := PerfStats{PhasePct: [NumPhases]float64{PhaseForaging: 42}}.ToCSV(7)
	if csv.WindowEnd != 7 || csv.ForagingPct != 42 {
		t.Errorf("ToCSV() = %+v", csv)
	}
}
