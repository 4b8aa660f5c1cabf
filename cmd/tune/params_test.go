package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/pond/config"
	"github.com/pthm-cable/pond/telemetry"
)

func init() {
	config.MustInit("")
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector(config.Cfg())
	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-12 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], def[i])
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	pv := NewParamVector(config.Cfg())
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	pv.ApplyToConfig(cfg, []float64{-1, 0.01, 10})

	if cfg.Tadpole.Cohesion != pv.Specs[0].Min {
		t.Errorf("cohesion = %v, want %v", cfg.Tadpole.Cohesion, pv.Specs[0].Min)
	}
	if cfg.Tadpole.Alignment != 0.01 {
		t.Errorf("alignment = %v, want 0.01", cfg.Tadpole.Alignment)
	}
	if cfg.Tadpole.Separation != pv.Specs[2].Max {
		t.Errorf("separation = %v, want %v", cfg.Tadpole.Separation, pv.Specs[2].Max)
	}
}

func TestScoreWindows(t *testing.T) {
	fe := NewFitnessEvaluator(NewParamVector(config.Cfg()), 0, nil, 1, 8)

	tests := []struct {
		name    string
		windows []telemetry.WindowStats
		wantPol float64
		wantStb float64
	}{
		{"empty", nil, 0, 0},
		{"warmup only", []telemetry.WindowStats{{Polarisation: 0.9}}, 0, 0},
		{"single scored", []telemetry.WindowStats{{Polarisation: 0.1}, {Polarisation: 0.6}}, 0.6, 1},
		{"steady", []telemetry.WindowStats{{}, {Polarisation: 0.5}, {Polarisation: 0.5}}, 0.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fe.scoreWindows(tt.windows)
			if math.Abs(s.Polarisation-tt.wantPol) > 1e-9 {
				t.Errorf("polarisation = %v, want %v", s.Polarisation, tt.wantPol)
			}
			if math.Abs(s.Stability-tt.wantStb) > 1e-9 {
				t.Errorf("stability = %v, want %v", s.Stability, tt.wantStb)
			}
		})
	}
}

func TestFitnessPenalisesCrowding(t *testing.T) {
	fe := NewFitnessEvaluator(NewParamVector(config.Cfg()), 0, nil, 1, 8)

	loose := fe.computeFitness(runScore{Polarisation: 0.8, Stability: 1, Crowding: 4})
	packed := fe.computeFitness(runScore{Polarisation: 0.8, Stability: 1, Crowding: 16})
	if packed <= loose {
		t.Errorf("packed fitness %v should be worse than loose %v", packed, loose)
	}

	aligned := fe.computeFitness(runScore{Polarisation: 0.9, Stability: 1, Crowding: 4})
	if aligned >= loose {
		t.Errorf("aligned fitness %v should beat %v", aligned, loose)
	}
}
