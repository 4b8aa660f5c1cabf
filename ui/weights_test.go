package ui

import "testing"

func TestWeightsClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Weights
		want Weights
	}{
		{"defaults unchanged", Weights{0.002, 0.006, 0.07}, Weights{0.002, 0.006, 0.07}},
		{"negative floored", Weights{-1, -0.1, -5}, Weights{0, 0, 0}},
		{"large capped", Weights{1, 1, 1}, Weights{0.02, 0.05, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(); got != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWeightsPanelToggle(t *testing.T) {
	p := NewWeightsPanel(0, 0, 240, Weights{})
	if p.IsVisible() {
		t.Fatal("panel should start hidden")
	}
	if !p.Toggle() || !p.IsVisible() {
		t.Error("Toggle() should show the panel")
	}

	// Hidden panels draw nothing and report no change
	p.Toggle()
	w := Weights{0.01, 0.02, 0.03}
	if got, changed := p.Draw(w); changed || got != w {
		t.Errorf("hidden Draw() = %+v, %v", got, changed)
	}
}
