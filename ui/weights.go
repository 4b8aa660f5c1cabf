package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Weights are the three flocking steering weights.
type Weights struct {
	Cohesion   float32
	Alignment  float32
	Separation float32
}

// WeightRange bounds a weight slider.
type WeightRange struct {
	Min, Max float32
}

// WeightRanges returns slider bounds that span well beyond the defaults.
func WeightRanges() [3]WeightRange {
	return [3]WeightRange{
		{0, 0.02},
		{0, 0.05},
		{0, 0.5},
	}
}

// Clamp limits every weight to its slider range.
func (w Weights) Clamp() Weights {
	r := WeightRanges()
	return Weights{
		Cohesion:   min(max(w.Cohesion, r[0].Min), r[0].Max),
		Alignment:  min(max(w.Alignment, r[1].Min), r[1].Max),
		Separation: min(max(w.Separation, r[2].Min), r[2].Max),
	}
}

// WeightsPanel shows raygui sliders for the flocking weights.
type WeightsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	defaults Weights
}

// NewWeightsPanel creates a hidden panel; Reset restores defaults.
func NewWeightsPanel(x, y, width int32, defaults Weights) *WeightsPanel {
	return &WeightsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		defaults: defaults,
	}
}

// Toggle switches panel visibility.
func (p *WeightsPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *WeightsPanel) IsVisible() bool {
	return p.visible
}

func (p *WeightsPanel) height() int32 {
	t := p.renderer.Theme
	return 4*38 + t.Padding*3 + t.LineHeight
}

// Bounds returns the screen rectangle the panel covers.
func (p *WeightsPanel) Bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(p.x), Y: float32(p.y), Width: float32(p.width), Height: float32(p.height())}
}

// Draw renders the sliders and returns the edited weights and whether
// anything changed this frame.
func (p *WeightsPanel) Draw(w Weights) (Weights, bool) {
	if !p.visible {
		return w, false
	}

	r := p.renderer
	pad := float32(r.Theme.Padding)
	r.DrawPanel(p.x, p.y, p.width, p.height())

	x := float32(p.x) + pad
	y := r.DrawSectionHeader(int32(x), p.y+r.Theme.Padding, "Flocking Weights [G]")

	ranges := WeightRanges()
	fields := []struct {
		label string
		value *float32
		rng   WeightRange
	}{
		{"Cohesion", &w.Cohesion, ranges[0]},
		{"Alignment", &w.Alignment, ranges[1]},
		{"Separation", &w.Separation, ranges[2]},
	}

	changed := false
	sliderW := float32(p.width) - pad*2 - 60
	for _, f := range fields {
		rl.DrawText(f.label, int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
		y += 14
		next := gui.SliderBar(
			rl.Rectangle{X: x, Y: float32(y), Width: sliderW, Height: 16},
			"", "",
			*f.value, f.rng.Min, f.rng.Max,
		)
		rl.DrawText(fmt.Sprintf("%.4f", next), int32(x+sliderW+6), y+2, r.Theme.FontSize, r.Theme.ValueColor)
		if next != *f.value {
			*f.value = next
			changed = true
		}
		y += 24
	}

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: 100, Height: 24}, "Reset") {
		w = p.defaults
		changed = true
	}

	return w, changed
}
