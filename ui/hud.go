package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pond/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Tadpoles     int
	Fish         int
	Pads         int
	Food         int
	Polarisation float64
	Tick         int32
	Speed        int
	FPS          int32
	Paused       bool
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Tadpoles: %d | Fish: %d | Pads: %d | Food: %d", data.Tadpoles, data.Fish, data.Pads, data.Food),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d | Polarisation: %.2f", data.Tick, data.Speed, data.FPS, data.Polarisation),
		10, 55, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase step timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	width := int32(220)
	height := r.Theme.Padding*2 + r.Theme.LineHeight*int32(telemetry.NumPhases+2)
	r.DrawPanel(p.x, p.y, width, height)

	x := p.x + r.Theme.Padding
	y := r.DrawSectionHeader(x, p.y+r.Theme.Padding, "Step Timing")
	y = r.DrawLabelValue(x, y, "tick", fmt.Sprintf("%dus (%.0f/s)", stats.AvgTickDuration.Microseconds(), stats.TicksPerSecond))

	for ph := telemetry.Phase(0); ph < telemetry.NumPhases; ph++ {
		y = r.DrawBar(x, y, ph.String(), float32(stats.PhasePct[ph]/100), width-r.Theme.Padding*2)
	}
}
