package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pond/systems"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	mouse := rl.GetMousePosition()
	inWindow := rl.IsCursorOnScreen()
	g.pointer = systems.Pointer{X: mouse.X, Y: mouse.Y, Active: inWindow}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyG) && g.weightsPanel != nil {
		g.weightsPanel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}

	// Clicks on the weights panel belong to its sliders
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && inWindow && !g.overPanel(mouse) {
		g.SpawnFood(mouse.X, mouse.Y)
	}
}

// overPanel reports whether the cursor is over the visible weights panel.
func (g *Game) overPanel(p rl.Vector2) bool {
	if g.weightsPanel == nil || !g.weightsPanel.IsVisible() {
		return false
	}
	return rl.CheckCollisionPointRec(p, g.weightsPanel.Bounds())
}
