package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pond/components"
	"github.com/pthm-cable/pond/systems"
	"github.com/pthm-cable/pond/ui"
)

var (
	colorBank     = rl.Color{R: 86, G: 125, B: 70, A: 255}
	colorWater    = rl.Color{R: 40, G: 92, B: 120, A: 255}
	colorRock     = rl.Color{R: 120, G: 118, B: 110, A: 255}
	colorGrass    = rl.Color{R: 60, G: 150, B: 60, A: 255}
	colorTadpole  = rl.Color{R: 20, G: 20, B: 25, A: 255}
	colorFish     = rl.Color{R: 235, G: 130, B: 50, A: 255}
	colorPad      = rl.Color{R: 70, G: 160, B: 80, A: 255}
	colorPadVein  = rl.Color{R: 50, G: 120, B: 60, A: 255}
	colorFlower   = rl.Color{R: 240, G: 170, B: 200, A: 255}
	colorFood     = rl.Color{R: 210, G: 180, B: 110, A: 255}
	colorFoodEdge = rl.Color{R: 150, G: 120, B: 70, A: 255}
)

// Draw renders the game.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(colorBank)

	g.drawPond()
	g.drawDecor()
	g.drawFood()
	g.drawTadpoles()
	g.drawFish()
	g.drawPads()

	m := g.flocking.Metrics()
	fish := 0
	g.VisitFish(func(components.Position, float32, float32) { fish++ })
	g.hud.Draw(ui.HUDData{
		Title:        "Pond",
		Tadpoles:     m.Count,
		Fish:         fish,
		Pads:         g.cfg.LilyPad.Count,
		Food:         g.foods.Len(),
		Polarisation: m.Polarisation,
		Tick:         g.tick,
		Speed:        g.stepsPerUpdate,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
	})
	g.hud.DrawControls(int32(rl.GetScreenHeight()), "[Click] food  [Space] pause  [</>] speed  [G] weights  [P] perf")

	if w, changed := g.weightsPanel.Draw(g.currentWeights()); changed {
		w = w.Clamp()
		g.SetWeights(w.Cohesion, w.Alignment, w.Separation)
	}
	if g.showPerf {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}

	rl.EndDrawing()
}

func (g *Game) currentWeights() ui.Weights {
	p := g.flocking.Params()
	return ui.Weights{Cohesion: p.Cohesion, Alignment: p.Alignment, Separation: p.Separation}
}

// drawPond fills the pond outline as a fan around its centroid.
func (g *Game) drawPond() {
	c := g.pond.Centroid()
	center := rl.Vector2{X: float32(c.X()), Y: float32(c.Y())}
	ring := g.pond.Ring()

	for i := 0; i+1 < len(ring); i++ {
		a := rl.Vector2{X: float32(ring[i].X()), Y: float32(ring[i].Y())}
		b := rl.Vector2{X: float32(ring[i+1].X()), Y: float32(ring[i+1].Y())}
		rl.DrawTriangle(center, b, a, colorWater)
	}
}

func (g *Game) drawDecor() {
	for _, d := range g.decor {
		x, y := float32(d.X), float32(d.Y)
		switch d.Kind {
		case systems.DecorRock, systems.DecorEdgeRock:
			rl.DrawCircleV(rl.Vector2{X: x, Y: y}, float32(d.Size), colorRock)
		case systems.DecorGrass:
			rl.DrawLineEx(rl.Vector2{X: x, Y: y}, rl.Vector2{X: x - 2, Y: y - 6}, 1, colorGrass)
			rl.DrawLineEx(rl.Vector2{X: x, Y: y}, rl.Vector2{X: x + 2, Y: y - 7}, 1, colorGrass)
		}
	}
}

func (g *Game) drawFood() {
	for _, e := range g.foods.Entities() {
		pos, food, shape := g.foods.Get(e)
		if food.Destroyed {
			continue
		}
		center := rl.Vector2{X: pos.X, Y: pos.Y}
		n := len(shape.Radii)
		for i := 0; i < n; i++ {
			ax, ay := shape.Vertex(i, food.Size)
			bx, by := shape.Vertex((i+1)%n, food.Size)
			a := rl.Vector2{X: pos.X + ax, Y: pos.Y + ay}
			b := rl.Vector2{X: pos.X + bx, Y: pos.Y + by}
			rl.DrawTriangle(center, b, a, colorFood)
			rl.DrawLineV(a, b, colorFoodEdge)
		}
	}
}

func (g *Game) drawTadpoles() {
	query := g.tadpoleFilter.Query()
	for query.Next() {
		pos, body, trail := query.Get()
		head := rl.Vector2{X: pos.X, Y: pos.Y}
		t1 := rl.Vector2{X: trail.Points[0].X, Y: trail.Points[0].Y}
		t2 := rl.Vector2{X: trail.Points[1].X, Y: trail.Points[1].Y}
		rl.DrawLineEx(head, t1, body.Radius, colorTadpole)
		rl.DrawLineEx(t1, t2, body.Radius*0.5, colorTadpole)
		rl.DrawCircleV(head, body.Radius, colorTadpole)
	}
}

func (g *Game) drawFish() {
	query := g.fishFilter.Query()
	for query.Next() {
		pos, rot, body, fish := query.Get()
		if fish.Destroyed {
			continue
		}

		size := body.Radius
		cos := float32(math.Cos(float64(rot.Heading)))
		sin := float32(math.Sin(float64(rot.Heading)))

		// Tail swings with the wiggle phase
		swing := float32(math.Sin(float64(fish.Wiggle))) * 0.5
		tailAngle := float64(rot.Heading) + math.Pi + float64(swing)
		tailBase := rl.Vector2{X: pos.X - cos*size*1.5, Y: pos.Y - sin*size*1.5}
		tailTip := rl.Vector2{
			X: tailBase.X + float32(math.Cos(tailAngle))*size*1.8,
			Y: tailBase.Y + float32(math.Sin(tailAngle))*size*1.8,
		}
		rl.DrawLineEx(tailBase, tailTip, size*0.8, colorFish)

		for k := float32(-1); k <= 1; k += 0.5 {
			c := rl.Vector2{X: pos.X + cos*size*k, Y: pos.Y + sin*size*k}
			rl.DrawCircleV(c, size*(1-0.35*k*k), colorFish)
		}
	}
}

func (g *Game) drawPads() {
	query := g.padFilter.Query()
	for query.Next() {
		pos, rot, body, pad := query.Get()
		center := rl.Vector2{X: pos.X, Y: pos.Y}

		// A pad is a disc with a wedge cut out along its heading
		deg := rot.Heading * 180 / math.Pi
		rl.DrawCircleSector(center, body.Radius, deg+20, deg+360, 36, colorPad)
		rl.DrawLineEx(center, rl.Vector2{
			X: pos.X + float32(math.Cos(float64(rot.Heading+math.Pi)))*body.Radius*0.8,
			Y: pos.Y + float32(math.Sin(float64(rot.Heading+math.Pi)))*body.Radius*0.8,
		}, 1.5, colorPadVein)

		if pad.HasFlower {
			rl.DrawCircleV(center, body.Radius*0.3, colorFlower)
			rl.DrawCircleV(center, body.Radius*0.1, rl.Yellow)
		}
	}
}
