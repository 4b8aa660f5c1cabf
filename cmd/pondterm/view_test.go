package main

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pond/config"
	"github.com/pthm-cable/pond/game"
)

func init() {
	config.MustInit("")
}

func newTestView(t *testing.T, w, h int) (*view, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)

	g, err := game.NewGameWithOptions(game.Options{Seed: 5, Headless: true})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(g.Unload)

	cfg := config.Cfg()
	return newView(screen, g, cfg.Derived.WorldW32, cfg.Derived.WorldH32), screen
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		heading float32
		want    rune
	}{
		{0, '>'},
		{math.Pi / 2, 'v'},
		{math.Pi, '<'},
		{3 * math.Pi / 2, '^'},
		{-math.Pi / 2, '^'},
		{2*math.Pi + 0.1, '>'},
	}

	for _, tt := range tests {
		if got := headingGlyph(tt.heading); got != tt.want {
			t.Errorf("headingGlyph(%v) = %q, want %q", tt.heading, got, tt.want)
		}
	}
}

func TestCellWorldRoundTrip(t *testing.T) {
	v, _ := newTestView(t, 80, 25)

	if v.cols != 80 || v.rows != 24 {
		t.Fatalf("field = %dx%d, want 80x24", v.cols, v.rows)
	}

	for _, c := range [][2]int{{0, 0}, {40, 12}, {79, 23}} {
		x, y := v.cellToWorld(c[0], c[1])
		cx, cy, ok := v.worldToCell(x, y)
		if !ok || cx != c[0] || cy != c[1] {
			t.Errorf("cell %v -> (%v, %v) -> (%d, %d, %v)", c, x, y, cx, cy, ok)
		}
	}

	if _, _, ok := v.worldToCell(-1, 0); ok {
		t.Error("negative x should be off screen")
	}
	if _, _, ok := v.worldToCell(v.worldW, 0); ok {
		t.Error("x at world width should be off screen")
	}
}

func TestWaterMaskMatchesPond(t *testing.T) {
	v, _ := newTestView(t, 80, 25)

	pond := v.g.Pond()
	c := pond.Centroid()
	cx, cy, ok := v.worldToCell(float32(c.X()), float32(c.Y()))
	if !ok {
		t.Fatal("centroid off screen")
	}
	if !v.water[cy*v.cols+cx] {
		t.Error("centroid cell should be water")
	}
	if v.water[0] {
		t.Error("corner cell should be bank")
	}
}

func TestDrawStatusLine(t *testing.T) {
	v, screen := newTestView(t, 120, 30)
	v.draw(true, 3)

	var line []rune
	for x := 0; x < 6; x++ {
		r, _, _, _ := screen.GetContent(x, v.rows)
		line = append(line, r)
	}
	if string(line) != "PAUSED" {
		t.Errorf("status starts %q, want PAUSED", string(line))
	}
}
