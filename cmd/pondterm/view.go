package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pond/components"
	"github.com/pthm-cable/pond/game"
)

var (
	bankStyle  = tcell.StyleDefault.Background(tcell.NewRGBColor(86, 125, 70)).Foreground(tcell.NewRGBColor(60, 150, 60))
	waterStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(40, 92, 120))
	statStyle  = tcell.StyleDefault.Foreground(tcell.ColorLightGray)

	tadpoleColor = tcell.NewRGBColor(20, 20, 25)
	fishColor    = tcell.NewRGBColor(235, 130, 50)
	foodColor    = tcell.NewRGBColor(210, 180, 110)
	padColor     = tcell.NewRGBColor(70, 160, 80)
	flowerColor  = tcell.NewRGBColor(240, 170, 200)
)

// view projects the pond onto terminal cells. The bottom row holds the
// status line.
type view struct {
	screen         tcell.Screen
	g              *game.Game
	worldW, worldH float32

	cols, rows int
	water      []bool // rows*cols, true where the cell centre is inside the pond
}

func newView(screen tcell.Screen, g *game.Game, worldW, worldH float32) *view {
	v := &view{screen: screen, g: g, worldW: worldW, worldH: worldH}
	v.resize()
	return v
}

// resize recomputes the field size and water mask.
func (v *view) resize() {
	w, h := v.screen.Size()
	v.cols = w
	v.rows = h - 1
	if v.rows < 1 {
		v.rows = h
	}
	if v.cols <= 0 || v.rows <= 0 {
		v.water = nil
		return
	}

	pond := v.g.Pond()
	v.water = make([]bool, v.cols*v.rows)
	for cy := 0; cy < v.rows; cy++ {
		for cx := 0; cx < v.cols; cx++ {
			x, y := v.cellToWorld(cx, cy)
			v.water[cy*v.cols+cx] = pond.Contains(float64(x), float64(y))
		}
	}
}

// cellToWorld returns the world position at the centre of a cell.
func (v *view) cellToWorld(cx, cy int) (x, y float32) {
	x = (float32(cx) + 0.5) * v.worldW / float32(v.cols)
	y = (float32(cy) + 0.5) * v.worldH / float32(v.rows)
	return x, y
}

// worldToCell returns the cell holding a world position.
func (v *view) worldToCell(x, y float32) (cx, cy int, ok bool) {
	if v.cols <= 0 || v.rows <= 0 || x < 0 || y < 0 {
		return 0, 0, false
	}
	cx = int(x * float32(v.cols) / v.worldW)
	cy = int(y * float32(v.rows) / v.worldH)
	return cx, cy, cx < v.cols && cy < v.rows
}

// inField reports whether a screen cell is part of the pond field.
func (v *view) inField(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cx < v.cols && cy < v.rows
}

func (v *view) baseStyle(cx, cy int) tcell.Style {
	if v.water[cy*v.cols+cx] {
		return waterStyle
	}
	return bankStyle
}

// put draws r at a world position over the cell's background.
func (v *view) put(pos components.Position, r rune, fg tcell.Color) {
	cx, cy, ok := v.worldToCell(pos.X, pos.Y)
	if !ok {
		return
	}
	v.screen.SetContent(cx, cy, r, nil, v.baseStyle(cx, cy).Foreground(fg))
}

func (v *view) draw(paused bool, steps int) {
	v.screen.Clear()
	if len(v.water) == 0 {
		v.screen.Show()
		return
	}

	for cy := 0; cy < v.rows; cy++ {
		for cx := 0; cx < v.cols; cx++ {
			r := ' '
			if !v.water[cy*v.cols+cx] && (cx*7+cy*13)%11 == 0 {
				r = '"'
			}
			v.screen.SetContent(cx, cy, r, nil, v.baseStyle(cx, cy))
		}
	}

	v.g.VisitFood(func(pos components.Position, _ float32) {
		v.put(pos, 'o', foodColor)
	})
	v.g.VisitTadpoles(func(pos components.Position) {
		v.put(pos, '·', tadpoleColor)
	})
	v.g.VisitFish(func(pos components.Position, heading, _ float32) {
		v.put(pos, headingGlyph(heading), fishColor)
	})
	v.g.VisitPads(func(pos components.Position, size float32, flower bool) {
		v.drawPad(pos, size, flower)
	})

	v.drawStatus(paused, steps)
	v.screen.Show()
}

// drawPad fills every cell whose centre lies on the pad.
func (v *view) drawPad(pos components.Position, size float32, flower bool) {
	cx0, cy0, _ := v.worldToCell(pos.X-size, pos.Y-size)
	cx1, cy1, _ := v.worldToCell(pos.X+size, pos.Y+size)
	padStyle := tcell.StyleDefault.Background(padColor)

	for cy := max(cy0, 0); cy <= cy1; cy++ {
		for cx := max(cx0, 0); cx <= cx1; cx++ {
			if !v.inField(cx, cy) {
				continue
			}
			x, y := v.cellToWorld(cx, cy)
			dx, dy := x-pos.X, y-pos.Y
			if dx*dx+dy*dy <= size*size {
				v.screen.SetContent(cx, cy, ' ', nil, padStyle)
			}
		}
	}

	if flower {
		if cx, cy, ok := v.worldToCell(pos.X, pos.Y); ok {
			v.screen.SetContent(cx, cy, '*', nil, padStyle.Foreground(flowerColor))
		}
	}
}

func (v *view) drawStatus(paused bool, steps int) {
	_, h := v.screen.Size()
	if v.rows == h {
		return
	}

	m := v.g.FlockMetrics()
	status := fmt.Sprintf("tick %d  speed %dx  tadpoles %d  food %d  polarisation %.2f  [click] food [space] pause [+/-] speed [q] quit",
		v.g.Tick(), steps, m.Count, v.g.Foods().Len(), m.Polarisation)
	if paused {
		status = "PAUSED  " + status
	}
	for i, r := range []rune(status) {
		if i >= v.cols {
			break
		}
		v.screen.SetContent(i, v.rows, r, nil, statStyle)
	}
}

// headingGlyph picks an arrow for a heading in screen space (y down).
func headingGlyph(heading float32) rune {
	a := math.Mod(float64(heading), 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	switch int(math.Floor((a+math.Pi/4)/(math.Pi/2))) % 4 {
	case 0:
		return '>'
	case 1:
		return 'v'
	case 2:
		return '<'
	default:
		return '^'
	}
}
