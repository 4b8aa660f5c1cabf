// Package main runs the pond in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pond/config"
	"github.com/pthm-cable/pond/game"
	"github.com/pthm-cable/pond/systems"
)

const maxSteps = 10

type app struct {
	screen  tcell.Screen
	g       *game.Game
	view    *view
	steps   int
	pressed bool // left button held since the last drop
}

func (a *app) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				a.g.SetPaused(!a.g.Paused())
			case '+', '=':
				a.steps = min(a.steps+1, maxSteps)
			case '-':
				a.steps = max(a.steps-1, 1)
			}
		}

	case *tcell.EventMouse:
		cx, cy := ev.Position()
		down := ev.Buttons()&tcell.Button1 != 0
		if !a.view.inField(cx, cy) {
			a.g.SetPointer(systems.Pointer{})
			a.pressed = down
			return true
		}

		x, y := a.view.cellToWorld(cx, cy)
		a.g.SetPointer(systems.Pointer{X: x, Y: y, Active: true})
		if down && !a.pressed {
			a.g.SpawnFood(x, y)
		}
		a.pressed = down

	case *tcell.EventResize:
		a.screen.Sync()
		a.view.resize()
	}

	return true
}

func (a *app) run(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}

		case <-ticker.C:
			if !a.g.Paused() {
				for i := 0; i < a.steps; i++ {
					a.g.Step()
				}
			}
			a.view.draw(a.g.Paused(), a.steps)
		}
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	fps := flag.Int("fps", 30, "Frames per second")
	steps := flag.Int("steps-per-update", 2, "Simulation ticks per frame")
	logPath := flag.String("log", "", "Write JSON logs to this file (empty = discard)")
	flag.Parse()

	// The terminal belongs to the pond, so logs go elsewhere
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	g, err := game.NewGameWithOptions(game.Options{
		Seed:     *seed,
		Headless: true,
		Clock:    time.Now,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start simulation: %v\n", err)
		os.Exit(1)
	}
	defer g.Unload()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()

	a := &app{
		screen: screen,
		g:      g,
		view:   newView(screen, g, cfg.Derived.WorldW32, cfg.Derived.WorldH32),
		steps:  min(max(*steps, 1), maxSteps),
	}
	a.run(time.Second / time.Duration(max(*fps, 1)))
}
