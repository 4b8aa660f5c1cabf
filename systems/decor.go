package systems

import (
	"math/rand"

	"github.com/pthm-cable/pond/config"
)

// DecorKind identifies a static bank decoration.
type DecorKind uint8

const (
	DecorRock DecorKind = iota
	DecorGrass
	DecorEdgeRock
)

// DecorItem is a static decoration placed on the bank.
type DecorItem struct {
	Kind DecorKind
	X, Y float64
	Size float64
}

// DecorParams controls bank decoration.
type DecorParams struct {
	Width, Height float64
	Rocks         int // placement attempts for loose rocks
	Grass         int // placement attempts for grass tufts
	MinRockSize   float64
	MaxRockSize   float64
	EdgeRocks     bool
}

// DecorParamsFromConfig reads decoration parameters from the loaded config.
func DecorParamsFromConfig(cfg *config.Config) DecorParams {
	return DecorParams{
		Width:       float64(cfg.Derived.WorldW32),
		Height:      float64(cfg.Derived.WorldH32),
		Rocks:       cfg.Decor.Rocks,
		Grass:       cfg.Derived.GrassCount,
		MinRockSize: cfg.Decor.MinRockSize,
		MaxRockSize: cfg.Decor.MaxRockSize,
		EdgeRocks:   cfg.Decor.EdgeRocks,
	}
}

// ScatterDecor places rocks and grass on the bank around the pond.
// Loose rocks and grass are dropped at random world positions and kept only
// when they fall outside the water. Edge rocks sit on the shoreline itself.
func ScatterDecor(rng *rand.Rand, pond *Boundary, p DecorParams) []DecorItem {
	items := make([]DecorItem, 0, p.Rocks/2+p.Grass/2)

	for i := 0; i < p.Rocks; i++ {
		x := rng.Float64() * p.Width
		y := rng.Float64() * p.Height
		size := p.MinRockSize + rng.Float64()*(p.MaxRockSize-p.MinRockSize)
		if !pond.Contains(x, y) {
			items = append(items, DecorItem{Kind: DecorRock, X: x, Y: y, Size: size})
		}
	}

	for i := 0; i < p.Grass; i++ {
		x := rng.Float64() * p.Width
		y := rng.Float64() * p.Height
		if !pond.Contains(x, y) {
			items = append(items, DecorItem{Kind: DecorGrass, X: x, Y: y, Size: 2 + rng.Float64()*4})
		}
	}

	if p.EdgeRocks {
		for _, m := range pond.EdgeMidpoints() {
			size := p.MinRockSize + rng.Float64()*(p.MaxRockSize-p.MinRockSize)
			items = append(items, DecorItem{Kind: DecorEdgeRock, X: m[0], Y: m[1], Size: size})
		}
	}

	return items
}
