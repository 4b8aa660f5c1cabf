package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/pond/config"
)

func TestScatterDecor(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	pond, err := GenerateBoundary(rng, defaultBoundaryParams())
	if err != nil {
		t.Fatal(err)
	}

	p := DecorParamsFromConfig(config.Cfg())
	p.Width, p.Height = 1280, 800
	items := ScatterDecor(rng, pond, p)

	var rocks, grass, edge int
	for _, it := range items {
		switch it.Kind {
		case DecorRock:
			rocks++
			if it.Size < p.MinRockSize || it.Size > p.MaxRockSize {
				t.Errorf("rock size %v outside [%v, %v]", it.Size, p.MinRockSize, p.MaxRockSize)
			}
		case DecorGrass:
			grass++
		case DecorEdgeRock:
			edge++
			continue
		}
		if pond.Contains(it.X, it.Y) {
			t.Errorf("%v decor placed in the water at (%.1f, %.1f)", it.Kind, it.X, it.Y)
		}
	}

	if rocks == 0 || rocks >= p.Rocks {
		t.Errorf("kept %d of %d rocks, want some but not all", rocks, p.Rocks)
	}
	if grass == 0 {
		t.Error("expected grass on the bank")
	}
	if want := len(pond.EdgeMidpoints()); edge != want {
		t.Errorf("edge rocks = %d, want %d", edge, want)
	}
}
