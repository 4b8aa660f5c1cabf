package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pond/components"
	"github.com/pthm-cable/pond/config"
)

func TestCollidePadsHeadOn(t *testing.T) {
	posA := components.Position{X: 500, Y: 400}
	velA := components.Velocity{X: 0.3, Y: 0}
	posB := components.Position{X: 560, Y: 400}
	velB := components.Velocity{X: -0.2, Y: 0}

	momentumX := velA.X + velB.X
	momentumY := velA.Y + velB.Y

	if !CollidePads(&posA, &velA, 40, &posB, &velB, 40) {
		t.Fatal("expected overlapping pads to collide")
	}

	if got := velA.X + velB.X; math.Abs(float64(got-momentumX)) > 1e-6 {
		t.Errorf("momentum X = %v, want %v", got, momentumX)
	}
	if got := velA.Y + velB.Y; math.Abs(float64(got-momentumY)) > 1e-6 {
		t.Errorf("momentum Y = %v, want %v", got, momentumY)
	}

	// Equal masses head-on swap velocities
	if math.Abs(float64(velA.X+0.2)) > 1e-6 || math.Abs(float64(velB.X-0.3)) > 1e-6 {
		t.Errorf("velocities after collision = %v, %v, want -0.2, 0.3", velA.X, velB.X)
	}

	// Overlap of 20 split evenly
	if math.Abs(float64(posA.X-490)) > 1e-4 || math.Abs(float64(posB.X-570)) > 1e-4 {
		t.Errorf("positions after separation = %v, %v, want 490, 570", posA.X, posB.X)
	}
}

func TestCollidePadsNoContact(t *testing.T) {
	tests := []struct {
		name string
		posB components.Position
	}{
		{"apart", components.Position{X: 600, Y: 400}},
		{"touching", components.Position{X: 580, Y: 400}},
		{"coincident", components.Position{X: 500, Y: 400}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posA := components.Position{X: 500, Y: 400}
			velA := components.Velocity{X: 0.1, Y: 0.1}
			posB := tt.posB
			velB := components.Velocity{X: -0.1, Y: 0}

			if CollidePads(&posA, &velA, 40, &posB, &velB, 40) {
				t.Error("expected no collision")
			}
			if velA.X != 0.1 || velB.X != -0.1 || posA.X != 500 {
				t.Error("pads changed without a collision")
			}
		})
	}
}

func TestContainPad(t *testing.T) {
	b := testBounds()
	tests := []struct {
		name    string
		pos     components.Position
		vel     components.Velocity
		wantPos components.Position
		wantVel components.Velocity
	}{
		{"inside", components.Position{X: 500, Y: 400}, components.Velocity{X: 0.2, Y: 0.1}, components.Position{X: 500, Y: 400}, components.Velocity{X: 0.2, Y: 0.1}},
		{"past left", components.Position{X: 120, Y: 400}, components.Velocity{X: -0.2, Y: 0.1}, components.Position{X: 130, Y: 400}, components.Velocity{X: 0.2, Y: 0.1}},
		{"past bottom", components.Position{X: 500, Y: 690}, components.Velocity{X: 0.2, Y: 0.1}, components.Position{X: 500, Y: 670}, components.Velocity{X: 0.2, Y: -0.1}},
		{"past corner", components.Position{X: 1200, Y: 50}, components.Velocity{X: 0.2, Y: -0.1}, components.Position{X: 1150, Y: 130}, components.Velocity{X: -0.2, Y: 0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, vel := tt.pos, tt.vel
			ContainPad(&pos, &vel, 30, b)
			if pos != tt.wantPos {
				t.Errorf("pos = %+v, want %+v", pos, tt.wantPos)
			}
			if vel != tt.wantVel {
				t.Errorf("vel = %+v, want %+v", vel, tt.wantVel)
			}
		})
	}
}

func TestFloatingSystemUpdate(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap5[components.Position, components.Velocity, components.Rotation, components.Body, components.Floater](world)
	rng := rand.New(rand.NewSource(17))
	b := testBounds()
	p := FloatParamsFromConfig(config.Cfg())

	for i := 0; i < 8; i++ {
		size := float32(30 + rng.Intn(21))
		x, y := b.RandomPoint(rng, size)
		pos := components.Position{X: x, Y: y}
		vel := components.Velocity{X: (rng.Float32() - 0.5) * 0.5, Y: (rng.Float32() - 0.5) * 0.5}
		rot := components.Rotation{Heading: rng.Float32() * 2 * math.Pi, AngVel: (rng.Float32() - 0.5) * 0.01}
		body := components.Body{Radius: size}
		fl := components.Floater{HasFlower: rng.Float32() < 0.3}
		mapper.NewEntity(&pos, &vel, &rot, &body, &fl)
	}

	sys := NewFloatingSystem(world, p, b)
	for tick := 0; tick < 2000; tick++ {
		sys.Update()
	}

	filter := ecs.NewFilter3[components.Position, components.Velocity, components.Body](world)
	query := filter.Query()
	for query.Next() {
		pos, vel, body := query.Get()
		if s := Speed(*vel); s > p.MaxSpeed+1e-5 {
			t.Errorf("pad speed %v exceeds max %v", s, p.MaxSpeed)
		}
		// A pad clamped on its own turn can still be pushed by up to half the
		// largest overlap when a later pad separates from it
		slack := float32(50)
		if pos.X < b.MinX()+body.Radius-slack || pos.X > b.MaxX()-body.Radius+slack ||
			pos.Y < b.MinY()+body.Radius-slack || pos.Y > b.MaxY()-body.Radius+slack {
			t.Errorf("pad of size %v outside play area at (%v, %v)", body.Radius, pos.X, pos.Y)
		}
	}
}

func TestFloatingSystemElasticExchange(t *testing.T) {
	tests := []struct {
		name       string
		velA, velB float32
		wantA      float32
		wantB      float32
	}{
		{"head on", 1, -1, -1, 1},
		{"unequal", 1, -0.2, -0.2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := ecs.NewWorld()
			mapper := ecs.NewMap5[components.Position, components.Velocity, components.Rotation, components.Body, components.Floater](world)
			a := mapper.NewEntity(&components.Position{X: 500, Y: 400}, &components.Velocity{X: tt.velA},
				&components.Rotation{}, &components.Body{Radius: 40}, &components.Floater{})
			b := mapper.NewEntity(&components.Position{X: 575, Y: 400}, &components.Velocity{X: tt.velB},
				&components.Rotation{}, &components.Body{Radius: 40}, &components.Floater{})

			sys := NewFloatingSystem(world, FloatParamsFromConfig(config.Cfg()), testBounds())
			if contacts := sys.Update(); contacts != 1 {
				t.Errorf("contacts = %d, want 1", contacts)
			}

			_, va, _, _, _ := mapper.Get(a)
			_, vb, _, _, _ := mapper.Get(b)
			if math.Abs(float64(va.X-tt.wantA)) > 1e-5 || math.Abs(float64(vb.X-tt.wantB)) > 1e-5 {
				t.Errorf("velocities = %v, %v, want %v, %v", va.X, vb.X, tt.wantA, tt.wantB)
			}
			before := tt.velA*tt.velA + tt.velB*tt.velB
			after := va.X*va.X + vb.X*vb.X
			if math.Abs(float64(after-before)) > 1e-5 {
				t.Errorf("kinetic energy %v -> %v", before, after)
			}
		})
	}
}
