package systems

import (
	"math/rand"
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pond/components"
)

func TestFoodStoreSweep(t *testing.T) {
	world := ecs.NewWorld()
	store := NewFoodStore(world)

	old := newFood()
	old.Created = epoch.Add(-10 * time.Second)

	a := store.Spawn(100, 100, newFood(), FoodShape{})
	b := store.Spawn(200, 200, old, FoodShape{})
	c := store.Spawn(300, 300, newFood(), FoodShape{})
	d := store.Spawn(400, 400, newFood(), FoodShape{})

	_, cf, _ := store.Resolve(c)
	for cf.ReduceSize(1) {
	}
	_, df, _ := store.Resolve(d)
	df.Destroy()
	df.Destroy()

	// b is 16s old, a and c are 6s old
	res := store.Sweep(epoch.Add(6 * time.Second))
	if res.Expired != 1 || res.Depleted != 1 || res.Removed != 1 {
		t.Errorf("Sweep() = %+v, want one of each", res)
	}
	if res.Total() != 3 {
		t.Errorf("Total() = %d, want 3", res.Total())
	}

	if store.Len() != 1 || store.Entities()[0] != a {
		t.Fatalf("remaining = %v, want only %v", store.Entities(), a)
	}
	for _, e := range []ecs.Entity{b, c, d} {
		if world.Alive(e) {
			t.Errorf("entity %v still alive after sweep", e)
		}
		if _, _, ok := store.Resolve(e); ok {
			t.Errorf("Resolve(%v) succeeded after sweep", e)
		}
	}
}

func TestFoodStoreSweepKeepsOrder(t *testing.T) {
	world := ecs.NewWorld()
	store := NewFoodStore(world)

	var want []ecs.Entity
	for i := 0; i < 10; i++ {
		f := newFood()
		if i%3 == 0 {
			f.Destroy()
		}
		e := store.Spawn(float32(i), 0, f, FoodShape{})
		if i%3 != 0 {
			want = append(want, e)
		}
	}

	store.Sweep(epoch)

	got := store.Entities()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFoodStoreStaleHandle(t *testing.T) {
	world := ecs.NewWorld()
	store := NewFoodStore(world)

	f := newFood()
	f.Destroy()
	stale := store.Spawn(10, 10, f, FoodShape{})
	store.Sweep(epoch)

	// A new entity may reuse the slot; the old handle must not resolve to it
	fresh := store.Spawn(20, 20, newFood(), FoodShape{})
	if _, _, ok := store.Resolve(stale); ok {
		t.Error("stale handle resolved")
	}
	if _, food, ok := store.Resolve(fresh); !ok || food.Destroyed {
		t.Error("fresh handle did not resolve to live food")
	}
}

func TestFoodStoreResolveRejectsOtherEntities(t *testing.T) {
	world := ecs.NewWorld()
	store := NewFoodStore(world)

	pads := ecs.NewMap1[components.Position](world)
	pad := pads.NewEntity(&components.Position{X: 50, Y: 50})
	food := store.Spawn(60, 60, newFood(), FoodShape{})

	if _, _, ok := store.Resolve(pad); ok {
		t.Error("entity without food resolved")
	}
	if pos, _, ok := store.Resolve(food); !ok || pos.X != 60 {
		t.Errorf("Resolve(food) = %v, %v, want position (60, 60)", pos, ok)
	}
}

func TestFoodShape(t *testing.T) {
	s := NewFoodShape(rand.New(rand.NewSource(1)))
	for i, r := range s.Radii {
		if r < 1 || r >= 1.5 {
			t.Errorf("radius[%d] = %v, want in [1, 1.5)", i, r)
		}
	}
	x, y := s.Vertex(0, 8)
	if x != s.Radii[0]*8 || y != 0 {
		t.Errorf("Vertex(0, 8) = (%v, %v), want (%v, 0)", x, y, s.Radii[0]*8)
	}
}
