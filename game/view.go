package game

import "github.com/pthm-cable/pond/components"

// VisitTadpoles calls fn with every tadpole position.
func (g *Game) VisitTadpoles(fn func(pos components.Position)) {
	query := g.tadpoleFilter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		fn(*pos)
	}
}

// VisitFish calls fn for every live fish with its heading and size.
func (g *Game) VisitFish(fn func(pos components.Position, heading, size float32)) {
	query := g.fishFilter.Query()
	for query.Next() {
		pos, rot, body, fish := query.Get()
		if fish.Destroyed {
			continue
		}
		fn(*pos, rot.Heading, body.Radius)
	}
}

// VisitPads calls fn for every lily pad.
func (g *Game) VisitPads(fn func(pos components.Position, size float32, flower bool)) {
	query := g.padFilter.Query()
	for query.Next() {
		pos, _, body, pad := query.Get()
		fn(*pos, body.Radius, pad.HasFlower)
	}
}

// VisitFood calls fn for every live food item.
func (g *Game) VisitFood(fn func(pos components.Position, size float32)) {
	for _, e := range g.foods.Entities() {
		if pos, food, ok := g.foods.Resolve(e); ok && food.Live() {
			fn(*pos, food.Size)
		}
	}
}
