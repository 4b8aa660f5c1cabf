package components

// Body holds the physical extent of an entity.
// For fish and lily pads Radius is the "size" used by collision and edge logic.
type Body struct {
	Radius float32
}

// Floater holds lily pad state that is not shared with other agents.
type Floater struct {
	HasFlower bool
}
