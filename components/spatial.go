package components

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in world units per tick.
type Velocity struct {
	X, Y float32
}

// Rotation represents an entity's heading and angular velocity.
type Rotation struct {
	Heading float32 // radians
	AngVel  float32 // angular velocity (radians per tick)
}

// Trail holds the two eased markers drawn behind a tadpole.
// Points[0] follows the body, Points[1] follows Points[0].
type Trail struct {
	Points [2]Position
}

// NewTrail returns a trail collapsed onto the given position.
func NewTrail(pos Position) Trail {
	return Trail{Points: [2]Position{pos, pos}}
}
