package game

// Box is an axis-aligned bounding box
type Box struct {
	X, Y, W, H int
}

// Overlaps reports a nonzero overlap on both axes. Touching edges do not
// overlap.
func (b Box) Overlaps(other Box) bool {
	return b.X < other.X+other.W &&
		b.X+b.W > other.X &&
		b.Y < other.Y+other.H &&
		b.Y+b.H > other.Y
}

// Collision is the result of a collision test
type Collision uint8

// Collision results
const (
	CollisionNone Collision = iota
	CollisionRing
	CollisionBride
)

// String returns the collision name
func (c Collision) String() string {
	switch c {
	case CollisionRing:
		return "Ring"
	case CollisionBride:
		return "Bride"
	default:
		return "None"
	}
}

// Targets are the solid boxes in the level
type Targets struct {
	Bride        Box
	Ring         Box
	RingOnGround bool
}

// Detect tests the player's box against the bride, then against the ring
// while it lies on the ground.
func Detect(player Box, targets Targets) Collision {
	if player.Overlaps(targets.Bride) {
		return CollisionBride
	}
	if targets.RingOnGround && player.Overlaps(targets.Ring) {
		return CollisionRing
	}
	return CollisionNone
}
