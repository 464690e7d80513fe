package game

import (
	"ringquest/internal/assets"
	"ringquest/internal/input"
)

// Facing is the direction the groom looks in. It selects the sprite
// frame set.
type Facing uint8

// Facing directions
const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

// String returns the facing name
func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "Up"
	case FacingLeft:
		return "Left"
	case FacingRight:
		return "Right"
	default:
		return "Down"
	}
}

// Tile returns the first tile of the frame set
func (f Facing) Tile() uint8 {
	switch f {
	case FacingUp:
		return assets.TileGroomBack
	case FacingLeft:
		return assets.TileGroomLeft
	case FacingRight:
		return assets.TileGroomRight
	default:
		return assets.TileGroomFront
	}
}

func (f Facing) step() (dx, dy int) {
	switch f {
	case FacingUp:
		return 0, -1
	case FacingLeft:
		return -1, 0
	case FacingRight:
		return 1, 0
	default:
		return 0, 1
	}
}

// Player is the groom
type Player struct {
	X, Y   int
	Facing Facing
}

// Box returns the player's bounding box
func (p Player) Box() Box {
	return Box{X: p.X, Y: p.Y, W: PersonSize, H: PersonSize}
}

// Move applies one frame of held directions in the order Up, Down, Left,
// Right. A direction refused by the bounds is skipped entirely; a move that
// collides is reverted on its axis but still turns the player.
func (p *Player) Move(held input.Button, bounds Bounds, targets Targets) {
	if held.Has(input.ButtonUp) && p.Y > bounds.Top {
		p.try(FacingUp, targets)
	}
	if held.Has(input.ButtonDown) && p.Y < bounds.Bottom {
		p.try(FacingDown, targets)
	}
	if held.Has(input.ButtonLeft) && p.X > bounds.Left {
		p.try(FacingLeft, targets)
	}
	if held.Has(input.ButtonRight) && p.X < bounds.Right {
		p.try(FacingRight, targets)
	}
}

func (p *Player) try(facing Facing, targets Targets) {
	dx, dy := facing.step()
	p.X += dx
	p.Y += dy
	if Detect(p.Box(), targets) != CollisionNone {
		p.X -= dx
		p.Y -= dy
	}
	p.Facing = facing
}

// Probe reports what a step in the facing direction would hit without
// moving the player.
func (p Player) Probe(targets Targets) Collision {
	dx, dy := p.Facing.step()
	box := p.Box()
	box.X += dx
	box.Y += dy
	return Detect(box, targets)
}

// RingSlot is where the ring currently is
type RingSlot uint8

// Ring slots
const (
	RingOnGround RingSlot = iota
	RingCarried
	RingDelivered
)

// String returns the slot name
func (s RingSlot) String() string {
	switch s {
	case RingCarried:
		return "Carried"
	case RingDelivered:
		return "Delivered"
	default:
		return "OnGround"
	}
}
