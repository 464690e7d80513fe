package game

import (
	"fmt"
	"strings"

	"ringquest/internal/clock"
)

// Region selects console timing and the visible playfield
type Region uint8

// Supported regions
const (
	RegionNTSC Region = iota
	RegionPAL
)

// String returns the region name
func (r Region) String() string {
	if r == RegionPAL {
		return "PAL"
	}
	return "NTSC"
}

// FramesPerSecond returns the display refresh rate of the region
func (r Region) FramesPerSecond() int {
	if r == RegionPAL {
		return clock.PALFramesPerSecond
	}
	return clock.NTSCFramesPerSecond
}

// ParseRegion accepts "ntsc" or "pal" in any case. An empty name means NTSC.
func ParseRegion(name string) (Region, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "NTSC":
		return RegionNTSC, nil
	case "PAL":
		return RegionPAL, nil
	default:
		return RegionNTSC, fmt.Errorf("unknown region %q", name)
	}
}

// Sprite and prop dimensions in pixels
const (
	SpriteSize = 8
	PersonSize = 32
	RingSize   = 16
)

const (
	screenLeft  = 0
	screenRight = 256
)

// Point is a pixel position
type Point struct {
	X, Y int
}

// Bounds are the inclusive limits of the player's top-left corner
type Bounds struct {
	Left, Right, Top, Bottom int
}

// Layout holds the fixed positions and timings of the game
type Layout struct {
	Region Region

	Bounds      Bounds
	PlayerStart Point
	Bride       Box

	RingGround    Point
	RingCarried   Point // inventory marker in the status band
	RingDelivered Point

	FadeInterval    int // frames per fade step
	CreditsInterval int // frames per credits scroll tick
}

// LayoutFor returns the layout for a region. PAL shows 16 more lines so
// the vertical bounds widen.
func LayoutFor(region Region) Layout {
	minY, maxY := 8, 231
	if region == RegionPAL {
		minY, maxY = 0, 239
	}

	fps := region.FramesPerSecond()
	return Layout{
		Region: region,
		Bounds: Bounds{
			Left:   screenLeft + SpriteSize,
			Right:  screenRight - PersonSize - SpriteSize,
			Top:    minY + PersonSize + SpriteSize,
			Bottom: maxY - PersonSize - SpriteSize,
		},
		PlayerStart:     Point{X: 20, Y: 180},
		Bride:           Box{X: 208, Y: 48, W: PersonSize, H: PersonSize},
		RingGround:      Point{X: 120, Y: 112},
		RingCarried:     Point{X: 236, Y: 11},
		RingDelivered:   Point{X: 208 + 5, Y: 48 + 14},
		FadeInterval:    fps / 2,
		CreditsInterval: fps / 10,
	}
}

// RingPosition derives the ring's position from its slot
func (l Layout) RingPosition(slot RingSlot) Point {
	switch slot {
	case RingCarried:
		return l.RingCarried
	case RingDelivered:
		return l.RingDelivered
	default:
		return l.RingGround
	}
}
