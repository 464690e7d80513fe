package game

import (
	"math/rand"
	"testing"

	"ringquest/internal/input"
)

func levelTargets(layout Layout, slot RingSlot) Targets {
	level := &Level{Ring: slot}
	return level.targets(layout)
}

func TestMove_BoundaryRefusal_ShouldKeepFacing(t *testing.T) {
	layout := LayoutFor(RegionNTSC)
	targets := levelTargets(layout, RingCarried)

	tests := []struct {
		name   string
		start  Player
		button input.Button
	}{
		{"left edge", Player{X: 8, Y: 150, Facing: FacingDown}, input.ButtonLeft},
		{"right edge", Player{X: 216, Y: 150, Facing: FacingUp}, input.ButtonRight},
		{"top edge", Player{X: 20, Y: 48, Facing: FacingLeft}, input.ButtonUp},
		{"bottom edge", Player{X: 20, Y: 191, Facing: FacingRight}, input.ButtonDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.start
			p.Move(tt.button, layout.Bounds, targets)
			if p != tt.start {
				t.Errorf("Expected %+v unchanged, got %+v", tt.start, p)
			}
		})
	}
}

func TestMove_CollisionRefusal_ShouldChangeFacing(t *testing.T) {
	layout := LayoutFor(RegionNTSC)
	p := Player{X: 88, Y: 112, Facing: FacingDown}

	p.Move(input.ButtonRight, layout.Bounds, levelTargets(layout, RingOnGround))

	if p.X != 88 || p.Y != 112 {
		t.Errorf("Expected blocked at (88,112), got (%d,%d)", p.X, p.Y)
	}
	if p.Facing != FacingRight {
		t.Errorf("Expected facing Right after a blocked move, got %s", p.Facing)
	}
}

func TestMove_Diagonal_ShouldResolveAxesIndependently(t *testing.T) {
	layout := LayoutFor(RegionNTSC)
	p := Player{X: 88, Y: 100, Facing: FacingUp}

	p.Move(input.ButtonDown|input.ButtonRight, layout.Bounds, levelTargets(layout, RingOnGround))

	if p.X != 88 || p.Y != 101 {
		t.Errorf("Expected (88,101), got (%d,%d)", p.X, p.Y)
	}
	if p.Facing != FacingRight {
		t.Errorf("Expected the last direction to set facing, got %s", p.Facing)
	}
}

func TestMove_OppositeDirections_ShouldCancel(t *testing.T) {
	layout := LayoutFor(RegionNTSC)
	p := Player{X: 50, Y: 150, Facing: FacingDown}

	p.Move(input.ButtonUp|input.ButtonDown|input.ButtonLeft|input.ButtonRight, layout.Bounds, levelTargets(layout, RingCarried))

	if p.X != 50 || p.Y != 150 {
		t.Errorf("Expected no net movement, got (%d,%d)", p.X, p.Y)
	}
	if p.Facing != FacingRight {
		t.Errorf("Expected facing Right, got %s", p.Facing)
	}
}

func TestMove_RandomWalk_ShouldNeverEnterSolidTargets(t *testing.T) {
	directions := []input.Button{input.ButtonUp, input.ButtonDown, input.ButtonLeft, input.ButtonRight}
	rng := rand.New(rand.NewSource(1947))

	for _, region := range []Region{RegionNTSC, RegionPAL} {
		layout := LayoutFor(region)
		targets := levelTargets(layout, RingOnGround)
		p := Player{X: layout.PlayerStart.X, Y: layout.PlayerStart.Y}

		for frame := 0; frame < 20000; frame++ {
			var held input.Button
			for _, d := range directions {
				if rng.Intn(3) == 0 {
					held |= d
				}
			}
			p.Move(held, layout.Bounds, targets)

			if got := Detect(p.Box(), targets); got != CollisionNone {
				t.Fatalf("%s frame %d: player %+v inside %s", region, frame, p, got)
			}
			b := layout.Bounds
			if p.X < b.Left || p.X > b.Right || p.Y < b.Top || p.Y > b.Bottom {
				t.Fatalf("%s frame %d: player %+v outside %+v", region, frame, p, b)
			}
		}
	}
}

func TestProbe_ShouldNotMovePlayer(t *testing.T) {
	layout := LayoutFor(RegionNTSC)
	p := Player{X: 88, Y: 112, Facing: FacingRight}

	if got := p.Probe(levelTargets(layout, RingOnGround)); got != CollisionRing {
		t.Errorf("Expected Ring, got %s", got)
	}
	if got := p.Probe(levelTargets(layout, RingCarried)); got != CollisionNone {
		t.Errorf("Expected None once carried, got %s", got)
	}
	if p.X != 88 {
		t.Errorf("Probe moved the player to x=%d", p.X)
	}
}

func TestFacingTile_ShouldSelectFrameSet(t *testing.T) {
	tests := []struct {
		facing Facing
		name   string
	}{
		{FacingDown, "Down"},
		{FacingUp, "Up"},
		{FacingLeft, "Left"},
		{FacingRight, "Right"},
	}

	seen := map[uint8]bool{}
	for _, tt := range tests {
		if tt.facing.String() != tt.name {
			t.Errorf("Expected %s, got %s", tt.name, tt.facing)
		}
		seen[tt.facing.Tile()] = true
	}
	if len(seen) != 4 {
		t.Errorf("Expected four distinct frame sets, got %d", len(seen))
	}
}
