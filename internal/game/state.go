package game

import (
	"ringquest/internal/assets"
	"ringquest/internal/audio"
	"ringquest/internal/input"
)

// State is one mode of the game. Each variant carries only its own data.
type State interface {
	String() string
	handleInput(g *Game)
	update(g *Game)
}

// Title waits for Start
type Title struct{}

func (*Title) String() string { return "Title" }

func (*Title) handleInput(g *Game) {
	if g.pressed(input.ButtonStart) {
		g.enterLevel()
		g.audio.PlayEffect(audio.EffectStart)
	}
}

func (*Title) update(*Game) {}

// Level is the playable screen
type Level struct {
	Player Player
	Ring   RingSlot
}

func (*Level) String() string { return "Level" }

func (l *Level) targets(layout Layout) Targets {
	ring := layout.RingPosition(l.Ring)
	return Targets{
		Bride:        layout.Bride,
		Ring:         Box{X: ring.X, Y: ring.Y, W: RingSize, H: RingSize},
		RingOnGround: l.Ring == RingOnGround,
	}
}

func (l *Level) handleInput(g *Game) {
	if g.pressed(input.ButtonA) && l.action(g) {
		return
	}
	l.Player.Move(g.input.Current(0), g.layout.Bounds, l.targets(g.layout))
}

// action probes one step ahead of the player. It reports whether the
// level was left.
func (l *Level) action(g *Game) bool {
	switch l.Ring {
	case RingOnGround:
		if l.Player.Probe(l.targets(g.layout)) == CollisionRing {
			l.Ring = RingCarried
			g.audio.PlayEffect(audio.EffectRing)
			g.logf("ring picked up at (%d,%d)", l.Player.X, l.Player.Y)
		}
	case RingCarried:
		if l.Player.Facing != FacingUp && l.Player.Facing != FacingRight {
			return false
		}
		if l.Player.Probe(l.targets(g.layout)) == CollisionBride {
			l.Ring = RingDelivered
			g.audio.PlayEffect(audio.EffectRing)
			g.enterFade()
			return true
		}
	}
	return false
}

func (l *Level) update(g *Game) {
	g.sprites.placePlayer(l.Player)
	g.sprites.placeRing(g.layout.RingPosition(l.Ring))
}

// Fade darkens the level palette after the ring is delivered
type Fade struct {
	Palette FadePalette
}

func (*Fade) String() string { return "Fade" }

func (*Fade) handleInput(*Game) {}

func (f *Fade) update(g *Game) {
	if int(g.clock.Count()) < g.layout.FadeInterval {
		return
	}
	g.clock.ResetCount()

	changed, done := f.Palette.advance()
	if changed {
		g.queuePalette(f.Palette.Colors)
	}
	if done {
		g.enterCredits()
	}
}

// Credits scrolls the credit messages and then shows the date
type Credits struct {
	Cursor CreditsCursor
}

func (*Credits) String() string { return "Credits" }

func (*Credits) handleInput(*Game) {}

func (c *Credits) update(g *Game) {
	if c.Cursor.Parked || int(g.clock.Count()) < g.layout.CreditsInterval {
		return
	}
	g.clock.ResetCount()

	message := c.Cursor.Message
	rested := c.Cursor.scroll()
	g.sprites.placeCredits(&c.Cursor)

	if c.Cursor.Message != message {
		g.logf("credits message %d", c.Cursor.Message)
	}
	if rested {
		g.queueBlock(assets.NametableAddress(assets.DateRow, assets.DateColumn), assets.Text(assets.DateText))
		g.logf("credits parked, date written")
	}
}

func (g *Game) enterTitle() {
	g.sprites.HideAll()
	g.queuePalette(assets.PaletteTitle)
	g.queueBackground(assets.TitleBackground())
	g.audio.PlayMusic(audio.TrackTitle)
	g.setState(&Title{})
}

func (g *Game) enterLevel() {
	g.sprites.HideAll()
	g.queuePalette(assets.PaletteLevel)
	g.queueBackground(assets.LevelBackground())
	g.audio.PlayMusic(audio.TrackLevel)

	level := &Level{
		Player: Player{X: g.layout.PlayerStart.X, Y: g.layout.PlayerStart.Y, Facing: FacingDown},
		Ring:   RingOnGround,
	}
	g.setState(level)
}

func (g *Game) enterFade() {
	g.audio.PlayMusic(audio.TrackCredits)
	g.clock.ResetCount()
	g.sprites.HideAll()
	g.queueBlock(assets.NametableAddress(assets.WinRow, assets.WinColumn), assets.Text(assets.WinText))
	g.setState(&Fade{Palette: newFadePalette(assets.PaletteLevel)})
}

func (g *Game) enterCredits() {
	g.sprites.HideAll()
	g.queuePalette(assets.PaletteCredits)
	g.queueBackground(assets.CreditsBackground())

	credits := &Credits{Cursor: newCreditsCursor(assets.CreditMessages)}
	g.sprites.placeCredits(&credits.Cursor)
	g.clock.ResetCount()
	g.setState(credits)
}
