// Package game implements the frame-synchronized state machine of the
// game: title screen, playable level, palette fade and scrolling credits.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"

	"ringquest/internal/assets"
	"ringquest/internal/audio"
	"ringquest/internal/input"
)

// PaletteAddress is the display address of palette RAM
const PaletteAddress uint16 = 0x3F00

// FrameClock paces the loop and counts frames for the sequencers
type FrameClock interface {
	WaitForNextFrame(ctx context.Context) error
	Count() uint8
	ResetCount()
}

// InputSampler reports button masks for this frame and the previous one
type InputSampler interface {
	Refresh()
	Current(port int) input.Button
	Previous(port int) input.Button
}

// DisplayWriter accepts writes to display memory
type DisplayWriter interface {
	WriteBlock(address uint16, data []byte)
	SetRenderingEnabled(enabled bool)
	ResetScroll()
	WriteSprites(table []byte)
}

// BackgroundLoader decompresses a background into display memory
type BackgroundLoader interface {
	LoadBackground(blob []byte) error
}

// AudioEngine plays music tracks and effects and advances one frame per
// Tick.
type AudioEngine interface {
	PlayMusic(track audio.Track)
	PlayEffect(effect audio.Effect)
	Tick()
}

// Hardware groups the collaborators the game drives
type Hardware struct {
	Clock       FrameClock
	Input       InputSampler
	Display     DisplayWriter
	Backgrounds BackgroundLoader
	Audio       AudioEngine
}

type blockWrite struct {
	address uint16
	data    []byte
}

// pendingDisplay holds the writes queued during a frame until the commit
type pendingDisplay struct {
	palette    *assets.Palette
	background []byte
	blocks     []blockWrite
}

func (p *pendingDisplay) empty() bool {
	return p.palette == nil && p.background == nil && len(p.blocks) == 0
}

// Game owns the active state and the sprite table and runs one frame at a
// time.
type Game struct {
	clock       FrameClock
	input       InputSampler
	display     DisplayWriter
	backgrounds BackgroundLoader
	audio       AudioEngine

	layout  Layout
	state   State
	sprites SpriteTable
	pending pendingDisplay

	frames       uint64
	transitions  uint64
	started      bool
	debugEnabled bool
}

// New creates a game. Every collaborator is required.
func New(hw Hardware, layout Layout) (*Game, error) {
	switch {
	case hw.Clock == nil:
		return nil, errors.New("game: frame clock is required")
	case hw.Input == nil:
		return nil, errors.New("game: input sampler is required")
	case hw.Display == nil:
		return nil, errors.New("game: display writer is required")
	case hw.Backgrounds == nil:
		return nil, errors.New("game: background loader is required")
	case hw.Audio == nil:
		return nil, errors.New("game: audio engine is required")
	}
	if layout.FadeInterval <= 0 || layout.CreditsInterval <= 0 {
		return nil, fmt.Errorf("game: invalid intervals fade=%d credits=%d", layout.FadeInterval, layout.CreditsInterval)
	}

	g := &Game{
		clock:       hw.Clock,
		input:       hw.Input,
		display:     hw.Display,
		backgrounds: hw.Backgrounds,
		audio:       hw.Audio,
		layout:      layout,
	}
	g.sprites.HideAll()
	return g, nil
}

// EnableDebug enables or disables state machine logging
func (g *Game) EnableDebug(enabled bool) {
	g.debugEnabled = enabled
}

// Start enters the title screen and commits it. Frame calls Start when it
// has not been called yet.
func (g *Game) Start() {
	if g.started {
		return
	}
	g.started = true
	g.enterTitle()
	g.commit()
}

// Frame waits for the next frame and runs it: audio tick, input refresh,
// the state's input handler and update, then the display commit.
func (g *Game) Frame(ctx context.Context) error {
	g.Start()

	if err := g.clock.WaitForNextFrame(ctx); err != nil {
		return err
	}

	g.audio.Tick()
	g.input.Refresh()

	g.state.handleInput(g)
	g.state.update(g)

	g.commit()
	g.frames++
	return nil
}

// Run executes frames until ctx is cancelled
func (g *Game) Run(ctx context.Context) error {
	for {
		if err := g.Frame(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("frame %d: %w", g.frames, err)
		}
	}
}

// commit pushes the queued palette, background and text with rendering
// off, then uploads the sprite table.
func (g *Game) commit() {
	if !g.pending.empty() {
		g.display.SetRenderingEnabled(false)

		if g.pending.palette != nil {
			g.display.WriteBlock(PaletteAddress, g.pending.palette.Bytes())
		}
		if g.pending.background != nil {
			if err := g.backgrounds.LoadBackground(g.pending.background); err != nil {
				log.Printf("[GAME] Background not loaded: %v", err)
			}
		}
		for _, block := range g.pending.blocks {
			g.display.WriteBlock(block.address, block.data)
		}

		g.display.ResetScroll()
		g.display.SetRenderingEnabled(true)
		g.pending = pendingDisplay{}
	} else {
		g.display.ResetScroll()
	}

	g.display.WriteSprites(g.sprites[:])
}

func (g *Game) setState(next State) {
	if g.debugEnabled {
		from := "none"
		if g.state != nil {
			from = g.state.String()
		}
		log.Printf("[GAME] Frame %d: %s -> %s", g.frames, from, next)
	}
	g.state = next
	g.transitions++
}

func (g *Game) pressed(button input.Button) bool {
	return g.input.Current(0).Has(button) && !g.input.Previous(0).Has(button)
}

func (g *Game) queuePalette(p assets.Palette) {
	g.pending.palette = &p
}

func (g *Game) queueBackground(blob []byte) {
	g.pending.background = blob
}

func (g *Game) queueBlock(address uint16, data []byte) {
	g.pending.blocks = append(g.pending.blocks, blockWrite{address: address, data: data})
}

func (g *Game) logf(format string, args ...interface{}) {
	if g.debugEnabled {
		log.Printf("[GAME] "+format, args...)
	}
}

// State returns the active state
func (g *Game) State() State {
	return g.state
}

// Layout returns the layout the game was created with
func (g *Game) Layout() Layout {
	return g.layout
}

// Sprites returns a copy of the sprite table
func (g *Game) Sprites() SpriteTable {
	return g.sprites
}

// Frames returns the number of frames run
func (g *Game) Frames() uint64 {
	return g.frames
}

// Transitions returns the number of state changes, the initial title
// included.
func (g *Game) Transitions() uint64 {
	return g.transitions
}
