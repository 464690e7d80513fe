package game

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ringquest/internal/audio"
	"ringquest/internal/clock"
	"ringquest/internal/input"
)

type writeCall struct {
	address uint16
	data    []byte
}

// recordingDisplay records every call in order
type recordingDisplay struct {
	calls     []string
	writes    []writeCall
	rendering bool
	sprites   []byte
	uploads   int
}

func (d *recordingDisplay) WriteBlock(address uint16, data []byte) {
	d.calls = append(d.calls, fmt.Sprintf("write $%04X", address))
	d.writes = append(d.writes, writeCall{address: address, data: append([]byte(nil), data...)})
}

func (d *recordingDisplay) SetRenderingEnabled(enabled bool) {
	d.calls = append(d.calls, fmt.Sprintf("rendering %t", enabled))
	d.rendering = enabled
}

func (d *recordingDisplay) ResetScroll() {
	d.calls = append(d.calls, "scroll")
}

func (d *recordingDisplay) WriteSprites(table []byte) {
	d.calls = append(d.calls, "sprites")
	d.sprites = append(d.sprites[:0], table...)
	d.uploads++
}

func (d *recordingDisplay) writesTo(address uint16) []writeCall {
	var found []writeCall
	for _, w := range d.writes {
		if w.address == address {
			found = append(found, w)
		}
	}
	return found
}

func (d *recordingDisplay) reset() {
	d.calls = nil
	d.writes = nil
}

type fakeLoader struct {
	blobs [][]byte
	err   error
}

func (l *fakeLoader) LoadBackground(blob []byte) error {
	l.blobs = append(l.blobs, blob)
	return l.err
}

type recordingAudio struct {
	music   []audio.Track
	effects []audio.Effect
	ticks   int
}

func (a *recordingAudio) PlayMusic(track audio.Track)    { a.music = append(a.music, track) }
func (a *recordingAudio) PlayEffect(effect audio.Effect) { a.effects = append(a.effects, effect) }
func (a *recordingAudio) Tick()                          { a.ticks++ }

func (a *recordingAudio) lastMusic() (audio.Track, bool) {
	if len(a.music) == 0 {
		return 0, false
	}
	return a.music[len(a.music)-1], true
}

func (a *recordingAudio) hasEffect(effect audio.Effect) bool {
	for _, e := range a.effects {
		if e == effect {
			return true
		}
	}
	return false
}

type harness struct {
	game    *Game
	clock   *clock.Manual
	ports   *input.InputState
	display *recordingDisplay
	loader  *fakeLoader
	audio   *recordingAudio
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithLayout(t, LayoutFor(RegionNTSC))
}

func newHarnessWithLayout(t *testing.T, layout Layout) *harness {
	t.Helper()

	h := &harness{
		clock:   clock.NewManual(),
		ports:   input.NewInputState(),
		display: &recordingDisplay{},
		loader:  &fakeLoader{},
		audio:   &recordingAudio{},
	}

	g, err := New(Hardware{
		Clock:       h.clock,
		Input:       input.NewSampler(h.ports),
		Display:     h.display,
		Backgrounds: h.loader,
		Audio:       h.audio,
	}, layout)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	h.game = g
	g.Start()
	return h
}

// frame runs one frame with buttons held on controller 1
func (h *harness) frame(t *testing.T, buttons input.Button) {
	t.Helper()
	h.ports.Controller1.SetButtons(buttons)
	if err := h.game.Frame(context.Background()); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
}

func (h *harness) frames(t *testing.T, n int, buttons input.Button) {
	t.Helper()
	for i := 0; i < n; i++ {
		h.frame(t, buttons)
	}
}

// level presses Start on the title screen and returns the level state
func (h *harness) level(t *testing.T) *Level {
	t.Helper()
	h.frame(t, input.ButtonStart)
	h.frame(t, 0)

	level, ok := h.game.State().(*Level)
	if !ok {
		t.Fatalf("Expected Level state, got %s", h.game.State())
	}
	return level
}

// fade delivers the ring from next to the bride and returns the fade state
func (h *harness) fade(t *testing.T) *Fade {
	t.Helper()
	level := h.level(t)
	layout := h.game.Layout()

	level.Ring = RingCarried
	level.Player = Player{X: layout.Bride.X - PersonSize, Y: layout.Bride.Y, Facing: FacingRight}
	h.frame(t, input.ButtonA)

	fade, ok := h.game.State().(*Fade)
	if !ok {
		t.Fatalf("Expected Fade state, got %s", h.game.State())
	}
	return fade
}

var errCorrupt = errors.New("corrupt blob")
