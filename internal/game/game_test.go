package game

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"ringquest/internal/assets"
	"ringquest/internal/audio"
	"ringquest/internal/clock"
	"ringquest/internal/input"
)

func TestNew_MissingCollaborator_ShouldFail(t *testing.T) {
	full := Hardware{
		Clock:       clock.NewManual(),
		Input:       input.NewSampler(input.NewInputState()),
		Display:     &recordingDisplay{},
		Backgrounds: &fakeLoader{},
		Audio:       &recordingAudio{},
	}

	tests := []struct {
		name   string
		mutate func(hw *Hardware)
	}{
		{"clock", func(hw *Hardware) { hw.Clock = nil }},
		{"input", func(hw *Hardware) { hw.Input = nil }},
		{"display", func(hw *Hardware) { hw.Display = nil }},
		{"backgrounds", func(hw *Hardware) { hw.Backgrounds = nil }},
		{"audio", func(hw *Hardware) { hw.Audio = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hw := full
			tt.mutate(&hw)
			if _, err := New(hw, LayoutFor(RegionNTSC)); err == nil {
				t.Error("Expected error for missing collaborator")
			}
		})
	}

	layout := LayoutFor(RegionNTSC)
	layout.FadeInterval = 0
	if _, err := New(full, layout); err == nil {
		t.Error("Expected error for zero fade interval")
	}
}

func TestStart_ShouldEnterTitleAndCommit(t *testing.T) {
	h := newHarness(t)

	if _, ok := h.game.State().(*Title); !ok {
		t.Fatalf("Expected Title state, got %s", h.game.State())
	}
	if track, ok := h.audio.lastMusic(); !ok || track != audio.TrackTitle {
		t.Errorf("Expected title music, got %v (ok=%t)", track, ok)
	}
	if len(h.loader.blobs) != 1 || !bytes.Equal(h.loader.blobs[0], assets.TitleBackground()) {
		t.Error("Expected the title background to be loaded once")
	}

	palettes := h.display.writesTo(PaletteAddress)
	if len(palettes) != 1 || !bytes.Equal(palettes[0].data, assets.PaletteTitle.Bytes()) {
		t.Error("Expected the title palette to be written")
	}

	expected := []string{"rendering false", "write $3F00", "scroll", "rendering true", "sprites"}
	if !reflect.DeepEqual(h.display.calls, expected) {
		t.Errorf("Expected calls %v, got %v", expected, h.display.calls)
	}

	for n := 0; n < SpriteTableSize/4; n++ {
		if h.display.sprites[n*4] != OffscreenY {
			t.Fatalf("Expected sprite %d hidden, Y=%d", n, h.display.sprites[n*4])
		}
	}

	// Start twice must not re-enter the title
	h.game.Start()
	if h.game.Transitions() != 1 {
		t.Errorf("Expected 1 transition, got %d", h.game.Transitions())
	}
}

func TestFrame_NothingQueued_ShouldOnlyResetScrollAndUploadSprites(t *testing.T) {
	h := newHarness(t)
	h.display.reset()

	h.frame(t, 0)

	expected := []string{"scroll", "sprites"}
	if !reflect.DeepEqual(h.display.calls, expected) {
		t.Errorf("Expected calls %v, got %v", expected, h.display.calls)
	}
	if h.audio.ticks != 1 {
		t.Errorf("Expected 1 audio tick, got %d", h.audio.ticks)
	}
	if h.game.Frames() != 1 {
		t.Errorf("Expected 1 frame, got %d", h.game.Frames())
	}
}

func TestTitle_StartEdge_ShouldEnterLevel(t *testing.T) {
	h := newHarness(t)

	h.frame(t, 0)
	if _, ok := h.game.State().(*Title); !ok {
		t.Fatalf("Expected Title without input, got %s", h.game.State())
	}

	h.frame(t, input.ButtonStart)

	if _, ok := h.game.State().(*Level); !ok {
		t.Fatalf("Expected Level after Start edge, got %s", h.game.State())
	}
	if track, _ := h.audio.lastMusic(); track != audio.TrackLevel {
		t.Errorf("Expected level music, got %s", track)
	}
	if !h.audio.hasEffect(audio.EffectStart) {
		t.Error("Expected start effect")
	}
	if last := h.loader.blobs[len(h.loader.blobs)-1]; !bytes.Equal(last, assets.LevelBackground()) {
		t.Error("Expected the level background to be loaded")
	}
}

func TestTitle_HeldStart_ShouldNotEnterLevel(t *testing.T) {
	h := newHarness(t)

	// Start is still held when the title screen comes back
	h.frame(t, input.ButtonStart)
	h.game.setState(&Title{})
	h.frame(t, input.ButtonStart)

	if _, ok := h.game.State().(*Title); !ok {
		t.Fatalf("Held Start must not leave the title, got %s", h.game.State())
	}

	h.frame(t, 0)
	h.frame(t, input.ButtonStart)
	if _, ok := h.game.State().(*Level); !ok {
		t.Fatalf("Expected Level after release and press, got %s", h.game.State())
	}
}

func TestTitle_OtherButtons_ShouldBeIgnored(t *testing.T) {
	h := newHarness(t)

	h.frames(t, 3, input.ButtonA|input.ButtonSelect|input.ButtonRight)

	if _, ok := h.game.State().(*Title); !ok {
		t.Fatalf("Expected Title, got %s", h.game.State())
	}
	if len(h.audio.effects) != 0 {
		t.Errorf("Expected no effects, got %v", h.audio.effects)
	}
}

func TestLevel_Entry_ShouldPlacePlayerAndRing(t *testing.T) {
	h := newHarness(t)
	level := h.level(t)
	layout := h.game.Layout()

	if level.Player.X != layout.PlayerStart.X || level.Player.Y != layout.PlayerStart.Y {
		t.Errorf("Expected player at start, got (%d,%d)", level.Player.X, level.Player.Y)
	}
	if level.Player.Facing != FacingDown || level.Ring != RingOnGround {
		t.Errorf("Expected facing Down and ring OnGround, got %s and %s", level.Player.Facing, level.Ring)
	}

	sprites := h.game.Sprites()
	tests := []struct {
		n          int
		x, y       int
		tile, attr uint8
	}{
		{0, 20, 180, assets.TileGroomFront, assets.SpritePaletteGroomUpper},
		{7, 44, 188, assets.TileGroomFront + 7, assets.SpritePaletteGroomUpper},
		{8, 20, 196, assets.TileGroomFront + 8, assets.SpritePaletteGroomLower},
		{15, 44, 204, assets.TileGroomFront + 15, assets.SpritePaletteGroomLower},
		{16, 120, 112, assets.TileRing, assets.SpritePaletteItem},
		{19, 128, 120, assets.TileRing + 3, assets.SpritePaletteItem},
	}

	for _, tt := range tests {
		if int(sprites.X(tt.n)) != tt.x || int(sprites.Y(tt.n)) != tt.y {
			t.Errorf("Sprite %d: expected (%d,%d), got (%d,%d)", tt.n, tt.x, tt.y, sprites.X(tt.n), sprites.Y(tt.n))
		}
		if sprites.Tile(tt.n) != tt.tile || sprites.Attributes(tt.n) != tt.attr {
			t.Errorf("Sprite %d: expected tile $%02X attr %d, got $%02X attr %d",
				tt.n, tt.tile, tt.attr, sprites.Tile(tt.n), sprites.Attributes(tt.n))
		}
	}

	if sprites.Y(textSprite) != OffscreenY {
		t.Error("Expected text sprites hidden during the level")
	}
}

func TestLevel_MoveRightFiveFrames_ShouldEndFacingRight(t *testing.T) {
	layout := LayoutFor(RegionNTSC)
	layout.Bride = Box{}
	layout.RingGround = Point{X: 200, Y: 200}

	h := newHarnessWithLayout(t, layout)
	level := h.level(t)
	level.Player = Player{X: 100, Y: 100, Facing: FacingDown}

	h.frames(t, 5, input.ButtonRight)

	if level.Player.X != 105 || level.Player.Y != 100 {
		t.Errorf("Expected (105,100), got (%d,%d)", level.Player.X, level.Player.Y)
	}
	if level.Player.Facing != FacingRight {
		t.Errorf("Expected facing Right, got %s", level.Player.Facing)
	}

	sprites := h.game.Sprites()
	if sprites.X(0) != 105 || sprites.Tile(0) != assets.TileGroomRight {
		t.Errorf("Expected sprite 0 at x=105 with right frame, got x=%d tile=$%02X", sprites.X(0), sprites.Tile(0))
	}
}

func TestLevel_ActionNextToRing_ShouldCarryRing(t *testing.T) {
	tests := []struct {
		name   string
		player Player
	}{
		{"from left", Player{X: 88, Y: 112, Facing: FacingRight}},
		{"from right", Player{X: 136, Y: 112, Facing: FacingLeft}},
		{"from above", Player{X: 120, Y: 80, Facing: FacingDown}},
		{"from below", Player{X: 120, Y: 128, Facing: FacingUp}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			level := h.level(t)
			level.Player = tt.player

			h.frame(t, input.ButtonA)

			if level.Ring != RingCarried {
				t.Fatalf("Expected ring Carried, got %s", level.Ring)
			}
			if level.Player != tt.player {
				t.Errorf("Action must not move the player, got %+v", level.Player)
			}

			marker := h.game.Layout().RingCarried
			sprites := h.game.Sprites()
			if int(sprites.X(ringSprite)) != marker.X || int(sprites.Y(ringSprite)) != marker.Y {
				t.Errorf("Expected ring at marker (%d,%d), got (%d,%d)",
					marker.X, marker.Y, sprites.X(ringSprite), sprites.Y(ringSprite))
			}
			if !h.audio.hasEffect(audio.EffectRing) {
				t.Error("Expected the ring effect for the pickup")
			}
		})
	}
}

func TestLevel_ActionFacingAway_ShouldLeaveRing(t *testing.T) {
	h := newHarness(t)
	level := h.level(t)
	level.Player = Player{X: 88, Y: 112, Facing: FacingLeft}

	h.frame(t, input.ButtonA)

	if level.Ring != RingOnGround {
		t.Errorf("Expected ring OnGround, got %s", level.Ring)
	}
	if len(h.audio.effects) != 1 {
		t.Errorf("Expected only the start effect, got %v", h.audio.effects)
	}
}

func TestLevel_HeldA_ShouldActOnlyOnEdge(t *testing.T) {
	h := newHarness(t)
	level := h.level(t)
	level.Player = Player{X: 88, Y: 112, Facing: FacingLeft}

	h.frame(t, input.ButtonA)
	level.Player.Facing = FacingRight
	h.frame(t, input.ButtonA)

	if level.Ring != RingOnGround {
		t.Errorf("Held A must not act again, got ring %s", level.Ring)
	}
}

func TestLevel_DeliverRing_ShouldEnterFade(t *testing.T) {
	tests := []struct {
		name   string
		player Player
	}{
		{"facing right", Player{X: 176, Y: 48, Facing: FacingRight}},
		{"facing up", Player{X: 208, Y: 80, Facing: FacingUp}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			level := h.level(t)
			level.Ring = RingCarried
			level.Player = tt.player

			h.frame(t, input.ButtonA)

			if _, ok := h.game.State().(*Fade); !ok {
				t.Fatalf("Expected Fade, got %s", h.game.State())
			}
			if level.Ring != RingDelivered {
				t.Errorf("Expected ring Delivered, got %s", level.Ring)
			}
			if !h.audio.hasEffect(audio.EffectRing) {
				t.Error("Expected ring effect")
			}
		})
	}
}

func TestLevel_CarriedRing_WrongFacing_ShouldNotDeliver(t *testing.T) {
	layout := LayoutFor(RegionNTSC)
	layout.Bride = Box{X: 100, Y: 100, W: PersonSize, H: PersonSize}

	h := newHarnessWithLayout(t, layout)
	level := h.level(t)
	level.Ring = RingCarried
	level.Player = Player{X: 132, Y: 100, Facing: FacingLeft}

	h.frame(t, input.ButtonA)

	if _, ok := h.game.State().(*Level); !ok {
		t.Fatalf("Expected Level, got %s", h.game.State())
	}
	if level.Ring != RingCarried {
		t.Errorf("Expected ring still Carried, got %s", level.Ring)
	}
}

func TestLevel_DeliveredRing_ShouldIgnoreAction(t *testing.T) {
	h := newHarness(t)
	level := h.level(t)
	level.Ring = RingDelivered
	level.Player = Player{X: 176, Y: 48, Facing: FacingRight}
	effects := len(h.audio.effects)

	if level.action(h.game) {
		t.Error("Expected no transition from a delivered ring")
	}
	if len(h.audio.effects) != effects {
		t.Error("Expected no effect from a delivered ring")
	}
}

func TestFade_Entry_ShouldHideSpritesAndWriteOverlay(t *testing.T) {
	h := newHarness(t)
	h.fade(t)

	if track, _ := h.audio.lastMusic(); track != audio.TrackCredits {
		t.Errorf("Expected credits music, got %s", track)
	}
	if h.clock.Count() != 0 {
		t.Errorf("Expected frame counter reset, got %d", h.clock.Count())
	}

	sprites := h.game.Sprites()
	for n := 0; n < SpriteTableSize/4; n++ {
		if sprites.Y(n) != OffscreenY {
			t.Fatalf("Expected sprite %d hidden, Y=%d", n, sprites.Y(n))
		}
	}

	overlay := h.display.writesTo(assets.NametableAddress(assets.WinRow, assets.WinColumn))
	if len(overlay) != 1 || !bytes.Equal(overlay[0].data, assets.Text(assets.WinText)) {
		t.Errorf("Expected one overlay write, got %d", len(overlay))
	}
}

func TestFade_ShouldWaitThreeStepsBeforeDarkening(t *testing.T) {
	h := newHarness(t)
	h.fade(t)
	h.display.reset()

	interval := h.game.Layout().FadeInterval
	h.frames(t, 4*interval-1, 0)
	if writes := h.display.writesTo(PaletteAddress); len(writes) != 0 {
		t.Fatalf("Expected no palette writes before step 4, got %d", len(writes))
	}

	h.frame(t, 0)
	writes := h.display.writesTo(PaletteAddress)
	if len(writes) != 1 {
		t.Fatalf("Expected one palette write at step 4, got %d", len(writes))
	}
	for i, b := range assets.PaletteLevel {
		if writes[0].data[i] != FadeColor(b) {
			t.Errorf("Byte %d: expected $%02X, got $%02X", i, FadeColor(b), writes[0].data[i])
		}
	}
}

func TestFade_ThirtyFrameInterval_ShouldReachCreditsAfterTenSteps(t *testing.T) {
	h := newHarness(t)
	h.fade(t)

	if h.game.Layout().FadeInterval != 30 {
		t.Fatalf("Expected 30 frame interval, got %d", h.game.Layout().FadeInterval)
	}

	h.frames(t, 299, 0)
	if _, ok := h.game.State().(*Fade); !ok {
		t.Fatalf("Expected Fade after 299 frames, got %s", h.game.State())
	}

	h.frame(t, 0)
	if _, ok := h.game.State().(*Credits); !ok {
		t.Fatalf("Expected Credits after 300 frames, got %s", h.game.State())
	}
}

func TestPlaythrough_ControllerOnly_ShouldReachCredits(t *testing.T) {
	h := newHarness(t)
	level := h.level(t)
	start := h.game.Layout().PlayerStart

	// walk up to the ring's row, then right until it is one step ahead
	h.frames(t, start.Y-112, input.ButtonUp)
	h.frames(t, 88-start.X, input.ButtonRight)
	if level.Player.X != 88 || level.Player.Y != 112 || level.Player.Facing != FacingRight {
		t.Fatalf("Expected the player at (88,112) facing right, got %+v", level.Player)
	}

	h.frame(t, input.ButtonA)
	h.frame(t, 0)
	if level.Ring != RingCarried {
		t.Fatalf("Expected ring Carried, got %s", level.Ring)
	}

	// then up to the bride's row and right until she is one step ahead
	h.frames(t, 112-48, input.ButtonUp)
	h.frames(t, 176-88, input.ButtonRight)
	if level.Player.X != 176 || level.Player.Y != 48 {
		t.Fatalf("Expected the player at (176,48), got %+v", level.Player)
	}

	h.frame(t, input.ButtonA)
	if _, ok := h.game.State().(*Fade); !ok {
		t.Fatalf("Expected Fade after delivering, got %s", h.game.State())
	}
	if level.Ring != RingDelivered {
		t.Errorf("Expected ring Delivered, got %s", level.Ring)
	}

	rings := 0
	for _, effect := range h.audio.effects {
		if effect == audio.EffectRing {
			rings++
		}
	}
	if rings != 2 {
		t.Errorf("Expected the ring effect on pickup and delivery, got %v", h.audio.effects)
	}

	h.frames(t, 300, 0)
	if _, ok := h.game.State().(*Credits); !ok {
		t.Fatalf("Expected Credits, got %s", h.game.State())
	}
}

func TestFadeColor_ShouldFloorAtBlack(t *testing.T) {
	tests := []struct {
		in, want uint8
	}{
		{0x30, 0x20},
		{0x2A, 0x1A},
		{0x20, 0x10},
		{0x1F, 0x0F},
		{0x1A, assets.Black},
		{0x10, assets.Black},
		{assets.Black, assets.Black},
	}

	for _, tt := range tests {
		if got := FadeColor(tt.in); got != tt.want {
			t.Errorf("FadeColor($%02X): expected $%02X, got $%02X", tt.in, tt.want, got)
		}
	}
}

func TestFadePalette_ShouldMatchClosedForm(t *testing.T) {
	fade := newFadePalette(assets.PaletteLevel)

	for step := 1; step <= FadeSteps; step++ {
		before := fade.Colors
		changed, done := fade.advance()

		if changed != (step >= fadeVisibleStep) {
			t.Errorf("Step %d: unexpected changed=%t", step, changed)
		}
		if done != (step == FadeSteps) {
			t.Errorf("Step %d: unexpected done=%t", step, done)
		}

		k := step - fadeVisibleStep + 1
		if k < 0 {
			k = 0
		}
		for i, start := range assets.PaletteLevel {
			got := fade.Colors[i]
			if got > before[i] {
				t.Fatalf("Step %d byte %d increased: $%02X -> $%02X", step, i, before[i], got)
			}
			want := int(start) - 16*k
			if want < int(assets.Black) {
				want = int(assets.Black)
			}
			if int(got) != want {
				t.Errorf("Step %d byte %d: expected $%02X, got $%02X", step, i, want, got)
			}
		}
	}
}

// credits reaches the credits screen with one-frame sequencer intervals
func (h *harness) credits(t *testing.T) *Credits {
	t.Helper()
	h.fade(t)
	h.frames(t, FadeSteps, 0)

	credits, ok := h.game.State().(*Credits)
	if !ok {
		t.Fatalf("Expected Credits, got %s", h.game.State())
	}
	return credits
}

func fastLayout() Layout {
	layout := LayoutFor(RegionNTSC)
	layout.FadeInterval = 1
	layout.CreditsInterval = 1
	return layout
}

func TestCredits_Entry_ShouldLoadScreen(t *testing.T) {
	h := newHarnessWithLayout(t, fastLayout())
	credits := h.credits(t)

	if last := h.loader.blobs[len(h.loader.blobs)-1]; !bytes.Equal(last, assets.CreditsBackground()) {
		t.Error("Expected the credits background")
	}
	palettes := h.display.writesTo(PaletteAddress)
	if last := palettes[len(palettes)-1]; !bytes.Equal(last.data, assets.PaletteCredits.Bytes()) {
		t.Error("Expected the credits palette to be written last")
	}
	if credits.Cursor.Message != 0 || credits.Cursor.Parked {
		t.Errorf("Expected first message, got %d (parked=%t)", credits.Cursor.Message, credits.Cursor.Parked)
	}

	sprites := h.game.Sprites()
	for n := 0; n < textSprite+textSprites; n++ {
		if sprites.Y(n) != OffscreenY {
			t.Errorf("Expected sprite %d hidden on entry, Y=%d", n, sprites.Y(n))
		}
	}
}

func TestCredits_ShouldScrollParkAndWriteDateOnce(t *testing.T) {
	h := newHarnessWithLayout(t, fastLayout())
	credits := h.credits(t)
	dateAddress := assets.NametableAddress(assets.DateRow, assets.DateColumn)

	seen := map[int]bool{}
	previous := credits.Cursor
	for frame := 0; frame < 1000; frame++ {
		h.frame(t, 0)
		cursor := credits.Cursor
		seen[cursor.Message] = true

		if cursor.Message == previous.Message {
			for i := range cursor.Offsets {
				if cursor.Offsets[i] > previous.Offsets[i] {
					t.Fatalf("Frame %d glyph %d moved down: %d -> %d", frame, i, previous.Offsets[i], cursor.Offsets[i])
				}
			}
		}
		if cursor.Last() && cursor.Offsets[creditGlyphs-1] < CreditsRest {
			t.Fatalf("Frame %d: last message passed its rest: %d", frame, cursor.Offsets[creditGlyphs-1])
		}

		sprites := h.game.Sprites()
		for i, offset := range cursor.Offsets {
			want := OffscreenY
			if offset >= creditsTop && offset < creditsBottom+SpriteSize {
				want = uint8(offset)
			}
			if got := sprites.Y(textSprite + i); got != want {
				t.Fatalf("Frame %d glyph %d: expected Y=%d, got %d", frame, i, want, got)
			}
		}
		previous = cursor
	}

	if len(seen) != len(assets.CreditMessages) {
		t.Errorf("Expected every message shown, saw %v", seen)
	}
	if !credits.Cursor.Parked || !credits.Cursor.Last() {
		t.Fatalf("Expected last message parked, got message %d parked=%t", credits.Cursor.Message, credits.Cursor.Parked)
	}
	if credits.Cursor.Offsets[creditGlyphs-1] != CreditsRest {
		t.Errorf("Expected last glyph at rest %d, got %d", CreditsRest, credits.Cursor.Offsets[creditGlyphs-1])
	}

	dates := h.display.writesTo(dateAddress)
	if len(dates) != 1 || !bytes.Equal(dates[0].data, assets.Text(assets.DateText)) {
		t.Errorf("Expected the date written once, got %d writes", len(dates))
	}

	sprites := h.game.Sprites()
	if top := int(sprites.Y(textSprite)); top != CreditsRest-3*SpriteSize {
		t.Errorf("Expected top row at %d, got %d", CreditsRest-3*SpriteSize, top)
	}
}

func TestCredits_Glyphs_ShouldSpellFirstMessage(t *testing.T) {
	h := newHarnessWithLayout(t, fastLayout())
	h.credits(t)
	h.frames(t, 20, 0)

	sprites := h.game.Sprites()
	line := assets.CreditMessages[0][0]
	for col := 0; col < assets.CreditColumns; col++ {
		n := textSprite + col
		if sprites.Tile(n) != assets.GlyphTile(line[col]) {
			t.Errorf("Glyph %d: expected tile for %q, got $%02X", col, line[col], sprites.Tile(n))
		}
		if int(sprites.X(n)) != creditsLeft+col*SpriteSize {
			t.Errorf("Glyph %d: expected x=%d, got %d", col, creditsLeft+col*SpriteSize, sprites.X(n))
		}
	}
}

func TestCredits_ShouldIgnoreInput(t *testing.T) {
	h := newHarnessWithLayout(t, fastLayout())
	h.credits(t)
	effects := len(h.audio.effects)

	h.frame(t, input.ButtonStart)
	h.frame(t, input.ButtonA)

	if _, ok := h.game.State().(*Credits); !ok {
		t.Fatalf("Expected Credits, got %s", h.game.State())
	}
	if len(h.audio.effects) != effects {
		t.Error("Expected no effects during credits")
	}
}

func TestFrame_CorruptBackground_ShouldKeepRunning(t *testing.T) {
	h := newHarness(t)
	h.loader.err = errCorrupt

	h.frame(t, input.ButtonStart)

	if _, ok := h.game.State().(*Level); !ok {
		t.Fatalf("Expected Level despite a corrupt background, got %s", h.game.State())
	}
	if !h.display.rendering {
		t.Error("Expected rendering re-enabled after the commit")
	}
}

func TestRun_CancelledContext_ShouldStop(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.game.Run(ctx); err != nil {
		t.Errorf("Expected nil on cancellation, got %v", err)
	}
}

type failingClock struct {
	clock.Manual
}

func (*failingClock) WaitForNextFrame(context.Context) error {
	return errors.New("display lost")
}

func TestRun_ClockError_ShouldBeReturned(t *testing.T) {
	g, err := New(Hardware{
		Clock:       &failingClock{},
		Input:       input.NewSampler(input.NewInputState()),
		Display:     &recordingDisplay{},
		Backgrounds: &fakeLoader{},
		Audio:       &recordingAudio{},
	}, LayoutFor(RegionPAL))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := g.Run(context.Background()); err == nil {
		t.Error("Expected clock error from Run")
	}
}
