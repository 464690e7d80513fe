package graphics

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"ringquest/internal/input"
)

func TestDecodeKeys_ShouldMapTerminalBytes(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []Key
	}{
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Key{KeyUp, KeyDown, KeyRight, KeyLeft}},
		{"letters any case", "wAsD", []Key{KeyW, KeyA, KeyS, KeyD}},
		{"enter and space", "\r ", []Key{KeyEnter, KeySpace}},
		{"quit keys", "q\x03\x1b", []Key{KeyEscape, KeyEscape, KeyEscape}},
		{"number row", "18", []Key{Key1, Key8}},
		{"ignored", "9?", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decoder keyDecoder
			got := append(decoder.decode([]byte(tt.data)), decoder.flush()...)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Key %d: expected %d, got %d", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestKeyDecoder_SplitSequence_ShouldWaitForTheRest(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []Key
	}{
		{"arrow split after bracket", []string{"\x1b[", "A"}, []Key{KeyUp}},
		{"arrow split after escape", []string{"w\x1b", "[D"}, []Key{KeyW, KeyLeft}},
		{"escape then letter", []string{"\x1b", "x"}, []Key{KeyEscape, KeyX}},
		{"double escape", []string{"\x1b\x1b"}, []Key{KeyEscape}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decoder keyDecoder
			var got []Key
			for _, chunk := range tt.chunks {
				got = append(got, decoder.decode([]byte(chunk))...)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Key %d: expected %s, got %s", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestKeyDecoder_Flush_ShouldOnlyReportBareEscape(t *testing.T) {
	var decoder keyDecoder

	if keys := decoder.decode([]byte{0x1B}); len(keys) != 0 || !decoder.waiting() {
		t.Fatalf("Expected a held escape, got %v", keys)
	}
	if keys := decoder.flush(); len(keys) != 1 || keys[0] != KeyEscape {
		t.Errorf("Expected Escape on flush, got %v", keys)
	}

	decoder.decode([]byte{0x1B, '['})
	if keys := decoder.flush(); len(keys) != 0 {
		t.Errorf("Expected an unfinished sequence to be dropped, got %v", keys)
	}
	if decoder.waiting() {
		t.Error("Expected nothing held after flush")
	}
}

func receiveKey(t *testing.T, w *TerminalWindow) Key {
	t.Helper()
	select {
	case key := <-w.keys:
		return key
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for a key")
		return 0
	}
}

func TestTerminalWindow_ReadKeys_SplitArrow_ShouldNotQuit(t *testing.T) {
	w := newTerminalWindow(&bytes.Buffer{}, false)
	w.escapeDelay = time.Hour

	reader, writer := io.Pipe()
	go w.readKeys(reader)

	// each pipe write reaches the reader as its own read
	if _, err := writer.Write([]byte{0x1B, '['}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := writer.Write([]byte{'A'}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if key := receiveKey(t, w); key != KeyUp {
		t.Errorf("Expected Up, got %s", key)
	}
	writer.Close()
}

func TestTerminalWindow_ReadKeys_BareEscape_ShouldQuitAfterDelay(t *testing.T) {
	w := newTerminalWindow(&bytes.Buffer{}, false)
	w.escapeDelay = 10 * time.Millisecond

	reader, writer := io.Pipe()
	defer writer.Close()
	go w.readKeys(reader)

	if _, err := writer.Write([]byte{0x1B}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if key := receiveKey(t, w); key != KeyEscape {
		t.Errorf("Expected Escape, got %s", key)
	}
}

func TestTerminalWindow_PollEvents_ShouldHoldThenRelease(t *testing.T) {
	w := newTerminalWindow(&bytes.Buffer{}, false)
	w.keys <- KeyEnter

	events := w.PollEvents()
	if len(events) != 1 || events[0].Button != input.ButtonStart || !events[0].Pressed {
		t.Fatalf("Expected a Start press, got %+v", events)
	}

	for frame := 1; frame < terminalHoldFrames; frame++ {
		if events := w.PollEvents(); len(events) != 0 {
			t.Fatalf("Frame %d: expected Start still held, got %+v", frame, events)
		}
	}

	events = w.PollEvents()
	if len(events) != 1 || events[0].Button != input.ButtonStart || events[0].Pressed {
		t.Fatalf("Expected a Start release, got %+v", events)
	}
}

func TestTerminalWindow_RepeatedKey_ShouldExtendHold(t *testing.T) {
	w := newTerminalWindow(&bytes.Buffer{}, false)

	w.keys <- KeyRight
	w.PollEvents()
	for frame := 0; frame < terminalHoldFrames*3; frame++ {
		w.keys <- KeyRight
		for _, event := range w.PollEvents() {
			t.Fatalf("Frame %d: expected no transitions while repeating, got %+v", frame, event)
		}
	}
}

func TestTerminalWindow_RenderFrame_ShouldDrawHalfBlocks(t *testing.T) {
	var out bytes.Buffer
	w := newTerminalWindow(&out, false)

	var frame FrameBuffer
	for x := 0; x < ScreenWidth; x++ {
		frame[x] = 0xFF0000
		frame[2*ScreenWidth+x] = 0x0000FF
	}

	if err := w.RenderFrame(frame); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if out.Len() != 0 {
		t.Fatal("RenderFrame must not write before SwapBuffers")
	}
	w.SwapBuffers()

	text := out.String()
	rows := strings.Split(strings.TrimSuffix(text, "\r\n"), "\r\n")
	if len(rows) != ScreenHeight/terminalRowStep {
		t.Fatalf("Expected %d rows, got %d", ScreenHeight/terminalRowStep, len(rows))
	}
	if !strings.HasPrefix(rows[0], "\x1b[H\x1b[38;2;255;0;0m\x1b[48;2;0;0;255m▀▀") {
		t.Errorf("Unexpected first row prefix %q", rows[0][:40])
	}
	if got := strings.Count(rows[0], "▀"); got != ScreenWidth/terminalColumnStep {
		t.Errorf("Expected %d cells, got %d", ScreenWidth/terminalColumnStep, got)
	}
	if strings.Count(rows[0], "\x1b[38;") != 1 {
		t.Error("Expected the color to be set once per run")
	}
}
