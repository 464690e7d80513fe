package graphics

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"
)

// Terminal output samples every other column and every other line pair
const (
	terminalColumnStep = 2
	terminalRowStep    = 4
	terminalHoldFrames = 8

	terminalEscapeDelay = 50 * time.Millisecond
)

// TerminalBackend implements the Backend interface with ANSI half-block
// output and raw keyboard input
type TerminalBackend struct {
	initialized bool
	config      Config
}

// TerminalWindow draws frames as colored half blocks. A terminal reports
// no key releases, so a key counts as held for a few frames after each
// byte arrives.
type TerminalWindow struct {
	title   string
	width   int
	height  int
	running bool

	out      io.Writer
	frame    bytes.Buffer
	keys     chan Key
	held     map[Key]int
	bindings map[Key]Binding
	restore  func() error
	debug    bool

	escapeDelay time.Duration
}

// NewTerminalBackend creates a new terminal graphics backend
func NewTerminalBackend() Backend {
	return &TerminalBackend{}
}

// Initialize initializes the terminal backend
func (b *TerminalBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("terminal backend already initialized")
	}

	b.config = config
	b.initialized = true
	return nil
}

// CreateWindow puts stdin into raw mode and starts reading keys
func (b *TerminalBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}

	w := newTerminalWindow(os.Stdout, b.config.Debug)
	w.bindings = b.config.KeyBindings()
	w.title = title
	w.width = width
	w.height = height

	restore, err := makeRaw(os.Stdin)
	if err != nil {
		log.Printf("[TERMINAL] Keyboard unavailable: %v", err)
	} else {
		w.restore = restore
		go w.readKeys(os.Stdin)
	}

	fmt.Fprint(w.out, "\x1b[2J\x1b[?25l")
	w.SetTitle(title)
	return w, nil
}

func newTerminalWindow(out io.Writer, debug bool) *TerminalWindow {
	return &TerminalWindow{
		running:  true,
		out:      out,
		keys:     make(chan Key, 64),
		held:     make(map[Key]int),
		bindings: DefaultBindings(),
		debug:    debug,

		escapeDelay: terminalEscapeDelay,
	}
}

// Cleanup releases all terminal resources
func (b *TerminalBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns false (terminal has basic output)
func (b *TerminalBackend) IsHeadless() bool {
	return false
}

// GetName returns the backend name
func (b *TerminalBackend) GetName() string {
	return "Terminal"
}

// SetTitle sets the terminal title
func (w *TerminalWindow) SetTitle(title string) {
	w.title = title
	fmt.Fprintf(w.out, "\x1b]0;%s\x07", title)
}

// GetSize returns window dimensions
func (w *TerminalWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true if window should close
func (w *TerminalWindow) ShouldClose() bool {
	return !w.running
}

// readKeys decodes raw input until the reader fails. A lone Escape is only
// reported once escapeDelay passes without the rest of a sequence.
func (w *TerminalWindow) readKeys(in io.Reader) {
	chunks := make(chan []byte)
	go func() {
		defer close(chunks)
		buf := make([]byte, 32)
		for {
			n, err := in.Read(buf)
			if n > 0 {
				chunks <- append([]byte(nil), buf[:n]...)
			}
			if err != nil {
				if w.debug {
					log.Printf("[TERMINAL] Key reader stopped: %v", err)
				}
				return
			}
		}
	}()

	var (
		decoder keyDecoder
		timeout <-chan time.Time
	)
	for {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				w.sendKeys(decoder.flush())
				return
			}
			w.sendKeys(decoder.decode(chunk))
			timeout = nil
			if decoder.waiting() {
				timeout = time.After(w.escapeDelay)
			}
		case <-timeout:
			w.sendKeys(decoder.flush())
			timeout = nil
		}
	}
}

func (w *TerminalWindow) sendKeys(keys []Key) {
	for _, key := range keys {
		select {
		case w.keys <- key:
		default:
		}
	}
}

var arrowKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
}

// keyDecoder maps raw terminal bytes to keys. Arrow keys arrive as
// ESC [ A..D; q and Ctrl-C quit like Escape. An escape sequence cut off at
// the end of a read is held until the next read completes it.
type keyDecoder struct {
	pending []byte
}

func (d *keyDecoder) decode(data []byte) []Key {
	if len(d.pending) > 0 {
		data = append(d.pending, data...)
		d.pending = nil
	}

	var keys []Key
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c != 0x1B {
			if key, ok := decodeByte(c); ok {
				keys = append(keys, key)
			}
			continue
		}

		rest := len(data) - i - 1
		if rest == 0 || (rest == 1 && data[i+1] == '[') {
			d.pending = append([]byte(nil), data[i:]...)
			break
		}
		if data[i+1] == '[' {
			if key, ok := arrowKeys[data[i+2]]; ok {
				keys = append(keys, key)
			}
			i += 2
			continue
		}
		keys = append(keys, KeyEscape)
	}
	return keys
}

// waiting reports whether an incomplete sequence is held
func (d *keyDecoder) waiting() bool {
	return len(d.pending) > 0
}

// flush gives up on a held sequence: a bare ESC was the Escape key, an
// unfinished ESC [ is dropped.
func (d *keyDecoder) flush() []Key {
	held := d.pending
	d.pending = nil
	if len(held) == 1 {
		return []Key{KeyEscape}
	}
	return nil
}

func decodeByte(c byte) (Key, bool) {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	switch c {
	case '\r', '\n':
		return KeyEnter, true
	case ' ':
		return KeySpace, true
	case 'q', 0x03:
		return KeyEscape, true
	case 'w':
		return KeyW, true
	case 'a':
		return KeyA, true
	case 's':
		return KeyS, true
	case 'd':
		return KeyD, true
	case 'j':
		return KeyJ, true
	case 'k':
		return KeyK, true
	case 'x':
		return KeyX, true
	case 'z':
		return KeyZ, true
	case '1', '2', '3', '4', '5', '6', '7', '8':
		return Key1 + Key(c-'1'), true
	}
	return 0, false
}

// PollEvents releases keys whose hold expired and presses newly read ones
func (w *TerminalWindow) PollEvents() []InputEvent {
	var raw []InputEvent
	for key, frames := range w.held {
		if frames <= 1 {
			delete(w.held, key)
			raw = append(raw, InputEvent{Type: InputEventTypeKey, Key: key, Pressed: false})
			continue
		}
		w.held[key] = frames - 1
	}

	for {
		select {
		case key := <-w.keys:
			if _, ok := w.held[key]; !ok {
				raw = append(raw, InputEvent{Type: InputEventTypeKey, Key: key, Pressed: true})
			}
			w.held[key] = terminalHoldFrames
		default:
			return TranslateKeys(raw, w.bindings)
		}
	}
}

// RenderFrame draws the frame with upper half blocks: the foreground is
// the top pixel, the background the one below.
func (w *TerminalWindow) RenderFrame(frameBuffer FrameBuffer) error {
	w.frame.Reset()
	w.frame.WriteString("\x1b[H")

	for y := 0; y+terminalRowStep/2 < ScreenHeight; y += terminalRowStep {
		fg, bg := uint32(1<<24), uint32(1<<24)
		for x := 0; x < ScreenWidth; x += terminalColumnStep {
			top := frameBuffer[y*ScreenWidth+x]
			bottom := frameBuffer[(y+terminalRowStep/2)*ScreenWidth+x]
			if top != fg {
				writeColor(&w.frame, 38, top)
				fg = top
			}
			if bottom != bg {
				writeColor(&w.frame, 48, bottom)
				bg = bottom
			}
			w.frame.WriteString("▀")
		}
		w.frame.WriteString("\x1b[0m\r\n")
	}
	return nil
}

func writeColor(buf *bytes.Buffer, layer int, pixel uint32) {
	buf.WriteString("\x1b[")
	buf.WriteString(strconv.Itoa(layer))
	buf.WriteString(";2;")
	buf.WriteString(strconv.Itoa(int(pixel>>16) & 0xFF))
	buf.WriteByte(';')
	buf.WriteString(strconv.Itoa(int(pixel>>8) & 0xFF))
	buf.WriteByte(';')
	buf.WriteString(strconv.Itoa(int(pixel) & 0xFF))
	buf.WriteByte('m')
}

// SwapBuffers writes the last rendered frame to the terminal
func (w *TerminalWindow) SwapBuffers() {
	if w.frame.Len() == 0 {
		return
	}
	if _, err := w.out.Write(w.frame.Bytes()); err != nil && w.debug {
		log.Printf("[TERMINAL] Write failed: %v", err)
	}
}

// Cleanup restores the terminal mode and cursor
func (w *TerminalWindow) Cleanup() error {
	w.running = false
	fmt.Fprint(w.out, "\x1b[0m\x1b[?25h\r\n")
	if w.restore != nil {
		return w.restore()
	}
	return nil
}
