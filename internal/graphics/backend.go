// Package graphics provides the backends that present game frames and
// collect keyboard input: an Ebitengine window, a terminal and a headless
// frame dumper.
package graphics

import (
	"errors"
	"fmt"
	"strings"

	"ringquest/internal/input"
)

// Screen dimensions of a frame
const (
	ScreenWidth  = 256
	ScreenHeight = 240
)

// FrameBuffer is one rendered frame of 0xRRGGBB pixels
type FrameBuffer = [ScreenWidth * ScreenHeight]uint32

// ErrQuit is returned by a window update function to stop the backend loop
var ErrQuit = errors.New("quit requested")

// Backend represents a graphics rendering backend
type Backend interface {
	// Initialize initializes the graphics backend
	Initialize(config Config) error

	// CreateWindow creates a window for rendering
	CreateWindow(title string, width, height int) (Window, error)

	// Cleanup releases all resources
	Cleanup() error

	// IsHeadless returns true if the backend shows nothing
	IsHeadless() bool

	// GetName returns the backend name for identification
	GetName() string
}

// Window represents a rendering window
type Window interface {
	SetTitle(title string)
	GetSize() (width, height int)
	ShouldClose() bool

	// SwapBuffers presents the last rendered frame
	SwapBuffers()

	// PollEvents returns the input events since the last call
	PollEvents() []InputEvent

	// RenderFrame converts a frame buffer for presentation
	RenderFrame(frameBuffer FrameBuffer) error

	Cleanup() error
}

// Config contains configuration for graphics backends
type Config struct {
	// Window configuration
	WindowTitle     string
	WindowWidth     int
	WindowHeight    int
	Fullscreen      bool
	VSync           bool
	FramesPerSecond int

	// Rendering configuration
	Filter string // "nearest", "linear"

	// Headless frame dumps; an empty directory disables them
	DumpDir      string
	DumpInterval int

	// Key to controller bindings; nil means DefaultBindings
	Bindings map[Key]Binding

	Headless bool
	Debug    bool
}

// KeyBindings returns the configured bindings or the defaults
func (c Config) KeyBindings() map[Key]Binding {
	if c.Bindings == nil {
		return DefaultBindings()
	}
	return c.Bindings
}

// InputEventType represents the type of input event
type InputEventType int

// Input event types
const (
	InputEventTypeKey InputEventType = iota
	InputEventTypeButton
	InputEventTypeQuit
)

// InputEvent represents an input event from the window
type InputEvent struct {
	Type    InputEventType
	Key     Key
	Port    int
	Button  input.Button
	Pressed bool
}

// Key represents keyboard keys
type Key int

// Keys the backends report
const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyJ
	KeyK
	KeyX
	KeyZ
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
)

var keyNames = map[Key]string{
	KeyEscape: "Escape",
	KeyEnter:  "Enter",
	KeySpace:  "Space",
	KeyUp:     "Up",
	KeyDown:   "Down",
	KeyLeft:   "Left",
	KeyRight:  "Right",
	KeyW:      "W",
	KeyA:      "A",
	KeyS:      "S",
	KeyD:      "D",
	KeyJ:      "J",
	KeyK:      "K",
	KeyX:      "X",
	KeyZ:      "Z",
	Key1:      "1",
	Key2:      "2",
	Key3:      "3",
	Key4:      "4",
	Key5:      "5",
	Key6:      "6",
	Key7:      "7",
	Key8:      "8",
}

// String returns the key name
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseKey accepts a key name in any case. "Return" is an alias of Enter.
func ParseKey(name string) (Key, error) {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, "return") {
		return KeyEnter, nil
	}
	for key, keyName := range keyNames {
		if strings.EqualFold(name, keyName) {
			return key, nil
		}
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// Binding is the controller button a key drives
type Binding struct {
	Port   int
	Button input.Button
}

// DefaultBindings maps arrows or WASD to the pad, J/Z to A, K/X to B, Enter
// to Start and Space to Select on controller 1. The number row drives
// controller 2.
func DefaultBindings() map[Key]Binding {
	return map[Key]Binding{
		KeyUp:    {0, input.ButtonUp},
		KeyDown:  {0, input.ButtonDown},
		KeyLeft:  {0, input.ButtonLeft},
		KeyRight: {0, input.ButtonRight},
		KeyW:     {0, input.ButtonUp},
		KeyS:     {0, input.ButtonDown},
		KeyA:     {0, input.ButtonLeft},
		KeyD:     {0, input.ButtonRight},
		KeyJ:     {0, input.ButtonA},
		KeyZ:     {0, input.ButtonA},
		KeyK:     {0, input.ButtonB},
		KeyX:     {0, input.ButtonB},
		KeyEnter: {0, input.ButtonStart},
		KeySpace: {0, input.ButtonSelect},

		Key1: {1, input.ButtonUp},
		Key2: {1, input.ButtonDown},
		Key3: {1, input.ButtonLeft},
		Key4: {1, input.ButtonRight},
		Key5: {1, input.ButtonA},
		Key6: {1, input.ButtonB},
		Key7: {1, input.ButtonStart},
		Key8: {1, input.ButtonSelect},
	}
}

// TranslateKeys turns key events into button events using bindings. Escape
// becomes a quit event and unbound keys pass through unchanged.
func TranslateKeys(events []InputEvent, bindings map[Key]Binding) []InputEvent {
	translated := make([]InputEvent, 0, len(events))
	for _, event := range events {
		if event.Type != InputEventTypeKey {
			translated = append(translated, event)
			continue
		}
		if event.Key == KeyEscape {
			if event.Pressed {
				translated = append(translated, InputEvent{Type: InputEventTypeQuit, Pressed: true})
			}
			continue
		}
		if binding, ok := bindings[event.Key]; ok {
			translated = append(translated, InputEvent{
				Type:    InputEventTypeButton,
				Key:     event.Key,
				Port:    binding.Port,
				Button:  binding.Button,
				Pressed: event.Pressed,
			})
			continue
		}
		translated = append(translated, event)
	}
	return translated
}

// RGBA converts a frame into 8-bit RGBA pixel data with opaque alpha
func RGBA(frame *FrameBuffer, pix []byte) {
	for i, pixel := range frame {
		o := i * 4
		pix[o] = uint8(pixel >> 16)
		pix[o+1] = uint8(pixel >> 8)
		pix[o+2] = uint8(pixel)
		pix[o+3] = 0xFF
	}
}

// BackendType represents different graphics backend types
type BackendType string

// Backend types
const (
	BackendEbitengine BackendType = "ebitengine"
	BackendHeadless   BackendType = "headless"
	BackendTerminal   BackendType = "terminal"
)

// ParseBackendType accepts a backend name in any case
func ParseBackendType(name string) (BackendType, error) {
	switch t := BackendType(strings.ToLower(strings.TrimSpace(name))); t {
	case BackendEbitengine, BackendHeadless, BackendTerminal:
		return t, nil
	case "":
		return BackendEbitengine, nil
	default:
		return "", fmt.Errorf("unknown graphics backend %q", name)
	}
}

// CreateBackend creates a graphics backend of the specified type
func CreateBackend(backendType BackendType) (Backend, error) {
	switch backendType {
	case BackendEbitengine:
		return NewEbitengineBackend(), nil
	case BackendHeadless:
		return NewHeadlessBackend(), nil
	case BackendTerminal:
		return NewTerminalBackend(), nil
	default:
		return nil, fmt.Errorf("unknown graphics backend %q", backendType)
	}
}

// Runner is a window that owns the frame loop, like Ebitengine's. The
// update function is called once per frame.
type Runner interface {
	Window
	SetUpdateFunc(update func() error)
	Run() error
}

// AsRunner reports whether a window drives its own loop
func AsRunner(window Window) (Runner, bool) {
	runner, ok := window.(Runner)
	return runner, ok
}
