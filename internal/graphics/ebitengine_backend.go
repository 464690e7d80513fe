//go:build !headless
// +build !headless

package graphics

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitengineBackend implements the Backend interface using Ebitengine
type EbitengineBackend struct {
	initialized bool
	config      Config
	game        *EbitengineGame
}

// EbitengineWindow implements the Window interface for Ebitengine
type EbitengineWindow struct {
	backend    *EbitengineBackend
	title      string
	width      int
	height     int
	game       *EbitengineGame
	running    bool
	events     []InputEvent
	updateFunc func() error
}

// EbitengineGame implements ebiten.Game around the game frame loop
type EbitengineGame struct {
	window       *EbitengineWindow
	frameImage   *ebiten.Image
	pixels       []byte
	windowWidth  int
	windowHeight int
	drawCount    int
	bindings     map[Key]Binding
	debug        bool
}

var ebitenKeys = map[ebiten.Key]Key{
	ebiten.KeyEscape:     KeyEscape,
	ebiten.KeyEnter:      KeyEnter,
	ebiten.KeySpace:      KeySpace,
	ebiten.KeyArrowUp:    KeyUp,
	ebiten.KeyArrowDown:  KeyDown,
	ebiten.KeyArrowLeft:  KeyLeft,
	ebiten.KeyArrowRight: KeyRight,
	ebiten.KeyW:          KeyW,
	ebiten.KeyA:          KeyA,
	ebiten.KeyS:          KeyS,
	ebiten.KeyD:          KeyD,
	ebiten.KeyJ:          KeyJ,
	ebiten.KeyK:          KeyK,
	ebiten.KeyX:          KeyX,
	ebiten.KeyZ:          KeyZ,
	ebiten.Key1:          Key1,
	ebiten.Key2:          Key2,
	ebiten.Key3:          Key3,
	ebiten.Key4:          Key4,
	ebiten.Key5:          Key5,
	ebiten.Key6:          Key6,
	ebiten.Key7:          Key7,
	ebiten.Key8:          Key8,
}

// NewEbitengineBackend creates a new Ebitengine graphics backend
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

// Initialize initializes the Ebitengine backend
func (b *EbitengineBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("Ebitengine backend already initialized")
	}

	b.config = config
	b.initialized = true
	return nil
}

// CreateWindow creates an Ebitengine window
func (b *EbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}
	if b.config.Headless {
		return nil, fmt.Errorf("cannot create window in headless mode")
	}

	game := &EbitengineGame{
		frameImage:   ebiten.NewImage(ScreenWidth, ScreenHeight),
		pixels:       make([]byte, ScreenWidth*ScreenHeight*4),
		windowWidth:  width,
		windowHeight: height,
		bindings:     b.config.KeyBindings(),
		debug:        b.config.Debug,
	}

	window := &EbitengineWindow{
		backend: b,
		title:   title,
		width:   width,
		height:  height,
		game:    game,
		running: true,
	}
	game.window = window
	b.game = game

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(b.config.VSync)
	if b.config.FramesPerSecond > 0 {
		ebiten.SetTPS(b.config.FramesPerSecond)
	}
	if b.config.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	ebiten.SetScreenFilterEnabled(b.config.Filter == "linear")

	return window, nil
}

// Cleanup releases all Ebitengine resources
func (b *EbitengineBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns true if running in headless mode
func (b *EbitengineBackend) IsHeadless() bool {
	return b.config.Headless
}

// GetName returns the backend name
func (b *EbitengineBackend) GetName() string {
	return "Ebitengine"
}

// SetTitle sets the window title
func (w *EbitengineWindow) SetTitle(title string) {
	w.title = title
	ebiten.SetWindowTitle(title)
}

// GetSize returns window dimensions
func (w *EbitengineWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true if window should close
func (w *EbitengineWindow) ShouldClose() bool {
	return !w.running
}

// SwapBuffers is handled by Ebitengine
func (w *EbitengineWindow) SwapBuffers() {}

// PollEvents returns and clears the queued events
func (w *EbitengineWindow) PollEvents() []InputEvent {
	events := w.events
	w.events = nil
	return events
}

// RenderFrame uploads a frame buffer to the window image
func (w *EbitengineWindow) RenderFrame(frameBuffer FrameBuffer) error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}

	RGBA(&frameBuffer, w.game.pixels)
	w.game.frameImage.WritePixels(w.game.pixels)
	return nil
}

// Cleanup releases window resources
func (w *EbitengineWindow) Cleanup() error {
	w.running = false
	return nil
}

// Run starts the Ebitengine game loop. It returns when the window closes
// or the update function returns ErrQuit.
func (w *EbitengineWindow) Run() error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}

	err := ebiten.RunGame(w.game)
	w.running = false
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// SetUpdateFunc sets the per-frame update function
func (w *EbitengineWindow) SetUpdateFunc(update func() error) {
	w.updateFunc = update
}

// Update implements ebiten.Game.Update
func (g *EbitengineGame) Update() error {
	if g.window == nil {
		return nil
	}

	g.processInput()

	if g.window.updateFunc != nil {
		if err := g.window.updateFunc(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			log.Printf("[Ebitengine] Update error: %v", err)
		}
	}
	return nil
}

// Draw implements ebiten.Game.Draw
func (g *EbitengineGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{A: 255})

	scale, offsetX, offsetY := fitScale(g.windowWidth, g.windowHeight)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(g.frameImage, op)

	g.drawCount++
	if g.debug && g.drawCount%1800 == 0 {
		log.Printf("[Ebitengine] Drawing frame %d scaled %.2fx at offset (%.1f,%.1f)",
			g.drawCount, scale, offsetX, offsetY)
	}
}

// Layout implements ebiten.Game.Layout
func (g *EbitengineGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.windowWidth = outsideWidth
	g.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}

// processInput queues key transitions as button and quit events
func (g *EbitengineGame) processInput() {
	var raw []InputEvent
	for ebitenKey, key := range ebitenKeys {
		switch {
		case inpututil.IsKeyJustPressed(ebitenKey):
			raw = append(raw, InputEvent{Type: InputEventTypeKey, Key: key, Pressed: true})
		case inpututil.IsKeyJustReleased(ebitenKey):
			raw = append(raw, InputEvent{Type: InputEventTypeKey, Key: key, Pressed: false})
		}
	}
	if len(raw) == 0 {
		return
	}

	g.window.events = append(g.window.events, TranslateKeys(raw, g.bindings)...)
}

// fitScale returns the scale and offset that fit a frame into the window
// keeping its aspect ratio.
func fitScale(windowWidth, windowHeight int) (scale, offsetX, offsetY float64) {
	scaleX := float64(windowWidth) / ScreenWidth
	scaleY := float64(windowHeight) / ScreenHeight

	scale = scaleX
	if scaleY < scaleX {
		scale = scaleY
	}
	offsetX = (float64(windowWidth) - ScreenWidth*scale) / 2
	offsetY = (float64(windowHeight) - ScreenHeight*scale) / 2
	return scale, offsetX, offsetY
}
