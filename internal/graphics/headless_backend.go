package graphics

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// HeadlessBackend implements the Backend interface for headless operation
type HeadlessBackend struct {
	initialized bool
	config      Config
}

// HeadlessWindow keeps the last frame and optionally dumps frames to disk
// as binary PPM images.
type HeadlessWindow struct {
	title        string
	width        int
	height       int
	running      bool
	frameCount   int
	outputDir    string
	dumpInterval int
	dumped       []string
	last         FrameBuffer
}

// NewHeadlessBackend creates a new headless graphics backend
func NewHeadlessBackend() Backend {
	return &HeadlessBackend{}
}

// Initialize initializes the headless backend
func (b *HeadlessBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("headless backend already initialized")
	}

	b.config = config
	b.initialized = true
	return nil
}

// CreateWindow creates a headless "window". Frames are dumped every
// DumpInterval frames when DumpDir is set.
func (b *HeadlessBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}

	if b.config.DumpDir != "" {
		if err := os.MkdirAll(b.config.DumpDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create dump directory: %w", err)
		}
	}

	interval := b.config.DumpInterval
	if interval <= 0 {
		interval = 60
	}

	return &HeadlessWindow{
		title:        title,
		width:        width,
		height:       height,
		running:      true,
		outputDir:    b.config.DumpDir,
		dumpInterval: interval,
	}, nil
}

// Cleanup releases all headless resources
func (b *HeadlessBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns true (this is a headless backend)
func (b *HeadlessBackend) IsHeadless() bool {
	return true
}

// GetName returns the backend name
func (b *HeadlessBackend) GetName() string {
	return "Headless"
}

// SetTitle sets the window title
func (w *HeadlessWindow) SetTitle(title string) {
	w.title = title
}

// GetSize returns window dimensions
func (w *HeadlessWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true if window should close
func (w *HeadlessWindow) ShouldClose() bool {
	return !w.running
}

// SwapBuffers does nothing in headless mode
func (w *HeadlessWindow) SwapBuffers() {}

// PollEvents returns no events
func (w *HeadlessWindow) PollEvents() []InputEvent {
	return nil
}

// RenderFrame keeps the frame and dumps it when the interval is due
func (w *HeadlessWindow) RenderFrame(frameBuffer FrameBuffer) error {
	w.frameCount++
	w.last = frameBuffer

	if w.outputDir == "" || w.frameCount%w.dumpInterval != 0 {
		return nil
	}

	filename := filepath.Join(w.outputDir, fmt.Sprintf("frame_%05d.ppm", w.frameCount))
	if err := SavePPM(&frameBuffer, filename); err != nil {
		return err
	}
	w.dumped = append(w.dumped, filename)
	return nil
}

// SavePPM writes a frame as a binary PPM image
func SavePPM(frame *FrameBuffer, filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filename, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	out := bufio.NewWriter(file)
	fmt.Fprintf(out, "P6\n%d %d\n255\n", ScreenWidth, ScreenHeight)
	for _, pixel := range frame {
		out.Write([]byte{uint8(pixel >> 16), uint8(pixel >> 8), uint8(pixel)})
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// Cleanup releases window resources
func (w *HeadlessWindow) Cleanup() error {
	w.running = false
	return nil
}

// GetFrameCount returns the number of frames rendered
func (w *HeadlessWindow) GetFrameCount() int {
	return w.frameCount
}

// LastFrame returns the most recent frame
func (w *HeadlessWindow) LastFrame() FrameBuffer {
	return w.last
}

// Dumped returns the files written so far
func (w *HeadlessWindow) Dumped() []string {
	return w.dumped
}
