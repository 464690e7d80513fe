package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"ringquest/internal/apu"
	"ringquest/internal/assets"
	"ringquest/internal/audio"
	"ringquest/internal/clock"
	"ringquest/internal/game"
	"ringquest/internal/graphics"
	"ringquest/internal/input"
	"ringquest/internal/ppu"
	"ringquest/internal/rle"
)

// WindowTitle is the title of the game window
const WindowTitle = "Ring Quest"

// Options selects how a session runs. Options come from the command line
// and are not saved in the configuration file.
type Options struct {
	Headless     bool   // force the headless backend
	Frames       uint64 // stop after this many frames; 0 runs until quit
	Script       string // scripted controller 1 input, "frame:buttons ..."
	WAVPath      string // record audio to this file instead of playing it
	DumpDir      string // headless frame dumps
	DumpInterval int
	ReportPath   string // session report written on exit
}

// Application represents the game application
type Application struct {
	config  *Config
	options Options
	region  game.Region
	layout  game.Layout

	// Graphics backend
	graphicsBackend graphics.Backend
	window          graphics.Window
	videoProcessor  *graphics.VideoProcessor
	frame           graphics.FrameBuffer

	// Hardware the game drives
	ports       *input.InputState
	sampler     *input.Sampler
	script      *input.Script
	display     *ppu.PPU
	backgrounds *rle.Loader
	apu         *apu.APU
	audio       *audio.Engine
	clock       game.FrameClock
	paced       *clock.Paced

	game *game.Game

	// Control flags
	running     bool
	initialized bool

	stats *FrameStats
}

// ApplicationError represents application-specific errors
type ApplicationError struct {
	Component string
	Operation string
	Err       error
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("Application %s error during %s: %v", e.Component, e.Operation, e.Err)
}

func (e *ApplicationError) Unwrap() error {
	return e.Err
}

// NewApplication creates the application from a loaded configuration
func NewApplication(config *Config, options Options) (*Application, error) {
	if config == nil {
		config = NewConfig()
	}

	region, err := config.Region()
	if err != nil {
		return nil, &ApplicationError{Component: "config", Operation: "region", Err: err}
	}

	app := &Application{
		config:  config,
		options: options,
		region:  region,
		layout:  game.LayoutFor(region),
		stats:   NewFrameStats(region.FramesPerSecond()),
	}

	if options.Script != "" {
		script, err := input.ParseScript(options.Script)
		if err != nil {
			return nil, &ApplicationError{Component: "input", Operation: "parse script", Err: err}
		}
		app.script = script
		if options.Frames > 0 && script.LastFrame() >= options.Frames {
			log.Printf("[INPUT] script runs to frame %d but the session stops after %d frames",
				script.LastFrame(), options.Frames)
		}
	}

	if err := app.initializeComponents(); err != nil {
		_ = app.Cleanup()
		return nil, &ApplicationError{
			Component: "initialization",
			Operation: "component setup",
			Err:       err,
		}
	}

	app.initialized = true
	app.ApplyDebugSettings()
	return app, nil
}

// initializeComponents initializes all application components
func (app *Application) initializeComponents() error {
	if err := app.initializeGraphicsBackend(); err != nil {
		return fmt.Errorf("failed to initialize graphics backend: %w", err)
	}

	// Hosts that pace frames themselves, and headless runs with a frame
	// budget, step a manual clock. Everything else waits on the region rate.
	_, hostPaced := graphics.AsRunner(app.window)
	if hostPaced || (app.graphicsBackend.IsHeadless() && app.options.Frames > 0) {
		app.clock = clock.NewManual()
	} else {
		app.paced = clock.NewPaced(app.region.FramesPerSecond())
		app.clock = app.paced
	}

	app.ports = input.NewInputState()
	app.sampler = input.NewSampler(app.ports)

	app.display = ppu.New(ppu.MirrorHorizontal)
	app.display.LoadPatterns(assets.CHR())
	app.backgrounds = rle.NewLoader(app.display)

	if err := app.initializeAudio(); err != nil {
		return fmt.Errorf("failed to initialize audio: %w", err)
	}

	g, err := game.New(game.Hardware{
		Clock:       app.clock,
		Input:       app.sampler,
		Display:     app.display,
		Backgrounds: app.backgrounds,
		Audio:       app.audio,
	}, app.layout)
	if err != nil {
		return err
	}
	app.game = g

	return nil
}

// initializeGraphicsBackend initializes the graphics backend based on configuration
func (app *Application) initializeGraphicsBackend() error {
	backendType, err := app.config.BackendType()
	if err != nil {
		return err
	}
	if app.options.Headless {
		backendType = graphics.BackendHeadless
	}

	bindings, err := app.config.Bindings()
	if err != nil {
		return err
	}

	width, height := app.config.GetWindowResolution()
	graphicsConfig := graphics.Config{
		WindowTitle:     WindowTitle,
		WindowWidth:     width,
		WindowHeight:    height,
		Fullscreen:      app.config.Window.Fullscreen,
		VSync:           app.config.Video.VSync,
		FramesPerSecond: app.region.FramesPerSecond(),
		Filter:          app.config.Video.Filter,
		DumpDir:         app.options.DumpDir,
		DumpInterval:    app.options.DumpInterval,
		Bindings:        bindings,
		Headless:        backendType == graphics.BackendHeadless,
		Debug:           app.config.Debug.EnableLogging,
	}

	app.graphicsBackend, err = graphics.CreateBackend(backendType)
	if err != nil {
		return err
	}

	if err := app.graphicsBackend.Initialize(graphicsConfig); err != nil {
		if backendType != graphics.BackendEbitengine {
			return err
		}
		// No display or a headless build: keep running without a window
		log.Printf("[APP] Ebitengine backend failed (%v), falling back to headless mode", err)
		app.graphicsBackend = graphics.NewHeadlessBackend()
		graphicsConfig.Headless = true
		if err := app.graphicsBackend.Initialize(graphicsConfig); err != nil {
			return fmt.Errorf("failed to initialize fallback headless backend: %w", err)
		}
	}

	app.window, err = app.graphicsBackend.CreateWindow(WindowTitle, width, height)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	app.videoProcessor = graphics.NewVideoProcessor(
		app.config.Video.Brightness,
		app.config.Video.Contrast,
		app.config.Video.Saturation,
	)

	return nil
}

// initializeAudio creates the APU and an engine feeding the selected sink
func (app *Application) initializeAudio() error {
	app.apu = apu.New()
	app.apu.SetSampleRate(app.config.Audio.SampleRate)

	sink, err := app.createAudioSink()
	if err != nil {
		return err
	}

	app.audio = audio.NewEngine(app.apu, sink, assets.Music(), app.region.FramesPerSecond())
	app.audio.SetVolume(float32(app.config.Audio.Volume))
	return nil
}

func (app *Application) createAudioSink() (audio.Sink, error) {
	sampleRate := app.config.Audio.SampleRate

	if app.options.WAVPath != "" {
		path := app.recordingPath(app.options.WAVPath)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create recording directory: %w", err)
		}
		log.Printf("[AUDIO] Recording to %s", path)
		return audio.NewWAVRecorder(path, sampleRate), nil
	}

	if !app.config.Audio.Enabled || app.graphicsBackend.IsHeadless() {
		return audio.Discard{}, nil
	}

	player, err := audio.NewPlayer(sampleRate, 1.0)
	if err != nil {
		log.Printf("[AUDIO] Output unavailable, continuing without sound: %v", err)
		return audio.Discard{}, nil
	}
	return player, nil
}

// recordingPath places bare file names in the recordings directory
func (app *Application) recordingPath(name string) string {
	if filepath.IsAbs(name) || filepath.Dir(name) != "." || app.config.Paths.Recordings == "" {
		return name
	}
	return filepath.Join(app.config.Paths.Recordings, name)
}

// Run runs frames until the window closes, the frame budget is spent or
// ctx is done. Backends that own the loop drive the frames themselves.
func (app *Application) Run(ctx context.Context) error {
	if !app.initialized {
		return errors.New("application not initialized")
	}

	app.running = true
	defer func() { app.running = false }()

	if app.config.Debug.EnableLogging {
		log.Printf("[APP] Starting %s (%s) with %s backend", WindowTitle, app.region, app.graphicsBackend.GetName())
	}

	if runner, ok := graphics.AsRunner(app.window); ok {
		runner.SetUpdateFunc(func() error {
			if !app.running {
				return graphics.ErrQuit
			}
			if err := app.step(ctx); err != nil {
				if isStop(err) {
					return graphics.ErrQuit
				}
				return err
			}
			return nil
		})
		return app.finish(runner.Run())
	}

	for app.running {
		if err := app.step(ctx); err != nil {
			return app.finish(err)
		}
	}
	return app.finish(nil)
}

// step runs one frame: input, game logic, rendering and presentation
func (app *Application) step(ctx context.Context) error {
	frameStart := time.Now()

	if err := app.processInput(); err != nil {
		return err
	}

	if err := app.game.Frame(ctx); err != nil {
		return err
	}

	if err := app.render(); err != nil {
		return err
	}

	if app.stats.Record(frameStart, time.Since(frameStart)) && app.config.Debug.ShowFPS {
		app.stats.Log()
	}

	if app.options.Frames > 0 && app.game.Frames() >= app.options.Frames {
		return graphics.ErrQuit
	}
	if app.window.ShouldClose() {
		return graphics.ErrQuit
	}
	return nil
}

// processInput applies window events to the controllers. A script, when
// set, owns controller 1.
func (app *Application) processInput() error {
	for _, event := range app.window.PollEvents() {
		switch event.Type {
		case graphics.InputEventTypeQuit:
			return graphics.ErrQuit
		case graphics.InputEventTypeButton:
			app.ports.Controller(event.Port).SetButton(event.Button, event.Pressed)
		}
	}

	if app.script != nil {
		app.script.Apply(app.game.Frames(), app.ports)
	}
	return nil
}

// render renders the display and presents it
func (app *Application) render() error {
	app.display.Render()
	app.frame = app.display.GetFrameBuffer()

	if !app.videoProcessor.Identity() {
		app.videoProcessor.ProcessFrame(&app.frame)
	}

	if err := app.window.RenderFrame(app.frame); err != nil {
		return fmt.Errorf("failed to render frame: %w", err)
	}
	app.window.SwapBuffers()
	return nil
}

// finish turns a loop exit into Run's result and writes the report
func (app *Application) finish(err error) error {
	if err != nil && !isStop(err) {
		return &ApplicationError{Component: "game", Operation: "run", Err: err}
	}

	if app.config.Debug.EnableLogging {
		log.Printf("[APP] Stopped after %d frames in state %s", app.game.Frames(), app.game.State())
	}

	if app.options.ReportPath != "" {
		if err := SaveReport(app.Report(), app.options.ReportPath); err != nil {
			return &ApplicationError{Component: "report", Operation: "save", Err: err}
		}
	}
	return nil
}

// isStop reports whether err ends the loop normally
func isStop(err error) bool {
	return errors.Is(err, graphics.ErrQuit) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Stop ends the loop after the current frame
func (app *Application) Stop() {
	app.running = false
}

// IsRunning returns whether the loop is running
func (app *Application) IsRunning() bool {
	return app.running
}

// Game returns the game being run
func (app *Application) Game() *game.Game {
	return app.game
}

// Window returns the presentation window
func (app *Application) Window() graphics.Window {
	return app.window
}

// Region returns the display region
func (app *Application) Region() game.Region {
	return app.region
}

// GetFPS returns the current FPS
func (app *Application) GetFPS() float64 {
	return app.stats.FPS()
}

// GetFrameCount returns the number of frames the game has run
func (app *Application) GetFrameCount() uint64 {
	if app.game == nil {
		return 0
	}
	return app.game.Frames()
}

// GetUptime returns the time since the first frame
func (app *Application) GetUptime() time.Duration {
	return app.stats.Uptime()
}

// GetConfig returns the application configuration
func (app *Application) GetConfig() *Config {
	return app.config
}

// ApplyDebugSettings applies debug settings to all components
func (app *Application) ApplyDebugSettings() {
	enabled := app.config.Debug.EnableLogging

	if app.display != nil {
		app.display.EnableDebug(enabled)
	}
	if app.backgrounds != nil {
		app.backgrounds.EnableDebug(enabled)
	}
	if app.ports != nil {
		app.ports.EnableDebug(enabled)
		app.sampler.EnableDebug(enabled)
	}
	if app.audio != nil {
		app.audio.EnableDebug(enabled)
	}
	if app.game != nil {
		app.game.EnableDebug(enabled)
	}

	if enabled {
		log.Printf("[APP] Debug logging enabled")
	}
}

// Cleanup releases all resources and shuts down the application. The
// audio sink is closed first so a WAV recording is complete on disk.
func (app *Application) Cleanup() error {
	if app.config.Debug.EnableLogging {
		log.Printf("[APP] Cleaning up application resources...")
	}

	var lastErr error

	if app.audio != nil {
		if err := app.audio.Close(); err != nil {
			lastErr = err
			log.Printf("[APP] Audio cleanup error: %v", err)
		}
		app.audio = nil
	}

	if app.paced != nil {
		app.paced.Stop()
	}

	if app.window != nil {
		if err := app.window.Cleanup(); err != nil {
			lastErr = err
			log.Printf("[APP] Window cleanup error: %v", err)
		}
		app.window = nil
	}

	if app.graphicsBackend != nil {
		if err := app.graphicsBackend.Cleanup(); err != nil {
			lastErr = err
			log.Printf("[APP] Graphics backend cleanup error: %v", err)
		}
		app.graphicsBackend = nil
	}

	app.initialized = false
	return lastErr
}
