// Package main implements the ringquest executable.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ringquest/internal/app"
	"ringquest/internal/statsview"
	"ringquest/internal/version"
)

func main() {
	var (
		configFile   = flag.String("config", "", "Path to configuration file")
		nogui        = flag.Bool("nogui", false, "Run without a window (headless backend)")
		frames       = flag.Uint64("frames", 0, "Stop after this many frames (0 runs until quit)")
		script       = flag.String("script", "", "Scripted controller 1 input, \"frame:buttons ...\" or @file")
		wavFile      = flag.String("wav", "", "Record audio to a WAV file instead of playing it")
		dumpDir      = flag.String("dump", "", "Directory for headless PPM frame dumps")
		dumpInterval = flag.Int("dump-every", 60, "Frames between headless frame dumps")
		reportFile   = flag.String("report", "", "Write a JSON session report on exit")
		backend      = flag.String("backend", "", "Graphics backend: ebitengine, terminal or headless")
		region       = flag.String("region", "", "Display region: NTSC or PAL")
		debug        = flag.Bool("debug", false, "Enable debug logging")
		stats        = flag.String("statsview", "", "Serve runtime charts on this address (statsview builds)")
		help         = flag.Bool("help", false, "Show help message")
		showVersion  = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	if *showVersion {
		version.PrintBuildInfo(os.Stdout)
		os.Exit(0)
	}

	configPath := *configFile
	if configPath == "" {
		configPath = app.GetDefaultConfigPath()
	}

	config := app.NewConfig()
	if err := config.LoadFromFile(configPath); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if config.IsLoaded() {
		fmt.Printf("Loaded configuration from %s\n", config.GetConfigPath())
	} else {
		fmt.Printf("Created default configuration at %s\n", config.GetConfigPath())
	}

	// Flags win over the file and the environment
	if *backend != "" {
		config.Video.Backend = *backend
	}
	if *region != "" {
		config.Game.Region = *region
	}
	if *debug {
		config.UpdateDebug(true, true)
	}
	if *stats != "" {
		config.Debug.StatsviewAddr = *stats
	}

	scriptText, err := loadScript(*script)
	if err != nil {
		log.Fatalf("Failed to read script: %v", err)
	}

	options := app.Options{
		Headless:     *nogui,
		Frames:       *frames,
		Script:       scriptText,
		WAVPath:      *wavFile,
		DumpDir:      *dumpDir,
		DumpInterval: *dumpInterval,
		ReportPath:   *reportFile,
	}

	if *nogui && *frames == 0 {
		fmt.Println("Headless mode without -frames runs until interrupted")
	}

	if config.Debug.StatsviewAddr != "" && !statsview.Available() {
		log.Printf("[APP] statsview requested but this binary was built without the statsview tag")
	} else if config.Debug.StatsviewAddr != "" {
		if err := statsview.Launch(os.Stdout, config.Debug.StatsviewAddr); err != nil {
			log.Printf("[APP] %v", err)
		}
	}

	fmt.Println(version.GetDetailedVersion())

	application, err := app.NewApplication(config, options)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	width, height := config.GetWindowResolution()
	fmt.Printf("Region: %s | Window: %dx%d | Audio: %s\n",
		application.Region(), width, height, enabledString(config.Audio.Enabled))

	runErr := application.Run(ctx)

	if err := application.Cleanup(); err != nil {
		log.Printf("Application cleanup error: %v", err)
	}

	if runErr != nil {
		var appErr *app.ApplicationError
		if errors.As(runErr, &appErr) {
			log.Fatalf("%s failed: %v", appErr.Component, appErr.Err)
		}
		log.Fatalf("Run failed: %v", runErr)
	}

	fmt.Printf("Session: %d frames in state %s, %.1f FPS over %s\n",
		application.GetFrameCount(), application.Game().State(), application.GetFPS(),
		application.GetUptime().Round(time.Second))
}

// loadScript returns the script text; "@path" reads it from a file
func loadScript(value string) (string, error) {
	if !strings.HasPrefix(value, "@") {
		return value, nil
	}
	data, err := os.ReadFile(strings.TrimPrefix(value, "@"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// enabledString returns "enabled" or "disabled" based on boolean value
func enabledString(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func printUsage() {
	fmt.Println("ringquest - carry the ring to the bride")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  ringquest [options]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  ringquest                                   # Play in a window")
	fmt.Println("  ringquest -backend terminal                 # Play in the terminal")
	fmt.Println("  ringquest -region PAL                       # 50 Hz timing and PAL bounds")
	fmt.Println("  ringquest -nogui -frames 600 -dump frames   # Dump a frame every second")
	fmt.Println("  ringquest -nogui -frames 300 -script @play.txt -report out.json")
	fmt.Println()
	fmt.Println("CONTROLS (Default):")
	fmt.Println("  Arrow Keys - Move")
	fmt.Println("  Z          - Pick up / give the ring")
	fmt.Println("  Enter      - Start")
	fmt.Println("  Escape     - Quit")
	fmt.Println()
	fmt.Println("CONFIGURATION:")
	fmt.Printf("  Config file: %s\n", app.GetDefaultConfigPath())
	fmt.Printf("  Environment: %s<SECTION>_<FIELD>, e.g. %sGAME_REGION=PAL\n", app.EnvPrefix, app.EnvPrefix)
}
