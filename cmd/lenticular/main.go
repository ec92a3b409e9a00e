// lenticular - stereo preview for spatial displays
// Renders what each eye of a tracked viewer sees through a spatial display,
// side by side in the terminal or to image files.
//
// Controls:
//
//	Right drag  - Move the head around the display
//	Scroll      - Move the head closer or further
//	L           - Toggle lens shift (off uses homography correction)
//	P           - Toggle performance priority (half resolution eyes)
//	C           - Toggle box front clip
//	R           - Reset head pose
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/taigrr/lenticular/pkg/config"
)

var (
	configPath = flag.String("config", "", "Path to a JSON config file")
	modelPath  = flag.String("model", "", "Path to a .glb model (default: a cube)")
	targetFPS  = flag.Int("fps", 0, "Target FPS (overrides config)")
	frames     = flag.Int("frames", 120, "Frames to run in headless mode")
	snapshot   = flag.String("snapshot", "", "Write the last frame to this .png, .webp or .tga file")
	headless   = flag.Bool("headless", false, "Run against a simulated tracking runtime without a terminal")
	displays   = flag.Int("displays", 1, "Simulated displays in headless mode")
	eyeWidth   = flag.Int("eye-width", 480, "Eye image width in headless mode")
	lensShift  = flag.Bool("lens-shift", true, "Build off-axis frustums per eye (overrides config)")
	wallMount  = flag.Bool("wallmount", false, "Display is wall mounted (overrides config)")
	logPath    = flag.String("log", "", "Write logs to this file (default: stderr in headless mode, discarded otherwise)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "lenticular - stereo preview for spatial displays\n\n")
		fmt.Fprintf(os.Stderr, "Usage: lenticular [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Right drag  - Move head\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Move closer/further\n")
		fmt.Fprintf(os.Stderr, "  L           - Toggle lens shift\n")
		fmt.Fprintf(os.Stderr, "  P           - Toggle performance priority\n")
		fmt.Fprintf(os.Stderr, "  C           - Toggle box front clip\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset head\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	closeLog, err := setupLog()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *headless {
		return runHeadless(ctx, cfg)
	}
	return runPreview(ctx, cfg)
}

// loadConfig reads the config file, if any, and applies the flags that were
// given on the command line.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return config.Config{}, err
		}
	}

	flags := config.Flags{FPS: *targetFPS}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lens-shift":
			flags.LensShift = lensShift
		case "wallmount":
			flags.WallMount = wallMount
		}
	})
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func setupLog() (func(), error) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	switch {
	case *logPath != "":
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		log.SetOutput(f)
		return func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "close log: %v\n", err)
			}
		}, nil
	case *headless:
		log.SetOutput(os.Stderr)
	default:
		// Log lines would tear the terminal preview.
		log.SetOutput(io.Discard)
	}
	return func() {}, nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
