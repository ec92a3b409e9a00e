// Package config holds the runtime settings of a lenticular session.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/projection"
	"github.com/taigrr/lenticular/pkg/session"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config holds camera, display and preview settings.
type Config struct {
	// Camera clip planes in meters.
	Near float64 `json:"near"`
	Far  float64 `json:"far"`

	// LensShift builds off-axis frustums per eye. When off, eyes use the
	// runtime's projection and images are corrected by homography.
	LensShift bool `json:"lens_shift"`
	// BoxFrontClip moves the near plane to the front of the display body.
	BoxFrontClip bool `json:"box_front_clip"`
	// PerformancePriority renders eyes at half resolution and skips the
	// low-pass filter.
	PerformancePriority bool `json:"performance_priority"`

	WallMount   bool    `json:"wall_mount"`
	TiltDegrees float64 `json:"tilt_degrees"`
	MultiMode   bool    `json:"multi_display"`

	// ViewSpaceScale scales the display's presence in the scene.
	ViewSpaceScale float64 `json:"view_space_scale"`

	ClipOffsets projection.ClipOffsets `json:"clip_offsets"`

	// Backend names the render pipeline: legacy, universal or
	// high_definition.
	Backend string `json:"backend"`

	// Preview settings.
	FPS             int     `json:"fps"`
	SmoothFrequency float64 `json:"smooth_frequency"`
	SmoothDamping   float64 `json:"smooth_damping"`
}

// Default returns the settings for the reference device on a desk.
func Default() Config {
	return Config{
		Near:            0.01,
		Far:             100,
		LensShift:       true,
		BoxFrontClip:    true,
		ViewSpaceScale:  1,
		ClipOffsets:     projection.DefaultClipOffsets(),
		Backend:         "legacy",
		FPS:             60,
		SmoothFrequency: 8,
		SmoothDamping:   1,
	}
}

// Load reads a JSON config file. Fields not set in the file keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings. Nil
// pointers mean the flag was not given.
type Flags struct {
	FPS       int
	LensShift *bool
	WallMount *bool
}

// Resolve applies flag overrides and repairs values that have a safe
// fallback.
func (c *Config) Resolve(flags Flags) {
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.LensShift != nil {
		c.LensShift = *flags.LensShift
	}
	if flags.WallMount != nil {
		c.WallMount = *flags.WallMount
	}

	if c.ViewSpaceScale <= 0 {
		log.Printf("config: view_space_scale must be positive, got %g; forcing 1", c.ViewSpaceScale)
		c.ViewSpaceScale = 1
	}
	if c.FPS <= 0 {
		c.FPS = 60
	}
	if c.ClipOffsets == (projection.ClipOffsets{}) {
		c.ClipOffsets = projection.DefaultClipOffsets()
	}
}

// Validate reports settings no frame can be built with.
func (c Config) Validate() error {
	var errs []error
	if !(c.Near > 0) {
		errs = append(errs, fmt.Errorf("near must be positive, got %g", c.Near))
	}
	if !(c.Far > c.Near) {
		errs = append(errs, fmt.Errorf("far (%g) must exceed near (%g)", c.Far, c.Near))
	}
	if _, err := session.ParseBackend(c.Backend); err != nil {
		errs = append(errs, err)
	}
	if c.SmoothFrequency < 0 || c.SmoothDamping < 0 {
		errs = append(errs, errors.New("smoothing must be non-negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Mount returns the configured mount.
func (c Config) Mount() display.Mount {
	if c.WallMount {
		return display.MountWall
	}
	return display.MountDesk
}

// ClipPlane returns the near plane placement for these settings.
func (c Config) ClipPlane() projection.ClipPlane {
	return projection.ClipPlane{
		Mount:       c.Mount(),
		TiltDegrees: c.TiltDegrees,
		Multi:       c.MultiMode,
		ViewScale:   c.ViewSpaceScale,
		Offsets:     c.ClipOffsets,
	}
}

// RenderBackend parses the configured backend.
func (c Config) RenderBackend() (session.Backend, error) {
	return session.ParseBackend(c.Backend)
}
