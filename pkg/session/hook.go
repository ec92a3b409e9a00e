package session

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/lenticular/pkg/tracking"
)

// Backend is the render pipeline the eye cameras are drawn with.
type Backend int

const (
	BackendUnknown Backend = iota
	BackendLegacy
	BackendUniversal
	BackendHighDefinition
)

func (b Backend) String() string {
	switch b {
	case BackendLegacy:
		return "legacy"
	case BackendUniversal:
		return "universal"
	case BackendHighDefinition:
		return "high_definition"
	default:
		return "unknown"
	}
}

// ParseBackend parses a backend name. The empty string is legacy.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy", "builtin":
		return BackendLegacy, nil
	case "universal", "urp":
		return BackendUniversal, nil
	case "high_definition", "hdrp":
		return BackendHighDefinition, nil
	default:
		return BackendUnknown, fmt.Errorf("unknown render backend %q", s)
	}
}

// EyeFunc runs one stage of the per-eye work.
type EyeFunc func(ctx context.Context, eye tracking.Eye) error

// FrameHook decides where in a frame the per-eye state update runs
// relative to rendering each eye.
type FrameHook interface {
	Name() string
	// Run performs update and render for each eye in order. It returns
	// the first error; eyes after a failed one are not rendered.
	Run(ctx context.Context, eyes []tracking.Eye, update, render EyeFunc) error
}

// SelectHook picks the hook for a backend. It is called once at startup.
func SelectHook(b Backend) FrameHook {
	switch b {
	case BackendHighDefinition:
		return ScriptableFrameLevel{}
	case BackendUniversal, BackendUnknown:
		return ScriptableCameraLevel{}
	default:
		return LegacyPerCamera{}
	}
}

// LegacyPerCamera updates each eye just before its camera renders.
type LegacyPerCamera struct{}

func (LegacyPerCamera) Name() string { return "legacy per-camera" }

func (LegacyPerCamera) Run(ctx context.Context, eyes []tracking.Eye, update, render EyeFunc) error {
	return perCamera(ctx, eyes, update, render)
}

// ScriptableCameraLevel updates each eye at the start of its camera's
// render pass.
type ScriptableCameraLevel struct{}

func (ScriptableCameraLevel) Name() string { return "scriptable camera-level" }

func (ScriptableCameraLevel) Run(ctx context.Context, eyes []tracking.Eye, update, render EyeFunc) error {
	return perCamera(ctx, eyes, update, render)
}

func perCamera(ctx context.Context, eyes []tracking.Eye, update, render EyeFunc) error {
	for _, eye := range eyes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := update(ctx, eye); err != nil {
			return err
		}
		if render == nil {
			continue
		}
		if err := render(ctx, eye); err != nil {
			return err
		}
	}
	return nil
}

// ScriptableFrameLevel updates every eye at the start of the frame, then
// renders them. The eyes share no state, so updates run concurrently.
type ScriptableFrameLevel struct{}

func (ScriptableFrameLevel) Name() string { return "scriptable frame-level" }

func (ScriptableFrameLevel) Run(ctx context.Context, eyes []tracking.Eye, update, render EyeFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, eye := range eyes {
		g.Go(func() error {
			return update(gctx, eye)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if render == nil {
		return nil
	}
	for _, eye := range eyes {
		if err := render(ctx, eye); err != nil {
			return err
		}
	}
	return nil
}
