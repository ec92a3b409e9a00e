package session

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/math3d"
	"github.com/taigrr/lenticular/pkg/projection"
	"github.com/taigrr/lenticular/pkg/tracking"
)

// ErrNoDevice is returned by simulated device queries configured to fail.
var ErrNoDevice = errors.New("no device attached")

// SimulatedRuntime is a Runtime with no hardware behind it. It replays a
// script of head poses, one per Refresh, and reports lens shift
// projection hints for them.
type SimulatedRuntime struct {
	ID string

	// Panel size in meters and tilt in radians. Zero values report the
	// reference device.
	Width, Height, Tilt float64
	Screen              display.ScreenRect
	// SpecFails makes both device queries fail.
	SpecFails bool

	// Script is replayed in a loop. An empty script holds the default
	// face pose.
	Script []math3d.Pose
	// Failures maps a frame number, counted from 1, to the status reported
	// for it.
	Failures map[int]tracking.Status

	mu      sync.Mutex
	frame   int
	running bool
}

// NewSimulatedRuntime returns a runtime reporting the reference device.
func NewSimulatedRuntime(id string) *SimulatedRuntime {
	return &SimulatedRuntime{ID: id, Screen: display.DefaultScreenRect()}
}

// DeviceID implements Runtime.
func (r *SimulatedRuntime) DeviceID() string { return r.ID }

// Begin implements Runtime.
func (r *SimulatedRuntime) Begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = true
	return nil
}

// End implements Runtime.
func (r *SimulatedRuntime) End() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
	return nil
}

// Frame returns the number of Refresh calls so far.
func (r *SimulatedRuntime) Frame() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// DisplaySize implements display.Spec.
func (r *SimulatedRuntime) DisplaySize() (width, height, tilt float64, err error) {
	if r.SpecFails {
		return 0, 0, 0, ErrNoDevice
	}
	if r.Width == 0 && r.Height == 0 {
		g := display.Default()
		return g.Width, math.Hypot(g.Height, g.Depth), g.TiltRadians(), nil
	}
	return r.Width, r.Height, r.Tilt, nil
}

// ScreenRect implements display.Spec.
func (r *SimulatedRuntime) ScreenRect() (display.ScreenRect, error) {
	if r.SpecFails {
		return display.ScreenRect{}, ErrNoDevice
	}
	return r.Screen, nil
}

// Refresh implements tracking.Source.
func (r *SimulatedRuntime) Refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frame++
}

func (r *SimulatedRuntime) geometry() display.Geometry {
	w, h, tilt, err := r.DisplaySize()
	if err != nil {
		return display.Default()
	}
	return display.Build(w, h, tilt)
}

// current returns the scripted head for this frame and its status.
func (r *SimulatedRuntime) current() (math3d.Pose, tracking.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return math3d.Pose{}, tracking.StatusSessionNotRunning
	}
	status := tracking.StatusSuccess
	if s, ok := r.Failures[r.frame]; ok {
		status = s
	}
	if len(r.Script) == 0 {
		return tracking.DefaultFacePose(r.geometry()).Head, status
	}
	i := 0
	if r.frame > 0 {
		i = (r.frame - 1) % len(r.Script)
	}
	return r.Script[i], status
}

// HeadPose implements tracking.Source. Eyes look at the display center.
func (r *SimulatedRuntime) HeadPose() (head, left, right math3d.Pose, status tracking.Status) {
	head, status = r.current()
	if status == tracking.StatusSessionNotRunning {
		return head, head, head, status
	}
	left, right = tracking.DeriveEyePoses(head, r.geometry().Center)
	return head, left, right, status
}

// ProjectionHint implements tracking.Source with lens shift frustums for
// the scripted eyes.
func (r *SimulatedRuntime) ProjectionHint(near, far float64) (tracking.FaceProjection, tracking.Status) {
	head, left, right, status := r.HeadPose()
	if status == tracking.StatusSessionNotRunning {
		return tracking.FaceProjection{}, status
	}
	g := r.geometry()
	origin := math3d.IdentityTransform()

	var p tracking.FaceProjection
	var err error
	if p.Head, err = projection.BuildEyeProjection(head, g, near, far, origin); err != nil {
		return p, tracking.StatusRuntimeFailure
	}
	if p.Left, err = projection.BuildEyeProjection(left, g, near, far, origin); err != nil {
		return p, tracking.StatusRuntimeFailure
	}
	if p.Right, err = projection.BuildEyeProjection(right, g, near, far, origin); err != nil {
		return p, tracking.StatusRuntimeFailure
	}
	return p, status
}

// OrbitScript returns n head poses sweeping side to side around the
// default viewing position while looking at the display center.
func OrbitScript(g display.Geometry, n int, sweep float64) []math3d.Pose {
	base := tracking.DefaultFacePose(g).Head.Position
	out := make([]math3d.Pose, n)
	for i := range out {
		phase := 2 * math.Pi * float64(i) / float64(n)
		pos := base.Add(math3d.V3(sweep*math.Sin(phase), sweep/2*math.Sin(2*phase), 0))
		rot := math3d.LookRotation(g.Center.Sub(pos), math3d.Up())
		out[i] = math3d.NewPose(pos, rot)
	}
	return out
}
