// Package engine runs the per-frame camera pipeline of a spatial display:
// it reads the viewer's face pose, builds each eye's projection and, when
// lens shift is off, the homography that corrects the eye image.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/taigrr/lenticular/pkg/config"
	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/homography"
	"github.com/taigrr/lenticular/pkg/math3d"
	"github.com/taigrr/lenticular/pkg/projection"
	"github.com/taigrr/lenticular/pkg/session"
	"github.com/taigrr/lenticular/pkg/tracking"
)

// EyeResult is everything a renderer needs to draw one eye.
type EyeResult struct {
	Eye  tracking.Eye
	Pose math3d.Pose
	View math3d.Mat4

	Projection projection.Params
	// Homography is the identity pair when lens shift is on.
	Homography homography.Pair

	// ProjectionHeld and HomographyHeld are set when this frame's value
	// could not be built and the previous one was reused. Err says why.
	ProjectionHeld bool
	HomographyHeld bool
	Err            error
}

// ViewProjection returns Projection * View.
func (r EyeResult) ViewProjection() math3d.Mat4 {
	return r.Projection.Matrix.Mul(r.View)
}

// FrameResult is the outcome of one frame.
type FrameResult struct {
	Frame  uint64
	Face   tracking.FacePose
	Status tracking.Status
	Edges  display.Edges
	Eyes   [2]EyeResult

	// TrackingLost is set when the face pose was carried over.
	TrackingLost bool
}

// Held reports whether any eye reused last frame's projection or
// homography.
func (f FrameResult) Held() bool {
	for _, e := range f.Eyes {
		if e.ProjectionHeld || e.HomographyHeld {
			return true
		}
	}
	return false
}

// RenderFunc draws one eye. It runs after that eye's state is updated.
type RenderFunc func(ctx context.Context, eye EyeResult) error

// Engine owns the per-eye state of one display.
type Engine struct {
	cfg     config.Config
	info    display.Info
	tracker tracking.Tracker
	hook    session.FrameHook
	clip    projection.ClipPlane
	origin  math3d.Transform

	proj  [2]*projection.Holder
	homog [2]*homography.Holder

	frame uint64
	lost  bool
}

// New creates an engine. Only configuration errors are returned; everything
// that can go wrong during a frame is recovered by holding the previous
// value.
func New(cfg config.Config, info display.Info, tracker tracking.Tracker) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tracker == nil {
		return nil, fmt.Errorf("%w: nil tracker", config.ErrInvalid)
	}
	backend, err := cfg.RenderBackend()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		info:    info,
		tracker: tracker,
		hook:    session.SelectHook(backend),
		clip:    cfg.ClipPlane(),
		origin:  Origin(cfg),
	}
	seed := tracking.DefaultProjection(info.Screen)
	for _, eye := range tracking.Eyes {
		if e.proj[eye], err = projection.NewHolder(seed.Eye(eye)); err != nil {
			return nil, err
		}
		e.homog[eye] = homography.NewHolder()
	}
	return e, nil
}

// Origin returns the transform of the object hosting the display for cfg.
func Origin(cfg config.Config) math3d.Transform {
	scale := cfg.ViewSpaceScale
	if scale <= 0 {
		scale = 1
	}
	return math3d.Transform{
		Rotation: cfg.Mount().OriginRotation(cfg.TiltDegrees),
		Scale:    scale,
	}
}

// Config returns the engine's settings.
func (e *Engine) Config() config.Config { return e.cfg }

// Info returns the device description the engine was built for.
func (e *Engine) Info() display.Info { return e.info }

// Hook returns the frame hook selected for the render backend.
func (e *Engine) Hook() session.FrameHook { return e.hook }

// Origin returns the current host transform.
func (e *Engine) Origin() math3d.Transform { return e.origin }

// SetOrigin moves the object hosting the display. The view scale is kept.
func (e *Engine) SetOrigin(pos math3d.Vec3, rot math3d.Quat) {
	e.origin.Position = pos
	e.origin.Rotation = rot.Mul(e.cfg.Mount().OriginRotation(e.cfg.TiltDegrees))
}

// Frame runs one frame. render may be nil. The returned error is non-nil
// only when ctx is done or render fails.
func (e *Engine) Frame(ctx context.Context, render RenderFunc) (FrameResult, error) {
	e.frame++
	res := FrameResult{
		Frame: e.frame,
		Edges: display.PlaceEdges(e.info.Geometry, e.origin),
	}

	e.tracker.Update(e.origin)
	res.Face, res.Status = e.tracker.FacePose()
	res.TrackingLost = !res.Status.OK()
	e.logTracking(res.Status)

	var hint tracking.FaceProjection
	hintStatus := tracking.StatusNotTracking
	if !e.cfg.LensShift {
		hint, hintStatus = e.tracker.Projection(e.cfg.Near, e.cfg.Far)
	}

	update := func(_ context.Context, eye tracking.Eye) error {
		res.Eyes[eye] = e.updateEye(eye, res.Face.Eye(eye), res.Edges, hint.Eye(eye), hintStatus.OK())
		return nil
	}
	var draw session.EyeFunc
	if render != nil {
		draw = func(ctx context.Context, eye tracking.Eye) error {
			return render(ctx, res.Eyes[eye])
		}
	}

	if err := e.hook.Run(ctx, tracking.Eyes[:], update, draw); err != nil {
		return res, err
	}
	return res, nil
}

// updateEye touches only the holders of eye, so eyes may run in parallel.
func (e *Engine) updateEye(eye tracking.Eye, pose math3d.Pose, edges display.Edges, hint math3d.Mat4, hintOK bool) EyeResult {
	r := EyeResult{
		Eye:        eye,
		Pose:       pose,
		View:       projection.View(pose),
		Homography: homography.Identity(),
	}
	g := e.info.Geometry

	local, err := projection.LensShift(r.View, edges, e.cfg.Near, e.cfg.Far)
	m := local
	if !e.cfg.LensShift {
		m, err = projection.FromHint(hint, hintOK, local, err)
	}
	if err == nil && e.cfg.BoxFrontClip {
		point, normal := e.clip.Plane(g, e.origin)
		m, err = projection.Oblique(m, r.View, point, normal)
	}

	var fresh bool
	r.Projection, fresh = e.proj[eye].Apply(m, err)
	if !fresh {
		r.ProjectionHeld = true
		r.Err = err
	}

	if !e.cfg.LensShift {
		pair, herr := e.homog[eye].Update(edges, r.ViewProjection())
		r.Homography = pair
		if herr != nil {
			r.HomographyHeld = true
			r.Err = errors.Join(r.Err, herr)
		}
	}
	return r
}

func (e *Engine) logTracking(status tracking.Status) {
	switch {
	case !status.OK() && !e.lost:
		log.Printf("engine: tracking lost (%s), holding last face pose", status)
		e.lost = true
	case status.OK() && e.lost:
		log.Printf("engine: tracking recovered after frame %d", e.frame-1)
		e.lost = false
	}
}
