package tracking

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/lenticular/pkg/math3d"
)

// Smoother filters a position through a damped spring per axis.
type Smoother struct {
	spring harmonica.Spring
	pos    math3d.Vec3
	vel    math3d.Vec3
	primed bool
}

// NewSmoother creates a smoother stepped at fps. frequency is the angular
// frequency of the spring and damping its damping ratio; 1 is critically
// damped.
func NewSmoother(fps int, frequency, damping float64) *Smoother {
	return &Smoother{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Step advances the spring one frame toward target and returns the
// filtered position. The first call snaps to target.
func (s *Smoother) Step(target math3d.Vec3) math3d.Vec3 {
	if !s.primed {
		s.pos = target
		s.primed = true
		return s.pos
	}
	s.pos.X, s.vel.X = s.spring.Update(s.pos.X, s.vel.X, target.X)
	s.pos.Y, s.vel.Y = s.spring.Update(s.pos.Y, s.vel.Y, target.Y)
	s.pos.Z, s.vel.Z = s.spring.Update(s.pos.Z, s.vel.Z, target.Z)
	return s.pos
}

// Reset forgets the spring state.
func (s *Smoother) Reset() {
	s.pos, s.vel = math3d.Vec3{}, math3d.Vec3{}
	s.primed = false
}

// Smoothed wraps a Tracker and filters the head and eye positions. The
// same spring drives all three, so the eyes stay symmetric about the head.
// Rotations pass through unfiltered.
type Smoothed struct {
	Tracker
	head, left, right *Smoother
}

// NewSmoothed wraps t.
func NewSmoothed(t Tracker, fps int, frequency, damping float64) *Smoothed {
	return &Smoothed{
		Tracker: t,
		head:    NewSmoother(fps, frequency, damping),
		left:    NewSmoother(fps, frequency, damping),
		right:   NewSmoother(fps, frequency, damping),
	}
}

// FacePose implements Tracker. Call it once per frame; every call advances
// the springs.
func (s *Smoothed) FacePose() (FacePose, Status) {
	f, status := s.Tracker.FacePose()
	f.Head.Position = s.head.Step(f.Head.Position)
	f.Left.Position = s.left.Step(f.Left.Position)
	f.Right.Position = s.right.Step(f.Right.Position)
	return f, status
}

// Reset forgets the spring state so the next pose is taken as is.
func (s *Smoothed) Reset() {
	s.head.Reset()
	s.left.Reset()
	s.right.Reset()
}
