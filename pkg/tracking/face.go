// Package tracking estimates the viewer's head and eye poses, either from a
// tracking runtime or from simulated mouse input.
package tracking

import (
	"math"

	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/math3d"
)

// IPD is the interpupillary distance in meters.
const IPD = 0.065

// Eye selects one of the two eyes.
type Eye int

const (
	EyeLeft Eye = iota
	EyeRight
)

func (e Eye) String() string {
	if e == EyeLeft {
		return "left"
	}
	return "right"
}

// Eyes lists both eyes in render order.
var Eyes = [2]Eye{EyeLeft, EyeRight}

// FacePose is the head pose and the two eye poses derived from it.
type FacePose struct {
	Head  math3d.Pose
	Left  math3d.Pose
	Right math3d.Pose
}

// DeriveEyePoses offsets the eyes by half the IPD along the head's right
// axis and turns each one toward lookAt. Eye orientation ignores head roll.
func DeriveEyePoses(head math3d.Pose, lookAt math3d.Vec3) (left, right math3d.Pose) {
	left = math3d.NewPose(math3d.Left().Scale(IPD/2), math3d.QuatIdent()).TransformedBy(head)
	left.Rotation = math3d.LookRotation(lookAt.Sub(left.Position), math3d.Up())

	right = math3d.NewPose(math3d.Right().Scale(IPD/2), math3d.QuatIdent()).TransformedBy(head)
	right.Rotation = math3d.LookRotation(lookAt.Sub(right.Position), math3d.Up())
	return left, right
}

// UpdateWithHead replaces the head pose and rederives both eyes.
func (f *FacePose) UpdateWithHead(head math3d.Pose, lookAt math3d.Vec3) {
	f.Head = head
	f.Left, f.Right = DeriveEyePoses(head, lookAt)
}

// TransformedBy places all three poses through the scene origin.
func (f FacePose) TransformedBy(origin math3d.Transform) FacePose {
	return FacePose{
		Head:  origin.ApplyPose(f.Head),
		Left:  origin.ApplyPose(f.Left),
		Right: origin.ApplyPose(f.Right),
	}
}

// Eye returns the pose of one eye.
func (f FacePose) Eye(e Eye) math3d.Pose {
	if e == EyeLeft {
		return f.Left
	}
	return f.Right
}

// Valid reports whether every position is finite and every rotation is a
// unit quaternion.
func (f FacePose) Valid() bool {
	for _, p := range [3]math3d.Pose{f.Head, f.Left, f.Right} {
		if !p.Position.IsFinite() || !p.Rotation.IsUnit(1e-3) {
			return false
		}
	}
	return true
}

// DefaultFacePose puts the head 30 cm in front of and 20 cm above the
// device origin, looking at the display center.
func DefaultFacePose(g display.Geometry) FacePose {
	pos := math3d.V3(0, 0.2, -0.3)
	forward := g.Center.Sub(pos)
	up := forward.Cross(math3d.Right())

	var f FacePose
	f.UpdateWithHead(math3d.NewPose(pos, math3d.LookRotation(forward, up)), g.Center)
	return f
}

// FaceProjection holds a projection matrix for the head and each eye.
type FaceProjection struct {
	Head  math3d.Mat4
	Left  math3d.Mat4
	Right math3d.Mat4
}

// Uniform returns a FaceProjection using m for all three views.
func Uniform(m math3d.Mat4) FaceProjection {
	return FaceProjection{Head: m, Left: m, Right: m}
}

// Eye returns the projection of one eye.
func (p FaceProjection) Eye(e Eye) math3d.Mat4 {
	if e == EyeLeft {
		return p.Left
	}
	return p.Right
}

// Valid reports whether no matrix contains NaN or Inf.
func (p FaceProjection) Valid() bool {
	return !p.Head.HasNaNOrInf() && !p.Left.HasNaNOrInf() && !p.Right.HasNaNOrInf()
}

// Default projection parameters used before any tracking result arrives.
const (
	DefaultFOVDegrees = 40.0
	DefaultNear       = 0.3
	DefaultFar        = 100.0
)

// DefaultProjection returns a symmetric perspective matching the screen's
// aspect ratio.
func DefaultProjection(screen display.ScreenRect) FaceProjection {
	aspect := screen.Aspect()
	if aspect == 0 {
		aspect = display.DefaultScreenRect().Aspect()
	}
	return Uniform(math3d.Perspective(DefaultFOVDegrees*math.Pi/180, aspect, DefaultNear, DefaultFar))
}
