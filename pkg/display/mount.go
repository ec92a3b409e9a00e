package display

import "github.com/taigrr/lenticular/pkg/math3d"

// Mount is how the display stands.
type Mount int

const (
	MountDesk Mount = iota
	MountWall
)

// StandDegrees is the angle of the panel's stand: 45 degrees on a desk,
// 90 on a wall.
func (m Mount) StandDegrees() float64 {
	if m == MountWall {
		return 90
	}
	return 45
}

func (m Mount) String() string {
	if m == MountWall {
		return "wall"
	}
	return "desk"
}

// OriginRotation is the rotation applied to the display's host object for
// the given system tilt. A wall-mounted panel is pitched a further 45
// degrees.
func (m Mount) OriginRotation(tiltDegrees float64) math3d.Quat {
	x := -tiltDegrees
	if m == MountWall {
		x -= 45
	}
	return math3d.QuatEuler(x, 0, 0)
}
