package projection

import (
	"fmt"
	"math"

	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/math3d"
)

// ClipOffsets are calibration constants, in meters, for the near plane
// that hides geometry in front of the display body.
type ClipOffsets struct {
	// Fixed is subtracted from the top edge depth.
	Fixed float64 `json:"fixed"`
	// Single and Multi are the minimum offsets for one display and for
	// several displays tiled together.
	Single float64 `json:"single"`
	Multi  float64 `json:"multi"`
}

// DefaultClipOffsets returns the offsets calibrated for the reference
// device.
func DefaultClipOffsets() ClipOffsets {
	return ClipOffsets{Fixed: -0.025, Single: 0.10545, Multi: 0.168}
}

// ClipPlane describes how to place the near plane.
type ClipPlane struct {
	Mount       display.Mount
	TiltDegrees float64
	Multi       bool
	ViewScale   float64
	Offsets     ClipOffsets
}

// Rotation returns the rotation that aligns the plane with the panel.
func (c ClipPlane) Rotation() math3d.Quat {
	return math3d.QuatEuler(-(45 - (c.Mount.StandDegrees() + c.TiltDegrees)), 0, 0)
}

// Plane returns a point on the near plane and its normal, in world space.
// The normal points away from the viewer.
func (c ClipPlane) Plane(g display.Geometry, origin math3d.Transform) (point, normal math3d.Vec3) {
	rot := c.Rotation()
	inv := rot.Inverse()
	scale := g.ScaleFactor()
	lb := inv.Rotate(g.LeftBottom.Scale(1 / scale))
	lu := inv.Rotate(g.LeftUp.Scale(1 / scale))

	minOffset := c.Offsets.Single
	if c.Multi {
		minOffset = c.Offsets.Multi
	}
	offset := math.Max(math.Abs(lu.Z-c.Offsets.Fixed), minOffset)

	viewScale := c.ViewScale
	if viewScale <= 0 {
		viewScale = 1
	}
	local := math3d.V3(lb.X, lb.Y, math.Max(lb.Z, lu.Z)-offset).Scale(viewScale)
	point = origin.Rotation.Rotate(local).Add(origin.Position)
	normal = origin.Rotation.Mul(rot).Rotate(math3d.Forward())
	return point, normal
}

// Oblique rewrites proj so that its near plane is the given world-space
// plane. Points on the plane map to NDC z = -1 and points on the normal's
// side stay visible. The far plane is skewed accordingly.
func Oblique(proj, view math3d.Mat4, point, normal math3d.Vec3) (math3d.Mat4, error) {
	n := view.MulVec3Dir(normal)
	p := view.MulVec3(point)
	plane := math3d.V4FromV3(n, -n.Dot(p))
	return obliqueFromPlane(proj, plane)
}

// obliqueFromPlane replaces the third row of proj with the camera-space
// plane c, scaled so the far corner of the frustum opposite the plane
// still maps to z = 1.
func obliqueFromPlane(proj math3d.Mat4, c math3d.Vec4) (math3d.Mat4, error) {
	q := proj.Inverse().MulVec4(math3d.V4(sign(c.X), sign(c.Y), 1, 1))
	d := c.Dot(q)
	if d == 0 || math.IsNaN(d) {
		return math3d.Mat4{}, fmt.Errorf("%w: clip plane through eye", ErrDegenerateProjection)
	}
	c = c.Scale(2 / d)

	m := proj
	r3 := m.Row(3)
	m.SetRow(2, math3d.V4(c.X-r3.X, c.Y-r3.Y, c.Z-r3.Z, c.W-r3.W))
	if err := Validate(m); err != nil {
		return math3d.Mat4{}, err
	}
	return m, nil
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
