package render

import (
	"github.com/taigrr/lenticular/pkg/math3d"
	"github.com/taigrr/lenticular/pkg/projection"
)

// Camera is an eye camera: a world pose and the projection built for it.
// Its FOV and aspect are read from the matrix, so they stay consistent
// with an off-axis or oblique projection.
type Camera struct {
	pose math3d.Pose
	proj projection.Params

	view     math3d.Mat4
	viewProj math3d.Mat4
}

// NewCamera creates a camera at pose with params.
func NewCamera(pose math3d.Pose, params projection.Params) *Camera {
	c := &Camera{}
	c.Set(pose, params)
	return c
}

// Set updates the pose and projection together.
func (c *Camera) Set(pose math3d.Pose, params projection.Params) {
	c.pose = pose
	c.proj = params
	c.view = projection.View(pose)
	c.viewProj = params.Matrix.Mul(c.view)
}

// SetPose moves the camera and keeps its projection.
func (c *Camera) SetPose(pose math3d.Pose) {
	c.Set(pose, c.proj)
}

// SetProjection replaces the projection. An invalid matrix is rejected.
func (c *Camera) SetProjection(m math3d.Mat4) error {
	p, err := projection.NewParams(m)
	if err != nil {
		return err
	}
	c.Set(c.pose, p)
	return nil
}

// Pose returns the camera's world pose.
func (c *Camera) Pose() math3d.Pose { return c.pose }

// FOV returns the vertical field of view in degrees.
func (c *Camera) FOV() float64 { return c.proj.FOV }

// Aspect returns the width/height ratio.
func (c *Camera) Aspect() float64 { return c.proj.Aspect }

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 { return c.view }

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 { return c.proj.Matrix }

// ViewProjectionMatrix returns projection * view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 { return c.viewProj }

// Frustum returns the camera's view frustum in world space.
func (c *Camera) Frustum() Frustum {
	return NewFrustum(c.viewProj)
}

// clip returns p in clip space.
func (c *Camera) clip(p math3d.Vec3) math3d.Vec4 {
	return c.viewProj.MulVec4(math3d.V4FromV3(p, 1))
}

// WorldToViewport maps p to viewport coordinates, (0,0) bottom-left and
// (1,1) top-right. ok is false when p is behind the camera; points outside
// the frustum still map, past the [0,1] range.
func (c *Camera) WorldToViewport(p math3d.Vec3) (v math3d.Vec2, depth float64, ok bool) {
	cp := c.clip(p)
	if cp.W <= 0 {
		return math3d.Vec2{}, 0, false
	}
	ndc := cp.PerspectiveDivide()
	return math3d.V2((ndc.X+1)/2, (ndc.Y+1)/2), ndc.Z, true
}

// WorldToScreen maps p to pixel coordinates with y down. visible is false
// when p lies outside the frustum.
func (c *Camera) WorldToScreen(p math3d.Vec3, width, height int) (x, y, depth float64, visible bool) {
	v, depth, ok := c.WorldToViewport(p)
	if !ok || v.X < 0 || v.X > 1 || v.Y < 0 || v.Y > 1 || depth < -1 || depth > 1 {
		return 0, 0, 0, false
	}
	return v.X * float64(width), (1 - v.Y) * float64(height), depth, true
}
