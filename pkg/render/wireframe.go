package render

import (
	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/math3d"
	"github.com/taigrr/lenticular/pkg/models"
)

// Wireframe draws 3D line geometry seen through a camera. Lines are
// clipped in clip space, so an oblique projection's near plane cuts
// geometry in front of the display body.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{camera: camera, fb: fb}
}

// DrawLine3D draws the part of the segment a-b inside the view volume. It
// reports whether anything was left after clipping.
func (w *Wireframe) DrawLine3D(a, b math3d.Vec3, c Color) bool {
	ca, cb := w.camera.clip(a), w.camera.clip(b)

	t0, t1 := 0.0, 1.0
	for _, plane := range clipPlanes {
		da, db := plane.Dot(ca), plane.Dot(cb)
		switch {
		case da < 0 && db < 0:
			return false
		case da < 0:
			t0 = max(t0, da/(da-db))
		case db < 0:
			t1 = min(t1, da/(da-db))
		}
	}
	if t0 > t1 {
		return false
	}
	ca, cb = ca.Lerp(cb, t0), ca.Lerp(cb, t1)
	if ca.W <= 0 || cb.W <= 0 {
		return false
	}

	x0, y0 := w.toPixel(ca)
	x1, y1 := w.toPixel(cb)
	w.fb.DrawLine(x0, y0, x1, y1, c)
	return true
}

// clipPlanes are the view volume bounds in clip space: a point is inside
// when its dot product with each is non-negative. The z + w plane is the
// projection's near plane.
var clipPlanes = [6]math3d.Vec4{
	{X: 1, W: 1}, {X: -1, W: 1},
	{Y: 1, W: 1}, {Y: -1, W: 1},
	{Z: 1, W: 1}, {Z: -1, W: 1},
}

func (w *Wireframe) toPixel(clip math3d.Vec4) (int, int) {
	ndc := clip.PerspectiveDivide()
	x := (ndc.X + 1) / 2 * float64(w.fb.Width)
	y := (1 - ndc.Y) / 2 * float64(w.fb.Height)
	return int(x), int(y)
}

// DrawMesh draws every edge of m. A mesh whose bounds are outside the
// camera frustum is skipped; the return value says whether it was drawn.
func (w *Wireframe) DrawMesh(m *models.Mesh, c Color) bool {
	if !w.camera.Frustum().IntersectsAABB(NewAABB(m.BoundsMin, m.BoundsMax)) {
		return false
	}
	for _, e := range m.Edges() {
		w.DrawLine3D(m.Positions[e[0]], m.Positions[e[1]], c)
	}
	return true
}

// DrawDisplay outlines the display panel.
func (w *Wireframe) DrawDisplay(edges display.Edges, c Color) {
	p := edges.Positions()
	for i := range p {
		w.DrawLine3D(p[i], p[(i+1)%len(p)], c)
	}
}

// DrawAxes draws the x, y and z axes from origin in red, green and blue.
func (w *Wireframe) DrawAxes(origin math3d.Vec3, length float64) {
	w.DrawLine3D(origin, origin.Add(math3d.Right().Scale(length)), ColorRed)
	w.DrawLine3D(origin, origin.Add(math3d.Up().Scale(length)), ColorGreen)
	w.DrawLine3D(origin, origin.Add(math3d.Forward().Scale(length)), ColorBlue)
}
