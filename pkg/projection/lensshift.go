package projection

import (
	"fmt"

	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/math3d"
)

// LensShift returns the off-axis frustum that maps the screen rectangle
// onto the viewport as seen through view. The RightUp and LeftBottom
// corners fix the frustum edges, scaled onto the near plane by the depth
// of LeftBottom.
func LensShift(view math3d.Mat4, edges display.Edges, near, far float64) (math3d.Mat4, error) {
	ru := view.MulVec3(edges.RightUp)
	lb := view.MulVec3(edges.LeftBottom)

	if lb.Z >= 0 {
		return math3d.Mat4{}, fmt.Errorf("%w: screen behind eye (z=%g)", ErrDegenerateProjection, lb.Z)
	}
	if near <= 0 || far <= near {
		return math3d.Mat4{}, fmt.Errorf("%w: clip range [%g, %g]", ErrDegenerateProjection, near, far)
	}

	nearScale := -near / lb.Z
	left := lb.X * nearScale
	bottom := lb.Y * nearScale
	right := ru.X * nearScale
	top := ru.Y * nearScale

	if right == left || top == bottom {
		return math3d.Mat4{}, fmt.Errorf("%w: zero-size frustum", ErrDegenerateProjection)
	}

	m := math3d.Frustum(left, right, bottom, top, near, far)
	if err := Validate(m); err != nil {
		return math3d.Mat4{}, err
	}
	return m, nil
}

// BuildEyeProjection places the display through origin and builds the lens
// shift frustum for eye, given in world space.
func BuildEyeProjection(eye math3d.Pose, g display.Geometry, near, far float64, origin math3d.Transform) (math3d.Mat4, error) {
	return LensShift(View(eye), display.PlaceEdges(g, origin), near, far)
}
