// Package projection builds per-eye projection matrices for a spatial
// display: off-axis frustums through the physical screen, an oblique near
// plane in front of the panel, and the FOV/aspect view of a matrix.
package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/lenticular/pkg/math3d"
)

// ErrDegenerateProjection is returned when no finite projection exists for
// the inputs: a zero-size frustum, an eye on or behind the screen plane, or
// a matrix whose FOV/aspect cannot be recovered.
var ErrDegenerateProjection = errors.New("degenerate projection")

// View returns the world-to-camera matrix for an eye. Camera space looks
// down -Z, so the eye's +Z is flipped.
func View(eye math3d.Pose) math3d.Mat4 {
	return math3d.Scale(math3d.V3(1, 1, -1)).Mul(eye.Inverse().Matrix())
}

// VerticalFOV returns the vertical field of view of m in degrees.
func VerticalFOV(m math3d.Mat4) float64 {
	return 2 * math.Atan(1/m.Get(1, 1)) * 180 / math.Pi
}

// Aspect returns the width/height ratio of m.
func Aspect(m math3d.Mat4) float64 {
	return m.Get(1, 1) / m.Get(0, 0)
}

// Validate checks m before it is handed to a camera.
func Validate(m math3d.Mat4) error {
	if m.HasNaNOrInf() {
		return fmt.Errorf("%w: non-finite element", ErrDegenerateProjection)
	}
	if m.Get(0, 0) == 0 || m.Get(1, 1) == 0 {
		return fmt.Errorf("%w: zero focal scale", ErrDegenerateProjection)
	}
	return nil
}

// Params is a projection matrix with the symmetric-camera view of it.
type Params struct {
	Matrix math3d.Mat4
	// FOV is the vertical field of view in degrees.
	FOV    float64
	Aspect float64
}

// NewParams validates m and derives its FOV and aspect.
func NewParams(m math3d.Mat4) (Params, error) {
	if err := Validate(m); err != nil {
		return Params{}, err
	}
	return Params{Matrix: m, FOV: VerticalFOV(m), Aspect: Aspect(m)}, nil
}
