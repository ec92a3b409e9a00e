// Package homography computes the planar homography between a camera's
// viewport and the quadrilateral the physical screen occupies in it. The
// compositor warps each eye image through it when lens shift is off.
package homography

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/math3d"
)

// Epsilon is the smallest denominator or determinant magnitude accepted.
// Below it the corners are treated as collinear.
const Epsilon = 1e-9

// ErrDegenerateHomography is returned when the corners do not span a
// quadrilateral, or the result is not finite.
var ErrDegenerateHomography = errors.New("degenerate homography")

// Compute returns the homography taking the unit square to the points
// p00, p01, p10 and p11: (u, v) = (0, 0) maps to p00, (0, 1) to p01,
// (1, 0) to p10 and (1, 1) to p11. h33 is fixed at 1.
func Compute(p00, p01, p10, p11 math3d.Vec2) (math3d.Mat3, error) {
	x00, y00 := p00.X, p00.Y
	x01, y01 := p01.X, p01.Y
	x10, y10 := p10.X, p10.Y
	x11, y11 := p11.X, p11.Y

	a := x10 - x11
	b := x01 - x11
	c := x00 - x01 - x10 + x11
	d := y10 - y11
	e := y01 - y11
	f := y00 - y01 - y10 + y11

	den := b*d - a*e
	if math.Abs(den) < Epsilon || math.IsNaN(den) {
		return math3d.Mat3{}, fmt.Errorf("%w: corners collinear (bd-ae=%g)", ErrDegenerateHomography, den)
	}

	h13 := x00
	h23 := y00
	h32 := (c*d - a*f) / den
	h31 := (c*e - b*f) / -den
	h11 := x10 - x00 + h31*x10
	h12 := x01 - x00 + h32*x01
	h21 := y10 - y00 + h31*y10
	h22 := y01 - y00 + h32*y01

	h := math3d.Mat3{
		h11, h12, h13,
		h21, h22, h23,
		h31, h32, 1,
	}
	if h.HasNaNOrInf() {
		return math3d.Mat3{}, fmt.Errorf("%w: non-finite element", ErrDegenerateHomography)
	}
	if math.Abs(h.Determinant()) < Epsilon {
		return math3d.Mat3{}, fmt.Errorf("%w: singular", ErrDegenerateHomography)
	}
	return h, nil
}

// Inverse returns the inverse of h from its adjugate and determinant.
func Inverse(h math3d.Mat3) (math3d.Mat3, error) {
	det := h.Determinant()
	if math.Abs(det) < Epsilon || math.IsNaN(det) {
		return math3d.Mat3{}, fmt.Errorf("%w: determinant %g", ErrDegenerateHomography, det)
	}
	inv := h.Adjugate().Scale(1 / det)
	if inv.HasNaNOrInf() {
		return math3d.Mat3{}, fmt.Errorf("%w: non-finite inverse", ErrDegenerateHomography)
	}
	return inv, nil
}

// Apply maps (x, y) through h with the projective divide.
func Apply(h math3d.Mat3, x, y float64) (float64, float64) {
	p := h.MulVec(math3d.V3(x, y, 1))
	return p.X / p.Z, p.Y / p.Z
}

// Pair is a homography and its inverse.
type Pair struct {
	H   math3d.Mat3
	Inv math3d.Mat3
}

// Identity returns the pair that leaves the image unchanged.
func Identity() Pair {
	return Pair{H: math3d.Identity3(), Inv: math3d.Identity3()}
}

// NewPair computes the homography for four viewport points and its inverse.
func NewPair(p00, p01, p10, p11 math3d.Vec2) (Pair, error) {
	h, err := Compute(p00, p01, p10, p11)
	if err != nil {
		return Pair{}, err
	}
	inv, err := Inverse(h)
	if err != nil {
		return Pair{}, err
	}
	return Pair{H: h, Inv: inv}, nil
}

// FromCamera projects the screen corners through viewProj into viewport
// coordinates, origin bottom-left, and computes the pair for them.
func FromCamera(edges display.Edges, viewProj math3d.Mat4) (Pair, error) {
	p00, err := viewport(viewProj, edges.LeftBottom)
	if err != nil {
		return Pair{}, err
	}
	p01, err := viewport(viewProj, edges.LeftUp)
	if err != nil {
		return Pair{}, err
	}
	p10, err := viewport(viewProj, edges.RightBottom)
	if err != nil {
		return Pair{}, err
	}
	p11, err := viewport(viewProj, edges.RightUp)
	if err != nil {
		return Pair{}, err
	}
	return NewPair(p00, p01, p10, p11)
}

func viewport(viewProj math3d.Mat4, p math3d.Vec3) (math3d.Vec2, error) {
	clip := viewProj.MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return math3d.Vec2{}, fmt.Errorf("%w: corner behind camera", ErrDegenerateHomography)
	}
	ndc := clip.PerspectiveDivide()
	return math3d.V2((ndc.X+1)/2, (ndc.Y+1)/2), nil
}

// Params returns the two parameter arrays bound on the warp material, in
// shader order: the inverse homography as "_Homography" and the forward
// one as "_InvHomography".
func (p Pair) Params() (homography, invHomography [9]float32) {
	for i := range 9 {
		homography[i] = float32(p.Inv[i])
		invHomography[i] = float32(p.H[i])
	}
	return homography, invHomography
}
