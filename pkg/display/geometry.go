// Package display models the physical geometry of a tilted spatial display
// panel and its placement in the scene.
package display

import (
	"math"

	"github.com/taigrr/lenticular/pkg/math3d"
)

// Reference device body box, in meters. The reference panel is tilted 45
// degrees, so its height and depth are equal.
const (
	ReferenceWidth  = 0.3442176
	ReferenceHeight = 0.1369117
	ReferenceDepth  = 0.1369117
)

// Geometry is the body box of a display panel in the device frame. The
// bottom edge of the panel lies on the x axis and the top edge is lifted by
// Height and pushed back by Depth.
//
// Geometry is a value; Refit returns a new one.
type Geometry struct {
	Width  float64
	Height float64
	Depth  float64

	LeftUp      math3d.Vec3
	LeftBottom  math3d.Vec3
	RightUp     math3d.Vec3
	RightBottom math3d.Vec3

	Center  math3d.Vec3
	BoxSize math3d.Vec3
}

// Build derives the body box of a panel of the given physical size tilted
// back by tilt radians.
func Build(panelWidth, panelHeight, tilt float64) Geometry {
	return FromBox(panelWidth, panelHeight*math.Cos(tilt), panelHeight*math.Sin(tilt))
}

// FromBox builds the geometry from body box extents.
func FromBox(width, height, depth float64) Geometry {
	half := width / 2
	return Geometry{
		Width:       width,
		Height:      height,
		Depth:       depth,
		LeftUp:      math3d.V3(-half, height, depth),
		LeftBottom:  math3d.V3(-half, 0, 0),
		RightUp:     math3d.V3(half, height, depth),
		RightBottom: math3d.V3(half, 0, 0),
		Center:      math3d.V3(0, height/2, depth/2),
		BoxSize:     math3d.V3(width, height, depth),
	}
}

// Default returns the geometry of the reference device.
func Default() Geometry {
	return FromBox(ReferenceWidth, ReferenceHeight, ReferenceDepth)
}

// Refit returns the geometry for new panel specs.
func (g Geometry) Refit(panelWidth, panelHeight, tilt float64) Geometry {
	return Build(panelWidth, panelHeight, tilt)
}

// ScaleFactor is the width ratio to the reference device.
func (g Geometry) ScaleFactor() float64 {
	return g.Width / ReferenceWidth
}

// Corners returns the corners counterclockwise from LeftUp: LeftUp,
// LeftBottom, RightBottom, RightUp.
func (g Geometry) Corners() [4]math3d.Vec3 {
	return [4]math3d.Vec3{g.LeftUp, g.LeftBottom, g.RightBottom, g.RightUp}
}

// Normal returns the unnormalized panel normal. It points toward the
// viewer side for a panel tilted back.
func (g Geometry) Normal() math3d.Vec3 {
	return normal(g.LeftUp, g.LeftBottom, g.RightBottom)
}

// TiltRadians recovers the tilt angle from the box extents.
func (g Geometry) TiltRadians() float64 {
	return math.Atan2(g.Depth, g.Height)
}

func normal(leftUp, leftBottom, rightBottom math3d.Vec3) math3d.Vec3 {
	lhs := leftUp.Sub(leftBottom)
	rhs := rightBottom.Sub(leftBottom)
	return lhs.Cross(rhs)
}
