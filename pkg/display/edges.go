package display

import "github.com/taigrr/lenticular/pkg/math3d"

// Edges are the display corners placed in the scene through the transform
// of the object that hosts the display.
type Edges struct {
	LeftUp      math3d.Vec3
	LeftBottom  math3d.Vec3
	RightBottom math3d.Vec3
	RightUp     math3d.Vec3
}

// PlaceEdges transforms the geometry's corners into the world.
func PlaceEdges(g Geometry, presence math3d.Transform) Edges {
	return Edges{
		LeftUp:      presence.TransformPoint(g.LeftUp),
		LeftBottom:  presence.TransformPoint(g.LeftBottom),
		RightBottom: presence.TransformPoint(g.RightBottom),
		RightUp:     presence.TransformPoint(g.RightUp),
	}
}

// Center is the midpoint of the LeftBottom-RightUp diagonal.
func (e Edges) Center() math3d.Vec3 {
	return e.LeftBottom.Add(e.RightUp).Scale(0.5)
}

// Normal returns the unnormalized panel normal in world space.
func (e Edges) Normal() math3d.Vec3 {
	return normal(e.LeftUp, e.LeftBottom, e.RightBottom)
}

// Positions returns the corners counterclockwise from LeftUp.
func (e Edges) Positions() [4]math3d.Vec3 {
	return [4]math3d.Vec3{e.LeftUp, e.LeftBottom, e.RightBottom, e.RightUp}
}
