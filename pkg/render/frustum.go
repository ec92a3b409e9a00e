package render

import "github.com/taigrr/lenticular/pkg/math3d"

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane so its normal has unit length.
func (p *Plane) Normalize() {
	n := p.Normal.Len()
	if n == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / n)
	p.D /= n
}

// Distance returns the signed distance from the plane to point. It is
// positive on the side the normal points to.
func (p Plane) Distance(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum planes, in NewFrustum order.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// Frustum is six planes with inward normals.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustum extracts the planes of a view-projection matrix (Gribb and
// Hartmann). For an oblique projection the near plane is the oblique one.
func NewFrustum(m math3d.Mat4) Frustum {
	w := m.Row(3)
	var f Frustum
	for axis := range 3 {
		r := m.Row(axis)
		f.Planes[2*axis] = planeOf(math3d.V4(w.X+r.X, w.Y+r.Y, w.Z+r.Z, w.W+r.W))
		f.Planes[2*axis+1] = planeOf(math3d.V4(w.X-r.X, w.Y-r.Y, w.Z-r.Z, w.W-r.W))
	}
	return f
}

func planeOf(v math3d.Vec4) Plane {
	p := Plane{Normal: v.Vec3(), D: v.W}
	p.Normalize()
	return p
}

// ContainsPoint reports whether p is inside every plane.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for _, pl := range f.Planes {
		if pl.Distance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether a sphere touches the frustum.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for _, pl := range f.Planes {
		if pl.Distance(center) < -radius {
			return false
		}
	}
	return true
}

// IntersectsAABB reports whether any part of box may be inside. It tests
// the corner furthest along each plane normal and can report boxes near a
// frustum corner as visible.
func (f Frustum) IntersectsAABB(box AABB) bool {
	for _, pl := range f.Planes {
		if pl.Distance(box.support(pl.Normal)) < 0 {
			return false
		}
	}
	return true
}

// ContainsAABB reports whether box is entirely inside.
func (f Frustum) ContainsAABB(box AABB) bool {
	for _, pl := range f.Planes {
		if pl.Distance(box.support(pl.Normal.Negate())) < 0 {
			return false
		}
	}
	return true
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math3d.Vec3
}

// NewAABB creates an AABB.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// BoundPoints returns the smallest box holding every point.
func BoundPoints(points []math3d.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	b := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Center returns the midpoint.
func (b AABB) Center() math3d.Vec3 { return b.Min.Add(b.Max).Scale(0.5) }

// Size returns the extents along each axis.
func (b AABB) Size() math3d.Vec3 { return b.Max.Sub(b.Min) }

// ContainsPoint reports whether p is inside or on the box.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Corners returns the eight corners.
func (b AABB) Corners() [8]math3d.Vec3 {
	var out [8]math3d.Vec3
	for i := range out {
		out[i] = math3d.V3(
			pick(i&1 != 0, b.Max.X, b.Min.X),
			pick(i&2 != 0, b.Max.Y, b.Min.Y),
			pick(i&4 != 0, b.Max.Z, b.Min.Z),
		)
	}
	return out
}

// Transform returns the box bounding b after m.
func (b AABB) Transform(m math3d.Mat4) AABB {
	corners := b.Corners()
	for i, c := range corners {
		corners[i] = m.MulVec3(c)
	}
	return BoundPoints(corners[:])
}

// support returns the corner furthest along dir.
func (b AABB) support(dir math3d.Vec3) math3d.Vec3 {
	return math3d.V3(
		pick(dir.X >= 0, b.Max.X, b.Min.X),
		pick(dir.Y >= 0, b.Max.Y, b.Min.Y),
		pick(dir.Z >= 0, b.Max.Z, b.Min.Z),
	)
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
