package math3d

// Pose is a rigid placement: a position and an orientation.
type Pose struct {
	Position Vec3
	Rotation Quat
}

// NewPose creates a Pose.
func NewPose(pos Vec3, rot Quat) Pose {
	return Pose{Position: pos, Rotation: rot}
}

// IdentityPose returns the pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Rotation: QuatIdent()}
}

// Matrix returns the local-to-parent transform.
func (p Pose) Matrix() Mat4 {
	return TRS(p.Position, p.Rotation, V3(1, 1, 1))
}

// Inverse returns the pose that undoes p.
func (p Pose) Inverse() Pose {
	inv := p.Rotation.Inverse()
	return Pose{Position: inv.Rotate(p.Position.Negate()), Rotation: inv}
}

// TransformedBy expresses p, given in parent's local space, in the space
// parent lives in.
func (p Pose) TransformedBy(parent Pose) Pose {
	return Pose{
		Position: parent.Rotation.Rotate(p.Position).Add(parent.Position),
		Rotation: parent.Rotation.Mul(p.Rotation),
	}
}

// Forward returns the pose's local +Z in parent space.
func (p Pose) Forward() Vec3 {
	return p.Rotation.Rotate(Forward())
}

// Right returns the pose's local +X in parent space.
func (p Pose) Right() Vec3 {
	return p.Rotation.Rotate(Right())
}

// Up returns the pose's local +Y in parent space.
func (p Pose) Up() Vec3 {
	return p.Rotation.Rotate(Up())
}

// Transform places a local frame in the world with a uniform scale. It
// models the scene object that hosts the display (the world origin of the
// tracking space).
type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    float64
}

// IdentityTransform returns the transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{Rotation: QuatIdent(), Scale: 1}
}

// TransformPoint maps a local point into the world.
func (t Transform) TransformPoint(v Vec3) Vec3 {
	return t.Rotation.Rotate(v.Scale(t.Scale)).Add(t.Position)
}

// TransformDirection rotates a local direction into the world; scale is
// not applied.
func (t Transform) TransformDirection(v Vec3) Vec3 {
	return t.Rotation.Rotate(v)
}

// ApplyPose maps a local pose into the world.
func (t Transform) ApplyPose(p Pose) Pose {
	return Pose{
		Position: t.TransformPoint(p.Position),
		Rotation: t.Rotation.Mul(p.Rotation),
	}
}

// Matrix returns the local-to-world matrix.
func (t Transform) Matrix() Mat4 {
	return TRS(t.Position, t.Rotation, V3(t.Scale, t.Scale, t.Scale))
}
