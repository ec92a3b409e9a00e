package math3d

import "math"

// Quat is a rotation quaternion. Rotations produced by this package are
// unit length; Normalize restores that after accumulated error.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdent returns the identity rotation.
func QuatIdent() Quat {
	return Quat{W: 1}
}

// QuatAxisAngle returns a rotation of angle radians around axis.
func QuatAxisAngle(axis Vec3, angle float64) Quat {
	axis = axis.Normalize()
	s, c := math.Sincos(angle / 2)
	return Quat{axis.X * s, axis.Y * s, axis.Z * s, c}
}

// QuatEuler returns the rotation for Euler angles given in degrees.
// Rotations are applied around z first, then x, then y.
func QuatEuler(x, y, z float64) Quat {
	const deg = math.Pi / 180
	qx := QuatAxisAngle(Right(), x*deg)
	qy := QuatAxisAngle(Up(), y*deg)
	qz := QuatAxisAngle(Forward(), z*deg)
	return qy.Mul(qx).Mul(qz)
}

// LookRotation returns the rotation whose local +Z points along forward and
// whose local +Y lies as close to up as possible. A zero forward yields the
// identity; a forward parallel to up picks an arbitrary perpendicular right.
func LookRotation(forward, up Vec3) Quat {
	f := forward.Normalize()
	if f.LenSq() == 0 {
		return QuatIdent()
	}
	r := up.Cross(f)
	if r.LenSq() < 1e-18 {
		ref := Right()
		if math.Abs(f.X) > 0.9 {
			ref = Up()
		}
		r = ref.Sub(f.Scale(ref.Dot(f)))
	}
	r = r.Normalize()
	u := f.Cross(r)
	return quatFromBasis(r, u, f)
}

// quatFromBasis converts an orthonormal basis (the columns of a rotation
// matrix) into a quaternion.
func quatFromBasis(r, u, f Vec3) Quat {
	m00, m01, m02 := r.X, u.X, f.X
	m10, m11, m12 := r.Y, u.Y, f.Y
	m20, m21, m22 := r.Z, u.Z, f.Z

	var q Quat
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = Quat{(m21 - m12) * s, (m02 - m20) * s, (m10 - m01) * s, 0.25 / s}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = Quat{0.25 * s, (m01 + m10) / s, (m02 + m20) / s, (m21 - m12) / s}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = Quat{(m01 + m10) / s, 0.25 * s, (m12 + m21) / s, (m02 - m20) / s}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = Quat{(m02 + m20) / s, (m12 + m21) / s, 0.25 * s, (m10 - m01) / s}
	}
	return q.Normalize()
}

// Mul returns the composition q * r (r applied first).
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Conjugate returns the conjugate, which is the inverse for unit quaternions.
func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Inverse returns the inverse rotation.
func (q Quat) Inverse() Quat {
	n := q.LenSq()
	if n == 0 {
		return QuatIdent()
	}
	c := q.Conjugate()
	return Quat{c.X / n, c.Y / n, c.Z / n, c.W / n}
}

// LenSq returns the squared norm.
func (q Quat) LenSq() float64 {
	return q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
}

// Normalize returns q scaled to unit length. A zero quaternion becomes the
// identity.
func (q Quat) Normalize() Quat {
	n := math.Sqrt(q.LenSq())
	if n == 0 {
		return QuatIdent()
	}
	return Quat{q.X / n, q.Y / n, q.Z / n, q.W / n}
}

// IsUnit reports whether |q| is within eps of 1.
func (q Quat) IsUnit(eps float64) bool {
	return math.Abs(math.Sqrt(q.LenSq())-1) <= eps
}

// Mat4 returns the rotation as a column-major matrix.
func (q Quat) Mat4() Mat4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	return Mat4{
		1 - 2*(y*y+z*z), 2 * (x*y + z*w), 2 * (x*z - y*w), 0,
		2 * (x*y - z*w), 1 - 2*(x*x+z*z), 2 * (y*z + x*w), 0,
		2 * (x*z + y*w), 2 * (y*z - x*w), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}
}
