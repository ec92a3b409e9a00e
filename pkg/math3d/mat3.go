package math3d

// Mat3 is a 3x3 matrix stored row-major: h11 h12 h13 h21 ... h33.
// Row-major keeps the layout identical to the flat parameter arrays the
// compositing shaders consume.
type Mat3 [9]float64

// Identity3 returns the 3x3 identity.
func Identity3() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Get returns the element at (row, col).
func (m Mat3) Get(row, col int) float64 {
	return m[row*3+col]
}

// Mul returns a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat3) Mul(b Mat3) Mat3 {
	var m Mat3
	for r := range 3 {
		for c := range 3 {
			m[r*3+c] = a[r*3]*b[c] + a[r*3+1]*b[3+c] + a[r*3+2]*b[6+c]
		}
	}
	return m
}

// MulVec returns m * v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Determinant expands along the rule of Sarrus.
func (m Mat3) Determinant() float64 {
	return m[0]*m[4]*m[8] +
		m[1]*m[5]*m[6] +
		m[2]*m[3]*m[7] -
		m[2]*m[4]*m[6] -
		m[1]*m[3]*m[8] -
		m[0]*m[5]*m[7]
}

// Adjugate returns the transpose of the cofactor matrix.
func (m Mat3) Adjugate() Mat3 {
	return Mat3{
		m[4]*m[8] - m[5]*m[7], -m[1]*m[8] + m[2]*m[7], m[1]*m[5] - m[2]*m[4],
		-m[3]*m[8] + m[5]*m[6], m[0]*m[8] - m[2]*m[6], -m[0]*m[5] + m[2]*m[3],
		m[3]*m[7] - m[4]*m[6], -m[0]*m[7] + m[1]*m[6], m[0]*m[4] - m[1]*m[3],
	}
}

// Scale multiplies every element by s.
func (m Mat3) Scale(s float64) Mat3 {
	for i := range m {
		m[i] *= s
	}
	return m
}

// HasNaNOrInf reports whether any element is NaN or infinite.
func (m Mat3) HasNaNOrInf() bool {
	for _, v := range m {
		if !finite(v) {
			return true
		}
	}
	return false
}
