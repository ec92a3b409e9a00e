package models

import "github.com/taigrr/lenticular/pkg/math3d"

// NewBox returns a box spanning min to max, two triangles per side.
func NewBox(min, max math3d.Vec3) *Mesh {
	m := NewMesh("box")
	for i := range 8 {
		m.Positions = append(m.Positions, math3d.V3(
			pick(i&1 != 0, max.X, min.X),
			pick(i&2 != 0, max.Y, min.Y),
			pick(i&4 != 0, max.Z, min.Z),
		))
	}
	// Corner i has bit 0 set for +x, bit 1 for +y, bit 2 for +z.
	quads := [6][4]int{
		{0, 2, 3, 1}, // -z
		{4, 5, 7, 6}, // +z
		{0, 4, 6, 2}, // -x
		{1, 3, 7, 5}, // +x
		{0, 1, 5, 4}, // -y
		{2, 6, 7, 3}, // +y
	}
	for _, q := range quads {
		m.Faces = append(m.Faces, [3]int{q[0], q[1], q[2]}, [3]int{q[0], q[2], q[3]})
	}
	m.CalculateBounds()
	return m
}

// NewGrid returns a square line grid on the y=0 plane centered on the
// origin, with divisions cells per side.
func NewGrid(size float64, divisions int) *Mesh {
	m := NewMesh("grid")
	if divisions < 1 {
		divisions = 1
	}
	half := size / 2
	step := size / float64(divisions)
	for i := 0; i <= divisions; i++ {
		o := -half + float64(i)*step
		base := len(m.Positions)
		m.Positions = append(m.Positions,
			math3d.V3(o, 0, -half), math3d.V3(o, 0, half),
			math3d.V3(-half, 0, o), math3d.V3(half, 0, o),
		)
		m.Lines = append(m.Lines, [2]int{base, base + 1}, [2]int{base + 2, base + 3})
	}
	m.CalculateBounds()
	return m
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
