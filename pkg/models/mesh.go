// Package models holds the scene content drawn behind the display: meshes
// loaded from glTF files or built procedurally.
package models

import (
	"sort"

	"github.com/taigrr/lenticular/pkg/math3d"
)

// Mesh is triangle geometry plus optional free-standing line segments.
type Mesh struct {
	Name      string
	Positions []math3d.Vec3
	Faces     [][3]int
	Lines     [][2]int

	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds recomputes the bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Positions) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Vec3{}, math3d.Vec3{}
		return
	}
	m.BoundsMin, m.BoundsMax = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the extents of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int { return len(m.Faces) }

// VertexCount returns the number of positions.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// Transform applies mat to every position.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i, p := range m.Positions {
		m.Positions[i] = mat.MulVec3(p)
	}
	m.CalculateBounds()
}

// FitInto uniformly scales and moves the mesh so its largest extent is
// size and its bounding box is centered on center.
func (m *Mesh) FitInto(center math3d.Vec3, size float64) {
	s := m.Size()
	largest := max(s.X, s.Y, s.Z)
	if largest == 0 {
		return
	}
	k := size / largest
	mat := math3d.Translate(center).
		Mul(math3d.Scale(math3d.V3(k, k, k))).
		Mul(math3d.Translate(m.Center().Negate()))
	m.Transform(mat)
}

// Append adds other's geometry to m.
func (m *Mesh) Append(other *Mesh) {
	base := len(m.Positions)
	m.Positions = append(m.Positions, other.Positions...)
	for _, f := range other.Faces {
		m.Faces = append(m.Faces, [3]int{f[0] + base, f[1] + base, f[2] + base})
	}
	for _, l := range other.Lines {
		m.Lines = append(m.Lines, [2]int{l[0] + base, l[1] + base})
	}
	m.CalculateBounds()
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	c := *m
	c.Positions = append([]math3d.Vec3(nil), m.Positions...)
	c.Faces = append([][3]int(nil), m.Faces...)
	c.Lines = append([][2]int(nil), m.Lines...)
	return &c
}

// Edges returns every distinct segment to draw in a wireframe: the lines
// and the triangle sides, each once, ordered by index.
func (m *Mesh) Edges() [][2]int {
	seen := make(map[[2]int]struct{}, len(m.Faces)*3+len(m.Lines))
	add := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		if a != b {
			seen[[2]int{a, b}] = struct{}{}
		}
	}
	for _, f := range m.Faces {
		add(f[0], f[1])
		add(f[1], f[2])
		add(f[2], f[0])
	}
	for _, l := range m.Lines {
		add(l[0], l[1])
	}

	out := make([][2]int, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}
