package models

import (
	"math"
	"testing"

	"github.com/taigrr/lenticular/pkg/math3d"
)

func TestNewBox(t *testing.T) {
	b := NewBox(math3d.V3(-1, 0, 2), math3d.V3(1, 3, 4))
	if b.VertexCount() != 8 || b.TriangleCount() != 12 {
		t.Fatalf("box has %d vertices, %d triangles", b.VertexCount(), b.TriangleCount())
	}
	if b.Center() != math3d.V3(0, 1.5, 3) || b.Size() != math3d.V3(2, 3, 2) {
		t.Errorf("center %v size %v", b.Center(), b.Size())
	}
	// 12 box edges plus one diagonal per side.
	if n := len(b.Edges()); n != 18 {
		t.Errorf("len(Edges()) = %d, want 18", n)
	}
	for i, f := range b.Faces {
		n := b.Positions[f[1]].Sub(b.Positions[f[0]]).Cross(b.Positions[f[2]].Sub(b.Positions[f[0]]))
		if n.Len() == 0 {
			t.Errorf("face %d is degenerate", i)
		}
	}
}

func TestNewGrid(t *testing.T) {
	g := NewGrid(2, 4)
	if len(g.Lines) != 10 || g.TriangleCount() != 0 {
		t.Fatalf("grid has %d lines, %d triangles", len(g.Lines), g.TriangleCount())
	}
	if g.BoundsMin != math3d.V3(-1, 0, -1) || g.BoundsMax != math3d.V3(1, 0, 1) {
		t.Errorf("bounds %v %v", g.BoundsMin, g.BoundsMax)
	}
	if len(g.Edges()) != 10 {
		t.Errorf("len(Edges()) = %d, want 10", len(g.Edges()))
	}
}

func TestEdgesDeduplicates(t *testing.T) {
	m := NewMesh("quad")
	m.Positions = []math3d.Vec3{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}}
	m.Faces = [][3]int{{0, 1, 2}, {0, 2, 3}}
	m.Lines = [][2]int{{1, 0}, {3, 3}}

	want := [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {2, 3}}
	got := m.Edges()
	if len(got) != len(want) {
		t.Fatalf("Edges() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Edges()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFitInto(t *testing.T) {
	m := NewBox(math3d.V3(10, 10, 10), math3d.V3(14, 12, 11))
	center := math3d.V3(0, 0.07, 0.07)
	m.FitInto(center, 0.1)

	if d := m.Center().Distance(center); d > 1e-12 {
		t.Errorf("center off by %v", d)
	}
	s := m.Size()
	if math.Abs(s.X-0.1) > 1e-12 || math.Abs(s.Y-0.05) > 1e-12 || math.Abs(s.Z-0.025) > 1e-12 {
		t.Errorf("size = %v, want uniform scale to 0.1", s)
	}
}

func TestAppendAndClone(t *testing.T) {
	a := NewBox(math3d.V3(0, 0, 0), math3d.V3(1, 1, 1))
	c := a.Clone()
	a.Append(NewGrid(1, 1))

	if a.VertexCount() != 8+8 || len(a.Lines) != 4 {
		t.Fatalf("after Append: %d vertices, %d lines", a.VertexCount(), len(a.Lines))
	}
	if a.Lines[0] != [2]int{8, 9} {
		t.Errorf("appended line = %v, want offset indices", a.Lines[0])
	}
	if c.VertexCount() != 8 || len(c.Lines) != 0 {
		t.Error("Clone shares storage with the original")
	}
}
