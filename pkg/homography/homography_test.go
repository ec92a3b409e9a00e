package homography

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/math3d"
	"github.com/taigrr/lenticular/pkg/projection"
)

func TestRoundTrip(t *testing.T) {
	quads := [][4]math3d.Vec2{
		{math3d.V2(0, 0), math3d.V2(0, 1), math3d.V2(1, 0), math3d.V2(1, 1)},
		{math3d.V2(0.1, 0.2), math3d.V2(0.15, 0.8), math3d.V2(0.9, 0.1), math3d.V2(0.85, 0.95)},
		{math3d.V2(0.3, 0.1), math3d.V2(0.2, 0.9), math3d.V2(0.7, 0.15), math3d.V2(0.95, 0.7)},
		{math3d.V2(-0.2, -0.1), math3d.V2(0.05, 1.3), math3d.V2(1.1, 0.05), math3d.V2(0.9, 1.05)},
	}
	unit := [4]math3d.Vec2{math3d.V2(0, 0), math3d.V2(0, 1), math3d.V2(1, 0), math3d.V2(1, 1)}

	for qi, q := range quads {
		p, err := NewPair(q[0], q[1], q[2], q[3])
		if err != nil {
			t.Fatalf("quad %d: %v", qi, err)
		}

		prod := p.Inv.Mul(p.H)
		id := math3d.Identity3()
		for i := range prod {
			if math.Abs(prod[i]-id[i]) > 1e-5 {
				t.Errorf("quad %d: (Hinv*H)[%d] = %v", qi, i, prod[i])
			}
		}

		for i, u := range unit {
			x, y := Apply(p.H, u.X, u.Y)
			if math.Abs(x-q[i].X) > 1e-9 || math.Abs(y-q[i].Y) > 1e-9 {
				t.Errorf("quad %d: H(%v) = (%v, %v), want %v", qi, u, x, y, q[i])
			}
			ux, uy := Apply(p.Inv, q[i].X, q[i].Y)
			if math.Abs(ux-u.X) > 1e-9 || math.Abs(uy-u.Y) > 1e-9 {
				t.Errorf("quad %d: Hinv(%v) = (%v, %v), want %v", qi, q[i], ux, uy, u)
			}
		}
		if p.H[8] != 1 {
			t.Errorf("quad %d: h33 = %v", qi, p.H[8])
		}
	}
}

func TestDegenerate(t *testing.T) {
	tests := []struct {
		name string
		q    [4]math3d.Vec2
	}{
		{"collinear diagonal", [4]math3d.Vec2{math3d.V2(0, 0), math3d.V2(1, 1), math3d.V2(2, 2), math3d.V2(3, 3)}},
		{"collinear horizontal", [4]math3d.Vec2{math3d.V2(0, 0.5), math3d.V2(0.2, 0.5), math3d.V2(0.6, 0.5), math3d.V2(0.9, 0.5)}},
		{"all coincident", [4]math3d.Vec2{math3d.V2(0.4, 0.4), math3d.V2(0.4, 0.4), math3d.V2(0.4, 0.4), math3d.V2(0.4, 0.4)}},
		{"nan corner", [4]math3d.Vec2{math3d.V2(math.NaN(), 0), math3d.V2(0, 1), math3d.V2(1, 0), math3d.V2(1, 1)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, err := Compute(tc.q[0], tc.q[1], tc.q[2], tc.q[3])
			if !errors.Is(err, ErrDegenerateHomography) {
				t.Fatalf("err = %v, want ErrDegenerateHomography", err)
			}
			if h.HasNaNOrInf() {
				t.Error("degenerate result leaked non-finite values")
			}
		})
	}

	if _, err := Inverse(math3d.Mat3{1, 2, 3, 2, 4, 6, 0, 0, 1}); !errors.Is(err, ErrDegenerateHomography) {
		t.Errorf("singular inverse: err = %v", err)
	}
}

func TestParamsOrder(t *testing.T) {
	p, err := NewPair(math3d.V2(0.1, 0.2), math3d.V2(0.15, 0.8), math3d.V2(0.9, 0.1), math3d.V2(0.85, 0.95))
	if err != nil {
		t.Fatal(err)
	}
	hom, inv := p.Params()
	for i := range 9 {
		if hom[i] != float32(p.Inv[i]) {
			t.Errorf("_Homography[%d] = %v, want inverse %v", i, hom[i], p.Inv[i])
		}
		if inv[i] != float32(p.H[i]) {
			t.Errorf("_InvHomography[%d] = %v, want forward %v", i, inv[i], p.H[i])
		}
	}
}

func eyeCamera(t *testing.T, g display.Geometry, pos math3d.Vec3) math3d.Mat4 {
	t.Helper()
	eye := math3d.NewPose(pos, math3d.LookRotation(g.Center.Sub(pos), math3d.Up()))
	proj := math3d.Perspective(50*math.Pi/180, 16.0/9.0, 0.05, 10)
	return proj.Mul(projection.View(eye))
}

func TestFromCamera(t *testing.T) {
	g := display.Default()
	edges := display.PlaceEdges(g, math3d.IdentityTransform())
	vp := eyeCamera(t, g, math3d.V3(0.05, 0.25, -0.4))

	p, err := FromCamera(edges, vp)
	if err != nil {
		t.Fatal(err)
	}

	corners := []struct {
		u, v float64
		w    math3d.Vec3
	}{
		{0, 0, edges.LeftBottom},
		{0, 1, edges.LeftUp},
		{1, 0, edges.RightBottom},
		{1, 1, edges.RightUp},
	}
	for _, c := range corners {
		ndc := vp.MulVec4(math3d.V4FromV3(c.w, 1)).PerspectiveDivide()
		wantX, wantY := (ndc.X+1)/2, (ndc.Y+1)/2
		x, y := Apply(p.H, c.u, c.v)
		if math.Abs(x-wantX) > 1e-9 || math.Abs(y-wantY) > 1e-9 {
			t.Errorf("corner (%v,%v) -> (%v,%v), want (%v,%v)", c.u, c.v, x, y, wantX, wantY)
		}
	}
}

func TestHolderKeepsLastPair(t *testing.T) {
	g := display.Default()
	edges := display.PlaceEdges(g, math3d.IdentityTransform())
	h := NewHolder()

	if h.Current() != Identity() {
		t.Fatal("holder does not start at identity")
	}

	good, err := h.Update(edges, eyeCamera(t, g, math3d.V3(0, 0.2, -0.3)))
	if err != nil {
		t.Fatal(err)
	}

	// Viewed edge-on, the panel collapses to a line.
	edgeOn := eyeCamera(t, g, math3d.V3(0, 0, -0.5))
	flat := display.PlaceEdges(display.FromBox(g.Width, 0, 0), math3d.IdentityTransform())
	held, err := h.Update(flat, edgeOn)
	if !errors.Is(err, ErrDegenerateHomography) {
		t.Fatalf("err = %v, want ErrDegenerateHomography", err)
	}
	if held != good {
		t.Error("degenerate frame replaced the held pair")
	}

	// Corners behind the camera are rejected too.
	behind := eyeCamera(t, g, math3d.V3(0, 0.2, -0.3))
	farEdges := display.PlaceEdges(g, math3d.Transform{Position: math3d.V3(0, 0, -5), Rotation: math3d.QuatIdent(), Scale: 1})
	if held, err = h.Update(farEdges, behind); !errors.Is(err, ErrDegenerateHomography) || held != good {
		t.Errorf("behind camera: err = %v", err)
	}
	if h.Current() != good {
		t.Error("Current disagrees")
	}
}
