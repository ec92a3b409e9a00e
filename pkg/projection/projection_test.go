package projection

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/math3d"
)

// lookingAt returns an eye pose at pos turned toward target.
func lookingAt(pos, target math3d.Vec3) math3d.Pose {
	return math3d.NewPose(pos, math3d.LookRotation(target.Sub(pos), math3d.Up()))
}

func TestBuildEyeProjectionValid(t *testing.T) {
	g := display.Default()
	origins := []math3d.Transform{
		math3d.IdentityTransform(),
		{Position: math3d.V3(0, 1, 2), Rotation: math3d.QuatEuler(-10, 30, 0), Scale: 3},
	}
	eyes := []math3d.Vec3{
		math3d.V3(0, 0.2, -0.3),
		math3d.V3(-0.0325, 0.2, -0.3),
		math3d.V3(0.15, 0.35, -0.5),
		math3d.V3(-0.2, 0.05, -0.25),
		math3d.V3(0, 0.6, -0.9),
	}

	for _, origin := range origins {
		for _, local := range eyes {
			pos := origin.TransformPoint(local)
			eye := lookingAt(pos, origin.TransformPoint(g.Center))

			m, err := BuildEyeProjection(eye, g, 0.01, 100, origin)
			if err != nil {
				t.Fatalf("eye %v: %v", local, err)
			}
			if m.HasNaNOrInf() {
				t.Errorf("eye %v: non-finite matrix", local)
			}
			if a := Aspect(m); !(a > 0) {
				t.Errorf("eye %v: aspect = %v", local, a)
			}
		}
	}
}

func TestLensShiftMapsUprightScreen(t *testing.T) {
	// An upright panel seen head-on fills the viewport exactly.
	g := display.FromBox(0.4, 0.25, 0)
	eye := math3d.NewPose(math3d.V3(0.05, 0.1, -0.6), math3d.QuatIdent())
	view := View(eye)
	edges := display.PlaceEdges(g, math3d.IdentityTransform())

	m, err := LensShift(view, edges, 0.1, 50)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]struct {
		p    math3d.Vec3
		x, y float64
	}{
		"left bottom":  {edges.LeftBottom, -1, -1},
		"right bottom": {edges.RightBottom, 1, -1},
		"left up":      {edges.LeftUp, -1, 1},
		"right up":     {edges.RightUp, 1, 1},
	}
	vp := m.Mul(view)
	for name, w := range want {
		ndc := vp.MulVec4(math3d.V4FromV3(w.p, 1)).PerspectiveDivide()
		if math.Abs(ndc.X-w.x) > 1e-9 || math.Abs(ndc.Y-w.y) > 1e-9 {
			t.Errorf("%s -> (%v, %v), want (%v, %v)", name, ndc.X, ndc.Y, w.x, w.y)
		}
	}

	// Same frustum as glFrustum on the near-plane extents.
	ref := mgl64.Frustum(-0.25/6, 0.15/6, -0.1/6, 0.15/6, 0.1, 50)
	for i := range m {
		if math.Abs(m[i]-ref[i]) > 1e-9 {
			t.Errorf("m[%d] = %v, want %v", i, m[i], ref[i])
		}
	}
}

func TestLensShiftDegenerate(t *testing.T) {
	g := display.Default()
	edges := display.PlaceEdges(g, math3d.IdentityTransform())

	tests := []struct {
		name      string
		eye       math3d.Pose
		near, far float64
	}{
		{"eye behind screen", math3d.NewPose(math3d.V3(0, 0.05, 1), math3d.QuatIdent()), 0.1, 10},
		{"eye on bottom edge plane", math3d.NewPose(math3d.V3(0, 0, 0), math3d.QuatIdent()), 0.1, 10},
		{"zero near", lookingAt(math3d.V3(0, 0.2, -0.3), g.Center), 0, 10},
		{"far before near", lookingAt(math3d.V3(0, 0.2, -0.3), g.Center), 1, 0.5},
		{"nan eye", math3d.NewPose(math3d.V3(math.NaN(), 0, -1), math3d.QuatIdent()), 0.1, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LensShift(View(tc.eye), edges, tc.near, tc.far)
			if !errors.Is(err, ErrDegenerateProjection) {
				t.Errorf("err = %v, want ErrDegenerateProjection", err)
			}
		})
	}

	// A zero-width screen collapses the frustum.
	flat := display.PlaceEdges(display.FromBox(0, 0.2, 0), math3d.IdentityTransform())
	eye := math3d.NewPose(math3d.V3(0, 0.1, -0.5), math3d.QuatIdent())
	if _, err := LensShift(View(eye), flat, 0.1, 10); !errors.Is(err, ErrDegenerateProjection) {
		t.Errorf("zero width: err = %v", err)
	}
}

func TestFOVAspectRoundTrip(t *testing.T) {
	tests := []struct {
		fov, aspect float64
	}{
		{40, 16.0 / 9.0},
		{60, 1},
		{90, 4.0 / 3.0},
		{10, 0.5},
		{120, 2.35},
	}

	for _, tc := range tests {
		m := math3d.Perspective(tc.fov*math.Pi/180, tc.aspect, 0.3, 100)
		if got := VerticalFOV(m); math.Abs(got-tc.fov) > 1e-4 {
			t.Errorf("fov(%v) = %v", tc.fov, got)
		}
		if got := Aspect(m); math.Abs(got-tc.aspect) > 1e-4 {
			t.Errorf("aspect(%v) = %v", tc.aspect, got)
		}

		ref := mgl64.Perspective(mgl64.DegToRad(tc.fov), tc.aspect, 0.3, 100)
		for i := range m {
			if math.Abs(m[i]-ref[i]) > 1e-12 {
				t.Errorf("fov %v: m[%d] = %v, mgl64 %v", tc.fov, i, m[i], ref[i])
			}
		}

		p, err := NewParams(m)
		if err != nil {
			t.Fatal(err)
		}
		if p.FOV != VerticalFOV(m) || p.Aspect != Aspect(m) {
			t.Error("params disagree with accessors")
		}
	}
}

func TestValidate(t *testing.T) {
	bad := math3d.Identity()
	bad[5] = math.Inf(1)
	zero := math3d.Identity()
	zero[0] = 0

	for name, m := range map[string]math3d.Mat4{"inf": bad, "zero focal": zero, "empty": {}} {
		if err := Validate(m); !errors.Is(err, ErrDegenerateProjection) {
			t.Errorf("%s: err = %v", name, err)
		}
	}
	if err := Validate(math3d.Perspective(1, 1, 0.1, 10)); err != nil {
		t.Errorf("perspective rejected: %v", err)
	}
}

func TestClipPlanePlacement(t *testing.T) {
	g := display.Default()
	offsets := DefaultClipOffsets()
	s2 := math.Sqrt2 / 2

	tests := []struct {
		name       string
		plane      ClipPlane
		wantPoint  math3d.Vec3
		wantNormal math3d.Vec3
	}{
		{
			name:       "desk single",
			plane:      ClipPlane{Mount: display.MountDesk, ViewScale: 1, Offsets: offsets},
			wantPoint:  math3d.V3(-refHalfWidth, 0, -0.025),
			wantNormal: math3d.V3(0, 0, 1),
		},
		{
			name:       "desk multi",
			plane:      ClipPlane{Mount: display.MountDesk, Multi: true, ViewScale: 1, Offsets: offsets},
			wantPoint:  math3d.V3(-refHalfWidth, 0, display.ReferenceDepth-0.168),
			wantNormal: math3d.V3(0, 0, 1),
		},
		{
			name:       "wall single",
			plane:      ClipPlane{Mount: display.MountWall, ViewScale: 1, Offsets: offsets},
			wantPoint:  math3d.V3(-refHalfWidth, 0, -0.10545),
			wantNormal: math3d.V3(0, -s2, s2),
		},
		{
			name:       "desk view scale",
			plane:      ClipPlane{Mount: display.MountDesk, ViewScale: 2, Offsets: offsets},
			wantPoint:  math3d.V3(-2*refHalfWidth, 0, -0.05),
			wantNormal: math3d.V3(0, 0, 1),
		},
		{
			name:       "nonpositive view scale acts as 1",
			plane:      ClipPlane{Mount: display.MountDesk, ViewScale: -3, Offsets: offsets},
			wantPoint:  math3d.V3(-refHalfWidth, 0, -0.025),
			wantNormal: math3d.V3(0, 0, 1),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			point, normal := tc.plane.Plane(g, math3d.IdentityTransform())
			if point.Distance(tc.wantPoint) > 1e-9 {
				t.Errorf("point = %v, want %v", point, tc.wantPoint)
			}
			if normal.Distance(tc.wantNormal) > 1e-9 {
				t.Errorf("normal = %v, want %v", normal, tc.wantNormal)
			}
		})
	}
}

// refHalfWidth is half the reference panel width.
const refHalfWidth = display.ReferenceWidth / 2

func TestClipPlaneFollowsOrigin(t *testing.T) {
	g := display.Default()
	plane := ClipPlane{Mount: display.MountWall, ViewScale: 1, Offsets: DefaultClipOffsets()}
	origin := math3d.Transform{
		Position: math3d.V3(0, 1, 0),
		Rotation: display.MountWall.OriginRotation(0),
		Scale:    1,
	}
	_, normal := plane.Plane(g, origin)

	// The wall pitch cancels the plane rotation, leaving the plane facing
	// straight down the world z axis.
	if normal.Distance(math3d.Forward()) > 1e-9 {
		t.Errorf("normal = %v, want +z", normal)
	}
}

func TestObliqueNearPlane(t *testing.T) {
	g := display.Default()
	eye := lookingAt(math3d.V3(0.03, 0.25, -0.35), g.Center)
	origin := math3d.IdentityTransform()

	proj, err := BuildEyeProjection(eye, g, 0.01, 10, origin)
	if err != nil {
		t.Fatal(err)
	}
	view := View(eye)

	plane := ClipPlane{Mount: display.MountDesk, ViewScale: 1, Offsets: DefaultClipOffsets()}
	point, normal := plane.Plane(g, origin)

	m, err := Oblique(proj, view, point, normal)
	if err != nil {
		t.Fatal(err)
	}
	if m.HasNaNOrInf() {
		t.Fatal("non-finite oblique matrix")
	}

	// Rows other than the depth row are untouched.
	for _, r := range []int{0, 1, 3} {
		if m.Row(r) != proj.Row(r) {
			t.Errorf("row %d changed", r)
		}
	}

	// Points on the plane land on the near plane.
	u := normal.Cross(math3d.Right()).Normalize()
	v := normal.Cross(u).Normalize()
	vp := m.Mul(view)
	for _, off := range [][2]float64{{0, 0}, {0.05, 0}, {0, 0.05}, {-0.1, 0.03}, {0.12, -0.04}} {
		p := point.Add(u.Scale(off[0])).Add(v.Scale(off[1]))
		ndc := vp.MulVec4(math3d.V4FromV3(p, 1)).PerspectiveDivide()
		if math.Abs(ndc.Z+1) > 1e-9 {
			t.Errorf("plane point %v -> z = %v, want -1", p, ndc.Z)
		}
	}

	// The display center lies beyond the plane and stays in depth range.
	ndc := vp.MulVec4(math3d.V4FromV3(g.Center, 1)).PerspectiveDivide()
	if ndc.Z <= -1 || ndc.Z >= 1 {
		t.Errorf("center depth = %v, want inside (-1, 1)", ndc.Z)
	}
}

func TestObliqueFarCorner(t *testing.T) {
	proj := math3d.Frustum(-0.1, 0.08, -0.05, 0.07, 0.1, 20)
	c := math3d.V4(0.1, -0.2, -1, -0.5)

	m, err := obliqueFromPlane(proj, c)
	if err != nil {
		t.Fatal(err)
	}
	q := proj.Inverse().MulVec4(math3d.V4(1, -1, 1, 1))
	clip := m.MulVec4(q)
	if math.Abs(clip.Z/clip.W-1) > 1e-9 {
		t.Errorf("far corner z = %v, want 1", clip.Z/clip.W)
	}

	if _, err := obliqueFromPlane(proj, math3d.V4(0, 0, 0, 0)); !errors.Is(err, ErrDegenerateProjection) {
		t.Errorf("zero plane: err = %v", err)
	}
}

func TestHolder(t *testing.T) {
	seed := math3d.Perspective(1, 1.5, 0.1, 10)
	h, err := NewHolder(seed)
	if err != nil {
		t.Fatalf("NewHolder: %v", err)
	}

	good := math3d.Perspective(0.8, 2, 0.1, 10)
	p, fresh := h.Apply(good, nil)
	if !fresh || p.Matrix != good {
		t.Fatalf("good matrix not applied: fresh=%v", fresh)
	}
	if math.Abs(p.Aspect-2) > 1e-12 {
		t.Errorf("aspect = %v", p.Aspect)
	}

	nan := good
	nan[10] = math.NaN()
	p, fresh = h.Apply(nan, nil)
	if fresh || p.Matrix != good {
		t.Error("NaN matrix replaced the held one")
	}

	p, fresh = h.Apply(math3d.Identity(), ErrDegenerateProjection)
	if fresh || p.Matrix != good {
		t.Error("failed build replaced the held one")
	}
	if h.Current().Matrix != good {
		t.Error("Current disagrees")
	}
}

func TestNewHolderInvalidSeed(t *testing.T) {
	var zero math3d.Mat4
	h, err := NewHolder(zero)
	if !errors.Is(err, ErrDegenerateProjection) {
		t.Errorf("err = %v, want ErrDegenerateProjection", err)
	}
	if h != nil {
		t.Error("holder returned for invalid seed")
	}
}

func TestFromHint(t *testing.T) {
	hint := math3d.Perspective(1, 1, 0.1, 10)
	local := math3d.Perspective(0.5, 1, 0.1, 10)
	nan := hint
	nan[0] = math.NaN()

	tests := []struct {
		name     string
		hint     math3d.Mat4
		hintOK   bool
		localErr error
		want     math3d.Mat4
		wantErr  bool
	}{
		{"hint wins", hint, true, nil, hint, false},
		{"hint failed", hint, false, nil, local, false},
		{"hint nan", nan, true, nil, local, false},
		{"both failed", hint, false, ErrDegenerateProjection, math3d.Mat4{}, true},
		{"hint rescues local", hint, true, ErrDegenerateProjection, hint, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromHint(tc.hint, tc.hintOK, local, tc.localErr)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v", err)
			}
			if !tc.wantErr && got != tc.want {
				t.Error("wrong matrix chosen")
			}
		})
	}
}
