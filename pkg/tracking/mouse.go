package tracking

import (
	"math"

	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/math3d"
)

// Limits of the simulated head.
const (
	MinFocusDistance   = 0.35
	MaxFocusDistance   = 1.2
	ConeHalfAngleDeg   = 35.0
	dragPixelsPerMeter = 1000.0
)

// MouseTracker simulates a viewer from pointer input when no tracking
// hardware is present. The head orbits the display center: the wheel
// changes its distance and a drag moves it inside a cone around the axis
// that rises out of the panel.
//
// Pointer coordinates given to Drag grow rightward and upward.
type MouseTracker struct {
	geom   display.Geometry
	focus  math3d.Vec3
	origin math3d.Transform

	// center is the display-center frame; its +Z axis points from the
	// panel toward the default viewer.
	center    math3d.Pose
	centerInv math3d.Pose

	face FacePose

	dragging bool
	lastX    float64
	lastY    float64
}

// NewMouseTracker creates a mouse tracker for the given device, starting
// from the default face pose.
func NewMouseTracker(g display.Geometry) *MouseTracker {
	center := math3d.NewPose(g.Center, math3d.QuatEuler(-45, 180, 0))
	return &MouseTracker{
		geom:      g,
		focus:     g.Center,
		origin:    math3d.IdentityTransform(),
		center:    center,
		centerInv: center.Inverse(),
		face:      DefaultFacePose(g),
	}
}

// Reset returns the head to the default pose.
func (m *MouseTracker) Reset() {
	m.face = DefaultFacePose(m.geom)
	m.dragging = false
}

// Distance returns the current focus-to-head distance.
func (m *MouseTracker) Distance() float64 {
	return m.face.Head.Position.Distance(m.focus)
}

// Zoom scales the focus-to-head distance by 1-scroll. Steps that would
// leave the allowed distance range are ignored. It reports whether the head
// moved.
func (m *MouseTracker) Zoom(scroll float64) bool {
	offset := m.face.Head.Position.Sub(m.focus).Scale(1 - scroll)
	d := offset.Len()
	if d <= MinFocusDistance || d >= MaxFocusDistance {
		return false
	}
	m.face.Head.Position = m.focus.Add(offset)
	return true
}

// BeginDrag records the pointer position at the start of a drag.
func (m *MouseTracker) BeginDrag(x, y float64) {
	m.dragging = true
	m.lastX, m.lastY = x, y
}

// EndDrag stops the current drag.
func (m *MouseTracker) EndDrag() {
	m.dragging = false
}

// Dragging reports whether a drag is in progress.
func (m *MouseTracker) Dragging() bool {
	return m.dragging
}

// Drag moves the head by the pointer motion since the last call. Motion
// that would leave the cone slides along it instead.
func (m *MouseTracker) Drag(x, y float64) {
	if !m.dragging {
		m.BeginDrag(x, y)
		return
	}
	diff := math3d.V2(x-m.lastX, y-m.lastY)
	m.lastX, m.lastY = x, y
	if diff.Len() <= 1e-5 {
		return
	}
	diff = diff.Scale(1 / dragPixelsPerMeter)

	dist := m.Distance()
	p := m.centerInv.Matrix().MulVec3(m.face.Head.Position)

	moved := math3d.V3(p.X+diff.X, p.Y+diff.Y, p.Z)
	if math3d.Forward().Angle(moved) > ConeHalfAngleDeg {
		tangent := math3d.V2(-p.Y, p.X).Normalize()
		if diff.Angle(tangent) > 90 {
			tangent = tangent.Negate()
		}
		diff = tangent.Scale(tangent.Dot(diff))
	}
	p.X += diff.X
	p.Y += diff.Y

	coneRadius := dist * math.Sin(ConeHalfAngleDeg*math.Pi/180)
	if r := p.XY().Len(); r > coneRadius {
		p.X *= coneRadius / r
		p.Y *= coneRadius / r
	}
	p.Z = math.Sqrt(math.Max(0, dist*dist-p.XY().Len()*p.XY().Len()))

	m.face.Head.Position = m.center.Matrix().MulVec3(p)
}

// Update implements Tracker. The head is turned toward the focus point and
// the eyes rederived.
func (m *MouseTracker) Update(origin math3d.Transform) {
	m.origin = origin
	head := m.face.Head
	head.Rotation = math3d.LookRotation(m.focus.Sub(head.Position), math3d.Up())
	m.face.UpdateWithHead(head, m.focus)
}

// FacePose implements Tracker. It never fails.
func (m *MouseTracker) FacePose() (FacePose, Status) {
	return m.face.TransformedBy(m.origin), StatusSuccess
}

// Projection implements Tracker. The frustum is symmetric and just wide
// enough to see every display corner from the head.
func (m *MouseTracker) Projection(near, far float64) (FaceProjection, Status) {
	head := m.face.Head.Position
	toCenter := m.focus.Sub(head)

	var maxAngle float64
	for _, c := range m.geom.Corners() {
		if a := toCenter.Angle(c.Sub(head)); a > maxAngle {
			maxAngle = a
		}
	}
	fov := 2 * maxAngle * math.Pi / 180
	return Uniform(math3d.Perspective(fov, 1, near, far)), StatusSuccess
}
