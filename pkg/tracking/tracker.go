package tracking

import (
	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/hold"
	"github.com/taigrr/lenticular/pkg/math3d"
)

// Tracker produces head and eye poses each frame. Update is called once per
// frame before FacePose and Projection.
type Tracker interface {
	// Update latches the scene origin and refreshes input for this frame.
	Update(origin math3d.Transform)
	// FacePose returns the face pose placed through the origin. It always
	// returns a usable pose; a non-OK status means it was carried over.
	FacePose() (FacePose, Status)
	// Projection returns projection hints for the given clip planes.
	Projection(near, far float64) (FaceProjection, Status)
}

// Source is the tracking side of a runtime session.
type Source interface {
	// Refresh latches the runtime's latest tracking result.
	Refresh()
	HeadPose() (head, left, right math3d.Pose, status Status)
	ProjectionHint(near, far float64) (FaceProjection, Status)
}

// RuntimeTracker reads poses from a runtime Source and carries the last
// good result over transient tracking loss.
type RuntimeTracker struct {
	src    Source
	origin math3d.Transform

	pose *hold.Value[FacePose]
	proj *hold.Value[FaceProjection]
}

// NewRuntimeTracker creates a tracker seeded with the default face pose and
// projection for the given device.
func NewRuntimeTracker(src Source, info display.Info) *RuntimeTracker {
	return &RuntimeTracker{
		src:    src,
		origin: math3d.IdentityTransform(),
		pose:   hold.New(DefaultFacePose(info.Geometry)),
		proj:   hold.New(DefaultProjection(info.Screen)),
	}
}

// Update implements Tracker.
func (t *RuntimeTracker) Update(origin math3d.Transform) {
	t.origin = origin
	t.src.Refresh()
}

// FacePose implements Tracker.
func (t *RuntimeTracker) FacePose() (FacePose, Status) {
	head, left, right, status := t.src.HeadPose()
	next := FacePose{Head: head, Left: left, Right: right}
	if status == StatusSuccess && !next.Valid() {
		status = StatusPoseInvalid
	}
	pose, _ := t.pose.Offer(next, status.OK())
	return pose.TransformedBy(t.origin), status
}

// Projection implements Tracker.
func (t *RuntimeTracker) Projection(near, far float64) (FaceProjection, Status) {
	next, status := t.src.ProjectionHint(near, far)
	if status == StatusSuccess && !next.Valid() {
		status = StatusPoseInvalid
	}
	proj, _ := t.proj.Offer(next, status.OK())
	return proj, status
}
