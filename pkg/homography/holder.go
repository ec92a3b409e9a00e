package homography

import (
	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/hold"
	"github.com/taigrr/lenticular/pkg/math3d"
)

// Holder keeps the last good homography pair of one eye. It starts at the
// identity pair.
type Holder struct {
	v *hold.Value[Pair]
}

// NewHolder creates a Holder.
func NewHolder() *Holder {
	return &Holder{v: hold.New(Identity())}
}

// Update computes the pair for this frame. On a degenerate configuration
// the previous pair is kept and the error returned alongside it.
func (h *Holder) Update(edges display.Edges, viewProj math3d.Mat4) (Pair, error) {
	p, err := FromCamera(edges, viewProj)
	use, _ := h.v.Offer(p, err == nil)
	return use, err
}

// Current returns the held pair.
func (h *Holder) Current() Pair {
	p, _ := h.v.Last()
	return p
}
