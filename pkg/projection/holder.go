package projection

import (
	"fmt"

	"github.com/taigrr/lenticular/pkg/hold"
	"github.com/taigrr/lenticular/pkg/math3d"
)

// Holder keeps the last valid projection of one camera.
type Holder struct {
	v *hold.Value[Params]
}

// NewHolder creates a Holder seeded with initial.
func NewHolder(initial math3d.Mat4) (*Holder, error) {
	p, err := NewParams(initial)
	if err != nil {
		return nil, fmt.Errorf("seed projection: %w", err)
	}
	return &Holder{v: hold.New(p)}, nil
}

// Apply returns the projection to use this frame. A matrix that failed to
// build or fails validation is discarded and the previous one returned
// with fresh=false.
func (h *Holder) Apply(m math3d.Mat4, err error) (p Params, fresh bool) {
	if err == nil {
		p, err = NewParams(m)
	}
	return h.v.Offer(p, err == nil)
}

// Current returns the held projection.
func (h *Holder) Current() Params {
	p, _ := h.v.Last()
	return p
}

// FromHint picks between a runtime-provided projection hint and the
// locally computed lens shift frustum: the hint wins when it is usable.
func FromHint(hint math3d.Mat4, hintOK bool, local math3d.Mat4, localErr error) (math3d.Mat4, error) {
	if hintOK && Validate(hint) == nil {
		return hint, nil
	}
	if localErr != nil {
		return math3d.Mat4{}, localErr
	}
	return local, nil
}
