// Package hold implements the use-last-good-value policy shared by every
// per-frame stage: a stage offers its fresh result together with whether it
// is usable, and gets back what the consumer should actually apply.
package hold

// Value keeps the last accepted value of a stage. The zero Value has no
// accepted value and holds the zero T; use New to seed a default.
//
// A Value is not safe for concurrent use. Each eye owns its own.
type Value[T any] struct {
	last T
	set  bool
}

// New returns a Value seeded with initial. The seed counts as accepted.
func New[T any](initial T) *Value[T] {
	return &Value[T]{last: initial, set: true}
}

// Offer applies the policy. When ok is true next is stored and returned
// with fresh=true. Otherwise the previously accepted value is returned
// unchanged with fresh=false.
func (v *Value[T]) Offer(next T, ok bool) (use T, fresh bool) {
	if ok {
		v.last = next
		v.set = true
		return next, true
	}
	return v.last, false
}

// Last returns the last accepted value and whether one exists.
func (v *Value[T]) Last() (T, bool) {
	return v.last, v.set
}

// Reset forgets the held value and stores initial in its place.
func (v *Value[T]) Reset(initial T) {
	v.last = initial
	v.set = true
}
