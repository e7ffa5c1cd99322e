// Package record defines the generic probability record that the rest of
// probledger is built around: an event name paired with a floating-point
// value. The type is a plain value holder — it performs no range
// validation and attaches no statistical meaning to the number it carries.
package record

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// Record pairs an event name with a probability value. The zero value is
// ready to use: both fields start at their type's zero.
//
// The value is never validated or clamped. Callers that care about the
// conventional [0,1] range (or about NaN) enforce it themselves.
type Record[E cmp.Ordered, V constraints.Float] struct {
	eventName E
	value     V
}

// New creates a record for the given event name and value.
func New[E cmp.Ordered, V constraints.Float](name E, value V) Record[E, V] {
	return Record[E, V]{eventName: name, value: value}
}

// EventName returns a copy of the event name.
func (r Record[E, V]) EventName() E {
	return r.eventName
}

// Value returns a copy of the probability value.
func (r Record[E, V]) Value() V {
	return r.value
}

// SetEventName replaces the event name.
func (r *Record[E, V]) SetEventName(name E) {
	r.eventName = name
}

// SetValue replaces the probability value.
func (r *Record[E, V]) SetValue(value V) {
	r.value = value
}

// ChangeValue adds delta to the stored value. The result is stored as-is,
// even when it leaves [0,1] or becomes NaN.
func (r *Record[E, V]) ChangeValue(delta V) {
	r.value += delta
}

// Swap exchanges both fields with other. Not safe for concurrent use.
func (r *Record[E, V]) Swap(other *Record[E, V]) {
	r.eventName, other.eventName = other.eventName, r.eventName
	r.value, other.value = other.value, r.value
}

// Compare orders records lexicographically: event name first, then value.
// It returns -1, 0, or +1 following the cmp.Compare convention.
func (r Record[E, V]) Compare(other Record[E, V]) int {
	if c := cmp.Compare(r.eventName, other.eventName); c != 0 {
		return c
	}
	return cmp.Compare(r.value, other.value)
}

// Equal reports whether both records hold the same name and value.
func (r Record[E, V]) Equal(other Record[E, V]) bool {
	return r.Compare(other) == 0
}

// Less reports whether r orders before other.
func (r Record[E, V]) Less(other Record[E, V]) bool {
	return r.Compare(other) < 0
}
