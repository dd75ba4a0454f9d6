package vec

// Slot is one element of a vector in canonical form. A slot holds exactly
// one of:
//
//	nil        — no value at this position
//	bool       — a truth value
//	int64      — an integral number
//	float64    — a floating-point number
//	string     — text
//	time.Time  — an instant
//	Vector     — a nested vector
//
// Kinds decompose to and rebuild from slots so that any two kinds with a
// canonical form gain a generic cast path without knowing about each other.
type Slot any

// CanonFuncs is the canonical-form half of a kind's registration.
//
// Slots decomposes a value of the kind into one slot per element.
// FromSlots rebuilds a value of the given descriptor from slots, reporting
// the positions it could not represent exactly; it returns an error when a
// slot's shape is not representable in the kind at all.
type CanonFuncs struct {
	Slots     func(v Vector) ([]Slot, error)
	FromSlots func(target Descriptor, slots []Slot) (Vector, LossySet, error)
}
