package vec

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
)

// stubVector is a minimal Vector over int64 elements used by engine tests.
type stubVector struct {
	kind Kind
	data []int64
}

func (v *stubVector) Descriptor() Descriptor { return Descriptor{Kind: v.kind} }
func (v *stubVector) Len() int               { return len(v.data) }
func (v *stubVector) Zero() Vector           { return &stubVector{kind: v.kind} }

func (v *stubVector) Append(other Vector) (Vector, error) {
	o, ok := other.(*stubVector)
	if !ok || o.kind != v.kind {
		return nil, fmt.Errorf("append: kind mismatch")
	}
	data := make([]int64, 0, len(v.data)+len(o.data))
	data = append(data, v.data...)
	data = append(data, o.data...)
	return &stubVector{kind: v.kind, data: data}, nil
}

// stubKinds is a throwaway kind family registered under fresh uuid-suffixed
// tags, so every test gets its own slice of the process-wide tables:
//
//	small — no canonical form; coerces up to big
//	big   — canonical form over int64 slots
//	raw   — only a canonical form, no casts at all
//	alien — a bare tag with no registrations
type stubKinds struct {
	small Kind
	big   Kind
	raw   Kind
	alien Kind
}

func (k stubKinds) smallType() Descriptor { return Descriptor{Kind: k.small} }
func (k stubKinds) bigType() Descriptor   { return Descriptor{Kind: k.big} }
func (k stubKinds) rawType() Descriptor   { return Descriptor{Kind: k.raw} }
func (k stubKinds) alienType() Descriptor { return Descriptor{Kind: k.alien} }

// newStubKinds registers the stub family and returns its tags.
//
// small holds values in [-100, 100]; casting big to small clamps out-of-range
// values and flags their positions, which gives the tests a real lossy path.
func newStubKinds(t *testing.T) stubKinds {
	t.Helper()
	id := uuid.NewString()[:8]
	k := stubKinds{
		small: Kind("small-" + id),
		big:   Kind("big-" + id),
		raw:   Kind("raw-" + id),
		alien: Kind("alien-" + id),
	}

	same := func(a, b Descriptor, opts Options) (Descriptor, error) { return a, nil }
	MustRegisterCoercion(k.small, k.small, same)
	MustRegisterCoercion(k.big, k.big, same)
	MustRegisterCoercion(k.raw, k.raw, same)
	// Registered in one order only; the reversed order must be served by
	// the engine's fallback.
	MustRegisterCoercion(k.small, k.big, func(a, b Descriptor, opts Options) (Descriptor, error) {
		return k.bigType(), nil
	})

	copyCast := func(v Vector, target Descriptor) (Vector, LossySet, error) {
		sv := v.(*stubVector)
		out := &stubVector{kind: target.Kind, data: append([]int64(nil), sv.data...)}
		return out, nil, nil
	}
	MustRegisterCast(k.small, k.small, copyCast)
	MustRegisterCast(k.big, k.big, copyCast)
	MustRegisterCast(k.small, k.big, copyCast)
	MustRegisterCast(k.big, k.small, func(v Vector, target Descriptor) (Vector, LossySet, error) {
		sv := v.(*stubVector)
		out := &stubVector{kind: target.Kind, data: make([]int64, len(sv.data))}
		var lossy LossySet
		for i, x := range sv.data {
			switch {
			case x > 100:
				out.data[i] = 100
				lossy = append(lossy, i)
			case x < -100:
				out.data[i] = -100
				lossy = append(lossy, i)
			default:
				out.data[i] = x
			}
		}
		return out, lossy, nil
	})

	canon := func(kind Kind) CanonFuncs {
		return CanonFuncs{
			Slots: func(v Vector) ([]Slot, error) {
				sv := v.(*stubVector)
				slots := make([]Slot, len(sv.data))
				for i, x := range sv.data {
					slots[i] = x
				}
				return slots, nil
			},
			FromSlots: func(target Descriptor, slots []Slot) (Vector, LossySet, error) {
				out := &stubVector{kind: target.Kind, data: make([]int64, len(slots))}
				for i, s := range slots {
					x, ok := s.(int64)
					if !ok {
						return nil, nil, fmt.Errorf("slot %d is %T, want int64", i, s)
					}
					out.data[i] = x
				}
				return out, nil, nil
			},
		}
	}
	MustRegisterCanon(k.big, canon(k.big))
	MustRegisterCanon(k.raw, canon(k.raw))

	return k
}

func stubOf(k Kind, data ...int64) *stubVector {
	return &stubVector{kind: k, data: data}
}

func sameInts(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
