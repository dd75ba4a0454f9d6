package vec

import "fmt"

// Vector is the contract every vector value satisfies. The engine treats a
// vector as its descriptor plus a sequence of elements; it never inspects
// elements directly. Element access for generic conversion goes through the
// canonical form registered per kind (see RegisterCanon).
//
// Vectors are immutable: operations return new instances and Append must not
// modify its receiver or argument.
type Vector interface {
	// Descriptor returns the full type identity of the value.
	Descriptor() Descriptor
	// Len returns the number of elements.
	Len() int
	// Zero returns the empty vector of the same descriptor.
	Zero() Vector
	// Append returns a new vector holding the receiver's elements followed
	// by other's. The argument must already have the receiver's descriptor;
	// Append performs no conversion.
	Append(other Vector) (Vector, error)
}

// nullVector is the only value of the empty type. It has no elements.
type nullVector struct{}

// Null returns the empty-type vector. It is the result of combining zero
// inputs and the identity probe of common-type resolution.
func Null() Vector {
	return nullVector{}
}

func (nullVector) Descriptor() Descriptor { return NullType() }
func (nullVector) Len() int               { return 0 }
func (nullVector) Zero() Vector           { return nullVector{} }

func (nullVector) Append(other Vector) (Vector, error) {
	if !other.Descriptor().IsNull() {
		return nil, NewIncompatibleCast(other.Descriptor(), NullType())
	}
	return nullVector{}, nil
}

// The null kind's canonical form belongs to the engine: decomposing yields
// no slots, and only an empty slot sequence rebuilds into the null vector.
// This is what lets CastTo produce an empty value of any kind from Null().
func init() {
	MustRegisterCanon(KindNull, CanonFuncs{
		Slots: func(Vector) ([]Slot, error) { return nil, nil },
		FromSlots: func(_ Descriptor, slots []Slot) (Vector, LossySet, error) {
			if len(slots) != 0 {
				return nil, nil, fmt.Errorf("the null vector has no elements")
			}
			return nullVector{}, nil, nil
		},
	})
}
