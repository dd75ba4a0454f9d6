package kinds

import "github.com/funvibe/funvec/pkg/vec"

// List is a vector whose elements are themselves vectors, with no constraint
// tying the element types together.
type List struct {
	items []vec.Vector
}

// NewList returns a list vector holding a copy of items. Elements are
// vectors and therefore immutable; the copy is of the slice only.
func NewList(items []vec.Vector) *List {
	return &List{items: append([]vec.Vector(nil), items...)}
}

func (v *List) Descriptor() vec.Descriptor { return ListType() }
func (v *List) Len() int                   { return len(v.items) }
func (v *List) Zero() vec.Vector           { return &List{} }

// Items returns a copy of the elements.
func (v *List) Items() []vec.Vector { return append([]vec.Vector(nil), v.items...) }

// Item returns the element at position i.
func (v *List) Item(i int) vec.Vector { return v.items[i] }

func (v *List) Append(other vec.Vector) (vec.Vector, error) {
	o, ok := other.(*List)
	if !ok {
		return nil, appendMismatch(v.Descriptor(), other.Descriptor())
	}
	out := make([]vec.Vector, 0, len(v.items)+len(o.items))
	out = append(out, v.items...)
	out = append(out, o.items...)
	return &List{items: out}, nil
}
