package kinds

import (
	"fmt"

	"github.com/funvibe/funvec/pkg/vec"
)

// Logical is a vector of truth values.
type Logical struct {
	values []bool
}

// NewLogical returns a logical vector holding a copy of values.
func NewLogical(values []bool) *Logical {
	return &Logical{values: append([]bool(nil), values...)}
}

func (v *Logical) Descriptor() vec.Descriptor { return LogicalType() }
func (v *Logical) Len() int                   { return len(v.values) }
func (v *Logical) Zero() vec.Vector           { return &Logical{} }

// Bools returns a copy of the elements.
func (v *Logical) Bools() []bool { return append([]bool(nil), v.values...) }

func (v *Logical) Append(other vec.Vector) (vec.Vector, error) {
	o, ok := other.(*Logical)
	if !ok {
		return nil, appendMismatch(v.Descriptor(), other.Descriptor())
	}
	out := make([]bool, 0, len(v.values)+len(o.values))
	out = append(out, v.values...)
	out = append(out, o.values...)
	return &Logical{values: out}, nil
}

// Integer is a vector of 64-bit integers.
type Integer struct {
	values []int64
}

// NewInteger returns an integer vector holding a copy of values.
func NewInteger(values []int64) *Integer {
	return &Integer{values: append([]int64(nil), values...)}
}

func (v *Integer) Descriptor() vec.Descriptor { return IntegerType() }
func (v *Integer) Len() int                   { return len(v.values) }
func (v *Integer) Zero() vec.Vector           { return &Integer{} }

// Ints returns a copy of the elements.
func (v *Integer) Ints() []int64 { return append([]int64(nil), v.values...) }

func (v *Integer) Append(other vec.Vector) (vec.Vector, error) {
	o, ok := other.(*Integer)
	if !ok {
		return nil, appendMismatch(v.Descriptor(), other.Descriptor())
	}
	out := make([]int64, 0, len(v.values)+len(o.values))
	out = append(out, v.values...)
	out = append(out, o.values...)
	return &Integer{values: out}, nil
}

// Double is a vector of 64-bit floating-point numbers.
type Double struct {
	values []float64
}

// NewDouble returns a double vector holding a copy of values.
func NewDouble(values []float64) *Double {
	return &Double{values: append([]float64(nil), values...)}
}

func (v *Double) Descriptor() vec.Descriptor { return DoubleType() }
func (v *Double) Len() int                   { return len(v.values) }
func (v *Double) Zero() vec.Vector           { return &Double{} }

// Floats returns a copy of the elements.
func (v *Double) Floats() []float64 { return append([]float64(nil), v.values...) }

func (v *Double) Append(other vec.Vector) (vec.Vector, error) {
	o, ok := other.(*Double)
	if !ok {
		return nil, appendMismatch(v.Descriptor(), other.Descriptor())
	}
	out := make([]float64, 0, len(v.values)+len(o.values))
	out = append(out, v.values...)
	out = append(out, o.values...)
	return &Double{values: out}, nil
}

// Character is a vector of strings.
type Character struct {
	values []string
}

// NewCharacter returns a character vector holding a copy of values.
func NewCharacter(values []string) *Character {
	return &Character{values: append([]string(nil), values...)}
}

func (v *Character) Descriptor() vec.Descriptor { return CharacterType() }
func (v *Character) Len() int                   { return len(v.values) }
func (v *Character) Zero() vec.Vector           { return &Character{} }

// Strings returns a copy of the elements.
func (v *Character) Strings() []string { return append([]string(nil), v.values...) }

func (v *Character) Append(other vec.Vector) (vec.Vector, error) {
	o, ok := other.(*Character)
	if !ok {
		return nil, appendMismatch(v.Descriptor(), other.Descriptor())
	}
	out := make([]string, 0, len(v.values)+len(o.values))
	out = append(out, v.values...)
	out = append(out, o.values...)
	return &Character{values: out}, nil
}

// appendMismatch reports an attempt to append across different descriptors.
// Append never converts; callers go through vec.Combine for that.
func appendMismatch(dst, src vec.Descriptor) error {
	return fmt.Errorf("cannot append %s to %s", src, dst)
}
