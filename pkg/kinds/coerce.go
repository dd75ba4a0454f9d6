package kinds

import (
	"fmt"

	"github.com/funvibe/funvec/pkg/vec"
)

// The coercion table encodes the partial order of the built-in kinds:
//
//	logical < integer < double
//	date < datetime
//	categorical < character
//	binned ∪ binned = union of boundaries, binned ∪ double = double
//
// Every rule is registered for one ordered pair; the engine's reversed-pair
// fallback serves the other order.
func init() {
	fixed := func(d vec.Descriptor) vec.ResolveFunc {
		return func(a, b vec.Descriptor, opts vec.Options) (vec.Descriptor, error) {
			return d, nil
		}
	}

	for _, k := range []vec.Kind{
		KindLogical, KindInteger, KindDouble, KindCharacter,
		KindList, KindDate, KindDatetime,
	} {
		vec.MustRegisterCoercion(k, k, fixed(vec.Descriptor{Kind: k}))
	}

	vec.MustRegisterCoercion(KindLogical, KindInteger, fixed(IntegerType()))
	vec.MustRegisterCoercion(KindLogical, KindDouble, fixed(DoubleType()))
	vec.MustRegisterCoercion(KindInteger, KindDouble, fixed(DoubleType()))

	vec.MustRegisterCoercion(KindDate, KindDatetime, fixed(DatetimeType()))

	vec.MustRegisterCoercion(KindCategorical, KindCategorical, resolveCategoricalPair)
	vec.MustRegisterCoercion(KindCategorical, KindCharacter, fixed(CharacterType()))

	vec.MustRegisterCoercion(KindBinned, KindBinned, resolveBinnedPair)
	vec.MustRegisterCoercion(KindBinned, KindDouble, fixed(DoubleType()))

	// The null identity is engine-owned; these registrations document it.
	nullIdentity := func(a, b vec.Descriptor, opts vec.Options) (vec.Descriptor, error) {
		return a, nil
	}
	for _, k := range []vec.Kind{
		KindLogical, KindInteger, KindDouble, KindCharacter,
		KindList, KindCategorical, KindBinned, KindDate, KindDatetime,
	} {
		vec.MustRegisterCoercion(k, vec.KindNull, nullIdentity)
	}
}

// resolveCategoricalPair unifies two categorical descriptors. In strict mode
// one level set must contain the other and the superset wins; two sets
// holding the same labels in different orders contain each other, so they
// resolve to their sorted union and neither argument order wins. In lax mode
// any two level sets unify into their sorted union.
func resolveCategoricalPair(a, b vec.Descriptor, opts vec.Options) (vec.Descriptor, error) {
	la, err := levelsOf(a)
	if err != nil {
		return vec.Descriptor{}, err
	}
	lb, err := levelsOf(b)
	if err != nil {
		return vec.Descriptor{}, err
	}
	switch {
	case la.Equal(lb):
		return a, nil
	case la.Contains(lb) && lb.Contains(la):
		return CategoricalType(la.Union(lb)), nil
	case la.Contains(lb):
		return a, nil
	case lb.Contains(la):
		return b, nil
	case opts.Lax:
		return CategoricalType(la.Union(lb)), nil
	}
	return vec.Descriptor{}, vec.NewIncompatibleType(a, b)
}

// resolveBinnedPair unifies two binned descriptors into the union of their
// boundary sets. The union refines both binnings, so re-quantizing onto it
// never moves a value.
func resolveBinnedPair(a, b vec.Descriptor, opts vec.Options) (vec.Descriptor, error) {
	ba, err := boundsOf(a)
	if err != nil {
		return vec.Descriptor{}, err
	}
	bb, err := boundsOf(b)
	if err != nil {
		return vec.Descriptor{}, err
	}
	return BinnedType(ba.Union(bb)), nil
}

func levelsOf(d vec.Descriptor) (*Levels, error) {
	l, ok := d.Payload.(*Levels)
	if !ok {
		return nil, fmt.Errorf("descriptor %s has no level set", d)
	}
	return l, nil
}

func boundsOf(d vec.Descriptor) (*Bounds, error) {
	b, ok := d.Payload.(*Bounds)
	if !ok {
		return nil, fmt.Errorf("descriptor %s has no boundary set", d)
	}
	return b, nil
}
