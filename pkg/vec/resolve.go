package vec

// Options controls common-type resolution.
//
// The zero value is strict resolution with no forced target, which is the
// default everywhere.
type Options struct {
	// Lax widens the set of accepted unifications where a kind defines a
	// lax rule, e.g. taking the union of two categorical level sets instead
	// of requiring containment. Pairs resolvable in strict mode resolve to
	// the same result in lax mode.
	Lax bool

	// To forces every Combine input toward this descriptor instead of
	// folding the inputs for a common type. Ignored by ResolveCommonType.
	To Descriptor
}

// ResolveCommonType returns the smallest descriptor both a and b convert
// into, or an *IncompatibleTypeError when the pair has none.
//
// The null descriptor is the identity: resolving any descriptor against it
// yields that descriptor unchanged, independent of registration. For all
// other pairs the registered rule for (a.Kind, b.Kind) is consulted first,
// then the rule for the reversed pair with swapped arguments, so the result
// never depends on argument order.
func ResolveCommonType(a, b Descriptor, opts Options) (Descriptor, error) {
	if a.IsNull() {
		return b, nil
	}
	if b.IsNull() {
		return a, nil
	}
	if fn, ok := LookupCoercion(a.Kind, b.Kind); ok {
		return fn(a, b, opts)
	}
	if fn, ok := LookupCoercion(b.Kind, a.Kind); ok {
		return fn(b, a, opts)
	}
	return Descriptor{}, NewIncompatibleType(a, b)
}
