package vec

// CastTo converts v to the target descriptor.
//
// A registered cast for (v.Kind, target.Kind) is preferred. When none
// exists, CastTo falls back to the canonical form: decompose v into slots,
// rebuild as target. The fallback keeps every pair of kinds with canonical
// forms castable without a dedicated entry.
//
// The returned LossySet names the element positions that were changed in a
// non-reversible way; a lossy cast is still a successful cast. The error is
// an *IncompatibleCastError when no conversion path exists or the values
// cannot be represented in the target at all.
func CastTo(v Vector, target Descriptor) (Vector, LossySet, error) {
	from := v.Descriptor()
	if fn, ok := LookupCast(from.Kind, target.Kind); ok {
		return fn(v, target)
	}
	src, srcOK := LookupCanon(from.Kind)
	dst, dstOK := LookupCanon(target.Kind)
	if !srcOK || !dstOK {
		return nil, nil, NewIncompatibleCast(from, target)
	}
	slots, err := src.Slots(v)
	if err != nil {
		return nil, nil, &IncompatibleCastError{From: from, To: target, Reason: err.Error()}
	}
	out, lossy, err := dst.FromSlots(target, slots)
	if err != nil {
		return nil, nil, &IncompatibleCastError{From: from, To: target, Reason: err.Error()}
	}
	return out, lossy, nil
}
