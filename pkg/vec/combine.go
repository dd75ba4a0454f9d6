package vec

import "fmt"

// Combine concatenates vectors of heterogeneous types into one vector of
// their common type.
//
// The common type is the left fold of ResolveCommonType over the input
// descriptors, starting from the null descriptor; the fold stops at the
// first incompatible pair. When opts.To is set the fold is skipped and To
// is the target directly. Every input is then cast to the target and the
// results are concatenated in input order. Null inputs take part in the
// fold as the identity and contribute no elements.
//
// Lossy casts do not fail the combine; they are reported per input, with
// element positions local to that input. Errors are wrapped with the 0-based
// index of the offending input.
//
// Combining zero inputs yields Null(); with opts.To set it yields the empty
// vector of the target type, built through the target's canonical form.
func Combine(vs []Vector, opts Options) (Vector, []Lossy, error) {
	target := opts.To
	if target.Kind == "" {
		target = NullType()
		for i, v := range vs {
			next, err := ResolveCommonType(target, v.Descriptor(), opts)
			if err != nil {
				return nil, nil, fmt.Errorf("input %d: %w", i, err)
			}
			target = next
		}
	}

	var result Vector
	var reports []Lossy
	for i, v := range vs {
		if v.Descriptor().IsNull() {
			continue
		}
		cv, lossy, err := CastTo(v, target)
		if err != nil {
			return nil, nil, fmt.Errorf("input %d: %w", i, err)
		}
		if !lossy.Empty() {
			reports = append(reports, Lossy{Input: i, Positions: lossy})
		}
		if result == nil {
			result = cv
			continue
		}
		result, err = result.Append(cv)
		if err != nil {
			return nil, nil, fmt.Errorf("input %d: %w", i, err)
		}
	}
	if result == nil {
		if target.IsNull() {
			return Null(), nil, nil
		}
		out, _, err := CastTo(Null(), target)
		if err != nil {
			return nil, nil, err
		}
		return out, nil, nil
	}
	return result, reports, nil
}
