package vec

import (
	"errors"
	"strings"
	"testing"
)

func TestCastDirectPath(t *testing.T) {
	k := newStubKinds(t)
	v := stubOf(k.small, 1, 2, 3)

	out, lossy, err := CastTo(v, k.bigType())
	if err != nil {
		t.Fatalf("cast small -> big failed: %v", err)
	}
	if out.Descriptor().Kind != k.big {
		t.Errorf("result kind = %s, want %s", out.Descriptor(), k.big)
	}
	if !lossy.Empty() {
		t.Errorf("widening cast flagged positions %v", lossy)
	}
	if got := out.(*stubVector).data; !sameInts(got, []int64{1, 2, 3}) {
		t.Errorf("result data = %v, want [1 2 3]", got)
	}
}

func TestCastLossyPositions(t *testing.T) {
	k := newStubKinds(t)
	v := stubOf(k.big, 7, 500, -3, -2000)

	out, lossy, err := CastTo(v, k.smallType())
	if err != nil {
		t.Fatalf("cast big -> small failed: %v", err)
	}
	if got := out.(*stubVector).data; !sameInts(got, []int64{7, 100, -3, -100}) {
		t.Errorf("result data = %v, want [7 100 -3 -100]", got)
	}
	if len(lossy) != 2 || !lossy.Has(1) || !lossy.Has(3) {
		t.Errorf("lossy positions = %v, want [1 3]", lossy)
	}
	if lossy.Has(0) || lossy.Has(2) {
		t.Error("preserved positions must not be flagged")
	}
}

func TestCastCanonicalFallback(t *testing.T) {
	k := newStubKinds(t)

	// No direct cast connects raw and big; both have canonical forms.
	v := stubOf(k.raw, 4, 5)
	out, lossy, err := CastTo(v, k.bigType())
	if err != nil {
		t.Fatalf("canonical fallback failed: %v", err)
	}
	if out.Descriptor().Kind != k.big {
		t.Errorf("result kind = %s, want %s", out.Descriptor(), k.big)
	}
	if !lossy.Empty() {
		t.Errorf("fallback flagged positions %v", lossy)
	}
	if got := out.(*stubVector).data; !sameInts(got, []int64{4, 5}) {
		t.Errorf("result data = %v, want [4 5]", got)
	}
}

func TestCastNoPathFails(t *testing.T) {
	k := newStubKinds(t)

	tests := []struct {
		name   string
		v      Vector
		target Descriptor
	}{
		// small has no canonical form, raw has no direct casts.
		{"no canon on source", stubOf(k.small, 1), k.rawType()},
		{"no canon on target", stubOf(k.raw, 1), k.smallType()},
		{"unregistered target", stubOf(k.big, 1), k.alienType()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := CastTo(tt.v, tt.target)
			if err == nil {
				t.Fatal("cast without a path should fail")
			}
			var cast *IncompatibleCastError
			if !errors.As(err, &cast) {
				t.Fatalf("error = %T, want *IncompatibleCastError", err)
			}
			if !cast.From.Equal(tt.v.Descriptor()) || !cast.To.Equal(tt.target) {
				t.Errorf("failure names %s -> %s, want %s -> %s",
					cast.From, cast.To, tt.v.Descriptor(), tt.target)
			}
		})
	}
}

func TestCastFromNull(t *testing.T) {
	k := newStubKinds(t)
	out, lossy, err := CastTo(Null(), k.bigType())
	if err != nil {
		t.Fatalf("cast null -> big failed: %v", err)
	}
	if out.Descriptor().Kind != k.big {
		t.Errorf("result kind = %s, want %s", out.Descriptor(), k.big)
	}
	if out.Len() != 0 {
		t.Errorf("result length = %d, want 0", out.Len())
	}
	if !lossy.Empty() {
		t.Errorf("empty cast flagged positions %v", lossy)
	}
}

func TestCastRebuildErrorNamesTypes(t *testing.T) {
	k := newStubKinds(t)

	// A payload the canonical big kind cannot rebuild from: the null
	// canonical form rejects any non-empty slot sequence.
	v := stubOf(k.raw, 9)
	_, _, err := CastTo(v, NullType())
	if err == nil {
		t.Fatal("casting a non-empty vector to null should fail")
	}
	var cast *IncompatibleCastError
	if !errors.As(err, &cast) {
		t.Fatalf("error = %T, want *IncompatibleCastError", err)
	}
	if cast.Reason == "" {
		t.Error("rebuild failure should carry the underlying reason")
	}
	if !strings.Contains(err.Error(), "cannot cast") {
		t.Errorf("error text = %q, want it to mention the failed cast", err)
	}
}
