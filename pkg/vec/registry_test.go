package vec

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestRegisterCoercionConflict(t *testing.T) {
	a := Kind("conflict-a-" + uuid.NewString()[:8])
	b := Kind("conflict-b-" + uuid.NewString()[:8])
	fn := func(x, y Descriptor, opts Options) (Descriptor, error) { return x, nil }

	if err := RegisterCoercion(a, b, fn); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	err := RegisterCoercion(a, b, fn)
	if err == nil {
		t.Fatal("re-registering the same ordered pair should fail")
	}
	var conflict *RegistrationConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("error = %T, want *RegistrationConflictError", err)
	}
	if conflict.A != a || conflict.B != b {
		t.Errorf("conflict names (%s, %s), want (%s, %s)", conflict.A, conflict.B, a, b)
	}

	// The reversed order is a different entry and stays free.
	if err := RegisterCoercion(b, a, fn); err != nil {
		t.Errorf("reversed pair should be registrable: %v", err)
	}
}

func TestRegisterCoercionNullPairDiscarded(t *testing.T) {
	k := Kind("nullside-" + uuid.NewString()[:8])
	fn := func(x, y Descriptor, opts Options) (Descriptor, error) {
		return Descriptor{Kind: "hijacked"}, nil
	}

	// Both orders are accepted, any number of times, and never stored.
	for i := 0; i < 2; i++ {
		if err := RegisterCoercion(k, KindNull, fn); err != nil {
			t.Fatalf("registering (k, null) failed: %v", err)
		}
		if err := RegisterCoercion(KindNull, k, fn); err != nil {
			t.Fatalf("registering (null, k) failed: %v", err)
		}
	}
	if _, ok := LookupCoercion(k, KindNull); ok {
		t.Error("null pair should not be stored")
	}

	// The identity still holds no matter what was registered.
	got, err := ResolveCommonType(Descriptor{Kind: k}, NullType(), Options{})
	if err != nil {
		t.Fatalf("resolving against null failed: %v", err)
	}
	if got.Kind != k {
		t.Errorf("resolved to %s, want %s", got, k)
	}
}

func TestRegisterCastConflict(t *testing.T) {
	a := Kind("cast-a-" + uuid.NewString()[:8])
	b := Kind("cast-b-" + uuid.NewString()[:8])
	fn := func(v Vector, target Descriptor) (Vector, LossySet, error) { return v, nil, nil }

	if err := RegisterCast(a, b, fn); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := RegisterCast(a, b, fn); err == nil {
		t.Fatal("re-registering the same cast should fail")
	}
	// Casts are directional: the reverse is a separate entry.
	if err := RegisterCast(b, a, fn); err != nil {
		t.Errorf("reverse cast should be registrable: %v", err)
	}
}

func TestRegisterCanonConflict(t *testing.T) {
	k := Kind("canon-" + uuid.NewString()[:8])
	fns := CanonFuncs{
		Slots:     func(v Vector) ([]Slot, error) { return nil, nil },
		FromSlots: func(d Descriptor, s []Slot) (Vector, LossySet, error) { return Null(), nil, nil },
	}
	if err := RegisterCanon(k, fns); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := RegisterCanon(k, fns); err == nil {
		t.Fatal("re-registering the canonical form should fail")
	}
}

func TestMustRegisterPanicsOnConflict(t *testing.T) {
	a := Kind("must-a-" + uuid.NewString()[:8])
	b := Kind("must-b-" + uuid.NewString()[:8])
	fn := func(x, y Descriptor, opts Options) (Descriptor, error) { return x, nil }
	MustRegisterCoercion(a, b, fn)

	defer func() {
		if recover() == nil {
			t.Error("MustRegisterCoercion should panic on conflict")
		}
	}()
	MustRegisterCoercion(a, b, fn)
}

func TestLookupUnhandled(t *testing.T) {
	ghost := Kind("ghost-" + uuid.NewString()[:8])
	if _, ok := LookupCoercion(ghost, ghost); ok {
		t.Error("LookupCoercion should report an unregistered pair as unhandled")
	}
	if _, ok := LookupCast(ghost, ghost); ok {
		t.Error("LookupCast should report an unregistered pair as unhandled")
	}
	if _, ok := LookupCanon(ghost); ok {
		t.Error("LookupCanon should report an unregistered kind as unhandled")
	}
}

func TestRegisteredPairsListed(t *testing.T) {
	k := newStubKinds(t)

	find := func(pairs [][2]Kind, a, b Kind) bool {
		for _, p := range pairs {
			if p[0] == a && p[1] == b {
				return true
			}
		}
		return false
	}

	coercions := RegisteredCoercions()
	if !find(coercions, k.small, k.big) {
		t.Error("coercion (small, big) missing from RegisteredCoercions")
	}
	if find(coercions, k.big, k.small) {
		t.Error("coercion (big, small) was never registered and should not be listed")
	}
	casts := RegisteredCasts()
	if !find(casts, k.big, k.small) {
		t.Error("cast (big, small) missing from RegisteredCasts")
	}
	if find(casts, k.alien, k.alien) {
		t.Error("alien kind should have no cast entries")
	}
}
