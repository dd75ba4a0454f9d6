package vec

import (
	"sort"
	"sync"
)

// ResolveFunc computes the common type for a pair of descriptors, or returns
// an *IncompatibleTypeError when the pair has none under the given options.
type ResolveFunc func(a, b Descriptor, opts Options) (Descriptor, error)

// CastFunc converts v to the target descriptor, reporting the positions that
// did not survive exactly. The target's kind is fixed by the dispatch entry
// the function was registered under; its payload may differ per call.
type CastFunc func(v Vector, target Descriptor) (Vector, LossySet, error)

// kindPair is an ordered pair of kind tags used as a dispatch key.
type kindPair struct {
	a Kind
	b Kind
}

// dispatchTables is the global registry for coercion, cast and canonical-form
// behavior. Entries are registered at startup by the kind packages' init
// functions.
//
// Thread-safe: registration happens once at startup; reads happen from any
// goroutine afterwards.
var dispatchTables = struct {
	mu     sync.RWMutex
	coerce map[kindPair]ResolveFunc
	cast   map[kindPair]CastFunc
	canon  map[Kind]CanonFuncs
}{
	coerce: make(map[kindPair]ResolveFunc),
	cast:   make(map[kindPair]CastFunc),
	canon:  make(map[Kind]CanonFuncs),
}

// RegisterCoercion registers fn as the common-type rule for the ordered pair
// (a, b). Resolution tries (a, b) first and falls back to (b, a), so one
// registration serves both argument orders.
//
// Pairs involving KindNull are accepted and discarded: the null identity is
// guaranteed by the engine itself and cannot be overridden. Registering the
// same ordered pair twice returns a *RegistrationConflictError.
//
// It is safe to call from init() functions.
func RegisterCoercion(a, b Kind, fn ResolveFunc) error {
	if a == KindNull || b == KindNull {
		return nil
	}
	dispatchTables.mu.Lock()
	defer dispatchTables.mu.Unlock()
	key := kindPair{a: a, b: b}
	if _, ok := dispatchTables.coerce[key]; ok {
		return NewRegistrationConflict("coercion", a, b)
	}
	dispatchTables.coerce[key] = fn
	return nil
}

// MustRegisterCoercion is RegisterCoercion that panics on conflict.
func MustRegisterCoercion(a, b Kind, fn ResolveFunc) {
	if err := RegisterCoercion(a, b, fn); err != nil {
		panic(err)
	}
}

// RegisterCast registers fn as the conversion from kind `from` to kind `to`.
// Casts are directional: no reversed-pair fallback applies. The self pair
// (k, k) handles re-parameterization between payloads of the same kind.
//
// Registering the same ordered pair twice returns a *RegistrationConflictError.
func RegisterCast(from, to Kind, fn CastFunc) error {
	dispatchTables.mu.Lock()
	defer dispatchTables.mu.Unlock()
	key := kindPair{a: from, b: to}
	if _, ok := dispatchTables.cast[key]; ok {
		return NewRegistrationConflict("cast", from, to)
	}
	dispatchTables.cast[key] = fn
	return nil
}

// MustRegisterCast is RegisterCast that panics on conflict.
func MustRegisterCast(from, to Kind, fn CastFunc) {
	if err := RegisterCast(from, to, fn); err != nil {
		panic(err)
	}
}

// RegisterCanon registers the canonical-form functions for a kind, enabling
// the generic cast path between k and every other kind with a canonical form.
func RegisterCanon(k Kind, fns CanonFuncs) error {
	dispatchTables.mu.Lock()
	defer dispatchTables.mu.Unlock()
	if _, ok := dispatchTables.canon[k]; ok {
		return NewRegistrationConflict("canonical form", k, "")
	}
	dispatchTables.canon[k] = fns
	return nil
}

// MustRegisterCanon is RegisterCanon that panics on conflict.
func MustRegisterCanon(k Kind, fns CanonFuncs) {
	if err := RegisterCanon(k, fns); err != nil {
		panic(err)
	}
}

// LookupCoercion returns the rule registered for the ordered pair (a, b).
// Returns false if the pair is unhandled.
func LookupCoercion(a, b Kind) (ResolveFunc, bool) {
	dispatchTables.mu.RLock()
	defer dispatchTables.mu.RUnlock()
	fn, ok := dispatchTables.coerce[kindPair{a: a, b: b}]
	return fn, ok
}

// LookupCast returns the conversion registered from kind `from` to kind `to`.
// Returns false if the pair is unhandled.
func LookupCast(from, to Kind) (CastFunc, bool) {
	dispatchTables.mu.RLock()
	defer dispatchTables.mu.RUnlock()
	fn, ok := dispatchTables.cast[kindPair{a: from, b: to}]
	return fn, ok
}

// LookupCanon returns the canonical-form functions registered for a kind.
// Returns false if the kind has none.
func LookupCanon(k Kind) (CanonFuncs, bool) {
	dispatchTables.mu.RLock()
	defer dispatchTables.mu.RUnlock()
	fns, ok := dispatchTables.canon[k]
	return fns, ok
}

// RegisteredCoercions returns every ordered pair present in the coercion
// table, sorted for stable output.
func RegisteredCoercions() [][2]Kind {
	dispatchTables.mu.RLock()
	defer dispatchTables.mu.RUnlock()
	pairs := make([][2]Kind, 0, len(dispatchTables.coerce))
	for key := range dispatchTables.coerce {
		pairs = append(pairs, [2]Kind{key.a, key.b})
	}
	sortKindPairs(pairs)
	return pairs
}

// RegisteredCasts returns every ordered pair present in the cast table,
// sorted for stable output.
func RegisteredCasts() [][2]Kind {
	dispatchTables.mu.RLock()
	defer dispatchTables.mu.RUnlock()
	pairs := make([][2]Kind, 0, len(dispatchTables.cast))
	for key := range dispatchTables.cast {
		pairs = append(pairs, [2]Kind{key.a, key.b})
	}
	sortKindPairs(pairs)
	return pairs
}

func sortKindPairs(pairs [][2]Kind) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
}
