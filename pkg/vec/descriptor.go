package vec

import "fmt"

// Kind identifies a vector kind inside the dispatch tables.
// Kind tags form a single process-wide namespace: two different packages
// must not register behavior under the same tag.
type Kind string

// KindNull is the tag of the empty type. It is the identity of common-type
// resolution: resolving any descriptor against the null descriptor yields
// that descriptor unchanged, regardless of what is registered.
const KindNull Kind = "null"

// Payload carries the kind-specific parameters of a descriptor, such as the
// level set of a categorical type or the boundary set of a binned type.
// Kinds without parameters use a nil Payload.
type Payload interface {
	String() string
	Equal(Payload) bool
}

// Descriptor is the full identity of a vector type: the kind tag plus the
// kind's parameters. Two descriptors describe the same type exactly when
// their kinds match and their payloads are Equal.
type Descriptor struct {
	Kind    Kind
	Payload Payload
}

// NullType returns the descriptor of the empty type.
func NullType() Descriptor {
	return Descriptor{Kind: KindNull}
}

// IsNull reports whether d is the empty type.
func (d Descriptor) IsNull() bool {
	return d.Kind == KindNull
}

func (d Descriptor) String() string {
	if d.Kind == "" {
		return "<invalid>"
	}
	if d.Payload == nil {
		return string(d.Kind)
	}
	return fmt.Sprintf("%s<%s>", d.Kind, d.Payload.String())
}

// Equal reports whether d and other name the same type: same kind and,
// when present, equal payloads.
func (d Descriptor) Equal(other Descriptor) bool {
	if d.Kind != other.Kind {
		return false
	}
	if d.Payload == nil || other.Payload == nil {
		return d.Payload == nil && other.Payload == nil
	}
	return d.Payload.Equal(other.Payload)
}
