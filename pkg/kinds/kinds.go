// Package kinds provides the built-in vector kinds: the atomic kinds
// (logical, integer, double, character), list, categorical, binned and the
// temporal kinds (date, datetime). Importing the package registers their
// coercion, cast and canonical-form behavior with the engine.
package kinds

import "github.com/funvibe/funvec/pkg/vec"

const (
	KindLogical     vec.Kind = "logical"
	KindInteger     vec.Kind = "integer"
	KindDouble      vec.Kind = "double"
	KindCharacter   vec.Kind = "character"
	KindList        vec.Kind = "list"
	KindCategorical vec.Kind = "categorical"
	KindBinned      vec.Kind = "binned"
	KindDate        vec.Kind = "date"
	KindDatetime    vec.Kind = "datetime"
)

// LogicalType returns the descriptor of the logical kind.
func LogicalType() vec.Descriptor { return vec.Descriptor{Kind: KindLogical} }

// IntegerType returns the descriptor of the integer kind.
func IntegerType() vec.Descriptor { return vec.Descriptor{Kind: KindInteger} }

// DoubleType returns the descriptor of the double kind.
func DoubleType() vec.Descriptor { return vec.Descriptor{Kind: KindDouble} }

// CharacterType returns the descriptor of the character kind.
func CharacterType() vec.Descriptor { return vec.Descriptor{Kind: KindCharacter} }

// ListType returns the descriptor of the list kind.
func ListType() vec.Descriptor { return vec.Descriptor{Kind: KindList} }

// DateType returns the descriptor of the date kind.
func DateType() vec.Descriptor { return vec.Descriptor{Kind: KindDate} }

// DatetimeType returns the descriptor of the datetime kind.
func DatetimeType() vec.Descriptor { return vec.Descriptor{Kind: KindDatetime} }

// CategoricalType returns the descriptor of a categorical kind over the
// given level set.
func CategoricalType(levels *Levels) vec.Descriptor {
	return vec.Descriptor{Kind: KindCategorical, Payload: levels}
}

// BinnedType returns the descriptor of a binned kind over the given
// boundary set.
func BinnedType(bounds *Bounds) vec.Descriptor {
	return vec.Descriptor{Kind: KindBinned, Payload: bounds}
}
