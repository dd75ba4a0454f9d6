package kinds

import (
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/funvec/pkg/vec"
)

// Levels is the ordered label set of a categorical type. Two categorical
// descriptors name the same type only when their level sets are equal,
// including order.
type Levels struct {
	labels []string
	index  map[string]int
}

// NewLevels builds a level set from labels, dropping duplicates and keeping
// first-appearance order.
func NewLevels(labels ...string) *Levels {
	l := &Levels{index: make(map[string]int, len(labels))}
	for _, label := range labels {
		if _, ok := l.index[label]; ok {
			continue
		}
		l.index[label] = len(l.labels)
		l.labels = append(l.labels, label)
	}
	return l
}

// Labels returns a copy of the labels in level order.
func (l *Levels) Labels() []string { return append([]string(nil), l.labels...) }

// Len returns the number of levels.
func (l *Levels) Len() int { return len(l.labels) }

// Index returns the position of label, or -1 when it is not a level.
func (l *Levels) Index(label string) int {
	if i, ok := l.index[label]; ok {
		return i
	}
	return -1
}

// Label returns the label at position i.
func (l *Levels) Label(i int) string { return l.labels[i] }

// Contains reports whether every level of other is a level of l.
func (l *Levels) Contains(other *Levels) bool {
	for _, label := range other.labels {
		if _, ok := l.index[label]; !ok {
			return false
		}
	}
	return true
}

// Union returns the level set holding every label of l and other. The union
// is sorted, so it does not depend on operand order.
func (l *Levels) Union(other *Levels) *Levels {
	merged := make([]string, 0, len(l.labels)+len(other.labels))
	merged = append(merged, l.labels...)
	merged = append(merged, other.labels...)
	sort.Strings(merged)
	return NewLevels(merged...)
}

func (l *Levels) String() string { return strings.Join(l.labels, ",") }

func (l *Levels) Equal(other vec.Payload) bool {
	o, ok := other.(*Levels)
	if !ok || len(l.labels) != len(o.labels) {
		return false
	}
	for i, label := range l.labels {
		if o.labels[i] != label {
			return false
		}
	}
	return true
}

// Categorical is a vector of values drawn from a fixed level set. Elements
// are stored as level indexes; index -1 marks an element that lost its level
// in a lossy cast and corresponds to no label.
type Categorical struct {
	indexes []int
	levels  *Levels
}

// NewCategorical builds a categorical vector from labels. When levels is nil
// the level set is derived from the labels in first-appearance order;
// otherwise every label must be a level.
func NewCategorical(labels []string, levels *Levels) (*Categorical, error) {
	if levels == nil {
		levels = NewLevels(labels...)
	}
	indexes := make([]int, len(labels))
	for i, label := range labels {
		j := levels.Index(label)
		if j < 0 {
			return nil, fmt.Errorf("label %q is not a level of %s", label, CategoricalType(levels))
		}
		indexes[i] = j
	}
	return &Categorical{indexes: indexes, levels: levels}, nil
}

// CategoricalFromIndexes builds a categorical vector directly from level
// indexes. Indexes must be -1 or valid positions in levels.
func CategoricalFromIndexes(indexes []int, levels *Levels) (*Categorical, error) {
	for _, j := range indexes {
		if j < -1 || j >= levels.Len() {
			return nil, fmt.Errorf("index %d out of range for %s", j, CategoricalType(levels))
		}
	}
	return &Categorical{indexes: append([]int(nil), indexes...), levels: levels}, nil
}

func (v *Categorical) Descriptor() vec.Descriptor { return CategoricalType(v.levels) }
func (v *Categorical) Len() int                   { return len(v.indexes) }
func (v *Categorical) Zero() vec.Vector           { return &Categorical{levels: v.levels} }

// Levels returns the level set of the vector.
func (v *Categorical) Levels() *Levels { return v.levels }

// Indexes returns a copy of the level indexes.
func (v *Categorical) Indexes() []int { return append([]int(nil), v.indexes...) }

// Label returns the label of element i. The second result is false for an
// element with no level.
func (v *Categorical) Label(i int) (string, bool) {
	j := v.indexes[i]
	if j < 0 {
		return "", false
	}
	return v.levels.Label(j), true
}

func (v *Categorical) Append(other vec.Vector) (vec.Vector, error) {
	o, ok := other.(*Categorical)
	if !ok || !v.levels.Equal(o.levels) {
		return nil, appendMismatch(v.Descriptor(), other.Descriptor())
	}
	out := make([]int, 0, len(v.indexes)+len(o.indexes))
	out = append(out, v.indexes...)
	out = append(out, o.indexes...)
	return &Categorical{indexes: out, levels: v.levels}, nil
}
