package kinds

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/funvibe/funvec/pkg/vec"
)

// Bounds is the ordered boundary set of a binned type. n boundaries define
// n-1 bins: bin i covers [edge i, edge i+1), and the last bin also includes
// its upper boundary's overflow, since out-of-range values clamp inward.
type Bounds struct {
	edges []float64
}

// NewBounds builds a boundary set from edges, sorting them and dropping
// duplicates. At least two distinct finite edges are required.
func NewBounds(edges ...float64) (*Bounds, error) {
	sorted := append([]float64(nil), edges...)
	sort.Float64s(sorted)
	dedup := sorted[:0]
	for i, e := range sorted {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return nil, fmt.Errorf("boundary %v is not finite", e)
		}
		if i > 0 && e == sorted[i-1] {
			continue
		}
		dedup = append(dedup, e)
	}
	if len(dedup) < 2 {
		return nil, fmt.Errorf("need at least 2 distinct boundaries, got %d", len(dedup))
	}
	return &Bounds{edges: append([]float64(nil), dedup...)}, nil
}

// Edges returns a copy of the boundaries in ascending order.
func (b *Bounds) Edges() []float64 { return append([]float64(nil), b.edges...) }

// Len returns the number of boundaries.
func (b *Bounds) Len() int { return len(b.edges) }

// Contains reports whether every boundary of other is a boundary of b.
func (b *Bounds) Contains(other *Bounds) bool {
	for _, e := range other.edges {
		i := sort.SearchFloat64s(b.edges, e)
		if i >= len(b.edges) || b.edges[i] != e {
			return false
		}
	}
	return true
}

// Union returns the sorted union of both boundary sets: the finest common
// refinement of the two binnings.
func (b *Bounds) Union(other *Bounds) *Bounds {
	merged := make([]float64, 0, len(b.edges)+len(other.edges))
	merged = append(merged, b.edges...)
	merged = append(merged, other.edges...)
	u, err := NewBounds(merged...)
	if err != nil {
		// Both inputs were valid boundary sets; their union is too.
		panic(err)
	}
	return u
}

// Quantize maps x to the lower edge of its bin. The second result is false
// when the mapping moved the value: only bin lower edges map to themselves.
func (b *Bounds) Quantize(x float64) (float64, bool) {
	edges := b.edges
	n := len(edges)
	if math.IsNaN(x) || x < edges[0] {
		return edges[0], false
	}
	if x >= edges[n-1] {
		return edges[n-2], false
	}
	i := sort.SearchFloat64s(edges, x)
	if edges[i] == x {
		return x, true
	}
	return edges[i-1], false
}

func (b *Bounds) String() string {
	parts := make([]string, len(b.edges))
	for i, e := range b.edges {
		parts[i] = strconv.FormatFloat(e, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (b *Bounds) Equal(other vec.Payload) bool {
	o, ok := other.(*Bounds)
	if !ok || len(b.edges) != len(o.edges) {
		return false
	}
	for i, e := range b.edges {
		if o.edges[i] != e {
			return false
		}
	}
	return true
}

// Binned is a vector of values quantized onto a fixed binning. Each element
// is the lower edge of its bin.
type Binned struct {
	values []float64
	bounds *Bounds
}

// NewBinned builds a binned vector from values that are already lower edges
// of bounds. Use a cast from double for values that still need quantizing.
func NewBinned(values []float64, bounds *Bounds) (*Binned, error) {
	for _, x := range values {
		if _, exact := bounds.Quantize(x); !exact {
			return nil, fmt.Errorf("%v is not a bin lower edge of %s", x, BinnedType(bounds))
		}
	}
	return &Binned{values: append([]float64(nil), values...), bounds: bounds}, nil
}

func (v *Binned) Descriptor() vec.Descriptor { return BinnedType(v.bounds) }
func (v *Binned) Len() int                   { return len(v.values) }
func (v *Binned) Zero() vec.Vector           { return &Binned{bounds: v.bounds} }

// Bounds returns the boundary set of the vector.
func (v *Binned) Bounds() *Bounds { return v.bounds }

// Floats returns a copy of the elements, each a bin lower edge.
func (v *Binned) Floats() []float64 { return append([]float64(nil), v.values...) }

func (v *Binned) Append(other vec.Vector) (vec.Vector, error) {
	o, ok := other.(*Binned)
	if !ok || !v.bounds.Equal(o.bounds) {
		return nil, appendMismatch(v.Descriptor(), other.Descriptor())
	}
	out := make([]float64, 0, len(v.values)+len(o.values))
	out = append(out, v.values...)
	out = append(out, o.values...)
	return &Binned{values: out, bounds: v.bounds}, nil
}
