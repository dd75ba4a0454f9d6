package vec

// LossySet records the 0-based positions of elements that a conversion
// changed in a way that cannot be round-tripped. A nil or empty LossySet
// means every element was preserved exactly.
//
// Positions are ascending and unique when produced by this module's
// conversion paths.
type LossySet []int

// Empty reports whether no position was lossy.
func (s LossySet) Empty() bool { return len(s) == 0 }

// Has reports whether position i is in the set.
func (s LossySet) Has(i int) bool {
	for _, p := range s {
		if p == i {
			return true
		}
	}
	return false
}

// Lossy names the positions one Combine input lost during its cast to the
// common type. Input is the 0-based index of the input in the original
// argument order.
type Lossy struct {
	Input     int
	Positions LossySet
}
