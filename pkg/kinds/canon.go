package kinds

import (
	"fmt"
	"time"

	"github.com/funvibe/funvec/pkg/vec"
)

// Canonical forms: one slot per element. The slot shapes are bool for
// logical, int64 for integer, float64 for double and binned, string for
// character, time.Time for the temporal kinds, string-or-nil for
// categorical and the element vectors themselves for list.
//
// Rebuilding accepts every slot shape the kind can hold a conversion for,
// which is what gives kind pairs without a dedicated cast a generic path.
func init() {
	vec.MustRegisterCanon(KindLogical, vec.CanonFuncs{Slots: logicalSlots, FromSlots: logicalFromSlots})
	vec.MustRegisterCanon(KindInteger, vec.CanonFuncs{Slots: integerSlots, FromSlots: integerFromSlots})
	vec.MustRegisterCanon(KindDouble, vec.CanonFuncs{Slots: doubleSlots, FromSlots: doubleFromSlots})
	vec.MustRegisterCanon(KindCharacter, vec.CanonFuncs{Slots: characterSlots, FromSlots: characterFromSlots})
	vec.MustRegisterCanon(KindCategorical, vec.CanonFuncs{Slots: categoricalSlots, FromSlots: categoricalFromSlots})
	vec.MustRegisterCanon(KindBinned, vec.CanonFuncs{Slots: binnedSlots, FromSlots: binnedFromSlots})
	vec.MustRegisterCanon(KindDate, vec.CanonFuncs{Slots: dateSlots, FromSlots: dateFromSlots})
	vec.MustRegisterCanon(KindDatetime, vec.CanonFuncs{Slots: datetimeSlots, FromSlots: datetimeFromSlots})
	vec.MustRegisterCanon(KindList, vec.CanonFuncs{Slots: listSlots, FromSlots: listFromSlots})
}

func slotShapeError(i int, s vec.Slot, kind vec.Kind) error {
	return fmt.Errorf("slot %d is %T, not representable as %s", i, s, kind)
}

func logicalSlots(v vec.Vector) ([]vec.Slot, error) {
	src := v.(*Logical).values
	slots := make([]vec.Slot, len(src))
	for i, x := range src {
		slots[i] = x
	}
	return slots, nil
}

func logicalFromSlots(target vec.Descriptor, slots []vec.Slot) (vec.Vector, vec.LossySet, error) {
	out := make([]bool, len(slots))
	var lossy vec.LossySet
	for i, s := range slots {
		switch x := s.(type) {
		case bool:
			out[i] = x
		case int64:
			out[i] = x != 0
			if x != 0 && x != 1 {
				lossy = append(lossy, i)
			}
		case float64:
			out[i] = x != 0
			if x != 0 && x != 1 {
				lossy = append(lossy, i)
			}
		default:
			return nil, nil, slotShapeError(i, s, KindLogical)
		}
	}
	return &Logical{values: out}, lossy, nil
}

func integerSlots(v vec.Vector) ([]vec.Slot, error) {
	src := v.(*Integer).values
	slots := make([]vec.Slot, len(src))
	for i, x := range src {
		slots[i] = x
	}
	return slots, nil
}

func integerFromSlots(target vec.Descriptor, slots []vec.Slot) (vec.Vector, vec.LossySet, error) {
	out := make([]int64, len(slots))
	var lossy vec.LossySet
	for i, s := range slots {
		switch x := s.(type) {
		case int64:
			out[i] = x
		case bool:
			if x {
				out[i] = 1
			}
		case float64:
			n, exact := float64ToInt64(x)
			out[i] = n
			if !exact {
				lossy = append(lossy, i)
			}
		default:
			return nil, nil, slotShapeError(i, s, KindInteger)
		}
	}
	return &Integer{values: out}, lossy, nil
}

func doubleSlots(v vec.Vector) ([]vec.Slot, error) {
	src := v.(*Double).values
	slots := make([]vec.Slot, len(src))
	for i, x := range src {
		slots[i] = x
	}
	return slots, nil
}

func doubleFromSlots(target vec.Descriptor, slots []vec.Slot) (vec.Vector, vec.LossySet, error) {
	out := make([]float64, len(slots))
	var lossy vec.LossySet
	for i, s := range slots {
		switch x := s.(type) {
		case float64:
			out[i] = x
		case int64:
			f, exact := int64ToFloat64(x)
			out[i] = f
			if !exact {
				lossy = append(lossy, i)
			}
		case bool:
			if x {
				out[i] = 1
			}
		default:
			return nil, nil, slotShapeError(i, s, KindDouble)
		}
	}
	return &Double{values: out}, lossy, nil
}

func characterSlots(v vec.Vector) ([]vec.Slot, error) {
	src := v.(*Character).values
	slots := make([]vec.Slot, len(src))
	for i, x := range src {
		slots[i] = x
	}
	return slots, nil
}

func characterFromSlots(target vec.Descriptor, slots []vec.Slot) (vec.Vector, vec.LossySet, error) {
	out := make([]string, len(slots))
	for i, s := range slots {
		x, ok := s.(string)
		if !ok {
			return nil, nil, slotShapeError(i, s, KindCharacter)
		}
		out[i] = x
	}
	return &Character{values: out}, nil, nil
}

func categoricalSlots(v vec.Vector) ([]vec.Slot, error) {
	src := v.(*Categorical)
	slots := make([]vec.Slot, len(src.indexes))
	for i, j := range src.indexes {
		if j < 0 {
			slots[i] = nil
			continue
		}
		slots[i] = src.levels.Label(j)
	}
	return slots, nil
}

func categoricalFromSlots(target vec.Descriptor, slots []vec.Slot) (vec.Vector, vec.LossySet, error) {
	lt, err := levelsOf(target)
	if err != nil {
		return nil, nil, err
	}
	out := make([]int, len(slots))
	var lossy vec.LossySet
	for i, s := range slots {
		if s == nil {
			out[i] = -1
			continue
		}
		label, ok := s.(string)
		if !ok {
			return nil, nil, slotShapeError(i, s, KindCategorical)
		}
		j := lt.Index(label)
		out[i] = j
		if j < 0 {
			lossy = append(lossy, i)
		}
	}
	return &Categorical{indexes: out, levels: lt}, lossy, nil
}

func binnedSlots(v vec.Vector) ([]vec.Slot, error) {
	src := v.(*Binned).values
	slots := make([]vec.Slot, len(src))
	for i, x := range src {
		slots[i] = x
	}
	return slots, nil
}

func binnedFromSlots(target vec.Descriptor, slots []vec.Slot) (vec.Vector, vec.LossySet, error) {
	bt, err := boundsOf(target)
	if err != nil {
		return nil, nil, err
	}
	out := make([]float64, len(slots))
	var lossy vec.LossySet
	for i, s := range slots {
		var f float64
		exact := true
		switch x := s.(type) {
		case float64:
			f = x
		case int64:
			f, exact = int64ToFloat64(x)
		default:
			return nil, nil, slotShapeError(i, s, KindBinned)
		}
		e, onEdge := bt.Quantize(f)
		out[i] = e
		if !exact || !onEdge {
			lossy = append(lossy, i)
		}
	}
	return &Binned{values: out, bounds: bt}, lossy, nil
}

func dateSlots(v vec.Vector) ([]vec.Slot, error) {
	src := v.(*Date)
	slots := make([]vec.Slot, src.Len())
	for i, t := range src.Times() {
		slots[i] = t
	}
	return slots, nil
}

func dateFromSlots(target vec.Descriptor, slots []vec.Slot) (vec.Vector, vec.LossySet, error) {
	out := make([]int64, len(slots))
	var lossy vec.LossySet
	for i, s := range slots {
		t, ok := s.(time.Time)
		if !ok {
			return nil, nil, slotShapeError(i, s, KindDate)
		}
		secs := t.Unix()
		d := floorDiv(secs, secondsPerDay)
		out[i] = d
		if secs != d*secondsPerDay || t.Nanosecond() != 0 {
			lossy = append(lossy, i)
		}
	}
	return &Date{days: out}, lossy, nil
}

func datetimeSlots(v vec.Vector) ([]vec.Slot, error) {
	src := v.(*Datetime)
	slots := make([]vec.Slot, src.Len())
	for i, t := range src.Times() {
		slots[i] = t
	}
	return slots, nil
}

func datetimeFromSlots(target vec.Descriptor, slots []vec.Slot) (vec.Vector, vec.LossySet, error) {
	out := make([]int64, len(slots))
	var lossy vec.LossySet
	for i, s := range slots {
		t, ok := s.(time.Time)
		if !ok {
			return nil, nil, slotShapeError(i, s, KindDatetime)
		}
		out[i] = t.Unix()
		if t.Nanosecond() != 0 {
			lossy = append(lossy, i)
		}
	}
	return &Datetime{secs: out}, lossy, nil
}

func listSlots(v vec.Vector) ([]vec.Slot, error) {
	src := v.(*List).items
	slots := make([]vec.Slot, len(src))
	for i, item := range src {
		slots[i] = item
	}
	return slots, nil
}

// listFromSlots wraps every slot shape into an element vector, so any kind
// with a canonical form casts into list without loss.
func listFromSlots(target vec.Descriptor, slots []vec.Slot) (vec.Vector, vec.LossySet, error) {
	out := make([]vec.Vector, len(slots))
	for i, s := range slots {
		switch x := s.(type) {
		case nil:
			out[i] = vec.Null()
		case vec.Vector:
			out[i] = x
		case bool:
			out[i] = NewLogical([]bool{x})
		case int64:
			out[i] = NewInteger([]int64{x})
		case float64:
			out[i] = NewDouble([]float64{x})
		case string:
			out[i] = NewCharacter([]string{x})
		case time.Time:
			out[i] = NewDatetime([]time.Time{x})
		default:
			return nil, nil, slotShapeError(i, s, KindList)
		}
	}
	return &List{items: out}, nil, nil
}
