package kinds

import (
	"math"

	"github.com/funvibe/funvec/pkg/vec"
)

// The cast table. Casts are directional and may lose information; every
// lossy position is reported, never silently dropped. Self pairs handle
// re-parameterization: relabeling a categorical onto another level set,
// re-quantizing a binned vector onto another binning.
//
// There is deliberately no cast between character and the numeric or
// temporal kinds. Parsing text is a job for the ingestion layer, not for
// the cast table.
func init() {
	vec.MustRegisterCast(KindLogical, KindLogical, func(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
		return NewLogical(v.(*Logical).values), nil, nil
	})
	vec.MustRegisterCast(KindInteger, KindInteger, func(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
		return NewInteger(v.(*Integer).values), nil, nil
	})
	vec.MustRegisterCast(KindDouble, KindDouble, func(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
		return NewDouble(v.(*Double).values), nil, nil
	})
	vec.MustRegisterCast(KindCharacter, KindCharacter, func(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
		return NewCharacter(v.(*Character).values), nil, nil
	})
	vec.MustRegisterCast(KindList, KindList, func(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
		return NewList(v.(*List).items), nil, nil
	})
	vec.MustRegisterCast(KindDate, KindDate, func(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
		return NewDateDays(v.(*Date).days), nil, nil
	})
	vec.MustRegisterCast(KindDatetime, KindDatetime, func(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
		return NewDatetimeUnix(v.(*Datetime).secs), nil, nil
	})

	vec.MustRegisterCast(KindLogical, KindInteger, castLogicalToInteger)
	vec.MustRegisterCast(KindLogical, KindDouble, castLogicalToDouble)
	vec.MustRegisterCast(KindInteger, KindLogical, castIntegerToLogical)
	vec.MustRegisterCast(KindInteger, KindDouble, castIntegerToDouble)
	vec.MustRegisterCast(KindDouble, KindLogical, castDoubleToLogical)
	vec.MustRegisterCast(KindDouble, KindInteger, castDoubleToInteger)

	vec.MustRegisterCast(KindDate, KindDatetime, castDateToDatetime)
	vec.MustRegisterCast(KindDatetime, KindDate, castDatetimeToDate)

	vec.MustRegisterCast(KindCategorical, KindCategorical, castCategoricalToCategorical)
	vec.MustRegisterCast(KindCategorical, KindCharacter, castCategoricalToCharacter)
	vec.MustRegisterCast(KindCharacter, KindCategorical, castCharacterToCategorical)

	vec.MustRegisterCast(KindBinned, KindBinned, castBinnedToBinned)
	vec.MustRegisterCast(KindBinned, KindDouble, castBinnedToDouble)
	vec.MustRegisterCast(KindDouble, KindBinned, castDoubleToBinned)
}

func castLogicalToInteger(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	src := v.(*Logical).values
	out := make([]int64, len(src))
	for i, x := range src {
		if x {
			out[i] = 1
		}
	}
	return &Integer{values: out}, nil, nil
}

func castLogicalToDouble(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	src := v.(*Logical).values
	out := make([]float64, len(src))
	for i, x := range src {
		if x {
			out[i] = 1
		}
	}
	return &Double{values: out}, nil, nil
}

func castIntegerToLogical(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	src := v.(*Integer).values
	out := make([]bool, len(src))
	var lossy vec.LossySet
	for i, x := range src {
		out[i] = x != 0
		if x != 0 && x != 1 {
			lossy = append(lossy, i)
		}
	}
	return &Logical{values: out}, lossy, nil
}

func castIntegerToDouble(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	src := v.(*Integer).values
	out := make([]float64, len(src))
	var lossy vec.LossySet
	for i, x := range src {
		f, exact := int64ToFloat64(x)
		out[i] = f
		if !exact {
			lossy = append(lossy, i)
		}
	}
	return &Double{values: out}, lossy, nil
}

func castDoubleToLogical(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	src := v.(*Double).values
	out := make([]bool, len(src))
	var lossy vec.LossySet
	for i, x := range src {
		out[i] = x != 0
		if x != 0 && x != 1 {
			lossy = append(lossy, i)
		}
	}
	return &Logical{values: out}, lossy, nil
}

func castDoubleToInteger(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	src := v.(*Double).values
	out := make([]int64, len(src))
	var lossy vec.LossySet
	for i, x := range src {
		n, exact := float64ToInt64(x)
		out[i] = n
		if !exact {
			lossy = append(lossy, i)
		}
	}
	return &Integer{values: out}, lossy, nil
}

func castDateToDatetime(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	src := v.(*Date).days
	out := make([]int64, len(src))
	var lossy vec.LossySet
	for i, d := range src {
		s, exact := daysToSeconds(d)
		out[i] = s
		if !exact {
			lossy = append(lossy, i)
		}
	}
	return &Datetime{secs: out}, lossy, nil
}

func castDatetimeToDate(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	src := v.(*Datetime).secs
	out := make([]int64, len(src))
	var lossy vec.LossySet
	for i, s := range src {
		d := floorDiv(s, secondsPerDay)
		out[i] = d
		if s != d*secondsPerDay {
			lossy = append(lossy, i)
		}
	}
	return &Date{days: out}, lossy, nil
}

// castCategoricalToCategorical relabels onto the target level set. Elements
// whose label is not a target level lose it: index -1, position flagged.
// Elements already without a level stay that way unflagged.
func castCategoricalToCategorical(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	lt, err := levelsOf(target)
	if err != nil {
		return nil, nil, err
	}
	src := v.(*Categorical)
	out := make([]int, len(src.indexes))
	var lossy vec.LossySet
	for i, j := range src.indexes {
		if j < 0 {
			out[i] = -1
			continue
		}
		k := lt.Index(src.levels.Label(j))
		out[i] = k
		if k < 0 {
			lossy = append(lossy, i)
		}
	}
	return &Categorical{indexes: out, levels: lt}, lossy, nil
}

func castCategoricalToCharacter(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	src := v.(*Categorical)
	out := make([]string, len(src.indexes))
	var lossy vec.LossySet
	for i, j := range src.indexes {
		if j < 0 {
			lossy = append(lossy, i)
			continue
		}
		out[i] = src.levels.Label(j)
	}
	return &Character{values: out}, lossy, nil
}

func castCharacterToCategorical(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	lt, err := levelsOf(target)
	if err != nil {
		return nil, nil, err
	}
	src := v.(*Character).values
	out := make([]int, len(src))
	var lossy vec.LossySet
	for i, label := range src {
		j := lt.Index(label)
		out[i] = j
		if j < 0 {
			lossy = append(lossy, i)
		}
	}
	return &Categorical{indexes: out, levels: lt}, lossy, nil
}

func castBinnedToBinned(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	bt, err := boundsOf(target)
	if err != nil {
		return nil, nil, err
	}
	src := v.(*Binned).values
	out := make([]float64, len(src))
	var lossy vec.LossySet
	for i, x := range src {
		e, exact := bt.Quantize(x)
		out[i] = e
		if !exact {
			lossy = append(lossy, i)
		}
	}
	return &Binned{values: out, bounds: bt}, lossy, nil
}

func castBinnedToDouble(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	return NewDouble(v.(*Binned).values), nil, nil
}

func castDoubleToBinned(v vec.Vector, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	bt, err := boundsOf(target)
	if err != nil {
		return nil, nil, err
	}
	src := v.(*Double).values
	out := make([]float64, len(src))
	var lossy vec.LossySet
	for i, x := range src {
		e, exact := bt.Quantize(x)
		out[i] = e
		if !exact {
			lossy = append(lossy, i)
		}
	}
	return &Binned{values: out, bounds: bt}, lossy, nil
}

// daysToSeconds widens epoch days to epoch seconds. Day counts whose
// seconds do not fit in int64 saturate and count as inexact.
func daysToSeconds(d int64) (int64, bool) {
	if d > math.MaxInt64/secondsPerDay {
		return math.MaxInt64, false
	}
	if d < math.MinInt64/secondsPerDay {
		return math.MinInt64, false
	}
	return d * secondsPerDay, true
}

// int64ToFloat64 converts without losing the integer when it is exactly
// representable. The guard keeps the back-conversion inside int64 range.
func int64ToFloat64(v int64) (float64, bool) {
	f := float64(v)
	if f >= 9223372036854775808.0 {
		return f, false
	}
	return f, int64(f) == v
}

// float64ToInt64 truncates toward zero. NaN maps to 0 and out-of-range
// values saturate; both count as inexact.
func float64ToInt64(x float64) (int64, bool) {
	if math.IsNaN(x) {
		return 0, false
	}
	if x >= 9223372036854775808.0 {
		return math.MaxInt64, false
	}
	if x < -9223372036854775808.0 {
		return math.MinInt64, false
	}
	t := math.Trunc(x)
	return int64(t), t == x
}
