package kinds

import (
	"time"

	"github.com/funvibe/funvec/pkg/vec"
)

const secondsPerDay = 86400

// Date is a vector of calendar days, stored as days since 1970-01-01 UTC.
type Date struct {
	days []int64
}

// NewDate returns a date vector from instants, truncated to their UTC day.
func NewDate(times []time.Time) *Date {
	days := make([]int64, len(times))
	for i, t := range times {
		days[i] = floorDiv(t.Unix(), secondsPerDay)
	}
	return &Date{days: days}
}

// NewDateDays returns a date vector holding a copy of days.
func NewDateDays(days []int64) *Date {
	return &Date{days: append([]int64(nil), days...)}
}

func (v *Date) Descriptor() vec.Descriptor { return DateType() }
func (v *Date) Len() int                   { return len(v.days) }
func (v *Date) Zero() vec.Vector           { return &Date{} }

// Days returns a copy of the elements as days since the epoch.
func (v *Date) Days() []int64 { return append([]int64(nil), v.days...) }

// Times returns the elements as UTC midnight instants.
func (v *Date) Times() []time.Time {
	times := make([]time.Time, len(v.days))
	for i, d := range v.days {
		times[i] = time.Unix(d*secondsPerDay, 0).UTC()
	}
	return times
}

func (v *Date) Append(other vec.Vector) (vec.Vector, error) {
	o, ok := other.(*Date)
	if !ok {
		return nil, appendMismatch(v.Descriptor(), other.Descriptor())
	}
	out := make([]int64, 0, len(v.days)+len(o.days))
	out = append(out, v.days...)
	out = append(out, o.days...)
	return &Date{days: out}, nil
}

// Datetime is a vector of instants, stored as whole seconds since the epoch
// in UTC. Sub-second precision is not representable.
type Datetime struct {
	secs []int64
}

// NewDatetime returns a datetime vector from instants, truncated to whole
// seconds.
func NewDatetime(times []time.Time) *Datetime {
	secs := make([]int64, len(times))
	for i, t := range times {
		secs[i] = t.Unix()
	}
	return &Datetime{secs: secs}
}

// NewDatetimeUnix returns a datetime vector holding a copy of secs.
func NewDatetimeUnix(secs []int64) *Datetime {
	return &Datetime{secs: append([]int64(nil), secs...)}
}

func (v *Datetime) Descriptor() vec.Descriptor { return DatetimeType() }
func (v *Datetime) Len() int                   { return len(v.secs) }
func (v *Datetime) Zero() vec.Vector           { return &Datetime{} }

// Unix returns a copy of the elements as seconds since the epoch.
func (v *Datetime) Unix() []int64 { return append([]int64(nil), v.secs...) }

// Times returns the elements as UTC instants.
func (v *Datetime) Times() []time.Time {
	times := make([]time.Time, len(v.secs))
	for i, s := range v.secs {
		times[i] = time.Unix(s, 0).UTC()
	}
	return times
}

func (v *Datetime) Append(other vec.Vector) (vec.Vector, error) {
	o, ok := other.(*Datetime)
	if !ok {
		return nil, appendMismatch(v.Descriptor(), other.Descriptor())
	}
	out := make([]int64, 0, len(v.secs)+len(o.secs))
	out = append(out, v.secs...)
	out = append(out, o.secs...)
	return &Datetime{secs: out}, nil
}

// floorDiv divides rounding toward negative infinity, so pre-epoch instants
// land on the correct day.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
