package dataset

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/funvibe/funvec/pkg/kinds"
	"github.com/funvibe/funvec/pkg/vec"
)

const dateLayout = "2006-01-02"

// Layouts accepted for datetime cells, tried in order. A bare date
// reads as midnight UTC.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	dateLayout,
}

// LoadColumn reads one column from a source and builds a vector of the
// declared type. A zero declared descriptor means the type is inferred
// from the data. Relative source paths resolve against baseDir.
//
// The returned positions mark elements the declared type could not
// represent exactly, e.g. labels outside a declared categorical's
// levels or fractional values under a declared integer type.
func LoadColumn(baseDir string, src Source, column string, declared vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	path := src.Path
	if baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	name := src.ColumnName(column)

	switch src.Format {
	case "csv":
		cells, err := readCSVColumn(path, name)
		if err != nil {
			return nil, nil, err
		}
		v, lossy, err := FromCells(cells, declared)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: column %q: %w", path, name, err)
		}
		return v, lossy, nil
	case "sqlite":
		values, err := readSQLiteColumn(path, src.Table, name)
		if err != nil {
			return nil, nil, err
		}
		v, lossy, err := fromValues(values, declared)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: column %q: %w", path, name, err)
		}
		return v, lossy, nil
	default:
		return nil, nil, fmt.Errorf("%s: unknown source format %q", path, src.Format)
	}
}

// InferType guesses the type of a column of text cells. Every cell must
// fit the guessed type, so a single odd cell demotes the whole column
// to character. An empty column infers as null.
//
// Logical inference only accepts spelled-out true/false tokens; "1" and
// "0" columns infer as integer.
func InferType(cells []string) vec.Descriptor {
	if len(cells) == 0 {
		return vec.NullType()
	}
	switch {
	case allCells(cells, isLogicalCell):
		return kinds.LogicalType()
	case allCells(cells, isIntegerCell):
		return kinds.IntegerType()
	case allCells(cells, isDoubleCell):
		return kinds.DoubleType()
	case allCells(cells, isDateCell):
		return kinds.DateType()
	case allCells(cells, isDatetimeCell):
		return kinds.DatetimeType()
	default:
		return kinds.CharacterType()
	}
}

// FromCells builds a vector of the target type from text cells. A zero
// target descriptor means the type is inferred first. Cells that do not
// parse as the target's element type are errors; cells that parse but
// fall outside the target's parameters (categorical levels, bin ranges)
// are reported as lossy positions instead.
func FromCells(cells []string, target vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	if target.Kind == "" {
		target = InferType(cells)
	}

	switch target.Kind {
	case vec.KindNull:
		if len(cells) != 0 {
			return nil, nil, fmt.Errorf("a null column cannot hold values")
		}
		return vec.Null(), nil, nil

	case kinds.KindLogical:
		values := make([]bool, len(cells))
		for i, cell := range cells {
			b, err := strconv.ParseBool(cell)
			if err != nil {
				return nil, nil, fmt.Errorf("cell %d: cannot parse %q as logical", i, cell)
			}
			values[i] = b
		}
		return kinds.NewLogical(values), nil, nil

	case kinds.KindInteger:
		values := make([]int64, len(cells))
		for i, cell := range cells {
			n, err := strconv.ParseInt(cell, 10, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("cell %d: cannot parse %q as integer", i, cell)
			}
			values[i] = n
		}
		return kinds.NewInteger(values), nil, nil

	case kinds.KindDouble:
		values, err := parseDoubleCells(cells)
		if err != nil {
			return nil, nil, err
		}
		return kinds.NewDouble(values), nil, nil

	case kinds.KindCharacter:
		return kinds.NewCharacter(cells), nil, nil

	case kinds.KindDate:
		times := make([]time.Time, len(cells))
		for i, cell := range cells {
			t, err := time.Parse(dateLayout, cell)
			if err != nil {
				return nil, nil, fmt.Errorf("cell %d: cannot parse %q as date", i, cell)
			}
			times[i] = t
		}
		return kinds.NewDate(times), nil, nil

	case kinds.KindDatetime:
		times := make([]time.Time, len(cells))
		for i, cell := range cells {
			t, ok := parseDatetimeCell(cell)
			if !ok {
				return nil, nil, fmt.Errorf("cell %d: cannot parse %q as datetime", i, cell)
			}
			times[i] = t
		}
		return kinds.NewDatetime(times), nil, nil

	case kinds.KindCategorical:
		out, lossy, err := vec.CastTo(kinds.NewCharacter(cells), target)
		if err != nil {
			return nil, nil, err
		}
		return out, lossy, nil

	case kinds.KindBinned:
		values, err := parseDoubleCells(cells)
		if err != nil {
			return nil, nil, err
		}
		out, lossy, err := vec.CastTo(kinds.NewDouble(values), target)
		if err != nil {
			return nil, nil, err
		}
		return out, lossy, nil

	default:
		return nil, nil, fmt.Errorf("cannot read %s values from text cells", target)
	}
}

// fromValues builds a vector from SQLite's dynamically typed cells. An
// all-text column is handed to FromCells so declared types can parse
// it; otherwise consecutive same-type cells become runs that the
// combiner folds into one vector, which resolves mixed integer and
// real columns to double and flags any precision loss.
func fromValues(values []any, declared vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	if cells, ok := asTextCells(values); ok {
		return FromCells(cells, declared)
	}

	var (
		runs   []vec.Vector
		starts []int
	)
	for i := 0; i < len(values); {
		switch values[i].(type) {
		case int64:
			start := i
			var run []int64
			for ; i < len(values); i++ {
				n, ok := values[i].(int64)
				if !ok {
					break
				}
				run = append(run, n)
			}
			runs = append(runs, kinds.NewInteger(run))
			starts = append(starts, start)
		case float64:
			start := i
			var run []float64
			for ; i < len(values); i++ {
				f, ok := values[i].(float64)
				if !ok {
					break
				}
				run = append(run, f)
			}
			runs = append(runs, kinds.NewDouble(run))
			starts = append(starts, start)
		case string:
			start := i
			var run []string
			for ; i < len(values); i++ {
				s, ok := values[i].(string)
				if !ok {
					break
				}
				run = append(run, s)
			}
			runs = append(runs, kinds.NewCharacter(run))
			starts = append(starts, start)
		case nil:
			return nil, nil, fmt.Errorf("cell %d: NULL values are not supported", i)
		default:
			return nil, nil, fmt.Errorf("cell %d: unsupported value type %T", i, values[i])
		}
	}

	combined, reports, err := vec.Combine(runs, vec.Options{})
	if err != nil {
		return nil, nil, fmt.Errorf("column mixes cell types: %w", err)
	}

	var lossy vec.LossySet
	for _, report := range reports {
		for _, pos := range report.Positions {
			lossy = append(lossy, starts[report.Input]+pos)
		}
	}

	return castDeclared(combined, lossy, declared)
}

// castDeclared casts a naturally typed vector to the declared type,
// merging cast loss into the positions already collected.
func castDeclared(v vec.Vector, lossy vec.LossySet, declared vec.Descriptor) (vec.Vector, vec.LossySet, error) {
	if declared.Kind == "" || v.Descriptor().Equal(declared) {
		return v, lossy, nil
	}
	out, more, err := vec.CastTo(v, declared)
	if err != nil {
		return nil, nil, err
	}
	return out, mergeLossy(lossy, more), nil
}

// mergeLossy unions two position sets, keeping the result sorted and
// free of duplicates.
func mergeLossy(a, b vec.LossySet) vec.LossySet {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	merged := make([]int, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	sort.Ints(merged)

	out := merged[:1]
	for _, pos := range merged[1:] {
		if pos != out[len(out)-1] {
			out = append(out, pos)
		}
	}
	return vec.LossySet(out)
}

// asTextCells extracts the cells of an all-text column. An empty column
// counts as text so declared types still apply to it.
func asTextCells(values []any) ([]string, bool) {
	cells := make([]string, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		cells[i] = s
	}
	return cells, true
}

func parseDoubleCells(cells []string) ([]float64, error) {
	values := make([]float64, len(cells))
	for i, cell := range cells {
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("cell %d: cannot parse %q as double", i, cell)
		}
		values[i] = f
	}
	return values, nil
}

func parseDatetimeCell(cell string) (time.Time, bool) {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func allCells(cells []string, ok func(string) bool) bool {
	for _, cell := range cells {
		if !ok(cell) {
			return false
		}
	}
	return true
}

func isLogicalCell(cell string) bool {
	switch cell {
	case "true", "false", "TRUE", "FALSE", "True", "False":
		return true
	}
	return false
}

func isIntegerCell(cell string) bool {
	_, err := strconv.ParseInt(cell, 10, 64)
	return err == nil
}

func isDoubleCell(cell string) bool {
	_, err := strconv.ParseFloat(cell, 64)
	return err == nil
}

func isDateCell(cell string) bool {
	_, err := time.Parse(dateLayout, cell)
	return err == nil
}

func isDatetimeCell(cell string) bool {
	_, ok := parseDatetimeCell(cell)
	return ok
}
