package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/funvec/internal/dataset"
	"github.com/funvibe/funvec/pkg/kinds"
	"github.com/funvibe/funvec/pkg/vec"
)

func TestParseArgs(t *testing.T) {
	positional, flags, err := parseArgs([]string{
		"a.csv", "--column", "score", "b.db", "--lax", "--to", "double", "--table", "results",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "b.db"}, positional)
	assert.True(t, flags.lax)
	assert.Equal(t, "double", flags.to)
	assert.Equal(t, "score", flags.column)
	assert.Equal(t, "results", flags.table)
}

func TestParseArgsSingleDash(t *testing.T) {
	_, flags, err := parseArgs([]string{"-lax", "-column", "score"})
	require.NoError(t, err)
	assert.True(t, flags.lax)
	assert.Equal(t, "score", flags.column)
}

func TestParseArgsMissingValue(t *testing.T) {
	_, _, err := parseArgs([]string{"--to"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a value")
}

func TestParseArgsUnknownFlag(t *testing.T) {
	_, _, err := parseArgs([]string{"--frobnicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}

func TestResolveTypes(t *testing.T) {
	d, err := resolveTypes([]string{"integer", "double"}, false)
	require.NoError(t, err)
	assert.True(t, d.Equal(kinds.DoubleType()))

	d, err = resolveTypes([]string{"logical", "integer", "double"}, false)
	require.NoError(t, err)
	assert.True(t, d.Equal(kinds.DoubleType()))

	d, err = resolveTypes([]string{"null", "date"}, false)
	require.NoError(t, err)
	assert.True(t, d.Equal(kinds.DateType()))
}

func TestResolveTypesLax(t *testing.T) {
	_, err := resolveTypes([]string{"categorical[a,b]", "categorical[c]"}, false)
	require.Error(t, err)

	d, err := resolveTypes([]string{"categorical[a,b]", "categorical[c]"}, true)
	require.NoError(t, err)
	assert.Equal(t, "categorical<a,b,c>", d.String())
}

func TestResolveTypesErrors(t *testing.T) {
	_, err := resolveTypes([]string{"integer", "quaternion"}, false)
	require.Error(t, err)

	_, err = resolveTypes([]string{"integer", "character"}, false)
	require.Error(t, err)
	var incompatible *vec.IncompatibleTypeError
	assert.ErrorAs(t, err, &incompatible)
}

func TestFileSource(t *testing.T) {
	src, err := fileSource("scores.csv", "")
	require.NoError(t, err)
	assert.Equal(t, dataset.Source{Path: "scores.csv", Format: "csv"}, src)

	src, err = fileSource("scores.db", "results")
	require.NoError(t, err)
	assert.Equal(t, dataset.Source{Path: "scores.db", Format: "sqlite", Table: "results"}, src)

	_, err = fileSource("scores.db", "")
	require.Error(t, err)

	_, err = fileSource("scores.csv", "results")
	require.Error(t, err)

	_, err = fileSource("scores.parquet", "")
	require.Error(t, err)
}

func TestCastColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scores.csv")
	require.NoError(t, os.WriteFile(path, []byte("score\n1\n2\n10\n"), 0o644))

	out, loadLoss, castLoss, err := castColumn(path, "", "score", kinds.DoubleType())
	require.NoError(t, err)
	assert.True(t, loadLoss.Empty())
	assert.True(t, castLoss.Empty())

	doubles, ok := out.(*kinds.Double)
	require.True(t, ok, "got %T", out)
	assert.Equal(t, []float64{1, 2, 10}, doubles.Floats())
}

func TestCastColumnLossy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scores.csv")
	require.NoError(t, os.WriteFile(path, []byte("score\n1\n2\n10.5\n"), 0o644))

	out, _, castLoss, err := castColumn(path, "", "score", kinds.IntegerType())
	require.NoError(t, err)
	assert.Equal(t, vec.LossySet{2}, castLoss)

	ints, ok := out.(*kinds.Integer)
	require.True(t, ok, "got %T", out)
	assert.Equal(t, []int64{1, 2, 10}, ints.Ints())
}

func TestCombineColumn(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "q1.csv"), []byte("score\n1\n2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "q2.csv"), []byte("score\n2.5\n"), 0o644))

	sources := []dataset.Source{
		{Path: "q1.csv", Format: "csv"},
		{Path: "q2.csv", Format: "csv"},
	}

	result, loads, reports, err := combineColumn(dir, sources, "score", nil, vec.Options{})
	require.NoError(t, err)
	assert.Empty(t, loads)
	assert.Empty(t, reports)

	doubles, ok := result.(*kinds.Double)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, []float64{1, 2, 2.5}, doubles.Floats())
}

func TestCombineColumnDeclaredType(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "q1.csv"), []byte("grade\nlow\nhigh\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "q2.csv"), []byte("grade\nawful\n"), 0o644))

	sources := []dataset.Source{
		{Path: "q1.csv", Format: "csv"},
		{Path: "q2.csv", Format: "csv"},
	}
	typeOf := func(string) (vec.Descriptor, error) {
		return kinds.CategoricalType(kinds.NewLevels("low", "high")), nil
	}

	result, loads, reports, err := combineColumn(dir, sources, "grade", typeOf, vec.Options{})
	require.NoError(t, err)
	assert.Empty(t, reports)
	require.Len(t, loads, 1)
	assert.Equal(t, 1, loads[0].Input)
	assert.Equal(t, vec.LossySet{0}, loads[0].Positions)

	cat, ok := result.(*kinds.Categorical)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, []int{0, 1, -1}, cat.Indexes())
}

func TestCombineColumnForcedTarget(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "q1.csv"), []byte("score\n1\n2\n"), 0o644))

	sources := []dataset.Source{{Path: "q1.csv", Format: "csv"}}
	opts := vec.Options{To: kinds.DoubleType()}

	result, _, _, err := combineColumn(dir, sources, "score", nil, opts)
	require.NoError(t, err)
	assert.True(t, result.Descriptor().Equal(kinds.DoubleType()))
}

func TestCombineColumnIncompatible(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "q1.csv"), []byte("score\n1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "q2.csv"), []byte("score\nalice\n"), 0o644))

	sources := []dataset.Source{
		{Path: "q1.csv", Format: "csv"},
		{Path: "q2.csv", Format: "csv"},
	}

	_, _, _, err := combineColumn(dir, sources, "score", nil, vec.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input 1")
}
