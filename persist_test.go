package robdd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDumpLoadRoundTripsASingleFunction(t *testing.T) {
	src, x0, x1 := two(t)
	f, err := src.Apply(x0, x1, OpAnd)
	require.NoError(t, err)
	src.Ref(f)

	var buf bytes.Buffer
	require.NoError(t, src.Dump(&buf, []string{"a", "b"}, f))

	dst, err := New(0)
	require.NoError(t, err)
	roots, names, err := dst.Load(&buf, true, nil)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	require.Contains(t, names, "a")
	require.Contains(t, names, "b")

	a, err := dst.Ithvar(names["a"])
	require.NoError(t, err)
	b, err := dst.Ithvar(names["b"])
	require.NoError(t, err)
	want, err := dst.Apply(a, b, OpAnd)
	require.NoError(t, err)
	require.Equal(t, want, roots[0])
}

func TestDumpLoadRoundTripsConstantRoots(t *testing.T) {
	src, err := New(2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.Dump(&buf, nil, True, False))

	dst, err := New(0)
	require.NoError(t, err)
	roots, _, err := dst.Load(&buf, true, nil)
	require.NoError(t, err)
	require.Equal(t, []Node{True, False}, roots)
}

func TestLoadReusesExistingVariableIndices(t *testing.T) {
	src, x0, x1 := two(t)
	f, err := src.Apply(x0, x1, OpOr)
	require.NoError(t, err)
	src.Ref(f)

	var buf bytes.Buffer
	require.NoError(t, src.Dump(&buf, []string{"a", "b"}, f))

	dst, err := New(2)
	require.NoError(t, err)
	existing := map[string]int32{"a": 0, "b": 1}
	_, names, err := dst.Load(&buf, false, existing)
	require.NoError(t, err)
	require.EqualValues(t, 0, names["a"])
	require.EqualValues(t, 1, names["b"])
	require.EqualValues(t, 2, dst.Varnum(), "reusing existing names must not declare duplicate variables")
}

func TestLoadRejectsNonContiguousLevels(t *testing.T) {
	dst, err := New(0)
	require.NoError(t, err)
	bad := bytes.NewBufferString(`{"level_of_var": {"a": 0, "b": 5}, "roots": ["T"]}`)
	_, _, err = dst.Load(bad, true, nil)
	require.ErrorIs(t, err, IOError)
}

func TestLoadRejectsMissingLevelOfVar(t *testing.T) {
	dst, err := New(0)
	require.NoError(t, err)
	bad := bytes.NewBufferString(`{"roots": []}`)
	_, _, err = dst.Load(bad, true, nil)
	require.ErrorIs(t, err, IOError)
}
