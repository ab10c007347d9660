package robdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func two(t *testing.T) (*Manager, Node, Node) {
	t.Helper()
	m, err := New(2)
	require.NoError(t, err)
	x0, err := m.Ithvar(0)
	require.NoError(t, err)
	x1, err := m.Ithvar(1)
	require.NoError(t, err)
	return m, x0, x1
}

func TestApplyAndOrDeMorgan(t *testing.T) {
	m, x0, x1 := two(t)

	and, err := m.Apply(x0, x1, OpAnd)
	require.NoError(t, err)
	or, err := m.Apply(x0, x1, OpOr)
	require.NoError(t, err)

	notAnd := m.Not(and)
	orOfNots, err := m.Apply(m.Not(x0), m.Not(x1), OpOr)
	require.NoError(t, err)
	require.Equal(t, orOfNots, notAnd, "De Morgan: not(a and b) == (not a) or (not b)")

	notOr := m.Not(or)
	andOfNots, err := m.Apply(m.Not(x0), m.Not(x1), OpAnd)
	require.NoError(t, err)
	require.Equal(t, andOfNots, notOr, "De Morgan: not(a or b) == (not a) and (not b)")
}

func TestApplyIsCommutative(t *testing.T) {
	m, x0, x1 := two(t)
	for _, op := range []Operator{OpAnd, OpOr, OpXor, OpBiimp} {
		ab, err := m.Apply(x0, x1, op)
		require.NoError(t, err)
		ba, err := m.Apply(x1, x0, op)
		require.NoError(t, err)
		require.Equalf(t, ab, ba, "operator %s must be commutative", op)
	}
}

func TestApplyIdentitiesWithConstants(t *testing.T) {
	m, x0, _ := two(t)

	and1, err := m.Apply(x0, True, OpAnd)
	require.NoError(t, err)
	require.Equal(t, x0, and1)

	and0, err := m.Apply(x0, False, OpAnd)
	require.NoError(t, err)
	require.Equal(t, False, and0)

	or0, err := m.Apply(x0, False, OpOr)
	require.NoError(t, err)
	require.Equal(t, x0, or0)

	xorSelf, err := m.Apply(x0, x0, OpXor)
	require.NoError(t, err)
	require.Equal(t, False, xorSelf)
}

func TestIteReducesToApplyForms(t *testing.T) {
	m, x0, x1 := two(t)

	iteResult, err := m.Ite(x0, x1, False)
	require.NoError(t, err)
	andResult, err := m.Apply(x0, x1, OpAnd)
	require.NoError(t, err)
	require.Equal(t, andResult, iteResult, "ite(f, g, FALSE) == f and g")

	iteOr, err := m.Ite(x0, True, x1)
	require.NoError(t, err)
	orResult, err := m.Apply(x0, x1, OpOr)
	require.NoError(t, err)
	require.Equal(t, orResult, iteOr, "ite(f, TRUE, h) == f or h")

	iteNot, err := m.Ite(x0, False, True)
	require.NoError(t, err)
	require.Equal(t, m.Not(x0), iteNot, "ite(f, FALSE, TRUE) == not f")
}

func TestNotIsConstantTimeSignFlip(t *testing.T) {
	m, x0, _ := two(t)
	require.Equal(t, -x0, m.Not(x0))
	require.Equal(t, x0, m.Not(m.Not(x0)))
}

func TestEqualComparesHandlesDirectly(t *testing.T) {
	m, x0, _ := two(t)
	same, err := m.Apply(x0, True, OpAnd)
	require.NoError(t, err)
	require.True(t, m.Equal(x0, same))
}
