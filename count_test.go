package robdd

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSatcountOfConstants(t *testing.T) {
	m, err := New(3)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(0), m.Satcount(False))
	require.Equal(t, big.NewInt(8), m.Satcount(True), "TRUE is satisfied by all 2^3 assignments")
}

func TestSatcountOfASingleVariable(t *testing.T) {
	m, x0, _ := two(t)
	idx2, err := m.Declare()
	require.NoError(t, err)
	_, err = m.Ithvar(idx2)
	require.NoError(t, err)
	// 3 variables declared; x0 alone is satisfied by 4 of the 8 assignments.
	require.Equal(t, big.NewInt(4), m.Satcount(x0))
}

func TestSatcountOverScalesToExplicitUniverse(t *testing.T) {
	m, x0, _ := two(t)
	idx2, err := m.Declare()
	require.NoError(t, err)
	_, err = m.Ithvar(idx2)
	require.NoError(t, err)

	over1, err := m.SatcountOver(x0, 1)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1), over1, "x0 alone, over a 1-variable universe, is satisfied by 1 of 2 assignments")

	over3, err := m.SatcountOver(x0, 3)
	require.NoError(t, err)
	require.Equal(t, m.Satcount(x0), over3, "nvars == every declared variable must match Satcount")
}

func TestSatcountOverRejectsUniverseSmallerThanSupport(t *testing.T) {
	m, x0, x1 := two(t)
	f, err := m.Apply(x0, x1, OpAnd)
	require.NoError(t, err)
	_, err = m.SatcountOver(f, 1)
	require.ErrorIs(t, err, BadArgument)
}

func TestSatcountMatchesPickIterCubeCount(t *testing.T) {
	m, x0, x1 := two(t)
	f, err := m.Apply(x0, x1, OpXor)
	require.NoError(t, err)

	var total int64
	m.PickIter(f, func(a Assignment) bool {
		free := 0
		for _, b := range a {
			if b == nil {
				free++
			}
		}
		total += int64(1) << uint(free)
		return true
	})
	require.Equal(t, m.Satcount(f), big.NewInt(total))
}

func TestPickIterStopsEarlyWhenVisitReturnsFalse(t *testing.T) {
	m, x0, x1 := two(t)
	f, err := m.Apply(x0, x1, OpOr)
	require.NoError(t, err)
	calls := 0
	m.PickIter(f, func(Assignment) bool {
		calls++
		return false
	})
	require.Equal(t, 1, calls)
}

func TestSupportReportsOnlyMentionedVariables(t *testing.T) {
	m, x0, _ := two(t)
	require.Equal(t, []int32{0}, m.Support(x0))
	require.Empty(t, m.Support(True))
}

func TestAllnodesVisitsEveryReachableNodeOnce(t *testing.T) {
	m, x0, x1 := two(t)
	f, err := m.Apply(x0, x1, OpAnd)
	require.NoError(t, err)
	seen := map[int32]bool{}
	err = m.Allnodes(func(id int32, level int32, low, high Node) error {
		require.False(t, seen[id], "each node must be visited exactly once")
		seen[id] = true
		return nil
	}, f)
	require.NoError(t, err)
	require.NotEmpty(t, seen)
}

func TestToExprRendersConstantsDirectly(t *testing.T) {
	m, err := New(1)
	require.NoError(t, err)
	require.Equal(t, "TRUE", m.ToExpr(True, nil))
	require.Equal(t, "FALSE", m.ToExpr(False, nil))
}
