package robdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwapPreservesFunctionMeaning(t *testing.T) {
	m, x0, x1 := two(t)
	f, err := m.Apply(x0, x1, OpAnd)
	require.NoError(t, err)
	m.Ref(f)

	before := m.Satcount(f)
	require.NoError(t, m.Swap(0, 1))
	after := m.Satcount(f)
	require.Equal(t, before, after, "swapping adjacent levels must not change what any live node denotes")

	// the variable that used to be at level 0 is now at level 1
	require.EqualValues(t, 1, m.LevelOfVar(0))
	require.EqualValues(t, 0, m.LevelOfVar(1))
}

func TestSwapRejectsNonAdjacentLevels(t *testing.T) {
	m, err := New(3)
	require.NoError(t, err)
	err = m.Swap(0, 2)
	require.ErrorIs(t, err, BadArgument)
}

func TestReorderNeverIncreasesLiveNodeCount(t *testing.T) {
	m, err := New(4, AutoReorder(false))
	require.NoError(t, err)
	vars := make([]Node, 4)
	for i := range vars {
		vars[i], err = m.Ithvar(int32(i))
		require.NoError(t, err)
	}
	// A chain of xors over variables declared in a bad order tends to bloat
	// under some orderings; sifting must never leave more nodes live than it
	// found.
	f := vars[0]
	for i := 1; i < len(vars); i++ {
		f, err = m.Apply(f, vars[i], OpXor)
		require.NoError(t, err)
	}
	m.Ref(f)
	before := m.liveCount()
	require.NoError(t, m.Reorder())
	after := m.liveCount()
	require.LessOrEqual(t, after, before)
}

func TestReorderPreservesSatcount(t *testing.T) {
	m, err := New(4, AutoReorder(false))
	require.NoError(t, err)
	vars := make([]Node, 4)
	for i := range vars {
		vars[i], err = m.Ithvar(int32(i))
		require.NoError(t, err)
	}
	f, err := m.Apply(vars[0], vars[1], OpAnd)
	require.NoError(t, err)
	f, err = m.Apply(f, vars[2], OpOr)
	require.NoError(t, err)
	f, err = m.Apply(f, vars[3], OpXor)
	require.NoError(t, err)
	m.Ref(f)

	before := m.Satcount(f)
	require.NoError(t, m.Reorder())
	after := m.Satcount(f)
	require.Equal(t, before, after)
}

func TestReorderToMatchesRequestedOrder(t *testing.T) {
	m, err := New(3, AutoReorder(false))
	require.NoError(t, err)
	require.NoError(t, m.ReorderTo(map[int32]int32{0: 2, 1: 1, 2: 0}))
	require.EqualValues(t, 2, m.LevelOfVar(0))
	require.EqualValues(t, 1, m.LevelOfVar(1))
	require.EqualValues(t, 0, m.LevelOfVar(2))
}

func TestGroupAdjacentPlacesPairsTogether(t *testing.T) {
	m, err := New(4, AutoReorder(false))
	require.NoError(t, err)
	require.NoError(t, m.GroupAdjacent([][2]int32{{3, 1}}))
	l3, l1 := m.LevelOfVar(3), m.LevelOfVar(1)
	require.EqualValues(t, 1, l1-l3, "variable 1 must sit directly below its paired variable 3")
}

func TestMaybeAutoReorderTriggersPastThreshold(t *testing.T) {
	m, err := New(2)
	require.NoError(t, err)
	m.reorderThreshold = 1
	x0, err := m.Ithvar(0)
	require.NoError(t, err)
	x1, err := m.Ithvar(1)
	require.NoError(t, err)
	_, err = m.Apply(x0, x1, OpAnd)
	require.NoError(t, err)
	require.Greater(t, m.reorders, 0, "crossing reorderThreshold live nodes must arm an automatic reorder")
}

// biimpChain builds AND_i (vars[i] <=> vars[pair[i]]) over whatever pairing
// the caller's vars slice encodes; used to compare node counts between an
// interleaved and a grouped variable order for the same function family.
func biimpChain(t *testing.T, m *Manager, a, b []Node) Node {
	t.Helper()
	f := True
	for i := range a {
		pair, err := m.Apply(a[i], b[i], OpBiimp)
		require.NoError(t, err)
		next, err := m.Apply(f, pair, OpAnd)
		require.NoError(t, err)
		// Keep the running conjunction referenced so a collection during
		// the next Apply does not free it.
		m.Ref(next)
		m.Deref(f)
		f = next
	}
	return f
}

func TestInterleavedOrderIsExponentiallySmallerThanGrouped(t *testing.T) {
	const n = 6

	interleaved, err := New(0, AutoReorder(false))
	require.NoError(t, err)
	cur := make([]Node, n)
	next := make([]Node, n)
	for i := 0; i < n; i++ {
		ci, err := interleaved.Declare()
		require.NoError(t, err)
		cur[i], err = interleaved.Ithvar(ci)
		require.NoError(t, err)
		ni, err := interleaved.Declare()
		require.NoError(t, err)
		next[i], err = interleaved.Ithvar(ni)
		require.NoError(t, err)
	}
	fInterleaved := biimpChain(t, interleaved, cur, next)
	interleaved.Ref(fInterleaved)

	grouped, err := New(0, AutoReorder(false))
	require.NoError(t, err)
	cur = make([]Node, n)
	next = make([]Node, n)
	for i := 0; i < n; i++ {
		ci, err := grouped.Declare()
		require.NoError(t, err)
		cur[i], err = grouped.Ithvar(ci)
		require.NoError(t, err)
	}
	for i := 0; i < n; i++ {
		ni, err := grouped.Declare()
		require.NoError(t, err)
		next[i], err = grouped.Ithvar(ni)
		require.NoError(t, err)
	}
	fGrouped := biimpChain(t, grouped, cur, next)
	grouped.Ref(fGrouped)

	require.Less(t, interleaved.liveCount(), grouped.liveCount(),
		"interleaving matched variable pairs must keep the diagram far smaller than grouping them")
}
