package robdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyCacheIsInitialized(t *testing.T) {
	m, x0, x1 := two(t)
	// Apply dereferences m.applycache on every non-constant call; this would
	// panic outright if initCaches ever again forgot to build it.
	_, err := m.Apply(x0, x1, OpAnd)
	require.NoError(t, err)
	require.NotNil(t, m.applycache)
}

func TestApplyCacheHitReturnsSameHandle(t *testing.T) {
	m, x0, x1 := two(t)
	first, err := m.Apply(x0, x1, OpAnd)
	require.NoError(t, err)
	second, err := m.Apply(x0, x1, OpAnd)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestSetCacheHardCapLimitsResize(t *testing.T) {
	m, err := New(4, Cacheratio(100))
	require.NoError(t, err)
	m.setCacheHardCap(8)
	m.itecache.resize(10000)
	require.LessOrEqual(t, len(m.itecache.table), primeGte(8))
}

func TestConfigureMaxCacheHardAppliesImmediately(t *testing.T) {
	m, err := New(4, Cacheratio(100))
	require.NoError(t, err)
	prior := m.Configure(MaxCacheHard(4))
	require.Zero(t, prior.MaxCacheHard, "prior value must reflect the state before this call")
	m.itecache.resize(10000)
	require.LessOrEqual(t, len(m.itecache.table), primeGte(4))
}
