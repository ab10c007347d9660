package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boolshare/robdd"
)

func TestLoadSessionWithMissingPathReturnsFreshSession(t *testing.T) {
	s, err := loadSession(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	require.NotNil(t, s.names)
	require.Empty(t, s.roots)
}

func TestSaveThenLoadSessionRoundTripsNamedRoots(t *testing.T) {
	s := newSession()
	_, err := s.names.Declare("a", "b")
	require.NoError(t, err)
	f, err := s.names.AddExpr("a /\\ b")
	require.NoError(t, err)
	s.names.Manager().Ref(f)
	s.roots["f"] = f

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, saveSession(path, s))

	reloaded, err := loadSession(path)
	require.NoError(t, err)
	require.Contains(t, reloaded.roots, "f")

	a, err := reloaded.names.Var("a")
	require.NoError(t, err)
	b, err := reloaded.names.Var("b")
	require.NoError(t, err)
	want, err := reloaded.names.Manager().Apply(a, b, robdd.OpAnd)
	require.NoError(t, err)
	require.Equal(t, want, reloaded.roots["f"])
}

func TestNewSessionHasNoDeclaredVariables(t *testing.T) {
	s := newSession()
	require.Zero(t, s.names.Manager().Varnum())
}
