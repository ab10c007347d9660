package robdd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func newNames(t *testing.T) *Names {
	t.Helper()
	m, err := New(0)
	require.NoError(t, err)
	return NewNames(m)
}

func TestDeclareIsIdempotentByName(t *testing.T) {
	nm := newNames(t)
	first, err := nm.Declare("a", "b")
	require.NoError(t, err)
	second, err := nm.Declare("a")
	require.NoError(t, err)
	require.Equal(t, first[0], second[0], "declaring an already-known name must not allocate a new variable")
}

func TestVarAndIndexOfRoundTrip(t *testing.T) {
	nm := newNames(t)
	_, err := nm.Declare("a")
	require.NoError(t, err)
	idx, err := nm.IndexOf("a")
	require.NoError(t, err)
	h, err := nm.Var("a")
	require.NoError(t, err)
	want, err := nm.Manager().Ithvar(idx)
	require.NoError(t, err)
	require.Equal(t, want, h)
	require.Equal(t, "a", nm.NameOf(idx))
}

func TestVarRejectsUndeclaredName(t *testing.T) {
	nm := newNames(t)
	_, err := nm.Var("ghost")
	require.ErrorIs(t, err, NotFound)
}

func TestAddExprBuildsExpectedFunction(t *testing.T) {
	nm := newNames(t)
	_, err := nm.Declare("a", "b")
	require.NoError(t, err)

	got, err := nm.AddExpr("a /\\ b")
	require.NoError(t, err)

	a, err := nm.Var("a")
	require.NoError(t, err)
	b, err := nm.Var("b")
	require.NoError(t, err)
	want, err := nm.Manager().Apply(a, b, OpAnd)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestAddExprSupportsIteAndNegation(t *testing.T) {
	nm := newNames(t)
	_, err := nm.Declare("a", "b", "c")
	require.NoError(t, err)

	got, err := nm.AddExpr("ite(a, b, !c)")
	require.NoError(t, err)

	a, _ := nm.Var("a")
	b, _ := nm.Var("b")
	c, _ := nm.Var("c")
	want, err := nm.Manager().Ite(a, b, nm.Manager().Not(c))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestAddExprSupportsQuantifiers(t *testing.T) {
	nm := newNames(t)
	_, err := nm.Declare("a", "b")
	require.NoError(t, err)

	got, err := nm.AddExpr(`\E a . (a /\ b)`)
	require.NoError(t, err)

	b, _ := nm.Var("b")
	require.Equal(t, b, got, "exists a . (a and b) == b")
}

func TestLetCofactorDispatch(t *testing.T) {
	nm := newNames(t)
	_, err := nm.Declare("a", "b")
	require.NoError(t, err)
	u, err := nm.AddExpr("a /\\ b")
	require.NoError(t, err)

	res, err := nm.Let(u, map[string]interface{}{"a": true})
	require.NoError(t, err)
	b, _ := nm.Var("b")
	require.Equal(t, b, res)
}

func TestLetRenameDispatch(t *testing.T) {
	nm := newNames(t)
	_, err := nm.Declare("a", "b")
	require.NoError(t, err)
	u, err := nm.AddExpr("a")
	require.NoError(t, err)

	res, err := nm.Let(u, map[string]interface{}{"a": "b"})
	require.NoError(t, err)
	b, _ := nm.Var("b")
	require.Equal(t, b, res)
}

func TestLetComposeDispatch(t *testing.T) {
	nm := newNames(t)
	_, err := nm.Declare("a", "b")
	require.NoError(t, err)
	u, err := nm.AddExpr("a")
	require.NoError(t, err)
	g, err := nm.AddExpr("b")
	require.NoError(t, err)

	res, err := nm.Let(u, map[string]interface{}{"a": g})
	require.NoError(t, err)
	require.Equal(t, g, res)
}

func TestNamesDumpLoadPreservesNamesAcrossSessions(t *testing.T) {
	nm := newNames(t)
	_, err := nm.Declare("a", "b")
	require.NoError(t, err)
	f, err := nm.AddExpr("a \\/ b")
	require.NoError(t, err)
	nm.Manager().Ref(f)

	var buf bytes.Buffer
	require.NoError(t, nm.Dump(&buf, f))

	other := newNames(t)
	roots, err := other.Load(&buf, true)
	require.NoError(t, err)
	require.Len(t, roots, 1)

	got, err := other.AddExpr("a \\/ b")
	require.NoError(t, err)
	require.Equal(t, roots[0], got)
}
