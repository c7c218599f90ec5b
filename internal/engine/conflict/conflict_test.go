package conflict_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/engine/conflict"
	"go.trai.ch/paket/internal/engine/resolver"
	"go.trai.ch/zerr"
)

func id(token string) domain.Identity {
	return domain.MustParseIdentity(token)
}

func diamond(bDep string) *domain.Graph {
	g := domain.NewGraph()
	g.Set(id("root@1"), id("A@1.0"), id("B@1.0"))
	g.Set(id("A@1.0"), id("C@1.0"))
	g.Set(id("B@1.0"), id(bDep))
	g.Set(id("C@1.0"))
	g.Set(id("C@2.0"))
	return g
}

func TestDetect_TwoVersionsUnderRoot(t *testing.T) {
	g := domain.NewGraph()
	g.Set(id("A@1"))
	g.Set(id("A@2"))
	g.Set(id("root@1"), id("A@1"), id("A@2"))

	got, err := conflict.Detect(g, id("root@1"))
	require.NoError(t, err)

	assert.Equal(t, []domain.ConflictPair{domain.NewConflictPair(id("A@1"), id("A@2"))}, got)
}

func TestDetect_NoConflictInDiamond(t *testing.T) {
	got, err := conflict.Detect(diamond("C@1.0"), id("root@1"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDetect_TransitiveConflict(t *testing.T) {
	got, err := conflict.Detect(diamond("C@2.0"), id("root@1"))
	require.NoError(t, err)

	assert.Equal(t, []string{"C@1.0 <-> C@2.0"}, domain.ConflictStrings(got))
}

func TestDetect_IgnoresUnreachablePackages(t *testing.T) {
	g := diamond("C@1.0")
	g.Set(id("orphan@1"), id("C@2.0"))

	got, err := conflict.Detect(g, id("root@1"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDetect_AllPairwiseCombinations(t *testing.T) {
	g := domain.NewGraph()
	g.Set(id("root@1"), id("x@3"), id("x@1"), id("x@2"), id("y@1"))
	g.Set(id("x@1"))
	g.Set(id("x@2"))
	g.Set(id("x@3"), id("x@1"))
	g.Set(id("y@1"))

	got, err := conflict.Detect(g, id("root@1"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"x@1 <-> x@2",
		"x@1 <-> x@3",
		"x@2 <-> x@3",
	}, domain.ConflictStrings(got))
}

func TestDetect_PropagatesTraversalErrors(t *testing.T) {
	g := domain.NewGraph()
	g.Set(id("root@1"), id("gone@1"))

	_, err := conflict.Detect(g, id("root@1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestFailOnConflict(t *testing.T) {
	g := diamond("C@2.0")
	policy := conflict.FailOnConflict{}

	t.Run("passes through without conflicts", func(t *testing.T) {
		out, err := policy.Resolve(g, nil)
		require.NoError(t, err)
		assert.Same(t, g, out)
	})

	t.Run("fails on any conflict", func(t *testing.T) {
		pairs := []domain.ConflictPair{domain.NewConflictPair(id("C@1.0"), id("C@2.0"))}

		out, err := policy.Resolve(g, pairs)
		require.Error(t, err)
		assert.Nil(t, out)
		assert.ErrorIs(t, err, domain.ErrConflictDetected)

		zErr, ok := err.(*zerr.Error)
		require.True(t, ok, "expected *zerr.Error, got %T", err)
		assert.Equal(t, []string{"C@1.0 <-> C@2.0"}, zErr.Metadata()["conflicts"])
		assert.Equal(t, 1, zErr.Metadata()["count"])
	})
}

func TestPreferHighest(t *testing.T) {
	g := diamond("C@2.0")
	pairs, err := conflict.Detect(g, id("root@1"))
	require.NoError(t, err)

	out, err := conflict.PreferHighest{}.Resolve(g, pairs)
	require.NoError(t, err)
	require.NotSame(t, g, out)

	deps, _ := out.DependenciesOf(id("A@1.0"))
	assert.Equal(t, []domain.Identity{id("C@2.0")}, deps)

	// The input graph is left untouched.
	deps, _ = g.DependenciesOf(id("A@1.0"))
	assert.Equal(t, []domain.Identity{id("C@1.0")}, deps)

	order, err := resolver.Resolve(out, id("root@1"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Identity{id("C@2.0"), id("A@1.0"), id("B@1.0"), id("root@1")}, order)

	remaining, err := conflict.Detect(out, id("root@1"))
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestPreferHighest_SemanticOrdering(t *testing.T) {
	g := domain.NewGraph()
	g.Set(id("root@1"), id("lib@1.9.0"), id("lib@1.10.0"))
	g.Set(id("lib@1.9.0"))
	g.Set(id("lib@1.10.0"))

	pairs, err := conflict.Detect(g, id("root@1"))
	require.NoError(t, err)

	out, err := conflict.PreferHighest{}.Resolve(g, pairs)
	require.NoError(t, err)

	deps, _ := out.DependenciesOf(id("root@1"))
	assert.Equal(t, []domain.Identity{id("lib@1.10.0")}, deps, "duplicate edges collapse onto the winner")
}

func TestNewPolicy(t *testing.T) {
	p, err := conflict.NewPolicy("")
	require.NoError(t, err)
	assert.IsType(t, conflict.FailOnConflict{}, p)

	p, err = conflict.NewPolicy(domain.PolicyPreferHighest)
	require.NoError(t, err)
	assert.IsType(t, conflict.PreferHighest{}, p)

	_, err = conflict.NewPolicy("coin-flip")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownPolicy)
}

func TestPreferHighest_LosingRootStillConflicts(t *testing.T) {
	g := domain.NewGraph()
	g.Set(id("lib@1"), id("x@1"))
	g.Set(id("x@1"), id("lib@2"))
	g.Set(id("lib@2"))

	pairs, err := conflict.Detect(g, id("lib@1"))
	require.NoError(t, err)

	out, err := conflict.PreferHighest{}.Resolve(g, pairs)
	require.NoError(t, err)

	remaining, err := conflict.Detect(out, id("lib@1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"lib@1 <-> lib@2"}, domain.ConflictStrings(remaining))
}
