package refgraph

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vogtb/lazysheet/position"
)

func TestAddEdgeIdempotent(t *testing.T) {
	g := New()
	a, b := position.New(0, 0), position.New(0, 1)
	g.AddEdge(a, b)
	g.AddEdge(a, b)
	var seen []position.Position
	g.DFS(a, func(p position.Position) { seen = append(seen, p) })
	assert.ElementsMatch(t, []position.Position{a, b}, seen)
}

func TestRemoveEdgeRetainsVertices(t *testing.T) {
	g := New()
	a, b := position.New(0, 0), position.New(0, 1)
	g.AddEdge(a, b)
	g.RemoveEdge(a, b)
	assert.False(t, g.IsCyclic())
	var fromA []position.Position
	g.DFS(a, func(p position.Position) { fromA = append(fromA, p) })
	assert.Equal(t, []position.Position{a}, fromA)
}

func TestIsCyclicDetectsSelfAndIndirectCycles(t *testing.T) {
	g := New()
	a, b, c := position.New(0, 0), position.New(0, 1), position.New(0, 2)
	g.AddEdge(a, b)
	g.AddEdge(b, c)
	require.False(t, g.IsCyclic())

	g.AddEdge(c, a)
	assert.True(t, g.IsCyclic())

	self := New()
	self.AddEdge(a, a)
	assert.True(t, self.IsCyclic())
}

func TestCloneIsIndependent(t *testing.T) {
	g := New()
	a, b := position.New(0, 0), position.New(0, 1)
	g.AddEdge(a, b)

	clone := g.Clone()
	clone.AddEdge(b, a) // would cycle the clone, not the original

	assert.True(t, clone.IsCyclic())
	assert.False(t, g.IsCyclic())
}

func TestSwapExchangesContents(t *testing.T) {
	g1, g2 := New(), New()
	a, b := position.New(0, 0), position.New(0, 1)
	g1.AddEdge(a, b)

	g2.Swap(g1)

	var fromA []position.Position
	g2.DFS(a, func(p position.Position) { fromA = append(fromA, p) })
	assert.ElementsMatch(t, []position.Position{a, b}, fromA)

	var g1FromA []position.Position
	g1.DFS(a, func(p position.Position) { g1FromA = append(g1FromA, p) })
	assert.Equal(t, []position.Position{a}, g1FromA)
}

func TestDFSVisitsDownstreamClosureOnce(t *testing.T) {
	g := New()
	// diamond: a -> b -> d, a -> c -> d
	a, b, c, d := position.New(0, 0), position.New(0, 1), position.New(0, 2), position.New(0, 3)
	g.AddEdge(a, b)
	g.AddEdge(a, c)
	g.AddEdge(b, d)
	g.AddEdge(c, d)

	var seen []position.Position
	g.DFS(a, func(p position.Position) { seen = append(seen, p) })

	sort.Slice(seen, func(i, j int) bool { return seen[i].Less(seen[j]) })
	assert.Equal(t, []position.Position{a, b, c, d}, seen)
}
