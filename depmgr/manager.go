// Package depmgr implements the dependency manager spec.md §4.3
// specifies: it owns the reference graph, the per-cell parent-set index,
// and the value cache, and mediates every graph mutation so that no
// cycle can ever be committed.
//
// The value cache is backed by github.com/pmylund/go-cache (present in
// the retrieval pack via homelight-worksheets's go.mod) configured with
// cache.NoExpiration: entries are never time-expired, only explicitly
// invalidated via Delete, matching spec.md's "None means invalidated"
// cache semantics (SPEC_FULL.md §2).
package depmgr

import (
	gocache "github.com/pmylund/go-cache"

	"github.com/vogtb/lazysheet/cellvalue"
	"github.com/vogtb/lazysheet/position"
	"github.com/vogtb/lazysheet/refgraph"
)

// Manager owns the graph G, the parent index P, and the value cache C
// from spec.md §4.3.
type Manager struct {
	graph   *refgraph.Graph
	parents map[position.Position][]position.Position
	cache   *gocache.Cache
}

// New returns an empty dependency manager.
func New() *Manager {
	return &Manager{
		graph:   refgraph.New(),
		parents: make(map[position.Position][]position.Position),
		cache:   gocache.New(gocache.NoExpiration, gocache.NoExpiration),
	}
}

// TryAddNewVertex implements spec.md §4.3's try_add_new_vertex: for a
// cell not yet present in P. Returns false (leaving all state
// untouched) if committing the edges would create a cycle.
func (m *Manager) TryAddNewVertex(v position.Position, parents []position.Position) bool {
	if len(parents) == 0 {
		return true
	}
	candidate := m.graph.Clone()
	for _, parent := range parents {
		candidate.AddEdge(parent, v)
	}
	if candidate.IsCyclic() {
		return false
	}
	m.graph.Swap(candidate)
	m.parents[v] = append([]position.Position(nil), parents...)
	return true
}

// TryUpdateVertex implements spec.md §4.3's try_update_vertex: for a
// cell whose previous parent set is P[v] (empty if absent). On success,
// invalidates the cache starting at v before recording the new parent
// set, matching the ordering spec.md specifies.
func (m *Manager) TryUpdateVertex(v position.Position, parents []position.Position) bool {
	oldParents := m.parents[v]
	candidate := m.graph.Clone()
	for _, parent := range oldParents {
		candidate.RemoveEdge(parent, v)
	}
	for _, parent := range parents {
		candidate.AddEdge(parent, v)
	}
	if candidate.IsCyclic() {
		return false
	}
	m.graph.Swap(candidate)
	m.Invalidate(v)
	if len(parents) == 0 {
		delete(m.parents, v)
	} else {
		m.parents[v] = append([]position.Position(nil), parents...)
	}
	return true
}

// IsCached reports whether p currently has a live cache entry.
func (m *Manager) IsCached(p position.Position) bool {
	_, found := m.cache.Get(p.Key())
	return found
}

// GetCached returns the cached value at p. Undefined (returns the zero
// CellValue) if p is not cached; callers must guard with IsCached, per
// spec.md §4.3.
func (m *Manager) GetCached(p position.Position) cellvalue.CellValue {
	v, found := m.cache.Get(p.Key())
	if !found {
		return cellvalue.CellValue{}
	}
	return v.(cellvalue.CellValue)
}

// PutCache writes C[p] = Some(v).
func (m *Manager) PutCache(p position.Position, v cellvalue.CellValue) {
	m.cache.Set(p.Key(), v, gocache.NoExpiration)
}

// Invalidate walks the downstream transitive closure from v (every cell
// that references v directly or transitively, reachable because edges
// are stored parent->child) and clears the cache entry for each visited
// position, per spec.md §4.3's invalidate and the edge-direction note in
// spec.md §9.
func (m *Manager) Invalidate(v position.Position) {
	m.graph.DFS(v, func(p position.Position) {
		m.cache.Delete(p.Key())
	})
}

// Parents returns the exact parent set currently backing v's edges
// (spec.md §3's parent index P), or nil if v has none recorded.
func (m *Manager) Parents(v position.Position) []position.Position {
	return m.parents[v]
}
