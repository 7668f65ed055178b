package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vogtb/lazysheet/cellvalue"
	"github.com/vogtb/lazysheet/position"
)

// fakeManager is a minimal cell.Manager stub backed by a plain map,
// sufficient to exercise Cell.Value()'s cache-then-compute path without
// pulling in depmgr (which would also pull in its graph/cycle behavior
// this test has no use for).
type fakeManager struct {
	cache map[position.Position]cellvalue.CellValue
	puts  int
}

func newFakeManager() *fakeManager {
	return &fakeManager{cache: make(map[position.Position]cellvalue.CellValue)}
}

func (m *fakeManager) IsCached(p position.Position) bool {
	_, ok := m.cache[p]
	return ok
}
func (m *fakeManager) GetCached(p position.Position) cellvalue.CellValue { return m.cache[p] }
func (m *fakeManager) PutCache(p position.Position, v cellvalue.CellValue) {
	m.cache[p] = v
	m.puts++
}

// fakeEvaluator resolves sibling values from a plain map, for Formula
// cells under test.
type fakeEvaluator struct {
	values map[position.Position]cellvalue.CellValue
}

func (e *fakeEvaluator) ValueAt(p position.Position) cellvalue.CellValue {
	if v, ok := e.values[p]; ok {
		return v
	}
	return cellvalue.Text("")
}

func TestEmptyCell(t *testing.T) {
	c := New(position.New(0, 0), newFakeManager(), &fakeEvaluator{})
	require.NoError(t, c.Set(""))
	assert.Equal(t, "", c.Text())
	assert.Nil(t, c.ReferencedCells())
	v := c.Value()
	s, ok := v.AsText()
	assert.True(t, ok)
	assert.Equal(t, "", s)
}

func TestRawTextSingleEquals(t *testing.T) {
	c := New(position.New(0, 0), newFakeManager(), &fakeEvaluator{})
	require.NoError(t, c.Set("="))
	assert.Equal(t, "=", c.Text())
	s, _ := c.Value().AsText()
	assert.Equal(t, "=", s)
}

func TestRawTextEscape(t *testing.T) {
	c := New(position.New(0, 0), newFakeManager(), &fakeEvaluator{})
	require.NoError(t, c.Set("'=1+2"))
	assert.Equal(t, "'=1+2", c.Text())
	s, _ := c.Value().AsText()
	assert.Equal(t, "=1+2", s)
}

func TestFormulaCell(t *testing.T) {
	c := New(position.New(0, 0), newFakeManager(), &fakeEvaluator{})
	require.NoError(t, c.Set("=2+3"))
	assert.Equal(t, "=2+3", c.Text())
	n, ok := c.Value().AsNumber()
	require.True(t, ok)
	assert.Equal(t, 5.0, n)
}

func TestFormulaParseErrorLeavesExpressionUnset(t *testing.T) {
	c := New(position.New(0, 0), newFakeManager(), &fakeEvaluator{})
	err := c.Set("=2+")
	assert.Error(t, err)
	// nothing was installed: the cell is still its original Empty state.
	assert.Equal(t, "", c.Text())
}

func TestValueUsesCacheOnHit(t *testing.T) {
	m := newFakeManager()
	pos := position.New(0, 0)
	c := New(pos, m, &fakeEvaluator{})
	require.NoError(t, c.Set("=1+1"))

	v1 := c.Value()
	n1, _ := v1.AsNumber()
	assert.Equal(t, 2.0, n1)
	assert.Equal(t, 1, m.puts)

	// mutate the cache directly to a sentinel value the expression could
	// never itself produce, to prove the second read comes from cache.
	m.cache[pos] = cellvalue.Number(999)
	v2 := c.Value()
	n2, _ := v2.AsNumber()
	assert.Equal(t, 999.0, n2)
	assert.Equal(t, 1, m.puts) // no additional compute/put on a cache hit
}

func TestClearResetsToEmpty(t *testing.T) {
	c := New(position.New(0, 0), newFakeManager(), &fakeEvaluator{})
	require.NoError(t, c.Set("hello"))
	c.Clear()
	assert.Equal(t, "", c.Text())
}
