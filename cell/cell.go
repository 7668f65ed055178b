// Package cell implements the Cell type and its Expression variants,
// spec.md §4.4. A Cell is a non-owning participant: it holds back
// references to the dependency manager and the sheet-as-evaluator, both
// of which outlive it, per spec.md §5 ("Ownership") and §9 ("Cyclic
// objects").
package cell

import (
	"github.com/vogtb/lazysheet/cellvalue"
	"github.com/vogtb/lazysheet/formula"
	"github.com/vogtb/lazysheet/position"
)

// Manager is the subset of depmgr.Manager's API a Cell needs: the cache
// operations from spec.md §4.3. Declared as an interface here (rather
// than importing depmgr directly) so the cyclic cell<->manager
// relationship is expressed at an interface boundary, per spec.md §9.
type Manager interface {
	IsCached(p position.Position) bool
	GetCached(p position.Position) cellvalue.CellValue
	PutCache(p position.Position, v cellvalue.CellValue)
}

// Cell is a single addressable unit holding a polymorphic expression
// variant. It queries the manager for cached values and is reset (to
// Empty) when cleared, per spec.md §4.4.
type Cell struct {
	pos     position.Position
	expr    expression
	manager Manager
	eval    formula.Evaluator
}

// New constructs a Cell at pos bound to manager and eval, initialized to
// Empty. The sheet is responsible for constructing every Cell it hosts
// (spec.md §5, "the sheet exclusively owns cells").
func New(pos position.Position, manager Manager, eval formula.Evaluator) *Cell {
	return &Cell{pos: pos, expr: emptyExpr{}, manager: manager, eval: eval}
}

// Position returns the cell's bound grid coordinate.
func (c *Cell) Position() position.Position { return c.pos }

// Set selects the expression variant for text and installs it, per
// spec.md §4.4's classification rule. A formula parse failure leaves c's
// previous expression untouched and is returned as an error.
func (c *Cell) Set(text string) error {
	expr, err := classify(text)
	if err != nil {
		return err
	}
	c.expr = expr
	return nil
}

// Clear is equivalent to Set(""), per spec.md §4.4.
func (c *Cell) Clear() {
	c.expr = emptyExpr{}
}

// Value returns c's current value, consulting the manager's cache first
// and computing + caching on a miss, per spec.md §4.4's Cell.value()
// algorithm. Computing a Formula's value calls AST.Execute, which
// recurses into sibling cells' Value() through the sheet evaluator,
// re-entering this memoized path.
func (c *Cell) Value() cellvalue.CellValue {
	if c.manager.IsCached(c.pos) {
		return c.manager.GetCached(c.pos)
	}
	v := c.expr.value(c.eval)
	c.manager.PutCache(c.pos, v)
	return v
}

// Text returns the canonical textual form of c: the escape prefix
// retained for RawText, and the "="-prefixed canonical expression for
// Formula, per spec.md §3 and §4.4.
func (c *Cell) Text() string {
	return c.expr.text()
}

// ReferencedCells returns the Formula's sorted-unique position list, or
// empty for Empty/RawText, per spec.md §4.4.
func (c *Cell) ReferencedCells() []position.Position {
	return c.expr.referencedCells()
}
