package cell

import (
	"strings"

	"github.com/vogtb/lazysheet/cellvalue"
	"github.com/vogtb/lazysheet/formula"
	"github.com/vogtb/lazysheet/position"
)

// expression is the polymorphic variant spec.md §3/§4.4/§9 specifies as a
// tagged sum type with three shapes: Empty, RawText, Formula. Modeled as
// a small interface with three unexported implementations rather than
// inheritance, per spec.md §9 ("the closed set is the correct trade-off").
type expression interface {
	value(e formula.Evaluator) cellvalue.CellValue
	text() string
	referencedCells() []position.Position
}

// emptyExpr is the Empty variant: value Text(""), no references, text "".
type emptyExpr struct{}

func (emptyExpr) value(formula.Evaluator) cellvalue.CellValue { return cellvalue.Text("") }
func (emptyExpr) text() string                                { return "" }
func (emptyExpr) referencedCells() []position.Position        { return nil }

// rawTextExpr is the RawText variant. A leading "'" is an escape: stripped
// from the value but retained in the text, per spec.md §3 and §6.
type rawTextExpr struct {
	raw string // the text exactly as set, escape prefix included
}

func newRawText(s string) rawTextExpr {
	return rawTextExpr{raw: s}
}

func (r rawTextExpr) value(formula.Evaluator) cellvalue.CellValue {
	if strings.HasPrefix(r.raw, "'") {
		return cellvalue.Text(r.raw[1:])
	}
	return cellvalue.Text(r.raw)
}
func (r rawTextExpr) text() string                         { return r.raw }
func (r rawTextExpr) referencedCells() []position.Position { return nil }

// formulaExpr is the Formula variant: built from text s where s[0]=='='
// and len(s)>1; the AST is parsed from s[1:].
type formulaExpr struct {
	ast *formula.AST
}

// newFormula parses body (the formula text with the leading '=' already
// stripped) into a formulaExpr. A parse failure is a fatal
// formula-construction error that propagates out of Cell.Set, per
// spec.md §4.4 and §9 (FormulaImpl's constructor assumes a non-empty,
// already-validated body; the sheet's classifier, in cell.Set, is what
// prevents an empty string from ever reaching here).
func newFormula(body string) (formulaExpr, error) {
	ast, err := formula.Parse(body)
	if err != nil {
		return formulaExpr{}, err
	}
	return formulaExpr{ast: ast}, nil
}

func (f formulaExpr) value(e formula.Evaluator) cellvalue.CellValue {
	return f.ast.Value(e)
}
func (f formulaExpr) text() string {
	return "=" + f.ast.Canonical()
}
func (f formulaExpr) referencedCells() []position.Position {
	return f.ast.ReferencedCells()
}

// classify selects the expression variant for text, per spec.md §4.4:
//
//	text == ""                      -> Empty
//	text[0] != '=' or len(text)==1   -> RawText
//	else                             -> Formula
func classify(text string) (expression, error) {
	switch {
	case text == "":
		return emptyExpr{}, nil
	case text[0] != '=' || len(text) == 1:
		return newRawText(text), nil
	default:
		return newFormula(text[1:])
	}
}
