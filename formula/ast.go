package formula

import (
	"strconv"
	"strings"

	"github.com/vogtb/lazysheet/cellvalue"
	"github.com/vogtb/lazysheet/position"
)

// Evaluator is the sheet-side seam an AST calls back into to read a
// sibling cell's value during Execute, matching spec.md §6
// ("AST.execute(sheet) re-enters Cell.value()"). The formula package
// never imports sheet directly: sheet implements this interface instead,
// keeping the cyclic cell<->sheet<->AST relationship expressed through an
// interface boundary, per spec.md §9.
type Evaluator interface {
	ValueAt(p position.Position) cellvalue.CellValue
}

// Node is the AST contract spec.md §6 specifies: Execute, referenced
// positions, and a canonical re-serialization, named ASTNode in the
// teacher's parser.go.
type Node interface {
	Execute(e Evaluator) (float64, *cellvalue.ArithKind)
	ReferencedCells() []position.Position
	Canonical() string
}

// numberNode is a numeric literal.
type numberNode struct {
	value float64
	raw   string
}

func (n *numberNode) Execute(Evaluator) (float64, *cellvalue.ArithKind) {
	return n.value, nil
}
func (n *numberNode) ReferencedCells() []position.Position { return nil }
func (n *numberNode) Canonical() string                    { return trimNumber(n.value) }

// cellRefNode reads another cell's numeric value.
type cellRefNode struct {
	pos position.Position
}

func (n *cellRefNode) Execute(e Evaluator) (float64, *cellvalue.ArithKind) {
	v := e.ValueAt(n.pos)
	switch v.Kind() {
	case cellvalue.KindNumber:
		num, _ := v.AsNumber()
		return num, nil
	case cellvalue.KindText:
		text, _ := v.AsText()
		if text == "" {
			return 0, nil // empty referenced cell reads as 0, teacher convention
		}
		if num, err := strconv.ParseFloat(text, 64); err == nil {
			return num, nil // a raw-text cell holding a numeral still participates in arithmetic
		}
		kind := cellvalue.Value
		return 0, &kind
	default:
		kind := cellvalue.Ref
		return 0, &kind
	}
}
func (n *cellRefNode) ReferencedCells() []position.Position {
	return []position.Position{n.pos}
}
func (n *cellRefNode) Canonical() string { return n.pos.String() }

// rangeNode is A1:B2-style range used only as a function argument.
type rangeNode struct {
	from, to position.Position
}

func (n *rangeNode) cells() []position.Position {
	var out []position.Position
	for r := n.from.Row; r <= n.to.Row; r++ {
		for c := n.from.Col; c <= n.to.Col; c++ {
			out = append(out, position.New(r, c))
		}
	}
	return out
}

func (n *rangeNode) Execute(Evaluator) (float64, *cellvalue.ArithKind) {
	kind := cellvalue.Value
	return 0, &kind // a bare range is not itself a value; only valid as a function argument
}
func (n *rangeNode) ReferencedCells() []position.Position { return n.cells() }
func (n *rangeNode) Canonical() string {
	return n.from.String() + ":" + n.to.String()
}

// binaryNode applies a binary arithmetic operator.
type binaryNode struct {
	op          byte // '+', '-', '*', '/', '^'
	left, right Node
}

func (n *binaryNode) Execute(e Evaluator) (float64, *cellvalue.ArithKind) {
	lv, lerr := n.left.Execute(e)
	if lerr != nil {
		return 0, lerr
	}
	rv, rerr := n.right.Execute(e)
	if rerr != nil {
		return 0, rerr
	}
	switch n.op {
	case '+':
		return lv + rv, nil
	case '-':
		return lv - rv, nil
	case '*':
		return lv * rv, nil
	case '/':
		if rv == 0 {
			kind := cellvalue.Div0
			return 0, &kind
		}
		return lv / rv, nil
	case '^':
		return power(lv, rv), nil
	default:
		kind := cellvalue.Value
		return 0, &kind
	}
}
func (n *binaryNode) ReferencedCells() []position.Position {
	return append(n.left.ReferencedCells(), n.right.ReferencedCells()...)
}
func (n *binaryNode) Canonical() string {
	// rank: 0 for + -, 1 for * /, 2 for ^; operators are left-associative.
	rank := func(op byte) int { return strings.IndexByte("+-*/^", op) / 2 }
	left, right := n.left.Canonical(), n.right.Canonical()
	if l, ok := n.left.(*binaryNode); ok && rank(l.op) < rank(n.op) {
		left = "(" + left + ")"
	}
	if r, ok := n.right.(*binaryNode); ok && rank(r.op) <= rank(n.op) {
		right = "(" + right + ")"
	}
	return left + string(n.op) + right
}

func power(base, exp float64) float64 {
	result := 1.0
	negative := exp < 0
	if negative {
		exp = -exp
	}
	whole := int(exp)
	for i := 0; i < whole; i++ {
		result *= base
	}
	if negative {
		if result == 0 {
			return 0
		}
		return 1 / result
	}
	return result
}

// unaryMinusNode negates its operand.
type unaryMinusNode struct {
	operand Node
}

func (n *unaryMinusNode) Execute(e Evaluator) (float64, *cellvalue.ArithKind) {
	v, err := n.operand.Execute(e)
	if err != nil {
		return 0, err
	}
	return -v, nil
}
func (n *unaryMinusNode) ReferencedCells() []position.Position {
	return n.operand.ReferencedCells()
}
func (n *unaryMinusNode) Canonical() string {
	if _, ok := n.operand.(*binaryNode); ok {
		return "-(" + n.operand.Canonical() + ")"
	}
	return "-" + n.operand.Canonical()
}

// callNode invokes one of the small built-in aggregate functions kept
// from the teacher's builtin.go (see SPEC_FULL.md §3): SUM, AVERAGE, MIN,
// MAX, each taking either cell references or a range.
type callNode struct {
	name string
	args []Node
}

func (n *callNode) Execute(e Evaluator) (float64, *cellvalue.ArithKind) {
	var values []float64
	for _, arg := range n.args {
		if r, ok := arg.(*rangeNode); ok {
			for _, p := range r.cells() {
				v, err := (&cellRefNode{pos: p}).Execute(e)
				if err != nil {
					return 0, err
				}
				values = append(values, v)
			}
			continue
		}
		v, err := arg.Execute(e)
		if err != nil {
			return 0, err
		}
		values = append(values, v)
	}
	switch strings.ToUpper(n.name) {
	case "SUM":
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum, nil
	case "AVERAGE":
		if len(values) == 0 {
			kind := cellvalue.Value
			return 0, &kind
		}
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values)), nil
	case "MIN":
		if len(values) == 0 {
			kind := cellvalue.Value
			return 0, &kind
		}
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}
		return m, nil
	case "MAX":
		if len(values) == 0 {
			kind := cellvalue.Value
			return 0, &kind
		}
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return m, nil
	default:
		kind := cellvalue.Value
		return 0, &kind
	}
}

func (n *callNode) ReferencedCells() []position.Position {
	var out []position.Position
	for _, arg := range n.args {
		out = append(out, arg.ReferencedCells()...)
	}
	return out
}

func (n *callNode) Canonical() string {
	parts := make([]string, len(n.args))
	for i, arg := range n.args {
		parts[i] = arg.Canonical()
	}
	return strings.ToUpper(n.name) + "(" + strings.Join(parts, ",") + ")"
}

func trimNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	return s
}

// executeRoot runs the root node and maps its result onto a CellValue,
// the boundary between formula.Node.Execute's (float64, *ArithKind) pair
// and cellvalue.CellValue spec.md's Expression.value() needs.
func executeRoot(root Node, e Evaluator) cellvalue.CellValue {
	v, err := root.Execute(e)
	if err != nil {
		return cellvalue.ArithErr(*err)
	}
	return cellvalue.Number(v)
}

// AST is the parsed, executable formula spec.md's Formula expression
// variant wraps. It satisfies the Node contract plus the top-level
// Value() convenience that maps execution onto a cellvalue.CellValue.
type AST struct {
	root Node
}

// Value executes the AST and produces the CellValue spec.md's Formula
// expression needs: Number on success, ArithError on arithmetic failure.
func (a *AST) Value(e Evaluator) cellvalue.CellValue {
	return executeRoot(a.root, e)
}

// ReferencedCells returns the sorted-unique position list spec.md §3
// requires for a Formula expression.
func (a *AST) ReferencedCells() []position.Position {
	refs := a.root.ReferencedCells()
	position.Sort(refs)
	return position.Dedup(refs)
}

// Canonical returns the canonical expression text, used (with a leading
// '=' prepended by the caller) as the Formula expression's text().
func (a *AST) Canonical() string {
	return a.root.Canonical()
}
