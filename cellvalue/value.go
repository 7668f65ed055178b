// Package cellvalue implements the CellValue tagged union (spec.md §3),
// adapted from the teacher's Primitive/ErrorCode/SpreadsheetError trio in
// cell.go, narrowed to the three shapes spec.md specifies: Text, Number,
// and ArithError.
package cellvalue

import "fmt"

// ArithKind enumerates the arithmetic-error kinds spec.md defines.
type ArithKind uint8

const (
	// Ref indicates a formula referenced a position that could not be
	// resolved to a value (propagated from a dependency's own error).
	Ref ArithKind = iota
	// Value indicates an operand had the wrong type for the operator.
	Value
	// Div0 indicates division by zero.
	Div0
)

// arithDisplay mirrors the teacher's ErrorMapper table in cell.go.
var arithDisplay = map[ArithKind]string{
	Ref:   "#REF!",
	Value: "#VALUE!",
	Div0:  "#ARITHM!",
}

// String renders the arithmetic-error display form spec.md §6 specifies.
func (k ArithKind) String() string {
	if s, ok := arithDisplay[k]; ok {
		return s
	}
	return "#ERROR!"
}

// Kind tags which shape a CellValue currently holds.
type Kind uint8

const (
	KindText Kind = iota
	KindNumber
	KindArithError
)

// CellValue is the tagged union of Text(string), Number(float64), and
// ArithError(kind) spec.md §3 specifies. The zero value is Text("").
type CellValue struct {
	kind   Kind
	text   string
	number float64
	arith  ArithKind
}

// Text constructs a CellValue holding a text value.
func Text(s string) CellValue {
	return CellValue{kind: KindText, text: s}
}

// Number constructs a CellValue holding a numeric value.
func Number(n float64) CellValue {
	return CellValue{kind: KindNumber, number: n}
}

// ArithErr constructs a CellValue holding an arithmetic-error value.
func ArithErr(kind ArithKind) CellValue {
	return CellValue{kind: KindArithError, arith: kind}
}

// Kind reports which variant v holds.
func (v CellValue) Kind() Kind { return v.kind }

// AsText returns the text payload and whether v is a Text value.
func (v CellValue) AsText() (string, bool) {
	return v.text, v.kind == KindText
}

// AsNumber returns the numeric payload and whether v is a Number value.
func (v CellValue) AsNumber() (float64, bool) {
	return v.number, v.kind == KindNumber
}

// AsArithError returns the error kind and whether v is an ArithError value.
func (v CellValue) AsArithError() (ArithKind, bool) {
	return v.arith, v.kind == KindArithError
}

// Display renders v the way print_values does: the raw text for Text, the
// shortest round-tripping decimal for Number, and the #XXX! form for
// ArithError.
func (v CellValue) Display() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return formatNumber(v.number)
	case KindArithError:
		return v.arith.String()
	default:
		return ""
	}
}

func formatNumber(n float64) string {
	return fmt.Sprintf("%g", n)
}

// Equal reports structural equality, used by cache-soundness tests.
func (v CellValue) Equal(other CellValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == other.text
	case KindNumber:
		return v.number == other.number
	case KindArithError:
		return v.arith == other.arith
	default:
		return true
	}
}
