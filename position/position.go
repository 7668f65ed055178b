// Package position implements the grid-coordinate value type shared by
// every other package in this module.
package position

import "fmt"

// MaxRows and MaxCols bound the addressable grid, mirroring the fixed
// structural limits the teacher engine hardcodes for its own storage
// tables.
const (
	MaxRows = 1 << 20
	MaxCols = 1 << 14
)

// Position identifies a single grid cell by zero-based row and column.
// It is immutable, hashable (usable as a map key), and totally ordered.
type Position struct {
	Row int
	Col int
}

// New constructs a Position without bounds checking. Use Valid to check
// bounds, or construct via a component that owns validation (Sheet).
func New(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Valid reports whether the position falls within [0, MaxRows) x [0, MaxCols).
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < MaxRows && p.Col >= 0 && p.Col < MaxCols
}

// Less implements the lexicographic (row, then col) total order.
func (p Position) Less(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// Key renders a stable string encoding of p suitable for use as a cache
// key in backends that require string keys (e.g. depmgr's go-cache-backed
// value cache).
func (p Position) Key() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// String renders the position in spreadsheet A1 notation for diagnostics.
func (p Position) String() string {
	return fmt.Sprintf("%s%d", columnLetters(p.Col), p.Row+1)
}

// columnLetters converts a zero-based column index to spreadsheet column
// letters (0 -> "A", 25 -> "Z", 26 -> "AA"), adapted from the teacher's
// column-letter codec in lexer.go.
func columnLetters(col int) string {
	col++ // shift to 1-based for the classic bijective base-26 algorithm
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return string(letters)
}

// ColumnIndex converts spreadsheet column letters ("A", "Z", "AA") back to
// a zero-based column index. Returns -1 for an empty or invalid string.
func ColumnIndex(letters string) int {
	if letters == "" {
		return -1
	}
	col := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if c < 'A' || c > 'Z' {
			return -1
		}
		col = col*26 + int(c-'A') + 1
	}
	return col - 1
}

// Sort is a convenience used by formula.AST.ReferencedCells to produce the
// sorted-unique position list spec.md requires.
func Sort(positions []Position) {
	// simple insertion sort: referenced-cell lists are short in practice,
	// and this keeps the package allocation-free and dependency-free.
	for i := 1; i < len(positions); i++ {
		for j := i; j > 0 && positions[j].Less(positions[j-1]); j-- {
			positions[j], positions[j-1] = positions[j-1], positions[j]
		}
	}
}

// Dedup removes adjacent duplicates from a sorted slice in place, returning
// the truncated slice.
func Dedup(sorted []Position) []Position {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, p := range sorted[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
