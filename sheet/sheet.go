// Package sheet implements the grid container spec.md §4.5 specifies:
// growth on demand, printable-bbox tracking, and edit orchestration
// against the dependency manager.
package sheet

import (
	"fmt"
	"io"

	uuid "github.com/satori/go.uuid"

	"github.com/vogtb/lazysheet/cell"
	"github.com/vogtb/lazysheet/cellvalue"
	"github.com/vogtb/lazysheet/depmgr"
	"github.com/vogtb/lazysheet/position"
	"github.com/vogtb/lazysheet/sheeterr"
)

// Sheet is the grid container: storage, growth policy, printable-bbox
// tracking, and edit orchestration, per spec.md §4.5. It exclusively
// owns the cells it hosts (spec.md §5).
type Sheet struct {
	ID uuid.UUID

	manager *depmgr.Manager
	grid    [][]*cell.Cell

	printRows int
	printCols int
}

// New constructs an empty Sheet, tagged with a fresh identity the way
// homelight-worksheets tags each worksheet with a UUID (used only for
// diagnostics, never for cell addressing).
func New() *Sheet {
	return &Sheet{
		ID:      uuid.Must(uuid.NewV4()),
		manager: depmgr.New(),
	}
}

// ValueAt implements formula.Evaluator: it is the callback a Formula's
// AST uses to read a sibling cell's value during Execute, re-entering
// the memoized Cell.Value() path, per spec.md §4.4. A position with no
// cell (never written, or out of the current grid) reads as Text(""),
// the same as a freshly materialized Empty cell.
func (s *Sheet) ValueAt(p position.Position) cellvalue.CellValue {
	c := s.rawCellAt(p)
	if c == nil {
		return cellvalue.Text("")
	}
	return c.Value()
}

// SetCell implements spec.md §4.5's set_cell algorithm: validate,
// cycle-check the proposed edit as a unit, install on success, grow the
// grid and bbox, and materialize any newly referenced positions as
// empty placeholders.
func (s *Sheet) SetCell(pos position.Position, text string) error {
	if !pos.Valid() {
		return sheeterr.New(sheeterr.InvalidPosition, fmt.Sprintf("position %v out of bounds", pos))
	}

	probe := cell.New(pos, s.manager, s)
	if err := probe.Set(text); err != nil {
		return sheeterr.New(sheeterr.FormulaParseError, err.Error())
	}
	refs := probe.ReferencedCells()

	existing := s.rawCellAt(pos)
	var ok bool
	if existing == nil {
		ok = s.manager.TryAddNewVertex(pos, refs)
	} else {
		ok = s.manager.TryUpdateVertex(pos, refs)
	}
	if !ok {
		return sheeterr.New(sheeterr.CircularDependency, fmt.Sprintf("setting %v would create a circular reference", pos))
	}

	s.growTo(pos.Row+1, pos.Col+1)
	s.setRawCellAt(pos, probe)

	if pos.Row+1 > s.printRows {
		s.printRows = pos.Row + 1
	}
	if pos.Col+1 > s.printCols {
		s.printCols = pos.Col + 1
	}

	for _, ref := range refs {
		if !ref.Valid() {
			continue // a formula may reference an out-of-bounds position; ValueAt treats it as empty
		}
		if s.rawCellAt(ref) == nil {
			// carries no references of its own, so this can never cycle.
			_ = s.SetCell(ref, "")
		}
	}
	return nil
}

// GetCell implements spec.md §4.5's get_cell: validate, then return nil
// if pos is out of the current watermark or the slot is empty.
func (s *Sheet) GetCell(pos position.Position) (*cell.Cell, error) {
	if !pos.Valid() {
		return nil, sheeterr.New(sheeterr.InvalidPosition, fmt.Sprintf("position %v out of bounds", pos))
	}
	return s.rawCellAt(pos), nil
}

// ClearCell implements spec.md §4.5's clear_cell, adopting the §9/§4.5
// recommendation: pruning the cleared cell's incoming edges and
// invalidating downstream caches via try_update_vertex(pos, nil), so
// dependents never keep serving a stale cached value for a cell that no
// longer exists. It then nulls the slot and, if pos lay on the bbox's
// right or bottom edge, shrinks printable_size by scanning inward.
func (s *Sheet) ClearCell(pos position.Position) error {
	if !pos.Valid() {
		return sheeterr.New(sheeterr.InvalidPosition, fmt.Sprintf("position %v out of bounds", pos))
	}
	existing := s.rawCellAt(pos)
	if existing == nil {
		return nil
	}

	s.manager.TryUpdateVertex(pos, nil)
	s.setRawCellAt(pos, nil)

	if pos.Row == s.printRows-1 {
		s.shrinkRows()
	}
	if s.printRows > 0 && pos.Col == s.printCols-1 {
		s.shrinkCols()
	}
	return nil
}

// PrintableSize returns the current tight bounding box of non-empty grid
// slots, per spec.md §3 and §4.5.
func (s *Sheet) PrintableSize() (rows, cols int) {
	return s.printRows, s.printCols
}

// PrintValues writes every cell's value within the bbox, row-major,
// columns separated by '\t' and rows by '\n', per spec.md §4.5 and §6.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.print(w, func(c *cell.Cell) string {
		if c == nil {
			return ""
		}
		return c.Value().Display()
	})
}

// PrintTexts writes every cell's canonical text within the bbox, the
// same layout as PrintValues.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.print(w, func(c *cell.Cell) string {
		if c == nil {
			return ""
		}
		return c.Text()
	})
}

func (s *Sheet) print(w io.Writer, render func(*cell.Cell) string) error {
	for row := 0; row < s.printRows; row++ {
		for col := 0; col < s.printCols; col++ {
			if col > 0 {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
			c := s.rawCellAt(position.New(row, col))
			if _, err := io.WriteString(w, render(c)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// rawCellAt returns the raw grid slot at pos without bounds validation
// against MaxRows/MaxCols — only against the current grid watermark —
// used internally after pos has already been validated by the caller.
func (s *Sheet) rawCellAt(pos position.Position) *cell.Cell {
	if pos.Row < 0 || pos.Row >= len(s.grid) {
		return nil
	}
	row := s.grid[pos.Row]
	if pos.Col < 0 || pos.Col >= len(row) {
		return nil
	}
	return row[pos.Col]
}

func (s *Sheet) setRawCellAt(pos position.Position, c *cell.Cell) {
	s.grid[pos.Row][pos.Col] = c
}

// growTo widens the grid to host at least the given row and column
// counts, filling new slots with nil. Widening a row or adding rows is
// O(existing cells), per spec.md §4.5's growth policy.
func (s *Sheet) growTo(rows, cols int) {
	width := cols
	if len(s.grid) > 0 && len(s.grid[0]) > width {
		width = len(s.grid[0])
	}
	for i, row := range s.grid {
		if len(row) < width {
			widened := make([]*cell.Cell, width)
			copy(widened, row)
			s.grid[i] = widened
		}
	}
	for len(s.grid) < rows {
		s.grid = append(s.grid, make([]*cell.Cell, width))
	}
}

// shrinkRows implements spec.md §4.5's bottom-edge shrink: scan rows
// downward from the current last row, looking for the highest row
// containing any non-empty slot.
func (s *Sheet) shrinkRows() {
	for row := s.printRows - 1; row >= 0; row-- {
		if s.rowHasContent(row) {
			s.printRows = row + 1
			return
		}
	}
	s.printRows = 0
	s.printCols = 0
}

// shrinkCols implements spec.md §4.5's right-edge shrink, symmetric to
// shrinkRows.
func (s *Sheet) shrinkCols() {
	for col := s.printCols - 1; col >= 0; col-- {
		if s.colHasContent(col) {
			s.printCols = col + 1
			return
		}
	}
	s.printCols = 0
	s.printRows = 0
}

func (s *Sheet) rowHasContent(row int) bool {
	if row >= len(s.grid) {
		return false
	}
	limit := s.printCols
	if limit > len(s.grid[row]) {
		limit = len(s.grid[row])
	}
	for col := 0; col < limit; col++ {
		if s.grid[row][col] != nil {
			return true
		}
	}
	return false
}

func (s *Sheet) colHasContent(col int) bool {
	limit := s.printRows
	if limit > len(s.grid) {
		limit = len(s.grid)
	}
	for row := 0; row < limit; row++ {
		if col < len(s.grid[row]) && s.grid[row][col] != nil {
			return true
		}
	}
	return false
}
