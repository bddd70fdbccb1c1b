package tetris

import "sort"

// Board dimensions. The grid is 40 rows tall: rows [0,20) are the
// hidden overflow/spawn buffer, rows [20,40) are the visible well.
const (
	BoardRows          = 40
	BoardCols          = 10
	VisibleRowOffset   = 20
	VisibleBoardHeight = BoardRows - VisibleRowOffset
)

// Board holds the cell grid, the 7-bag randomizer state, the upcoming
// piece queue, and the hold slot.
type Board struct {
	cells           [BoardRows][BoardCols]Cell
	nextPieces      []PieceKind
	bag             []PieceKind
	hold            *PieceKind
	lastClearedRows []int
	rand            Rand
}

// NewBoard creates an empty board with a freshly shuffled bag and next
// queue, driven by r.
func NewBoard(r Rand) *Board {
	bag := shuffledBag(r)
	next := append([]PieceKind(nil), bag...)
	shuffle(r, next)
	return &Board{
		nextPieces: next,
		bag:        bag,
		rand:       r,
	}
}

// Cell returns the color at (row, col), or CellEmpty if out of bounds.
func (b *Board) Cell(row, col int) Cell {
	if row < 0 || row >= BoardRows || col < 0 || col >= BoardCols {
		return CellEmpty
	}
	return b.cells[row][col]
}

// Cells returns a copy of the full cell grid.
func (b *Board) Cells() [BoardRows][BoardCols]Cell {
	return b.cells
}

// ClearBoard zeroes out every cell, leaving the bag, next queue, and
// hold slot untouched. Used by the Master overlay's Clear->Roll
// transition.
func (b *Board) ClearBoard() {
	b.cells = [BoardRows][BoardCols]Cell{}
}

// Set writes the piece's kind color into the board at its rotated
// offsets relative to (col, row). It fails with ErrOutOfRange if any
// target cell lies outside the grid.
func (b *Board) Set(state PieceState, col, row int) error {
	cells := (FallingPiece{State: state, Col: col, Row: row}).Cells()
	for _, p := range cells {
		if p.Row < 0 || p.Row >= BoardRows || p.Col < 0 || p.Col >= BoardCols {
			return ErrOutOfRange
		}
	}
	color := state.Kind.LockColor()
	for _, p := range cells {
		b.cells[p.Row][p.Col] = color
	}
	return nil
}

// CheckCollision reports whether the piece, placed with its pivot at
// (col, row), would overlap the walls, floor, ceiling, or an occupied
// cell. Out-of-bounds is always treated as occupied.
func (b *Board) CheckCollision(state PieceState, col, row int) bool {
	cells := (FallingPiece{State: state, Col: col, Row: row}).Cells()
	for _, p := range cells {
		if p.Row < 0 || p.Row >= BoardRows || p.Col < 0 || p.Col >= BoardCols {
			return true
		}
		if b.cells[p.Row][p.Col] != CellEmpty {
			return true
		}
	}
	return false
}

// PopNext removes the front of the upcoming-piece queue and returns it,
// refilling the queue from the bag (and the bag itself, via a freshly
// shuffled 7-permutation, once it runs dry).
func (b *Board) PopNext() PieceKind {
	next := b.nextPieces[0]
	b.nextPieces = b.nextPieces[1:]
	b.nextPieces = append(b.nextPieces, b.bag[0])
	b.bag = b.bag[1:]
	if len(b.bag) == 0 {
		b.bag = shuffledBag(b.rand)
	}
	return next
}

// Next, NextNext and NextNextNext expose the first three entries of
// the upcoming-piece queue.
func (b *Board) Next() PieceKind         { return b.nextPieces[0] }
func (b *Board) NextNext() PieceKind     { return b.nextPieces[1] }
func (b *Board) NextNextNext() PieceKind { return b.nextPieces[2] }

// Hold returns the piece kind currently held, if any.
func (b *Board) Hold() (PieceKind, bool) {
	if b.hold == nil {
		return 0, false
	}
	return *b.hold, true
}

// SwapHold places kind into the hold slot and returns whatever
// occupied it beforehand.
func (b *Board) SwapHold(kind PieceKind) (prior PieceKind, hadPrior bool) {
	if b.hold != nil {
		prior, hadPrior = *b.hold, true
	}
	held := kind
	b.hold = &held
	return prior, hadPrior
}

func (b *Board) isRowFull(row int) bool {
	for c := 0; c < BoardCols; c++ {
		if b.cells[row][c] == CellEmpty {
			return false
		}
	}
	return true
}

// LineClear blanks every fully-occupied row in place (it does not
// shift the rows above down; that is LineShrink's job) and returns how
// many rows were cleared. The cleared row indices are remembered so
// the following LineShrink call removes exactly those rows rather than
// re-scanning the board for incidental emptiness in the hidden buffer.
func (b *Board) LineClear() int {
	var cleared []int
	for r := 0; r < BoardRows; r++ {
		if b.isRowFull(r) {
			b.cells[r] = [BoardCols]Cell{}
			cleared = append(cleared, r)
		}
	}
	b.lastClearedRows = cleared
	return len(cleared)
}

// LineShrink removes the rows most recently emptied by LineClear and
// re-inserts that many empty rows at the top of the grid, shifting
// everything above the removed rows down to fill the gap. It returns
// the ascending list of row indices that were removed.
func (b *Board) LineShrink() []int {
	removed := b.lastClearedRows
	b.lastClearedRows = nil
	if len(removed) == 0 {
		return nil
	}
	removedSet := make(map[int]bool, len(removed))
	for _, r := range removed {
		removedSet[r] = true
	}

	var newCells [BoardRows][BoardCols]Cell
	dst := len(removed)
	for src := 0; src < BoardRows; src++ {
		if removedSet[src] {
			continue
		}
		newCells[dst] = b.cells[src]
		dst++
	}
	b.cells = newCells

	sort.Ints(removed)
	return removed
}
