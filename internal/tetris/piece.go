package tetris

// PieceKind identifies a tetromino shape.
type PieceKind int

const (
	PieceI PieceKind = iota
	PieceO
	PieceT
	PieceL
	PieceJ
	PieceS
	PieceZ
)

// pieceKindCount is the number of distinct tetromino kinds.
const pieceKindCount = 7

// LockColor returns the cell color a piece becomes when it locks onto
// the board.
func (k PieceKind) LockColor() Cell {
	switch k {
	case PieceI:
		return CellCyan
	case PieceO:
		return CellYellow
	case PieceT:
		return CellPurple
	case PieceL:
		return CellBlue
	case PieceJ:
		return CellOrange
	case PieceS:
		return CellGreen
	case PieceZ:
		return CellRed
	default:
		return CellEmpty
	}
}

func (k PieceKind) String() string {
	switch k {
	case PieceI:
		return "I"
	case PieceO:
		return "O"
	case PieceT:
		return "T"
	case PieceL:
		return "L"
	case PieceJ:
		return "J"
	case PieceS:
		return "S"
	case PieceZ:
		return "Z"
	default:
		return "?"
	}
}

// Rotation is one of the four cardinal orientations a piece can hold.
type Rotation int

const (
	North Rotation = iota
	East
	South
	West
)

// Cw advances the rotation one step clockwise.
func (r Rotation) Cw() Rotation {
	return (r + 1) % 4
}

// Ccw advances the rotation one step counter-clockwise.
func (r Rotation) Ccw() Rotation {
	return (r + 3) % 4
}

func (r Rotation) String() string {
	switch r {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "?"
	}
}

// Offset is a relative (column, row) displacement in geometry space,
// where row grows upward (the opposite of board-row convention; see
// PieceState.Cells).
type Offset struct {
	X, Y int
}

// Point is an absolute (row, column) board coordinate.
type Point struct {
	Row, Col int
}

// stands holds each kind's four cell offsets at rest (rotation North),
// pivot at (0,0), y growing upward. Copied bit-for-bit from the
// specification's geometry table.
var stands = [pieceKindCount][4]Offset{
	PieceI: {{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
	PieceO: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	PieceT: {{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
	PieceL: {{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
	PieceJ: {{-1, 0}, {0, 0}, {1, 0}, {-1, 1}},
	PieceS: {{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
	PieceZ: {{-1, 1}, {0, 1}, {0, 0}, {1, 0}},
}

// rotationMatrix maps a stand offset into the given rotation, as
// (x', y') = (m0.X*x + m0.Y*y, m1.X*x + m1.Y*y).
var rotationMatrix = [4][2]Offset{
	North: {{1, 0}, {0, 1}},
	East:  {{0, 1}, {-1, 0}},
	South: {{-1, 0}, {0, -1}},
	West:  {{0, -1}, {1, 0}},
}

func rotateOffset(o Offset, r Rotation) Offset {
	m := rotationMatrix[r]
	return Offset{
		X: m[0].X*o.X + m[0].Y*o.Y,
		Y: m[1].X*o.X + m[1].Y*o.Y,
	}
}

// PieceState is a piece kind paired with its current rotation.
type PieceState struct {
	Kind     PieceKind
	Rotation Rotation
}

// Cells returns the four cell offsets of this piece state relative to
// its pivot, in geometry space (row grows upward).
func (p PieceState) Cells() [4]Offset {
	stand := stands[p.Kind]
	var out [4]Offset
	for i, o := range stand {
		out[i] = rotateOffset(o, p.Rotation)
	}
	return out
}

// InitialPosition returns the spawn pivot (column, row) in board
// coordinates for this piece kind.
func (p PieceState) InitialPosition() (col, row int) {
	if p.Kind == PieceI {
		return 4, 20
	}
	return 4, 21
}

// FallingPiece is the currently-controlled piece: its shape/rotation,
// its pivot position on the board, and the deepest row it has
// previously reached (used to gate the "bottom" sound to downward-only
// transitions).
type FallingPiece struct {
	State           PieceState
	Col, Row        int
	PreviousLockRow int
}

// NewFallingPiece spawns a piece of the given kind at its initial
// position.
func NewFallingPiece(kind PieceKind) FallingPiece {
	state := PieceState{Kind: kind, Rotation: North}
	col, row := state.InitialPosition()
	return FallingPiece{State: state, Col: col, Row: row, PreviousLockRow: row}
}

// Cells returns the four absolute board coordinates the piece currently
// occupies.
func (f FallingPiece) Cells() [4]Point {
	offs := f.State.Cells()
	var out [4]Point
	for i, o := range offs {
		out[i] = Point{Row: f.Row - o.Y, Col: f.Col + o.X}
	}
	return out
}

// CellsAt returns the four absolute board coordinates the piece's shape
// would occupy if its pivot were at (col, row) instead of its current
// position.
func (f FallingPiece) CellsAt(col, row int) [4]Point {
	offs := f.State.Cells()
	var out [4]Point
	for i, o := range offs {
		out[i] = Point{Row: row - o.Y, Col: col + o.X}
	}
	return out
}

// kickO, kickI, kickOther are the per-rotation candidate-offset tables
// from the specification, copied bit-for-bit. A rotation from source to
// target tries, in order, delta_i = table[source][i] - table[target][i]
// for each shared index i. Unlike the stand offsets, the y entries of
// these tables point down the board (the direction rows grow).
var kickO = [4][]Offset{
	North: {{0, 0}},
	East:  {{0, 1}},
	South: {{-1, 1}},
	West:  {{-1, 0}},
}

var kickI = [4][]Offset{
	North: {{0, 0}, {-1, 0}, {2, 0}, {-1, 0}, {2, 0}},
	East:  {{-1, 0}, {0, 0}, {0, 0}, {0, 1}, {0, 2}},
	South: {{-1, -1}, {1, -1}, {-2, -1}, {1, 0}, {-2, 0}},
	West:  {{0, -1}, {0, -1}, {0, -1}, {0, 1}, {0, -2}},
}

var kickOther = [4][]Offset{
	North: {{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
	East:  {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	South: {{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
	West:  {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
}

func kickTableFor(kind PieceKind) [4][]Offset {
	switch kind {
	case PieceO:
		return kickO
	case PieceI:
		return kickI
	default:
		return kickOther
	}
}

// kickCandidates returns the ordered (dCol, dRow) board-space deltas to
// try when rotating a piece of the given kind from source to target
// rotation.
func kickCandidates(kind PieceKind, source, target Rotation) []Point {
	table := kickTableFor(kind)
	src, tgt := table[source], table[target]
	n := len(src)
	if len(tgt) < n {
		n = len(tgt)
	}
	out := make([]Point, n)
	for i := 0; i < n; i++ {
		d := Offset{X: src[i].X - tgt[i].X, Y: src[i].Y - tgt[i].Y}
		// the kick tables' y already points down the board, so the
		// difference is used as a board (column, row) delta directly.
		out[i] = Point{Col: d.X, Row: d.Y}
	}
	return out
}
