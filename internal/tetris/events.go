package tetris

// EventKind tags the payload carried by an Event.
type EventKind int

const (
	// PieceSpawned fires when a new piece enters the board. Payload:
	// SpawnedKind.
	PieceSpawned EventKind = iota
	// PieceLocked fires when the current piece is written onto the
	// board. Payload: LockedPiece.
	PieceLocked
	// LineCleared fires when one or more full rows are blanked.
	// Payload: ClearedCount (1..=4).
	LineCleared
	// LineShrinked fires when previously-cleared rows collapse.
	// Payload: ShrinkedRows.
	LineShrinked
)

// Event is a single outbound notification appended to a tick's event
// queue. Only the field matching Kind is meaningful.
type Event struct {
	Kind         EventKind
	SpawnedKind  PieceKind
	LockedPiece  FallingPiece
	ClearedCount int
	ShrinkedRows []int
}
