package tetris

// Engine is the capability set a collaborator (renderer, input router,
// sound dispatcher) drives a tick loop against. Both *Game and the
// Master overlay (internal/tetris/master) satisfy it, so a
// collaborator can be written once against either mode without caring
// which is underneath.
type Engine interface {
	SetInput(Input)
	Update()

	Board() *Board
	CurrentPiece() (FallingPiece, bool)
	LockedPiece() (FallingPiece, bool)
	Hold() (PieceKind, bool)
	Next() PieceKind
	NextNext() PieceKind
	NextNextNext() PieceKind

	SoundQueue() *[]Sound
	EventQueue() *[]Event
}
