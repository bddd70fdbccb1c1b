package tetris

import "errors"

// ErrOutOfRange is returned by Board.Set when a target cell lies
// outside the board. It is the engine's single fallible condition; in
// normal play the preceding collision check guarantees it never fires,
// so seeing it indicates a logic bug upstream.
var ErrOutOfRange = errors.New("tetris: cell out of range")
