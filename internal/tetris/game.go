package tetris

import (
	"math"

	"github.com/rs/zerolog"
)

// Settings are the tunable per-frame timing parameters a collaborator
// (or the Master overlay) pushes into a Game before each tick.
type Settings struct {
	Gravity        float64 // cells per frame
	ARE            int     // spawn delay after lock, in frames
	LineARE        int     // spawn delay after a line-clear collapse, in frames
	DAS            int     // frames held before auto-shift repeat begins
	LockDelay      int     // frames of grounded contact before lock
	LineClearDelay int     // pause between clear and collapse, in frames
}

// dasDirection is the latched auto-shift direction.
type dasDirection int

const (
	dasNone dasDirection = iota
	dasLeft
	dasRight
)

// Option configures a Game at construction time.
type Option func(*Game)

// WithLogger attaches a structured logger. The default is a no-op
// logger, so the deterministic core stays silent unless a collaborator
// opts in.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// Game is the base per-frame state machine: one falling piece at a
// time, DAS, lock delay, ARE, and line-clear delay, on top of a Board.
type Game struct {
	board *Board

	settings Settings

	current *FallingPiece
	locked  *FallingPiece

	shiftDownCounter float64
	lockCounter      int
	areCounter       *int
	lineClearTimer   *int

	dasCounter int
	dasState   dasDirection

	holdUsed   bool
	rotateUsed bool

	input         Input
	previousInput Input

	soundQueue []Sound
	eventQueue []Event

	logger zerolog.Logger
}

// NewGameFromSettings creates a Game with the given timing settings and
// randomness source, spawning the first piece immediately. This is the
// constructor the Master overlay drives; a collaborator running base
// mode directly may also call it with its own fixed Settings.
func NewGameFromSettings(settings Settings, r Rand, opts ...Option) *Game {
	g := &Game{
		board:    NewBoard(r),
		settings: settings,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.spawnNext()
	return g
}

// NewGame creates a Game using a conservative fixed timing profile, for
// direct/standalone play and tests that don't care about Master's
// speed curve.
func NewGame(r Rand, opts ...Option) *Game {
	return NewGameFromSettings(Settings{
		Gravity:        1024.0 / 65536.0,
		ARE:            27,
		LineARE:        27,
		DAS:            15,
		LockDelay:      30,
		LineClearDelay: 40,
	}, r, opts...)
}

// SetSettings updates the timing parameters used by subsequent ticks.
// The Master overlay calls this before every Update.
func (g *Game) SetSettings(s Settings) { g.settings = s }

// Settings returns the currently active timing parameters.
func (g *Game) Settings() Settings { return g.settings }

// SetInput latches the current frame's control snapshot.
func (g *Game) SetInput(in Input) { g.input = in }

// Board returns the underlying board.
func (g *Game) Board() *Board { return g.board }

// CurrentPiece returns the piece currently under player control, if
// any.
func (g *Game) CurrentPiece() (FallingPiece, bool) {
	if g.current == nil {
		return FallingPiece{}, false
	}
	return *g.current, true
}

// LockedPiece returns the piece that locked on the immediately
// preceding tick, valid for exactly one tick after the lock.
func (g *Game) LockedPiece() (FallingPiece, bool) {
	if g.locked == nil {
		return FallingPiece{}, false
	}
	return *g.locked, true
}

// Hold returns the held piece kind, if any.
func (g *Game) Hold() (PieceKind, bool) { return g.board.Hold() }

// Next, NextNext and NextNextNext expose the upcoming queue.
func (g *Game) Next() PieceKind         { return g.board.Next() }
func (g *Game) NextNext() PieceKind     { return g.board.NextNext() }
func (g *Game) NextNextNext() PieceKind { return g.board.NextNextNext() }

// SoundQueue returns a pointer to the sound queue so a collaborator can
// drain it (e.g. `q := *g.SoundQueue(); *g.SoundQueue() = nil`).
func (g *Game) SoundQueue() *[]Sound { return &g.soundQueue }

// EventQueue returns a pointer to the event queue so a collaborator can
// drain it.
func (g *Game) EventQueue() *[]Event { return &g.eventQueue }

func (g *Game) pushSound(s Sound) { g.soundQueue = append(g.soundQueue, s) }
func (g *Game) pushEvent(e Event) { g.eventQueue = append(g.eventQueue, e) }

// spawnNext pulls the next piece from the board queue and places it as
// the current piece, emitting its spawn event and sound.
func (g *Game) spawnNext() {
	kind := g.board.PopNext()
	g.spawnKind(kind)
	g.pushEvent(Event{Kind: PieceSpawned, SpawnedKind: kind})
	g.pushSound(spawnSound(kind))
	g.holdUsed = false
	g.logger.Debug().Str("kind", kind.String()).Msg("piece spawned")
}

func (g *Game) spawnKind(kind PieceKind) {
	p := NewFallingPiece(kind)
	g.current = &p
	g.shiftDownCounter = 0
}

// Update advances the game exactly one frame: clear the transient lock
// highlight, handle the ARE/line-clear-lock countdown, hold, rotate,
// hard drop, gravity with lock delay, DAS shift, line clear, then
// commit the input snapshot for next frame's edge detection.
func (g *Game) Update() {
	g.locked = nil

	if g.current == nil {
		g.updateSpawnTimers()
	}

	if g.current != nil {
		g.handleHold()
	}
	if g.current != nil {
		g.handleRotate()
	}
	if g.current != nil {
		g.handleHardDrop()
	}
	if g.current != nil {
		g.applyGravity()
	}
	if g.current != nil {
		g.handleShift()
	}

	if g.locked != nil {
		g.handleLineClear()
	}

	g.previousInput = g.input
}

// updateSpawnTimers runs while there is no current piece: count down
// the line-clear-lock pause, then the ARE pause, spawning a new piece
// once ARE elapses.
func (g *Game) updateSpawnTimers() {
	if g.lineClearTimer != nil {
		if *g.lineClearTimer == 0 {
			g.pushSound(SoundFall)
			rows := g.board.LineShrink()
			g.pushEvent(Event{Kind: LineShrinked, ShrinkedRows: rows})
			g.lineClearTimer = nil
			g.logger.Debug().Ints("rows", rows).Msg("line shrink")
		} else {
			*g.lineClearTimer--
		}
		return
	}
	if g.areCounter != nil {
		if *g.areCounter == 0 {
			g.areCounter = nil
			g.spawnNext()
		} else {
			*g.areCounter--
		}
	}
}

func (g *Game) setAre(frames int) {
	v := frames
	g.areCounter = &v
}

// handleHold swaps the current piece into the hold slot (or pulls from
// the next queue if hold is empty), gated to once per piece by
// hold_used.
func (g *Game) handleHold() {
	if !g.input.Hold || g.holdUsed {
		return
	}
	currentKind := g.current.State.Kind
	prior, hadPrior := g.board.SwapHold(currentKind)

	var resultKind PieceKind
	if hadPrior {
		resultKind = prior
	} else {
		resultKind = g.board.PopNext()
	}

	g.spawnKind(resultKind)
	g.rotateUsed = false
	g.lockCounter = 0
	g.holdUsed = true

	g.pushSound(spawnSound(resultKind))
	g.pushSound(SoundHold)
	g.logger.Debug().Str("held", currentKind.String()).Str("drawn", resultKind.String()).Msg("hold")
}

// handleRotate implements rising-edge rotation with kick resolution,
// gated by the rotate_used latch while a rotation key is held.
func (g *Game) handleRotate() {
	if !g.input.Cw && !g.input.Ccw {
		g.rotateUsed = false
	}

	cwEdge := g.input.Cw && !g.previousInput.Cw && !g.rotateUsed
	ccwEdge := g.input.Ccw && !g.previousInput.Ccw && !g.rotateUsed

	switch {
	case cwEdge:
		if g.attemptRotate(g.current.State.Rotation.Cw()) {
			g.lockCounter = 0
		}
		g.rotateUsed = true
	case ccwEdge:
		if g.attemptRotate(g.current.State.Rotation.Ccw()) {
			g.lockCounter = 0
		}
		g.rotateUsed = true
	}
}

// attemptRotate tries the kick table for a rotation from the current
// state to target, in order, committing the first candidate that does
// not collide. It returns false (leaving state untouched) if every
// candidate collides.
func (g *Game) attemptRotate(target Rotation) bool {
	kind := g.current.State.Kind
	source := g.current.State.Rotation
	for _, delta := range kickCandidates(kind, source, target) {
		col := g.current.Col + delta.Col
		row := g.current.Row + delta.Row
		state := PieceState{Kind: kind, Rotation: target}
		if !g.board.CheckCollision(state, col, row) {
			g.current.State = state
			g.current.Col = col
			g.current.Row = row
			return true
		}
	}
	return false
}

// handleHardDrop slams the piece down and locks it immediately on the
// rising edge of hard_drop, regardless of lock delay.
func (g *Game) handleHardDrop() {
	if !g.input.HardDrop || g.previousInput.HardDrop {
		return
	}
	g.pushSound(SoundBottom)

	state := g.current.State
	col := g.current.Col
	drop := 0
	for !g.board.CheckCollision(state, col, g.current.Row+drop+1) {
		drop++
	}
	g.current.Row += drop

	g.lockCurrent()
}

// lockCurrent writes the current piece onto the board, emits
// PieceLocked, and clears the current piece, arming the ARE countdown.
func (g *Game) lockCurrent() {
	locked := *g.current
	if err := g.board.Set(locked.State, locked.Col, locked.Row); err != nil {
		panic(err)
	}
	g.pushEvent(Event{Kind: PieceLocked, LockedPiece: locked})
	g.locked = &locked
	g.current = nil
	g.lockCounter = 0
	g.rotateUsed = false
	g.setAre(g.settings.ARE)
	g.logger.Debug().Str("kind", locked.State.Kind.String()).Msg("piece locked")
}

// applyGravity: grounded contact grows the lock counter until it locks
// the piece, otherwise gravity (boosted by soft drop at sub-cell
// gravities) advances the piece downward, scanning to the deepest
// non-colliding row if a full step would collide.
func (g *Game) applyGravity() {
	state := g.current.State
	col, row := g.current.Col, g.current.Row

	if g.board.CheckCollision(state, col, row+1) {
		if row > g.current.PreviousLockRow {
			g.pushSound(SoundBottom)
			g.current.PreviousLockRow = row
		}
		g.lockCounter++
		if g.lockCounter >= g.settings.LockDelay {
			g.pushSound(SoundLock)
			g.lockCurrent()
			return
		}
	}

	step := g.settings.Gravity
	if g.input.SoftDrop && g.settings.Gravity < 1.0 {
		step = 1.0
	}
	g.shiftDownCounter += step
	if g.shiftDownCounter >= 1.0 {
		n := int(math.Floor(g.shiftDownCounter))
		g.shiftDownCounter = 0

		if !g.board.CheckCollision(state, col, row+n) {
			g.current.Row = row + n
			return
		}
		actual := 0
		for k := 1; k <= n; k++ {
			if g.board.CheckCollision(state, col, row+k) {
				break
			}
			actual = k
		}
		g.current.Row = row + actual
	}
}

// handleShift implements DAS. Right takes priority over left when both
// are held; a fresh direction shifts once immediately, then
// auto-repeats every frame once das_counter reaches the DAS threshold.
func (g *Game) handleShift() {
	var dir dasDirection
	var delta int
	switch {
	case g.input.Right:
		dir, delta = dasRight, 1
	case g.input.Left:
		dir, delta = dasLeft, -1
	default:
		dir, delta = dasNone, 0
	}

	if dir != g.dasState {
		g.dasState = dir
		g.dasCounter = 0
		if dir != dasNone {
			if g.attemptShift(delta) {
				g.lockCounter = 0
			}
			g.dasCounter = 1
		}
		return
	}
	if dir == dasNone {
		return
	}
	g.dasCounter++
	if g.dasCounter >= g.settings.DAS {
		if g.attemptShift(delta) {
			g.lockCounter = 0
		}
	}
}

func (g *Game) attemptShift(delta int) bool {
	newCol := g.current.Col + delta
	if g.board.CheckCollision(g.current.State, newCol, g.current.Row) {
		return false
	}
	g.current.Col = newCol
	return true
}

// handleLineClear clears any full rows and arms the line-clear-lock
// pause plus the post-collapse ARE.
func (g *Game) handleLineClear() {
	count := g.board.LineClear()
	if count == 0 {
		return
	}
	g.pushEvent(Event{Kind: LineCleared, ClearedCount: count})
	g.pushSound(SoundErase)
	v := g.settings.LineClearDelay
	g.lineClearTimer = &v
	g.setAre(g.settings.LineARE)
	g.logger.Debug().Int("count", count).Msg("line cleared")
}
