// Package master implements the TGM3-style progression overlay: level
// and speed-level progression, grade, per-section timing, cool/regret
// bonuses, and the clear/roll/end credit sequence, wrapped around a
// plain tetris.Game.
package master

// Status is the overlay's top-level mode.
type Status int

const (
	StatusGame Status = iota
	StatusClear
	StatusRoll
	StatusEnd
)

func (s Status) String() string {
	switch s {
	case StatusGame:
		return "game"
	case StatusClear:
		return "clear"
	case StatusRoll:
		return "roll"
	case StatusEnd:
		return "end"
	default:
		return "?"
	}
}

// RollKind distinguishes the two credit-roll variants; only meaningful
// while Status is StatusRoll.
type RollKind int

const (
	RollNormal RollKind = iota
	RollInvisible
)

func (r RollKind) String() string {
	if r == RollInvisible {
		return "invisible"
	}
	return "normal"
}

// TGM3EventKind tags the payload carried by a TGM3Event.
type TGM3EventKind int

const (
	// StatusChanged fires whenever Status transitions. Payload: Status,
	// Roll (meaningful only when Status is StatusRoll).
	StatusChanged TGM3EventKind = iota
	// GotCool fires when a section's cool bonus is confirmed.
	GotCool
	// GotRegret fires when a section's regret penalty is confirmed.
	GotRegret
)

// TGM3Event is a single outbound Master-level notification, layered on
// top of (not replacing) the wrapped Game's own event queue.
type TGM3Event struct {
	Kind   TGM3EventKind
	Status Status
	Roll   RollKind
}

// TGM3Sound identifies a Master-only audio cue.
type TGM3Sound int

const (
	SoundCool TGM3Sound = iota
	SoundGameClear
)
