package master

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/fallcore/fallcore/internal/tetris"
)

// Option configures a Master at construction time.
type Option func(*Master)

// WithLogger attaches a structured logger; default is a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Master) { m.logger = logger }
}

// Master wraps a tetris.Game and drives level/speed-level progression,
// grade, section timing, cool/regret bonuses, and the clear/roll/end
// credit sequence. It satisfies tetris.Engine so a collaborator can
// drive it the same way it would drive a plain Game.
type Master struct {
	game *tetris.Game

	level       int
	speedLevel  int
	gradePoints int
	grade       int
	rollPoints  int

	// sectionFrame counts frames elapsed since the current section
	// began (reset on rank_up), standing in for the reference
	// implementation's wall-clock Instant so the overlay stays
	// deterministic under seeded replay.
	sectionFrame int

	sectionTimes         [9]*time.Duration
	coolLineSectionTimes [9]*time.Duration
	cools                [9]*bool
	regrets              [9]*bool

	status Status
	roll   RollKind

	startRollTimer *int
	rollTimer      *int

	events []TGM3Event
	sounds []TGM3Sound

	opacityTimers [tetris.BoardRows][tetris.BoardCols]*int

	logger zerolog.Logger
}

var _ tetris.Engine = (*Master)(nil)

// New creates a Master at level 0, speed_level 0, wrapping a fresh
// Game driven by r.
func New(r tetris.Rand, opts ...Option) *Master {
	m := &Master{
		game:   tetris.NewGameFromSettings(tetris.Settings{}, r),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.syncSettings()
	return m
}

// SetInput, Board, CurrentPiece, LockedPiece, Hold, Next, NextNext,
// NextNextNext, SoundQueue and EventQueue pass straight through to the
// wrapped Game, satisfying tetris.Engine.
func (m *Master) SetInput(in tetris.Input)    { m.game.SetInput(in) }
func (m *Master) Board() *tetris.Board        { return m.game.Board() }
func (m *Master) SoundQueue() *[]tetris.Sound { return m.game.SoundQueue() }
func (m *Master) EventQueue() *[]tetris.Event { return m.game.EventQueue() }

func (m *Master) CurrentPiece() (tetris.FallingPiece, bool) { return m.game.CurrentPiece() }
func (m *Master) LockedPiece() (tetris.FallingPiece, bool)  { return m.game.LockedPiece() }
func (m *Master) Hold() (tetris.PieceKind, bool)            { return m.game.Hold() }
func (m *Master) Next() tetris.PieceKind                    { return m.game.Next() }
func (m *Master) NextNext() tetris.PieceKind                { return m.game.NextNext() }
func (m *Master) NextNextNext() tetris.PieceKind { return m.game.NextNextNext() }

// Master-only accessors.
func (m *Master) Level() int             { return m.level }
func (m *Master) SpeedLevel() int        { return m.speedLevel }
func (m *Master) Grade() int             { return m.grade }
func (m *Master) GradePoints() int       { return m.gradePoints }
func (m *Master) RollPoints() int        { return m.rollPoints }
func (m *Master) Status() Status         { return m.status }
func (m *Master) Roll() RollKind         { return m.roll }
func (m *Master) TGM3EventQueue() *[]TGM3Event { return &m.events }
func (m *Master) TGM3SoundQueue() *[]TGM3Sound { return &m.sounds }

// OpacityTimers returns a copy of the per-cell fade-countdown grid
// maintained during the credit roll.
func (m *Master) OpacityTimers() [tetris.BoardRows][tetris.BoardCols]*int {
	return m.opacityTimers
}

// AggregateGrade computes the final display grade: confirmed cools,
// plus roll-point hundreds, plus the grade's base rank, minus
// confirmed regrets.
func (m *Master) AggregateGrade() int {
	coolSum := 0
	for _, c := range m.cools {
		if c != nil && *c {
			coolSum++
		}
	}
	regretSum := 0
	for _, r := range m.regrets {
		if r != nil && *r {
			regretSum++
		}
	}
	return coolSum + m.rollPoints/100 + gradeToRank[m.grade] - regretSum
}

// GradeLabel returns the display label for the current aggregate
// grade.
func (m *Master) GradeLabel() string {
	return gradeLabel(m.AggregateGrade())
}

func (m *Master) pushEvent(e TGM3Event) { m.events = append(m.events, e) }
func (m *Master) pushSound(s TGM3Sound) { m.sounds = append(m.sounds, s) }

// Update advances the overlay exactly one frame, dispatching on
// status: Game runs the progression-tracked base tick; Clear counts
// down a one-shot pause before wiping the board and entering Roll;
// Roll fades locked cells and counts down to End.
func (m *Master) Update() {
	switch m.status {
	case StatusGame:
		m.gameUpdate()
	case StatusClear:
		if m.startRollTimer == nil {
			v := 150
			m.startRollTimer = &v
		}
		if *m.startRollTimer == 0 {
			m.game.Board().ClearBoard()
			if m.isAllCool() {
				m.roll = RollInvisible
			} else {
				m.roll = RollNormal
			}
			m.status = StatusRoll
			m.pushEvent(TGM3Event{Kind: StatusChanged, Status: StatusRoll, Roll: m.roll})
			m.logger.Debug().Str("roll", m.roll.String()).Msg("entering credit roll")
		} else {
			*m.startRollTimer--
		}
	case StatusRoll:
		m.rollUpdate(m.roll)
		if m.rollTimer == nil {
			v := 3238
			m.rollTimer = &v
		}
		if *m.rollTimer == 0 {
			m.status = StatusEnd
			m.pushEvent(TGM3Event{Kind: StatusChanged, Status: StatusEnd})
			return
		}
		*m.rollTimer--
	case StatusEnd:
		// terminal; nothing left to advance.
	}
}

func (m *Master) gameUpdate() {
	m.game.Update()
	for _, e := range *m.game.EventQueue() {
		switch e.Kind {
		case tetris.LineCleared:
			m.gameLineClear(e.ClearedCount)
		case tetris.PieceSpawned:
			m.levelUp(1, false)
		}
	}
	m.syncSettings()
	m.sectionFrame++
}

func (m *Master) syncSettings() {
	m.game.SetSettings(tetris.Settings{
		Gravity:        gravityFor(m.speedLevel),
		ARE:            areFor(m.speedLevel),
		LineARE:        lineAreFor(m.speedLevel),
		DAS:            dasFor(m.speedLevel),
		LockDelay:      lockDelayFor(m.speedLevel),
		LineClearDelay: lineClearDelayFor(m.speedLevel),
	})
}

func (m *Master) currentSectionTime() time.Duration {
	return time.Duration(m.sectionFrame) * (time.Second / 60)
}

func (m *Master) prevCoolLineSectionTime(rank int) *time.Duration {
	if rank == 0 {
		return nil
	}
	return m.coolLineSectionTimes[rank-1]
}

func (m *Master) prevRank() (int, bool) {
	if m.level < 100 {
		return 0, false
	}
	return m.level/100 - 1, true
}

// levelUp applies the level/speed_level gate described for both plain
// piece spawns (up=1, line_clear=false) and line clears (up per
// gameLineClear, line_clear=true), then evaluates the cool-line and
// cool checkpoints and, on a line clear crossing a hundreds boundary
// or level overflow, triggers rank_up.
func (m *Master) levelUp(up int, lineClear bool) {
	rank := m.level / 100
	prev := m.level

	if lineClear || ((prev+up)%100 > prev%100 && prev+up < 998) {
		m.level += up
		m.speedLevel += up
	}

	if m.level%100 >= 70 && rank < 9 && m.coolLineSectionTimes[rank] == nil {
		t := m.currentSectionTime()
		m.coolLineSectionTimes[rank] = &t
	}

	if m.level%100 >= 80 && rank < 9 && m.cools[rank] == nil {
		if current := m.coolLineSectionTimes[rank]; current != nil {
			cool := coolBorder(rank, m.prevCoolLineSectionTime(rank)) > *current
			m.cools[rank] = &cool
			if cool {
				m.pushEvent(TGM3Event{Kind: GotCool})
				m.pushSound(SoundCool)
			}
		}
	}

	if lineClear && (prev%100 > m.level%100 || m.level > 998) {
		if m.level > 999 {
			m.level = 999
		}
		m.rankUp()
	}
}

func (m *Master) rankUp() {
	sectionTime := m.currentSectionTime()
	if m.level == 999 {
		m.status = StatusClear
		m.pushEvent(TGM3Event{Kind: StatusChanged, Status: StatusClear})
		m.pushSound(SoundGameClear)
		m.sectionTimes[8] = &sectionTime
		regret := regretBorder(8) < sectionTime
		m.regrets[8] = &regret
		if regret {
			m.pushEvent(TGM3Event{Kind: GotRegret})
		}
	} else {
		if prevRank, ok := m.prevRank(); ok {
			m.sectionTimes[prevRank] = &sectionTime
			regret := regretBorder(prevRank) < sectionTime
			m.regrets[prevRank] = &regret
			if regret {
				m.pushEvent(TGM3Event{Kind: GotRegret})
			}
			if !regret && m.cools[prevRank] != nil && *m.cools[prevRank] {
				m.speedLevel += 100
			}
		}
		*m.game.SoundQueue() = append(*m.game.SoundQueue(), tetris.SoundRankUp)
	}
	m.sectionFrame = 0
}

// gameLineClear awards grade points for an n-line clear, promotes
// grade when the points threshold is crossed, then feeds the
// level-progression amount (n, or the tetris/triple bonuses) into
// levelUp.
func (m *Master) gameLineClear(n int) {
	m.gradePoints += gradePointBonusFor(m.grade, n) * (m.level/250 + 1)
	if m.grade < 31 && m.gradePoints >= 100 {
		m.gradePoints = 0
		m.grade++
	}
	up := n
	switch n {
	case 3:
		up = 4
	case 4:
		up = 6
	}
	m.levelUp(up, true)
}

func (m *Master) isAllCool() bool {
	for _, c := range m.cools {
		if c == nil || !*c {
			return false
		}
	}
	return true
}

func (m *Master) rollLineClear(n int, roll RollKind) {
	if roll == RollInvisible {
		m.rollPoints += mrollPoints[n-1]
	} else {
		m.rollPoints += rollPoints[n-1]
	}
}

func (m *Master) setOpacityTimer(piece tetris.FallingPiece, frames int) {
	for _, p := range piece.Cells() {
		if p.Row < 0 || p.Row >= tetris.BoardRows || p.Col < 0 || p.Col >= tetris.BoardCols {
			continue
		}
		v := frames
		m.opacityTimers[p.Row][p.Col] = &v
	}
}

func (m *Master) shrinkOpacityTimers(rows []int) {
	if len(rows) == 0 {
		return
	}
	removed := make(map[int]bool, len(rows))
	for _, r := range rows {
		removed[r] = true
	}
	var next [tetris.BoardRows][tetris.BoardCols]*int
	dst := len(rows)
	for src := 0; src < tetris.BoardRows; src++ {
		if removed[src] {
			continue
		}
		next[dst] = m.opacityTimers[src]
		dst++
	}
	m.opacityTimers = next
}

// rollUpdate advances the wrapped game during the credit roll, fading
// opacity timers for cells that survive and clearing timers for cells
// the board has since emptied, then reacts to line-clear/lock/shrink
// events by updating roll points and the opacity grid.
func (m *Master) rollUpdate(roll RollKind) {
	m.game.Update()
	board := m.game.Board()
	for row := 0; row < tetris.BoardRows; row++ {
		for col := 0; col < tetris.BoardCols; col++ {
			if board.Cell(row, col) == tetris.CellEmpty {
				m.opacityTimers[row][col] = nil
				continue
			}
			if t := m.opacityTimers[row][col]; t != nil && *t > 0 {
				*t--
			}
		}
	}

	for _, e := range *m.game.EventQueue() {
		switch e.Kind {
		case tetris.LineCleared:
			m.rollLineClear(e.ClearedCount, roll)
		case tetris.PieceLocked:
			frames := 300
			if roll == RollInvisible {
				frames = 4
			}
			m.setOpacityTimer(e.LockedPiece, frames)
		case tetris.LineShrinked:
			m.shrinkOpacityTimers(e.ShrinkedRows)
		}
	}
}
