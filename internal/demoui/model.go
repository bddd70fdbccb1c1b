// Package demoui is a terminal collaborator for tetris.Engine: it
// turns a frame tick into Input, drains the sound/event queues, and
// renders the board, next queue, hold slot and (when driving a
// *master.Master) the progression HUD.
package demoui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fallcore/fallcore/internal/tetris"
	"github.com/fallcore/fallcore/internal/tetris/master"
)

type phase int

const (
	phasePlaying phase = iota
	phasePaused
)

// frameInterval steps the engine at a fixed 60 logical frames per
// second, matching the tuning tables' frame-unit delays.
const frameInterval = time.Second / 60

// heldFrames is the countdown a direction/action key is reset to on
// each observed key-repeat event. The countdown decays at the start of
// every tick, before input is read, so the key reads as "held" for
// heldFrames-1 ticks after its last event. Terminal raw input gives no
// key-up event, so held state is approximated from repeat cadence
// instead of tracked directly.
const heldFrames = 3

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

// Model is the Bubbletea model driving a tetris.Engine.
type Model struct {
	engine tetris.Engine
	master *master.Master // non-nil when engine is a *master.Master

	phase  phase
	width  int
	height int
	done   bool

	leftHeld, rightHeld       int
	softHeld, cwHeld, ccwHeld int
	hardDropEdge, holdEdge    bool
}

// New wraps engine (a *tetris.Game or *master.Master) for a Bubbletea
// program.
func New(engine tetris.Engine) Model {
	m := Model{engine: engine, phase: phasePlaying}
	if mm, ok := engine.(*master.Master); ok {
		m.master = mm
	}
	return m
}

// Init starts the frame tick.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Done reports whether the player pressed a quit key.
func (m Model) Done() bool { return m.done }

func (m *Model) decayHeld() {
	if m.leftHeld > 0 {
		m.leftHeld--
	}
	if m.rightHeld > 0 {
		m.rightHeld--
	}
	if m.softHeld > 0 {
		m.softHeld--
	}
	if m.cwHeld > 0 {
		m.cwHeld--
	}
	if m.ccwHeld > 0 {
		m.ccwHeld--
	}
}

func (m Model) currentInput() tetris.Input {
	in := tetris.Input{
		Left:     m.leftHeld > 0,
		Right:    m.rightHeld > 0,
		SoftDrop: m.softHeld > 0,
		Cw:       m.cwHeld > 0,
		Ccw:      m.ccwHeld > 0,
		HardDrop: m.hardDropEdge,
		Hold:     m.holdEdge,
	}
	return in
}

// Update handles input and advances the engine one frame per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.phase == phasePlaying {
			m.decayHeld()
			m.engine.SetInput(m.currentInput())
			m.engine.Update()
			m.hardDropEdge = false
			m.holdEdge = false
			m.drainQueues()
		}
		return m, tickCmd()

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.phase {
		case phasePlaying:
			return m.updatePlaying(key)
		case phasePaused:
			return m.updatePaused(key)
		}
	}
	return m, nil
}

func (m Model) updatePlaying(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "left", "h":
		m.leftHeld = heldFrames
	case "right", "l":
		m.rightHeld = heldFrames
	case "down", "j":
		m.softHeld = heldFrames
	case "up", "k":
		m.cwHeld = heldFrames
	case "z":
		m.ccwHeld = heldFrames
	case " ":
		m.hardDropEdge = true
	case "c":
		m.holdEdge = true
	case "p":
		m.phase = phasePaused
	case "q", "esc":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updatePaused(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "p":
		m.phase = phasePlaying
	case "q", "esc":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// drainQueues empties the event and sound queues. Rendering reads
// board/piece state directly; events and sounds exist for collaborators
// that log or dispatch audio, neither of which this demo does, so both
// queues are simply truncated to keep them from growing unbounded.
func (m Model) drainQueues() {
	*m.engine.EventQueue() = (*m.engine.EventQueue())[:0]
	*m.engine.SoundQueue() = (*m.engine.SoundQueue())[:0]
	if m.master != nil {
		*m.master.TGM3EventQueue() = (*m.master.TGM3EventQueue())[:0]
		*m.master.TGM3SoundQueue() = (*m.master.TGM3SoundQueue())[:0]
	}
}

// View renders the complete game screen.
func (m Model) View() string {
	var sections []string
	sections = append(sections, titleStyle.Render("F A L L C O R E"))

	if m.master != nil {
		sections = append(sections, infoStyle.Render(fmt.Sprintf(
			"Level: %-3d  Grade: %-3s  Status: %s",
			m.master.Level(), m.master.GradeLabel(), m.master.Status(),
		)))
	}
	sections = append(sections, "")

	holdView := m.renderHold()
	boardView := m.renderBoard()
	nextView := m.renderNextQueue()
	sideBySide := lipgloss.JoinHorizontal(lipgloss.Top, holdView, "  ", boardView, "  ", nextView)
	sections = append(sections, sideBySide, "")

	if m.phase == phasePaused {
		sections = append(sections, pauseStyle.Render("PAUSED"), "")
	}

	var footer string
	switch m.phase {
	case phasePlaying:
		footer = "Arrow/HJKL Move | Up/K CW | Z CCW | Space Drop | C Hold | P Pause | Q Quit"
	case phasePaused:
		footer = "P Resume | Q Quit"
	}
	sections = append(sections, footerStyle.Render(footer))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderBoard() string {
	board := m.engine.Board()
	overlay := make(map[tetris.Point]tetris.Cell, 4)
	if cur, ok := m.engine.CurrentPiece(); ok {
		for _, p := range cur.Cells() {
			overlay[p] = cur.State.Kind.LockColor()
		}
	}

	var out strings.Builder
	border := borderStyle.Render("+" + strings.Repeat("--", tetris.BoardCols) + "+")
	out.WriteString(border)
	out.WriteString("\n")
	for row := tetris.VisibleRowOffset; row < tetris.BoardRows; row++ {
		out.WriteString(borderStyle.Render("|"))
		for col := 0; col < tetris.BoardCols; col++ {
			cell := board.Cell(row, col)
			if c, ok := overlay[tetris.Point{Row: row, Col: col}]; ok {
				cell = c
			}
			if cell == tetris.CellEmpty {
				out.WriteString(emptyStyle.Render(" ."))
			} else {
				out.WriteString(cellStyle(cell).Render("[]"))
			}
		}
		out.WriteString(borderStyle.Render("|"))
		out.WriteString("\n")
	}
	out.WriteString(border)
	return out.String()
}

func (m Model) renderNextQueue() string {
	var b strings.Builder
	b.WriteString(infoStyle.Render("Next:"))
	b.WriteString("\n")
	for _, k := range []tetris.PieceKind{m.engine.Next(), m.engine.NextNext(), m.engine.NextNextNext()} {
		b.WriteString(renderPreview(k))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHold() string {
	var b strings.Builder
	b.WriteString(infoStyle.Render("Hold:"))
	b.WriteString("\n")
	if k, ok := m.engine.Hold(); ok {
		b.WriteString(renderPreview(k))
	} else {
		b.WriteString(renderEmptyPreview())
	}
	return b.String()
}

func renderEmptyPreview() string {
	return "        \n        \n"
}

func renderPreview(k tetris.PieceKind) string {
	var b strings.Builder
	preview := tetris.NewFallingPiece(k)
	cells := preview.CellsAt(0, 1)
	cellSet := make(map[tetris.Point]bool, 4)
	for _, c := range cells {
		cellSet[c] = true
	}
	for r := 0; r < 2; r++ {
		for c := 0; c < 4; c++ {
			if cellSet[tetris.Point{Row: r, Col: c}] {
				b.WriteString(cellStyle(k.LockColor()).Render("[]"))
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func cellStyle(c tetris.Cell) lipgloss.Style {
	base := lipgloss.NewStyle()
	switch c {
	case tetris.CellCyan:
		return base.Foreground(lipgloss.Color("#00FFFF"))
	case tetris.CellYellow:
		return base.Foreground(lipgloss.Color("#FFD700"))
	case tetris.CellPurple:
		return base.Foreground(lipgloss.Color("#840084"))
	case tetris.CellGreen:
		return base.Foreground(lipgloss.Color("#00E632"))
	case tetris.CellRed:
		return base.Foreground(lipgloss.Color("#FF0000"))
	case tetris.CellOrange:
		return base.Foreground(lipgloss.Color("#FF8C00"))
	case tetris.CellBlue:
		return base.Foreground(lipgloss.Color("#0000FF"))
	case tetris.CellGray:
		return base.Foreground(lipgloss.Color("240"))
	case tetris.CellBlack:
		return base.Foreground(lipgloss.Color("235"))
	case tetris.CellWhite:
		return base.Foreground(lipgloss.Color("255"))
	default:
		return base.Foreground(lipgloss.Color("240"))
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#DCFFDC"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DCFFDC"))

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	pauseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD700"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
