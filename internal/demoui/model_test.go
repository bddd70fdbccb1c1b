package demoui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fallcore/fallcore/internal/tetris"
	"github.com/fallcore/fallcore/internal/tetris/master"
)

func newTestModel() Model {
	return New(tetris.NewGame(tetris.NewSeededRand(1, 1)))
}

func TestNewStartsPlayingAndNotDone(t *testing.T) {
	m := newTestModel()
	if m.phase != phasePlaying {
		t.Errorf("phase = %v, want phasePlaying", m.phase)
	}
	if m.Done() {
		t.Error("Done() true immediately after New")
	}
}

func TestQuitKeySetsDone(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !next.(Model).Done() {
		t.Error("expected Done() true after 'q'")
	}
}

func TestPauseTogglesPhaseAndSuspendsEngineTicks(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m = next.(Model)
	if m.phase != phasePaused {
		t.Fatalf("phase after 'p' = %v, want phasePaused", m.phase)
	}

	before := len(*m.engine.EventQueue())
	next, _ = m.Update(tickMsg{})
	m = next.(Model)
	after := len(*m.engine.EventQueue())
	if after != before {
		t.Error("engine advanced while paused")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m = next.(Model)
	if m.phase != phasePlaying {
		t.Errorf("phase after second 'p' = %v, want phasePlaying", m.phase)
	}
}

func TestHeldDirectionDecaysAfterKeyStopsRepeating(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	m = next.(Model)
	if m.rightHeld != heldFrames {
		t.Fatalf("rightHeld after key = %d, want %d", m.rightHeld, heldFrames)
	}
	for i := 0; i < heldFrames; i++ {
		next, _ = m.Update(tickMsg{})
		m = next.(Model)
	}
	if m.rightHeld != 0 {
		t.Errorf("rightHeld after %d ticks with no repeat = %d, want 0", heldFrames, m.rightHeld)
	}
}

func TestHardDropEdgeClearsAfterOneTick(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Model)
	if !m.hardDropEdge {
		t.Fatal("expected hardDropEdge set after space")
	}
	next, _ = m.Update(tickMsg{})
	m = next.(Model)
	if m.hardDropEdge {
		t.Error("hardDropEdge should clear after the tick that consumed it")
	}
}

func TestMasterEngineIsDetected(t *testing.T) {
	// demoui must special-case *master.Master for the HUD without the
	// caller needing to tell it which mode it's driving.
	m := newTestModel()
	if m.master != nil {
		t.Error("plain *tetris.Game must not be detected as master")
	}

	mm := master.New(tetris.NewSeededRand(1, 1))
	if New(mm).master != mm {
		t.Error("*master.Master must be detected as master")
	}
}
