package tui

import (
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/registry"
)

var registerFake sync.Once

func withFakeGame(t *testing.T) {
	t.Helper()
	registerFake.Do(func() {
		registry.Register("fake", func() registry.Game { return &fakeGame{} })
	})
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return out
}

func TestSessionFlow(t *testing.T) {
	withFakeGame(t)
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 48}, "alice")

	if len(m.SessionID()) != 36 {
		t.Errorf("SessionID() = %q, expected a uuid", m.SessionID())
	}
	if other := NewSessionModel(nil, core.RuntimeConfig{}, "alice"); other.SessionID() == m.SessionID() {
		t.Error("two sessions share an ID")
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.inGame {
		t.Fatal("Enter did not start a game")
	}
	game, ok := m.game.(*fakeGame)
	if !ok {
		t.Fatalf("game is %T, expected *fakeGame", m.game)
	}

	// Back is ignored while the run is live
	m = sessionUpdate(t, m, runeKey('b'))
	if !m.inGame {
		t.Fatal("b left a live run")
	}

	game.state = core.GameState{GameOver: true}
	m = sessionUpdate(t, m, TickMsg{})
	m = sessionUpdate(t, m, runeKey('b'))
	if m.inGame {
		t.Error("b after game over did not return to the menu")
	}
	if m.View() == "" {
		t.Error("View() is empty back in the menu")
	}
}

func TestSessionQuit(t *testing.T) {
	withFakeGame(t)
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 48}, "bob")

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = sessionUpdate(t, m, runeKey('q'))
	if !m.quitting {
		t.Error("q in game did not end the session")
	}
	if m.View() != "" {
		t.Error("View() after quit is not empty")
	}
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	if cfg.Address != ":23234" {
		t.Errorf("Address = %q, expected :23234", cfg.Address)
	}
	if cfg.DBPath != "~/.skyraid/scores.db" {
		t.Errorf("DBPath = %q, expected ~/.skyraid/scores.db", cfg.DBPath)
	}
	if cfg.MaxSessions <= 0 {
		t.Errorf("MaxSessions = %d, expected a limit", cfg.MaxSessions)
	}
}

func TestMenuDifficulty(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if m.Difficulty() != "" || m.DifficultyLabel() != "default" {
		t.Errorf("Difficulty() = %q, expected the config default", m.Difficulty())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	if m.Difficulty() != "easy" {
		t.Errorf("Difficulty() = %q, expected easy", m.Difficulty())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	next, _ = next.(MenuModel).Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(MenuModel)
	if m.Difficulty() != "fixed" {
		t.Errorf("Difficulty() = %q, expected to wrap to fixed", m.Difficulty())
	}
}
