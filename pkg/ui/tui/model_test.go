package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModelStartsWaiting(t *testing.T) {
	model := NewModel("Log in, then press enter")

	if model.State() != StateWaiting {
		t.Errorf("Expected waiting state, got %s", model.State())
	}
	if model.Init() == nil {
		t.Error("Expected Init to return a command")
	}
}

func TestEnterConfirms(t *testing.T) {
	model := NewModel("Log in")

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m := updated.(Model)

	if m.State() != StateConfirmed {
		t.Errorf("Expected confirmed state, got %s", m.State())
	}
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}

func TestCancelKeys(t *testing.T) {
	keys := []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	}

	for _, key := range keys {
		t.Run(key.String(), func(t *testing.T) {
			updated, cmd := NewModel("Log in").Update(key)
			if updated.(Model).State() != StateCancelled {
				t.Errorf("Expected cancelled state for %q", key.String())
			}
			if cmd == nil {
				t.Error("Expected quit command")
			}
		})
	}
}

func TestTickUpdatesElapsed(t *testing.T) {
	model := NewModel("Log in")

	updated, cmd := model.Update(TickMsg(model.startTime.Add(65 * time.Second)))
	m := updated.(Model)

	if m.Elapsed() != 65*time.Second {
		t.Errorf("Expected 65s elapsed, got %v", m.Elapsed())
	}
	if cmd == nil {
		t.Error("Expected another tick while waiting")
	}
	if !strings.Contains(m.View(), "1:05") {
		t.Errorf("Expected elapsed time in view, got %q", m.View())
	}
}

func TestViewShowsMessageAndHelp(t *testing.T) {
	model := NewModel("Log in to Instagram in the opened browser")

	view := model.View()
	if !strings.Contains(view, "Log in to Instagram in the opened browser") {
		t.Errorf("Expected message in view, got %q", view)
	}
	if !strings.Contains(view, "Press ? for help") {
		t.Error("Expected help hint")
	}

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !strings.Contains(updated.(Model).View(), "toggle help") {
		t.Error("Expected help to be shown after ?")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{59*time.Second + 500*time.Millisecond, "0:59"},
		{2*time.Minute + 3*time.Second, "2:03"},
	}

	for _, tt := range tests {
		if got := formatElapsed(tt.in); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
