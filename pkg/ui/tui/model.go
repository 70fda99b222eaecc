package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// PromptState represents where the login prompt is
type PromptState int

const (
	StateWaiting PromptState = iota
	StateConfirmed
	StateCancelled
)

func (s PromptState) String() string {
	switch s {
	case StateConfirmed:
		return "confirmed"
	case StateCancelled:
		return "cancelled"
	default:
		return "waiting"
	}
}

// Model is the login prompt shown while the human signs in to the browser
type Model struct {
	spinner spinner.Model

	message   string
	startTime time.Time
	elapsed   time.Duration
	state     PromptState

	width    int
	showHelp bool
}

// NewModel creates a prompt model that displays message
func NewModel(message string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		spinner:   s,
		message:   message,
		startTime: time.Now(),
	}
}

// State returns the current prompt state
func (m Model) State() PromptState {
	return m.state
}

// Elapsed returns how long the prompt has been waiting
func (m Model) Elapsed() time.Duration {
	return m.elapsed
}
