package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the human cancels the login prompt
var ErrCancelled = errors.New("login prompt cancelled")

// TUI shows the login prompt and reports how it ended
type TUI struct {
	in  io.Reader
	out io.Writer
}

// NewTUI creates a TUI reading keys from in and drawing to out
func NewTUI(in io.Reader, out io.Writer) *TUI {
	return &TUI{in: in, out: out}
}

// WaitForLogin shows message and blocks until the human presses enter,
// cancels, or ctx is done
func (t *TUI) WaitForLogin(ctx context.Context, message string) error {
	program := tea.NewProgram(NewModel(message),
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)

	final, err := program.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		return fmt.Errorf("login prompt failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok || m.State() != StateConfirmed {
		return ErrCancelled
	}
	return nil
}
