package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"igcleaner/pkg/ui/tui"
)

// LoginPrompter blocks until the human confirms the browser session is logged in
type LoginPrompter interface {
	WaitForLogin(ctx context.Context, message string) error
}

// LinePrompter prints the message and waits for a line on its input
type LinePrompter struct {
	in  io.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: in, out: out}
}

// WaitForLogin prints message and returns once a line is read, the input
// ends, or ctx is done
func (p *LinePrompter) WaitForLogin(ctx context.Context, message string) error {
	fmt.Fprintf(p.out, "%s ", Yellow(message))

	done := make(chan error, 1)
	go func() {
		reader := bufio.NewReader(p.in)
		_, err := reader.ReadString('\n')
		if err == io.EOF {
			err = nil
		}
		done <- err
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		return nil
	}
}

// NewLoginPrompter returns the interactive prompt when stdin is a terminal
// and a plain line prompt otherwise
func NewLoginPrompter(in *os.File, out io.Writer) LoginPrompter {
	if term.IsTerminal(int(in.Fd())) {
		return tui.NewTUI(in, out)
	}
	return NewLinePrompter(in, out)
}
