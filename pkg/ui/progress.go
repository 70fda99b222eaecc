package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"igcleaner/pkg/report"
)

const (
	ProgressBar   = "█"
	ProgressEmpty = "░"
)

// StatusTracker keeps running totals across conversations and prints a
// progress line after each one
type StatusTracker struct {
	mu sync.Mutex

	out       io.Writer
	StartTime time.Time

	Total     int
	Done      int
	Current   string
	Unsent    int
	Failed    int
	Skipped   int
	Truncated int
}

// NewStatusTracker creates a tracker printing to out; a nil out disables printing
func NewStatusTracker(out io.Writer) *StatusTracker {
	return &StatusTracker{
		out:       out,
		StartTime: time.Now(),
	}
}

// ConversationStarted records the conversation being worked on
func (st *StatusTracker) ConversationStarted(label string, index, total int) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.Current = label
	st.Total = total
	if st.out != nil {
		fmt.Fprintf(st.out, "\n%s %s %s\n",
			Magenta("[CLEANING]"),
			Cyan(label),
			Dim(fmt.Sprintf("(%d/%d)", index, total)))
	}
}

// ConversationFinished folds one result into the totals
func (st *StatusTracker) ConversationFinished(res *report.ConversationResult) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.Done++
	st.Current = ""
	st.Unsent += res.Unsent + res.WouldUnsend
	st.Failed += res.Failed
	if res.Skipped != "" {
		st.Skipped++
	}
	if res.Truncated {
		st.Truncated++
	}
	st.printProgress()
}

// GetProgressBar returns a formatted progress bar over conversations
func (st *StatusTracker) GetProgressBar() string {
	const width = 20
	filled := 0
	if st.Total > 0 {
		filled = st.Done * width / st.Total
	}
	if filled > width {
		filled = width
	}

	bar := strings.Repeat(ProgressBar, filled) +
		strings.Repeat(ProgressEmpty, width-filled)

	return fmt.Sprintf("[%s] %d/%d", bar, st.Done, st.Total)
}

// GetElapsedTime returns the elapsed time since tracking started
func (st *StatusTracker) GetElapsedTime() time.Duration {
	return time.Since(st.StartTime)
}

func (st *StatusTracker) printProgress() {
	if st.out == nil {
		return
	}
	line := fmt.Sprintf("%s %s Unsent: %d",
		Green("[PROGRESS]"),
		st.GetProgressBar(),
		st.Unsent)
	if st.Failed > 0 {
		line += " | " + Red(fmt.Sprintf("Failed: %d", st.Failed))
	}
	if st.Skipped > 0 {
		line += " | " + Yellow(fmt.Sprintf("Skipped: %d", st.Skipped))
	}
	fmt.Fprintln(st.out, line)
}
