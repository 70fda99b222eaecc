package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"igcleaner/pkg/report"
)

func TestColorToggle(t *testing.T) {
	defer SetColor(true)

	assert.Equal(t, "\033[31mboom\033[0m", Red("boom"))

	SetColor(false)
	assert.Equal(t, "boom", Red("boom"))
}

func TestPrintHelpers(t *testing.T) {
	var buf bytes.Buffer
	orig := Output
	Output = &buf
	SetColor(false)
	defer func() {
		Output = orig
		SetColor(true)
	}()

	PrintInfo("Profile", "/tmp/profile")
	PrintWarning("Dry run", "nothing will be unsent")
	PrintError("Run failed")

	out := buf.String()
	assert.Contains(t, out, "Profile: /tmp/profile")
	assert.Contains(t, out, "Dry run: nothing will be unsent")
	assert.Contains(t, out, "Run failed\n")
}

func TestStatusTracker(t *testing.T) {
	SetColor(false)
	defer SetColor(true)

	var buf bytes.Buffer
	tracker := NewStatusTracker(&buf)

	tracker.ConversationStarted("Alice", 1, 2)
	assert.Equal(t, "Alice", tracker.Current)

	started := time.Now()
	alice := report.NewConversationResult("Alice", 1, started)
	alice.Unsent = 3
	alice.Failed = 1
	tracker.ConversationFinished(alice)

	bob := report.NewConversationResult("Bob", 2, started)
	bob.Skipped = report.SkipNotFound
	tracker.ConversationFinished(bob)

	assert.Equal(t, 2, tracker.Done)
	assert.Equal(t, 3, tracker.Unsent)
	assert.Equal(t, 1, tracker.Failed)
	assert.Equal(t, 1, tracker.Skipped)
	assert.Empty(t, tracker.Current)

	out := buf.String()
	assert.Contains(t, out, "[CLEANING] Alice (1/2)")
	assert.Contains(t, out, "Failed: 1")
	assert.Contains(t, out, "Skipped: 1")
	assert.Contains(t, tracker.GetProgressBar(), "2/2")
}

func TestStatusTrackerProgressBar(t *testing.T) {
	tracker := NewStatusTracker(nil)
	assert.Equal(t, "["+strings.Repeat(ProgressEmpty, 20)+"] 0/0", tracker.GetProgressBar())

	tracker.Total = 4
	tracker.Done = 2
	assert.Equal(t, "["+strings.Repeat(ProgressBar, 10)+strings.Repeat(ProgressEmpty, 10)+"] 2/4", tracker.GetProgressBar())

	// nil writer must not panic
	tracker.ConversationFinished(report.NewConversationResult("x", 1, time.Now()))
}

type recordingSender struct {
	titles []string
	err    error
}

func (r *recordingSender) Send(title, message string) error {
	r.titles = append(r.titles, title)
	return r.err
}

func TestNotifier(t *testing.T) {
	SetColor(false)
	defer SetColor(true)

	var buf bytes.Buffer
	sender := &recordingSender{err: errors.New("no notify-send")}
	n := NewNotifierWithSender(&buf, sender)

	n.SendSuccess("Cleanup complete", "12 messages unsent")
	n.SendError("Cleanup failed", "browser closed")

	assert.Equal(t, []string{"Cleanup complete", "Cleanup failed"}, sender.titles)
	assert.Contains(t, buf.String(), "Cleanup complete: 12 messages unsent")
	assert.Contains(t, buf.String(), "Cleanup failed: browser closed")
}

func TestNotifierConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier(&buf, false)
	n.SendSuccess("done", "ok")
	assert.Contains(t, buf.String(), "ok")
}

func TestPlatformSender(t *testing.T) {
	assert.IsType(t, &LinuxNotificationSender{}, platformSender("linux"))
	assert.IsType(t, &MacOSNotificationSender{}, platformSender("darwin"))
	assert.IsType(t, &WindowsNotificationSender{}, platformSender("windows"))
	assert.Nil(t, platformSender("plan9"))
}

func TestEscaping(t *testing.T) {
	assert.Equal(t, `say \"hi\"`, escapeAppleScript(`say "hi"`))
	assert.Equal(t, "it''s", escapePowerShell("it's"))
}

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("\n"), &out)

	require.NoError(t, p.WaitForLogin(context.Background(), "Press Enter"))
	assert.Contains(t, out.String(), "Press Enter")
}

func TestLinePrompterEOF(t *testing.T) {
	p := NewLinePrompter(strings.NewReader(""), io.Discard)
	assert.NoError(t, p.WaitForLogin(context.Background(), "Press Enter"))
}

func TestLinePrompterCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewLinePrompter(r, io.Discard)
	assert.ErrorIs(t, p.WaitForLogin(ctx, "Press Enter"), context.Canceled)
}

func TestNewLoginPrompterFallsBackWithoutTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()

	assert.IsType(t, &LinePrompter{}, NewLoginPrompter(f, io.Discard))
}
