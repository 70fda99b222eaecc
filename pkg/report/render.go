package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
)

// Markdown formats the summary as a Markdown document
func Markdown(s *Summary) string {
	t := s.Totals()
	var b strings.Builder

	title := "igcleaner run"
	if s.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Started %s, took %s.\n\n", s.StartedAt.Format("2006-01-02 15:04:05"), s.Duration().Round(time.Second))

	if s.Error != "" {
		fmt.Fprintf(&b, "> **Run ended early:** %s\n\n", s.Error)
	}

	fmt.Fprintf(&b, "- Conversations discovered: %d\n", s.Discovered)
	fmt.Fprintf(&b, "- Cleaned: %d (truncated %d)\n", t.Cleaned, t.Truncated)
	fmt.Fprintf(&b, "- Skipped: %d\n", t.Skipped)
	fmt.Fprintf(&b, "- Failed: %d\n", t.Failed)
	if s.DryRun {
		fmt.Fprintf(&b, "- Messages that would be unsent: %d\n", t.WouldUnsend)
	} else {
		fmt.Fprintf(&b, "- Messages unsent: %d of %d attempted (%d failed)\n", t.Unsent, t.Attempted, t.FailedUnsends)
	}

	if len(s.Conversations) == 0 {
		return b.String()
	}

	b.WriteString("\n| Conversation | Status | Unsent | Failed | Scrolls | Note |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, r := range s.Conversations {
		unsent := r.Unsent
		if s.DryRun {
			unsent = r.WouldUnsend
		}
		note := r.Error
		if note == "" {
			note = string(r.Skipped)
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %d | %s |\n",
			escapeCell(r.Label), r.Status(), unsent, r.Failed, r.ScrollPasses, escapeCell(note))
	}

	return b.String()
}

// Render formats the summary for the terminal through glamour
func Render(s *Summary, noColor bool) (string, error) {
	style := "dark"
	if noColor {
		style = "notty"
	}

	out, err := glamour.Render(Markdown(s), style)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
