package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// View renders the login prompt
func (m Model) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render("igcleaner"))
	sections = append(sections, m.renderPanel())

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, helpStyle.Render("Press ? for help"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) renderPanel() string {
	var status string
	switch m.state {
	case StateConfirmed:
		status = successStyle.Render("✓ Continuing")
	case StateCancelled:
		status = warningStyle.Render("✗ Cancelled")
	default:
		status = fmt.Sprintf("%s %s %s",
			m.spinner.View(),
			"Waiting for login",
			elapsedStyle.Render(formatElapsed(m.elapsed)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		messageStyle.Render(m.message),
		"",
		status,
	)

	style := panelStyle
	if m.width > 4 {
		style = style.MaxWidth(m.width)
	}
	return style.Render(content)
}

func (m Model) renderHelp() string {
	help := []string{
		"enter      continue once the inbox is visible",
		"esc/q      cancel the run",
		"ctrl+c     cancel the run",
		"?          toggle help",
	}
	return helpStyle.Render(strings.Join(help, "\n"))
}

// formatElapsed renders d as m:ss
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
