package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	instaPink   = lipgloss.Color("#E1306C")
	instaPurple = lipgloss.Color("#833AB4")
	instaOrange = lipgloss.Color("#F77737")
	softGreen   = lipgloss.Color("#39D98A")
	dimWhite    = lipgloss.Color("#B0B0B0")

	titleStyle = lipgloss.NewStyle().
			Background(instaPurple).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(instaPink).
			Padding(1, 2)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(instaOrange)

	elapsedStyle = lipgloss.NewStyle().
			Foreground(dimWhite).
			Faint(true)

	successStyle = lipgloss.NewStyle().
			Foreground(softGreen).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(instaOrange).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(1, 0, 0, 2)
)
