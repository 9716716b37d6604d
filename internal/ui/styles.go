package ui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor    = lipgloss.Color("#2BB673")
	highlightColor = lipgloss.Color("#7FD1AE")
	textColor      = lipgloss.Color("#FFFFFF")
	mutedColor     = lipgloss.Color("#6B7280")
	errorColor     = lipgloss.Color("#FF4757")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginTop(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginBottom(1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(textColor)

	UnavailableStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(1, 2)
)
