package ui

import "github.com/charmbracelet/lipgloss"

// Terminal palette shared by interactive summaries.
var (
	ColorGreen  = lipgloss.Color("10")
	ColorRed    = lipgloss.Color("9")
	ColorYellow = lipgloss.Color("11")
	ColorBlue   = lipgloss.Color("12")
	ColorGray   = lipgloss.Color("8")
)

// Styles applied to summary output before mutating operations run.
var (
	// TitleStyle renders section headings.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue)

	// LabelStyle renders parameter names in summary tables.
	LabelStyle = lipgloss.NewStyle().
			Bold(true)

	// SuccessStyle renders resolved values and completion notices.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	// WarningStyle renders missing values and cautionary notices.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	// ErrorStyle renders validation failures.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	// MutedStyle renders secondary detail such as catalog descriptions.
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)
