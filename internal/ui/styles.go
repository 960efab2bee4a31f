package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the annotation viewer
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, command kinds
	SuccessColor = lipgloss.Color("#43BF6D") // Green - bus parks, status
	WarningColor = lipgloss.Color("#FFA500") // Orange - warning row
	MutedColor   = lipgloss.Color("#626262") // Gray - sample intervals, help
	TextColor    = lipgloss.Color("#FFFFFF") // White - field labels
)

// Shared styles for the annotation viewer
var (
	// TitleStyle is for the viewer header line
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	// HeaderInfoStyle is for capture metadata next to the title
	HeaderInfoStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// IntervalStyle is for the sample interval column
	IntervalStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// CommandStyle is for command kind cells
	CommandStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	// FieldStyle is for ordinary field labels
	FieldStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// WarningRowStyle is for warning annotations
	WarningRowStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	// ParkStyle is for bus park cells
	ParkStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// StatusStyle is for the footer status line
	StatusStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// FilterActiveStyle marks the warnings-only filter in the footer
	FilterActiveStyle = lipgloss.NewStyle().
				Foreground(WarningColor)
)
