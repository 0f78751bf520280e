package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the dashboard.
var (
	ColorRed     = lipgloss.Color("#FF5555")
	ColorGreen   = lipgloss.Color("#50FA7B")
	ColorYellow  = lipgloss.Color("#F1FA8C")
	ColorCyan    = lipgloss.Color("#8BE9FD")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#F8F8F2")
	ColorMagenta = lipgloss.Color("#FF79C6")
)

// Base styles reused by the dashboard views.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	StatLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StatValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	BannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	UserLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGreen)

	AgentLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	ErrorLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ExampleKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorYellow)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)
)
