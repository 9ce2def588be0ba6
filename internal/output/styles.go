package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	ColorSafe    = lipgloss.Color("#04B575") // green
	ColorWarning = lipgloss.Color("#FFB800") // yellow
	ColorInfo    = lipgloss.Color("#00BFFF") // cyan
	ColorMuted   = lipgloss.Color("#666666") // gray
)

// Box styles
var (
	SafeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSafe).
			Padding(0, 1)

	WarningBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Padding(0, 1)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorInfo)

	SafeText = lipgloss.NewStyle().
			Foreground(ColorSafe).
			Bold(true)

	WarningText = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(ColorMuted)

	LineNumStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Width(6).
			Align(lipgloss.Right)
)

// Indicators
const (
	IconSafe    = "✅"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
)
