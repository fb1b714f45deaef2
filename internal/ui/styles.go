package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})

	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#AAAAAA"})

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#888888"})

	glitchStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#C0008A", Dark: "#FF4FD8"})

	spectrumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#3A5FCD", Dark: "#8FA8FF"})

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})

	meterLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3CE074"))
	meterMidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0C648"))
	meterHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F26056"))
	meterPeakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFCD2"))
)
