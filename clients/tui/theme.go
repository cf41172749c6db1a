// Package tui renders tasks in the terminal and implements the interactive
// prompter used by the step runner.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dohr-michael/simpsched/internal/tasks"
)

// Adaptive colors (light/dark terminal detection).
var (
	ColorLogo    = lipgloss.Color("#9bcffa")
	ColorHeader  = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#67E8F9"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF6B6B"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FACC15"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#6B21A8", Dark: "#D8A6FF"}
)

// Component styles.
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorLogo)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorHeader).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	MessageStyle = lipgloss.NewStyle().
			Italic(true)

	PromptBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorAccent).
				Padding(0, 1)
)

// StatusStyle colors a status cell.
func StatusStyle(s tasks.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch s {
	case tasks.StatusPending:
		return base.Foreground(ColorWarning)
	case tasks.StatusInProgress:
		return base.Foreground(ColorInfo)
	case tasks.StatusDone:
		return base.Foreground(ColorSuccess)
	case tasks.StatusCancelled:
		return base.Foreground(ColorMuted)
	}
	return base
}

// SeverityStyle colors a due label.
func SeverityStyle(s tasks.Severity) lipgloss.Style {
	switch s {
	case tasks.SeverityHigh:
		return lipgloss.NewStyle().Foreground(ColorError)
	case tasks.SeverityMedium:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	}
	return lipgloss.NewStyle()
}
