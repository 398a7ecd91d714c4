package color

import "github.com/charmbracelet/lipgloss"

// Semantic palette. AdaptiveColor picks the variant matching the detected
// terminal background; lipgloss degrades gracefully down to no-color
// terminals and honors NO_COLOR.
var (
	successColor = lipgloss.AdaptiveColor{Light: "#107010", Dark: "#2ECC40"}
	warningColor = lipgloss.AdaptiveColor{Light: "#A67C00", Dark: "#FFDC00"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#B00020", Dark: "#FF4136"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#888888"}
)

// Styles for rendering service lifecycle states and report accents.
var (
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
	HeaderStyle  lipgloss.Style
)

func init() {
	rebuildStyles()
}

// Initialize fixes the background assumption for the process and rebuilds
// the exported styles. Call it once at startup, before rendering output.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
	rebuildStyles()
}

func rebuildStyles() {
	SuccessStyle = lipgloss.NewStyle().Foreground(successColor)
	WarningStyle = lipgloss.NewStyle().Foreground(warningColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
	HeaderStyle = lipgloss.NewStyle().Bold(true)
}
