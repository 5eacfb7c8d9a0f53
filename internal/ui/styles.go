package ui

import "github.com/charmbracelet/lipgloss"

// Note: terminal color profile is chosen in internal/termfix

var (
	ColorCyan       = lipgloss.Color("#00FFFF")
	ColorGreen      = lipgloss.Color("#00FF00")
	ColorYellow     = lipgloss.Color("#FFFF00")
	ColorRed        = lipgloss.Color("#FF0000")
	ColorMagenta    = lipgloss.Color("#FF00FF")
	ColorBlue       = lipgloss.Color("#5555FF")
	ColorPurple     = lipgloss.Color("#AA55FF")
	ColorOrange     = lipgloss.Color("#FFA500")
	ColorLightGreen = lipgloss.Color("#90EE90")
	ColorWhite      = lipgloss.Color("#FFFFFF")
	ColorDarkGray   = lipgloss.Color("8")
)

var initialColors = []lipgloss.Color{
	ColorCyan,
	ColorMagenta,
	ColorYellow,
	ColorGreen,
	ColorOrange,
	ColorBlue,
	ColorPurple,
	ColorLightGreen,
}

// InitialColor picks a stable color for a change id initial, so ids that
// share a first letter share a color
func InitialColor(initial byte) lipgloss.Color {
	if initial == 0 {
		return ColorDarkGray
	}
	return initialColors[int(initial)%len(initialColors)]
}

// DimStyle is used for hints and empty states
var DimStyle = lipgloss.NewStyle().Foreground(ColorDarkGray)
