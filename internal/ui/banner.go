package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Banner is the jjdemo header
var Banner = []string{
	"   _ _     _                     ",
	"  (_|_) __| | ___ _ __ ___   ___ ",
	"  | | |/ _` |/ _ \\ '_ ` _ \\ / _ \\",
	"  | | | (_| |  __/ | | | | | (_) |",
	" _/ |_/\\__,_|\\___|_| |_| |_|\\___/",
	"|__/___/                         ",
}

// BakTitle is the first line bak prints
const BakTitle = "bak - a simple backup tool"

// GeneratorSubtitle is shown under the banner while jjdemo generates repositories
const GeneratorSubtitle = "scratch repositories until two change ids share an initial"

// RenderBanner returns the styled banner as a string
func RenderBanner(subtitle string) string {
	bannerStyle := lipgloss.NewStyle().Foreground(ColorCyan)

	var lines []string
	for _, line := range Banner {
		lines = append(lines, bannerStyle.Render(line))
	}

	if subtitle != "" {
		lines = append(lines, "")
		subtitleStyle := lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)
		lines = append(lines, subtitleStyle.Render(subtitle))
	}

	return strings.Join(lines, "\n")
}

// RenderTitle returns a one-line bold title
func RenderTitle(title string) string {
	return lipgloss.NewStyle().Foreground(ColorCyan).Bold(true).Render(title)
}
