package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/wahlandcase/baklab/internal/models"
)

// RenderChange renders a change with its id initial highlighted
func RenderChange(c models.Change) string {
	idStyle := lipgloss.NewStyle().Foreground(ColorDarkGray)
	initialStyle := lipgloss.NewStyle().Foreground(InitialColor(c.Initial())).Bold(true)
	hashStyle := lipgloss.NewStyle().Foreground(ColorBlue)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	id := c.ChangeID
	if id != "" {
		id = initialStyle.Render(id[:1]) + idStyle.Render(id[1:])
	}

	parts := []string{id, hashStyle.Render(c.CommitHash)}
	if c.Empty {
		parts = append(parts, lipgloss.NewStyle().Foreground(ColorLightGreen).Render("(empty)"))
	}
	parts = append(parts, descStyle.Render(c.Description))
	return strings.Join(parts, " ")
}

// RenderReport lists the snapshots of a finished attempt, newest change first,
// followed by the scratch repository path
func RenderReport(a models.Attempt) string {
	nameStyle := lipgloss.NewStyle().Foreground(ColorDarkGray)
	dirStyle := lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)

	var lines []string
	lines = append(lines, SectionHeader(fmt.Sprintf("ATTEMPT %d", a.Number), ColorCyan))
	for _, s := range a.Snapshots {
		indent := strings.Repeat("    ↳ ", s.Depth)
		lines = append(lines, fmt.Sprintf("%s%s  %s", indent, RenderChange(s.Change), nameStyle.Render(s.Name)))
	}
	lines = append(lines, "", dirStyle.Render(a.Dir))
	return strings.Join(lines, "\n")
}

// RenderAttemptLine is the one-line progress entry for an attempt
func RenderAttemptLine(a models.Attempt) string {
	if a.Failed {
		return StatusLine("failed", fmt.Sprintf("attempt %d failed, kept %s", a.Number, a.Dir))
	}

	status := "retry"
	switch {
	case a.Stopped:
		status = "stopped"
	case a.Kept:
		status = "kept"
	}
	return StatusLine(status, fmt.Sprintf("attempt %d: %s (%s)",
		a.Number, strings.Join(a.ChangeIDs, " "), a.Duration.Round(time.Millisecond)))
}

// RenderAge renders how long ago t was, e.g. "3 minutes ago"
func RenderAge(t time.Time) string {
	return humanize.Time(t)
}

// RenderBackup renders the result line for one backed up file
func RenderBackup(source, target string, size int64) string {
	return StatusLine("ok", fmt.Sprintf("%s → %s (%s)", source, target, humanize.Bytes(uint64(size))))
}
