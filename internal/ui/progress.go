package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wahlandcase/baklab/internal/models"
)

// AttemptMsg reports a finished attempt to the progress view
type AttemptMsg models.Attempt

// DoneMsg tells the progress view that the generator returned
type DoneMsg struct {
	Err error
}

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Progress is a bubbletea model showing generator attempts as they finish
type Progress struct {
	maxAttempts  int
	attempts     []models.Attempt
	spinnerFrame int
	done         bool
	canceled     bool
	err          error
	cancel       func()
}

// NewProgress creates the progress view. cancel is called when the user quits.
func NewProgress(maxAttempts int, cancel func()) Progress {
	return Progress{maxAttempts: maxAttempts, cancel: cancel}
}

// Init starts the spinner
func (p Progress) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages
func (p Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if p.done {
			return p, nil
		}
		p.spinnerFrame++
		return p, tickCmd()
	case AttemptMsg:
		p.attempts = append(p.attempts, models.Attempt(msg))
		return p, nil
	case DoneMsg:
		p.done = true
		p.err = msg.Err
		return p, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			p.canceled = true
			if p.cancel != nil {
				p.cancel()
			}
			return p, tea.Quit
		}
	}
	return p, nil
}

// Canceled reports whether the user quit before the generator finished
func (p Progress) Canceled() bool {
	return p.canceled && !p.done
}

// Attempts returns the attempts seen so far
func (p Progress) Attempts() []models.Attempt {
	return p.attempts
}

// View renders the progress view
func (p Progress) View() string {
	var b strings.Builder

	b.WriteString(RenderBanner(GeneratorSubtitle))
	b.WriteString("\n\n")

	if !p.done {
		spin := lipgloss.NewStyle().Foreground(ColorCyan).Render(Spinner(p.spinnerFrame))
		fmt.Fprintf(&b, "%s generating scratch repositories... %d so far\n", spin, len(p.attempts))
	}
	if p.maxAttempts > 0 {
		b.WriteString(ProgressBar(len(p.attempts), p.maxAttempts, 30))
		b.WriteString("\n")
	}

	// Last few attempts only
	start := max(len(p.attempts)-5, 0)
	for _, a := range p.attempts[start:] {
		b.WriteString(RenderAttemptLine(a))
		b.WriteString("\n")
	}

	if p.err != nil {
		b.WriteString(StatusLine("error", p.err.Error()))
		b.WriteString("\n")
	}
	if !p.done {
		b.WriteString("\n")
		b.WriteString(KeyBinding("q", "stop", ColorYellow))
		b.WriteString("\n")
	}
	return b.String()
}
