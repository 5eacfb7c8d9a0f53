// Package termfix adjusts terminal settings before anything is rendered.
// Import it first in main so the Warp fix runs before lipgloss/termenv read
// the environment:
//
//	_ "github.com/wahlandcase/baklab/internal/termfix"
package termfix

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	if os.Getenv("TERM_PROGRAM") == "WarpTerminal" {
		os.Setenv("TERM", "dumb")
		os.Setenv("COLORTERM", "truecolor")
	}
}

// ProfileFor returns the color profile to use for output written to w.
// Pipes and files get no colors, and so does NO_COLOR.
func ProfileFor(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

// Apply sets the lipgloss color profile for output written to w
func Apply(w io.Writer) {
	lipgloss.SetColorProfile(ProfileFor(w))
}
