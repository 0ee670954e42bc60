// Package theme holds the CodeGenome palette and the shared styles built
// from it.
package theme

import "charm.land/lipgloss/v2"

// Palette. Greens and cyans echo terminal output; amber marks notices.
var (
	Primary   = lipgloss.Color("#34D399")
	Secondary = lipgloss.Color("#38BDF8")
	Accent    = lipgloss.Color("#FBBF24")
	Success   = lipgloss.Color("#4ADE80")
	Error     = lipgloss.Color("#F87171")
	Text      = lipgloss.Color("#E5E7EB")
	TextDim   = lipgloss.Color("#9CA3AF")
	BgCard    = lipgloss.Color("#111827")
	Border    = lipgloss.Color("#374151")
)

// Text styles shared by screens.
var (
	Hint      = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Notice    = lipgloss.NewStyle().Foreground(Accent)
	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Selected  = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Plain     = lipgloss.NewStyle().Foreground(Text)
	Muted     = lipgloss.NewStyle().Foreground(TextDim)
	Heading   = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
)

// Chrome is the bordered bar style used for the header and footer.
var Chrome = lipgloss.NewStyle().
	Background(BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border)
