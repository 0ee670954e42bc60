package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenome/internal/ui/theme"
)

// partial holds the left-aligned eighth blocks used for the last cell.
var partial = []string{"", "▏", "▎", "▍", "▌", "▋", "▊", "▉"}

// ProgressBar renders a labelled completion meter with eighth-cell
// resolution.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0..1
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a bar that fills width cells including label and
// percentage.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

// cells returns the filled track for n cells at fraction f.
func cells(n int, f float64) (filled string, empty int) {
	f = max(0, min(f, 1))
	eighths := int(f * float64(n*8))
	full, rem := eighths/8, eighths%8
	filled = strings.Repeat("█", full) + partial[rem]
	used := full
	if rem > 0 {
		used++
	}
	return filled, n - used
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(theme.Plain.Render(p.Label))
		b.WriteString("  ")
	}
	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf(" %3d%%", int(max(0, min(p.Percent, 1))*100+0.5))
	}

	track := max(p.Width-lipgloss.Width(b.String())-len(suffix), 4)
	filled, empty := cells(track, p.Percent)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render(filled))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", empty)))
	if suffix != "" {
		b.WriteString(theme.Muted.Render(suffix))
	}
	return b.String()
}
