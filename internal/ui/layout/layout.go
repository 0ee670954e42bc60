// Package layout composes the app frame: a header bar, the active
// screen and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenome/internal/ui/theme"
)

// Terminal sizes below the minimum get a resize message instead of a
// frame. Narrower than compactWidth, screens drop side columns.
const (
	MinWidth     = 80
	MinHeight    = 24
	compactWidth = 100
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth reports whether screens should use their narrow layout.
func IsCompactWidth(width int) bool { return width < compactWidth }

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("CodeGenome needs at least %d×%d\n\nCurrent size: %d×%d\n\nPlease resize your terminal.",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Plain.Render(msg))
}

// RenderHeader draws the brand on the left, title in the middle and the
// signed-in account (or "guest") on the right.
func RenderHeader(title, account string, width int) string {
	brand := theme.Selected.Render("◆ CodeGenome")
	who := theme.Muted.Render("guest")
	if account != "" {
		who = lipgloss.NewStyle().Foreground(theme.Accent).Render("● " + account)
	}
	return theme.Chrome.Width(width).Render(spread(width-4, brand, theme.Plain.Render(title), who))
}

// spread lays out left, centre and right within inner cells, keeping the
// centre text centred when there is room.
func spread(inner int, left, centre, right string) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(centre), lipgloss.Width(right)
	gapL := max((inner-cw)/2-lw, 1)
	gapR := max(inner-lw-gapL-cw-rw, 1)
	return left + strings.Repeat(" ", gapL) + centre + strings.Repeat(" ", gapR) + right
}

// RenderFooter draws the key hints.
func RenderFooter(hints []KeyHint, width int) string {
	key := theme.Plain.Bold(true)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + theme.Muted.Render(h.Description)
	}
	return theme.Chrome.Width(width).Render(" " + strings.Join(parts, theme.Muted.Render("  ·  ")))
}

// RenderFrame stacks header, content and footer, sizing the content to
// fill the remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	body := height - lipgloss.Height(header) - lipgloss.Height(footer)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(max(body, 0)).Render(content),
		footer,
	)
}
