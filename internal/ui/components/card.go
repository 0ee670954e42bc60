package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenome/internal/ui/theme"
)

// ContentWidth is the column width pages lay their cards out in, derived
// from the frame width and clamped to 20..72.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

// Card boxes content to the content width cw.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(cw - 2).
		Render(content)
}

// Section puts a heading over body.
func Section(heading, body string) string {
	return theme.Heading.Render(heading) + "\n" + body
}

// Page places a column at the top centre of the screen area.
func Page(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

// Status renders a one-line result message, in the error style when failed.
func Status(msg string, failed bool) string {
	switch {
	case msg == "":
		return ""
	case failed:
		return theme.Incorrect.Render(msg)
	default:
		return theme.Notice.Render(msg)
	}
}
