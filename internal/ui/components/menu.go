package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codegenome/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Disabled items are shown dimmed and
// cannot be selected.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list navigated with the arrow or j/k keys and
// activated with enter.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// move selects the next enabled item in direction dir, staying put at the
// ends.
func (m *Menu) move(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			return m, nil
		}
		if it := m.Items[m.Selected]; !it.Disabled && it.Action != nil {
			return m, it.Action()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	var b strings.Builder
	for i, it := range m.Items {
		switch {
		case it.Disabled:
			b.WriteString(theme.Muted.Render("    " + it.Label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  › " + it.Label))
		default:
			b.WriteString(theme.Plain.Render("    " + it.Label))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
