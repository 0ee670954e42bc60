package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenome/internal/ui/theme"
)

// MultiChoice asks one question with lettered options. Options can be
// picked with the arrows, j/k, or their letter, and enter submits.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
	// Reveal marks the right and wrong options after submission. Graded
	// assessments leave it unset so the key stays hidden.
	Reveal bool
}

// NewMultiChoice creates an unanswered question. A negative correctIndex
// means there is no key to reveal.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
		Reveal:       correctIndex >= 0,
	}
}

func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if m.Submitted || !ok {
		return m, nil
	}
	switch k := key.String(); {
	case k == "up" || k == "k":
		m.Selected = max(m.Selected-1, 0)
	case k == "down" || k == "j":
		m.Selected = min(m.Selected+1, len(m.Options)-1)
	case k == "enter":
		m.Submitted, m.ChosenIndex = true, m.Selected
	case len(k) == 1 && k[0] >= 'a' && int(k[0]-'a') < len(m.Options):
		m.Selected = int(k[0] - 'a')
	}
	return m, nil
}

func (m MultiChoice) optionStyle(i int) lipgloss.Style {
	if !m.Submitted {
		if i == m.Selected {
			return theme.Selected
		}
		return theme.Plain
	}
	switch {
	case m.Reveal && i == m.CorrectIndex:
		return theme.Correct
	case m.Reveal && i == m.ChosenIndex:
		return theme.Incorrect
	case i == m.ChosenIndex:
		return theme.Selected
	default:
		return theme.Muted
	}
}

func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(theme.Plain.Bold(true).Render(m.Question))
	b.WriteString("\n\n")
	for i, opt := range m.Options {
		cursor := "  "
		if i == m.Selected && !m.Submitted {
			cursor = "› "
		}
		b.WriteString(m.optionStyle(i).Render(fmt.Sprintf("%s%c)  %s", cursor, 'A'+i, opt)))
		b.WriteByte('\n')
	}
	return b.String()
}

// IsCorrect reports whether the submitted choice matches the key.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
