package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codegenome/internal/ui/theme"
)

// TextInput is a bubbles textinput with an optional label drawn above it.
type TextInput struct {
	Model textinput.Model
	Label string
}

// NewTextInput creates a focused input. limit caps the number of
// characters when positive.
func NewTextInput(placeholder string, limit int) TextInput {
	in := textinput.New()
	in.Placeholder = placeholder
	if limit > 0 {
		in.CharLimit = limit
	}
	in.Focus()
	return TextInput{Model: in}
}

// NewField creates a labelled, unfocused input for a Form.
func NewField(label, placeholder string, limit int) TextInput {
	t := NewTextInput(placeholder, limit)
	t.Label = label
	t.Model.Blur()
	return t
}

// NewPasswordField creates a labelled field that masks its input.
func NewPasswordField(label string, limit int) TextInput {
	t := NewField(label, "", limit)
	t.Model.EchoMode = textinput.EchoPassword
	t.Model.EchoCharacter = '•'
	return t
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	if t.Label == "" {
		return t.Model.View()
	}
	label := theme.Muted
	if t.Model.Focused() {
		label = theme.Selected
	}
	return label.Render(t.Label) + "\n" + t.Model.View()
}

// Value returns the raw text.
func (t TextInput) Value() string { return t.Model.Value() }

// SetValue replaces the text.
func (t *TextInput) SetValue(v string) { t.Model.SetValue(v) }
