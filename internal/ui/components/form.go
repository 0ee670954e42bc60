package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// FormSubmitMsg is emitted when the last field of a Form is submitted.
type FormSubmitMsg struct {
	Values []string
}

// Form is a vertical list of text fields. Tab, shift+tab and the arrow
// keys move focus; enter advances and submits from the last field.
type Form struct {
	Fields  []TextInput
	Focused int
}

// NewForm creates a form focused on its first field.
func NewForm(fields ...TextInput) Form {
	f := Form{Fields: fields}
	if len(f.Fields) > 0 {
		f.Fields[0].Model.Focus()
	}
	return f
}

// Init focuses the first field.
func (f Form) Init() tea.Cmd {
	if len(f.Fields) == 0 {
		return nil
	}
	return f.Fields[f.Focused].Model.Focus()
}

func (f *Form) focus(i int) tea.Cmd {
	if i < 0 || i >= len(f.Fields) {
		return nil
	}
	f.Fields[f.Focused].Model.Blur()
	f.Focused = i
	return f.Fields[i].Model.Focus()
}

// Values returns the trimmed value of every field.
func (f Form) Values() []string {
	out := make([]string, len(f.Fields))
	for i, fld := range f.Fields {
		out[i] = strings.TrimSpace(fld.Value())
	}
	return out
}

// Update routes keys to the focused field.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if len(f.Fields) == 0 {
		return f, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return f, f.focus((f.Focused + 1) % len(f.Fields))
		case "shift+tab", "up":
			return f, f.focus((f.Focused - 1 + len(f.Fields)) % len(f.Fields))
		case "enter":
			if f.Focused < len(f.Fields)-1 {
				return f, f.focus(f.Focused + 1)
			}
			values := f.Values()
			return f, func() tea.Msg { return FormSubmitMsg{Values: values} }
		}
	}

	var cmd tea.Cmd
	f.Fields[f.Focused], cmd = f.Fields[f.Focused].Update(msg)
	return f, cmd
}

// View renders the fields separated by blank lines.
func (f Form) View() string {
	parts := make([]string, len(f.Fields))
	for i, fld := range f.Fields {
		parts[i] = fld.View()
	}
	return strings.Join(parts, "\n\n")
}
