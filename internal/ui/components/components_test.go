package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func typeText(f Form, s string) Form {
	for _, r := range s {
		f, _ = f.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return f
}

func TestForm_AdvancesAndSubmits(t *testing.T) {
	f := NewForm(NewField("Email", "", 64), NewPasswordField("Password", 64))

	f = typeText(f, "ada@example.com")
	f, cmd := f.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if f.Focused != 1 {
		t.Fatalf("expected focus on field 1, got %d", f.Focused)
	}
	if cmd != nil {
		if _, ok := cmd().(FormSubmitMsg); ok {
			t.Fatal("enter on a middle field must not submit")
		}
	}

	f = typeText(f, "secret1")
	_, cmd = f.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	msg, ok := cmd().(FormSubmitMsg)
	if !ok {
		t.Fatalf("expected FormSubmitMsg, got %T", cmd())
	}
	if msg.Values[0] != "ada@example.com" || msg.Values[1] != "secret1" {
		t.Errorf("values = %q", msg.Values)
	}
}

func TestForm_TabWraps(t *testing.T) {
	f := NewForm(NewField("A", "", 10), NewField("B", "", 10))
	f, _ = f.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	f, _ = f.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if f.Focused != 0 {
		t.Errorf("expected wrap to 0, got %d", f.Focused)
	}
	f, _ = f.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if f.Focused != 1 {
		t.Errorf("expected shift+tab to 1, got %d", f.Focused)
	}
}

func TestMultiChoice_LetterShortcutAndHiddenKey(t *testing.T) {
	m := NewMultiChoice("Pick", []string{"a", "b", "c", "d", "e"}, 4)
	m, _ = m.Update(tea.KeyPressMsg{Code: 'e', Text: "e"})
	if m.Selected != 4 {
		t.Fatalf("expected selection 4, got %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !m.IsCorrect() {
		t.Error("expected correct answer")
	}

	hidden := NewMultiChoice("Pick", []string{"a", "b"}, 1)
	hidden.Reveal = false
	hidden, _ = hidden.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if hidden.ChosenIndex != 0 || hidden.IsCorrect() {
		t.Errorf("chosen %d", hidden.ChosenIndex)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one", Action: func() tea.Cmd { called = "one"; return nil }},
		{Label: "off", Disabled: true},
		{Label: "two", Action: func() tea.Cmd { called = "two"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item, got %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if called != "two" {
		t.Errorf("expected action two, got %q", called)
	}
}

func TestProgressCells(t *testing.T) {
	tests := []struct {
		f      float64
		filled string
		empty  int
	}{
		{0, "", 4},
		{0.5, "██", 2},
		{0.5625, "██▎", 1},
		{1, "████", 0},
		{1.7, "████", 0},
		{-1, "", 4},
	}
	for _, tt := range tests {
		filled, empty := cells(4, tt.f)
		if filled != tt.filled || empty != tt.empty {
			t.Errorf("cells(4, %v) = %q, %d; want %q, %d", tt.f, filled, empty, tt.filled, tt.empty)
		}
	}
}

func TestMenu_AllDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a", Disabled: true}, {Label: "b", Disabled: true}})
	if m.Selected != 0 {
		t.Fatalf("expected selection 0, got %d", m.Selected)
	}
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("disabled item must not run")
	}
}
