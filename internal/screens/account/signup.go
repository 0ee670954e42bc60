package account

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenome/internal/appstate"
	"github.com/abhisek/codegenome/internal/router"
	"github.com/abhisek/codegenome/internal/routes"
	"github.com/abhisek/codegenome/internal/screen"
	"github.com/abhisek/codegenome/internal/ui/components"
	"github.com/abhisek/codegenome/internal/ui/layout"
	"github.com/abhisek/codegenome/internal/ui/theme"
)

// SignupScreen registers a new account and starts onboarding.
type SignupScreen struct {
	state   *appstate.Store
	form    components.Form
	result  appstate.Result
	pending bool
}

var (
	_ screen.Screen        = (*SignupScreen)(nil)
	_ screen.InputCapturer = (*SignupScreen)(nil)
)

// NewSignup creates the signup screen.
func NewSignup(state *appstate.Store) *SignupScreen {
	return &SignupScreen{
		state: state,
		form: components.NewForm(
			components.NewField("Name", "Ada Lovelace", fieldWidth),
			components.NewField("Email", "you@example.com", fieldWidth),
			components.NewPasswordField("Password", fieldWidth),
		),
	}
}

func (s *SignupScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *SignupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		s.pending = false
		s.result = msg.result
		if msg.result.Success {
			return s, router.Redirect(routes.PathOnboarding)
		}
		return s, nil

	case components.FormSubmitMsg:
		if s.pending {
			return s, nil
		}
		s.pending = true
		state := s.state
		name, email, password := msg.Values[0], msg.Values[1], msg.Values[2]
		return s, func() tea.Msg {
			return authDoneMsg{result: state.Signup(context.Background(), name, email, password)}
		}
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	return s, cmd
}

func (s *SignupScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Create your account"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Passwords need at least 6 characters."))
	b.WriteString("\n\n")
	b.WriteString(s.form.View())
	b.WriteString("\n")
	switch {
	case s.pending:
		b.WriteString(theme.Hint.Render("Creating account…"))
	case s.result.Message != "":
		b.WriteString(components.Status(s.result.Message, !s.result.Success))
	}
	return components.Page(components.Card(b.String(), components.ContentWidth(width)), width, height)
}

func (s *SignupScreen) Title() string {
	return "Sign up"
}

func (s *SignupScreen) CapturesInput() bool {
	return true
}

func (s *SignupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}
