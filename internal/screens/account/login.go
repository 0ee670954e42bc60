// Package account holds the login and signup forms.
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

const fieldWidth = 40

type authDoneMsg struct {
	result appstate.Result
}

// LoginScreen signs an existing user in and continues to next.
type LoginScreen struct {
	state   *appstate.Store
	next    string
	form    components.Form
	result  appstate.Result
	pending bool
}

var (
	_ screen.Screen        = (*LoginScreen)(nil)
	_ screen.InputCapturer = (*LoginScreen)(nil)
)

// NewLogin creates the login screen. next is the path to continue to; it
// is sanitised so only local pages are honoured.
func NewLogin(state *appstate.Store, next string) *LoginScreen {
	return &LoginScreen{
		state: state,
		next:  routes.SafeNext(next),
		form: components.NewForm(
			components.NewField("Email", "you@example.com", fieldWidth),
			components.NewPasswordField("Password", fieldWidth),
		),
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.form.Init()
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		l.pending = false
		l.result = msg.result
		if msg.result.Success {
			return l, router.Redirect(l.next)
		}
		return l, nil

	case components.FormSubmitMsg:
		if l.pending {
			return l, nil
		}
		l.pending = true
		state := l.state
		email, password := strings.TrimSpace(msg.Values[0]), msg.Values[1]
		return l, func() tea.Msg {
			return authDoneMsg{result: state.Login(context.Background(), email, password)}
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			return l, func() tea.Msg { return router.NavigateMsg{Path: routes.PathSignup, Replace: true} }
		}
	}

	var cmd tea.Cmd
	l.form, cmd = l.form.Update(msg)
	return l, cmd
}

func (l *LoginScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Welcome back"))
	b.WriteString("\n\n")
	b.WriteString(l.form.View())
	b.WriteString("\n")
	switch {
	case l.pending:
		b.WriteString(theme.Hint.Render("Signing in…"))
	case l.result.Message != "":
		b.WriteString(components.Status(l.result.Message, !l.result.Success))
	}
	return components.Page(components.Card(b.String(), components.ContentWidth(width)), width, height)
}

func (l *LoginScreen) Title() string {
	return "Log in"
}

func (l *LoginScreen) CapturesInput() bool {
	return true
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+S", Description: "Sign up instead"},
		{Key: "Esc", Description: "Back"},
	}
}
