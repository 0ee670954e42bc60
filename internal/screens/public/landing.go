// Package public holds the screens reachable without a session: the
// landing page, pricing, the course catalog and course details.
package public

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenome/internal/appstate"
	"github.com/abhisek/codegenome/internal/router"
	"github.com/abhisek/codegenome/internal/routes"
	"github.com/abhisek/codegenome/internal/screen"
	"github.com/abhisek/codegenome/internal/ui/components"
	"github.com/abhisek/codegenome/internal/ui/theme"
)

const banner = `  ___         _       ___
 / __|___  __| |___  / __|___ _ _  ___ _ __  ___
| (__/ _ \/ _' / -_)| (_ / -_) ' \/ _ \ '  \/ -_)
 \___\___/\__,_\___| \___\___|_||_\___/_|_|_\___|`

// LandingScreen is the home page.
type LandingScreen struct {
	state *appstate.Store
	menu  components.Menu
}

var _ screen.Screen = (*LandingScreen)(nil)

// NewLanding creates the landing screen.
func NewLanding(state *appstate.Store) *LandingScreen {
	l := &LandingScreen{state: state}
	l.menu = l.buildMenu()
	return l
}

func (l *LandingScreen) buildMenu() components.Menu {
	items := []components.MenuItem{
		{Label: "Browse courses", Action: func() tea.Cmd { return router.Navigate(routes.PathCourses) }},
		{Label: "Pricing", Action: func() tea.Cmd { return router.Navigate(routes.PathPricing) }},
	}
	if l.state.Session() != nil {
		items = append(items,
			components.MenuItem{Label: "Go to dashboard", Action: func() tea.Cmd { return router.Navigate(routes.PathDashboard) }},
		)
	} else {
		items = append(items,
			components.MenuItem{Label: "Log in", Action: func() tea.Cmd { return router.Navigate(routes.PathLogin) }},
			components.MenuItem{Label: "Create an account", Action: func() tea.Cmd { return router.Navigate(routes.PathSignup) }},
		)
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }})
	return components.NewMenu(items)
}

func (l *LandingScreen) Init() tea.Cmd {
	return nil
}

func (l *LandingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(screen.StateChangedMsg); ok {
		selected := l.menu.Selected
		l.menu = l.buildMenu()
		if selected < len(l.menu.Items) {
			l.menu.Selected = selected
		}
		return l, nil
	}
	var cmd tea.Cmd
	l.menu, cmd = l.menu.Update(msg)
	return l, cmd
}

func (l *LandingScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render(banner))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Learn to code with a path shaped around how you think."))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Discover your Mindprint, follow an AI-planned journey, track every lesson."))
	b.WriteString("\n\n")
	b.WriteString(l.menu.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (l *LandingScreen) Title() string {
	return "Home"
}
