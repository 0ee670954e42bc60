// Package dashboard holds the session user's home, profile and report
// screens.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenome/internal/appstate"
	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/router"
	"github.com/abhisek/codegenome/internal/routes"
	"github.com/abhisek/codegenome/internal/screen"
	"github.com/abhisek/codegenome/internal/ui/components"
	"github.com/abhisek/codegenome/internal/ui/layout"
	"github.com/abhisek/codegenome/internal/ui/theme"
)

type logoutDoneMsg struct {
	result appstate.Result
}

// DashboardScreen summarises progress and links to every learner page.
type DashboardScreen struct {
	state   *appstate.Store
	menu    components.Menu
	courses []string
	status  appstate.Result
}

var _ screen.Screen = (*DashboardScreen)(nil)

// NewDashboard creates the dashboard screen.
func NewDashboard(state *appstate.Store) *DashboardScreen {
	d := &DashboardScreen{state: state}
	d.rebuild()
	return d
}

func (d *DashboardScreen) rebuild() {
	selected := d.menu.Selected
	d.courses = d.state.Progress().EnrolledCourses

	var items []components.MenuItem
	for _, id := range d.courses {
		title := id
		if c, err := catalog.GetCourse(id); err == nil {
			title = c.Title
		}
		items = append(items, components.MenuItem{
			Label:  "Continue " + title,
			Action: func() tea.Cmd { return router.Navigate(routes.JourneyPath(id)) },
		})
	}

	u := d.state.CurrentUser()
	if u != nil && !u.OnboardingComplete {
		items = append(items, components.MenuItem{
			Label:    "Discover your Mindprint",
			Action:   func() tea.Cmd { return router.Navigate(routes.PathOnboarding) },
			Disabled: d.state.AnalysisInProgress(),
		})
	}
	state := d.state
	items = append(items,
		components.MenuItem{Label: "Browse courses", Action: func() tea.Cmd { return router.Navigate(routes.PathCourses) }},
		components.MenuItem{Label: "Take the skills assessment", Action: func() tea.Cmd { return router.Navigate(routes.PathAssessment) }},
		components.MenuItem{Label: "Profile", Action: func() tea.Cmd { return router.Navigate(routes.PathProfile) }},
		components.MenuItem{Label: "Progress report", Action: func() tea.Cmd { return router.Navigate(routes.PathReports) }},
		components.MenuItem{Label: "Log out", Action: func() tea.Cmd {
			return func() tea.Msg { return logoutDoneMsg{result: state.Logout(context.Background())} }
		}},
	)

	d.menu = components.NewMenu(items)
	if selected < len(items) && !items[selected].Disabled {
		d.menu.Selected = selected
	}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateChangedMsg:
		if d.state.Session() == nil {
			return d, func() tea.Msg { return router.NavigateMsg{Path: routes.PathHome, Reset: true} }
		}
		d.rebuild()
		return d, nil

	case logoutDoneMsg:
		d.status = msg.result
		if msg.result.Success {
			return d, func() tea.Msg { return router.NavigateMsg{Path: routes.PathHome, Reset: true} }
		}
		return d, nil
	}

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	u := d.state.CurrentUser()
	st := d.state.Stats()

	var sections []string
	name := "learner"
	if u != nil {
		name = u.Name
	}
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Hi, "+name))

	if d.state.AnalysisInProgress() {
		sections = append(sections, theme.Notice.Render("◌ Your Mindprint is being analysed. This page updates when it is ready."))
	}

	stats := fmt.Sprintf("%d courses   %d lessons done   %d assessments   avg score %d%%",
		st.EnrolledCourses, st.CompletedLessons, st.Assessments, st.AverageScore)
	sections = append(sections, components.Card(stats, cw))

	if len(d.courses) > 0 {
		var bars []string
		for _, id := range d.courses {
			title := id
			if c, err := catalog.GetCourse(id); err == nil {
				title = c.Title
			}
			pct := float64(st.CourseCompletion[id]) / 100
			bars = append(bars, components.NewProgressBar(fmt.Sprintf("%-24.24s", title), pct, true, cw-4).View())
		}
		sections = append(sections, components.Card(components.Section("Your courses", strings.Join(bars, "\n")), cw))
	} else {
		sections = append(sections, theme.Hint.Render("You are not enrolled in any course yet."))
	}

	sections = append(sections, d.menu.View())
	if s := components.Status(d.status.Message, !d.status.Success); s != "" {
		sections = append(sections, s)
	}
	return components.Page(strings.Join(sections, "\n\n"), width, height)
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "q", Description: "Quit"},
	}
}
