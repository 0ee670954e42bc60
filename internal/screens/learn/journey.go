// Package learn holds the study screens: a course journey, the lesson
// viewer with its quiz and the skills assessment.
package learn

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenome/internal/appstate"
	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/coach"
	"github.com/abhisek/codegenome/internal/router"
	"github.com/abhisek/codegenome/internal/routes"
	"github.com/abhisek/codegenome/internal/screen"
	"github.com/abhisek/codegenome/internal/ui/components"
	"github.com/abhisek/codegenome/internal/ui/layout"
	"github.com/abhisek/codegenome/internal/ui/theme"
)

type journeyMsg struct {
	result appstate.Result
}

type enrollMsg struct {
	result appstate.Result
}

// JourneyScreen shows an enrolled course's schedule and lesson list.
type JourneyScreen struct {
	coach    *coach.Service
	course   catalog.Course
	menu     components.Menu
	spinner  spinner.Model
	planning bool
	status   appstate.Result
}

var _ screen.Screen = (*JourneyScreen)(nil)

// NewJourney creates the journey screen for a course.
func NewJourney(c *coach.Service, course catalog.Course) *JourneyScreen {
	j := &JourneyScreen{
		coach:   c,
		course:  course,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	j.rebuild()
	return j
}

func (j *JourneyScreen) rebuild() {
	selected := j.menu.Selected
	done := j.coach.State().Progress().CompletedLessons
	items := make([]components.MenuItem, len(j.course.Lessons))
	for i, l := range j.course.Lessons {
		mark := "○"
		if slices.Contains(done, l.ID) {
			mark = "✓"
		}
		id := l.ID
		items[i] = components.MenuItem{
			Label:  fmt.Sprintf("%s %s", mark, l.Title),
			Action: func() tea.Cmd { return router.Navigate(routes.LessonPath(id)) },
		}
	}
	j.menu = components.NewMenu(items)
	if selected < len(items) {
		j.menu.Selected = selected
	}
}

func (j *JourneyScreen) plan() tea.Cmd {
	c, id := j.coach, j.course.ID
	j.planning = true
	return tea.Batch(j.spinner.Tick, func() tea.Msg {
		_, res := c.PlanJourney(context.Background(), id)
		return journeyMsg{result: res}
	})
}

func (j *JourneyScreen) Init() tea.Cmd {
	return nil
}

func (j *JourneyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	state := j.coach.State()
	switch msg := msg.(type) {
	case journeyMsg:
		j.planning = false
		j.status = msg.result
		return j, nil

	case enrollMsg:
		j.status = msg.result
		if msg.result.Success && j.journey() == nil {
			return j, j.plan()
		}
		return j, nil

	case screen.StateChangedMsg:
		j.rebuild()
		return j, nil

	case spinner.TickMsg:
		if !j.planning {
			return j, nil
		}
		var cmd tea.Cmd
		j.spinner, cmd = j.spinner.Update(msg)
		return j, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			if !state.IsEnrolled(j.course.ID) {
				id := j.course.ID
				return j, func() tea.Msg { return enrollMsg{result: state.EnrollCourse(context.Background(), id)} }
			}
			return j, nil
		case "g":
			if state.IsEnrolled(j.course.ID) && !j.planning {
				return j, j.plan()
			}
			return j, nil
		}
	}

	var cmd tea.Cmd
	j.menu, cmd = j.menu.Update(msg)
	return j, cmd
}

func (j *JourneyScreen) journey() *appstate.Journey {
	return j.coach.State().Progress().Journeys[j.course.ID]
}

func (j *JourneyScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	state := j.coach.State()
	p := state.Progress()

	var sections []string
	pct := float64(catalog.CompletionPercent(j.course.ID, p.CompletedLessons)) / 100
	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(j.course.Title)+"\n"+
			components.NewProgressBar("Progress", pct, true, cw).View())

	if !state.IsEnrolled(j.course.ID) {
		sections = append(sections, theme.Notice.Render("You are not enrolled yet. Press e to enroll."))
	}

	switch jr := j.journey(); {
	case j.planning:
		sections = append(sections, components.Card(j.spinner.View()+" Planning your journey…", cw))
	case jr != nil:
		sections = append(sections, components.Card(components.Section("Your journey", renderJourney(jr)), cw))
	case state.IsEnrolled(j.course.ID):
		sections = append(sections, theme.Hint.Render("No journey yet. Press g to plan one."))
	}

	sections = append(sections, components.Section("Lessons", j.menu.View()))
	if s := components.Status(j.status.Message, !j.status.Success); s != "" {
		sections = append(sections, s)
	}
	return components.Page(strings.Join(sections, "\n\n"), width, height)
}

func renderJourney(jr *appstate.Journey) string {
	var b strings.Builder
	if jr.Pace != "" {
		fmt.Fprintf(&b, "Pace: %s\n", jr.Pace)
	}
	for _, w := range jr.Weeks {
		var titles []string
		for _, id := range w.LessonIDs {
			if l, err := catalog.GetLesson(id); err == nil {
				titles = append(titles, l.Title)
			}
		}
		fmt.Fprintf(&b, "Week %d · %s (%.0fh): %s\n", w.Week, w.Theme, w.Hours, strings.Join(titles, ", "))
	}
	for _, m := range jr.Milestones {
		b.WriteString("◆ " + m + "\n")
	}
	if jr.Source == coach.SourceFallback {
		b.WriteString(theme.Hint.Render("Standard schedule; AI planning was unavailable."))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (j *JourneyScreen) Title() string {
	return j.course.Title
}

func (j *JourneyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open lesson"},
		{Key: "g", Description: "Plan journey"},
		{Key: "e", Description: "Enroll"},
		{Key: "Esc", Description: "Back"},
	}
}
