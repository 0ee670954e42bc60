package public

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

type enrollDoneMsg struct {
	result appstate.Result
}

// CourseScreen shows one course with its lessons.
type CourseScreen struct {
	state  *appstate.Store
	course catalog.Course
	status appstate.Result
}

var _ screen.Screen = (*CourseScreen)(nil)

// NewCourse creates the detail screen for a course.
func NewCourse(state *appstate.Store, course catalog.Course) *CourseScreen {
	return &CourseScreen{state: state, course: course}
}

func (c *CourseScreen) Init() tea.Cmd {
	return nil
}

func (c *CourseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case enrollDoneMsg:
		c.status = msg.result
		if msg.result.Success {
			return c, router.Navigate(routes.JourneyPath(c.course.ID))
		}
		return c, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "e", "enter":
			// Without a session the gated journey path routes through login.
			if c.state.Session() == nil {
				return c, router.Navigate(routes.JourneyPath(c.course.ID))
			}
			if c.state.IsEnrolled(c.course.ID) {
				return c, router.Navigate(routes.JourneyPath(c.course.ID))
			}
			state, id := c.state, c.course.ID
			return c, func() tea.Msg {
				return enrollDoneMsg{result: state.EnrollCourse(context.Background(), id)}
			}
		}
	}
	return c, nil
}

func (c *CourseScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(c.course.Title))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%s · %d hours · %s", c.course.Level, c.course.Hours, strings.Join(c.course.Tags, ", "))))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Render(c.course.Summary))
	b.WriteString("\n\n")

	var lessons strings.Builder
	for i, l := range c.course.Lessons {
		fmt.Fprintf(&lessons, "%d. %s  %s\n", i+1, l.Title, theme.Hint.Render(fmt.Sprintf("%d min", l.Minutes)))
	}
	b.WriteString(components.Card(components.Section("Lessons", lessons.String()), cw))
	b.WriteString("\n\n")

	action := "Press e to enroll"
	switch {
	case c.state.Session() == nil:
		action = "Press e to log in and enroll"
	case c.state.IsEnrolled(c.course.ID):
		action = "Press e to open your journey"
	}
	b.WriteString(theme.Notice.Render(action))
	if s := components.Status(c.status.Message, !c.status.Success); s != "" {
		b.WriteString("\n" + s)
	}
	return components.Page(b.String(), width, height)
}

func (c *CourseScreen) Title() string {
	return c.course.Title
}

func (c *CourseScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "e", Description: "Enroll / open"},
		{Key: "Esc", Description: "Back"},
	}
}
