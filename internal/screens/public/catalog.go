package public

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenome/internal/appstate"
	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/router"
	"github.com/abhisek/codegenome/internal/routes"
	"github.com/abhisek/codegenome/internal/screen"
	"github.com/abhisek/codegenome/internal/ui/components"
	"github.com/abhisek/codegenome/internal/ui/theme"
)

// CatalogScreen lists every course.
type CatalogScreen struct {
	state   *appstate.Store
	courses []catalog.Course
	menu    components.Menu
}

var _ screen.Screen = (*CatalogScreen)(nil)

// NewCatalog creates the course catalog screen.
func NewCatalog(state *appstate.Store) *CatalogScreen {
	c := &CatalogScreen{state: state, courses: catalog.AllCourses()}
	c.menu = c.buildMenu()
	return c
}

func (c *CatalogScreen) buildMenu() components.Menu {
	items := make([]components.MenuItem, len(c.courses))
	for i, course := range c.courses {
		id := course.ID
		label := fmt.Sprintf("%-28s %-12s %2dh", course.Title, course.Level, course.Hours)
		if c.state.IsEnrolled(id) {
			label += "  ✓ enrolled"
		}
		items[i] = components.MenuItem{
			Label:  label,
			Action: func() tea.Cmd { return router.Navigate(routes.CoursePath(id)) },
		}
	}
	return components.NewMenu(items)
}

func (c *CatalogScreen) Init() tea.Cmd {
	return nil
}

func (c *CatalogScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(screen.StateChangedMsg); ok {
		selected := c.menu.Selected
		c.menu = c.buildMenu()
		c.menu.Selected = selected
		return c, nil
	}
	var cmd tea.Cmd
	c.menu, cmd = c.menu.Update(msg)
	return c, cmd
}

func (c *CatalogScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	content := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Courses") + "\n\n" + c.menu.View()
	if sel := c.menu.Selected; sel >= 0 && sel < len(c.courses) {
		content += "\n" + components.Card(theme.Hint.Render(c.courses[sel].Summary), cw)
	}
	return components.Page(content, width, height)
}

func (c *CatalogScreen) Title() string {
	return "Courses"
}
