package public

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenome/internal/router"
	"github.com/abhisek/codegenome/internal/routes"
	"github.com/abhisek/codegenome/internal/screen"
	"github.com/abhisek/codegenome/internal/ui/theme"
)

// NotFoundScreen is shown for paths the route table does not know.
type NotFoundScreen struct {
	path string
}

var _ screen.Screen = (*NotFoundScreen)(nil)

// NewNotFound creates the not-found screen for path.
func NewNotFound(path string) *NotFoundScreen {
	return &NotFoundScreen{path: path}
}

func (n *NotFoundScreen) Init() tea.Cmd {
	return nil
}

func (n *NotFoundScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
		return n, func() tea.Msg { return router.NavigateMsg{Path: routes.PathHome, Reset: true} }
	}
	return n, nil
}

func (n *NotFoundScreen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render("╌╌ 404 ╌╌\n\nNothing lives at " + n.path + "\n\n" + theme.Hint.Render("Enter to go home"))
}

func (n *NotFoundScreen) Title() string {
	return "Not found"
}
