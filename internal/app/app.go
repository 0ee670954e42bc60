// Package app wires the router, the screens and the state store into the
// Bubble Tea program.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/codegenome/internal/appstate"
	"github.com/abhisek/codegenome/internal/coach"
	"github.com/abhisek/codegenome/internal/router"
	"github.com/abhisek/codegenome/internal/routes"
	"github.com/abhisek/codegenome/internal/screen"
	"github.com/abhisek/codegenome/internal/ui/layout"
)

// refreshInterval is how often the TUI checks the database for changes
// written by another process, such as the HTTP server.
const refreshInterval = 2 * time.Second

// Options configures the TUI.
type Options struct {
	Coach *coach.Service
	// StartPath is the first path shown. Defaults to the landing page.
	StartPath string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	state  *appstate.Store
	width  int
	height int
}

// newAppModel creates an AppModel showing opts.StartPath.
func newAppModel(opts Options) AppModel {
	start := opts.StartPath
	if start == "" {
		start = routes.PathHome
	}
	return AppModel{
		router: router.NewWithNavigator(navigator{coach: opts.Coach}, start),
		state:  opts.Coach.State(),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturesInput()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.router.Depth() == 1 && !m.capturing() {
				return m, tea.Quit
			}
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Back()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) account() string {
	if u := m.state.CurrentUser(); u != nil {
		return u.Name
	}
	return ""
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.account(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "q", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until it exits. Store
// changes, including ones picked up from the database, are forwarded to
// the active screen.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	state := opts.Coach.State()

	unsubscribe := state.Subscribe(func(c appstate.Change) {
		p.Send(screen.StateChangedMsg{Change: c})
	})
	defer unsubscribe()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go watch(ctx, state)

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

func watch(ctx context.Context, state *appstate.Store) {
	t := time.NewTicker(refreshInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := state.Refresh(ctx); err != nil && ctx.Err() == nil {
				logrus.WithError(err).Warn("refresh state from database")
			}
		}
	}
}
