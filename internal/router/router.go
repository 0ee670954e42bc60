// Package router keeps the terminal UI's screen stack and turns path
// navigation into screens through the shared route table.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codegenome/internal/routes"
	"github.com/abhisek/codegenome/internal/screen"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg requests the router to swap the top screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// NavigateMsg requests the screen for a path. Replace swaps the top screen
// instead of pushing, and Reset clears the stack down to the new screen.
type NavigateMsg struct {
	Path    string
	Replace bool
	Reset   bool
}

// Navigate returns a command that emits a NavigateMsg for path.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

// Redirect returns a command that replaces the current screen with path.
func Redirect(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path, Replace: true} }
}

// Back returns a command that pops the current screen.
func Back() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

// Navigator builds screens for resolved routes.
type Navigator interface {
	SessionPresent() bool
	ScreenFor(m routes.Match) screen.Screen
}

// Router manages a stack of screens.
type Router struct {
	stack []screen.Screen
	paths []string
	nav   Navigator
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{
		stack: []screen.Screen{initial},
		paths: []string{""},
	}
}

// NewWithNavigator creates a Router that starts at path.
func NewWithNavigator(nav Navigator, path string) *Router {
	m := routes.Resolve(path, nav.SessionPresent())
	r := New(nav.ScreenFor(m))
	r.nav = nav
	r.paths[0] = m.Path
	return r
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	r.paths = append(r.paths, "")
	return s.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	r.paths = r.paths[:len(r.paths)-1]
	return nil
}

// Replace swaps the top screen and calls its Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	r.paths[len(r.paths)-1] = ""
	return s.Init()
}

// NavigateTo resolves path against the route table and shows the
// resulting screen. A gated path without a session shows the login screen
// instead, carrying the original path as its continuation.
func (r *Router) NavigateTo(msg NavigateMsg) tea.Cmd {
	if r.nav == nil {
		return nil
	}
	m := routes.Resolve(msg.Path, r.nav.SessionPresent())
	s := r.nav.ScreenFor(m)

	var cmd tea.Cmd
	switch {
	case msg.Reset:
		r.stack = []screen.Screen{s}
		r.paths = []string{""}
		cmd = s.Init()
	case msg.Replace:
		cmd = r.Replace(s)
	default:
		cmd = r.Push(s)
	}
	r.paths[len(r.paths)-1] = m.Path
	return cmd
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Path returns the resolved path of the top screen, or "" when it was
// pushed directly.
func (r *Router) Path() string {
	if len(r.paths) == 0 {
		return ""
	}
	return r.paths[len(r.paths)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case NavigateMsg:
		return r.NavigateTo(msg)
	case screen.StateChangedMsg:
		// Every screen sees state changes; only the active one may act.
		var cmd tea.Cmd
		for i, s := range r.stack {
			updated, c := s.Update(msg)
			r.stack[i] = updated
			if i == len(r.stack)-1 {
				cmd = c
			}
		}
		return cmd
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
