package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codegenome/internal/routes"
	"github.com/abhisek/codegenome/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

// stubNavigator builds stub screens titled after the resolved view.
type stubNavigator struct {
	session bool
	last    routes.Match
}

func (n *stubNavigator) SessionPresent() bool { return n.session }
func (n *stubNavigator) ScreenFor(m routes.Match) screen.Screen {
	n.last = m
	return &stubScreen{title: string(m.View)}
}

func TestNavigate_GatedWithoutSessionShowsLogin(t *testing.T) {
	nav := &stubNavigator{}
	r := NewWithNavigator(nav, "/")

	r.Update(NavigateMsg{Path: "/dashboard/reports"})

	if r.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", r.Depth())
	}
	if got := r.Active().Title(); got != string(routes.ViewLogin) {
		t.Errorf("expected login screen, got %q", got)
	}
	if next := nav.last.Query.Get("next"); next != "/dashboard/reports" {
		t.Errorf("expected next=/dashboard/reports, got %q", next)
	}
	if r.Path() != routes.PathLogin {
		t.Errorf("expected path %q, got %q", routes.PathLogin, r.Path())
	}
}

func TestNavigate_WithSession(t *testing.T) {
	nav := &stubNavigator{session: true}
	r := NewWithNavigator(nav, "/")

	r.Update(NavigateMsg{Path: "/dashboard/lessons/py-variables"})

	if got := r.Active().Title(); got != string(routes.ViewLesson) {
		t.Errorf("expected lesson screen, got %q", got)
	}
	if nav.last.Params["id"] != "py-variables" {
		t.Errorf("expected id param, got %v", nav.last.Params)
	}
}

func TestNavigate_ReplaceAndReset(t *testing.T) {
	nav := &stubNavigator{session: true}
	r := NewWithNavigator(nav, "/")
	r.Update(NavigateMsg{Path: "/courses"})
	r.Update(NavigateMsg{Path: "/pricing", Replace: true})

	if r.Depth() != 2 || r.Active().Title() != string(routes.ViewPricing) {
		t.Errorf("replace: depth %d active %q", r.Depth(), r.Active().Title())
	}

	r.Update(NavigateMsg{Path: "/dashboard", Reset: true})
	if r.Depth() != 1 || r.Path() != routes.PathDashboard {
		t.Errorf("reset: depth %d path %q", r.Depth(), r.Path())
	}
}

func TestNavigate_UnknownPath(t *testing.T) {
	r := NewWithNavigator(&stubNavigator{}, "/nope")
	if got := r.Active().Title(); got != string(routes.ViewNotFound) {
		t.Errorf("expected not-found screen, got %q", got)
	}
}

func TestNavigate_WithoutNavigatorIsNoop(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	if cmd := r.Update(NavigateMsg{Path: "/courses"}); cmd != nil {
		t.Error("expected nil cmd")
	}
	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
}

// countingScreen records how many state changes it has seen.
type countingScreen struct {
	stubScreen
	changes int
}

func (c *countingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(screen.StateChangedMsg); ok {
		c.changes++
	}
	return c, nil
}

func TestStateChangeReachesWholeStack(t *testing.T) {
	bottom := &countingScreen{stubScreen: stubScreen{title: "bottom"}}
	top := &countingScreen{stubScreen: stubScreen{title: "top"}}
	r := New(bottom)
	r.Push(top)

	r.Update(screen.StateChangedMsg{})

	if bottom.changes != 1 || top.changes != 1 {
		t.Errorf("changes = bottom %d, top %d; want 1 each", bottom.changes, top.changes)
	}
}
