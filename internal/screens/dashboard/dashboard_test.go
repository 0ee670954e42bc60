package dashboard

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/codegenome/internal/ai"
	"github.com/abhisek/codegenome/internal/appstate"
	"github.com/abhisek/codegenome/internal/coach"
	"github.com/abhisek/codegenome/internal/router"
	"github.com/abhisek/codegenome/internal/routes"
	"github.com/abhisek/codegenome/internal/screen"
	"github.com/abhisek/codegenome/internal/store"
)

func loggedIn(t *testing.T) *appstate.Store {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "dashboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	s, err := appstate.Open(context.Background(), db.SnapshotRepo(), db.EventRepo(), appstate.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	require.True(t, s.Signup(context.Background(), "Ada", "ada@example.com", "secret1").Success)
	return s
}

func labels(d *DashboardScreen) []string {
	out := make([]string, len(d.menu.Items))
	for i, it := range d.menu.Items {
		out[i] = it.Label
	}
	return out
}

func TestDashboard_MenuFollowsProgress(t *testing.T) {
	state := loggedIn(t)
	d := NewDashboard(state)
	assert.Contains(t, labels(d), "Discover your Mindprint")
	assert.Contains(t, d.View(100, 40), "not enrolled")

	require.True(t, state.EnrollCourse(context.Background(), "go-concurrency").Success)
	d.Update(screen.StateChangedMsg{Change: appstate.Change{Action: appstate.ActionEnroll}})

	ls := labels(d)
	assert.Equal(t, "Continue Concurrency in Go", ls[0])
	assert.Contains(t, d.View(100, 40), "Your courses")
}

func TestDashboard_LogoutResetsToHome(t *testing.T) {
	state := loggedIn(t)
	d := NewDashboard(state)
	d.menu.Selected = len(d.menu.Items) - 1
	require.Equal(t, "Log out", d.menu.Items[d.menu.Selected].Label)

	_, cmd := d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, cmd = d.Update(cmd())
	require.NotNil(t, cmd)

	nav, ok := cmd().(router.NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, routes.PathHome, nav.Path)
	assert.True(t, nav.Reset)
	assert.Nil(t, state.Session())
}

func TestDashboard_SessionEndedElsewhere(t *testing.T) {
	state := loggedIn(t)
	d := NewDashboard(state)
	require.True(t, state.Logout(context.Background()).Success)

	_, cmd := d.Update(screen.StateChangedMsg{Change: appstate.Change{Action: appstate.ActionLogout}})
	require.NotNil(t, cmd)
	nav := cmd().(router.NavigateMsg)
	assert.True(t, nav.Reset)
}

func TestProfile_ShowsMindprint(t *testing.T) {
	state := loggedIn(t)
	p := NewProfile(state)
	assert.Contains(t, p.View(100, 40), "Finish onboarding")

	res := state.StartAIAnalysis(context.Background(), []ai.Answer{{QuestionID: "goal", Answer: "Build my own product"}})
	require.True(t, res.Success, res.Message)
	view := p.View(100, 40)
	assert.Contains(t, view, "Mindprint")
	assert.Contains(t, view, "Build my own product")
}

func TestReports_FallbackReport(t *testing.T) {
	state := loggedIn(t)
	var s screen.Screen = NewReports(coach.New(state, nil))

	msg := s.(*ReportsScreen).generate()()
	s, _ = s.Update(msg)
	r := s.(*ReportsScreen)
	assert.False(t, r.loading)
	require.NoError(t, r.err)
	require.NotNil(t, r.report)
	assert.Equal(t, coach.SourceFallback, r.source)
	assert.NotEmpty(t, r.report.Headline)
	assert.NotContains(t, s.View(100, 40), "Writing your progress report")
}
