package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenome/internal/appstate"
	"github.com/abhisek/codegenome/internal/screen"
	"github.com/abhisek/codegenome/internal/ui/components"
	"github.com/abhisek/codegenome/internal/ui/theme"
)

// ProfileScreen shows the account and its AI-generated profile.
type ProfileScreen struct {
	state *appstate.Store
}

var _ screen.Screen = (*ProfileScreen)(nil)

// NewProfile creates the profile screen.
func NewProfile(state *appstate.Store) *ProfileScreen {
	return &ProfileScreen{state: state}
}

func (p *ProfileScreen) Init() tea.Cmd {
	return nil
}

func (p *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *ProfileScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	u := p.state.CurrentUser()
	if u == nil {
		return components.Page(theme.Hint.Render("Not logged in."), width, height)
	}

	var sections []string
	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(u.Name)+"\n"+
			theme.Hint.Render(fmt.Sprintf("%s · member since %s", u.Email, u.CreatedAt.Format("Jan 2, 2006"))))

	if u.Mindprint == nil {
		msg := "Finish onboarding to get your Mindprint."
		if p.state.AnalysisInProgress() {
			msg = "Your Mindprint is being analysed."
		}
		sections = append(sections, components.Card(theme.Hint.Render(msg), cw))
		return components.Page(strings.Join(sections, "\n\n"), width, height)
	}

	m := u.Mindprint
	bar := func(label string, v int) string {
		return components.NewProgressBar(fmt.Sprintf("%-11s", label), float64(v)/100, true, cw-4).View()
	}
	mind := strings.Join([]string{bar("Focus", m.Focus), bar("Resilience", m.Resilience), bar("Openness", m.Openness)}, "\n")
	if m.Summary != "" {
		mind += "\n\n" + lipgloss.NewStyle().Width(cw-4).Render(m.Summary)
	}
	sections = append(sections, components.Card(components.Section("Mindprint", mind), cw))

	if g := u.CodingGenome; g != nil {
		var b strings.Builder
		fmt.Fprintf(&b, "Level: %s\n", g.Level)
		writeList(&b, "Strengths", g.Strengths)
		writeList(&b, "Growth areas", g.GrowthAreas)
		writeList(&b, "Languages", g.PreferredLanguages)
		sections = append(sections, components.Card(components.Section("Coding Genome", strings.TrimRight(b.String(), "\n")), cw))
	}
	if t := u.LifeTrajectory; t != nil {
		var b strings.Builder
		fmt.Fprintf(&b, "Goal: %s\n", t.Goal)
		if t.Horizon != "" {
			fmt.Fprintf(&b, "Horizon: %s\n", t.Horizon)
		}
		for i, ms := range t.Milestones {
			fmt.Fprintf(&b, "%d. %s\n", i+1, ms)
		}
		sections = append(sections, components.Card(components.Section("Life Trajectory", strings.TrimRight(b.String(), "\n")), cw))
	}
	if u.ProfileSource == "fallback" {
		sections = append(sections, theme.Hint.Render("Estimated from your answers while AI analysis was unavailable."))
	}
	return components.Page(strings.Join(sections, "\n\n"), width, height)
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(items, ", "))
}

func (p *ProfileScreen) Title() string {
	return "Profile"
}
