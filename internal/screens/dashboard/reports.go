package dashboard

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenome/internal/ai"
	"github.com/abhisek/codegenome/internal/coach"
	"github.com/abhisek/codegenome/internal/screen"
	"github.com/abhisek/codegenome/internal/ui/components"
	"github.com/abhisek/codegenome/internal/ui/layout"
	"github.com/abhisek/codegenome/internal/ui/theme"
)

type reportMsg struct {
	report *ai.Report
	source string
	err    error
}

// ReportsScreen writes a progress report for the session user.
type ReportsScreen struct {
	coach   *coach.Service
	spinner spinner.Model
	loading bool
	report  *ai.Report
	source  string
	err     error
}

var _ screen.Screen = (*ReportsScreen)(nil)

// NewReports creates the reports screen.
func NewReports(c *coach.Service) *ReportsScreen {
	return &ReportsScreen{
		coach:   c,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		loading: true,
	}
}

func (r *ReportsScreen) generate() tea.Cmd {
	c := r.coach
	return func() tea.Msg {
		rep, source, err := c.Report(context.Background())
		return reportMsg{report: rep, source: source, err: err}
	}
}

func (r *ReportsScreen) Init() tea.Cmd {
	return tea.Batch(r.spinner.Tick, r.generate())
}

func (r *ReportsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportMsg:
		r.loading = false
		r.report, r.source, r.err = msg.report, msg.source, msg.err
		return r, nil

	case spinner.TickMsg:
		if !r.loading {
			return r, nil
		}
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd

	case tea.KeyMsg:
		if msg.String() == "r" && !r.loading {
			r.loading = true
			return r, tea.Batch(r.spinner.Tick, r.generate())
		}
	}
	return r, nil
}

func (r *ReportsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	switch {
	case r.loading:
		return components.Page(r.spinner.View()+" Writing your progress report…", width, height)
	case r.err != nil:
		return components.Page(components.Status("Could not build a report: "+r.err.Error(), true), width, height)
	case r.report == nil:
		return components.Page(theme.Hint.Render("No report yet."), width, height)
	}

	var sections []string
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Width(cw).Render(r.report.Headline))
	if len(r.report.Highlights) > 0 {
		sections = append(sections, components.Card(components.Section("Highlights", bullets(r.report.Highlights)), cw))
	}
	if len(r.report.NextSteps) > 0 {
		sections = append(sections, components.Card(components.Section("Next steps", bullets(r.report.NextSteps)), cw))
	}
	if r.source != coach.SourceAI {
		sections = append(sections, theme.Hint.Render("Summarised from your stats; AI reports are unavailable right now."))
	}
	return components.Page(strings.Join(sections, "\n\n"), width, height)
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, s := range items {
		lines[i] = "• " + s
	}
	return strings.Join(lines, "\n")
}

func (r *ReportsScreen) Title() string {
	return "Progress report"
}

func (r *ReportsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "r", Description: "Regenerate"},
		{Key: "Esc", Description: "Back"},
	}
}
