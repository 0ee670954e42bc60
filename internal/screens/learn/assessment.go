package learn

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/coach"
	"github.com/abhisek/codegenome/internal/screen"
	"github.com/abhisek/codegenome/internal/ui/components"
	"github.com/abhisek/codegenome/internal/ui/layout"
	"github.com/abhisek/codegenome/internal/ui/theme"
)

type assessedMsg struct {
	outcome coach.AssessmentOutcome
}

// AssessmentScreen runs the skills assessment. Answers are not revealed
// while the test is in progress.
type AssessmentScreen struct {
	coach     *coach.Service
	questions []catalog.AssessmentQuestion
	current   int
	choice    components.MultiChoice
	answers   map[string]int
	spinner   spinner.Model
	scoring   bool
	outcome   *coach.AssessmentOutcome
}

var _ screen.Screen = (*AssessmentScreen)(nil)

// NewAssessment creates the assessment screen.
func NewAssessment(c *coach.Service) *AssessmentScreen {
	a := &AssessmentScreen{
		coach:   c,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	a.reset()
	return a
}

func (a *AssessmentScreen) reset() {
	a.questions = catalog.AssessmentBank()
	a.current = 0
	a.answers = make(map[string]int, len(a.questions))
	a.outcome = nil
	a.loadQuestion()
}

func (a *AssessmentScreen) loadQuestion() {
	q := a.questions[a.current]
	a.choice = components.NewMultiChoice(q.Prompt, q.Choices, -1)
}

func (a *AssessmentScreen) Init() tea.Cmd {
	return nil
}

func (a *AssessmentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case assessedMsg:
		a.scoring = false
		a.outcome = &msg.outcome
		return a, nil

	case spinner.TickMsg:
		if !a.scoring {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if a.scoring {
			return a, nil
		}
		if a.outcome != nil {
			if msg.String() == "r" {
				a.reset()
			}
			return a, nil
		}

		var cmd tea.Cmd
		a.choice, cmd = a.choice.Update(msg)
		if !a.choice.Submitted {
			return a, cmd
		}
		a.answers[a.questions[a.current].ID] = a.choice.ChosenIndex
		a.current++
		if a.current < len(a.questions) {
			a.loadQuestion()
			return a, cmd
		}

		a.scoring = true
		c, answers := a.coach, a.answers
		return a, tea.Batch(a.spinner.Tick, func() tea.Msg {
			return assessedMsg{outcome: c.SubmitAssessment(context.Background(), answers)}
		})
	}
	return a, nil
}

func (a *AssessmentScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	switch {
	case a.scoring:
		return components.Page(components.Card(a.spinner.View()+" Scoring and interpreting your answers…", cw), width, height)
	case a.outcome != nil:
		return components.Page(a.resultView(cw), width, height)
	}

	q := a.questions[a.current]
	progress := components.NewProgressBar(
		fmt.Sprintf("%d/%d", a.current+1, len(a.questions)),
		float64(a.current)/float64(len(a.questions)), false, cw-4).View()
	body := progress + "\n" + theme.Hint.Render(q.Topic) + "\n\n" + a.choice.View()
	return components.Page(components.Card(body, cw), width, height)
}

func (a *AssessmentScreen) resultView(cw int) string {
	o := a.outcome
	if !o.Result.Success {
		return components.Status(o.Result.Message, true)
	}

	var sections []string
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("Score %d%%  (%d of %d)", o.Score.Score, o.Score.Correct, o.Score.Total)))

	topics := make([]string, 0, len(o.Score.Heatmap))
	for t := range o.Score.Heatmap {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	bars := make([]string, len(topics))
	for i, t := range topics {
		bars[i] = components.NewProgressBar(fmt.Sprintf("%-16s", t), float64(o.Score.Heatmap[t])/100, true, cw-4).View()
	}
	sections = append(sections, components.Card(components.Section("By topic", strings.Join(bars, "\n")), cw))

	if in := o.Insight; in != nil {
		var b strings.Builder
		b.WriteString(lipgloss.NewStyle().Width(cw - 4).Render(in.Summary))
		for _, part := range []struct {
			label string
			items []string
		}{{"Strengths", in.Strengths}, {"Gaps", in.Gaps}, {"Try next", in.Recommendations}} {
			if len(part.items) > 0 {
				fmt.Fprintf(&b, "\n\n%s\n• %s", part.label, strings.Join(part.items, "\n• "))
			}
		}
		sections = append(sections, components.Card(components.Section("Insight", b.String()), cw))
	}
	return strings.Join(sections, "\n\n")
}

func (a *AssessmentScreen) Title() string {
	return "Skills assessment"
}

func (a *AssessmentScreen) KeyHints() []layout.KeyHint {
	if a.outcome != nil {
		return []layout.KeyHint{
			{Key: "r", Description: "Retake"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓/a-d", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Back"},
	}
}
