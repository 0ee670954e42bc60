// Package onboarding walks a new learner through the profile questions
// and runs the AI analysis that produces their Mindprint.
package onboarding

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenome/internal/ai"
	"github.com/abhisek/codegenome/internal/appstate"
	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/router"
	"github.com/abhisek/codegenome/internal/routes"
	"github.com/abhisek/codegenome/internal/screen"
	"github.com/abhisek/codegenome/internal/ui/components"
	"github.com/abhisek/codegenome/internal/ui/layout"
	"github.com/abhisek/codegenome/internal/ui/theme"
)

type phase int

const (
	phaseQuestions phase = iota
	phaseAnalysing
	phaseDone
)

type analysisDoneMsg struct {
	result appstate.Result
}

// Screen is the onboarding flow.
type Screen struct {
	state     *appstate.Store
	questions []catalog.OnboardingQuestion
	answers   []ai.Answer
	current   int
	choice    components.MultiChoice
	text      components.TextInput
	spinner   spinner.Model
	phase     phase
	result    appstate.Result
}

var (
	_ screen.Screen        = (*Screen)(nil)
	_ screen.InputCapturer = (*Screen)(nil)
)

// New creates the onboarding screen. If an analysis is already running
// the screen waits for it instead of asking the questions again.
func New(state *appstate.Store) *Screen {
	s := &Screen{
		state:     state,
		questions: catalog.OnboardingQuestions(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if state.AnalysisInProgress() {
		s.phase = phaseAnalysing
	}
	s.loadQuestion()
	return s
}

func (s *Screen) loadQuestion() {
	if s.current >= len(s.questions) {
		return
	}
	q := s.questions[s.current]
	if q.Kind == catalog.KindText {
		s.text = components.NewTextInput("Type your answer", 160)
		s.text.Model.Focus()
		return
	}
	s.choice = components.NewMultiChoice(q.Prompt, q.Options, -1)
}

// Answers returns the answers collected so far.
func (s *Screen) Answers() []ai.Answer {
	return s.answers
}

func (s *Screen) Init() tea.Cmd {
	if s.phase == phaseAnalysing {
		return s.spinner.Tick
	}
	if s.current < len(s.questions) && s.questions[s.current].Kind == catalog.KindText {
		return s.text.Init()
	}
	return nil
}

func (s *Screen) record(answer string) tea.Cmd {
	q := s.questions[s.current]
	s.answers = append(s.answers, ai.Answer{QuestionID: q.ID, Question: q.Prompt, Answer: answer})
	s.current++
	if s.current < len(s.questions) {
		s.loadQuestion()
		return s.Init()
	}

	s.phase = phaseAnalysing
	state, answers := s.state, s.answers
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		return analysisDoneMsg{result: state.StartAIAnalysis(context.Background(), answers)}
	})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case analysisDoneMsg:
		s.phase = phaseDone
		s.result = msg.result
		return s, nil

	case screen.StateChangedMsg:
		// Another process may finish the analysis this screen is waiting on.
		if s.phase == phaseAnalysing && msg.Change.Action == appstate.ActionAnalysisDone {
			s.phase = phaseDone
			s.result = appstate.Result{Success: true, Message: "Your Mindprint is ready."}
		}
		return s, nil

	case spinner.TickMsg:
		if s.phase != phaseAnalysing {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch s.phase {
		case phaseDone:
			if msg.String() == "enter" {
				return s, router.Redirect(routes.PathProfile)
			}
			return s, nil
		case phaseAnalysing:
			return s, nil
		}
	}

	if s.phase != phaseQuestions || s.current >= len(s.questions) {
		return s, nil
	}

	if s.questions[s.current].Kind == catalog.KindText {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
			answer := strings.TrimSpace(s.text.Value())
			if answer == "" {
				return s, nil
			}
			return s, s.record(answer)
		}
		var cmd tea.Cmd
		s.text, cmd = s.text.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if s.choice.Submitted {
		q := s.questions[s.current]
		return s, tea.Batch(cmd, s.record(q.Options[s.choice.ChosenIndex]))
	}
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	switch s.phase {
	case phaseAnalysing:
		return components.Page(components.Card(s.spinner.View()+" Reading your answers and building your Mindprint…", cw), width, height)
	case phaseDone:
		body := components.Status(s.result.Message, !s.result.Success) + "\n\n" + theme.Hint.Render("Enter to view your profile")
		return components.Page(components.Card(body, cw), width, height)
	}

	var b strings.Builder
	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", s.current+1, len(s.questions)),
		float64(s.current)/float64(len(s.questions)), false, cw-4)
	b.WriteString(progress.View())
	b.WriteString("\n\n")

	q := s.questions[s.current]
	if q.Kind == catalog.KindText {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Prompt))
		b.WriteString("\n\n")
		b.WriteString(s.text.View())
	} else {
		b.WriteString(s.choice.View())
	}
	return components.Page(components.Card(b.String(), cw), width, height)
}

func (s *Screen) Title() string {
	return "Onboarding"
}

func (s *Screen) CapturesInput() bool {
	return s.phase == phaseQuestions && s.current < len(s.questions) &&
		s.questions[s.current].Kind == catalog.KindText
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.phase == phaseDone {
		return []layout.KeyHint{{Key: "Enter", Description: "View profile"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Back"},
	}
}
