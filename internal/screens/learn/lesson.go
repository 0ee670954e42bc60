package learn

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenome/internal/appstate"
	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/coach"
	"github.com/abhisek/codegenome/internal/screen"
	"github.com/abhisek/codegenome/internal/ui/components"
	"github.com/abhisek/codegenome/internal/ui/layout"
	"github.com/abhisek/codegenome/internal/ui/theme"
)

type lessonPhase int

const (
	lessonReading lessonPhase = iota
	lessonLoadingQuiz
	lessonQuiz
	lessonGrading
	lessonGraded
)

type quizMsg struct {
	questions []catalog.QuizQuestion
	source    string
	err       error
}

type gradedMsg struct {
	outcome coach.QuizOutcome
}

// LessonScreen shows a lesson and runs its quiz. Passing the quiz marks
// the lesson complete.
type LessonScreen struct {
	coach     *coach.Service
	lesson    catalog.Lesson
	phase     lessonPhase
	spinner   spinner.Model
	questions []catalog.QuizQuestion
	source    string
	current   int
	choice    components.MultiChoice
	answers   []int
	outcome   coach.QuizOutcome
	err       error
}

var _ screen.Screen = (*LessonScreen)(nil)

// NewLesson creates the lesson screen.
func NewLesson(c *coach.Service, lesson catalog.Lesson) *LessonScreen {
	return &LessonScreen{
		coach:   c,
		lesson:  lesson,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (l *LessonScreen) Init() tea.Cmd {
	return nil
}

func (l *LessonScreen) startQuiz() tea.Cmd {
	l.phase = lessonLoadingQuiz
	l.err = nil
	c, id := l.coach, l.lesson.ID
	return tea.Batch(l.spinner.Tick, func() tea.Msg {
		qs, source, err := c.Quiz(context.Background(), id)
		return quizMsg{questions: qs, source: source, err: err}
	})
}

func (l *LessonScreen) loadQuestion() {
	q := l.questions[l.current]
	l.choice = components.NewMultiChoice(q.Prompt, q.Choices, q.Answer)
}

func (l *LessonScreen) submit() tea.Cmd {
	l.phase = lessonGrading
	c, id, qs, answers := l.coach, l.lesson.ID, l.questions, l.answers
	return func() tea.Msg {
		return gradedMsg{outcome: c.SubmitQuiz(context.Background(), id, qs, answers)}
	}
}

func (l *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizMsg:
		if msg.err != nil {
			l.phase, l.err = lessonReading, msg.err
			return l, nil
		}
		l.questions, l.source = msg.questions, msg.source
		l.current, l.answers = 0, nil
		if len(l.questions) == 0 {
			return l, l.submit()
		}
		l.phase = lessonQuiz
		l.loadQuestion()
		return l, nil

	case gradedMsg:
		l.phase = lessonGraded
		l.outcome = msg.outcome
		return l, nil

	case spinner.TickMsg:
		if l.phase != lessonLoadingQuiz {
			return l, nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return l, cmd

	case tea.KeyMsg:
		return l.handleKey(msg)
	}
	return l, nil
}

func (l *LessonScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch l.phase {
	case lessonReading:
		if msg.String() == "enter" {
			return l, l.startQuiz()
		}

	case lessonQuiz:
		if l.choice.Submitted {
			if msg.String() != "enter" {
				return l, nil
			}
			l.answers = append(l.answers, l.choice.ChosenIndex)
			l.current++
			if l.current < len(l.questions) {
				l.loadQuestion()
				return l, nil
			}
			return l, l.submit()
		}
		var cmd tea.Cmd
		l.choice, cmd = l.choice.Update(msg)
		return l, cmd

	case lessonGraded:
		if msg.String() == "r" && !l.outcome.Passed {
			return l, l.startQuiz()
		}
	}
	return l, nil
}

func (l *LessonScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(l.lesson.Title)
	if completed(l.coach.State(), l.lesson.ID) {
		title += "  " + theme.Correct.Render("✓ completed")
	}
	var sections []string
	sections = append(sections,
		title+"\n"+
			theme.Hint.Render(fmt.Sprintf("%d min · %s", l.lesson.Minutes, l.lesson.Summary)))

	switch l.phase {
	case lessonReading:
		sections = append(sections, components.Card(lipgloss.NewStyle().Width(cw-4).Render(l.lesson.Content), cw))
		if l.err != nil {
			sections = append(sections, components.Status("Could not load the quiz: "+l.err.Error(), true))
		}
		sections = append(sections, theme.Notice.Render("Press Enter to take the quiz."))

	case lessonLoadingQuiz:
		sections = append(sections, components.Card(l.spinner.View()+" Preparing your quiz…", cw))

	case lessonQuiz:
		header := fmt.Sprintf("Question %d of %d", l.current+1, len(l.questions))
		body := theme.Hint.Render(header) + "\n\n" + l.choice.View()
		if l.choice.Submitted {
			q := l.questions[l.current]
			if q.Explanation != "" {
				body += "\n" + lipgloss.NewStyle().Width(cw-4).Render(q.Explanation)
			}
			body += "\n" + theme.Hint.Render("Enter to continue")
		}
		sections = append(sections, components.Card(body, cw))

	case lessonGrading:
		sections = append(sections, components.Card("Grading…", cw))

	case lessonGraded:
		sections = append(sections, components.Card(l.gradedView(), cw))
	}
	return components.Page(strings.Join(sections, "\n\n"), width, height)
}

func (l *LessonScreen) gradedView() string {
	o := l.outcome
	line := fmt.Sprintf("%d / %d correct", o.Correct, o.Total)
	if o.Passed {
		msg := o.Result.Message
		if msg == "" {
			msg = "Lesson complete."
		}
		return theme.Correct.Render(line) + "\n" + components.Status(msg, !o.Result.Success)
	}
	return theme.Incorrect.Render(line) + "\n" + components.Status(o.Result.Message, false) + "\n\n" +
		theme.Hint.Render(fmt.Sprintf("You need %d%% to pass. Press r to retry.", catalog.PassingPercent))
}

func (l *LessonScreen) Title() string {
	return l.lesson.Title
}

func (l *LessonScreen) KeyHints() []layout.KeyHint {
	switch l.phase {
	case lessonQuiz:
		return []layout.KeyHint{
			{Key: "↑↓/a-d", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Back"},
		}
	case lessonGraded:
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Take quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

// completed reports whether the lesson is in the session user's record.
func completed(state *appstate.Store, lessonID string) bool {
	for _, id := range state.Progress().CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}
