// Package coach pairs AI generation with its fallbacks and records the
// outcome in the state store. Views and the HTTP API call it instead of
// talking to the ai package directly.
package coach

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/codegenome/internal/ai"
	"github.com/abhisek/codegenome/internal/appstate"
	"github.com/abhisek/codegenome/internal/catalog"
)

// Where a generated value came from.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
	SourceCatalog  = "catalog"
)

// Generator is the subset of *ai.Client the coach calls.
type Generator interface {
	GenerateJourney(ctx context.Context, course catalog.Course, profile *ai.Profile) (*ai.Journey, error)
	GenerateQuiz(ctx context.Context, lesson catalog.Lesson, n int) ([]catalog.QuizQuestion, error)
	AnalyzeAssessment(ctx context.Context, result catalog.AssessmentScore) (*ai.AssessmentInsight, error)
	GenerateReport(ctx context.Context, input ai.ReportInput) (*ai.Report, error)
}

// Service runs learner-facing flows.
type Service struct {
	state *appstate.Store
	gen   Generator
}

// New creates a Service. gen may be nil, in which case every flow uses
// its fallback.
func New(state *appstate.Store, gen Generator) *Service {
	return &Service{state: state, gen: gen}
}

// State returns the underlying store.
func (s *Service) State() *appstate.Store {
	return s.state
}

// AIEnabled reports whether a generator is configured.
func (s *Service) AIEnabled() bool {
	return s.gen != nil
}

func logFailure(purpose string, err error) {
	entry := logrus.WithError(err).WithField("purpose", purpose)
	if ai.IsUnparsable(err) {
		entry.Info("AI reply unusable, using fallback")
		return
	}
	entry.Warn("AI request failed, using fallback")
}

// ProfileOf rebuilds the AI profile stored on a user, or nil if onboarding
// has not produced one.
func ProfileOf(u *appstate.User) *ai.Profile {
	if u == nil || u.Mindprint == nil {
		return nil
	}
	p := &ai.Profile{
		Mindprint: ai.Mindprint{
			Focus:      u.Mindprint.Focus,
			Resilience: u.Mindprint.Resilience,
			Openness:   u.Mindprint.Openness,
			Summary:    u.Mindprint.Summary,
		},
	}
	if g := u.CodingGenome; g != nil {
		p.CodingGenome = ai.CodingGenome{
			Level:              g.Level,
			Strengths:          g.Strengths,
			GrowthAreas:        g.GrowthAreas,
			PreferredLanguages: g.PreferredLanguages,
		}
	}
	if t := u.LifeTrajectory; t != nil {
		p.LifeTrajectory = ai.LifeTrajectory{Goal: t.Goal, Horizon: t.Horizon, Milestones: t.Milestones}
	}
	return p
}

// PlanJourney generates a schedule for an enrolled course and saves it.
func (s *Service) PlanJourney(ctx context.Context, courseID string) (*ai.Journey, appstate.Result) {
	course, err := catalog.GetCourse(courseID)
	if err != nil {
		return nil, appstate.Result{Message: "That course does not exist.", Err: appstate.ErrUnknownCourse}
	}
	u := s.state.CurrentUser()
	if u == nil {
		return nil, appstate.Result{Message: "Please log in first.", Err: appstate.ErrNoSession}
	}

	source := SourceFallback
	var j *ai.Journey
	if s.gen != nil {
		j, err = s.gen.GenerateJourney(ctx, course, ProfileOf(u))
		if err != nil {
			logFailure(ai.PurposeJourney, err)
		} else {
			source = SourceAI
		}
	}
	if j == nil {
		j = ai.FallbackJourney(course)
	}

	res := s.state.SaveJourney(ctx, courseID, j, source)
	if !res.Success {
		return nil, res
	}
	return j, res
}

// Quiz returns questions for a lesson: generated ones when available,
// otherwise the lesson's built-in quiz.
func (s *Service) Quiz(ctx context.Context, lessonID string) ([]catalog.QuizQuestion, string, error) {
	lesson, err := catalog.GetLesson(lessonID)
	if err != nil {
		return nil, "", appstate.ErrUnknownLesson
	}
	if s.gen != nil {
		qs, err := s.gen.GenerateQuiz(ctx, lesson, len(lesson.Quiz))
		if err == nil {
			return qs, SourceAI, nil
		}
		logFailure(ai.PurposeQuiz, err)
	}
	return lesson.Quiz, SourceCatalog, nil
}

// QuizOutcome is a graded lesson quiz.
type QuizOutcome struct {
	Correct int             `json:"correct"`
	Total   int             `json:"total"`
	Passed  bool            `json:"passed"`
	Result  appstate.Result `json:"result"`
}

// SubmitQuiz grades a lesson quiz and completes the lesson when it passes.
func (s *Service) SubmitQuiz(ctx context.Context, lessonID string, questions []catalog.QuizQuestion, answers []int) QuizOutcome {
	correct, passed := catalog.GradeQuiz(questions, answers)
	out := QuizOutcome{Correct: correct, Total: len(questions), Passed: passed}
	if !passed {
		out.Result = appstate.Result{Message: "Not quite. Review the lesson and try again."}
		return out
	}
	out.Result = s.state.CompleteLesson(ctx, lessonID)
	return out
}

// AssessmentOutcome is a scored skill assessment and its interpretation.
type AssessmentOutcome struct {
	Score         catalog.AssessmentScore `json:"score"`
	Insight       *ai.AssessmentInsight   `json:"insight"`
	InsightSource string                  `json:"insight_source"`
	Result        appstate.Result         `json:"result"`
}

// SubmitAssessment scores answers against the assessment bank, records
// the result and explains it.
func (s *Service) SubmitAssessment(ctx context.Context, answers map[string]int) AssessmentOutcome {
	score := catalog.ScoreAssessment(answers)
	out := AssessmentOutcome{Score: score}

	out.Result = s.state.AddAssessmentResult(ctx, appstate.AssessmentResult{
		Score:   score.Score,
		Correct: score.Correct,
		Total:   score.Total,
		Heatmap: score.Heatmap,
	})
	if !out.Result.Success {
		return out
	}

	out.InsightSource = SourceFallback
	if s.gen != nil {
		in, err := s.gen.AnalyzeAssessment(ctx, score)
		if err != nil {
			logFailure(ai.PurposeAssessment, err)
		} else {
			out.Insight, out.InsightSource = in, SourceAI
		}
	}
	if out.Insight == nil {
		out.Insight = ai.FallbackInsight(score)
	}
	return out
}

// ReportInput gathers the session user's progress for a report.
func (s *Service) ReportInput() (ai.ReportInput, error) {
	u := s.state.CurrentUser()
	if u == nil {
		return ai.ReportInput{}, appstate.ErrNoSession
	}
	p := s.state.Progress()
	st := s.state.Stats()
	return ai.ReportInput{
		Name:             u.Name,
		Profile:          ProfileOf(u),
		EnrolledCourses:  p.EnrolledCourses,
		CourseProgress:   st.CourseCompletion,
		CompletedLessons: st.CompletedLessons,
		Assessments:      st.Assessments,
		AverageScore:     st.AverageScore,
	}, nil
}

// Report writes a progress report for the session user.
func (s *Service) Report(ctx context.Context) (*ai.Report, string, error) {
	in, err := s.ReportInput()
	if err != nil {
		return nil, "", err
	}
	if s.gen != nil {
		r, err := s.gen.GenerateReport(ctx, in)
		if err == nil {
			return r, SourceAI, nil
		}
		if errors.Is(err, context.Canceled) {
			return nil, "", err
		}
		logFailure(ai.PurposeReport, err)
	}
	return ai.FallbackReport(in), SourceFallback, nil
}
