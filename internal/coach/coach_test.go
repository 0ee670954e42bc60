package coach

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/codegenome/internal/ai"
	"github.com/abhisek/codegenome/internal/appstate"
	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/llm"
	"github.com/abhisek/codegenome/internal/store"
)

type fakeGen struct {
	err     error
	journey *ai.Journey
	quiz    []catalog.QuizQuestion
	insight *ai.AssessmentInsight
	report  *ai.Report

	gotProfile *ai.Profile
}

func (f *fakeGen) GenerateJourney(_ context.Context, _ catalog.Course, p *ai.Profile) (*ai.Journey, error) {
	f.gotProfile = p
	return f.journey, f.err
}

func (f *fakeGen) GenerateQuiz(context.Context, catalog.Lesson, int) ([]catalog.QuizQuestion, error) {
	return f.quiz, f.err
}

func (f *fakeGen) AnalyzeAssessment(context.Context, catalog.AssessmentScore) (*ai.AssessmentInsight, error) {
	return f.insight, f.err
}

func (f *fakeGen) GenerateReport(context.Context, ai.ReportInput) (*ai.Report, error) {
	return f.report, f.err
}

func loggedIn(t *testing.T) *appstate.Store {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "coach.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := appstate.Open(context.Background(), db.SnapshotRepo(), db.EventRepo(), appstate.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	res := s.Signup(context.Background(), "Ada", "ada@example.com", "secret1")
	require.True(t, res.Success, res.Message)
	return s
}

func TestPlanJourney_UsesGenerator(t *testing.T) {
	s := loggedIn(t)
	gen := &fakeGen{journey: &ai.Journey{
		Pace:  "fast",
		Weeks: []ai.JourneyWeek{{Week: 1, Theme: "All", LessonIDs: []string{"py-variables"}, Hours: 2}},
	}}
	c := New(s, gen)

	j, res := c.PlanJourney(context.Background(), "python-foundations")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "fast", j.Pace)
	assert.Nil(t, gen.gotProfile, "no profile before onboarding")

	saved := s.Progress().Journeys["python-foundations"]
	require.NotNil(t, saved)
	assert.Equal(t, SourceAI, saved.Source)
}

func TestPlanJourney_FallsBack(t *testing.T) {
	s := loggedIn(t)
	c := New(s, &fakeGen{err: llm.Invalid(nil, errors.New("bad"))})

	j, res := c.PlanJourney(context.Background(), "python-foundations")
	require.True(t, res.Success, res.Message)
	require.NotEmpty(t, j.Weeks)
	assert.Equal(t, SourceFallback, s.Progress().Journeys["python-foundations"].Source)
}

func TestPlanJourney_UnknownCourseAndNoSession(t *testing.T) {
	s := loggedIn(t)
	c := New(s, nil)

	_, res := c.PlanJourney(context.Background(), "nope")
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, appstate.ErrUnknownCourse)

	s.Logout(context.Background())
	_, res = c.PlanJourney(context.Background(), "python-foundations")
	assert.ErrorIs(t, res.Err, appstate.ErrNoSession)
}

func TestQuiz_GeneratedOrCatalog(t *testing.T) {
	s := loggedIn(t)
	lesson, err := catalog.GetLesson("py-variables")
	require.NoError(t, err)

	gen := &fakeGen{quiz: []catalog.QuizQuestion{{Prompt: "Q?", Choices: []string{"a", "b"}, Answer: 1}}}
	qs, src, err := New(s, gen).Quiz(context.Background(), "py-variables")
	require.NoError(t, err)
	assert.Equal(t, SourceAI, src)
	assert.Len(t, qs, 1)

	qs, src, err = New(s, &fakeGen{err: &llm.Error{Kind: llm.KindUnavailable, Err: errors.New("down")}}).Quiz(context.Background(), "py-variables")
	require.NoError(t, err)
	assert.Equal(t, SourceCatalog, src)
	assert.Equal(t, lesson.Quiz, qs)

	_, _, err = New(s, nil).Quiz(context.Background(), "missing")
	assert.ErrorIs(t, err, appstate.ErrUnknownLesson)
}

func TestSubmitQuiz_CompletesOnPass(t *testing.T) {
	s := loggedIn(t)
	c := New(s, nil)
	lesson, err := catalog.GetLesson("py-variables")
	require.NoError(t, err)

	wrong := make([]int, len(lesson.Quiz))
	for i, q := range lesson.Quiz {
		wrong[i] = (q.Answer + 1) % len(q.Choices)
	}
	out := c.SubmitQuiz(context.Background(), lesson.ID, lesson.Quiz, wrong)
	assert.False(t, out.Passed)
	assert.Empty(t, s.Progress().CompletedLessons)

	right := make([]int, len(lesson.Quiz))
	for i, q := range lesson.Quiz {
		right[i] = q.Answer
	}
	out = c.SubmitQuiz(context.Background(), lesson.ID, lesson.Quiz, right)
	assert.True(t, out.Passed)
	assert.True(t, out.Result.Success)
	assert.Equal(t, []string{lesson.ID}, s.Progress().CompletedLessons)
}

func TestSubmitAssessment_RecordsAndExplains(t *testing.T) {
	s := loggedIn(t)
	answers := map[string]int{}
	for _, q := range catalog.AssessmentBank() {
		answers[q.ID] = q.Answer
	}

	out := New(s, nil).SubmitAssessment(context.Background(), answers)
	require.True(t, out.Result.Success, out.Result.Message)
	assert.Equal(t, 100, out.Score.Score)
	assert.Equal(t, SourceFallback, out.InsightSource)
	require.NotNil(t, out.Insight)
	assert.NotEmpty(t, out.Insight.Strengths)

	gen := &fakeGen{insight: &ai.AssessmentInsight{Summary: "Great"}}
	out = New(s, gen).SubmitAssessment(context.Background(), map[string]int{})
	require.True(t, out.Result.Success)
	assert.Equal(t, SourceAI, out.InsightSource)
	assert.Equal(t, "Great", out.Insight.Summary)

	hist := s.Progress().AssessmentHistory
	require.Len(t, hist, 2)
	assert.Equal(t, 100, hist[0].Score)
	assert.Equal(t, 0, hist[1].Score)
}

func TestReport_FallbackAndNoSession(t *testing.T) {
	s := loggedIn(t)
	c := New(s, &fakeGen{err: &llm.Error{Kind: llm.KindRateLimit, Err: errors.New("slow down")}})
	require.True(t, s.EnrollCourse(context.Background(), "python-foundations").Success)

	r, src, err := c.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, src)
	assert.Contains(t, r.Headline, "Ada")

	s.Logout(context.Background())
	_, _, err = c.Report(context.Background())
	assert.ErrorIs(t, err, appstate.ErrNoSession)
}

func TestProfileOf(t *testing.T) {
	assert.Nil(t, ProfileOf(nil))
	assert.Nil(t, ProfileOf(&appstate.User{}))

	u := &appstate.User{
		Mindprint:      &store.MindprintData{Focus: 10},
		LifeTrajectory: &store.LifeTrajectoryData{Goal: "SRE"},
	}
	p := ProfileOf(u)
	require.NotNil(t, p)
	assert.Equal(t, 10, p.Mindprint.Focus)
	assert.Equal(t, "SRE", p.LifeTrajectory.Goal)
	assert.Empty(t, p.CodingGenome.Level)
}
