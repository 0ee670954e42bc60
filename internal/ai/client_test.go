package ai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/llm"
)

const profileJSON = `{
  "mindprint": {"focus": 72, "resilience": 64, "openness": 90, "summary": "Curious and steady."},
  "coding_genome": {"level": "beginner", "strengths": ["logic"], "growth_areas": ["debugging"], "preferred_languages": ["python"]},
  "life_trajectory": {"goal": "First dev job", "horizon": "9 months", "milestones": ["Finish Python", "Ship a project"]}
}`

func mockClient(cfg Config, responses ...string) (*Client, *llm.MockProvider) {
	var rs []llm.MockResponse
	for _, r := range responses {
		rs = append(rs, llm.MockResponse{Content: json.RawMessage(r)})
	}
	mock := llm.NewMockProvider(rs...)
	return New(mock, cfg), mock
}

func TestAnalyzeProfile_ExtractsFromFencedReply(t *testing.T) {
	c, mock := mockClient(DefaultConfig(), "Here is the profile:\n```json\n"+profileJSON+"\n```")

	p, err := c.AnalyzeProfile(context.Background(), []Answer{
		{QuestionID: "experience", Question: "How much?", Answer: "None yet"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Mindprint.Openness != 90 || p.CodingGenome.Level != "beginner" || p.LifeTrajectory.Goal != "First dev job" {
		t.Errorf("profile = %+v", p)
	}

	req := mock.Calls()[0]
	if req.Schema != nil {
		t.Error("free-text mode must not request structured output")
	}
	if !strings.Contains(req.Prompt, "How much?: None yet") {
		t.Errorf("prompt missing answer: %q", req.Prompt)
	}
}

func TestAnalyzeProfile_StructuredModeClampsScores(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StructuredOutput = true
	reply := strings.Replace(profileJSON, `"focus": 72`, `"focus": 150`, 1)
	c, mock := mockClient(cfg, reply)

	p, err := c.AnalyzeProfile(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Mindprint.Focus != 100 {
		t.Errorf("focus = %d, want 100", p.Mindprint.Focus)
	}
	if mock.Calls()[0].Schema != ProfileSchema {
		t.Error("structured mode should send the profile schema")
	}
}

func TestAnalyzeProfile_UnparsableReply(t *testing.T) {
	c, _ := mockClient(DefaultConfig(), "Sorry, I can't help with that.")

	_, err := c.AnalyzeProfile(context.Background(), nil)
	if !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON, got %v", err)
	}
	if !IsUnparsable(err) {
		t.Error("IsUnparsable should be true")
	}
}

func TestAnalyzeProfile_SchemaViolation(t *testing.T) {
	c, _ := mockClient(DefaultConfig(), `{"mindprint": {"focus": 10}}`)

	_, err := c.AnalyzeProfile(context.Background(), nil)
	if !errors.Is(err, llm.ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if !IsUnparsable(err) {
		t.Error("IsUnparsable should be true")
	}
}

func TestAnalyzeProfile_ProviderFailureIsDistinct(t *testing.T) {
	c, _ := mockClient(DefaultConfig())

	_, err := c.AnalyzeProfile(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, llm.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if IsUnparsable(err) {
		t.Error("provider failure must not be reported as unparsable")
	}
}

func TestAnalyzeProfile_TruncatedReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"mindprint": {"focus": 7`), Truncated: true})
	c := New(mock, DefaultConfig())

	_, err := c.AnalyzeProfile(context.Background(), nil)
	if !errors.Is(err, llm.ErrMaxTokensExceeded) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}
	if !IsUnparsable(err) {
		t.Error("truncated replies should count as unparsable")
	}
}

func TestGenerateJourney_DropsUnknownLessons(t *testing.T) {
	course, _ := catalog.GetCourse("python-foundations")
	reply := `{"pace":"steady","weeks":[
		{"week":1,"theme":"Start","lesson_ids":["py-variables","made-up"],"hours":2},
		{"week":2,"theme":"Ghost","lesson_ids":["nope"],"hours":1},
		{"week":3,"theme":"Finish","lesson_ids":["py-control-flow","py-functions"],"hours":3}
	],"milestones":["done"]}`
	c, _ := mockClient(DefaultConfig(), reply)

	j, err := c.GenerateJourney(context.Background(), course, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(j.Weeks) != 2 {
		t.Fatalf("weeks = %d, want 2", len(j.Weeks))
	}
	if j.Weeks[0].LessonIDs[0] != "py-variables" || len(j.Weeks[0].LessonIDs) != 1 {
		t.Errorf("week 1 = %+v", j.Weeks[0])
	}
	if j.Weeks[1].Week != 2 {
		t.Errorf("weeks should be renumbered, got %d", j.Weeks[1].Week)
	}
}

func TestGenerateJourney_NoUsableWeeks(t *testing.T) {
	course, _ := catalog.GetCourse("python-foundations")
	c, _ := mockClient(DefaultConfig(), `{"pace":"steady","weeks":[{"week":1,"theme":"x","lesson_ids":["zzz"],"hours":1}],"milestones":[]}`)

	if _, err := c.GenerateJourney(context.Background(), course, nil); !IsUnparsable(err) {
		t.Fatalf("expected unparsable error, got %v", err)
	}
}

func TestGenerateQuiz_DiscardsBadQuestions(t *testing.T) {
	lesson, _ := catalog.GetLesson("go-channels")
	reply := `{"questions":[
		{"prompt":"Good?","choices":["a","b","c","d"],"answer_index":2,"explanation":"c"},
		{"prompt":"Bad index","choices":["a","b"],"answer_index":5,"explanation":""},
		{"prompt":"","choices":["a","b"],"answer_index":0,"explanation":""}
	]}`
	c, mock := mockClient(DefaultConfig(), reply)

	qs, err := c.GenerateQuiz(context.Background(), lesson, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 1 || qs[0].Answer != 2 {
		t.Fatalf("questions = %+v", qs)
	}
	if !strings.Contains(mock.Calls()[0].Prompt, "Channels and select") {
		t.Error("prompt should name the lesson")
	}
}

func TestAnalyzeAssessmentAndReport(t *testing.T) {
	c, _ := mockClient(DefaultConfig(),
		`{"summary":"Solid","strengths":["loops"],"gaps":["algorithms"],"recommendations":["Practice sorting"]}`,
		`{"headline":"Great week","highlights":["3 lessons"],"next_steps":["Keep going"]}`,
	)

	in, err := c.AnalyzeAssessment(context.Background(), catalog.ScoreAssessment(nil))
	if err != nil {
		t.Fatalf("assessment: %v", err)
	}
	if in.Gaps[0] != "algorithms" {
		t.Errorf("insight = %+v", in)
	}

	r, err := c.GenerateReport(context.Background(), ReportInput{Name: "Ada"})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if r.Headline != "Great week" {
		t.Errorf("report = %+v", r)
	}
}

// mapCache is an in-memory llm.Cache.
type mapCache map[string][]byte

func (m mapCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	raw, ok := m[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m mapCache) SetJSON(_ context.Context, key string, v any, _ time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m[key] = raw
	return nil
}

func TestGenerateReport_RefusalIsNotCached(t *testing.T) {
	mock := llm.NewMockProvider().
		Reply("Sorry, I cannot help with that.").
		Reply(`{"headline":"Great week","highlights":["3 lessons"],"next_steps":["Keep going"]}`)
	cache := mapCache{}
	c := New(llm.Chain(mock, llm.Cached(cache, nil, 0)), DefaultConfig())
	in := ReportInput{Name: "Ada"}

	if _, err := c.GenerateReport(context.Background(), in); !IsUnparsable(err) {
		t.Fatalf("err = %v, want unparsable", err)
	}
	if len(cache) != 0 {
		t.Fatalf("refusal was cached")
	}

	r, err := c.GenerateReport(context.Background(), in)
	if err != nil {
		t.Fatalf("second report: %v", err)
	}
	if r.Headline != "Great week" {
		t.Errorf("report = %+v", r)
	}
	if got := mock.CallCount(); got != 2 {
		t.Errorf("provider calls = %d, want 2", got)
	}

	if _, err := c.GenerateReport(context.Background(), in); err != nil {
		t.Fatalf("cached report: %v", err)
	}
	if got := mock.CallCount(); got != 2 {
		t.Errorf("provider calls after cache hit = %d, want 2", got)
	}
}

func TestFallbacks(t *testing.T) {
	p := FallbackProfile([]Answer{
		{QuestionID: "experience", Answer: "I code professionally"},
		{QuestionID: "languages", Answer: "Go, Python ,"},
		{QuestionID: "focus", Answer: "Several hours"},
	})
	if p.CodingGenome.Level != "advanced" || p.Mindprint.Focus != 85 {
		t.Errorf("profile = %+v", p)
	}
	if len(p.CodingGenome.PreferredLanguages) != 2 {
		t.Errorf("languages = %v", p.CodingGenome.PreferredLanguages)
	}

	course, _ := catalog.GetCourse("python-foundations")
	j := FallbackJourney(course)
	if len(j.Weeks) != 2 || len(j.Weeks[0].LessonIDs) != 2 || j.Weeks[1].LessonIDs[0] != "py-functions" {
		t.Errorf("journey = %+v", j)
	}

	in := FallbackInsight(catalog.AssessmentScore{Score: 50, Correct: 5, Total: 10,
		Heatmap: map[string]int{"loops": 100, "algorithms": 0, "functions": 50}})
	if len(in.Strengths) != 1 || in.Strengths[0] != "loops" || len(in.Gaps) != 1 || in.Gaps[0] != "algorithms" {
		t.Errorf("insight = %+v", in)
	}

	r := FallbackReport(ReportInput{Name: "Ada"})
	if !strings.HasPrefix(r.Headline, "Ada:") || len(r.NextSteps) != 2 {
		t.Errorf("report = %+v", r)
	}
}
