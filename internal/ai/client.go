// Package ai turns learner data into prompts, calls the configured LLM
// provider and recovers typed values from its replies. Every function
// returns an error on failure so callers can substitute the matching
// fallback.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/llm"
)

// Purpose labels recorded with each LLM event.
const (
	PurposeProfile    = "profile"
	PurposeJourney    = "journey"
	PurposeQuiz       = "quiz"
	PurposeAssessment = "assessment"
	PurposeReport     = "report"
)

// Config tunes generation.
type Config struct {
	MaxTokens   int
	Temperature float64
	// StructuredOutput asks the provider for schema-constrained JSON
	// instead of extracting JSON from free text.
	StructuredOutput bool
}

// DefaultConfig returns defaults for Config.
func DefaultConfig() Config {
	return Config{MaxTokens: 2048, Temperature: 0.7}
}

// Client wraps an llm.Provider with the prompts used by the app.
type Client struct {
	provider llm.Provider
	config   Config
}

// New creates a Client.
func New(provider llm.Provider, cfg Config) *Client {
	return &Client{provider: provider, config: cfg}
}

// IsUnparsable reports whether err came from a reply that held no usable
// JSON, as opposed to a provider failure. Truncated replies count.
func IsUnparsable(err error) bool {
	return errors.Is(err, ErrNoJSON) ||
		errors.Is(err, llm.ErrInvalidResponse) ||
		errors.Is(err, llm.ErrMaxTokensExceeded)
}

// complete sends one prompt and decodes the recovered JSON into out.
func (c *Client) complete(ctx context.Context, purpose, system, user string, schema *llm.Schema, out any) error {
	ctx = llm.WithPurpose(ctx, purpose)

	req := llm.Request{
		System:      system,
		Prompt:      user,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}
	if c.config.StructuredOutput {
		req.Schema = schema
	} else {
		req.System += jsonOnly
		req.Accept = func(content json.RawMessage) error {
			_, err := decodeFreeText(content, schema)
			return err
		}
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		logrus.WithError(err).WithField("purpose", purpose).Warn("LLM request failed")
		return fmt.Errorf("%s generation failed: %w", purpose, err)
	}

	raw := resp.Content
	if !c.config.StructuredOutput {
		raw, err = decodeFreeText(resp.Content, schema)
		switch {
		case errors.Is(err, ErrNoJSON):
			logrus.WithField("purpose", purpose).Info("LLM reply held no JSON")
			if resp.Truncated {
				return fmt.Errorf("%s: %w", purpose, llm.Truncated(resp.Content))
			}
			return fmt.Errorf("%s: %w", purpose, err)
		case err != nil:
			logrus.WithError(err).WithField("purpose", purpose).Info("LLM reply failed schema validation")
			return fmt.Errorf("%s: %w", purpose, err)
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: %w", purpose, llm.Invalid(raw, err))
	}
	return nil
}

// decodeFreeText pulls the JSON value out of a free-text reply and checks
// it against schema.
func decodeFreeText(content json.RawMessage, schema *llm.Schema) (json.RawMessage, error) {
	raw, err := ExtractJSON(string(content))
	if err != nil {
		return nil, err
	}
	if err := schema.Check(raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// AnalyzeProfile derives a learner profile from onboarding answers.
func (c *Client) AnalyzeProfile(ctx context.Context, answers []Answer) (*Profile, error) {
	var p Profile
	if err := c.complete(ctx, PurposeProfile, profileSystemPrompt, buildProfileMessage(answers), ProfileSchema, &p); err != nil {
		return nil, err
	}
	p.Mindprint.Focus = clamp(p.Mindprint.Focus)
	p.Mindprint.Resilience = clamp(p.Mindprint.Resilience)
	p.Mindprint.Openness = clamp(p.Mindprint.Openness)
	return &p, nil
}

// GenerateJourney plans a course schedule. Lesson IDs the course does not
// contain are dropped and weeks left empty are removed.
func (c *Client) GenerateJourney(ctx context.Context, course catalog.Course, profile *Profile) (*Journey, error) {
	var j Journey
	if err := c.complete(ctx, PurposeJourney, journeySystemPrompt, buildJourneyMessage(course, profile), JourneySchema, &j); err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(course.Lessons))
	for _, l := range course.Lessons {
		known[l.ID] = true
	}
	var weeks []JourneyWeek
	for _, w := range j.Weeks {
		var ids []string
		for _, id := range w.LessonIDs {
			if known[id] {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			continue
		}
		w.LessonIDs = ids
		w.Week = len(weeks) + 1
		weeks = append(weeks, w)
	}
	if len(weeks) == 0 {
		return nil, fmt.Errorf("%s: %w", PurposeJourney, llm.Invalid(nil, errors.New("no weeks reference course lessons")))
	}
	j.Weeks = weeks
	return &j, nil
}

type quizOutput struct {
	Questions []struct {
		Prompt      string   `json:"prompt"`
		Choices     []string `json:"choices"`
		AnswerIndex int      `json:"answer_index"`
		Explanation string   `json:"explanation"`
	} `json:"questions"`
}

// GenerateQuiz writes n multiple-choice questions for a lesson. Questions
// whose answer index is out of range are discarded.
func (c *Client) GenerateQuiz(ctx context.Context, lesson catalog.Lesson, n int) ([]catalog.QuizQuestion, error) {
	if n <= 0 {
		n = 3
	}
	var out quizOutput
	if err := c.complete(ctx, PurposeQuiz, quizSystemPrompt, buildQuizMessage(lesson, n), QuizSchema, &out); err != nil {
		return nil, err
	}

	var qs []catalog.QuizQuestion
	for _, q := range out.Questions {
		if strings.TrimSpace(q.Prompt) == "" || len(q.Choices) < 2 || q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Choices) {
			continue
		}
		qs = append(qs, catalog.QuizQuestion{
			Prompt:      q.Prompt,
			Choices:     q.Choices,
			Answer:      q.AnswerIndex,
			Explanation: q.Explanation,
		})
		if len(qs) == n {
			break
		}
	}
	if len(qs) == 0 {
		return nil, fmt.Errorf("%s: %w", PurposeQuiz, llm.Invalid(nil, errors.New("no usable questions")))
	}
	return qs, nil
}

// AnalyzeAssessment interprets a graded assessment.
func (c *Client) AnalyzeAssessment(ctx context.Context, result catalog.AssessmentScore) (*AssessmentInsight, error) {
	var in AssessmentInsight
	if err := c.complete(ctx, PurposeAssessment, insightSystemPrompt, buildInsightMessage(result), InsightSchema, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// GenerateReport writes a progress report.
func (c *Client) GenerateReport(ctx context.Context, input ReportInput) (*Report, error) {
	var r Report
	if err := c.complete(ctx, PurposeReport, reportSystemPrompt, buildReportMessage(input), ReportSchema, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func clamp(v int) int {
	return max(0, min(100, v))
}
