package ai

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/codegenome/internal/catalog"
)

const jsonOnly = "\n\nReply with a single JSON object and nothing else."

const profileSystemPrompt = `You are a learning psychologist and senior engineer profiling a new coding student.
From their onboarding answers produce:
- mindprint: focus, resilience and openness scored 0-100 with a short summary of how they learn.
- coding_genome: level (beginner, intermediate or advanced), strengths, growth_areas, preferred_languages.
- life_trajectory: the goal they are working toward, a realistic horizon and ordered milestones.
Base every field on the answers; do not invent experience they did not describe.`

const journeySystemPrompt = `You are a study planner. Build a week-by-week plan through one course.
Use only lesson IDs from the provided list, keep them in course order and use each one once.
Pick pace relaxed, steady or intensive to match the learner's available time.`

const quizSystemPrompt = `You write multiple-choice questions that check understanding of a coding lesson.
Each question has exactly 4 choices, one correct, with answer_index pointing at it (0-based).
Distractors should reflect common misconceptions. Keep explanations to one sentence.`

const insightSystemPrompt = `You are a coding mentor reviewing a skills assessment.
Summarise the result in two sentences, list strengths and gaps by topic and give concrete recommendations.`

const reportSystemPrompt = `You are a coding mentor writing a short, encouraging progress report.
Use the numbers given; do not invent activity. Give a one-line headline, highlights and next steps.`

func buildProfileMessage(answers []Answer) string {
	var b strings.Builder
	b.WriteString("Onboarding answers:\n")
	for _, a := range answers {
		q := a.Question
		if q == "" {
			q = a.QuestionID
		}
		fmt.Fprintf(&b, "- %s: %s\n", q, a.Answer)
	}
	return b.String()
}

func buildJourneyMessage(course catalog.Course, profile *Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s (%s, about %d hours)\n", course.Title, course.Level, course.Hours)
	b.WriteString("Lessons:\n")
	for _, l := range course.Lessons {
		fmt.Fprintf(&b, "- %s: %s (%d min)\n", l.ID, l.Title, l.Minutes)
	}
	if profile != nil {
		fmt.Fprintf(&b, "\nLearner level: %s\n", profile.CodingGenome.Level)
		fmt.Fprintf(&b, "Focus score: %d\n", profile.Mindprint.Focus)
		if profile.LifeTrajectory.Goal != "" {
			fmt.Fprintf(&b, "Goal: %s\n", profile.LifeTrajectory.Goal)
		}
	}
	return b.String()
}

func buildQuizMessage(lesson catalog.Lesson, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lesson: %s\n", lesson.Title)
	fmt.Fprintf(&b, "Summary: %s\n", lesson.Summary)
	fmt.Fprintf(&b, "Content:\n%s\n\n", lesson.Content)
	fmt.Fprintf(&b, "Write %d questions.\n", n)
	return b.String()
}

func buildInsightMessage(result catalog.AssessmentScore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d%% (%d of %d correct)\n", result.Score, result.Correct, result.Total)
	b.WriteString("Per-topic percent correct:\n")
	for _, topic := range sortedKeys(result.Heatmap) {
		fmt.Fprintf(&b, "- %s: %d%%\n", topic, result.Heatmap[topic])
	}
	return b.String()
}

func buildReportMessage(in ReportInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Learner: %s\n", in.Name)
	if in.Profile != nil {
		fmt.Fprintf(&b, "Level: %s\n", in.Profile.CodingGenome.Level)
		if in.Profile.LifeTrajectory.Goal != "" {
			fmt.Fprintf(&b, "Goal: %s\n", in.Profile.LifeTrajectory.Goal)
		}
	}
	fmt.Fprintf(&b, "Lessons completed: %d\n", in.CompletedLessons)
	fmt.Fprintf(&b, "Assessments taken: %d, average score %d%%\n", in.Assessments, in.AverageScore)
	if len(in.EnrolledCourses) > 0 {
		b.WriteString("Course progress:\n")
		for _, id := range in.EnrolledCourses {
			fmt.Fprintf(&b, "- %s: %d%%\n", id, in.CourseProgress[id])
		}
	}
	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
