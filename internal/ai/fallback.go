package ai

import (
	"fmt"
	"strings"

	"github.com/abhisek/codegenome/internal/catalog"
)

// FallbackProfile builds a neutral profile from the answers alone.
func FallbackProfile(answers []Answer) *Profile {
	byID := make(map[string]string, len(answers))
	for _, a := range answers {
		byID[a.QuestionID] = a.Answer
	}

	level := string(catalog.LevelBeginner)
	switch byID["experience"] {
	case "Built small projects":
		level = string(catalog.LevelIntermediate)
	case "I code professionally":
		level = string(catalog.LevelAdvanced)
	}

	focus := 50
	switch byID["focus"] {
	case "Under 15 minutes":
		focus = 30
	case "An hour":
		focus = 70
	case "Several hours":
		focus = 85
	}

	resilience := 50
	if byID["stuck"] == "Keep trying on my own" || byID["stuck"] == "Take a break and return" {
		resilience = 70
	}

	var langs []string
	for _, l := range strings.Split(byID["languages"], ",") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}

	goal := byID["goal"]
	if goal == "" {
		goal = "Build confidence writing code"
	}

	return &Profile{
		Mindprint: Mindprint{
			Focus:      focus,
			Resilience: resilience,
			Openness:   60,
			Summary:    "Profile estimated from your answers. Retake onboarding later for a full analysis.",
		},
		CodingGenome: CodingGenome{
			Level:              level,
			Strengths:          []string{"Motivation to learn"},
			GrowthAreas:        []string{"Programming fundamentals"},
			PreferredLanguages: langs,
		},
		LifeTrajectory: LifeTrajectory{
			Goal:       goal,
			Horizon:    "6 months",
			Milestones: []string{"Finish a foundations course", "Build a small project", "Take a skills assessment"},
		},
	}
}

// FallbackJourney schedules a course two lessons per week in order.
func FallbackJourney(course catalog.Course) *Journey {
	const perWeek = 2
	j := &Journey{Pace: "steady"}
	for i := 0; i < len(course.Lessons); i += perWeek {
		end := min(i+perWeek, len(course.Lessons))
		week := JourneyWeek{Week: len(j.Weeks) + 1, Theme: course.Lessons[i].Title}
		minutes := 0
		for _, l := range course.Lessons[i:end] {
			week.LessonIDs = append(week.LessonIDs, l.ID)
			minutes += l.Minutes
		}
		week.Hours = max(1, (minutes+59)/60)
		j.Weeks = append(j.Weeks, week)
	}
	j.Milestones = []string{fmt.Sprintf("Complete %s", course.Title)}
	return j
}

// FallbackInsight reads strengths and gaps straight off the heatmap.
func FallbackInsight(result catalog.AssessmentScore) *AssessmentInsight {
	in := &AssessmentInsight{
		Summary: fmt.Sprintf("You answered %d of %d questions correctly (%d%%).", result.Correct, result.Total, result.Score),
	}
	for _, topic := range sortedKeys(result.Heatmap) {
		switch pct := result.Heatmap[topic]; {
		case pct >= 70:
			in.Strengths = append(in.Strengths, topic)
		case pct < 50:
			in.Gaps = append(in.Gaps, topic)
			in.Recommendations = append(in.Recommendations, fmt.Sprintf("Review %s before the next assessment", topic))
		}
	}
	return in
}

// FallbackReport writes a templated report from the raw numbers.
func FallbackReport(in ReportInput) *Report {
	name := in.Name
	if name == "" {
		name = "Learner"
	}
	r := &Report{
		Headline: fmt.Sprintf("%s: %d lessons completed across %d courses", name, in.CompletedLessons, len(in.EnrolledCourses)),
	}
	if in.Assessments > 0 {
		r.Highlights = append(r.Highlights, fmt.Sprintf("Average assessment score %d%% over %d attempts", in.AverageScore, in.Assessments))
	}
	for _, id := range in.EnrolledCourses {
		pct := in.CourseProgress[id]
		if pct == 100 {
			r.Highlights = append(r.Highlights, fmt.Sprintf("Finished %s", id))
		} else {
			r.NextSteps = append(r.NextSteps, fmt.Sprintf("Continue %s (%d%% done)", id, pct))
		}
	}
	if len(in.EnrolledCourses) == 0 {
		r.NextSteps = append(r.NextSteps, "Enroll in a course from the catalog")
	}
	if in.Assessments == 0 {
		r.NextSteps = append(r.NextSteps, "Take the skills assessment")
	}
	return r
}
