package ai

// Answer is one onboarding response sent for profile analysis.
type Answer struct {
	QuestionID string `json:"question_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}

// Mindprint scores learning traits from 0 to 100.
type Mindprint struct {
	Focus      int    `json:"focus"`
	Resilience int    `json:"resilience"`
	Openness   int    `json:"openness"`
	Summary    string `json:"summary"`
}

// CodingGenome describes technical skill.
type CodingGenome struct {
	Level              string   `json:"level"`
	Strengths          []string `json:"strengths"`
	GrowthAreas        []string `json:"growth_areas"`
	PreferredLanguages []string `json:"preferred_languages"`
}

// LifeTrajectory is the learner's career goal and the steps toward it.
type LifeTrajectory struct {
	Goal       string   `json:"goal"`
	Horizon    string   `json:"horizon"`
	Milestones []string `json:"milestones"`
}

// Profile is the result of onboarding analysis.
type Profile struct {
	Mindprint      Mindprint      `json:"mindprint"`
	CodingGenome   CodingGenome   `json:"coding_genome"`
	LifeTrajectory LifeTrajectory `json:"life_trajectory"`
}

// JourneyWeek is one week of a course schedule.
type JourneyWeek struct {
	Week      int      `json:"week"`
	Theme     string   `json:"theme"`
	LessonIDs []string `json:"lesson_ids"`
	Hours     int      `json:"hours"`
}

// Journey is a personalised schedule through a course.
type Journey struct {
	Pace       string        `json:"pace"`
	Weeks      []JourneyWeek `json:"weeks"`
	Milestones []string      `json:"milestones"`
}

// AssessmentInsight interprets an assessment result.
type AssessmentInsight struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	Recommendations []string `json:"recommendations"`
}

// ReportInput is the progress data a report is written from.
type ReportInput struct {
	Name             string
	Profile          *Profile
	EnrolledCourses  []string
	CourseProgress   map[string]int
	CompletedLessons int
	Assessments      int
	AverageScore     int
}

// Report is a narrative progress report.
type Report struct {
	Headline   string   `json:"headline"`
	Highlights []string `json:"highlights"`
	NextSteps  []string `json:"next_steps"`
}
