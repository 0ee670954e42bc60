package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotData captures the full platform state at a point in time:
// the active session, the registered roster, per-user progress and UI flags.
type SnapshotData struct {
	Version  int                      `json:"version"`
	Session  *SessionData             `json:"session,omitempty"`
	Users    []UserData               `json:"users"`
	Progress map[string]*ProgressData `json:"progress"`
	Flags    FlagsData                `json:"flags"`
}

// SessionData is the single logged-in user reference.
type SessionData struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StartedAt time.Time `json:"started_at"`
}

// UserData is a registered account plus its AI-generated profile.
type UserData struct {
	ID                 string                 `json:"id"`
	Email              string                 `json:"email"`
	PasswordHash       string                 `json:"password_hash"`
	Name               string                 `json:"name"`
	CreatedAt          time.Time              `json:"created_at"`
	Mindprint          *MindprintData         `json:"mindprint,omitempty"`
	CodingGenome       *CodingGenomeData      `json:"coding_genome,omitempty"`
	LifeTrajectory     *LifeTrajectoryData    `json:"life_trajectory,omitempty"`
	OnboardingComplete bool                   `json:"onboarding_complete"`
	OnboardingAnswers  []OnboardingAnswerData `json:"onboarding_answers,omitempty"`
	ProfileSource      string                 `json:"profile_source,omitempty"` // "ai" or "fallback"
}

// MindprintData holds psychological trait scores in the range 0-100.
type MindprintData struct {
	Focus      int    `json:"focus"`
	Resilience int    `json:"resilience"`
	Openness   int    `json:"openness"`
	Summary    string `json:"summary,omitempty"`
}

// CodingGenomeData holds the technical skill profile.
type CodingGenomeData struct {
	Level              string   `json:"level"`
	Strengths          []string `json:"strengths,omitempty"`
	GrowthAreas        []string `json:"growth_areas,omitempty"`
	PreferredLanguages []string `json:"preferred_languages,omitempty"`
}

// LifeTrajectoryData holds the career goal profile.
type LifeTrajectoryData struct {
	Goal       string   `json:"goal"`
	Horizon    string   `json:"horizon,omitempty"`
	Milestones []string `json:"milestones,omitempty"`
}

// OnboardingAnswerData is one answered onboarding question.
type OnboardingAnswerData struct {
	QuestionID string `json:"question_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}

// ProgressData holds a user's enrollments, completions and assessments.
type ProgressData struct {
	EnrolledCourses   []string                `json:"enrolled_courses"`
	CompletedLessons  []string                `json:"completed_lessons"`
	AssessmentHistory []AssessmentResultData  `json:"assessment_history"`
	Journeys          map[string]*JourneyData `json:"journeys,omitempty"`
}

// AssessmentResultData is a single scored assessment.
type AssessmentResultData struct {
	Score   int            `json:"score"`
	Correct int            `json:"correct"`
	Total   int            `json:"total"`
	Date    time.Time      `json:"date"`
	Heatmap map[string]int `json:"heatmap,omitempty"`
}

// JourneyData is a scheduled path through one course.
type JourneyData struct {
	CourseID   string            `json:"course_id"`
	Pace       string            `json:"pace,omitempty"`
	Weeks      []JourneyWeekData `json:"weeks"`
	Milestones []string          `json:"milestones,omitempty"`
	Source     string            `json:"source,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// JourneyWeekData is one week of a journey.
type JourneyWeekData struct {
	Week      int      `json:"week"`
	Theme     string   `json:"theme"`
	LessonIDs []string `json:"lesson_ids"`
	Hours     float64  `json:"hours"`
}

// FlagsData holds transient UI flags that still survive a reload.
type FlagsData struct {
	AnalysisInProgress bool `json:"analysis_in_progress"`
}

// Snapshot represents a point-in-time capture of platform state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages platform state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot and sets its ID.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	Cached       bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStat aggregates LLM usage for one purpose.
type LLMUsageStat struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsageStat aggregates LLM usage for one model.
type ModelUsageStat struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// ActivityEventData records one state store action.
type ActivityEventData struct {
	Action  string
	UserID  string
	Success bool
	Detail  string
}

// ActivityEvent is a stored activity event.
type ActivityEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	ActivityEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)

	// LLMUsageByModel aggregates token usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsageStat, error)

	// AppendActivity records a state store action.
	AppendActivity(ctx context.Context, data ActivityEventData) error

	// QueryActivity returns activity events, newest first. An empty userID
	// matches every user.
	QueryActivity(ctx context.Context, userID string, opts QueryOpts) ([]ActivityEvent, error)
}
