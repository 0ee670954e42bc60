package appstate

import (
	"errors"

	"github.com/abhisek/codegenome/internal/store"
)

// Persisted shapes are shared with the store package.
type (
	User             = store.UserData
	Session          = store.SessionData
	Progress         = store.ProgressData
	AssessmentResult = store.AssessmentResultData
	Journey          = store.JourneyData
)

// Failure reasons carried by Result.Err.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no active session")
	ErrUnknownCourse      = errors.New("unknown course")
	ErrUnknownLesson      = errors.New("unknown lesson")
	ErrAnalysisRunning    = errors.New("analysis already in progress")
	ErrPersist            = errors.New("state could not be saved")
)

// Result is the outcome of a store action. Precondition failures are
// reported here rather than as Go errors.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func ok(msg string) Result {
	return Result{Success: true, Message: msg}
}

func fail(err error, msg string) Result {
	return Result{Success: false, Message: msg, Err: err}
}

// Change is delivered to subscribers after every persisted mutation.
type Change struct {
	Version int    `json:"version"`
	Action  string `json:"action"`
	UserID  string `json:"user_id,omitempty"`
}

// Stats summarises the session user's progress.
type Stats struct {
	EnrolledCourses  int            `json:"enrolled_courses"`
	CompletedLessons int            `json:"completed_lessons"`
	Assessments      int            `json:"assessments"`
	AverageScore     int            `json:"average_score"`
	CourseCompletion map[string]int `json:"course_completion"`
}

// Action names recorded in the activity log and sent to subscribers.
const (
	ActionSignup        = "signup"
	ActionLogin         = "login"
	ActionLogout        = "logout"
	ActionEnroll        = "enroll"
	ActionComplete      = "complete_lesson"
	ActionAssessment    = "assessment"
	ActionAnalysisStart = "analysis_start"
	ActionAnalysisDone  = "analysis_complete"
	ActionAnalysisReset = "analysis_reset"
	ActionJourney       = "journey"
)
