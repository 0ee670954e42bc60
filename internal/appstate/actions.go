package appstate

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/codegenome/internal/ai"
	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/store"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// Signup registers a user and starts a session for them.
func (s *Store) Signup(ctx context.Context, name, email, password string) Result {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return fail(ErrInvalidInput, "Name, email and password are required.")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return fail(ErrInvalidInput, "Please enter a valid email address.")
	}
	if len(password) < MinPasswordLength {
		return fail(ErrInvalidInput, fmt.Sprintf("Password must be at least %d characters.", MinPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		logrus.WithError(err).Error("hash password")
		return fail(ErrInvalidInput, "Password could not be used.")
	}

	return s.mutate(ctx, ActionSignup, func(d *store.SnapshotData) (string, bool, error) {
		if findUserByEmail(d, email) != nil {
			return "An account with this email already exists.", false, ErrEmailTaken
		}
		now := s.now()
		u := store.UserData{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: string(hash),
			Name:         name,
			CreatedAt:    now,
		}
		d.Users = append(d.Users, u)
		d.Progress[u.ID] = &store.ProgressData{}
		d.Session = &store.SessionData{ID: uuid.NewString(), UserID: u.ID, StartedAt: now}
		return fmt.Sprintf("Welcome, %s!", name), true, nil
	})
}

// Login starts a new session for an exact email and password match.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	email = normalizeEmail(email)
	return s.mutate(ctx, ActionLogin, func(d *store.SnapshotData) (string, bool, error) {
		u := findUserByEmail(d, email)
		if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return "Invalid email or password.", false, ErrInvalidCredentials
		}
		d.Session = &store.SessionData{ID: uuid.NewString(), UserID: u.ID, StartedAt: s.now()}
		return fmt.Sprintf("Welcome back, %s!", u.Name), true, nil
	})
}

// Logout clears the session. The roster and progress are untouched.
func (s *Store) Logout(ctx context.Context) Result {
	return s.mutate(ctx, ActionLogout, func(d *store.SnapshotData) (string, bool, error) {
		if d.Session == nil {
			return "Already signed out.", false, nil
		}
		d.Session = nil
		return "Signed out.", true, nil
	})
}

// EnrollCourse adds a course to the session user's enrollments.
// Enrolling twice succeeds without a second record.
func (s *Store) EnrollCourse(ctx context.Context, courseID string) Result {
	return s.mutate(ctx, ActionEnroll, func(d *store.SnapshotData) (string, bool, error) {
		p, err := sessionProgress(d)
		if err != nil {
			return "Please log in first.", false, err
		}
		course, err := catalog.GetCourse(courseID)
		if err != nil {
			return "That course does not exist.", false, ErrUnknownCourse
		}
		for _, id := range p.EnrolledCourses {
			if id == courseID {
				return fmt.Sprintf("Already enrolled in %s.", course.Title), false, nil
			}
		}
		p.EnrolledCourses = append(p.EnrolledCourses, courseID)
		return fmt.Sprintf("Enrolled in %s.", course.Title), true, nil
	})
}

// CompleteLesson appends a completion record. Repeated completions of the
// same lesson are recorded each time.
func (s *Store) CompleteLesson(ctx context.Context, lessonID string) Result {
	return s.mutate(ctx, ActionComplete, func(d *store.SnapshotData) (string, bool, error) {
		p, err := sessionProgress(d)
		if err != nil {
			return "Please log in first.", false, err
		}
		lesson, err := catalog.GetLesson(lessonID)
		if err != nil {
			return "That lesson does not exist.", false, ErrUnknownLesson
		}
		p.CompletedLessons = append(p.CompletedLessons, lessonID)
		return fmt.Sprintf("Completed %s.", lesson.Title), true, nil
	})
}

// AddAssessmentResult appends a result to the session user's history.
func (s *Store) AddAssessmentResult(ctx context.Context, r AssessmentResult) Result {
	if r.Score < 0 || r.Score > 100 {
		return fail(ErrInvalidInput, "Score must be between 0 and 100.")
	}
	return s.mutate(ctx, ActionAssessment, func(d *store.SnapshotData) (string, bool, error) {
		p, err := sessionProgress(d)
		if err != nil {
			return "Please log in first.", false, err
		}
		if r.Date.IsZero() {
			r.Date = s.now()
		}
		p.AssessmentHistory = append(p.AssessmentHistory, r)
		return fmt.Sprintf("Assessment saved: %d%%.", r.Score), true, nil
	})
}

// SaveJourney stores a schedule for one of the session user's courses.
// A journey for the same course is replaced.
func (s *Store) SaveJourney(ctx context.Context, courseID string, j *ai.Journey, source string) Result {
	if j == nil {
		return fail(ErrInvalidInput, "No journey to save.")
	}
	return s.mutate(ctx, ActionJourney, func(d *store.SnapshotData) (string, bool, error) {
		p, err := sessionProgress(d)
		if err != nil {
			return "Please log in first.", false, err
		}
		if !catalog.HasCourse(courseID) {
			return "That course does not exist.", false, ErrUnknownCourse
		}
		jd := &store.JourneyData{
			CourseID:   courseID,
			Pace:       j.Pace,
			Milestones: j.Milestones,
			Source:     source,
			CreatedAt:  s.now(),
		}
		for _, w := range j.Weeks {
			jd.Weeks = append(jd.Weeks, store.JourneyWeekData{
				Week:      w.Week,
				Theme:     w.Theme,
				LessonIDs: w.LessonIDs,
				Hours:     float64(w.Hours),
			})
		}
		if p.Journeys == nil {
			p.Journeys = make(map[string]*store.JourneyData)
		}
		p.Journeys[courseID] = jd
		return "Journey saved.", true, nil
	})
}

// StartAIAnalysis runs onboarding analysis for the session user. The
// in-progress flag is persisted and broadcast before the analyser is
// called, and cleared when the profile (or the fallback profile, if the
// analyser fails) is applied. A second call while one is running fails.
func (s *Store) StartAIAnalysis(ctx context.Context, answers []ai.Answer) Result {
	var userID string
	res := s.mutate(ctx, ActionAnalysisStart, func(d *store.SnapshotData) (string, bool, error) {
		if d.Session == nil || findUser(d, d.Session.UserID) == nil {
			return "Please log in first.", false, ErrNoSession
		}
		if d.Flags.AnalysisInProgress {
			return "An analysis is already running.", false, ErrAnalysisRunning
		}
		userID = d.Session.UserID
		d.Flags.AnalysisInProgress = true
		return "Analysing your answers…", true, nil
	})
	if !res.Success {
		return res
	}

	profile, source := s.analyze(ctx, answers)

	// The flag must be cleared even if the caller has gone away.
	done := s.mutate(context.WithoutCancel(ctx), ActionAnalysisDone, func(d *store.SnapshotData) (string, bool, error) {
		d.Flags.AnalysisInProgress = false
		u := findUser(d, userID)
		if u == nil {
			return "Your account could not be found.", true, nil
		}
		applyProfile(u, profile)
		u.ProfileSource = source
		u.OnboardingComplete = true
		u.OnboardingAnswers = u.OnboardingAnswers[:0]
		for _, a := range answers {
			u.OnboardingAnswers = append(u.OnboardingAnswers, store.OnboardingAnswerData(a))
		}
		if source == "fallback" {
			return "Your profile was estimated from your answers; AI analysis is unavailable right now.", true, nil
		}
		return "Your Mindprint is ready.", true, nil
	})
	if !done.Success {
		s.releaseAnalysis()
	}
	return done
}

// releaseAnalysis clears the in-progress flag in memory after the final
// save failed, so the learner can retry. The next successful save
// persists the cleared flag.
func (s *Store) releaseAnalysis() {
	s.mu.Lock()
	s.data.Flags.AnalysisInProgress = false
	s.mu.Unlock()
	logrus.Warn("analysis result not saved; cleared in-progress flag")
}

func (s *Store) analyze(ctx context.Context, answers []ai.Answer) (*ai.Profile, string) {
	if s.analyzer == nil {
		return ai.FallbackProfile(answers), "fallback"
	}
	p, err := s.analyzer.AnalyzeProfile(ctx, answers)
	if err != nil {
		entry := logrus.WithError(err)
		if ai.IsUnparsable(err) {
			entry.Info("profile reply unusable, using fallback profile")
		} else {
			entry.Warn("profile analysis failed, using fallback profile")
		}
		return ai.FallbackProfile(answers), "fallback"
	}
	return p, "ai"
}

func applyProfile(u *store.UserData, p *ai.Profile) {
	u.Mindprint = &store.MindprintData{
		Focus:      p.Mindprint.Focus,
		Resilience: p.Mindprint.Resilience,
		Openness:   p.Mindprint.Openness,
		Summary:    p.Mindprint.Summary,
	}
	u.CodingGenome = &store.CodingGenomeData{
		Level:              p.CodingGenome.Level,
		Strengths:          p.CodingGenome.Strengths,
		GrowthAreas:        p.CodingGenome.GrowthAreas,
		PreferredLanguages: p.CodingGenome.PreferredLanguages,
	}
	u.LifeTrajectory = &store.LifeTrajectoryData{
		Goal:       p.LifeTrajectory.Goal,
		Horizon:    p.LifeTrajectory.Horizon,
		Milestones: p.LifeTrajectory.Milestones,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// findUserByEmail scans the roster linearly.
func findUserByEmail(d *store.SnapshotData, email string) *store.UserData {
	for i := range d.Users {
		if d.Users[i].Email == email {
			return &d.Users[i]
		}
	}
	return nil
}

func findUser(d *store.SnapshotData, id string) *store.UserData {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

func sessionProgress(d *store.SnapshotData) (*store.ProgressData, error) {
	if d.Session == nil || findUser(d, d.Session.UserID) == nil {
		return nil, ErrNoSession
	}
	p := d.Progress[d.Session.UserID]
	if p == nil {
		p = &store.ProgressData{}
		d.Progress[d.Session.UserID] = p
	}
	return p, nil
}
