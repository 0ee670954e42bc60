package appstate

import (
	"github.com/abhisek/codegenome/internal/catalog"
	"github.com/abhisek/codegenome/internal/store"
)

// Version is the number of persisted mutations so far.
func (s *Store) Version() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Version
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() store.SnapshotData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.data)
}

// Session returns the active session, or nil.
func (s *Store) Session() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.Session == nil {
		return nil
	}
	sess := *s.data.Session
	return &sess
}

// CurrentUser returns a copy of the session user, or nil.
func (s *Store) CurrentUser() *User {
	snap := s.Snapshot()
	if snap.Session == nil {
		return nil
	}
	return findUser(&snap, snap.Session.UserID)
}

// AnalysisInProgress reports the onboarding analysis flag.
func (s *Store) AnalysisInProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Flags.AnalysisInProgress
}

// Progress returns a copy of the session user's progress. It is empty
// when no one is logged in.
func (s *Store) Progress() Progress {
	snap := s.Snapshot()
	if snap.Session == nil {
		return Progress{}
	}
	if p := snap.Progress[snap.Session.UserID]; p != nil {
		return *p
	}
	return Progress{}
}

// IsEnrolled reports whether the session user is enrolled in courseID.
func (s *Store) IsEnrolled(courseID string) bool {
	for _, id := range s.Progress().EnrolledCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// UserCount is the size of the registered roster.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.Users)
}

// Stats summarises the session user's progress.
func (s *Store) Stats() Stats {
	p := s.Progress()
	st := Stats{
		EnrolledCourses:  len(p.EnrolledCourses),
		CompletedLessons: len(p.CompletedLessons),
		Assessments:      len(p.AssessmentHistory),
		AverageScore:     AverageScore(p.AssessmentHistory),
		CourseCompletion: make(map[string]int, len(p.EnrolledCourses)),
	}
	for _, id := range p.EnrolledCourses {
		st.CourseCompletion[id] = catalog.CompletionPercent(id, p.CompletedLessons)
	}
	return st
}

// AverageScore is the rounded mean assessment score, or 0 with no history.
func AverageScore(history []AssessmentResult) int {
	if len(history) == 0 {
		return 0
	}
	sum := 0
	for _, r := range history {
		sum += r.Score
	}
	return (sum + len(history)/2) / len(history)
}
