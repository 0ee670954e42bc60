// Package appstate is the persisted platform state: the active session,
// the user roster, per-user progress and UI flags. State lives in one
// versioned snapshot that is mutated only through named actions and
// written to the database after every successful mutation.
package appstate

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/codegenome/internal/ai"
	"github.com/abhisek/codegenome/internal/store"
)

// DefaultKeep is how many snapshots survive pruning.
const DefaultKeep = 20

// Analyzer produces a learner profile from onboarding answers.
type Analyzer interface {
	AnalyzeProfile(ctx context.Context, answers []ai.Answer) (*ai.Profile, error)
}

// Store owns the platform snapshot.
//
// Mutations are serialised by mu. Before each mutation the store adopts
// any newer snapshot another process persisted to the same database, so
// concurrent writers resolve as last writer wins.
type Store struct {
	mu   sync.Mutex
	data store.SnapshotData

	snaps    store.SnapshotRepo
	events   store.EventRepo
	analyzer Analyzer
	keep     int
	cost     int
	now      func() time.Time

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithAnalyzer sets the profile analyser used by StartAIAnalysis.
func WithAnalyzer(a Analyzer) Option {
	return func(s *Store) { s.analyzer = a }
}

// WithKeep sets how many snapshots survive pruning.
func WithKeep(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.keep = n
		}
	}
}

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(s *Store) { s.cost = cost }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open loads the latest snapshot and returns a ready Store. events may be
// nil to skip activity logging.
func Open(ctx context.Context, snaps store.SnapshotRepo, events store.EventRepo, opts ...Option) (*Store, error) {
	s := &Store{
		snaps:  snaps,
		events: events,
		keep:   DefaultKeep,
		cost:   bcrypt.DefaultCost,
		now:    func() time.Time { return time.Now().UTC() },
		subs:   make(map[int]func(Change)),
		data:   emptyData(),
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := snaps.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if snap != nil {
		s.data = normalize(snap.Data)
	}

	// No analysis survives a restart; a persisted flag is stale.
	if s.data.Flags.AnalysisInProgress {
		logrus.Warn("clearing stale analysis-in-progress flag")
		s.mutate(ctx, ActionAnalysisReset, func(d *store.SnapshotData) (string, bool, error) {
			d.Flags.AnalysisInProgress = false
			return "", true, nil
		})
	}
	return s, nil
}

// Refresh adopts a newer persisted snapshot, if any, and reports whether
// the in-memory state changed.
func (s *Store) Refresh(ctx context.Context) (bool, error) {
	s.mu.Lock()
	before := s.data.Version
	err := s.adoptLatest(ctx)
	after := s.data.Version
	s.mu.Unlock()

	if err != nil {
		return false, err
	}
	if after != before {
		s.notify(Change{Version: after, Action: "reload"})
		return true, nil
	}
	return false, nil
}

// adoptLatest replaces the in-memory state with a newer persisted one.
// Callers hold mu.
func (s *Store) adoptLatest(ctx context.Context) error {
	snap, err := s.snaps.Latest(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if snap != nil && snap.Data.Version > s.data.Version {
		s.data = normalize(snap.Data)
	}
	return nil
}

// mutateFunc edits a private copy of the state. It returns a success
// message, whether anything changed, and a failure reason.
type mutateFunc func(d *store.SnapshotData) (msg string, changed bool, err error)

// mutate runs fn against a copy of the state and, if it changed anything,
// persists the copy as the next version before publishing it.
func (s *Store) mutate(ctx context.Context, action string, fn mutateFunc) Result {
	s.mu.Lock()

	if err := s.adoptLatest(ctx); err != nil {
		logrus.WithError(err).Warn("could not check for newer state")
	}

	next := clone(s.data)
	before := sessionUserID(next)
	msg, changed, err := fn(&next)
	userID := sessionUserID(next)
	if userID == "" {
		userID = before
	}
	if err != nil {
		s.mu.Unlock()
		s.record(ctx, action, userID, false, err.Error())
		return fail(err, msg)
	}
	if !changed {
		s.mu.Unlock()
		return ok(msg)
	}

	next.Version = s.data.Version + 1
	snap := &store.Snapshot{
		Sequence:  int64(next.Version),
		Timestamp: s.now(),
		Data:      next,
	}
	if err := s.snaps.Save(ctx, snap); err != nil {
		s.mu.Unlock()
		logrus.WithError(err).WithField("action", action).Error("failed to persist state")
		s.record(ctx, action, userID, false, err.Error())
		return fail(ErrPersist, "Could not save your changes. Please try again.")
	}
	s.data = next
	version := next.Version
	if err := s.snaps.Prune(ctx, s.keep); err != nil {
		logrus.WithError(err).Warn("failed to prune snapshots")
	}
	s.mu.Unlock()

	s.record(ctx, action, userID, true, msg)
	s.notify(Change{Version: version, Action: action, UserID: userID})
	return ok(msg)
}

func (s *Store) record(ctx context.Context, action, userID string, success bool, detail string) {
	if s.events == nil {
		return
	}
	err := s.events.AppendActivity(context.WithoutCancel(ctx), store.ActivityEventData{
		Action:  action,
		UserID:  userID,
		Success: success,
		Detail:  detail,
	})
	if err != nil {
		logrus.WithError(err).WithField("action", action).Warn("failed to record activity")
	}
}

// Subscribe registers fn for change notifications and returns a function
// that removes it. fn runs on the mutating goroutine after the state lock
// is released and must not block.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(c Change) {
	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

func emptyData() store.SnapshotData {
	return store.SnapshotData{Progress: make(map[string]*store.ProgressData)}
}

func normalize(d store.SnapshotData) store.SnapshotData {
	if d.Progress == nil {
		d.Progress = make(map[string]*store.ProgressData)
	}
	return d
}

// clone deep-copies the state through its JSON form, the same encoding
// used for persistence.
func clone(d store.SnapshotData) store.SnapshotData {
	raw, err := json.Marshal(d)
	if err != nil {
		panic(fmt.Sprintf("appstate: marshal snapshot: %v", err))
	}
	var out store.SnapshotData
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("appstate: unmarshal snapshot: %v", err))
	}
	return normalize(out)
}

func sessionUserID(d store.SnapshotData) string {
	if d.Session == nil {
		return ""
	}
	return d.Session.UserID
}
