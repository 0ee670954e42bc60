package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{snapshotsTable, llmEventsTable, activityTable, "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	saved := &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			Version: 42,
			Session: &SessionData{ID: "sess-1", UserID: "u1", StartedAt: now},
			Users: []UserData{{
				ID:        "u1",
				Email:     "ada@example.com",
				Name:      "Ada",
				CreatedAt: now,
				Mindprint: &MindprintData{Focus: 80, Resilience: 70, Openness: 90},
			}},
			Progress: map[string]*ProgressData{
				"u1": {
					EnrolledCourses:  []string{"python-foundations"},
					CompletedLessons: []string{"py-variables"},
					AssessmentHistory: []AssessmentResultData{
						{Score: 75, Correct: 3, Total: 4, Date: now, Heatmap: map[string]int{"loops": 100}},
					},
				},
			},
			Flags: FlagsData{AnalysisInProgress: true},
		},
	}
	if err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == 0 {
		t.Error("expected Save to assign an ID")
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if snap.Data.Session == nil || snap.Data.Session.UserID != "u1" {
		t.Errorf("session = %+v, want user u1", snap.Data.Session)
	}
	if len(snap.Data.Users) != 1 || snap.Data.Users[0].Mindprint.Openness != 90 {
		t.Errorf("users = %+v", snap.Data.Users)
	}
	p := snap.Data.Progress["u1"]
	if p == nil || len(p.AssessmentHistory) != 1 || p.AssessmentHistory[0].Heatmap["loops"] != 100 {
		t.Errorf("progress = %+v", p)
	}
	if !snap.Data.Flags.AnalysisInProgress {
		t.Error("expected analysis flag to round-trip")
	}
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: i + 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 3 {
		t.Errorf("sequence = %d, want 3", snap.Sequence)
	}
	if snap.Data.Version != 3 {
		t.Errorf("data.version = %d, want 3", snap.Data.Version)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence: int64(i + 1),
			Data:     SnapshotData{Version: i + 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n := countRows(t, s, snapshotsTable); n != 5 {
		t.Errorf("remaining snapshots = %d, want 5", n)
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}
}

func TestSnapshotPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.Save(ctx, &Snapshot{Sequence: int64(i + 1)}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n := countRows(t, s, snapshotsTable); n != 2 {
		t.Errorf("remaining snapshots = %d, want 2", n)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestLLMEventsAppendQueryAndUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini-2.0-flash", Model: "gemini-2.0-flash", Purpose: "profile", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		{Provider: "gemini-2.0-flash", Model: "gemini-2.0-flash", Purpose: "profile", InputTokens: 300, OutputTokens: 150, LatencyMs: 400, Success: true},
		{Provider: "gemini-2.0-flash", Model: "gemini-2.0-flash", Purpose: "quiz", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: false, ErrorMessage: "boom"},
		{Provider: "cache", Model: "gemini-2.0-flash", Purpose: "quiz", Cached: true, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 3})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if !got[0].Cached || got[1].ErrorMessage != "boom" {
		t.Errorf("expected newest first, got %+v", got[:2])
	}

	one, err := repo.GetLLMEvent(ctx, got[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if one == nil || one.Purpose != "quiz" {
		t.Fatalf("get returned %+v", one)
	}
	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Fatalf("missing event: %+v, %v", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %d, want 2", len(byPurpose))
	}
	if byPurpose[0].Purpose != "profile" || byPurpose[0].Calls != 2 || byPurpose[0].InputTokens != 400 || byPurpose[0].AvgLatencyMs != 300 {
		t.Errorf("profile usage = %+v", byPurpose[0])
	}
	if byPurpose[1].Calls != 1 {
		t.Errorf("cached calls must not count: %+v", byPurpose[1])
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Calls != 3 || byModel[0].OutputTokens != 205 {
		t.Errorf("model usage = %+v", byModel)
	}
}

func TestActivityQueryFiltersByUser(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []ActivityEventData{
		{Action: "signup", UserID: "u1", Success: true},
		{Action: "login", UserID: "u2", Success: false, Detail: "invalid credentials"},
		{Action: "enroll", UserID: "u1", Success: true, Detail: "go-basics"},
	} {
		if err := repo.AppendActivity(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryActivity(ctx, "u1", QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 || got[0].Action != "enroll" || got[1].Action != "signup" {
		t.Fatalf("activity = %+v", got)
	}

	all, err := repo.QueryActivity(ctx, "", QueryOpts{After: got[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("events after first = %d, want 2", len(all))
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SnapshotRepo().Save(ctx, &Snapshot{Sequence: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.EventRepo().AppendActivity(ctx, ActivityEventData{Action: "login"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n := countRows(t, s, snapshotsTable); n != 0 {
		t.Errorf("snapshots after reset = %d", n)
	}
	if n := countRows(t, s, activityTable); n != 0 {
		t.Errorf("activity after reset = %d", n)
	}
}
