package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/minutegames/gauntlet/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gauntlet.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%q) failed: %v", path, err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleResult(abandoned bool) *session.Result {
	return &session.Result{
		Records: []session.RoundRecord{
			{Index: 0, ModuleID: "memory", RawScore: 8, MaxScore: 8, Normalized: 1.0, Grade: "S"},
			{Index: 1, ModuleID: "quickmath", RawScore: 40, MaxScore: 100, Normalized: 0.4, Grade: "F"},
			{Index: 2, ModuleID: "reflex", RawScore: 600, MaxScore: 1000, Normalized: 0.6, Grade: "C"},
		},
		RoundsPlanned: 3,
		StartedAt:     time.Now().Add(-2 * time.Minute),
		FinishedAt:    time.Now(),
		Complete:      !abandoned,
		Abandoned:     abandoned,
	}
}

func TestSaveAndRetrieveResult(t *testing.T) {
	store := openTestStore(t)

	res := sampleResult(false)
	id, err := store.SaveResult(res, session.AggregateSumNormalized, "C")
	if err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive session ID, got %d", id)
	}

	sessions, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}

	got := sessions[0]
	if got.ID != id {
		t.Errorf("session ID: got %d, want %d", got.ID, id)
	}
	if got.RoundsTotal != 3 || got.RoundsPlayed != 3 {
		t.Errorf("rounds: got %d/%d, want 3/3", got.RoundsPlayed, got.RoundsTotal)
	}
	if got.RawScore != 648 || got.MaxScore != 1108 {
		t.Errorf("raw totals: got %d/%d, want 648/1108", got.RawScore, got.MaxScore)
	}
	if got.Total != 2.0 {
		t.Errorf("total: got %v, want 2.0", got.Total)
	}
	if got.Grade != "C" {
		t.Errorf("grade: got %q, want C", got.Grade)
	}
	if got.Abandoned {
		t.Error("session should not be marked abandoned")
	}
}

func TestSessionRoundsPreserveOrder(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveResult(sampleResult(false), session.AggregateSumNormalized, "C")
	if err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	rounds, err := store.SessionRounds(id)
	if err != nil {
		t.Fatalf("SessionRounds failed: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(rounds))
	}

	wantModules := []string{"memory", "quickmath", "reflex"}
	for i, r := range rounds {
		if r.Index != i {
			t.Errorf("round %d: index %d", i, r.Index)
		}
		if r.ModuleID != wantModules[i] {
			t.Errorf("round %d: module %q, want %q", i, r.ModuleID, wantModules[i])
		}
	}
	if rounds[1].Normalized != 0.4 {
		t.Errorf("round 1 normalized: got %v, want 0.4", rounds[1].Normalized)
	}
}

func TestBestSessionsExcludesAbandoned(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveResult(sampleResult(false), session.AggregateSumNormalized, "C"); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
	if _, err := store.SaveResult(sampleResult(true), session.AggregateSumNormalized, "C"); err != nil {
		t.Fatalf("SaveResult (abandoned) failed: %v", err)
	}

	recent, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent sessions, got %d", len(recent))
	}

	best, err := store.BestSessions(10)
	if err != nil {
		t.Fatalf("BestSessions failed: %v", err)
	}
	if len(best) != 1 {
		t.Fatalf("expected 1 best session, got %d", len(best))
	}
	if best[0].Abandoned {
		t.Error("best sessions must not include abandoned runs")
	}
}

func TestGetModuleStats(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveResult(sampleResult(false), session.AggregateSumNormalized, "C"); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
	if _, err := store.SaveResult(sampleResult(false), session.AggregateSumNormalized, "C"); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	stats, err := store.GetModuleStats()
	if err != nil {
		t.Fatalf("GetModuleStats failed: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected stats for 3 modules, got %d", len(stats))
	}

	// Sorted by module ID: memory, quickmath, reflex.
	if stats[0].ModuleID != "memory" || stats[0].RoundsPlayed != 2 {
		t.Errorf("memory stats: %+v", stats[0])
	}
	if stats[2].ModuleID != "reflex" || stats[2].BestRaw != 600 {
		t.Errorf("reflex stats: %+v", stats[2])
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "gauntlet.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open should create parent directories: %v", err)
	}
	store.Close()
}
