package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveRunAssignsIDs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	r, err := store.SaveRun(ctx, RunRecord{Score: 120, Time: "01:05", Level: 3, Kills: 7})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if r.ID == 0 || r.RunID == "" {
		t.Errorf("ids not assigned: %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}

	runs, err := store.TopRuns(ctx, 0)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.RunID != r.RunID || got.Score != 120 || got.Time != "01:05" || got.Level != 3 || got.Kills != 7 {
		t.Errorf("stored run = %+v", got)
	}
}

func TestTopRunsKeepsBestFive(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, score := range []int{50, 400, 10, 300, 200, 100, 600} {
		if _, err := store.SaveRun(ctx, RunRecord{Score: score, Time: "00:30"}); err != nil {
			t.Fatalf("SaveRun(%d) failed: %v", score, err)
		}
	}

	runs, err := store.TopRuns(ctx, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	want := []int{600, 400, 300, 200, 100}
	if len(runs) != len(want) {
		t.Fatalf("Expected %d runs, got %d", len(want), len(runs))
	}
	for i, w := range want {
		if runs[i].Score != w {
			t.Errorf("runs[%d].Score = %d, want %d", i, runs[i].Score, w)
		}
	}

	top, err := store.TopRuns(ctx, 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 2 || top[1].Score != 400 {
		t.Errorf("top 2 = %+v", top)
	}
}

func TestTiesKeepOlderRun(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, _ := store.SaveRun(ctx, RunRecord{Score: 100, Time: "00:10"})
	for range 5 {
		if _, err := store.SaveRun(ctx, RunRecord{Score: 100, Time: "00:20"}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, _ := store.TopRuns(ctx, 5)
	if len(runs) != 5 || runs[0].RunID != first.RunID {
		t.Errorf("oldest tied run evicted: %+v", runs)
	}
}

func TestTopRunsSkipsMalformedRows(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.SaveRun(ctx, RunRecord{Score: 42, Time: "00:42"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	_, err := store.db.Exec(
		`INSERT INTO runs (run_id, score, survival_time) VALUES ('broken', 'lots', '01:00')`,
	)
	if err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}

	runs, err := store.TopRuns(ctx, 5)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 42 {
		t.Errorf("runs = %+v, want only the valid one", runs)
	}

	high, err := store.HighScore(ctx)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 42 {
		t.Errorf("HighScore() = %d, want 42", high)
	}

	// The next save discards the malformed row.
	if _, err := store.SaveRun(ctx, RunRecord{Score: 1, Time: "00:01"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	var n int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("rows = %d, want 2 after prune", n)
	}
}

func TestHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore(context.Background())
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty table, got %d", high)
	}
}

func TestStatsSurvivePruning(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := range 8 {
		_, err := store.SaveRun(ctx, RunRecord{Score: i * 10, Time: "00:05", SurvivalMS: 5000, Kills: 2})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	st, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	want := RunStats{Runs: 8, Kills: 16, SurvivalMS: 40000, BestScore: 70}
	if st != want {
		t.Errorf("Stats() = %+v, want %+v", st, want)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.SaveRun(ctx, RunRecord{Score: 10, Time: "00:01"})
	if err := store.ClearRuns(ctx); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns(ctx, 5)
	st, _ := store.Stats(ctx)
	if len(runs) != 0 || st != (RunStats{}) {
		t.Errorf("after clear: runs = %d, stats = %+v", len(runs), st)
	}
}

func TestStorePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store1, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store1.SaveRun(ctx, RunRecord{Score: 999, Time: "10:00", CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)})
	store1.Close()

	store2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store2.Close()

	runs, err := store2.TopRuns(ctx, 5)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 999 {
		t.Fatalf("runs = %+v", runs)
	}
	if y := runs[0].CreatedAt.Year(); y != 2024 {
		t.Errorf("created year = %d, want 2024", y)
	}
}
