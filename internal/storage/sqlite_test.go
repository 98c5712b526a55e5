package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-stacker/internal/core"
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

func mustSave(t *testing.T, store *Store, r Run) {
	t.Helper()
	if _, err := store.SaveRun(r); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{GameID: "stacker", Score: 1200, Lines: 12, Level: 2, Ticks: 5000})
	mustSave(t, store, Run{GameID: "stacker", Score: 300, Lines: 3, Level: 1, Ticks: 1200})
	mustSave(t, store, Run{GameID: "stacker", Score: 8000, Lines: 41, Level: 5, Ticks: 20000})
	mustSave(t, store, Run{GameID: "stacker_sprint", Score: 9000, Lines: 40, Ticks: 7000, Won: true})

	runs, err := store.TopRuns("stacker", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	want := []int{8000, 1200, 300}
	for i, r := range runs {
		if r.Score != want[i] {
			t.Errorf("runs[%d].Score = %d, want %d", i, r.Score, want[i])
		}
	}
	if runs[0].Lines != 41 || runs[0].Level != 5 || runs[0].Ticks != 20000 || runs[0].Won {
		t.Errorf("round-trip mismatch: %+v", runs[0])
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}

	sprint, err := store.TopRuns("stacker_sprint", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(sprint) != 1 || !sprint[0].Won {
		t.Errorf("Expected 1 won sprint run, got %+v", sprint)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		mustSave(t, store, Run{GameID: "stacker", Score: i * 100})
	}

	runs, err := store.TopRuns("stacker", 5)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(runs))
	}
	if runs[0].Score != 1900 {
		t.Errorf("Expected top score 1900, got %d", runs[0].Score)
	}

	runs, err = store.TopRuns("stacker", 0)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(runs))
	}
}

func TestStoreFastestRuns(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{GameID: "stacker_sprint", Score: 5000, Ticks: 9000, Won: true})
	mustSave(t, store, Run{GameID: "stacker_sprint", Score: 4000, Ticks: 6000, Won: true})
	mustSave(t, store, Run{GameID: "stacker_sprint", Score: 9000, Ticks: 3000, Won: false})

	runs, err := store.FastestRuns("stacker_sprint", 10)
	if err != nil {
		t.Fatalf("FastestRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 won runs, got %d", len(runs))
	}
	if runs[0].Ticks != 6000 || runs[1].Ticks != 9000 {
		t.Errorf("Expected ticks [6000 9000], got [%d %d]", runs[0].Ticks, runs[1].Ticks)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := range 3 {
		mustSave(t, store, Run{GameID: "stacker", Score: 100 * (3 - i)})
	}

	runs, err := store.RecentRuns("stacker", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].Score != 100 || runs[1].Score != 200 {
		t.Errorf("Expected newest first [100 200], got %+v", runs)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("stacker")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty store, got %d", high)
	}

	mustSave(t, store, Run{GameID: "stacker", Score: 100})
	mustSave(t, store, Run{GameID: "stacker", Score: 500})
	mustSave(t, store, Run{GameID: "stacker", Score: 250})

	high, err = store.HighScore("stacker")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 500 {
		t.Errorf("Expected high score 500, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{GameID: "stacker", Score: 100})
	mustSave(t, store, Run{GameID: "stacker_sprint", Score: 200})

	if err := store.ClearRuns("stacker"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("stacker", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	runs, _ = store.TopRuns("stacker_sprint", 10)
	if len(runs) != 1 {
		t.Errorf("Other game should be untouched, got %d runs", len(runs))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{GameID: "stacker", Score: 100, Lines: 4})
	mustSave(t, store, Run{GameID: "stacker", Score: 300, Lines: 6})
	mustSave(t, store, Run{GameID: "stacker_sprint", Score: 50, Lines: 40})

	stats, err := store.GetGameStats("stacker")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalLines != 10 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("Expected average 200, got %v", stats.AvgScore)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected stats for 2 games, got %d", len(all))
	}
	if all["stacker_sprint"] == nil || all["stacker_sprint"].TotalLines != 40 {
		t.Errorf("unexpected sprint stats: %+v", all["stacker_sprint"])
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestRunDuration(t *testing.T) {
	r := Run{Ticks: 150}
	if got := r.Duration(60); got != 2500*time.Millisecond {
		t.Errorf("Duration(60) = %v, want 2.5s", got)
	}
	if got := r.Duration(0); got != 0 {
		t.Errorf("Duration(0) = %v, want 0", got)
	}
}

func TestRunFromState(t *testing.T) {
	st := core.GameState{Score: 1200, Lines: 12, Level: 2, Ticks: 4000, GameOver: true}
	r := RunFromState("stacker", st)
	if r.GameID != "stacker" || r.Score != 1200 || r.Lines != 12 || r.Level != 2 || r.Ticks != 4000 || r.Won {
		t.Errorf("RunFromState() = %+v", r)
	}
	if !r.Recordable() {
		t.Error("scored run should be recordable")
	}
	if (Run{GameID: "stacker"}).Recordable() {
		t.Error("empty run should not be recordable")
	}
	if !(Run{GameID: "stacker_sprint", Won: true}).Recordable() {
		t.Error("won run should be recordable")
	}
}
