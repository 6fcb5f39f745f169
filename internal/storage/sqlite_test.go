package storage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

const highScoreKey = "flappyBirdHighScore"

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
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
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

func TestStoreKeyValue(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Get(highScoreKey); !errors.Is(err, flappy.ErrNotFound) {
		t.Errorf("Get() on empty store error = %v, expected ErrNotFound", err)
	}

	if err := store.Set(highScoreKey, "12"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set(highScoreKey, "15"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}

	v, err := store.Get(highScoreKey)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if v != "15" {
		t.Errorf("Get() = %q, expected \"15\"", v)
	}
}

func TestStoreSetKeepsHigherScore(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		value    string
		expected string
	}{
		{"higher replaces", "5", "8", "8"},
		{"lower is ignored", "5", "2", "5"},
		{"tie is ignored", "5", "5", "5"},
		{"corrupt is replaced", "abc", "3", "3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := openTestStore(t)
			if err := store.Set(highScoreKey, tc.stored); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
			if err := store.Set(highScoreKey, tc.value); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
			if v, _ := store.Get(highScoreKey); v != tc.expected {
				t.Errorf("Get() = %q, expected %q", v, tc.expected)
			}
		})
	}
}

func TestStoreSetInterleavedSessions(t *testing.T) {
	store := openTestStore(t)

	// Each write is one session finishing a round with its own best.
	for _, v := range []string{"5", "2", "9", "6", "0"} {
		if err := store.Set(highScoreKey, v); err != nil {
			t.Fatalf("Set(%q) failed: %v", v, err)
		}
	}

	if v, _ := store.Get(highScoreKey); v != "9" {
		t.Errorf("Get() = %q, expected \"9\"", v)
	}
}

func TestStoreHighScoreSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	cfg := config.DefaultFlappyConfig()
	vp := core.Viewport{Width: 800, Height: 450}

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.Set(cfg.Storage.HighScoreKey, "21")
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	sim := flappy.New(cfg, vp, store, 1)
	if sim.HighScore() != 21 {
		t.Errorf("simulation HighScore() = %d, expected 21 from database", sim.HighScore())
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("flappy", score, score*10); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	// Different game
	if _, err := store.SaveScore("other", 500, 0); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("flappy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Ticks != 2000 {
		t.Errorf("Ticks = %d, expected 2000", scores[0].Ticks)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100, 0)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreRecentScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{3, 9, 1, 4} {
		store.SaveScore("flappy", score, 0)
	}

	recent, err := store.RecentScores("flappy", 2)
	if err != nil {
		t.Fatalf("RecentScores() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 4 || recent[1].Score != 1 {
		t.Errorf("RecentScores() = %v, expected newest first [4 1]", recent)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("flappy", 100, 0)
	store.SaveScore("flappy", 300, 0)
	store.SaveScore("flappy", 200, 0)

	high, err = store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("flappy", 100, 0)
	store.SaveScore("flappy", 200, 0)
	store.SaveScore("other", 300, 0)
	store.Set(highScoreKey, "200")
	store.Set("unrelated", "x")

	if err := store.ClearScores("flappy", highScoreKey); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	flappyScores, _ := store.TopScores("flappy", 10)
	if len(flappyScores) != 0 {
		t.Errorf("Expected 0 flappy scores after clear, got %d", len(flappyScores))
	}
	if _, err := store.Get(highScoreKey); !errors.Is(err, flappy.ErrNotFound) {
		t.Errorf("high score slot should be cleared, Get() error = %v", err)
	}

	otherScores, _ := store.TopScores("other", 10)
	if len(otherScores) != 1 {
		t.Error("Other game scores should not be affected by clearing flappy")
	}
	if v, _ := store.Get("unrelated"); v != "x" {
		t.Error("Unrelated keys should not be affected by clearing flappy")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10, 0)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Fatalf("Expected 20 scores, got %d", len(scores))
	}
	if scores[0].Score != 0 || scores[19].Score != 190 {
		t.Errorf("AllScores() should be in insertion order, got first %d last %d", scores[0].Score, scores[19].Score)
	}
}

func TestStoreGameStats(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		count  int
		high   int
		avg    float64
		stddev float64
		median float64
		total  int64
	}{
		{"empty", nil, 0, 0, 0, 0, 0, 0},
		{"single round", []int{7}, 1, 7, 7, 0, 7, 7},
		{"several rounds", []int{2, 4, 4, 4, 5, 5, 7, 9, 0}, 9, 9, 40.0 / 9, 2.6034165586355513, 4, 40},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := openTestStore(t)
			for _, s := range tc.scores {
				store.SaveScore("flappy", s, 0)
			}

			stats, err := store.GetGameStats("flappy")
			if err != nil {
				t.Fatalf("GetGameStats() failed: %v", err)
			}

			if stats.GamesCount != tc.count || stats.HighScore != tc.high || stats.TotalScore != tc.total {
				t.Errorf("count/high/total = %d/%d/%d, expected %d/%d/%d",
					stats.GamesCount, stats.HighScore, stats.TotalScore, tc.count, tc.high, tc.total)
			}
			if math.Abs(stats.AvgScore-tc.avg) > 1e-9 {
				t.Errorf("AvgScore = %v, expected %v", stats.AvgScore, tc.avg)
			}
			if math.Abs(stats.StdDev-tc.stddev) > 1e-9 {
				t.Errorf("StdDev = %v, expected %v", stats.StdDev, tc.stddev)
			}
			if stats.Median != tc.median {
				t.Errorf("Median = %v, expected %v", stats.Median, tc.median)
			}
			if tc.count > 0 && stats.LastPlayed.IsZero() {
				t.Error("LastPlayed was not populated")
			}
		})
	}
}
