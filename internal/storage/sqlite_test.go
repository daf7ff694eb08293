package storage

import (
	"os"
	"path/filepath"
	"testing"
)

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

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	_, err = store.SaveScore("2048", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("2048", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("2048", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different game
	_, err = store.SaveScore("2048_endless", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for classic
	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for endless
	endlessScores, err := store.TopScores("2048_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(endlessScores) != 1 {
		t.Errorf("Expected 1 endless score, got %d", len(endlessScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveScore("2048", 100)
	store.SaveScore("2048", 300)
	store.SaveScore("2048", 200)

	high, err = store.HighScore("2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("2048", 100)
	store.SaveScore("2048", 200)
	store.SaveScore("2048_endless", 300)

	// Clear only classic scores
	err = store.ClearScores("2048")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Flappy should be empty
	classicScores, _ := store.TopScores("2048", 10)
	if len(classicScores) != 0 {
		t.Errorf("Expected 0 classic scores after clear, got %d", len(classicScores))
	}

	// Endless should still have scores
	endlessScores, _ := store.TopScores("2048_endless", 10)
	if len(endlessScores) != 1 {
		t.Errorf("Endless scores should not be affected by clearing classic")
	}
}

func TestStoreAllScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Add many scores
	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreGameRecords(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	records := []GameRecord{
		{SessionID: "a", GameID: "2048", Size: 4, Score: 2000, MaxTile: 256, Moves: 180},
		{SessionID: "b", GameID: "2048", Size: 4, Score: 21000, MaxTile: 2048, Moves: 950, Won: true, Continued: true, Bot: "greedy"},
		{SessionID: "c", GameID: "2048_endless", Size: 5, Score: 500, MaxTile: 64, Moves: 60},
	}
	for _, rec := range records {
		if _, err := store.SaveGameRecord(rec); err != nil {
			t.Fatalf("SaveGameRecord(%s) failed: %v", rec.SessionID, err)
		}
	}

	got, err := store.GameRecordBySession("b")
	if err != nil {
		t.Fatalf("GameRecordBySession() failed: %v", err)
	}
	if got == nil {
		t.Fatal("GameRecordBySession(b) returned nil")
	}
	if !got.Won || !got.Continued || got.Bot != "greedy" || got.MaxTile != 2048 || got.Size != 4 {
		t.Errorf("record b = %+v", got)
	}

	missing, err := store.GameRecordBySession("nope")
	if err != nil || missing != nil {
		t.Errorf("GameRecordBySession(nope) = %v, %v; want nil, nil", missing, err)
	}

	classic, err := store.RecentGames("2048", 10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(classic) != 2 {
		t.Errorf("RecentGames(2048) returned %d records, want 2", len(classic))
	}

	all, err := store.RecentGames("", 10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("RecentGames(all) returned %d records, want 3", len(all))
	}
	// same timestamp resolution, so id breaks the tie
	if all[0].SessionID != "c" {
		t.Errorf("newest record = %s, want c", all[0].SessionID)
	}

	top, err := store.TopGames("", 2)
	if err != nil {
		t.Fatalf("TopGames() failed: %v", err)
	}
	if len(top) != 2 || top[0].SessionID != "b" || top[1].SessionID != "a" {
		t.Errorf("TopGames(all, 2) = %+v, want b then a", top)
	}

	// A session saved again replaces its row
	updated := records[0]
	updated.Score = 2600
	updated.Moves = 201
	if _, err := store.SaveGameRecord(updated); err != nil {
		t.Fatalf("SaveGameRecord(update) failed: %v", err)
	}
	got, err = store.GameRecordBySession("a")
	if err != nil || got == nil {
		t.Fatalf("GameRecordBySession(a) = %v, %v", got, err)
	}
	if got.Score != 2600 || got.Moves != 201 {
		t.Errorf("updated record a = %+v", got)
	}
	if all, _ := store.RecentGames("", 10); len(all) != 3 {
		t.Errorf("update should not add a row, got %d records", len(all))
	}
}
