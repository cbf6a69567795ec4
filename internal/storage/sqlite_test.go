package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/quellen/wander/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
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

func TestSaveAndLoadProgress(t *testing.T) {
	store := openTestStore(t)

	p := core.Progress{
		MapID:      "keep",
		PlayerTile: [2]int{7, 8},
		Facing:     "north",
		PlayTicks:  1234,
	}
	if err := store.SaveProgress("hollow", 1, p); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}

	got, err := store.LoadProgress("hollow", 1)
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if got != p {
		t.Errorf("loaded %+v, want %+v", got, p)
	}
}

func TestSaveOverwritesSlot(t *testing.T) {
	store := openTestStore(t)

	first := core.Progress{MapID: "overworld", PlayerTile: [2]int{5, 9}, Facing: "south"}
	second := core.Progress{MapID: "keep", PlayerTile: [2]int{2, 2}, Facing: "east", PlayTicks: 99}

	if err := store.SaveProgress("hollow", 1, first); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}
	if err := store.SaveProgress("hollow", 1, second); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}

	got, err := store.LoadProgress("hollow", 1)
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if got != second {
		t.Errorf("loaded %+v, want overwrite %+v", got, second)
	}

	entries, err := store.ListSaves("hollow")
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("ListSaves() returned %d entries, want 1", len(entries))
	}
}

func TestLoadEmptySlot(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadProgress("hollow", 3)
	if !errors.Is(err, ErrNoSave) {
		t.Errorf("LoadProgress() error = %v, want ErrNoSave", err)
	}
}

func TestListSavesPerQuest(t *testing.T) {
	store := openTestStore(t)

	p := core.Progress{MapID: "overworld", Facing: "south"}
	if err := store.SaveProgress("hollow", 1, p); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveProgress("hollow", 2, p); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveProgress("other", 1, p); err != nil {
		t.Fatal(err)
	}

	entries, err := store.ListSaves("hollow")
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("ListSaves() returned %d entries, want 2", len(entries))
	}
	for _, e := range entries {
		if e.QuestID != "hollow" {
			t.Errorf("entry for quest %q leaked into listing", e.QuestID)
		}
	}
}

func TestDeleteSave(t *testing.T) {
	store := openTestStore(t)

	p := core.Progress{MapID: "overworld", Facing: "south"}
	if err := store.SaveProgress("hollow", 1, p); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteSave("hollow", 1); err != nil {
		t.Fatalf("DeleteSave() failed: %v", err)
	}
	if _, err := store.LoadProgress("hollow", 1); !errors.Is(err, ErrNoSave) {
		t.Errorf("LoadProgress() after delete = %v, want ErrNoSave", err)
	}

	// Deleting an already empty slot succeeds
	if err := store.DeleteSave("hollow", 1); err != nil {
		t.Errorf("DeleteSave() on empty slot failed: %v", err)
	}
}
