package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNewManager_MissingFile(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if m.Len() != 0 {
		t.Errorf("Expected empty set for missing file, got %d entries", m.Len())
	}
}

func TestNewManager_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(path)
	if m.Len() != 0 {
		t.Errorf("Expected empty set for corrupt file, got %d entries", m.Len())
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "seen.json")

	m := NewManager(path)
	m.Add("fp-one")
	m.Add("fp-two")

	if err := m.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded := NewManager(path)
	if reloaded.Len() != 2 {
		t.Fatalf("Expected 2 entries after reload, got %d", reloaded.Len())
	}
	if !reloaded.Contains("fp-one") || !reloaded.Contains("fp-two") {
		t.Error("Expected both fingerprints to survive a save/reload cycle")
	}
}

func TestSave_SnapshotFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")

	m := NewManager(path)
	m.Add("fp-one")
	if err := m.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var snap struct {
		SeenIDs    []string `json:"seen_ids"`
		LastUpdate string   `json:"last_update"`
		TotalCount int      `json:"total_count"`
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("Snapshot is not valid JSON: %v", err)
	}

	if snap.TotalCount != 1 || len(snap.SeenIDs) != 1 {
		t.Errorf("Expected total_count=1 and one seen id, got %d / %v", snap.TotalCount, snap.SeenIDs)
	}
	if snap.LastUpdate == "" {
		t.Error("Expected a last_update timestamp in the snapshot")
	}
}

func TestAdd_Idempotent(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "seen.json"))
	m.Add("fp-one")
	m.Add("fp-one")
	if m.Len() != 1 {
		t.Errorf("Expected 1 entry after duplicate Add, got %d", m.Len())
	}
}
