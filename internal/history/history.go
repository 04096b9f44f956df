/*
Package history tracks which notes have already been notified or adjudicated
in previous runs.
*/
package history

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

type snapshot struct {
	SeenIDs    []string `json:"seen_ids"`
	LastUpdate string   `json:"last_update"`
	TotalCount int      `json:"total_count"`
}

// Manager owns the persisted seen-set. It is loaded once at construction,
// mutated in memory during a run, and written back as a full snapshot by
// Save. Entries are only ever added.
type Manager struct {
	seen     map[string]bool
	mutex    sync.Mutex
	filePath string
}

// NewManager loads the seen-set from filePath. A missing, unreadable or
// malformed file yields an empty set; the pipeline still runs and at worst
// re-notifies a few notes.
func NewManager(filePath string) *Manager {
	m := &Manager{
		seen:     make(map[string]bool),
		filePath: filePath,
	}
	m.load()
	return m
}

func (m *Manager) load() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	data, err := os.ReadFile(m.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Seen file %s not found. Starting fresh.", m.filePath)
			return
		}
		log.Printf("Error reading seen file (%s): %v. Starting fresh.", m.filePath, err)
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("Error unmarshalling seen file JSON: %v. Starting fresh.", err)
		return
	}

	for _, id := range snap.SeenIDs {
		m.seen[id] = true
	}
	log.Printf("Loaded %d seen notes (last update: %s).", len(m.seen), snap.LastUpdate)
}

// Contains reports whether a fingerprint has already been adjudicated.
func (m *Manager) Contains(fp string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.seen[fp]
}

// Add records a fingerprint as adjudicated.
func (m *Manager) Add(fp string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.seen[fp] = true
}

// Len returns the total number of adjudicated fingerprints.
func (m *Manager) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.seen)
}

// Save writes the full snapshot, replacing the prior one atomically via a
// temp file rename. A failed save only risks duplicate notification on the
// next run, so callers log the error and carry on.
func (m *Manager) Save() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	ids := make([]string, 0, len(m.seen))
	for id := range m.seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	snap := snapshot{
		SeenIDs:    ids,
		LastUpdate: time.Now().Format("2006-01-02 15:04:05"),
		TotalCount: len(ids),
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal seen snapshot: %w", err)
	}

	dir := filepath.Dir(m.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create seen file directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "seen_*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp seen file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp seen file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp seen file: %w", err)
	}

	if err := os.Rename(tmpName, m.filePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace seen file %s: %w", m.filePath, err)
	}

	log.Printf("Saved %d seen notes to %s.", len(ids), m.filePath)
	return nil
}

// FilePath returns the location of the persisted snapshot.
func (m *Manager) FilePath() string {
	return m.filePath
}
