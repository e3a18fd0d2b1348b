// Package index maps local block ids to their remote Google Calendar event
// ids so sync can patch instead of re-searching the API on every run.
package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const (
	xdgAppName = "liquid"
	indexFile  = "events.json"
)

type EventIndex struct {
	Mappings map[string]string `json:"mappings"`
	Path     string            `json:"-"`
	mu       sync.RWMutex
	dirty    bool
}

func New() (*EventIndex, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewAt(filepath.Join(home, ".config", xdgAppName, indexFile))
}

func NewAt(path string) (*EventIndex, error) {
	idx := &EventIndex{
		Mappings: make(map[string]string),
		Path:     path,
	}
	if _, err := os.Stat(path); err == nil {
		if err := idx.Load(); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

func (idx *EventIndex) Load() error {
	f, err := os.Open(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(&idx.Mappings)
}

func (idx *EventIndex) Save() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if !idx.dirty {
		return nil
	}

	dir := filepath.Dir(idx.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.Create(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(idx.Mappings); err != nil {
		return err
	}
	idx.dirty = false
	return nil
}

// Get returns the remote event id for a block, or "" if unmapped.
func (idx *EventIndex) Get(blockID string) string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.Mappings[blockID]
}

func (idx *EventIndex) Set(blockID, eventID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.Mappings[blockID] != eventID {
		idx.Mappings[blockID] = eventID
		idx.dirty = true
	}
}

func (idx *EventIndex) Remove(blockID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, exists := idx.Mappings[blockID]; exists {
		delete(idx.Mappings, blockID)
		idx.dirty = true
	}
}

// Prune drops mappings for blocks that no longer exist locally.
func (idx *EventIndex) Prune(valid map[string]bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for blockID := range idx.Mappings {
		if !valid[blockID] {
			delete(idx.Mappings, blockID)
			idx.dirty = true
		}
	}
}
