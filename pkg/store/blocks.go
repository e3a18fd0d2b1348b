// Package store persists the local block set as a JSON file under the app
// config directory.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lockinhq/liquid/pkg/model"
)

const (
	xdgAppName = "liquid"
	blocksFile = "blocks.json"
)

type BlockStore struct {
	Entries map[string]model.CalendarBlock `json:"entries"`
	Path    string                         `json:"-"`
	dirty   bool
}

func New() (*BlockStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewAt(filepath.Join(home, ".config", xdgAppName, blocksFile))
}

func NewAt(path string) (*BlockStore, error) {
	s := &BlockStore{
		Path:    path,
		Entries: make(map[string]model.CalendarBlock),
	}
	if _, err := os.Stat(path); err == nil {
		if err := s.Load(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *BlockStore) Load() error {
	f, err := os.Open(s.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(s)
}

func (s *BlockStore) Save() error {
	if !s.dirty {
		return nil
	}
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	err = encoder.Encode(s)
	if err == nil {
		s.dirty = false
	}
	return err
}

// Blocks lists the stored blocks ordered by start time, then id, so output
// is deterministic.
func (s *BlockStore) Blocks() ([]model.CalendarBlock, error) {
	out := make([]model.CalendarBlock, 0, len(s.Entries))
	for _, b := range s.Entries {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Create stores a new block. A retried create with the same correlation id
// returns the already-stored block's id instead of duplicating it.
func (s *BlockStore) Create(b model.CalendarBlock) (string, error) {
	if b.CorrelationID != "" {
		for id, existing := range s.Entries {
			if existing.CorrelationID == b.CorrelationID {
				return id, nil
			}
		}
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if _, exists := s.Entries[b.ID]; exists {
		return "", fmt.Errorf("block %s already exists", b.ID)
	}
	s.Entries[b.ID] = b
	s.dirty = true
	return b.ID, s.Save()
}

func (s *BlockStore) UpdateTimes(id string, start, end time.Time) error {
	b, ok := s.Entries[id]
	if !ok {
		return fmt.Errorf("block %s not found", id)
	}
	if b.Start.Equal(start) && b.End.Equal(end) {
		return nil
	}
	b.Start, b.End = start, end
	s.Entries[id] = b
	s.dirty = true
	return s.Save()
}

func (s *BlockStore) Delete(id string) error {
	if _, ok := s.Entries[id]; !ok {
		return fmt.Errorf("block %s not found", id)
	}
	delete(s.Entries, id)
	s.dirty = true
	return s.Save()
}
