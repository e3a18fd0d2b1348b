// Package queue keeps the deferred-content queue: saved articles, videos and
// other items waiting to be matched into free gaps.
package queue

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
	queueFile  = "queue.json"
)

type Store struct {
	Items map[string]model.QueueItem `json:"items"`
	Path  string                     `json:"-"`
	dirty bool
}

func New() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewAt(filepath.Join(home, ".config", xdgAppName, queueFile))
}

func NewAt(path string) (*Store, error) {
	s := &Store{
		Path:  path,
		Items: make(map[string]model.QueueItem),
	}
	if _, err := os.Stat(path); err == nil {
		if err := s.Load(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) Load() error {
	f, err := os.Open(s.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(s)
}

func (s *Store) Save() error {
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

// Add queues a new item. A nil estimate means the duration is unknown.
func (s *Store) Add(title, url string, estimatedMinutes *int) model.QueueItem {
	item := model.QueueItem{
		ID:               uuid.NewString(),
		Title:            title,
		URL:              url,
		EstimatedMinutes: estimatedMinutes,
		AddedAt:          time.Now(),
	}
	s.Items[item.ID] = item
	s.dirty = true
	return item
}

// List returns all items ordered by when they were added.
func (s *Store) List() []model.QueueItem {
	out := make([]model.QueueItem, 0, len(s.Items))
	for _, item := range s.Items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].AddedAt.Before(out[j].AddedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// MarkScheduled reserves an item for a gap starting at the given time; it is
// no longer offered by the matcher.
func (s *Store) MarkScheduled(id string, at time.Time) error {
	item, ok := s.Items[id]
	if !ok {
		return fmt.Errorf("queue item %s not found", id)
	}
	item.ScheduledFor = at
	s.Items[id] = item
	s.dirty = true
	return nil
}

func (s *Store) Complete(id string) error {
	item, ok := s.Items[id]
	if !ok {
		return fmt.Errorf("queue item %s not found", id)
	}
	item.Completed = true
	s.Items[id] = item
	s.dirty = true
	return nil
}

// Sweep re-floats items whose scheduled slot has passed without being
// completed, so the matcher can offer them again. Returns the items that
// were re-floated.
func (s *Store) Sweep(now time.Time) []model.QueueItem {
	var swept []model.QueueItem
	for id, item := range s.Items {
		if item.Completed || item.ScheduledFor.IsZero() {
			continue
		}
		if item.ScheduledFor.Before(now) {
			item.ScheduledFor = time.Time{}
			s.Items[id] = item
			s.dirty = true
			swept = append(swept, item)
		}
	}
	return swept
}
