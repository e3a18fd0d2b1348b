package queue

import (
	"path/filepath"
	"testing"
	"time"
)

func testQueue(t *testing.T) *Store {
	t.Helper()
	s, err := NewAt(filepath.Join(t.TempDir(), "queue.json"))
	if err != nil {
		t.Fatalf("NewAt failed: %v", err)
	}
	return s
}

func TestAddScheduleComplete(t *testing.T) {
	s := testQueue(t)
	est := 25
	item := s.Add("Read paper", "https://example.com/paper", &est)

	if item.ID == "" || !item.Eligible() {
		t.Fatalf("new item should be eligible: %+v", item)
	}

	slot := time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)
	if err := s.MarkScheduled(item.ID, slot); err != nil {
		t.Fatal(err)
	}
	if s.Items[item.ID].Eligible() {
		t.Error("scheduled item must not be eligible")
	}

	if err := s.Complete(item.ID); err != nil {
		t.Fatal(err)
	}
	if !s.Items[item.ID].Completed {
		t.Error("item should be completed")
	}

	if err := s.Complete("missing"); err == nil {
		t.Error("completing an unknown item should fail")
	}
}

func TestMarkScheduledUnknown(t *testing.T) {
	s := testQueue(t)
	if err := s.MarkScheduled("missing", time.Now()); err == nil {
		t.Error("reserving an unknown item should fail")
	}
}

func TestSweepRefloatsStaleItems(t *testing.T) {
	s := testQueue(t)
	a := s.Add("Stale", "", nil)
	b := s.Add("Upcoming", "", nil)
	c := s.Add("Watched", "", nil)

	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	s.MarkScheduled(a.ID, now.Add(-2*time.Hour))
	s.MarkScheduled(b.ID, now.Add(2*time.Hour))
	s.MarkScheduled(c.ID, now.Add(-2*time.Hour))
	s.Complete(c.ID)

	swept := s.Sweep(now)
	if len(swept) != 1 || swept[0].ID != a.ID {
		t.Fatalf("expected only the stale incomplete item re-floated, got %+v", swept)
	}
	if !s.Items[a.ID].Eligible() {
		t.Error("re-floated item should be eligible again")
	}
	if s.Items[b.ID].Eligible() {
		t.Error("upcoming item must stay reserved")
	}
}

func TestQueuePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")
	s, err := NewAt(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Add("Read later", "https://example.com", nil)
	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	reloaded, err := NewAt(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(reloaded.List()) != 1 {
		t.Errorf("expected 1 item after reload, got %d", len(reloaded.List()))
	}
}
