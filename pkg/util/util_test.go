package util

import (
	"testing"
	"time"

	"github.com/lockinhq/liquid/pkg/model"
	"google.golang.org/api/calendar/v3"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"PT1H":    time.Hour,
		"PT30M":   30 * time.Minute,
		"PT1H30M": 90 * time.Minute,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		if err != nil {
			t.Errorf("%s: %v", in, err)
		}
		if got != want {
			t.Errorf("%s: expected %v, got %v", in, want, got)
		}
	}

	if _, err := ParseDuration("1h30m"); err == nil {
		t.Error("expected error for non-ISO duration")
	}
	if d, err := ParseDuration(""); err != nil || d != 0 {
		t.Errorf("empty duration should be zero, got %v, %v", d, err)
	}
}

func TestConvertBlockRoundTrip(t *testing.T) {
	b := &model.CalendarBlock{
		ID:    "blk-1",
		Title: "Morning focus",
		Start: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
		Kind:  model.KindDeepWork,
	}

	event, err := ConvertBlockToEvent(b, nil)
	if err != nil {
		t.Fatalf("ConvertBlockToEvent failed: %v", err)
	}
	if event.ExtendedProperties == nil || event.ExtendedProperties.Private[BlockIDProperty] != "blk-1" {
		t.Fatalf("expected %s property, got %+v", BlockIDProperty, event.ExtendedProperties)
	}

	back, err := ConvertEventToBlock(event)
	if err != nil {
		t.Fatalf("ConvertEventToBlock failed: %v", err)
	}
	if back.ID != b.ID || back.Kind != b.Kind || back.Title != b.Title {
		t.Errorf("round trip lost fields: %+v", back)
	}
	if !back.Start.Equal(b.Start) || !back.End.Equal(b.End) {
		t.Errorf("round trip shifted times: %+v", back)
	}
}

func TestConvertEventToBlockForeign(t *testing.T) {
	event := &calendar.Event{
		Id:      "gcal-77",
		Summary: "Dentist",
		Start:   &calendar.EventDateTime{DateTime: "2026-03-10T14:00:00Z"},
		End:     &calendar.EventDateTime{DateTime: "2026-03-10T15:00:00Z"},
	}

	b, err := ConvertEventToBlock(event)
	if err != nil {
		t.Fatal(err)
	}
	if b.Kind != model.KindExternal {
		t.Errorf("foreign events default to external, got %s", b.Kind)
	}
	if b.ID != "gcal-77" {
		t.Errorf("foreign events keep their event id, got %s", b.ID)
	}
}

func TestConvertEventToBlockAllDay(t *testing.T) {
	event := &calendar.Event{
		Id:    "allday",
		Start: &calendar.EventDateTime{Date: "2026-03-10"},
		End:   &calendar.EventDateTime{Date: "2026-03-11"},
	}
	if _, err := ConvertEventToBlock(event); err == nil {
		t.Error("all-day events have no concrete interval and must be rejected")
	}
}

func TestEventNeedsUpdate(t *testing.T) {
	mk := func(summary, start string) *calendar.Event {
		return &calendar.Event{
			Summary: summary,
			Start:   &calendar.EventDateTime{DateTime: start},
			End:     &calendar.EventDateTime{DateTime: "2026-03-10T11:00:00Z"},
		}
	}

	patch, err := EventNeedsUpdate(mk("a", "2026-03-10T09:00:00Z"), mk("a", "2026-03-10T09:00:00Z"))
	if err != nil || patch != nil {
		t.Errorf("identical events need no patch, got %+v, %v", patch, err)
	}

	patch, err = EventNeedsUpdate(mk("a", "2026-03-10T09:00:00Z"), mk("b", "2026-03-10T10:00:00Z"))
	if err != nil {
		t.Fatal(err)
	}
	if patch == nil || patch.Summary != "b" || patch.Start == nil {
		t.Errorf("expected summary and time patch, got %+v", patch)
	}
}
