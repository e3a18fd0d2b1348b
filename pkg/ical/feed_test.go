package ical

import (
	"strings"
	"testing"
	"time"
)

func icsDoc(lines ...string) string {
	all := append([]string{"BEGIN:VCALENDAR", "VERSION:2.0", "PRODID:-//test//test//EN"}, lines...)
	all = append(all, "END:VCALENDAR", "")
	return strings.Join(all, "\r\n")
}

func TestParseBlocks(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	doc := icsDoc(
		"BEGIN:VEVENT",
		"UID:meeting-1",
		"SUMMARY:Team sync",
		"DTSTART:20260310T140000Z",
		"DTEND:20260310T150000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:cancelled-1",
		"SUMMARY:Cancelled sync",
		"STATUS:CANCELLED",
		"DTSTART:20260310T160000Z",
		"DTEND:20260310T170000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:other-day",
		"SUMMARY:Elsewhere",
		"DTSTART:20260312T140000Z",
		"DTEND:20260312T150000Z",
		"END:VEVENT",
	)

	blocks, err := ParseBlocks(strings.NewReader(doc), day)
	if err != nil {
		t.Fatalf("ParseBlocks failed: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d: %+v", len(blocks), blocks)
	}

	b := blocks[0]
	if b.Title != "Team sync" || b.ID != "meeting-1" {
		t.Errorf("bad block: %+v", b)
	}
	if b.Kind != "external" || b.Source != "ical" {
		t.Errorf("feed events are external blocks, got %+v", b)
	}
	want := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	if !b.Start.Equal(want) {
		t.Errorf("expected start %v, got %v", want, b.Start)
	}
}

func TestParseBlocksExpandsRecurrence(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	doc := icsDoc(
		"BEGIN:VEVENT",
		"UID:standup",
		"SUMMARY:Daily standup",
		"DTSTART:20260302T100000Z",
		"DTEND:20260302T101500Z",
		"RRULE:FREQ=DAILY",
		"END:VEVENT",
	)

	blocks, err := ParseBlocks(strings.NewReader(doc), day)
	if err != nil {
		t.Fatalf("ParseBlocks failed: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 expanded occurrence, got %d: %+v", len(blocks), blocks)
	}

	b := blocks[0]
	wantStart := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	if !b.Start.Equal(wantStart) {
		t.Errorf("expected occurrence at %v, got %v", wantStart, b.Start)
	}
	if got := b.End.Sub(b.Start); got != 15*time.Minute {
		t.Errorf("occurrence must keep the base duration, got %v", got)
	}
	if b.ID == "standup" {
		t.Error("occurrences need distinct ids")
	}
}

func TestParseBlocksSkipsAllDay(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	doc := icsDoc(
		"BEGIN:VEVENT",
		"UID:offsite",
		"SUMMARY:Company offsite",
		"DTSTART;VALUE=DATE:20260310",
		"DTEND;VALUE=DATE:20260311",
		"END:VEVENT",
	)

	blocks, err := ParseBlocks(strings.NewReader(doc), day)
	if err != nil {
		t.Fatalf("ParseBlocks failed: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("all-day events do not occupy timeline space, got %+v", blocks)
	}
}

func TestValidateFormat(t *testing.T) {
	if err := validateFormat("<!DOCTYPE html><html></html>"); err == nil {
		t.Error("HTML must be rejected")
	}
	if err := validateFormat("BEGIN:VCALENDAR\r\nEND:VCALENDAR"); err != nil {
		t.Errorf("valid prefix rejected: %v", err)
	}
}
