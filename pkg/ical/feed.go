// Package ical ingests read-only iCal feeds (work calendars, shared
// schedules) as external blocks on the day's timeline.
package ical

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/lockinhq/liquid/pkg/model"
	"github.com/teambition/rrule-go"
)

// FetchBlocks fetches and parses one iCal source, returning the blocks that
// land on the given day.
func FetchBlocks(url string, day time.Time) ([]model.CalendarBlock, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	bodyStr := string(body)
	if err := validateFormat(bodyStr); err != nil {
		return nil, err
	}
	return ParseBlocks(strings.NewReader(bodyStr), day)
}

// ParseBlocks decodes an iCal document and returns the day's blocks.
// Recurring events are expanded with their full RRULE semantics; cancelled
// and all-day entries are dropped.
func ParseBlocks(r io.Reader, day time.Time) ([]model.CalendarBlock, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	decoder := ical.NewDecoder(r)
	var blocks []model.CalendarBlock
	seen := make(map[string]bool)

	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			base, ok := parseEvent(comp)
			if !ok {
				continue
			}

			if rruleProp := comp.Props.Get(ical.PropRecurrenceRule); rruleProp != nil {
				expanded, err := expand(base, rruleProp.Value, dayStart, dayEnd)
				if err != nil {
					return nil, fmt.Errorf("bad RRULE for %q: %w", base.Title, err)
				}
				for _, b := range expanded {
					blocks = appendBlock(blocks, seen, b, dayStart, dayEnd)
				}
				continue
			}
			blocks = appendBlock(blocks, seen, base, dayStart, dayEnd)
		}
	}
	return blocks, nil
}

func parseEvent(comp *ical.Component) (model.CalendarBlock, bool) {
	b := model.CalendarBlock{Kind: model.KindExternal, Source: "ical"}

	if uidProp := comp.Props.Get(ical.PropUID); uidProp != nil {
		b.ID = uidProp.Value
	}
	if summaryProp := comp.Props.Get(ical.PropSummary); summaryProp != nil {
		b.Title = summaryProp.Value
	}
	if statusProp := comp.Props.Get(ical.PropStatus); statusProp != nil && statusProp.Value == "CANCELLED" {
		return b, false
	}

	startProp := comp.Props.Get(ical.PropDateTimeStart)
	endProp := comp.Props.Get(ical.PropDateTimeEnd)
	if startProp == nil || endProp == nil {
		return b, false
	}
	start, err := startProp.DateTime(time.Local)
	if err != nil {
		return b, false
	}
	end, err := endProp.DateTime(time.Local)
	if err != nil {
		return b, false
	}
	b.Start, b.End = start, end

	// All-day and multi-day entries do not occupy timeline space.
	if end.Sub(start) >= 24*time.Hour {
		return b, false
	}
	if b.ID == "" {
		b.ID = "ical-" + start.Format(time.RFC3339) + "-" + b.Title
	}
	return b, true
}

// expand generates the occurrences of a recurring event that start within
// [windowStart, windowEnd).
func expand(base model.CalendarBlock, rule string, windowStart, windowEnd time.Time) ([]model.CalendarBlock, error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, err
	}
	opt.Dtstart = base.Start

	rr, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, err
	}

	duration := base.End.Sub(base.Start)
	var out []model.CalendarBlock
	for _, start := range rr.Between(windowStart, windowEnd, true) {
		instance := base
		instance.Start = start
		instance.End = start.Add(duration)
		instance.ID = base.ID + "-" + start.Format(time.RFC3339)
		out = append(out, instance)
	}
	return out, nil
}

func appendBlock(blocks []model.CalendarBlock, seen map[string]bool, b model.CalendarBlock, dayStart, dayEnd time.Time) []model.CalendarBlock {
	if !b.Start.Before(dayEnd) || !b.End.After(dayStart) {
		return blocks
	}
	if seen[b.ID] {
		return blocks
	}
	seen[b.ID] = true
	return append(blocks, b)
}

func validateFormat(bodyStr string) error {
	trimmed := strings.TrimSpace(bodyStr)
	upper := strings.ToUpper(trimmed)
	if strings.HasPrefix(upper, "<!DOCTYPE") || strings.HasPrefix(upper, "<HTML") {
		return fmt.Errorf("received HTML instead of iCalendar data - check if URL requires authentication")
	}
	if !strings.HasPrefix(trimmed, "BEGIN:VCALENDAR") {
		preview := trimmed
		if len(preview) > 100 {
			preview = preview[:100]
		}
		return fmt.Errorf("invalid iCalendar format - expected BEGIN:VCALENDAR, got: %s", preview)
	}
	return nil
}
