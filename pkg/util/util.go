package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lockinhq/liquid/pkg/colors"
	"github.com/lockinhq/liquid/pkg/model"
	"google.golang.org/api/calendar/v3"
)

// BlockIDProperty is the private extended property carrying our block id on
// synced events. It doubles as the idempotency key: a retried create finds
// the existing event by this property instead of inserting a duplicate.
const BlockIDProperty = "liquid_block_id"

// KindProperty records the block kind on the remote event.
const KindProperty = "liquid_kind"

var durationRe = regexp.MustCompile(`(\d+)([HMS])`)

// ParseDuration parses ISO 8601 duration format (PT1H30M), the format
// taskwarrior exports for estimate UDAs.
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	if len(s) < 2 || s[0] != 'P' {
		return 0, fmt.Errorf("invalid ISO 8601 duration format: %s", s)
	}
	s = s[1:]
	if len(s) == 0 || s[0] != 'T' {
		return 0, fmt.Errorf("invalid ISO 8601 duration (missing T): P%s", s)
	}
	s = s[1:]

	var total time.Duration
	for _, match := range durationRe.FindAllStringSubmatch(s, -1) {
		value, _ := strconv.Atoi(match[1])
		switch match[2] {
		case "H":
			total += time.Duration(value) * time.Hour
		case "M":
			total += time.Duration(value) * time.Minute
		case "S":
			total += time.Duration(value) * time.Second
		}
	}

	if total == 0 {
		return 0, fmt.Errorf("invalid ISO 8601 duration: PT%s", s)
	}
	return total, nil
}

// ConvertBlockToEvent renders a calendar block as a Google Calendar event.
func ConvertBlockToEvent(b *model.CalendarBlock, palette *colors.Palette) (*calendar.Event, error) {
	if b == nil {
		return nil, fmt.Errorf("could not convert nil block")
	}
	if !b.End.After(b.Start) {
		return nil, fmt.Errorf("block %s has no valid interval", b.ID)
	}

	var descBuilder strings.Builder
	descBuilder.WriteString(fmt.Sprintf("Kind: %s\n", b.Kind))
	descBuilder.WriteString(fmt.Sprintf("Block: %s\n", b.ID))

	return &calendar.Event{
		Summary: b.Title,
		ColorId: palette.ColorID(b.Kind),
		Start: &calendar.EventDateTime{
			DateTime: b.Start.UTC().Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: b.End.UTC().Format(time.RFC3339),
		},
		Description: descBuilder.String(),
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				BlockIDProperty: b.ID,
				KindProperty:    string(b.Kind),
			},
		},
	}, nil
}

// ConvertEventToBlock maps a Google Calendar event back into a block.
// Events created outside liquid come back as kind external.
func ConvertEventToBlock(e *calendar.Event) (model.CalendarBlock, error) {
	if e.Start == nil || e.End == nil || e.Start.DateTime == "" || e.End.DateTime == "" {
		return model.CalendarBlock{}, fmt.Errorf("event %s has no concrete times (all-day?)", e.Id)
	}
	start, err := time.Parse(time.RFC3339, e.Start.DateTime)
	if err != nil {
		return model.CalendarBlock{}, err
	}
	end, err := time.Parse(time.RFC3339, e.End.DateTime)
	if err != nil {
		return model.CalendarBlock{}, err
	}

	b := model.CalendarBlock{
		ID:     e.Id,
		Title:  e.Summary,
		Start:  start.Local(),
		End:    end.Local(),
		Kind:   model.KindExternal,
		Source: "google",
	}
	if e.ExtendedProperties != nil && e.ExtendedProperties.Private != nil {
		if id := e.ExtendedProperties.Private[BlockIDProperty]; id != "" {
			b.ID = id
		}
		if kind := e.ExtendedProperties.Private[KindProperty]; kind != "" {
			b.Kind = model.BlockKind(kind)
		}
	}
	return b, nil
}

// EventNeedsUpdate returns a patch covering the fields that differ between
// the existing remote event and the freshly converted one, or nil when the
// remote copy is already current.
func EventNeedsUpdate(existingEvent, targetEvent *calendar.Event) (*calendar.Event, error) {
	patch := &calendar.Event{}
	needsUpdate := false

	if existingEvent.Summary != targetEvent.Summary {
		patch.Summary = targetEvent.Summary
		needsUpdate = true
	}
	if existingEvent.Description != targetEvent.Description {
		patch.Description = targetEvent.Description
		needsUpdate = true
	}
	if existingEvent.ColorId != targetEvent.ColorId {
		patch.ColorId = targetEvent.ColorId
		needsUpdate = true
	}

	existingStart, err := time.Parse(time.RFC3339, existingEvent.Start.DateTime)
	if err != nil {
		return nil, err
	}
	targetStart, err := time.Parse(time.RFC3339, targetEvent.Start.DateTime)
	if err != nil {
		return nil, err
	}
	existingEnd, err := time.Parse(time.RFC3339, existingEvent.End.DateTime)
	if err != nil {
		return nil, err
	}
	targetEnd, err := time.Parse(time.RFC3339, targetEvent.End.DateTime)
	if err != nil {
		return nil, err
	}

	if !existingStart.Equal(targetStart) || !existingEnd.Equal(targetEnd) {
		patch.Start = targetEvent.Start
		patch.End = targetEvent.End
		needsUpdate = true
	}

	if needsUpdate {
		return patch, nil
	}
	return nil, nil
}
