package google

import (
	"fmt"
	"log"
	"time"

	"github.com/lockinhq/liquid/pkg/colors"
	"github.com/lockinhq/liquid/pkg/index"
	"github.com/lockinhq/liquid/pkg/model"
	"github.com/lockinhq/liquid/pkg/util"
	"google.golang.org/api/calendar/v3"
)

// CalendarClient is a Google Calendar API client for reading the day's
// events and mirroring local blocks upstream.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
	index      *index.EventIndex
	palette    *colors.Palette
}

// NewCalendarClient creates a new Google Calendar client.
func NewCalendarClient(srv *calendar.Service, calendarID string, idx *index.EventIndex, palette *colors.Palette) *CalendarClient {
	return &CalendarClient{srv: srv, calendarID: calendarID, index: idx, palette: palette}
}

// ListBlocks fetches the calendar's events for one day as blocks. Events
// without concrete times (all-day) are skipped.
func (c *CalendarClient) ListBlocks(date time.Time) ([]model.CalendarBlock, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	events, err := c.srv.Events.List(c.calendarID).
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events from calendar: %w", err)
	}

	var blocks []model.CalendarBlock
	for _, e := range events.Items {
		b, err := util.ConvertEventToBlock(e)
		if err != nil {
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// SyncBlock creates a new event for the block or patches the existing one.
// The lookup goes through the local index first, then falls back to an API
// search on the block-id property, so a retried sync never inserts twice.
func (c *CalendarClient) SyncBlock(b model.CalendarBlock) (*calendar.Event, error) {
	event, err := util.ConvertBlockToEvent(&b, c.palette)
	if err != nil {
		return nil, err
	}

	var existingEvent *calendar.Event
	if c.index != nil {
		if eventID := c.index.Get(b.ID); eventID != "" {
			existingEvent, err = c.srv.Events.Get(c.calendarID, eventID).Do()
			if err != nil {
				// Stale index entry; fall back to search.
				existingEvent = nil
			}
		}
	}
	if existingEvent == nil {
		existingEvent, err = c.GetEventByBlockID(b.ID)
		if err != nil {
			return nil, fmt.Errorf("error searching for event: %w", err)
		}
	}

	if existingEvent != nil {
		patch, err := util.EventNeedsUpdate(existingEvent, event)
		if err != nil {
			log.Printf("could not compare block with its calendar event: %v", err)
			return nil, err
		}
		if patch != nil {
			updatedEvent, err := c.PatchEvent(existingEvent.Id, patch)
			if err == nil && c.index != nil {
				c.index.Set(b.ID, updatedEvent.Id)
			}
			return updatedEvent, err
		}
		return existingEvent, nil
	}

	createdEvent, err := c.srv.Events.Insert(c.calendarID, event).Do()
	if err == nil && c.index != nil {
		c.index.Set(b.ID, createdEvent.Id)
	}
	return createdEvent, err
}

// PatchEvent performs a partial update on an event.
func (c *CalendarClient) PatchEvent(eventID string, patch *calendar.Event) (*calendar.Event, error) {
	return c.srv.Events.Patch(c.calendarID, eventID, patch).Do()
}

// DeleteBlock removes the event mirroring a block, if one exists.
func (c *CalendarClient) DeleteBlock(blockID string) error {
	var eventID string
	if c.index != nil {
		eventID = c.index.Get(blockID)
	}
	if eventID == "" {
		event, err := c.GetEventByBlockID(blockID)
		if err != nil || event == nil {
			return err
		}
		eventID = event.Id
	}
	if err := c.srv.Events.Delete(c.calendarID, eventID).Do(); err != nil {
		return err
	}
	if c.index != nil {
		c.index.Remove(blockID)
	}
	return nil
}

// GetEventByBlockID searches for an event carrying the given block id in its
// private extended properties.
func (c *CalendarClient) GetEventByBlockID(blockID string) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", util.BlockIDProperty, blockID)).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}
