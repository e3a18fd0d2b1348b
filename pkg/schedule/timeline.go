package schedule

import (
	"sort"
	"time"

	"github.com/lockinhq/liquid/pkg/model"
)

// BuildTimeline merges the day's calendar blocks and scheduled tasks into one
// sequence ordered by effective start. Blocks whose date differs from the
// requested day, completed or deleted tasks, and tasks without a resolvable
// start are excluded. Ties keep fetch order (blocks before tasks) so output
// is deterministic.
func BuildTimeline(blocks []model.CalendarBlock, tasks []model.ScheduledTask, date time.Time) []model.TimelineItem {
	var items []model.TimelineItem

	for _, b := range blocks {
		if sameDay(b.Start, date) {
			items = append(items, b)
		}
	}
	for _, t := range tasks {
		if t.Status == model.COMPLETED || t.Status == model.DELETED {
			continue
		}
		start := t.EffectiveStart()
		if start.IsZero() || !sameDay(start, date) {
			continue
		}
		items = append(items, t)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].EffectiveStart().Before(items[j].EffectiveStart())
	})
	return items
}

func sameDay(t, day time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// hourOn returns the given clock hour on day, in day's location.
func hourOn(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}
