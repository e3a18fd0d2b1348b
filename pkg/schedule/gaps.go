package schedule

import (
	"time"

	"github.com/lockinhq/liquid/pkg/model"
)

// Gap labels by duration.
const (
	LabelQuickBreak = "Quick Break"
	LabelFreeBlock  = "Free Block"
	LabelDeepWork   = "Deep Work Session"
	LabelEndOfDay   = "End of day free time"
)

// FindGaps walks the merged timeline for date and emits every free interval
// of at least cfg.MinGapMinutes between the scan start and the end-of-day
// cutoff. For today the scan starts at max(now, DayStartHour); future days
// start at DayStartHour; past days have no schedulable time and yield nil.
// A fully booked day yields an empty result, which is not an error.
func FindGaps(cfg Config, timeline []model.TimelineItem, date time.Time, now time.Time) []model.Gap {
	dayStart := hourOn(date, cfg.DayStartHour)
	endOfDay := hourOn(date, cfg.DayEndHour)

	var scanStart time.Time
	switch {
	case sameDay(date, now):
		scanStart = dayStart
		if now.After(scanStart) {
			scanStart = now
		}
	case date.Before(now):
		// Past dates are not schedulable.
		return nil
	default:
		scanStart = dayStart
	}
	if !scanStart.Before(endOfDay) {
		return nil
	}

	var gaps []model.Gap
	current := scanStart

	for _, item := range timeline {
		end := item.EffectiveEnd()
		if !end.After(current) {
			// Item already over; contributes nothing.
			continue
		}
		start := item.EffectiveStart()
		if start.After(current) {
			gaps = appendGap(gaps, cfg, current, minTime(start, endOfDay), false)
		}
		if end.After(current) {
			current = end
		}
	}

	if current.Before(endOfDay) {
		gaps = appendGap(gaps, cfg, current, endOfDay, true)
	}
	return gaps
}

func appendGap(gaps []model.Gap, cfg Config, start, end time.Time, final bool) []model.Gap {
	minutes := int(end.Sub(start) / time.Minute)
	if minutes < cfg.MinGapMinutes {
		return gaps
	}
	label := labelFor(minutes)
	if final {
		label = LabelEndOfDay
	}
	return append(gaps, model.Gap{
		Start:           start,
		End:             end,
		DurationMinutes: minutes,
		Label:           label,
	})
}

func labelFor(minutes int) string {
	switch {
	case minutes < 20:
		return LabelQuickBreak
	case minutes < 60:
		return LabelFreeBlock
	default:
		return LabelDeepWork
	}
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
