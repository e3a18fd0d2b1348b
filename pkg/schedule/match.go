package schedule

import (
	"sort"

	"github.com/lockinhq/liquid/pkg/model"
)

// SuggestForGap picks queued items that fit a gap of the given length,
// preferring to use the gap as fully as possible: known durations rank
// descending, unknown durations are eligible anywhere but rank last.
// Returns at most max items; an empty result is not an error.
func SuggestForGap(queue []model.QueueItem, minutes int, max int) []model.QueueItem {
	var fits []model.QueueItem
	for _, item := range queue {
		if !item.Eligible() {
			continue
		}
		if item.EstimatedMinutes != nil && *item.EstimatedMinutes > minutes {
			continue
		}
		fits = append(fits, item)
	}

	sort.SliceStable(fits, func(i, j int) bool {
		a, b := fits[i].EstimatedMinutes, fits[j].EstimatedMinutes
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a > *b
	})

	if max > 0 && len(fits) > max {
		fits = fits[:max]
	}
	return fits
}
