package model

import "time"

// QueueItem is a saved resource deferred for later consumption (an article,
// video, etc.) that the matcher can fit into a free gap.
type QueueItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	// EstimatedMinutes is nil when the duration is unknown; such items fit
	// any gap but rank last among suggestions.
	EstimatedMinutes *int      `json:"estimated_minutes,omitempty"`
	ScheduledFor     time.Time `json:"scheduled_for,omitempty"` // zero = unscheduled
	Completed        bool      `json:"completed,omitempty"`
	AddedAt          time.Time `json:"added_at"`
}

// Eligible reports whether the item can still be offered for a gap.
func (q QueueItem) Eligible() bool {
	return !q.Completed && q.ScheduledFor.IsZero()
}
