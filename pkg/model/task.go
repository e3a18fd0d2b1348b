package model

import "time"

const (
	PENDING   = "pending"
	COMPLETED = "completed"
	WAITING   = "waiting"
	DELETED   = "deleted"
)

// DefaultEstimateMinutes is assumed for tasks without a duration estimate.
const DefaultEstimateMinutes = 30

// ScheduledTask is a task from any source (taskwarrior, orgmode) that may
// occupy timeline space.
type ScheduledTask struct {
	ID               string
	Title            string
	ScheduledStart   *time.Time
	DueDate          *time.Time
	EstimatedMinutes int // 0 = unknown
	Status           string
	Source           string
}

// TimelineItem is the tagged union of everything that can occupy an interval
// on a day's timeline. The effective accessors implement the fallback chain
// once, centrally, instead of duck-typing field access at call sites.
type TimelineItem interface {
	// EffectiveStart resolves the item's placement start. The zero time
	// means the item has no resolvable start and must not be placed.
	EffectiveStart() time.Time
	EffectiveEnd() time.Time
	Summary() string
}

// EffectiveStart is the explicit scheduled start, or the due date at
// midnight as a fallback.
func (t ScheduledTask) EffectiveStart() time.Time {
	if t.ScheduledStart != nil && !t.ScheduledStart.IsZero() {
		return *t.ScheduledStart
	}
	if t.DueDate != nil && !t.DueDate.IsZero() {
		d := *t.DueDate
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	}
	return time.Time{}
}

// EffectiveEnd is the effective start plus the estimate, defaulting to
// DefaultEstimateMinutes when the estimate is unknown.
func (t ScheduledTask) EffectiveEnd() time.Time {
	start := t.EffectiveStart()
	if start.IsZero() {
		return time.Time{}
	}
	est := t.EstimatedMinutes
	if est <= 0 {
		est = DefaultEstimateMinutes
	}
	return start.Add(time.Duration(est) * time.Minute)
}

func (t ScheduledTask) Summary() string { return t.Title }
