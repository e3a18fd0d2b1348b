package model

import "time"

// Gap is a free interval in a day's timeline. Never persisted; recomputed
// from the timeline on demand.
type Gap struct {
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Label           string
}

// PendingMove is a block relocation awaiting user confirmation because it
// runs past nominal work hours. It lives only between the move request and
// its confirm/cancel resolution.
type PendingMove struct {
	BlockID    string
	BlockTitle string
	NewStart   time.Time
	NewEnd     time.Time
}

// CapacityStats is derived from the committed block set on every read.
type CapacityStats struct {
	DeepWorkMinutes  int
	MeetingMinutes   int
	ExternalMinutes  int
	AvailableMinutes int
	TargetMet        bool
}
