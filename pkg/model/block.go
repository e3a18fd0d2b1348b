package model

import "time"

// BlockKind categorizes a calendar block for capacity accounting.
type BlockKind string

const (
	KindDeepWork BlockKind = "deep_work"
	KindMeeting  BlockKind = "meeting"
	KindExternal BlockKind = "external"
)

// CalendarBlock is a committed interval on the user's calendar.
type CalendarBlock struct {
	ID string `json:"id"`
	// CorrelationID is generated by the client at creation time so that a
	// retried create is recognized instead of duplicated.
	CorrelationID string    `json:"correlation_id,omitempty"`
	Title         string    `json:"title"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Kind          BlockKind `json:"kind"`
	Source        string    `json:"source,omitempty"` // "local", "google" or "ical"
}

// Minutes returns the block length in whole minutes.
func (b CalendarBlock) Minutes() int {
	return int(b.End.Sub(b.Start) / time.Minute)
}

func (b CalendarBlock) EffectiveStart() time.Time { return b.Start }
func (b CalendarBlock) EffectiveEnd() time.Time   { return b.End }
func (b CalendarBlock) Summary() string           { return b.Title }
