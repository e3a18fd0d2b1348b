package schedule

import (
	"time"

	"github.com/lockinhq/liquid/pkg/model"
)

// HasOverlap reports whether the half-open candidate interval [start, end)
// intersects any existing block. Touching endpoints do not count. The block
// matching excludeID is skipped so a block can be checked against the set
// while it is being moved or resized.
func HasOverlap(start, end time.Time, blocks []model.CalendarBlock, excludeID string) bool {
	return firstOverlap(start, end, blocks, excludeID) != nil
}

func firstOverlap(start, end time.Time, blocks []model.CalendarBlock, excludeID string) *model.CalendarBlock {
	for i := range blocks {
		b := &blocks[i]
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if start.Before(b.End) && b.Start.Before(end) {
			return b
		}
	}
	return nil
}
