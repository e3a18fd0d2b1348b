package schedule

import "github.com/lockinhq/liquid/pkg/model"

// ComputeCapacity sums scheduled minutes per block kind and derives the
// remaining capacity against the configured work-time budget. It is pure and
// recomputed from whatever block set it is handed, so it can never go stale
// relative to that set.
func ComputeCapacity(cfg Config, blocks []model.CalendarBlock) model.CapacityStats {
	var stats model.CapacityStats
	for _, b := range blocks {
		switch b.Kind {
		case model.KindDeepWork:
			stats.DeepWorkMinutes += b.Minutes()
		case model.KindMeeting:
			stats.MeetingMinutes += b.Minutes()
		default:
			stats.ExternalMinutes += b.Minutes()
		}
	}

	used := stats.DeepWorkMinutes + stats.MeetingMinutes + stats.ExternalMinutes
	stats.AvailableMinutes = cfg.TotalWorkMinutes - used
	if stats.AvailableMinutes < 0 {
		stats.AvailableMinutes = 0
	}
	stats.TargetMet = stats.DeepWorkMinutes >= cfg.DeepWorkTargetMinutes
	return stats
}
