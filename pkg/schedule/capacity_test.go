package schedule

import (
	"testing"
	"time"

	"github.com/lockinhq/liquid/pkg/model"
)

func kindBlock(kind model.BlockKind, startH, minutes int) model.CalendarBlock {
	start := at(startH, 0)
	return model.CalendarBlock{
		ID:    string(kind),
		Start: start,
		End:   start.Add(time.Duration(minutes) * time.Minute),
		Kind:  kind,
	}
}

func TestComputeCapacity(t *testing.T) {
	cfg := DefaultConfig()
	blocks := []model.CalendarBlock{
		kindBlock(model.KindDeepWork, 9, 120),
		kindBlock(model.KindMeeting, 13, 45),
		kindBlock(model.KindExternal, 15, 30),
	}

	stats := ComputeCapacity(cfg, blocks)
	if stats.DeepWorkMinutes != 120 || stats.MeetingMinutes != 45 || stats.ExternalMinutes != 30 {
		t.Errorf("bad buckets: %+v", stats)
	}
	if want := cfg.TotalWorkMinutes - 195; stats.AvailableMinutes != want {
		t.Errorf("expected %d available minutes, got %d", want, stats.AvailableMinutes)
	}
	if stats.TargetMet {
		t.Error("120 deep work minutes should not meet a 600 minute target")
	}
}

func TestComputeCapacityTargetMet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DeepWorkTargetMinutes = 100

	stats := ComputeCapacity(cfg, []model.CalendarBlock{kindBlock(model.KindDeepWork, 9, 120)})
	if !stats.TargetMet {
		t.Error("expected deep work target met")
	}
}

// Available minutes never go negative, however overbooked the week is.
func TestComputeCapacityNeverNegative(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalWorkMinutes = 60

	stats := ComputeCapacity(cfg, []model.CalendarBlock{
		kindBlock(model.KindMeeting, 9, 300),
		kindBlock(model.KindDeepWork, 14, 300),
	})
	if stats.AvailableMinutes != 0 {
		t.Errorf("expected 0 available minutes, got %d", stats.AvailableMinutes)
	}
}

func TestComputeCapacityEmpty(t *testing.T) {
	cfg := DefaultConfig()
	stats := ComputeCapacity(cfg, nil)
	if stats.AvailableMinutes != cfg.TotalWorkMinutes {
		t.Errorf("an empty week has the full budget available, got %d", stats.AvailableMinutes)
	}
}
