package config

import "testing"

func TestSchedulerDefaults(t *testing.T) {
	cfg := &Config{}
	sc := cfg.Scheduler()
	if sc.MinGapMinutes != 15 || sc.WorkEndHour != 17 || sc.CalendarEndHour != 21 {
		t.Errorf("empty config must keep defaults, got %+v", sc)
	}
	if sc.TotalWorkMinutes != 3000 || sc.DeepWorkTargetMinutes != 600 {
		t.Errorf("bad capacity defaults: %+v", sc)
	}
}

func TestSchedulerOverrides(t *testing.T) {
	cfg := &Config{WorkEndHour: 18, TotalWorkMinutes: 2400, MinGapMinutes: 10}
	sc := cfg.Scheduler()
	if sc.WorkEndHour != 18 || sc.TotalWorkMinutes != 2400 || sc.MinGapMinutes != 10 {
		t.Errorf("overrides not applied: %+v", sc)
	}
	if sc.CalendarEndHour != 21 {
		t.Errorf("untouched fields must keep defaults, got %+v", sc)
	}
}
