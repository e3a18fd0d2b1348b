package schedule

import (
	"errors"
	"strings"
	"testing"

	"github.com/lockinhq/liquid/pkg/model"
)

// 16:30 + 60min ends at 17:30, past the 17:00 workday: overtime, not an error.
func TestEvaluateOvertime(t *testing.T) {
	cfg := DefaultConfig()

	ev, err := Evaluate(cfg, at(16, 30), at(17, 30), nil, "")
	if err != nil {
		t.Fatalf("overtime must not be an error, got %v", err)
	}
	if !ev.Overtime {
		t.Error("expected the overtime flag")
	}
	if ev.Conflict != nil {
		t.Errorf("expected no conflict, got %+v", ev.Conflict)
	}
}

// 20:30 + 60min crosses the 21:00 hard cutoff: rejected with no confirmation path.
func TestEvaluateHardCutoff(t *testing.T) {
	cfg := DefaultConfig()

	_, err := Evaluate(cfg, at(20, 30), at(21, 30), nil, "")
	var cutoff *HardCutoffError
	if !errors.As(err, &cutoff) {
		t.Fatalf("expected HardCutoffError, got %v", err)
	}
	if !strings.Contains(cutoff.Error(), "9:00 PM") {
		t.Errorf("cutoff message should name the 9:00 PM cutoff, got %q", cutoff.Error())
	}

	// Starting at or after the cutoff hour is rejected too.
	if _, err := Evaluate(cfg, at(21, 0), at(21, 30), nil, ""); err == nil {
		t.Error("expected rejection for a start at the cutoff hour")
	}
}

// The hard cutoff wins regardless of overlap or overtime status.
func TestEvaluateHardCutoffPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	existing := []model.CalendarBlock{block("late", at(20, 0), at(22, 0))}

	_, err := Evaluate(cfg, at(20, 30), at(21, 30), existing, "")
	var cutoff *HardCutoffError
	if !errors.As(err, &cutoff) {
		t.Fatalf("expected HardCutoffError to take precedence over overlap, got %v", err)
	}
}

func TestEvaluateInvalidInterval(t *testing.T) {
	cfg := DefaultConfig()

	_, err := Evaluate(cfg, at(10, 0), at(10, 0), nil, "")
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval for zero-length interval, got %v", err)
	}
	_, err = Evaluate(cfg, at(11, 0), at(10, 0), nil, "")
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval for reversed interval, got %v", err)
	}
}

func TestEvaluateConflict(t *testing.T) {
	cfg := DefaultConfig()
	existing := []model.CalendarBlock{block("standup", at(9, 0), at(10, 0))}

	ev, err := Evaluate(cfg, at(9, 30), at(10, 30), existing, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Conflict == nil || ev.Conflict.ID != "standup" {
		t.Fatalf("expected conflict with standup, got %+v", ev.Conflict)
	}
	if ev.Overtime {
		t.Error("a morning block is not overtime")
	}
}

func TestEvaluateClean(t *testing.T) {
	cfg := DefaultConfig()
	existing := []model.CalendarBlock{block("standup", at(9, 0), at(10, 0))}

	ev, err := Evaluate(cfg, at(10, 0), at(11, 0), existing, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ev.Clean() {
		t.Errorf("touching endpoints should commit cleanly, got %+v", ev)
	}
}

func TestPromptsUseClockTimes(t *testing.T) {
	cfg := DefaultConfig()

	p := OverlapPrompt(at(9, 30), at(10, 30), block("standup", at(9, 0), at(10, 0)))
	for _, want := range []string{"9:30 AM", "10:30 AM", "standup"} {
		if !strings.Contains(p, want) {
			t.Errorf("overlap prompt missing %q: %q", want, p)
		}
	}

	p = OvertimePrompt(cfg, at(16, 30), at(17, 30))
	for _, want := range []string{"4:30 PM", "5:30 PM", "5:00 PM"} {
		if !strings.Contains(p, want) {
			t.Errorf("overtime prompt missing %q: %q", want, p)
		}
	}
}
