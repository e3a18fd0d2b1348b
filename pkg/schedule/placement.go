package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/lockinhq/liquid/pkg/model"
)

// ErrInvalidInterval rejects candidates whose end does not come after their
// start. Such intervals are never silently fixed by swapping or padding.
var ErrInvalidInterval = errors.New("block end must be after its start")

// HardCutoffError means a candidate block crosses the absolute calendar
// cutoff. There is no confirmation path; the operation is aborted.
type HardCutoffError struct {
	Start      time.Time
	End        time.Time
	CutoffHour int
}

func (e *HardCutoffError) Error() string {
	return fmt.Sprintf("block %s - %s runs past the %s calendar cutoff",
		Clock(e.Start), Clock(e.End), Clock(hourOn(e.Start, e.CutoffHour)))
}

// Evaluation is the outcome of checking a candidate interval that was not
// hard-rejected. A non-nil Conflict and/or Overtime each require an explicit
// user confirmation before the block may be committed; conflict is always
// resolved first.
type Evaluation struct {
	Conflict *model.CalendarBlock
	Overtime bool
}

// Clean reports that the candidate can be committed with no confirmation.
func (ev Evaluation) Clean() bool { return ev.Conflict == nil && !ev.Overtime }

// Evaluate runs a candidate or moved block [start, end) through the
// placement policy in its fixed order: invalid interval, hard cutoff,
// overlap, overtime. Only the first two are errors; the rest is reported in
// the Evaluation for the caller to confirm.
func Evaluate(cfg Config, start, end time.Time, existing []model.CalendarBlock, excludeID string) (Evaluation, error) {
	if !end.After(start) {
		return Evaluation{}, fmt.Errorf("%w: start %s, end %s", ErrInvalidInterval, Clock(start), Clock(end))
	}

	cutoff := hourOn(start, cfg.CalendarEndHour)
	if start.Hour() >= cfg.CalendarEndHour || end.After(cutoff) {
		return Evaluation{}, &HardCutoffError{Start: start, End: end, CutoffHour: cfg.CalendarEndHour}
	}

	ev := Evaluation{
		Conflict: firstOverlap(start, end, existing, excludeID),
		Overtime: end.After(hourOn(start, cfg.WorkEndHour)),
	}
	return ev, nil
}

// Clock renders a time the way prompts show it, in 12-hour clock format.
func Clock(t time.Time) string {
	return t.Format("3:04 PM")
}

// OverlapPrompt phrases the conflict confirmation with the specific times
// involved rather than an error code.
func OverlapPrompt(start, end time.Time, conflict model.CalendarBlock) string {
	return fmt.Sprintf("%s - %s overlaps %q (%s - %s). Schedule anyway?",
		Clock(start), Clock(end), conflict.Title, Clock(conflict.Start), Clock(conflict.End))
}

// OvertimePrompt phrases the overtime confirmation.
func OvertimePrompt(cfg Config, start, end time.Time) string {
	return fmt.Sprintf("%s - %s ends after your %s workday. Work overtime?",
		Clock(start), Clock(end), Clock(hourOn(start, cfg.WorkEndHour)))
}
