package taskwarrior

import (
	"fmt"
	"strings"
	"time"

	"github.com/lockinhq/liquid/pkg/model"
	"github.com/lockinhq/liquid/pkg/util"
)

type CustomTime struct {
	time.Time
}

const taskwarriorTimeLayout = "20060102T150405Z" // YYYYMMDDTHHMMSSZ, 'Z' indicates UTC

// UnmarshalJSON implements the json.Unmarshaler interface for CustomTime.
func (ct *CustomTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "0" {
		ct.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(taskwarriorTimeLayout, s)
	if err != nil {
		return fmt.Errorf("failed to parse Taskwarrior time string '%s': %w", s, err)
	}
	ct.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface for CustomTime.
func (ct CustomTime) MarshalJSON() ([]byte, error) {
	if ct.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + ct.Time.Format(taskwarriorTimeLayout) + `"`), nil
}

// Task is the taskwarrior JSON export shape. Only the fields the scheduler
// needs are mapped; the estimate UDA is expected under the "est" label as an
// ISO 8601 duration.
type Task struct {
	UUID        string      `json:"uuid"`
	Description string      `json:"description"`
	Due         *CustomTime `json:"due,omitempty"`
	Scheduled   *CustomTime `json:"scheduled,omitempty"`
	Status      string      `json:"status"`
	Project     string      `json:"project,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Est         string      `json:"est,omitempty"` // ISO 8601 duration, e.g. PT1H30M
}

// ToScheduled converts an exported task into the scheduler's task model.
// Times come back in the local zone; interval math runs in one zone per
// computation.
func (t Task) ToScheduled() model.ScheduledTask {
	st := model.ScheduledTask{
		ID:     t.UUID,
		Title:  t.Description,
		Status: t.Status,
		Source: "taskwarrior",
	}
	if t.Scheduled != nil && !t.Scheduled.IsZero() {
		local := t.Scheduled.Local()
		st.ScheduledStart = &local
	}
	if t.Due != nil && !t.Due.IsZero() {
		local := t.Due.Local()
		st.DueDate = &local
	}
	if est, err := util.ParseDuration(t.Est); err == nil && est > 0 {
		st.EstimatedMinutes = int(est / time.Minute)
	}
	return st
}
