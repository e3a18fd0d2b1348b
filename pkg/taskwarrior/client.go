package taskwarrior

import (
	"encoding/json"
	"fmt"
	"io"
	"os/exec"

	"github.com/lockinhq/liquid/pkg/model"
)

type Client struct{}

func NewClient() *Client {
	return &Client{}
}

// GetTasks runs `task export` with the given filter and converts the result
// for the scheduler.
func (c *Client) GetTasks(filter []string) ([]model.ScheduledTask, error) {
	args := append(filter, "export", "rc.hooks=0")
	cmd := exec.Command("task", args...)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("taskwarrior command failed: exit code %d, %s, stderr: %s",
				exitErr.ExitCode(), err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("taskwarrior command failed: %w", err)
	}

	var tasks []Task
	if err := json.Unmarshal(output, &tasks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal taskwarrior output: %w", err)
	}
	return convert(tasks), nil
}

// ParseTasks decodes a stream of task JSON objects (e.g. piped export
// output) and converts them for the scheduler.
func (c *Client) ParseTasks(r io.Reader) ([]model.ScheduledTask, error) {
	var tasks []Task
	decoder := json.NewDecoder(r)
	for {
		var task Task
		if err := decoder.Decode(&task); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to decode task json: %w", err)
		}
		tasks = append(tasks, task)
	}
	return convert(tasks), nil
}

func convert(tasks []Task) []model.ScheduledTask {
	out := make([]model.ScheduledTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ToScheduled())
	}
	return out
}
