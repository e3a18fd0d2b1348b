package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lockinhq/liquid/pkg/schedule"
)

const (
	xdgAppName = "liquid"
	configFile = "config.json"
)

// Config is the on-disk app configuration. Scheduling fields override the
// stock constants; zero values keep the defaults.
type Config struct {
	Calendar    string   `json:"calendar"`
	ICalSources []string `json:"ical_sources,omitempty"`

	MinGapMinutes         int `json:"min_gap_minutes,omitempty"`
	DayStartHour          int `json:"day_start_hour,omitempty"`
	DayEndHour            int `json:"day_end_hour,omitempty"`
	WorkEndHour           int `json:"work_end_hour,omitempty"`
	CalendarEndHour       int `json:"calendar_end_hour,omitempty"`
	TotalWorkMinutes      int `json:"total_work_minutes,omitempty"`
	DeepWorkTargetMinutes int `json:"deep_work_target_minutes,omitempty"`
}

// Scheduler folds the config overrides into a schedule.Config.
func (c *Config) Scheduler() schedule.Config {
	cfg := schedule.DefaultConfig()
	if c.MinGapMinutes > 0 {
		cfg.MinGapMinutes = c.MinGapMinutes
	}
	if c.DayStartHour > 0 {
		cfg.DayStartHour = c.DayStartHour
	}
	if c.DayEndHour > 0 {
		cfg.DayEndHour = c.DayEndHour
	}
	if c.WorkEndHour > 0 {
		cfg.WorkEndHour = c.WorkEndHour
	}
	if c.CalendarEndHour > 0 {
		cfg.CalendarEndHour = c.CalendarEndHour
	}
	if c.TotalWorkMinutes > 0 {
		cfg.TotalWorkMinutes = c.TotalWorkMinutes
	}
	if c.DeepWorkTargetMinutes > 0 {
		cfg.DeepWorkTargetMinutes = c.DeepWorkTargetMinutes
	}
	return cfg
}

func GetConfigPath() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName, configFile), nil
}

func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{Calendar: "Lock In"}, nil // Default
		}
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Calendar == "" {
		cfg.Calendar = "Lock In"
	}
	return &cfg, nil
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}
