package schedule

// Config carries every scheduling constant so nothing is hardcoded at call
// sites. Hours are in the local clock of the day being scheduled.
type Config struct {
	MinGapMinutes int // gaps shorter than this are never emitted
	DayStartHour  int // earliest hour the gap scan considers
	DayEndHour    int // end-of-day cutoff for the gap scan
	WorkEndHour   int // nominal end of workday; past it needs confirmation
	// CalendarEndHour is the hard cutoff. Blocks crossing it are rejected
	// outright, with no confirmation path.
	CalendarEndHour       int
	TotalWorkMinutes      int // weekly work-time budget
	DeepWorkTargetMinutes int
	MaxSuggestions        int
}

// DefaultConfig returns the stock Lock In scheduling parameters: an
// 08:00-22:00 schedulable day, 17:00 soft / 21:00 hard end of work, a
// 50-hour weekly budget and a 10-hour deep work target.
func DefaultConfig() Config {
	return Config{
		MinGapMinutes:         15,
		DayStartHour:          8,
		DayEndHour:            22,
		WorkEndHour:           17,
		CalendarEndHour:       21,
		TotalWorkMinutes:      3000,
		DeepWorkTargetMinutes: 600,
		MaxSuggestions:        3,
	}
}
