package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lockinhq/liquid/pkg/auth"
	"github.com/lockinhq/liquid/pkg/colors"
	"github.com/lockinhq/liquid/pkg/config"
	"github.com/lockinhq/liquid/pkg/google"
	"github.com/lockinhq/liquid/pkg/ical"
	"github.com/lockinhq/liquid/pkg/index"
	"github.com/lockinhq/liquid/pkg/model"
	"github.com/lockinhq/liquid/pkg/orgmode"
	"github.com/lockinhq/liquid/pkg/planner"
	"github.com/lockinhq/liquid/pkg/queue"
	"github.com/lockinhq/liquid/pkg/schedule"
	"github.com/lockinhq/liquid/pkg/store"
	"github.com/lockinhq/liquid/pkg/taskwarrior"
)

func main() {
	// 1. Parse Flags
	dateFlag := flag.String("date", "", "Day to schedule (2006-01-02, default today)")
	calendarName := flag.String("calendar", "", "Google Calendar name to sync with (overrides config)")
	setCalendar := flag.String("set-calendar", "", "Set the default Google Calendar name")
	doAuth := flag.Bool("auth", false, "Authenticate with Google Calendar")
	remote := flag.Bool("remote", false, "Include Google Calendar and iCal feeds in the timeline")
	withTasks := flag.Bool("tasks", false, "Include taskwarrior tasks in the timeline")

	gaps := flag.Bool("gaps", false, "List free gaps for the day")
	agenda := flag.Bool("agenda", false, "Show gaps with content suggestions (default mode)")
	capacity := flag.Bool("capacity", false, "Show weekly capacity stats")
	listBlocks := flag.Bool("list", false, "List blocks")

	addTitle := flag.String("add", "", "Create a block with this title (needs -start and -duration)")
	kindFlag := flag.String("kind", string(model.KindDeepWork), "Block kind: deep_work, meeting or external")
	moveID := flag.String("move", "", "Move the block with this id (needs -start and -duration)")
	startFlag := flag.String("start", "", "Block start time (15:04)")
	durationFlag := flag.String("duration", "1h", "Block duration (e.g. 45m, 1h30m)")
	deleteID := flag.String("delete", "", "Delete the block with this id")
	syncCal := flag.Bool("sync", false, "Push local blocks to Google Calendar")

	queueAdd := flag.String("queue-add", "", "Queue an item with this title")
	queueURL := flag.String("url", "", "URL for -queue-add")
	queueEst := flag.String("estimate", "", "Duration estimate for -queue-add (e.g. 25m)")
	queueList := flag.Bool("queue", false, "List queue items")
	queueSchedule := flag.String("queue-schedule", "", "Reserve the queue item with this id for a slot (needs -start)")
	queueDone := flag.String("queue-done", "", "Mark the queue item with this id completed")
	suggestMin := flag.Int("suggest", 0, "Suggest queue items fitting a gap of this many minutes")
	importOrg := flag.String("import-org", "", "Import reading-list items from Org files (comma separated)")
	sweep := flag.Bool("sweep", false, "Re-float stale scheduled queue items")
	flag.Parse()

	// 2. Handle Set Calendar
	if *setCalendar != "" {
		cfg, err := config.Load()
		if err != nil {
			cfg = &config.Config{}
		}
		cfg.Calendar = *setCalendar
		if err := config.Save(cfg); err != nil {
			log.Fatalf("Error saving config: %v", err)
		}
		fmt.Printf("Default calendar set to: %s\n", *setCalendar)
		return
	}

	// 3. Handle Authentication
	if *doAuth {
		ctx := context.Background()
		xdgConfigBase, err := auth.GetXdgHome()
		if err != nil {
			log.Fatalf("could not find path to configuration file: error %v", err)
		}

		tokenFile := filepath.Join(xdgConfigBase, auth.TokenFile)
		if _, err := os.Stat(tokenFile); err == nil {
			log.Printf("Removing existing token file at '%s'\n", tokenFile)
			if err := os.Remove(tokenFile); err != nil {
				log.Fatalf("could not delete token file '%s', error %v. Please delete it manually", tokenFile, err)
			}
		}

		if _, err := auth.GetCalendarService(ctx); err != nil {
			log.Fatalf("Authentication failed: %v", err)
		}
		log.Printf("Authentication successful! Token saved to %s", auth.TokenFile)
		return
	}

	// 4. Load config and state
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *calendarName != "" {
		appCfg.Calendar = *calendarName
	}
	schedCfg := appCfg.Scheduler()

	blockStore, err := store.New()
	if err != nil {
		log.Fatalf("Error opening block store: %v", err)
	}
	queueStore, err := queue.New()
	if err != nil {
		log.Fatalf("Error opening queue: %v", err)
	}

	date := time.Now()
	if *dateFlag != "" {
		date, err = time.ParseInLocation("2006-01-02", *dateFlag, time.Local)
		if err != nil {
			log.Fatalf("Invalid -date %q: %v", *dateFlag, err)
		}
	}

	// 5. Queue maintenance modes
	if *queueAdd != "" {
		var est *int
		if *queueEst != "" {
			d, err := time.ParseDuration(*queueEst)
			if err != nil {
				log.Fatalf("Invalid -estimate %q: %v", *queueEst, err)
			}
			minutes := int(d / time.Minute)
			est = &minutes
		}
		item := queueStore.Add(*queueAdd, *queueURL, est)
		if err := queueStore.Save(); err != nil {
			log.Fatalf("Error saving queue: %v", err)
		}
		fmt.Printf("Queued %q (%s)\n", item.Title, item.ID)
		return
	}
	if *importOrg != "" {
		items, err := orgmode.ParseFiles(strings.Split(*importOrg, ","))
		if err != nil {
			log.Fatalf("Error parsing org files: %v", err)
		}
		added := 0
		for _, item := range items {
			if item.Completed {
				continue
			}
			queueStore.Add(item.Title, item.URL, item.EstimatedMinutes)
			added++
		}
		if err := queueStore.Save(); err != nil {
			log.Fatalf("Error saving queue: %v", err)
		}
		fmt.Printf("Imported %d queue items\n", added)
		return
	}
	if *sweep {
		swept := queueStore.Sweep(time.Now())
		if err := queueStore.Save(); err != nil {
			log.Fatalf("Error saving queue: %v", err)
		}
		for _, item := range swept {
			fmt.Printf("Re-floated %q\n", item.Title)
		}
		fmt.Printf("%d items back in the pool\n", len(swept))
		return
	}
	if *queueSchedule != "" {
		slot, _ := parseInterval(date, *startFlag, "0m")
		if err := queueStore.MarkScheduled(*queueSchedule, slot); err != nil {
			log.Fatalf("Could not reserve queue item: %v", err)
		}
		if err := queueStore.Save(); err != nil {
			log.Fatalf("Error saving queue: %v", err)
		}
		fmt.Printf("Reserved %s for %s\n", *queueSchedule, schedule.Clock(slot))
		return
	}
	if *queueDone != "" {
		if err := queueStore.Complete(*queueDone); err != nil {
			log.Fatalf("Could not complete queue item: %v", err)
		}
		if err := queueStore.Save(); err != nil {
			log.Fatalf("Error saving queue: %v", err)
		}
		fmt.Printf("Completed %s\n", *queueDone)
		return
	}
	if *queueList {
		for _, item := range queueStore.List() {
			state := "open"
			if item.Completed {
				state = "done"
			} else if !item.ScheduledFor.IsZero() {
				state = "scheduled " + schedule.Clock(item.ScheduledFor)
			}
			fmt.Printf("%s  %-40q %s %s\n", item.ID, item.Title, estimateLabel(item), state)
		}
		return
	}
	if *suggestMin > 0 {
		for _, item := range schedule.SuggestForGap(queueStore.List(), *suggestMin, schedCfg.MaxSuggestions) {
			fmt.Printf("%s  %s %s\n", item.ID, item.Title, estimateLabel(item))
		}
		return
	}

	// 6. Block mutation modes go through the planner with a terminal gate.
	confirm := terminalConfirmer()
	p, err := planner.New(schedCfg, blockStore, confirm)
	if err != nil {
		log.Fatalf("Error initializing planner: %v", err)
	}

	if *addTitle != "" {
		start, end := parseInterval(date, *startFlag, *durationFlag)
		b, err := p.Create(*addTitle, model.BlockKind(*kindFlag), start, end)
		if err != nil {
			log.Fatalf("Could not create block: %v", err)
		}
		fmt.Printf("Created %q %s - %s (%s)\n", b.Title, schedule.Clock(b.Start), schedule.Clock(b.End), b.ID)
		return
	}

	if *moveID != "" {
		start, end := parseInterval(date, *startFlag, *durationFlag)
		if _, err := p.RequestMove(*moveID, start, end); err != nil {
			log.Fatalf("Could not move block: %v", err)
		}
		if pm := p.Pending(*moveID); pm != nil {
			prompt := schedule.OvertimePrompt(schedCfg, pm.NewStart, pm.NewEnd)
			if confirm.Confirm(prompt) {
				if err := p.ConfirmMove(*moveID); err != nil {
					log.Fatalf("Could not commit move: %v", err)
				}
			} else {
				if err := p.CancelMove(*moveID); err != nil {
					log.Fatalf("Could not cancel move: %v", err)
				}
				fmt.Println("Move cancelled")
				return
			}
		}
		fmt.Printf("Moved %s to %s - %s\n", *moveID, schedule.Clock(start), schedule.Clock(end))
		return
	}

	if *deleteID != "" {
		if err := p.Delete(*deleteID); err != nil {
			log.Fatalf("Could not delete block: %v", err)
		}
		fmt.Printf("Deleted %s\n", *deleteID)
		return
	}

	// 7. Read modes
	blocks := p.Blocks()
	if *remote {
		// Synced events carry the local block id, so a mirrored block shows
		// up on both sides; the local copy wins.
		seen := make(map[string]bool, len(blocks))
		for _, b := range blocks {
			seen[b.ID] = true
		}
		for _, b := range remoteBlocks(appCfg, date) {
			if !seen[b.ID] {
				blocks = append(blocks, b)
			}
		}
	}

	var tasks []model.ScheduledTask
	if *withTasks {
		tasks, err = taskwarrior.NewClient().GetTasks([]string{"status:pending"})
		if err != nil {
			log.Printf("Warning: could not read taskwarrior tasks: %v", err)
		}
	}

	if *listBlocks {
		for _, b := range blocks {
			fmt.Printf("%s  %-30q %s - %s [%s]\n", b.ID, b.Title, schedule.Clock(b.Start), schedule.Clock(b.End), b.Kind)
		}
		return
	}

	if *capacity {
		stats := schedule.ComputeCapacity(schedCfg, blocks)
		fmt.Printf("Deep work: %s\n", minutesLabel(stats.DeepWorkMinutes))
		fmt.Printf("Meetings:  %s\n", minutesLabel(stats.MeetingMinutes))
		fmt.Printf("External:  %s\n", minutesLabel(stats.ExternalMinutes))
		fmt.Printf("Available: %s\n", minutesLabel(stats.AvailableMinutes))
		if stats.TargetMet {
			fmt.Println("Deep work target met")
		} else {
			fmt.Printf("Deep work target: %s to go\n", minutesLabel(schedCfg.DeepWorkTargetMinutes-stats.DeepWorkMinutes))
		}
		return
	}

	if *syncCal {
		syncBlocks(appCfg.Calendar, blocks)
		return
	}

	// Default: gaps, optionally with suggestions.
	timeline := schedule.BuildTimeline(blocks, tasks, date)
	dayGaps := schedule.FindGaps(schedCfg, timeline, date, time.Now())
	if len(dayGaps) == 0 {
		fmt.Println("No free gaps")
		return
	}

	suggest := *agenda || !*gaps
	for _, g := range dayGaps {
		fmt.Printf("%s - %s  (%dm)  %s\n", schedule.Clock(g.Start), schedule.Clock(g.End), g.DurationMinutes, g.Label)
		if !suggest {
			continue
		}
		for _, item := range schedule.SuggestForGap(queueStore.List(), g.DurationMinutes, schedCfg.MaxSuggestions) {
			fmt.Printf("    · %s %s\n", item.Title, estimateLabel(item))
		}
	}
}

// terminalConfirmer asks on stdin and fails closed on anything but an
// explicit yes.
func terminalConfirmer() schedule.Confirmer {
	reader := bufio.NewReader(os.Stdin)
	return schedule.ConfirmFunc(func(prompt string) bool {
		fmt.Printf("%s [y/N] ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})
}

func parseInterval(date time.Time, startStr, durationStr string) (time.Time, time.Time) {
	if startStr == "" {
		log.Fatalf("-start is required (15:04)")
	}
	clock, err := time.Parse("15:04", startStr)
	if err != nil {
		log.Fatalf("Invalid -start %q: %v", startStr, err)
	}
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Fatalf("Invalid -duration %q: %v", durationStr, err)
	}
	start := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
	return start, start.Add(duration)
}

// remoteBlocks pulls the day's events from Google Calendar and any
// configured iCal feeds. Failures are warnings; local state still renders.
func remoteBlocks(appCfg *config.Config, date time.Time) []model.CalendarBlock {
	var out []model.CalendarBlock

	evtIndex, err := index.New()
	if err != nil {
		log.Printf("Warning: failed to initialize event index: %v", err)
	}
	palette, err := colors.NewPalette()
	if err != nil {
		log.Printf("Warning: could not load color palette: %v", err)
	}

	gClient, err := google.NewClient(appCfg.Calendar, evtIndex, palette)
	if err != nil {
		log.Printf("Warning: Google Calendar unavailable: %v", err)
	} else {
		blocks, err := gClient.ListBlocks(date)
		if err != nil {
			log.Printf("Warning: could not list calendar events: %v", err)
		} else {
			out = append(out, blocks...)
		}
	}

	for _, url := range appCfg.ICalSources {
		blocks, err := ical.FetchBlocks(url, date)
		if err != nil {
			log.Printf("Warning: could not fetch iCal feed %s: %v", url, err)
			continue
		}
		out = append(out, blocks...)
	}
	return out
}

// syncBlocks mirrors local blocks to Google Calendar, then prunes index
// mappings for blocks that no longer exist.
func syncBlocks(calendarName string, blocks []model.CalendarBlock) {
	evtIndex, err := index.New()
	if err != nil {
		log.Fatalf("Error initializing event index: %v", err)
	}
	palette, err := colors.NewPalette()
	if err != nil {
		log.Printf("Warning: could not load color palette: %v", err)
	}
	gClient, err := google.NewClient(calendarName, evtIndex, palette)
	if err != nil {
		log.Fatalf("Error creating Google Calendar client: %v", err)
	}

	valid := make(map[string]bool)
	for _, b := range blocks {
		if b.Source != "local" {
			continue
		}
		valid[b.ID] = true
		if _, err := gClient.SyncBlock(b); err != nil {
			log.Printf("Error syncing block %s: %v", b.ID, err)
		}
	}
	evtIndex.Prune(valid)
	if err := evtIndex.Save(); err != nil {
		log.Printf("Warning: failed to save event index: %v", err)
	}
	fmt.Printf("Synced %d blocks to %q\n", len(valid), calendarName)
}

func estimateLabel(item model.QueueItem) string {
	if item.EstimatedMinutes == nil {
		return "(?)"
	}
	return fmt.Sprintf("(%dm)", *item.EstimatedMinutes)
}

func minutesLabel(minutes int) string {
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
