// Package orgmode parses Org-mode reading lists into queue items. Headings
// tagged :read:, :watch: or :listen: are considered deferred content; the
// :EFFORT: property becomes the duration estimate.
package orgmode

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/lockinhq/liquid/pkg/model"
)

var (
	headingRegex = regexp.MustCompile(`^\* (TODO|DONE)\s+(.*?)(?:\s+(:(\w+(:\w+)*):))?\s*$`)
	effortRegex  = regexp.MustCompile(`:EFFORT:\s+(\d+):(\d{2})`)
	idRegex      = regexp.MustCompile(`:ID:\s+([a-fA-F0-9-]+)`)
	urlRegex     = regexp.MustCompile(`:URL:\s+(\S+)`)
)

var queueTags = map[string]bool{"read": true, "watch": true, "listen": true}

// ParseFiles parses multiple Org-mode files and returns the queue items
// found across all of them.
func ParseFiles(filePaths []string) ([]model.QueueItem, error) {
	var all []model.QueueItem
	for _, filePath := range filePaths {
		items, err := parseFile(filePath)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	return all, nil
}

func parseFile(filePath string) ([]model.QueueItem, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file)
}

// Parse reads an Org-mode document and returns its queue items. Headings
// without a queue tag are ignored; an entry is emitted when its property
// drawer closes.
func Parse(r io.Reader) ([]model.QueueItem, error) {
	scanner := bufio.NewScanner(r)
	var items []model.QueueItem
	var current *model.QueueItem
	var tagged bool

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if matches := headingRegex.FindStringSubmatch(line); len(matches) > 0 {
			current = &model.QueueItem{
				Title:     strings.TrimSpace(matches[2]),
				Completed: matches[1] == "DONE",
			}
			tagged = false
			for _, tag := range strings.Split(strings.Trim(matches[3], ":"), ":") {
				if queueTags[strings.ToLower(tag)] {
					tagged = true
					break
				}
			}
			continue
		}

		if current == nil {
			continue
		}
		if matches := effortRegex.FindStringSubmatch(line); len(matches) > 0 {
			hours, _ := strconv.Atoi(matches[1])
			mins, _ := strconv.Atoi(matches[2])
			total := hours*60 + mins
			if total > 0 {
				current.EstimatedMinutes = &total
			}
		} else if matches := idRegex.FindStringSubmatch(line); len(matches) > 0 {
			current.ID = matches[1]
		} else if matches := urlRegex.FindStringSubmatch(line); len(matches) > 0 {
			current.URL = matches[1]
		}

		if strings.HasPrefix(line, ":END:") {
			if tagged && current.Title != "" {
				items = append(items, *current)
			}
			current = nil
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
