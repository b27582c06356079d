package planning

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of the wall-clock day.
const MinutesPerDay = 24 * 60

const clock = `(\d{1,2}):([0-5]\d)\s*([ap])\.?\s?m\b\.?`

var (
	clockPattern = regexp.MustCompile(`(?i)\b` + clock)

	// Bullet or ordinal at the start of a run-of-show line, with the dash
	// that may follow it: "1.", "2)", "3) -", "1 -", "2 –", "#3", "#3 -",
	// "-", "*", "•". A leading clock ("5:30 pm") is not a marker.
	markerPrefix = regexp.MustCompile(`^\s*(?:\d{1,3}[.)](?:\s*[-–—])?\s+|\d{1,3}\s*[-–—]\s*|#\d+(?:\s*[-–—])?\s*|[-*•·]+\s*)`)

	// Leading time or time range and the separator that follows it.
	timePrefix = regexp.MustCompile(`(?i)^\s*` + clock + `(?:\s*(?:-|–|—|to)\s*` + clock + `)?\s*(?:[-–—:|,]\s*)?`)
)

// TimelineHint is an activity extracted from run-of-show text.
type TimelineHint struct {
	Minute      int    `json:"minute"`
	Description string `json:"description"`
}

// Timeline maps a minute of the day to the activities noted at that minute.
type Timeline map[int][]string

// At returns the activities noted at minute.
func (t Timeline) At(minute int) []string {
	return t[minute]
}

// Hints flattens the timeline in minute order.
func (t Timeline) Hints() []TimelineHint {
	minutes := make([]int, 0, len(t))
	for m := range t {
		minutes = append(minutes, m)
	}
	sort.Ints(minutes)

	hints := make([]TimelineHint, 0, len(minutes))
	for _, m := range minutes {
		for _, d := range t[m] {
			hints = append(hints, TimelineHint{Minute: m, Description: d})
		}
	}
	return hints
}

// Add records description at minute, once.
func (t Timeline) Add(minute int, description string) {
	for _, d := range t[minute] {
		if d == description {
			return
		}
	}
	t[minute] = append(t[minute], description)
}

// ExtractTimeline scans free-text values for "H:MM am|pm" mentions. A value
// with several mentions is listed under each of them; a value with none
// contributes nothing.
func ExtractTimeline(values ...string) Timeline {
	timeline := make(Timeline)
	for _, value := range values {
		matches := clockPattern.FindAllStringSubmatch(value, -1)
		if len(matches) == 0 {
			continue
		}
		description := describe(value)
		for _, m := range matches {
			minute, ok := clockMinute(m[1], m[2], m[3])
			if !ok {
				continue
			}
			timeline.Add(minute, description)
		}
	}
	return timeline
}

// ParseClock returns the minute of day of the first "H:MM am|pm" in s.
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, s)
	}
	minute, ok := clockMinute(m[1], m[2], m[3])
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableTime, s)
	}
	return minute, nil
}

// FormatClock renders minute (taken mod 1440) as "h:mm AM".
func FormatClock(minute int) string {
	minute %= MinutesPerDay
	if minute < 0 {
		minute += MinutesPerDay
	}
	hour, mins := minute/60, minute%60
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, mins, suffix)
}

func clockMinute(hourText, minuteText, meridiem string) (int, bool) {
	hour, err := strconv.Atoi(hourText)
	if err != nil || hour > 12 {
		return 0, false
	}
	mins, err := strconv.Atoi(minuteText)
	if err != nil || mins > 59 {
		return 0, false
	}
	hour %= 12
	if strings.EqualFold(meridiem, "p") {
		hour += 12
	}
	return hour*60 + mins, true
}

func describe(value string) string {
	raw := strings.TrimSpace(value)
	s := markerPrefix.ReplaceAllString(raw, "")
	s = timePrefix.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return raw
	}
	return s
}
