package planning

import (
	"fmt"
	"strings"
)

// NoScheduledActivity decorates slots that have no timeline entry.
const NoScheduledActivity = "No scheduled activity"

const (
	minStepMinutes = 1
	maxStepMinutes = 60
)

var dashes = strings.NewReplacer("–", "-", "—", "-")

// TimeSlot is one row of an event schedule grid.
type TimeSlot struct {
	Minute     int      `json:"minute"`
	Label      string   `json:"label"`
	Activities []string `json:"activities"`
	Scheduled  bool     `json:"scheduled"`
}

// ClampStep limits a grid step to [1, 60] minutes.
func ClampStep(step int) int {
	if step < minStepMinutes {
		return minStepMinutes
	}
	if step > maxStepMinutes {
		return maxStepMinutes
	}
	return step
}

// ParseRange parses "6:00 pm - 11:00 pm". An end at or before the start is
// taken to be after midnight and returned as end+1440.
func ParseRange(text string) (start, end int, err error) {
	from, to, ok := strings.Cut(dashes.Replace(text), "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: range %q has no separator", ErrUnparsableTime, text)
	}
	if start, err = ParseClock(from); err != nil {
		return 0, 0, fmt.Errorf("range start: %w", err)
	}
	if end, err = ParseClock(to); err != nil {
		return 0, 0, fmt.Errorf("range end: %w", err)
	}
	if end <= start {
		end += MinutesPerDay
	}
	return start, end, nil
}

// BuildGrid emits one slot every step minutes from start through end
// inclusive and decorates each with the activities noted at that minute.
// Slots past midnight also pick up hints recorded against the wall clock.
func BuildGrid(start, end, step int, timeline Timeline) []TimeSlot {
	step = ClampStep(step)
	if end < start {
		end += MinutesPerDay
	}

	slots := make([]TimeSlot, 0, (end-start)/step+1)
	for t := start; t <= end; t += step {
		activities := append([]string(nil), timeline.At(t)...)
		if t >= MinutesPerDay {
			activities = append(activities, timeline.At(t%MinutesPerDay)...)
		}
		slot := TimeSlot{
			Minute:     t,
			Label:      FormatClock(t),
			Activities: activities,
			Scheduled:  len(activities) > 0,
		}
		if !slot.Scheduled {
			slot.Activities = []string{NoScheduledActivity}
		}
		slots = append(slots, slot)
	}
	return slots
}
