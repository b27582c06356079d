package planning

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"banquetprep/internal/models"
)

// DefaultStepMinutes is the schedule grid step used when none is configured.
const DefaultStepMinutes = 30

// DivisionTask is one line on a division prep sheet.
type DivisionTask struct {
	Division         string  `json:"division"`
	Title            string  `json:"title"`
	Quantity         float64 `json:"quantity"`
	Unit             string  `json:"unit,omitempty"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	EventID          string  `json:"event_id"`
}

// DivisionSheet is the prep sheet printed for one division.
type DivisionSheet struct {
	Division              string         `json:"division"`
	Tasks                 []DivisionTask `json:"tasks"`
	TotalEstimatedMinutes int            `json:"total_estimated_minutes"`
}

// Omission records an event left out of a day plan and why.
type Omission struct {
	EventID string `json:"event_id"`
	Name    string `json:"name"`
	Reason  string `json:"reason"`
}

// EventPlan is the schedule grid of one event in a day plan.
type EventPlan struct {
	EventID   string     `json:"event_id"`
	Name      string     `json:"name"`
	TimeRange string     `json:"time_range"`
	Start     int        `json:"start"`
	End       int        `json:"end"`
	Slots     []TimeSlot `json:"slots"`
	Warnings  []string   `json:"warnings"`
}

// DayPlan is everything the kitchen prints for one calendar day.
type DayPlan struct {
	Date      string          `json:"date"`
	Sheets    []DivisionSheet `json:"sheets"`
	Events    []EventPlan     `json:"events"`
	Omissions []Omission      `json:"omissions"`
}

// Sheet returns the sheet for division, or nil.
func (p *DayPlan) Sheet(division string) *DivisionSheet {
	for i := range p.Sheets {
		if p.Sheets[i].Division == division {
			return &p.Sheets[i]
		}
	}
	return nil
}

// DocumentLoader loads the banquet event order linked to an event.
type DocumentLoader interface {
	LoadDocument(ctx context.Context, documentID string) (*models.BanquetOrder, error)
}

// TaskGenerator derives the prep tasks an event needs from its document.
type TaskGenerator interface {
	Tasks(ctx context.Context, event models.Event, doc *models.BanquetOrder) ([]DivisionTask, error)
}

// Aggregator builds division sheets for a day's events.
type Aggregator struct {
	Loader      DocumentLoader
	Generator   TaskGenerator
	StepMinutes int
	Log         *slog.Logger
}

// Aggregate groups the tasks of every event on day by division. An event
// that cannot be loaded or expanded is recorded as an omission and the rest
// of the day is still planned.
func (a *Aggregator) Aggregate(ctx context.Context, day time.Time, events []models.Event) *DayPlan {
	log := a.Log
	if log == nil {
		log = slog.Default()
	}
	step := a.StepMinutes
	if step == 0 {
		step = DefaultStepMinutes
	}

	plan := &DayPlan{
		Date:      day.Format(models.DateLayout),
		Sheets:    []DivisionSheet{},
		Events:    []EventPlan{},
		Omissions: []Omission{},
	}
	index := make(map[string]int)

	omit := func(ev models.Event, reason string, err error) {
		attrs := []any{"event_id", ev.EventID, "date", plan.Date, "reason", reason}
		if err != nil {
			attrs = append(attrs, "error", err)
			reason = reason + ": " + err.Error()
		}
		log.Warn("Event omitted from division sheets", attrs...)
		plan.Omissions = append(plan.Omissions, Omission{EventID: ev.EventID, Name: ev.Name, Reason: reason})
	}

	for _, ev := range events {
		if !ev.OnDate(day) {
			continue
		}
		if ev.DocumentID == "" {
			omit(ev, "no linked document", nil)
			continue
		}
		doc, err := a.Loader.LoadDocument(ctx, ev.DocumentID)
		if err != nil {
			omit(ev, "document could not be loaded", err)
			continue
		}
		tasks, err := a.Generator.Tasks(ctx, ev, doc)
		if err != nil {
			omit(ev, "tasks could not be generated", err)
			continue
		}

		for _, task := range tasks {
			division := strings.TrimSpace(task.Division)
			if division == "" {
				division = models.DivisionPrep
			}
			task.Division = division
			if task.EventID == "" {
				task.EventID = ev.EventID
			}
			i, ok := index[division]
			if !ok {
				i = len(plan.Sheets)
				index[division] = i
				plan.Sheets = append(plan.Sheets, DivisionSheet{Division: division, Tasks: []DivisionTask{}})
			}
			plan.Sheets[i].Tasks = append(plan.Sheets[i].Tasks, task)
			plan.Sheets[i].TotalEstimatedMinutes += task.EstimatedMinutes
		}

		plan.Events = append(plan.Events, eventPlan(ev, doc, step))
		log.Debug("Event planned", "event_id", ev.EventID, "tasks", len(tasks))
	}

	return plan
}

func eventPlan(ev models.Event, doc *models.BanquetOrder, step int) EventPlan {
	ep := EventPlan{
		EventID:   ev.EventID,
		Name:      ev.Name,
		TimeRange: ev.TimeRange,
		Slots:     []TimeSlot{},
		Warnings:  []string{},
	}
	start, end, err := ParseRange(ev.TimeRange)
	if err != nil {
		ep.Warnings = append(ep.Warnings, err.Error())
		return ep
	}

	notes := append([]string{}, ev.Timeline...)
	if doc != nil {
		notes = append(notes, doc.Notes...)
	}
	ep.Start, ep.End = start, end
	ep.Slots = BuildGrid(start, end, step, ExtractTimeline(notes...))
	return ep
}
