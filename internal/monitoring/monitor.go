// Package monitoring collects planner metrics: a Prometheus registry for
// scraping and a small in-process snapshot served on /status.
package monitoring

import (
	"sync"
	"time"

	"banquetprep/internal/planning"
)

// PlanSummary holds the headline figures of one planned day.
type PlanSummary struct {
	Date             string    `json:"date"`
	Events           int       `json:"events"`
	Omissions        int       `json:"omissions"`
	Divisions        int       `json:"divisions"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	PlannedAt        time.Time `json:"planned_at"`
}

// Status is the snapshot returned by the status endpoint.
type Status struct {
	UptimeSeconds float64      `json:"uptime_seconds"`
	PlansBuilt    int64        `json:"plans_built"`
	LastPlan      *PlanSummary `json:"last_plan,omitempty"`
}

// Monitor keeps the latest planning figures for the status endpoint
type Monitor struct {
	mu        sync.RWMutex
	startTime time.Time
	plans     int64
	last      *PlanSummary
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{startTime: time.Now()}
}

// Status returns a copy of the current snapshot. A nil monitor reports an
// empty status.
func (m *Monitor) Status() Status {
	if m == nil {
		return Status{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := Status{
		UptimeSeconds: time.Since(m.startTime).Seconds(),
		PlansBuilt:    m.plans,
	}
	if m.last != nil {
		last := *m.last
		status.LastPlan = &last
	}
	return status
}

// RecordDayPlan stores the headline figures of the last planned day
func (m *Monitor) RecordDayPlan(plan *planning.DayPlan) {
	if m == nil || plan == nil {
		return
	}

	total := 0
	for _, s := range plan.Sheets {
		total += s.TotalEstimatedMinutes
	}
	summary := &PlanSummary{
		Date:             plan.Date,
		Events:           len(plan.Events),
		Omissions:        len(plan.Omissions),
		Divisions:        len(plan.Sheets),
		EstimatedMinutes: total,
		PlannedAt:        time.Now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans++
	m.last = summary
}
