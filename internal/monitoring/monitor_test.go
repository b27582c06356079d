package monitoring

import (
	"testing"

	"banquetprep/internal/planning"
)

func TestMonitor_StatusBeforeAnyPlan(t *testing.T) {
	m := NewMonitor()

	status := m.Status()

	if status.LastPlan != nil {
		t.Errorf("Expected no last plan, but got %+v", status.LastPlan)
	}
	if status.PlansBuilt != 0 {
		t.Errorf("Expected 0 plans built, but got %d", status.PlansBuilt)
	}
	if status.UptimeSeconds < 0 {
		t.Errorf("Expected non-negative uptime, but got %v", status.UptimeSeconds)
	}
}

func TestMonitor_RecordDayPlan(t *testing.T) {
	m := NewMonitor()

	plan := &planning.DayPlan{
		Date: "2026-10-17",
		Sheets: []planning.DivisionSheet{
			{Division: "hot_line", TotalEstimatedMinutes: 300},
			{Division: "pastry", TotalEstimatedMinutes: 45},
		},
		Events:    []planning.EventPlan{{EventID: "wedding"}},
		Omissions: []planning.Omission{{EventID: "gala"}},
	}
	m.RecordDayPlan(plan)
	m.RecordDayPlan(plan)

	status := m.Status()

	if status.PlansBuilt != 2 {
		t.Errorf("Expected 2 plans built, but got %d", status.PlansBuilt)
	}
	if status.LastPlan == nil {
		t.Fatalf("Expected a last plan, but got none")
	}
	if status.LastPlan.Date != "2026-10-17" {
		t.Errorf("Expected last plan date 2026-10-17, but got %v", status.LastPlan.Date)
	}
	if status.LastPlan.EstimatedMinutes != 345 {
		t.Errorf("Expected 345 estimated minutes, but got %v", status.LastPlan.EstimatedMinutes)
	}
	if status.LastPlan.Omissions != 1 {
		t.Errorf("Expected 1 omission, but got %v", status.LastPlan.Omissions)
	}
	if status.LastPlan.PlannedAt.IsZero() {
		t.Errorf("Expected planned_at to be set")
	}
}

func TestMonitor_StatusIsACopy(t *testing.T) {
	m := NewMonitor()
	m.RecordDayPlan(&planning.DayPlan{Date: "2026-10-17"})

	status := m.Status()
	status.LastPlan.Date = "changed"

	if got := m.Status().LastPlan.Date; got != "2026-10-17" {
		t.Errorf("Expected stored date to be unchanged, but got %v", got)
	}
}

func TestMonitor_NilIsSafe(t *testing.T) {
	var m *Monitor
	m.RecordDayPlan(&planning.DayPlan{Date: "2026-10-17"})
	if status := m.Status(); status.LastPlan != nil {
		t.Errorf("Expected empty status from nil monitor")
	}
}
