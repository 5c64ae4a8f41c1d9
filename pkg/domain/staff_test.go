package domain

import (
	"testing"
	"time"
)

func TestTimeClockEntryCloseSubtractsBreaks(t *testing.T) {
	in := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entry := TimeClockEntry{ClockIn: in}
	start := in.Add(3 * time.Hour)
	entry.BreakStart = &start
	if !entry.OnBreak() {
		t.Fatalf("expected break in progress")
	}
	entry.EndBreakAt(start.Add(30 * time.Minute))
	if entry.OnBreak() || entry.BreakMinutes != 30 {
		t.Fatalf("expected 30 break minutes, got %v", entry.BreakMinutes)
	}
	entry.CloseAt(in.Add(8 * time.Hour))
	if entry.Open() {
		t.Fatalf("expected entry to be closed")
	}
	if entry.TotalHours != 7.5 {
		t.Fatalf("expected 7.5 hours, got %v", entry.TotalHours)
	}
}

func TestTimeClockEntryCloseEndsRunningBreak(t *testing.T) {
	in := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	start := in.Add(7 * time.Hour)
	entry := TimeClockEntry{ClockIn: in, BreakStart: &start}
	entry.CloseAt(in.Add(8 * time.Hour))
	if entry.BreakEnd == nil || !entry.BreakEnd.Equal(in.Add(8*time.Hour)) {
		t.Fatalf("expected running break to end at clock-out")
	}
	if entry.TotalHours != 7 {
		t.Fatalf("expected 7 hours, got %v", entry.TotalHours)
	}
}

func TestStaffScheduleHours(t *testing.T) {
	start := time.Date(2024, 3, 1, 16, 0, 0, 0, time.UTC)
	s := StaffSchedule{ShiftStart: start, ShiftEnd: start.Add(6 * time.Hour)}
	if s.ScheduledHours() != 6 {
		t.Fatalf("expected 6 hours, got %v", s.ScheduledHours())
	}
	s.ShiftEnd = start.Add(-time.Hour)
	if s.ScheduledHours() != 0 {
		t.Fatalf("expected inverted shift to count zero hours")
	}
}
