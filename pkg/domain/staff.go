package domain

import "time"

// StaffSchedule is a planned shift assignment.
type StaffSchedule struct {
	Base
	StaffID    string    `json:"staff_id"`
	StaffName  string    `json:"staff_name"`
	Role       string    `json:"role"`
	LocationID string    `json:"location_id,omitempty"`
	ShiftStart time.Time `json:"shift_start"`
	ShiftEnd   time.Time `json:"shift_end"`
	Notes      string    `json:"notes,omitempty"`
}

// ScheduledHours returns the planned shift length in hours.
func (s StaffSchedule) ScheduledHours() float64 {
	if s.ShiftEnd.Before(s.ShiftStart) {
		return 0
	}
	return s.ShiftEnd.Sub(s.ShiftStart).Hours()
}

// TimeClockEntry is an actual worked interval. An entry is open until ClockOut
// is set. Breaks accumulate into BreakMinutes; BreakStart without BreakEnd
// means a break is in progress.
type TimeClockEntry struct {
	Base
	UserID       string     `json:"user_id"`
	ClockIn      time.Time  `json:"clock_in"`
	ClockOut     *time.Time `json:"clock_out"`
	BreakStart   *time.Time `json:"break_start"`
	BreakEnd     *time.Time `json:"break_end"`
	BreakMinutes float64    `json:"break_minutes"`
	TotalHours   float64    `json:"total_hours"`
	Notes        string     `json:"notes,omitempty"`
}

// Open reports whether the entry has not been clocked out.
func (e TimeClockEntry) Open() bool { return e.ClockOut == nil }

// OnBreak reports whether a break is in progress.
func (e TimeClockEntry) OnBreak() bool { return e.BreakStart != nil && e.BreakEnd == nil }

// EndBreakAt closes the running break at t and adds its length to BreakMinutes.
func (e *TimeClockEntry) EndBreakAt(t time.Time) {
	if !e.OnBreak() {
		return
	}
	end := t
	e.BreakEnd = &end
	if d := end.Sub(*e.BreakStart); d > 0 {
		e.BreakMinutes += d.Minutes()
	}
}

// CloseAt clocks the entry out at t, ending any running break, and derives
// TotalHours as the worked interval minus breaks.
func (e *TimeClockEntry) CloseAt(t time.Time) {
	e.EndBreakAt(t)
	out := t
	e.ClockOut = &out
	hours := out.Sub(e.ClockIn).Hours() - e.BreakMinutes/60
	if hours < 0 {
		hours = 0
	}
	e.TotalHours = roundCents(hours)
}

// User is the signed-in operator of the terminal.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role"`
	LocationID string `json:"location_id,omitempty"`
}
