package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeEntryDescription labels entries submitted without a description
const DefaultTimeEntryDescription = "Time entry"

// TimeEntry is one block of time logged against a comment
type TimeEntry struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Hours       int    `json:"hours"`
	ID          string `json:"id"`
	Minutes     int    `json:"minutes"`
}

// Duration returns the entry length
func (e TimeEntry) Duration() time.Duration {
	return time.Duration(e.Hours)*time.Hour + time.Duration(e.Minutes)*time.Minute
}

// Validate checks the ranges of a single entry
func (e TimeEntry) Validate() error {
	if e.ID == "" {
		return NewValidationError("timesheet", "entry id is required")
	}
	if e.Hours < 0 || e.Hours > 23 {
		return NewValidationError("hours", "must be between 0 and 23")
	}
	if e.Minutes < 0 || e.Minutes > 59 {
		return NewValidationError("minutes", "must be between 0 and 59")
	}
	if e.Hours == 0 && e.Minutes == 0 {
		return NewValidationError("timesheet", "enter hours or minutes")
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return NewValidationError("date", "must be formatted as YYYY-MM-DD")
	}
	return nil
}

// Timesheet is the ordered list of time entries of a comment
type Timesheet []TimeEntry

// Validate checks every entry and rejects duplicate ids
func (t Timesheet) Validate() error {
	seen := make(map[string]bool, len(t))
	for _, e := range t {
		if err := e.Validate(); err != nil {
			return err
		}
		if seen[e.ID] {
			return NewValidationError("timesheet", fmt.Sprintf("duplicate entry id %q", e.ID))
		}
		seen[e.ID] = true
	}
	return nil
}

// Total sums the logged time
func (t Timesheet) Total() time.Duration {
	var total time.Duration
	for _, e := range t {
		total += e.Duration()
	}
	return total
}

// With returns a copy of t with e appended
func (t Timesheet) With(e TimeEntry) Timesheet {
	out := make(Timesheet, 0, len(t)+1)
	out = append(out, t...)
	return append(out, e)
}

// Without returns a copy of t minus the entry with id, and whether it was present
func (t Timesheet) Without(id string) (Timesheet, bool) {
	out := make(Timesheet, 0, len(t))
	found := false
	for _, e := range t {
		if e.ID == id {
			found = true
			continue
		}
		out = append(out, e)
	}
	return out, found
}

// FormatDuration renders a duration the way the dashboard shows totals, e.g. "2h 05m"
func FormatDuration(d time.Duration) string {
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// FormatTimeEstimation renders hours and minutes as HH:MM
func FormatTimeEstimation(hours, minutes int) string {
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// ParseTimeEstimation reads an HH:MM estimation
func ParseTimeEstimation(s string) (time.Duration, error) {
	if !timeEstimationPattern.MatchString(s) {
		return 0, NewValidationError("time_estimation", "must be formatted as HH:MM")
	}
	h, m, _ := strings.Cut(s, ":")
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}
