package models

import (
	"math"
	"time"
)

// TimeEntry records tracked time against a task, either as a manually entered
// duration or as a start/end range with the minutes derived from the range.
type TimeEntry struct {
	ID        string     `json:"id"`
	TaskID    string     `json:"taskId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Minutes   int        `json:"minutes"`
	IsManual  bool       `json:"isManual"`
	Notes     *string    `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (e TimeEntry) EntityID() string { return e.ID }

// MinutesBetween converts a time range to whole minutes, rounding half up.
// Non-positive ranges yield 0 so callers rendering durations stay total;
// rejecting them is the job of request validation.
func MinutesBetween(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(math.Round(d.Minutes()))
}

type CreateTimeEntryRequest struct {
	TaskID    string     `json:"taskId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Minutes   *int       `json:"minutes,omitempty"`
	IsManual  bool       `json:"isManual"`
	Notes     *string    `json:"notes,omitempty"`
}

func (r *CreateTimeEntryRequest) Validate() error {
	if r.TaskID == "" {
		return &ValidationError{Field: "taskId", Message: "taskId is required"}
	}
	if r.StartTime.IsZero() {
		return &ValidationError{Field: "startTime", Message: "startTime is required"}
	}
	if r.IsManual {
		if r.Minutes == nil || *r.Minutes <= 0 {
			return &ValidationError{Field: "minutes", Message: "minutes must be positive"}
		}
		return nil
	}
	if r.EndTime == nil {
		return &ValidationError{Field: "endTime", Message: "endTime is required for range entries"}
	}
	if !r.EndTime.After(r.StartTime) {
		return &ValidationError{Field: "endTime", Message: "endTime must be after startTime"}
	}
	if MinutesBetween(r.StartTime, *r.EndTime) == 0 {
		return &ValidationError{Field: "endTime", Message: "range is shorter than a minute"}
	}
	return nil
}

// ResolveMinutes returns the entry duration the request describes: the given
// minutes in manual mode, the rounded range length otherwise.
func (r *CreateTimeEntryRequest) ResolveMinutes() int {
	if r.IsManual && r.Minutes != nil {
		return *r.Minutes
	}
	if r.EndTime != nil {
		return MinutesBetween(r.StartTime, *r.EndTime)
	}
	return 0
}

// UpdateTimeEntryRequest carries a partial time entry update. When the range
// changes on a non-manual entry the minutes are re-derived server-side.
type UpdateTimeEntryRequest struct {
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Minutes   *int       `json:"minutes,omitempty"`
	IsManual  *bool      `json:"isManual,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

func (r *UpdateTimeEntryRequest) Validate() error {
	if r.Minutes != nil && *r.Minutes <= 0 {
		return &ValidationError{Field: "minutes", Message: "minutes must be positive"}
	}
	if r.StartTime != nil && r.EndTime != nil && !r.EndTime.After(*r.StartTime) {
		return &ValidationError{Field: "endTime", Message: "endTime must be after startTime"}
	}
	return nil
}

// Apply returns a copy of e with the non-nil fields of r applied, re-deriving
// minutes when a range edit touches a non-manual entry.
func (r *UpdateTimeEntryRequest) Apply(e TimeEntry) TimeEntry {
	if r.StartTime != nil {
		e.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		e.EndTime = r.EndTime
	}
	if r.IsManual != nil {
		e.IsManual = *r.IsManual
	}
	if r.Minutes != nil {
		e.Minutes = *r.Minutes
	} else if !e.IsManual && e.EndTime != nil && (r.StartTime != nil || r.EndTime != nil) {
		e.Minutes = MinutesBetween(e.StartTime, *e.EndTime)
	}
	if r.Notes != nil {
		e.Notes = r.Notes
	}
	return e
}
