package models

import "time"

// TaskStatus matches the backend status enum.
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not_started"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is a unit of planned work assigned to a week. ActualMinutes is
// maintained by the backend as the sum of the task's time entries.
type Task struct {
	ID               string     `json:"id"`
	WeekID           string     `json:"weekId"`
	Title            string     `json:"title"`
	Description      *string    `json:"description,omitempty"`
	Areas            []string   `json:"areas"`
	EstimatedMinutes int        `json:"estimatedMinutes"`
	ActualMinutes    int        `json:"actualMinutes"`
	Status           TaskStatus `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (t Task) EntityID() string { return t.ID }

type CreateTaskRequest struct {
	WeekID           string   `json:"weekId"`
	Title            string   `json:"title"`
	Description      *string  `json:"description,omitempty"`
	Areas            []string `json:"areas"`
	EstimatedMinutes int      `json:"estimatedMinutes"`
}

func (r *CreateTaskRequest) Validate() error {
	if r.WeekID == "" {
		return &ValidationError{Field: "weekId", Message: "weekId is required"}
	}
	if r.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(r.Areas) == 0 {
		return &ValidationError{Field: "areas", Message: "at least one area is required"}
	}
	if r.EstimatedMinutes <= 0 {
		return &ValidationError{Field: "estimatedMinutes", Message: "estimatedMinutes must be positive"}
	}
	return nil
}

// UpdateTaskRequest carries a partial task update. Nil fields are left
// unchanged; Areas uses a slice pointer so "absent" and "empty" stay distinct.
type UpdateTaskRequest struct {
	WeekID           *string     `json:"weekId,omitempty"`
	Title            *string     `json:"title,omitempty"`
	Description      *string     `json:"description,omitempty"`
	Areas            *[]string   `json:"areas,omitempty"`
	EstimatedMinutes *int        `json:"estimatedMinutes,omitempty"`
	Status           *TaskStatus `json:"status,omitempty"`
}

func (r *UpdateTaskRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return &ValidationError{Field: "title", Message: "title cannot be empty"}
	}
	if r.Areas != nil && len(*r.Areas) == 0 {
		return &ValidationError{Field: "areas", Message: "at least one area is required"}
	}
	if r.EstimatedMinutes != nil && *r.EstimatedMinutes <= 0 {
		return &ValidationError{Field: "estimatedMinutes", Message: "estimatedMinutes must be positive"}
	}
	if r.Status != nil && !ValidStatus(*r.Status) {
		return &ValidationError{Field: "status", Message: "unknown status"}
	}
	return nil
}

// Apply returns a copy of t with the non-nil fields of r applied.
func (r *UpdateTaskRequest) Apply(t Task) Task {
	if r.WeekID != nil {
		t.WeekID = *r.WeekID
	}
	if r.Title != nil {
		t.Title = *r.Title
	}
	if r.Description != nil {
		t.Description = r.Description
	}
	if r.Areas != nil {
		t.Areas = *r.Areas
	}
	if r.EstimatedMinutes != nil {
		t.EstimatedMinutes = *r.EstimatedMinutes
	}
	if r.Status != nil {
		t.Status = *r.Status
	}
	return t
}
