package store

import (
	"context"

	"weekplan/internal/models"

	"go.uber.org/zap"
)

// TaskStore layers task defaults and validation over the generic collection.
type TaskStore struct {
	*Collection[models.Task]
}

func NewTaskStore(remote Remote[models.Task], logger *zap.Logger) *TaskStore {
	return &TaskStore{Collection: NewCollection[models.Task]("tasks", remote, logger)}
}

// Create builds a full task from the draft (generated id, timestamps, zeroed
// aggregates, not_started status) and submits it optimistically.
func (s *TaskStore) Create(ctx context.Context, req models.CreateTaskRequest) (models.Task, error) {
	if err := req.Validate(); err != nil {
		return models.Task{}, err
	}
	now := Touch()
	task := models.Task{
		ID:               models.NewTaskID(),
		WeekID:           req.WeekID,
		Title:            req.Title,
		Description:      req.Description,
		Areas:            req.Areas,
		EstimatedMinutes: req.EstimatedMinutes,
		Status:           models.StatusNotStarted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return s.Collection.Create(ctx, task)
}

// Update applies a partial update plus a refreshed updatedAt.
func (s *TaskStore) Update(ctx context.Context, id string, req models.UpdateTaskRequest) (models.Task, error) {
	if err := req.Validate(); err != nil {
		return models.Task{}, err
	}
	return s.Collection.Update(ctx, id, func(t models.Task) models.Task {
		t = req.Apply(t)
		t.UpdatedAt = Touch()
		return t
	})
}

// SetStatus is the status-only convenience update.
func (s *TaskStore) SetStatus(ctx context.Context, id string, status models.TaskStatus) (models.Task, error) {
	return s.Update(ctx, id, models.UpdateTaskRequest{Status: &status})
}

// ForWeek returns the local tasks assigned to a week.
func (s *TaskStore) ForWeek(weekID string) []models.Task {
	var out []models.Task
	for _, t := range s.Items() {
		if t.WeekID == weekID {
			out = append(out, t)
		}
	}
	return out
}
