package store

import (
	"context"

	"weekplan/internal/models"

	"go.uber.org/zap"
)

// EntryStore layers duration resolution over the generic collection: manual
// entries carry their minutes as given, range entries derive them from the
// start/end pair.
type EntryStore struct {
	*Collection[models.TimeEntry]
}

func NewEntryStore(remote Remote[models.TimeEntry], logger *zap.Logger) *EntryStore {
	return &EntryStore{Collection: NewCollection[models.TimeEntry]("timeEntries", remote, logger)}
}

func (s *EntryStore) Create(ctx context.Context, req models.CreateTimeEntryRequest) (models.TimeEntry, error) {
	if err := req.Validate(); err != nil {
		return models.TimeEntry{}, err
	}
	entry := models.TimeEntry{
		ID:        models.NewEntryID(),
		TaskID:    req.TaskID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Minutes:   req.ResolveMinutes(),
		IsManual:  req.IsManual,
		Notes:     req.Notes,
		CreatedAt: Touch(),
	}
	return s.Collection.Create(ctx, entry)
}

func (s *EntryStore) Update(ctx context.Context, id string, req models.UpdateTimeEntryRequest) (models.TimeEntry, error) {
	if err := req.Validate(); err != nil {
		return models.TimeEntry{}, err
	}
	return s.Collection.Update(ctx, id, req.Apply)
}

// ForTask returns the local entries recorded against a task.
func (s *EntryStore) ForTask(taskID string) []models.TimeEntry {
	var out []models.TimeEntry
	for _, e := range s.Items() {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out
}

// TrackedMinutes sums the local entries for a task.
func (s *EntryStore) TrackedMinutes(taskID string) int {
	total := 0
	for _, e := range s.ForTask(taskID) {
		total += e.Minutes
	}
	return total
}
