package service

import (
	"time"

	"weekplan/internal/models"
	"weekplan/internal/repository"
)

// TimeEntryService validates posted entries: manual entries need positive
// minutes, range entries need an end after the start. Zero-minute entries are
// rejected rather than persisted.
type TimeEntryService struct {
	repo *repository.TimeEntryRepository
}

func NewTimeEntryService(repo *repository.TimeEntryRepository) *TimeEntryService {
	return &TimeEntryService{repo: repo}
}

func (s *TimeEntryService) Create(entry models.TimeEntry) (*models.TimeEntry, error) {
	req := models.CreateTimeEntryRequest{
		TaskID:    entry.TaskID,
		StartTime: entry.StartTime,
		EndTime:   entry.EndTime,
		IsManual:  entry.IsManual,
		Notes:     entry.Notes,
	}
	if entry.Minutes > 0 {
		req.Minutes = &entry.Minutes
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if entry.Minutes == 0 {
		entry.Minutes = req.ResolveMinutes()
	}
	if entry.ID == "" {
		entry.ID = models.NewEntryID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return s.repo.Create(entry)
}

func (s *TimeEntryService) Get(id string) (*models.TimeEntry, error) {
	return s.repo.GetByID(id)
}

func (s *TimeEntryService) List(taskID string) ([]models.TimeEntry, error) {
	return s.repo.List(taskID)
}

func (s *TimeEntryService) Update(id string, req *models.UpdateTimeEntryRequest) (*models.TimeEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(id, req)
}

func (s *TimeEntryService) Delete(id string) error {
	return s.repo.Delete(id)
}
