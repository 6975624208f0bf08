package service

import (
	"time"

	"weekplan/internal/models"
	"weekplan/internal/repository"
)

// WeekService normalizes posted weeks: the id derives from the start date when
// the client did not compute it, and the end date is always start + 6 days.
type WeekService struct {
	repo *repository.WeekRepository
}

func NewWeekService(repo *repository.WeekRepository) *WeekService {
	return &WeekService{repo: repo}
}

func (s *WeekService) Create(week models.Week) (*models.Week, error) {
	if week.StartDate.IsZero() {
		return nil, &models.ValidationError{Field: "startDate", Message: "startDate is required"}
	}
	if week.ID == "" {
		week.ID = models.WeekIDFor(week.StartDate)
	}
	week.EndDate = models.WeekEndFor(week.StartDate)
	now := time.Now().UTC()
	if week.CreatedAt.IsZero() {
		week.CreatedAt = now
	}
	if week.UpdatedAt.IsZero() {
		week.UpdatedAt = now
	}
	return s.repo.Create(week)
}

func (s *WeekService) Get(id string) (*models.Week, error) {
	return s.repo.GetByID(id)
}

func (s *WeekService) List() ([]models.Week, error) {
	return s.repo.List()
}

func (s *WeekService) Update(id string, req *models.UpdateWeekRequest) (*models.Week, error) {
	return s.repo.Update(id, req)
}

func (s *WeekService) Delete(id string) error {
	return s.repo.Delete(id)
}
