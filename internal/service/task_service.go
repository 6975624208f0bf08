package service

import (
	"time"

	"weekplan/internal/models"
	"weekplan/internal/repository"
)

// TaskService validates and normalizes posted tasks before they reach the
// store. Clients generate ids; the service fills anything they left out.
type TaskService struct {
	repo *repository.TaskRepository
}

func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(task models.Task) (*models.Task, error) {
	req := models.CreateTaskRequest{
		WeekID:           task.WeekID,
		Title:            task.Title,
		Description:      task.Description,
		Areas:            task.Areas,
		EstimatedMinutes: task.EstimatedMinutes,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if task.Status == "" {
		task.Status = models.StatusNotStarted
	}
	if !models.ValidStatus(task.Status) {
		return nil, &models.ValidationError{Field: "status", Message: "unknown status"}
	}
	if task.ID == "" {
		task.ID = models.NewTaskID()
	}
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = now
	}
	return s.repo.Create(task)
}

func (s *TaskService) Get(id string) (*models.Task, error) {
	return s.repo.GetByID(id)
}

func (s *TaskService) List() ([]models.Task, error) {
	return s.repo.List()
}

func (s *TaskService) Update(id string, req *models.UpdateTaskRequest) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(id, req)
}

func (s *TaskService) Delete(id string) error {
	return s.repo.Delete(id)
}
