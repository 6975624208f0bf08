package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"weekplan/internal/models"
	"weekplan/internal/service"

	"go.uber.org/zap"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(service *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		logger:  logger,
	}
}

// Collection serves GET /tasks and POST /tasks.
func (h *TaskHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		tasks, err := h.service.List()
		if err != nil {
			h.logger.Error("Failed to list tasks", zap.Error(err))
			http.Error(w, "Failed to list tasks", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, tasks)

	case http.MethodPost:
		var task models.Task
		if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
			h.logger.Error("Failed to decode request", zap.Error(err))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		created, err := h.service.Create(task)
		if err != nil {
			h.logger.Error("Failed to create task", zap.Error(err))
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, http.StatusCreated, created)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item serves GET, PUT and DELETE on /tasks/{id}.
func (h *TaskHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/tasks/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "Invalid task id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		task, err := h.service.Get(id)
		if err != nil {
			http.Error(w, "Task not found", statusFor(err))
			return
		}
		writeJSON(w, http.StatusOK, task)

	case http.MethodPut:
		var req models.UpdateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error("Failed to decode request", zap.Error(err))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		task, err := h.service.Update(id, &req)
		if err != nil {
			h.logger.Error("Failed to update task", zap.Error(err), zap.String("id", id))
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, http.StatusOK, task)

	case http.MethodDelete:
		if err := h.service.Delete(id); err != nil {
			h.logger.Error("Failed to delete task", zap.Error(err), zap.String("id", id))
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
