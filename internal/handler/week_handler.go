package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"weekplan/internal/models"
	"weekplan/internal/service"

	"go.uber.org/zap"
)

type WeekHandler struct {
	service *service.WeekService
	logger  *zap.Logger
}

func NewWeekHandler(service *service.WeekService, logger *zap.Logger) *WeekHandler {
	return &WeekHandler{
		service: service,
		logger:  logger,
	}
}

// Collection serves GET /weeks and POST /weeks.
func (h *WeekHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		weeks, err := h.service.List()
		if err != nil {
			h.logger.Error("Failed to list weeks", zap.Error(err))
			http.Error(w, "Failed to list weeks", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, weeks)

	case http.MethodPost:
		var week models.Week
		if err := json.NewDecoder(r.Body).Decode(&week); err != nil {
			h.logger.Error("Failed to decode request", zap.Error(err))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		created, err := h.service.Create(week)
		if err != nil {
			h.logger.Error("Failed to create week", zap.Error(err))
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, http.StatusCreated, created)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item serves GET, PUT and DELETE on /weeks/{id}.
func (h *WeekHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/weeks/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "Invalid week id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		week, err := h.service.Get(id)
		if err != nil {
			http.Error(w, "Week not found", statusFor(err))
			return
		}
		writeJSON(w, http.StatusOK, week)

	case http.MethodPut:
		var req models.UpdateWeekRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error("Failed to decode request", zap.Error(err))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		week, err := h.service.Update(id, &req)
		if err != nil {
			h.logger.Error("Failed to update week", zap.Error(err), zap.String("id", id))
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, http.StatusOK, week)

	case http.MethodDelete:
		if err := h.service.Delete(id); err != nil {
			h.logger.Error("Failed to delete week", zap.Error(err), zap.String("id", id))
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
