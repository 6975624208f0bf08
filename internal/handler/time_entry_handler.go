package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"weekplan/internal/models"
	"weekplan/internal/service"

	"go.uber.org/zap"
)

type TimeEntryHandler struct {
	service *service.TimeEntryService
	logger  *zap.Logger
}

func NewTimeEntryHandler(service *service.TimeEntryService, logger *zap.Logger) *TimeEntryHandler {
	return &TimeEntryHandler{
		service: service,
		logger:  logger,
	}
}

// Collection serves GET /timeEntries (optionally ?taskId=...) and
// POST /timeEntries.
func (h *TimeEntryHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		entries, err := h.service.List(r.URL.Query().Get("taskId"))
		if err != nil {
			h.logger.Error("Failed to list time entries", zap.Error(err))
			http.Error(w, "Failed to list time entries", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, entries)

	case http.MethodPost:
		var entry models.TimeEntry
		if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
			h.logger.Error("Failed to decode request", zap.Error(err))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		created, err := h.service.Create(entry)
		if err != nil {
			h.logger.Error("Failed to create time entry", zap.Error(err))
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, http.StatusCreated, created)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item serves GET, PUT and DELETE on /timeEntries/{id}.
func (h *TimeEntryHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/timeEntries/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "Invalid time entry id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		entry, err := h.service.Get(id)
		if err != nil {
			http.Error(w, "Time entry not found", statusFor(err))
			return
		}
		writeJSON(w, http.StatusOK, entry)

	case http.MethodPut:
		var req models.UpdateTimeEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error("Failed to decode request", zap.Error(err))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		entry, err := h.service.Update(id, &req)
		if err != nil {
			h.logger.Error("Failed to update time entry", zap.Error(err), zap.String("id", id))
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, http.StatusOK, entry)

	case http.MethodDelete:
		if err := h.service.Delete(id); err != nil {
			h.logger.Error("Failed to delete time entry", zap.Error(err), zap.String("id", id))
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
