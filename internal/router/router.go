package router

import (
	"net/http"
	"time"

	"weekplan/internal/handler"

	"go.uber.org/zap"
)

func New(
	taskHandler *handler.TaskHandler,
	weekHandler *handler.WeekHandler,
	timeEntryHandler *handler.TimeEntryHandler,
	logger *zap.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Resource collections: list/create on the base path, get/update/delete
	// on the id suffix.
	mux.HandleFunc("/tasks", taskHandler.Collection)
	mux.HandleFunc("/tasks/", taskHandler.Item)
	mux.HandleFunc("/weeks", weekHandler.Collection)
	mux.HandleFunc("/weeks/", weekHandler.Item)
	mux.HandleFunc("/timeEntries", timeEntryHandler.Collection)
	mux.HandleFunc("/timeEntries/", timeEntryHandler.Item)

	// Logging middleware
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		mux.ServeHTTP(w, r)
		logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
