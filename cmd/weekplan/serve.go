package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"weekplan/internal/database"
	"weekplan/internal/handler"
	"weekplan/internal/repository"
	"weekplan/internal/router"
	"weekplan/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the record-store backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		log.Info("Starting weekplan backend",
			zap.String("env", cfg.Env),
			zap.String("config_path", configPath),
		)

		db, err := database.New(cfg.Server.StoragePath, log.Logger)
		if err != nil {
			log.Error("Failed to initialize database", zap.Error(err))
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close database", zap.Error(err))
			}
		}()

		taskHandler := handler.NewTaskHandler(
			service.NewTaskService(repository.NewTaskRepository(db.DB)), log.Logger)
		weekHandler := handler.NewWeekHandler(
			service.NewWeekService(repository.NewWeekRepository(db.DB)), log.Logger)
		timeEntryHandler := handler.NewTimeEntryHandler(
			service.NewTimeEntryService(repository.NewTimeEntryRepository(db.DB)), log.Logger)

		addr := fmt.Sprintf("localhost:%d", cfg.Server.Port)
		srv := &http.Server{
			Addr:         addr,
			Handler:      router.New(taskHandler, weekHandler, timeEntryHandler, log.Logger),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			log.Info("Backend listening", zap.String("address", addr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("Server error", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit
		log.Info("Received shutdown signal", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("Server shutdown error", zap.Error(err))
		}

		log.Info("Backend stopped")
		return nil
	},
}
