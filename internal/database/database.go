package database

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
	logger *zap.Logger
}

func New(storagePath string, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("sqlite", storagePath+"?_foreign_keys=1&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &DB{
		DB:     db,
		logger: logger,
	}

	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database connection established", zap.String("path", storagePath))
	return database, nil
}

// NewMemory creates an in-memory database for testing.
func NewMemory(logger *zap.Logger) (*DB, error) {
	return New(":memory:", logger)
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS weeks (
			id TEXT PRIMARY KEY,
			title TEXT,
			description TEXT,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			week_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			areas TEXT NOT NULL DEFAULT '[]',
			estimated_minutes INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'not_started',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS time_entries (
			id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT,
			minutes INTEGER NOT NULL,
			is_manual INTEGER NOT NULL DEFAULT 0,
			notes TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_week ON tasks(week_id)`,
		`CREATE INDEX IF NOT EXISTS idx_time_entries_task ON time_entries(task_id)`,
		`CREATE INDEX IF NOT EXISTS idx_time_entries_start ON time_entries(start_time)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	db.logger.Info("Database migrations completed")
	return nil
}

func (db *DB) Close() error {
	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	db.logger.Info("Database connection closed")
	return nil
}
