package repository

import (
	"database/sql"
	"fmt"

	"weekplan/internal/models"
)

type TimeEntryRepository struct {
	db *sql.DB
}

func NewTimeEntryRepository(db *sql.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

func (r *TimeEntryRepository) Create(entry models.TimeEntry) (*models.TimeEntry, error) {
	var endTime sql.NullString
	if entry.EndTime != nil {
		endTime = sql.NullString{String: formatTime(*entry.EndTime), Valid: true}
	}

	_, err := r.db.Exec(`
		INSERT INTO time_entries (id, task_id, start_time, end_time, minutes, is_manual, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		entry.TaskID,
		formatTime(entry.StartTime),
		endTime,
		entry.Minutes,
		entry.IsManual,
		nullString(entry.Notes),
		formatTime(entry.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}

	return r.GetByID(entry.ID)
}

func (r *TimeEntryRepository) GetByID(id string) (*models.TimeEntry, error) {
	row := r.db.QueryRow(`
		SELECT id, task_id, start_time, end_time, minutes, is_manual, notes, created_at
		FROM time_entries WHERE id = ?
	`, id)
	entry, err := scanTimeEntry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("time entry %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}
	return entry, nil
}

// List returns all entries, or just one task's entries when taskID is set.
func (r *TimeEntryRepository) List(taskID string) ([]models.TimeEntry, error) {
	query := `
		SELECT id, task_id, start_time, end_time, minutes, is_manual, notes, created_at
		FROM time_entries
	`
	args := []interface{}{}
	if taskID != "" {
		query += " WHERE task_id = ?"
		args = append(args, taskID)
	}
	query += " ORDER BY start_time"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	entries := []models.TimeEntry{}
	for rows.Next() {
		entry, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return entries, nil
}

func (r *TimeEntryRepository) Update(id string, update *models.UpdateTimeEntryRequest) (*models.TimeEntry, error) {
	current, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	// Apply resolves the new minutes, re-deriving them when a range edit
	// touches a non-manual entry.
	updated := update.Apply(*current)

	var endTime sql.NullString
	if updated.EndTime != nil {
		endTime = sql.NullString{String: formatTime(*updated.EndTime), Valid: true}
	}

	_, err = r.db.Exec(`
		UPDATE time_entries
		SET start_time = ?, end_time = ?, minutes = ?, is_manual = ?, notes = ?
		WHERE id = ?
	`,
		formatTime(updated.StartTime),
		endTime,
		updated.Minutes,
		updated.IsManual,
		nullString(updated.Notes),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update time entry: %w", err)
	}

	return r.GetByID(id)
}

func (r *TimeEntryRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM time_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("time entry %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanTimeEntry(row rowScanner) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	var startTime, createdAt string
	var endTime, notes sql.NullString

	err := row.Scan(
		&entry.ID,
		&entry.TaskID,
		&startTime,
		&endTime,
		&entry.Minutes,
		&entry.IsManual,
		&notes,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	entry.StartTime = parseTime(startTime)
	if endTime.Valid {
		t := parseTime(endTime.String)
		entry.EndTime = &t
	}
	entry.Notes = stringPtr(notes)
	entry.CreatedAt = parseTime(createdAt)
	return &entry, nil
}
