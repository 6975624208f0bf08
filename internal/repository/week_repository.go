package repository

import (
	"database/sql"
	"fmt"
	"time"

	"weekplan/internal/models"
)

type WeekRepository struct {
	db *sql.DB
}

func NewWeekRepository(db *sql.DB) *WeekRepository {
	return &WeekRepository{db: db}
}

// weekColumns selects every week field plus the task-derived totals; the
// backend is the authoritative source for both aggregates.
const weekColumns = `
	w.id, w.title, w.description, w.start_date, w.end_date, w.created_at, w.updated_at,
	COALESCE((SELECT SUM(t.estimated_minutes) FROM tasks t WHERE t.week_id = w.id), 0),
	COALESCE((SELECT SUM(e.minutes) FROM time_entries e
		JOIN tasks t ON e.task_id = t.id WHERE t.week_id = w.id), 0)
`

func (r *WeekRepository) Create(week models.Week) (*models.Week, error) {
	_, err := r.db.Exec(`
		INSERT INTO weeks (id, title, description, start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		week.ID,
		nullString(week.Title),
		nullString(week.Description),
		formatTime(week.StartDate),
		formatTime(week.EndDate),
		formatTime(week.CreatedAt),
		formatTime(week.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create week: %w", err)
	}

	return r.GetByID(week.ID)
}

func (r *WeekRepository) GetByID(id string) (*models.Week, error) {
	row := r.db.QueryRow(`SELECT `+weekColumns+` FROM weeks w WHERE w.id = ?`, id)
	week, err := scanWeek(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("week %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get week: %w", err)
	}
	return week, nil
}

func (r *WeekRepository) List() ([]models.Week, error) {
	rows, err := r.db.Query(`SELECT ` + weekColumns + ` FROM weeks w ORDER BY w.start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query weeks: %w", err)
	}
	defer rows.Close()

	weeks := []models.Week{}
	for rows.Next() {
		week, err := scanWeek(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan week: %w", err)
		}
		weeks = append(weeks, *week)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return weeks, nil
}

// Update edits the descriptive fields only. The id and date span are fixed at
// creation so task weekId references never dangle after an edit.
func (r *WeekRepository) Update(id string, update *models.UpdateWeekRequest) (*models.Week, error) {
	setParts := []string{"updated_at = ?"}
	args := []interface{}{formatTime(time.Now())}

	if update.Title != nil {
		setParts = append(setParts, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Description != nil {
		setParts = append(setParts, "description = ?")
		args = append(args, *update.Description)
	}

	setClause := setParts[0]
	for i := 1; i < len(setParts); i++ {
		setClause += ", " + setParts[i]
	}

	args = append(args, id)
	result, err := r.db.Exec(fmt.Sprintf("UPDATE weeks SET %s WHERE id = ?", setClause), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update week: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("week %s: %w", id, ErrNotFound)
	}

	return r.GetByID(id)
}

func (r *WeekRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM weeks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete week: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("week %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanWeek(row rowScanner) (*models.Week, error) {
	var week models.Week
	var title, description sql.NullString
	var startDate, endDate, createdAt, updatedAt string

	err := row.Scan(
		&week.ID,
		&title,
		&description,
		&startDate,
		&endDate,
		&createdAt,
		&updatedAt,
		&week.TotalPlannedMinutes,
		&week.TotalActualMinutes,
	)
	if err != nil {
		return nil, err
	}

	week.Title = stringPtr(title)
	week.Description = stringPtr(description)
	week.StartDate = parseTime(startDate)
	week.EndDate = parseTime(endDate)
	week.CreatedAt = parseTime(createdAt)
	week.UpdatedAt = parseTime(updatedAt)
	week.IsCurrentWeek = week.Contains(time.Now().UTC())
	return &week, nil
}
