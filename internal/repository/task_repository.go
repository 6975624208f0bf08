package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"weekplan/internal/models"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// taskColumns selects every task field plus the entry-derived actual minutes,
// which the store never persists directly.
const taskColumns = `
	t.id, t.week_id, t.title, t.description, t.areas, t.estimated_minutes, t.status,
	t.created_at, t.updated_at,
	COALESCE((SELECT SUM(e.minutes) FROM time_entries e WHERE e.task_id = t.id), 0)
`

func (r *TaskRepository) Create(task models.Task) (*models.Task, error) {
	areasJSON, err := json.Marshal(task.Areas)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal areas: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO tasks (id, week_id, title, description, areas, estimated_minutes, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		task.ID,
		task.WeekID,
		task.Title,
		nullString(task.Description),
		string(areasJSON),
		task.EstimatedMinutes,
		string(task.Status),
		formatTime(task.CreatedAt),
		formatTime(task.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return r.GetByID(task.ID)
}

func (r *TaskRepository) GetByID(id string) (*models.Task, error) {
	row := r.db.QueryRow(`SELECT `+taskColumns+` FROM tasks t WHERE t.id = ?`, id)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) List() ([]models.Task, error) {
	rows, err := r.db.Query(`SELECT ` + taskColumns + ` FROM tasks t ORDER BY t.created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Update(id string, update *models.UpdateTaskRequest) (*models.Task, error) {
	setParts := []string{"updated_at = ?"}
	args := []interface{}{formatTime(time.Now())}

	if update.WeekID != nil {
		setParts = append(setParts, "week_id = ?")
		args = append(args, *update.WeekID)
	}
	if update.Title != nil {
		setParts = append(setParts, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Description != nil {
		setParts = append(setParts, "description = ?")
		args = append(args, *update.Description)
	}
	if update.Areas != nil {
		areasJSON, err := json.Marshal(*update.Areas)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal areas: %w", err)
		}
		setParts = append(setParts, "areas = ?")
		args = append(args, string(areasJSON))
	}
	if update.EstimatedMinutes != nil {
		setParts = append(setParts, "estimated_minutes = ?")
		args = append(args, *update.EstimatedMinutes)
	}
	if update.Status != nil {
		setParts = append(setParts, "status = ?")
		args = append(args, string(*update.Status))
	}

	setClause := setParts[0]
	for i := 1; i < len(setParts); i++ {
		setClause += ", " + setParts[i]
	}

	args = append(args, id)
	result, err := r.db.Exec(fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", setClause), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}

	return r.GetByID(id)
}

func (r *TaskRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var task models.Task
	var description sql.NullString
	var areasJSON, status, createdAt, updatedAt string

	err := row.Scan(
		&task.ID,
		&task.WeekID,
		&task.Title,
		&description,
		&areasJSON,
		&task.EstimatedMinutes,
		&status,
		&createdAt,
		&updatedAt,
		&task.ActualMinutes,
	)
	if err != nil {
		return nil, err
	}

	task.Description = stringPtr(description)
	task.Status = models.TaskStatus(status)
	task.CreatedAt = parseTime(createdAt)
	task.UpdatedAt = parseTime(updatedAt)
	if err := json.Unmarshal([]byte(areasJSON), &task.Areas); err != nil {
		return nil, fmt.Errorf("failed to unmarshal areas: %w", err)
	}
	return &task, nil
}
