package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"weekplan/internal/database"
	"weekplan/internal/models"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewMemory(zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedWeek(t *testing.T, repo *WeekRepository, start time.Time) models.Week {
	t.Helper()
	now := time.Now().UTC()
	week, err := repo.Create(models.Week{
		ID:        models.WeekIDFor(start),
		StartDate: start,
		EndDate:   models.WeekEndFor(start),
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return *week
}

func seedTask(t *testing.T, repo *TaskRepository, weekID string, estimated int) models.Task {
	t.Helper()
	now := time.Now().UTC()
	task, err := repo.Create(models.Task{
		ID:               models.NewTaskID(),
		WeekID:           weekID,
		Title:            "seeded",
		Areas:            []string{"work"},
		EstimatedMinutes: estimated,
		Status:           models.StatusNotStarted,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	require.NoError(t, err)
	return *task
}

func seedEntry(t *testing.T, repo *TimeEntryRepository, taskID string, minutes int, start time.Time) models.TimeEntry {
	t.Helper()
	entry, err := repo.Create(models.TimeEntry{
		ID:        models.NewEntryID(),
		TaskID:    taskID,
		StartTime: start,
		Minutes:   minutes,
		IsManual:  true,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return *entry
}

func TestTaskRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db.DB)

	desc := "with description"
	created, err := repo.Create(models.Task{
		ID:               "task-1",
		WeekID:           "2025-W21",
		Title:            "Write report",
		Description:      &desc,
		Areas:            []string{"work", "writing"},
		EstimatedMinutes: 60,
		Status:           models.StatusNotStarted,
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"work", "writing"}, created.Areas)
	assert.Equal(t, 0, created.ActualMinutes)
	require.NotNil(t, created.Description)
	assert.Equal(t, desc, *created.Description)

	got, err := repo.GetByID("task-1")
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
}

func TestTaskGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db.DB)

	_, err := repo.GetByID("task-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskActualMinutesDerivedFromEntries(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskRepository(db.DB)
	entries := NewTimeEntryRepository(db.DB)

	task := seedTask(t, tasks, "2025-W21", 60)
	start := time.Date(2025, time.May, 21, 14, 0, 0, 0, time.UTC)
	seedEntry(t, entries, task.ID, 30, start)
	seedEntry(t, entries, task.ID, 15, start.Add(2*time.Hour))

	got, err := tasks.GetByID(task.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, got.ActualMinutes)
}

func TestTaskPartialUpdatePreservesOtherFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db.DB)
	task := seedTask(t, repo, "2025-W21", 60)

	status := models.StatusCompleted
	updated, err := repo.Update(task.ID, &models.UpdateTaskRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, task.Title, updated.Title)
	assert.Equal(t, task.EstimatedMinutes, updated.EstimatedMinutes)
	assert.Equal(t, task.Areas, updated.Areas)
}

func TestTaskUpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db.DB)

	title := "renamed"
	_, err := repo.Update("task-missing", &models.UpdateTaskRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db.DB)
	task := seedTask(t, repo, "2025-W21", 60)

	require.NoError(t, repo.Delete(task.ID))
	_, err := repo.GetByID(task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(task.ID), ErrNotFound)
}

func TestTaskListNeverNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db.DB)

	tasks, err := repo.List()
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestWeekTotalsAggregateAcrossTasks(t *testing.T) {
	db := newTestDB(t)
	weeks := NewWeekRepository(db.DB)
	tasks := NewTaskRepository(db.DB)
	entries := NewTimeEntryRepository(db.DB)

	start := time.Date(2025, time.May, 19, 0, 0, 0, 0, time.UTC)
	week := seedWeek(t, weeks, start)

	taskA := seedTask(t, tasks, week.ID, 60)
	seedTask(t, tasks, week.ID, 30)
	seedEntry(t, entries, taskA.ID, 30, start.Add(14*time.Hour))

	got, err := weeks.GetByID(week.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, got.TotalPlannedMinutes)
	assert.Equal(t, 30, got.TotalActualMinutes)
}

func TestWeekUpdateTouchesDescriptiveFieldsOnly(t *testing.T) {
	db := newTestDB(t)
	weeks := NewWeekRepository(db.DB)
	start := time.Date(2025, time.May, 19, 0, 0, 0, 0, time.UTC)
	week := seedWeek(t, weeks, start)

	title := "Focus week"
	updated, err := weeks.Update(week.ID, &models.UpdateWeekRequest{Title: &title})
	require.NoError(t, err)

	require.NotNil(t, updated.Title)
	assert.Equal(t, "Focus week", *updated.Title)
	assert.Equal(t, week.ID, updated.ID)
	assert.True(t, updated.StartDate.Equal(start))
}

func TestWeekListOrderedByStartDateDescending(t *testing.T) {
	db := newTestDB(t)
	weeks := NewWeekRepository(db.DB)

	older := time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, time.May, 19, 0, 0, 0, 0, time.UTC)
	seedWeek(t, weeks, older)
	seedWeek(t, weeks, newer)

	list, err := weeks.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2025-W21", list[0].ID)
	assert.Equal(t, "2025-W20", list[1].ID)
}

func TestTimeEntryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewTimeEntryRepository(db.DB)

	start := time.Date(2025, time.May, 21, 14, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	notes := "afternoon block"
	created, err := repo.Create(models.TimeEntry{
		ID:        "entry-1",
		TaskID:    "task-1",
		StartTime: start,
		EndTime:   &end,
		Minutes:   45,
		Notes:     &notes,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	assert.True(t, created.StartTime.Equal(start))
	require.NotNil(t, created.EndTime)
	assert.True(t, created.EndTime.Equal(end))
	assert.False(t, created.IsManual)
	require.NotNil(t, created.Notes)
	assert.Equal(t, notes, *created.Notes)
}

func TestTimeEntryListFiltersByTask(t *testing.T) {
	db := newTestDB(t)
	repo := NewTimeEntryRepository(db.DB)

	start := time.Date(2025, time.May, 21, 14, 0, 0, 0, time.UTC)
	seedEntry(t, repo, "task-1", 30, start)
	seedEntry(t, repo, "task-1", 15, start.Add(time.Hour))
	seedEntry(t, repo, "task-2", 99, start)

	all, err := repo.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := repo.List("task-1")
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
}

func TestTimeEntryUpdateRederivesMinutes(t *testing.T) {
	db := newTestDB(t)
	repo := NewTimeEntryRepository(db.DB)

	start := time.Date(2025, time.May, 21, 14, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	_, err := repo.Create(models.TimeEntry{
		ID:        "entry-1",
		TaskID:    "task-1",
		StartTime: start,
		EndTime:   &end,
		Minutes:   30,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	newEnd := start.Add(90 * time.Minute)
	updated, err := repo.Update("entry-1", &models.UpdateTimeEntryRequest{EndTime: &newEnd})
	require.NoError(t, err)
	assert.Equal(t, 90, updated.Minutes)
}

func TestTimeEntryDeleteShrinksTaskActual(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskRepository(db.DB)
	entries := NewTimeEntryRepository(db.DB)

	task := seedTask(t, tasks, "2025-W21", 60)
	start := time.Date(2025, time.May, 21, 14, 0, 0, 0, time.UTC)
	entry := seedEntry(t, entries, task.ID, 30, start)

	require.NoError(t, entries.Delete(entry.ID))

	got, err := tasks.GetByID(task.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ActualMinutes)
}
