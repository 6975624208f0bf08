package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"weekplan/internal/client"
	"weekplan/internal/database"
	"weekplan/internal/handler"
	"weekplan/internal/models"
	"weekplan/internal/repository"
	"weekplan/internal/service"
	"weekplan/internal/stats"
	"weekplan/internal/store"
)

// testBackend wires the full server stack over an in-memory database and
// exposes the stores talking to it, exercising the same path the CLI uses.
type testBackend struct {
	tasks   *store.TaskStore
	weeks   *store.WeekStore
	entries *store.EntryStore
	client  *client.Client
}

func newTestBackend(t *testing.T) testBackend {
	t.Helper()
	log := zap.NewNop()

	db, err := database.NewMemory(log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	taskHandler := handler.NewTaskHandler(service.NewTaskService(repository.NewTaskRepository(db.DB)), log)
	weekHandler := handler.NewWeekHandler(service.NewWeekService(repository.NewWeekRepository(db.DB)), log)
	entryHandler := handler.NewTimeEntryHandler(service.NewTimeEntryService(repository.NewTimeEntryRepository(db.DB)), log)

	srv := httptest.NewServer(New(taskHandler, weekHandler, entryHandler, log))
	t.Cleanup(srv.Close)

	c := client.New(srv.URL, 5*time.Second, log)
	return testBackend{
		tasks:   store.NewTaskStore(client.NewResource[models.Task](c, "/tasks"), log),
		weeks:   store.NewWeekStore(client.NewResource[models.Week](c, "/weeks"), log),
		entries: store.NewEntryStore(client.NewResource[models.TimeEntry](c, "/timeEntries"), log),
		client:  c,
	}
}

func TestHealthEndpoint(t *testing.T) {
	b := newTestBackend(t)
	require.NoError(t, b.client.HealthCheck(context.Background()))
}

// Plan a week, estimate a task at 60 minutes, track 30: the backend reports
// 30 actual minutes and the efficiency summary lands at 50%.
func TestPlanTrackReflectFlow(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	start := time.Date(2025, time.May, 19, 0, 0, 0, 0, time.UTC)
	week, err := b.weeks.Create(ctx, models.CreateWeekRequest{StartDate: start})
	require.NoError(t, err)
	require.Equal(t, "2025-W21", week.ID)

	task, err := b.tasks.Create(ctx, models.CreateTaskRequest{
		WeekID:           week.ID,
		Title:            "Write report",
		Areas:            []string{"work"},
		EstimatedMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, task.ActualMinutes)

	thirty := 30
	_, err = b.entries.Create(ctx, models.CreateTimeEntryRequest{
		TaskID:    task.ID,
		StartTime: start.Add(14 * time.Hour),
		Minutes:   &thirty,
		IsManual:  true,
	})
	require.NoError(t, err)

	require.NoError(t, b.tasks.Refresh(ctx))
	require.NoError(t, b.weeks.Refresh(ctx))

	tracked, ok := b.tasks.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, 30, tracked.ActualMinutes)

	planned, ok := b.weeks.Get(week.ID)
	require.True(t, ok)
	assert.Equal(t, 60, planned.TotalPlannedMinutes)
	assert.Equal(t, 30, planned.TotalActualMinutes)
	assert.Equal(t, 50, stats.Efficiency(planned.TotalPlannedMinutes, planned.TotalActualMinutes))
}

func TestCreateSurvivesRoundTripThroughServer(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	start := time.Date(2025, time.May, 19, 0, 0, 0, 0, time.UTC)
	_, err := b.weeks.Create(ctx, models.CreateWeekRequest{StartDate: start})
	require.NoError(t, err)

	created, err := b.tasks.Create(ctx, models.CreateTaskRequest{
		WeekID:           "2025-W21",
		Title:            "Review PRs",
		Areas:            []string{"work", "code"},
		EstimatedMinutes: 45,
	})
	require.NoError(t, err)

	// The store holds the server-normalized record after the create confirms.
	local, ok := b.tasks.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"work", "code"}, local.Areas)
	assert.Equal(t, models.StatusNotStarted, local.Status)
}

func TestUpdateAndDeleteThroughServer(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	start := time.Date(2025, time.May, 19, 0, 0, 0, 0, time.UTC)
	_, err := b.weeks.Create(ctx, models.CreateWeekRequest{StartDate: start})
	require.NoError(t, err)

	task, err := b.tasks.Create(ctx, models.CreateTaskRequest{
		WeekID:           "2025-W21",
		Title:            "Draft",
		Areas:            []string{"writing"},
		EstimatedMinutes: 30,
	})
	require.NoError(t, err)

	updated, err := b.tasks.SetStatus(ctx, task.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, "Draft", updated.Title)

	require.NoError(t, b.tasks.Delete(ctx, task.ID))
	require.NoError(t, b.tasks.Refresh(ctx))
	assert.Zero(t, b.tasks.Len())
}

func TestEntryFilterByTask(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	start := time.Date(2025, time.May, 19, 0, 0, 0, 0, time.UTC)
	_, err := b.weeks.Create(ctx, models.CreateWeekRequest{StartDate: start})
	require.NoError(t, err)

	taskA, err := b.tasks.Create(ctx, models.CreateTaskRequest{
		WeekID: "2025-W21", Title: "A", Areas: []string{"work"}, EstimatedMinutes: 30,
	})
	require.NoError(t, err)
	taskB, err := b.tasks.Create(ctx, models.CreateTaskRequest{
		WeekID: "2025-W21", Title: "B", Areas: []string{"work"}, EstimatedMinutes: 30,
	})
	require.NoError(t, err)

	fifteen := 15
	for _, taskID := range []string{taskA.ID, taskA.ID, taskB.ID} {
		_, err = b.entries.Create(ctx, models.CreateTimeEntryRequest{
			TaskID:    taskID,
			StartTime: start.Add(10 * time.Hour),
			Minutes:   &fifteen,
			IsManual:  true,
		})
		require.NoError(t, err)
	}

	filtered, err := client.NewResource[models.TimeEntry](b.client, "/timeEntries?taskId="+taskA.ID).List(ctx)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
}

func TestValidationErrorsNeverReachTheWire(t *testing.T) {
	b := newTestBackend(t)

	_, err := b.tasks.Create(context.Background(), models.CreateTaskRequest{Title: "no week"})

	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, b.tasks.Len(), "rejected draft must not linger locally")
}

// A record deleted behind the store's back makes the next edit fail with 404;
// the optimistic change rolls back to the pre-edit state.
func TestStaleEditRollsBackOn404(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	start := time.Date(2025, time.May, 19, 0, 0, 0, 0, time.UTC)
	_, err := b.weeks.Create(ctx, models.CreateWeekRequest{StartDate: start})
	require.NoError(t, err)

	task, err := b.tasks.Create(ctx, models.CreateTaskRequest{
		WeekID:           "2025-W21",
		Title:            "stale",
		Areas:            []string{"work"},
		EstimatedMinutes: 10,
	})
	require.NoError(t, err)

	// Another client removes the record server-side.
	other := store.NewTaskStore(client.NewResource[models.Task](b.client, "/tasks"), zap.NewNop())
	require.NoError(t, other.Refresh(ctx))
	require.NoError(t, other.Delete(ctx, task.ID))

	_, err = b.tasks.SetStatus(ctx, task.ID, models.StatusCompleted)
	var remoteErr *client.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusNotFound, remoteErr.StatusCode)

	local, ok := b.tasks.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusNotStarted, local.Status, "rollback restores the pre-edit status")
}
