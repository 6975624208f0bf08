package stats

import (
	"testing"
	"time"

	"weekplan/internal/models"
)

func task(id string, status models.TaskStatus, estimated, actual int, areas ...string) models.Task {
	return models.Task{
		ID:               id,
		WeekID:           "2025-W21",
		Title:            id,
		Areas:            areas,
		EstimatedMinutes: estimated,
		ActualMinutes:    actual,
		Status:           status,
	}
}

func TestCompletionEmpty(t *testing.T) {
	got := Completion(nil)
	if got.Total != 0 || got.CompletionRate != 0 {
		t.Errorf("empty input must yield zeros, got %+v", got)
	}
}

func TestCompletion(t *testing.T) {
	tasks := []models.Task{
		task("a", models.StatusCompleted, 60, 50, "work"),
		task("b", models.StatusCompleted, 30, 40, "work"),
		task("c", models.StatusInProgress, 45, 10, "health"),
	}
	got := Completion(tasks)
	if got.Total != 3 || got.Completed != 2 || got.InProgress != 1 || got.NotStarted != 0 {
		t.Errorf("wrong partition: %+v", got)
	}
	// round(100 * 2/3) = 67
	if got.CompletionRate != 67 {
		t.Errorf("CompletionRate = %d, want 67", got.CompletionRate)
	}
}

func TestEfficiency(t *testing.T) {
	tests := []struct {
		estimated, actual, want int
	}{
		{0, 0, 0},
		{0, 120, 0}, // no estimate, no rate
		{60, 30, 50},
		{60, 0, 0},
		{60, 90, 150},
		{90, 60, 67},
	}
	for _, tt := range tests {
		if got := Efficiency(tt.estimated, tt.actual); got != tt.want {
			t.Errorf("Efficiency(%d, %d) = %d, want %d", tt.estimated, tt.actual, got, tt.want)
		}
	}
}

func TestVariance(t *testing.T) {
	if got := Variance(60, 90); got != 30 {
		t.Errorf("Variance = %d, want 30", got)
	}
	if got := Variance(60, 45); got != -15 {
		t.Errorf("Variance = %d, want -15", got)
	}
}

// A task tagged with two areas contributes its full minutes to both: area
// sums deliberately exceed the plain task sum.
func TestAreaBreakdownDoubleCounts(t *testing.T) {
	tasks := []models.Task{
		task("a", models.StatusCompleted, 60, 45, "work", "health"),
		task("b", models.StatusNotStarted, 30, 0, "work"),
	}
	areas := AreaBreakdown(tasks)
	if len(areas) != 2 {
		t.Fatalf("expected 2 areas, got %d", len(areas))
	}

	byName := map[string]AreaStats{}
	totalPlanned := 0
	for _, a := range areas {
		byName[a.Area] = a
		totalPlanned += a.PlannedMinutes
	}

	if byName["health"].PlannedMinutes != 60 || byName["health"].ActualMinutes != 45 {
		t.Errorf("health got %+v, want full task minutes", byName["health"])
	}
	if byName["work"].PlannedMinutes != 90 {
		t.Errorf("work planned = %d, want 90", byName["work"].PlannedMinutes)
	}
	if taskSum := 60 + 30; totalPlanned <= taskSum {
		t.Errorf("area sum %d should exceed task sum %d", totalPlanned, taskSum)
	}
	if byName["health"].CompletionRate != 100 || byName["work"].CompletionRate != 50 {
		t.Errorf("completion rates wrong: %+v", byName)
	}
}

func TestAreaBreakdownEmpty(t *testing.T) {
	if got := AreaBreakdown(nil); len(got) != 0 {
		t.Errorf("expected no areas, got %v", got)
	}
}

func TestDailyDistributionBucketsByStartDate(t *testing.T) {
	weekStart := time.Date(2025, time.May, 19, 0, 0, 0, 0, time.UTC) // Monday
	entries := []models.TimeEntry{
		{
			ID:        "entry-1",
			TaskID:    "task-1",
			StartTime: time.Date(2025, time.May, 21, 14, 0, 0, 0, time.UTC),
			Minutes:   45,
		},
	}

	dist := DailyDistribution(weekStart, entries)
	for i, day := range dist.Days {
		want := 0
		if day.Date.Format("2006-01-02") == "2025-05-21" {
			want = 45
		}
		if day.Minutes != want {
			t.Errorf("day %d (%s) = %d, want %d", i, day.Date.Format("2006-01-02"), day.Minutes, want)
		}
	}
	if dist.MaxMinutes != 45 {
		t.Errorf("MaxMinutes = %d, want 45", dist.MaxMinutes)
	}
}

func TestDailyDistributionEmptyScalesToOne(t *testing.T) {
	weekStart := time.Date(2025, time.May, 19, 0, 0, 0, 0, time.UTC)
	dist := DailyDistribution(weekStart, nil)
	// Floor of 1 keeps proportional rendering division-safe.
	if dist.MaxMinutes != 1 {
		t.Errorf("MaxMinutes = %d, want 1", dist.MaxMinutes)
	}
	for _, day := range dist.Days {
		if day.Minutes != 0 {
			t.Errorf("expected empty bucket, got %d", day.Minutes)
		}
	}
}

func TestDailyDistributionIgnoresOutOfWindowEntries(t *testing.T) {
	weekStart := time.Date(2025, time.May, 19, 0, 0, 0, 0, time.UTC)
	entries := []models.TimeEntry{
		{ID: "e1", StartTime: weekStart.AddDate(0, 0, -1), Minutes: 30},
		{ID: "e2", StartTime: weekStart.AddDate(0, 0, 7), Minutes: 30},
		{ID: "e3", StartTime: weekStart.AddDate(0, 0, 3).Add(9 * time.Hour), Minutes: 20},
		{ID: "e4", StartTime: weekStart.AddDate(0, 0, 3).Add(20 * time.Hour), Minutes: 25},
	}
	dist := DailyDistribution(weekStart, entries)

	total := 0
	for _, day := range dist.Days {
		total += day.Minutes
	}
	if total != 45 {
		t.Errorf("in-window total = %d, want 45", total)
	}
	if dist.Days[3].Minutes != 45 {
		t.Errorf("Thursday bucket = %d, want 45", dist.Days[3].Minutes)
	}
}

// Aggregates are pure: the same snapshot always produces the same output.
func TestAggregatesAreDeterministic(t *testing.T) {
	tasks := []models.Task{
		task("a", models.StatusCompleted, 60, 45, "work", "deep"),
		task("b", models.StatusInProgress, 30, 15, "health"),
	}
	first := AreaBreakdown(tasks)
	for i := 0; i < 5; i++ {
		again := AreaBreakdown(tasks)
		if len(again) != len(first) {
			t.Fatal("length varies")
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("output varies at %d: %+v vs %+v", j, again[j], first[j])
			}
		}
	}
}
