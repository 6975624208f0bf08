// Package stats computes read-only summaries from entity snapshots. Every
// function is total: empty input yields zero-valued results, never an error.
package stats

import (
	"math"
	"sort"
	"time"

	"weekplan/internal/models"
)

// CompletionStats partitions a task collection by status.
type CompletionStats struct {
	Total          int
	NotStarted     int
	InProgress     int
	Completed      int
	CompletionRate int // percent, rounded
}

// Completion summarizes how much of a task collection is done.
func Completion(tasks []models.Task) CompletionStats {
	s := CompletionStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.StatusCompleted:
			s.Completed++
		case models.StatusInProgress:
			s.InProgress++
		default:
			s.NotStarted++
		}
	}
	s.CompletionRate = percent(s.Completed, s.Total)
	return s
}

// Efficiency is round(100 * actual / estimated), 0 when there is no estimate.
func Efficiency(estimatedMinutes, actualMinutes int) int {
	return percent(actualMinutes, estimatedMinutes)
}

// Variance is the signed difference between tracked and estimated minutes.
func Variance(estimatedMinutes, actualMinutes int) int {
	return actualMinutes - estimatedMinutes
}

// AreaStats summarizes the tasks tagged with one area.
type AreaStats struct {
	Area           string
	TaskCount      int
	CompletedCount int
	PlannedMinutes int
	ActualMinutes  int
	CompletionRate int
}

// AreaBreakdown groups tasks by area tag. A task tagged with several areas
// contributes its full minutes and completion status to every one of them;
// minutes are deliberately not split, so area totals exceed the plain task sum
// whenever multi-area tasks exist.
func AreaBreakdown(tasks []models.Task) []AreaStats {
	byArea := make(map[string]*AreaStats)
	for _, t := range tasks {
		for _, area := range t.Areas {
			s, ok := byArea[area]
			if !ok {
				s = &AreaStats{Area: area}
				byArea[area] = s
			}
			s.TaskCount++
			s.PlannedMinutes += t.EstimatedMinutes
			s.ActualMinutes += t.ActualMinutes
			if t.Status == models.StatusCompleted {
				s.CompletedCount++
			}
		}
	}

	out := make([]AreaStats, 0, len(byArea))
	for _, s := range byArea {
		s.CompletionRate = percent(s.CompletedCount, s.TaskCount)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Area < out[j].Area })
	return out
}

// DayStats is the tracked time for one calendar day.
type DayStats struct {
	Date    time.Time
	Minutes int
}

// Distribution is a 7-day bucketing of time entries.
type Distribution struct {
	Days [7]DayStats
	// MaxMinutes is the largest daily total, floored at 1 so proportional
	// bar rendering never divides by zero.
	MaxMinutes int
}

// DailyDistribution buckets entries into the 7 days starting at weekStart.
// An entry lands in the bucket matching the calendar date of its start time;
// the end time plays no part, even for ranges crossing midnight.
func DailyDistribution(weekStart time.Time, entries []models.TimeEntry) Distribution {
	var d Distribution
	for i := range d.Days {
		d.Days[i].Date = weekStart.AddDate(0, 0, i)
	}
	for _, e := range entries {
		for i := range d.Days {
			if sameDate(e.StartTime, d.Days[i].Date) {
				d.Days[i].Minutes += e.Minutes
				break
			}
		}
	}
	d.MaxMinutes = 1
	for i := range d.Days {
		if d.Days[i].Minutes > d.MaxMinutes {
			d.MaxMinutes = d.Days[i].Minutes
		}
	}
	return d
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}
