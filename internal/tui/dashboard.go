package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"weekplan/internal/models"
	"weekplan/internal/stats"
)

// dashboardModel renders the reflection view for one week: completion rate,
// time efficiency, per-area breakdown and the daily distribution chart.
type dashboardModel struct {
	stores Stores
	width  int
	height int

	weeks   []models.Week
	tasks   []models.Task
	entries []models.TimeEntry

	selected int // index into weeks

	chart barchart.Model
}

func newDashboardModel(stores Stores) dashboardModel {
	return dashboardModel{
		stores: stores,
		chart:  barchart.New(60, 10),
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.buildChart()
}

func (d dashboardModel) setData(weeks []models.Week, tasks []models.Task, entries []models.TimeEntry) dashboardModel {
	d.weeks = weeks
	d.tasks = tasks
	d.entries = entries

	if d.selected >= len(weeks) {
		d.selected = 0
	}
	// Weeks arrive newest first; land on the current one when the backend
	// flags it.
	for i, w := range weeks {
		if w.IsCurrentWeek {
			d.selected = i
			break
		}
	}
	d.buildChart()
	return d
}

func (d dashboardModel) week() (models.Week, bool) {
	if len(d.weeks) == 0 {
		return models.Week{}, false
	}
	return d.weeks[d.selected], true
}

// weekTasks returns the tasks assigned to the selected week.
func (d dashboardModel) weekTasks() []models.Task {
	week, ok := d.week()
	if !ok {
		return nil
	}
	var out []models.Task
	for _, t := range d.tasks {
		if t.WeekID == week.ID {
			out = append(out, t)
		}
	}
	return out
}

// weekEntries returns the entries recorded against the selected week's tasks.
func (d dashboardModel) weekEntries() []models.TimeEntry {
	taskIDs := make(map[string]bool)
	for _, t := range d.weekTasks() {
		taskIDs[t.ID] = true
	}
	var out []models.TimeEntry
	for _, e := range d.entries {
		if taskIDs[e.TaskID] {
			out = append(out, e)
		}
	}
	return out
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			// older week
			if d.selected < len(d.weeks)-1 {
				d.selected++
				d.buildChart()
			}
			return d, nil
		case key.Matches(msg, keys.Right):
			if d.selected > 0 {
				d.selected--
				d.buildChart()
			}
			return d, nil
		}
	}
	return d, nil
}

func (d *dashboardModel) buildChart() {
	chartWidth := d.width - 8
	if chartWidth < 28 {
		chartWidth = 28
	}
	chartHeight := 10
	if d.height > 26 {
		chartHeight = 14
	}

	d.chart = barchart.New(chartWidth, chartHeight)

	week, ok := d.week()
	if !ok {
		return
	}

	dist := stats.DailyDistribution(week.StartDate, d.weekEntries())

	var bars []barchart.BarData
	for _, day := range dist.Days {
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if day.Minutes == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: day.Date.Format("Mon 02"),
			Values: []barchart.BarValue{{
				Name:  day.Date.Format("2006-01-02"),
				Value: float64(day.Minutes) / 60.0,
				Style: style,
			}},
		})
	}

	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	w := d.width - 4
	if w < 40 {
		w = 40
	}

	week, ok := d.week()
	if !ok {
		return panelStyle.Width(w).Render("No weeks yet. Create one with the CLI: weekplan week new <start-date>")
	}

	title := week.ID
	if week.Title != nil && *week.Title != "" {
		title += " — " + *week.Title
	}
	if week.IsCurrentWeek {
		title += " (current)"
	}

	tasks := d.weekTasks()
	completion := stats.Completion(tasks)
	efficiency := stats.Efficiency(week.TotalPlannedMinutes, week.TotalActualMinutes)
	variance := stats.Variance(week.TotalPlannedMinutes, week.TotalActualMinutes)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%s – %s",
		week.StartDate.Format("Jan 02"), week.EndDate.Format("Jan 02, 2006"))))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Tasks      %d total · %d done · %d in progress · %d not started\n",
		completion.Total, completion.Completed, completion.InProgress, completion.NotStarted))
	b.WriteString(fmt.Sprintf("Completion %d%%\n", completion.CompletionRate))
	b.WriteString(fmt.Sprintf("Planned    %s   Tracked %s   Efficiency %d%% (%+d min)\n",
		formatMinutes(week.TotalPlannedMinutes), formatMinutes(week.TotalActualMinutes), efficiency, variance))

	areas := stats.AreaBreakdown(tasks)
	if len(areas) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Areas"))
		b.WriteString("\n")
		for _, a := range areas {
			b.WriteString(fmt.Sprintf("  %-14s %2d tasks  %s planned  %s tracked  %d%% done\n",
				a.Area, a.TaskCount, formatMinutes(a.PlannedMinutes), formatMinutes(a.ActualMinutes), a.CompletionRate))
		}
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Tracked hours per day"))
	b.WriteString("\n")
	b.WriteString(d.chart.View())

	return panelStyle.Width(w).Render(b.String())
}

func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", m/60, m%60)
}
