package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"weekplan/internal/models"
)

const timeInputLayout = "2006-01-02 15:04"

type formKind int

const (
	formNone formKind = iota
	formTask
	formEntry
)

// tasksModel lists one week's tasks and hosts the task / time-entry forms.
type tasksModel struct {
	stores Stores
	width  int
	height int

	weeks   []models.Week
	tasks   []models.Task
	weekIdx int
	cursor  int

	form       *huh.Form
	activeForm formKind
	formTaskID string

	// task form fields
	fTitle       *string
	fDescription *string
	fAreas       *string
	fEstimate    *string

	// entry form fields; manual mode takes minutes directly, range mode
	// derives them from the start/end pair
	fManual  *bool
	fMinutes *string
	fStart   *string
	fEnd     *string
	fNotes   *string
}

func newTasksModel(stores Stores) tasksModel {
	return tasksModel{
		stores:       stores,
		fTitle:       new(string),
		fDescription: new(string),
		fAreas:       new(string),
		fEstimate:    new(string),
		fManual:      new(bool),
		fMinutes:     new(string),
		fStart:       new(string),
		fEnd:         new(string),
		fNotes:       new(string),
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m tasksModel) formActive() bool {
	return m.activeForm != formNone
}

func (m tasksModel) setData(weeks []models.Week, tasks []models.Task) tasksModel {
	m.weeks = weeks
	m.tasks = tasks
	if m.weekIdx >= len(weeks) {
		m.weekIdx = 0
	}
	if m.cursor >= len(m.weekTasks()) {
		m.cursor = 0
	}
	return m
}

func (m tasksModel) week() (models.Week, bool) {
	if len(m.weeks) == 0 {
		return models.Week{}, false
	}
	return m.weeks[m.weekIdx], true
}

func (m tasksModel) weekTasks() []models.Task {
	week, ok := m.week()
	if !ok {
		return nil
	}
	var out []models.Task
	for _, t := range m.tasks {
		if t.WeekID == week.ID {
			out = append(out, t)
		}
	}
	return out
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive() {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		tasks := m.weekTasks()
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(tasks)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Left):
			if m.weekIdx < len(m.weeks)-1 {
				m.weekIdx++
				m.cursor = 0
			}
		case key.Matches(msg, keys.Right):
			if m.weekIdx > 0 {
				m.weekIdx--
				m.cursor = 0
			}
		case key.Matches(msg, keys.New):
			return m.showTaskForm()
		case key.Matches(msg, keys.Entry):
			if m.cursor < len(tasks) {
				return m.showEntryForm(tasks[m.cursor])
			}
		case key.Matches(msg, keys.Status):
			if m.cursor < len(tasks) {
				return m, m.cycleStatus(tasks[m.cursor])
			}
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(tasks) {
				return m, m.deleteTask(tasks[m.cursor])
			}
		}
	}
	return m, nil
}

func (m tasksModel) showTaskForm() (tasksModel, tea.Cmd) {
	*m.fTitle = ""
	*m.fDescription = ""
	*m.fAreas = ""
	*m.fEstimate = "30"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.fTitle).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().Title("Description").Value(m.fDescription),
			huh.NewInput().Title("Areas (comma separated)").Value(m.fAreas).
				Validate(func(s string) error {
					if len(splitAreas(s)) == 0 {
						return fmt.Errorf("at least one area is required")
					}
					return nil
				}),
			huh.NewInput().Title("Estimate (minutes)").Value(m.fEstimate).
				Validate(validatePositiveInt),
		).Title("New task"),
	).WithShowHelp(true).WithShowErrors(true)

	m.activeForm = formTask
	return m, m.form.Init()
}

func (m tasksModel) showEntryForm(task models.Task) (tasksModel, tea.Cmd) {
	now := time.Now()
	*m.fManual = true
	*m.fMinutes = "30"
	*m.fStart = now.Add(-30 * time.Minute).Format(timeInputLayout)
	*m.fEnd = now.Format(timeInputLayout)
	*m.fNotes = ""
	m.formTaskID = task.ID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[bool]().Title("Entry mode").
				Options(
					huh.NewOption("Manual duration", true),
					huh.NewOption("Time range", false),
				).Value(m.fManual),
		).Title("Log time: "+task.Title),
		huh.NewGroup(
			huh.NewInput().Title("Minutes").Value(m.fMinutes).
				Validate(validatePositiveInt),
		).WithHideFunc(func() bool { return !*m.fManual }),
		huh.NewGroup(
			huh.NewInput().Title("Start (YYYY-MM-DD HH:MM)").Value(m.fStart).
				Validate(validateTime),
			huh.NewInput().Title("End (YYYY-MM-DD HH:MM)").Value(m.fEnd).
				Validate(func(s string) error {
					if err := validateTime(s); err != nil {
						return err
					}
					start, err := time.ParseInLocation(timeInputLayout, *m.fStart, time.Local)
					if err != nil {
						return nil
					}
					end, _ := time.ParseInLocation(timeInputLayout, s, time.Local)
					if !end.After(start) {
						return fmt.Errorf("end must be after start")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return *m.fManual }),
		huh.NewGroup(
			huh.NewInput().Title("Notes").Value(m.fNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.activeForm = formEntry
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.activeForm = formNone
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		kind := m.activeForm
		m.activeForm = formNone
		switch kind {
		case formTask:
			return m, m.submitTask()
		case formEntry:
			return m, m.submitEntry()
		}
	}

	return m, cmd
}

func (m tasksModel) submitTask() tea.Cmd {
	week, ok := m.week()
	if !ok {
		return func() tea.Msg {
			return statusMsg{text: "No week selected", isError: true}
		}
	}

	req := models.CreateTaskRequest{
		WeekID: week.ID,
		Title:  strings.TrimSpace(*m.fTitle),
		Areas:  splitAreas(*m.fAreas),
	}
	if desc := strings.TrimSpace(*m.fDescription); desc != "" {
		req.Description = &desc
	}
	req.EstimatedMinutes, _ = strconv.Atoi(strings.TrimSpace(*m.fEstimate))

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		task, err := m.stores.Tasks.Create(ctx, req)
		if err != nil {
			return statusMsg{text: "Create failed: " + err.Error(), isError: true}
		}
		return statusMsg{text: "Created " + task.Title}
	}
}

func (m tasksModel) submitEntry() tea.Cmd {
	req := models.CreateTimeEntryRequest{
		TaskID:   m.formTaskID,
		IsManual: *m.fManual,
	}
	if notes := strings.TrimSpace(*m.fNotes); notes != "" {
		req.Notes = &notes
	}

	if req.IsManual {
		minutes, _ := strconv.Atoi(strings.TrimSpace(*m.fMinutes))
		req.Minutes = &minutes
		req.StartTime = time.Now().Add(-time.Duration(minutes) * time.Minute)
	} else {
		start, err := time.ParseInLocation(timeInputLayout, *m.fStart, time.Local)
		if err != nil {
			return func() tea.Msg {
				return statusMsg{text: "Invalid start time", isError: true}
			}
		}
		end, err := time.ParseInLocation(timeInputLayout, *m.fEnd, time.Local)
		if err != nil {
			return func() tea.Msg {
				return statusMsg{text: "Invalid end time", isError: true}
			}
		}
		req.StartTime = start
		req.EndTime = &end
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		entry, err := m.stores.Entries.Create(ctx, req)
		if err != nil {
			return statusMsg{text: "Log failed: " + err.Error(), isError: true}
		}
		return statusMsg{text: fmt.Sprintf("Logged %dm", entry.Minutes)}
	}
}

func (m tasksModel) cycleStatus(task models.Task) tea.Cmd {
	var next models.TaskStatus
	switch task.Status {
	case models.StatusNotStarted:
		next = models.StatusInProgress
	case models.StatusInProgress:
		next = models.StatusCompleted
	default:
		next = models.StatusNotStarted
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := m.stores.Tasks.SetStatus(ctx, task.ID, next); err != nil {
			return statusMsg{text: "Status change failed: " + err.Error(), isError: true}
		}
		return statusMsg{text: fmt.Sprintf("%s → %s", task.Title, next)}
	}
}

func (m tasksModel) deleteTask(task models.Task) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.stores.Tasks.Delete(ctx, task.ID); err != nil {
			return statusMsg{text: "Delete failed: " + err.Error(), isError: true}
		}
		return statusMsg{text: "Deleted " + task.Title}
	}
}

func (m tasksModel) view() string {
	w := m.width - 4
	if w < 40 {
		w = 40
	}

	if m.formActive() && m.form != nil {
		return panelStyle.Width(w).Render(m.form.View())
	}

	week, ok := m.week()
	if !ok {
		return panelStyle.Width(w).Render("No weeks yet.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Tasks · " + week.ID))
	b.WriteString("\n\n")

	tasks := m.weekTasks()
	if len(tasks) == 0 {
		b.WriteString(labelStyle.Render("No tasks this week. Press n to add one."))
	}
	for i, t := range tasks {
		line := fmt.Sprintf("%s %-30s %-12s est %s · tracked %s · %s",
			statusGlyph(t.Status), truncate(t.Title, 30), strings.Join(t.Areas, ","),
			formatMinutes(t.EstimatedMinutes), formatMinutes(t.ActualMinutes), t.Status)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return panelStyle.Width(w).Render(b.String())
}

func statusGlyph(s models.TaskStatus) string {
	switch s {
	case models.StatusCompleted:
		return statusDoneStyle.Render("✓")
	case models.StatusInProgress:
		return statusActiveStyle.Render("◐")
	default:
		return statusIdleStyle.Render("○")
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func splitAreas(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if a := strings.TrimSpace(part); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateTime(s string) error {
	if _, err := time.ParseInLocation(timeInputLayout, s, time.Local); err != nil {
		return fmt.Errorf("use YYYY-MM-DD HH:MM")
	}
	return nil
}
