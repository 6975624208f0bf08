package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"weekplan/internal/models"
	"weekplan/internal/store"
)

type viewState int

const (
	viewDashboard viewState = iota
	viewTasks
)

// Stores bundles the three resource mirrors the views bind to. They are
// constructed once at startup and passed by reference; there are no global
// store singletons.
type Stores struct {
	Tasks   *store.TaskStore
	Weeks   *store.WeekStore
	Entries *store.EntryStore
}

// App is the root Bubble Tea model.
type App struct {
	stores Stores
	width  int
	height int

	activeView viewState
	showHelp   bool

	dashboard dashboardModel
	tasks     tasksModel

	help   help.Model
	status string
	isErr  bool
}

func NewApp(stores Stores) App {
	h := help.New()
	h.ShowAll = false

	return App{
		stores:     stores,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(stores),
		tasks:      newTasksModel(stores),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return refreshCmd(a.stores)
}

// refreshedMsg carries the post-refresh snapshots down to the views.
type refreshedMsg struct {
	weeks   []models.Week
	tasks   []models.Task
	entries []models.TimeEntry
	err     error
}

type statusMsg struct {
	text    string
	isError bool
}

// refreshCmd re-fetches all three collections. Each store keeps its last known
// good data when its fetch fails, so a partial failure degrades rather than
// blanks the UI.
func refreshCmd(s Stores) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var firstErr error
		for _, refresh := range []func(context.Context) error{
			s.Weeks.Refresh,
			s.Tasks.Refresh,
			s.Entries.Refresh,
		} {
			if err := refresh(ctx); err != nil && firstErr == nil {
				firstErr = err
			}
		}

		return refreshedMsg{
			weeks:   s.Weeks.Items(),
			tasks:   s.Tasks.Items(),
			entries: s.Entries.Items(),
			err:     firstErr,
		}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		return a, nil

	case refreshedMsg:
		if msg.err != nil {
			a.status = msg.err.Error()
			a.isErr = true
		} else {
			a.status = ""
			a.isErr = false
		}
		a.dashboard = a.dashboard.setData(msg.weeks, msg.tasks, msg.entries)
		a.tasks = a.tasks.setData(msg.weeks, msg.tasks)
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.isErr = msg.isError
		if !msg.isError {
			return a, refreshCmd(a.stores)
		}
		return a, nil

	case tea.KeyMsg:
		if a.tasks.formActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTasks
			return a, nil
		case key.Matches(msg, keys.Refresh):
			return a, refreshCmd(a.stores)
		}
		return a.updateActiveView(msg)
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	default:
		a.dashboard, cmd = a.dashboard.update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	dashTab := inactiveTabStyle.Render("1 Dashboard")
	tasksTab := inactiveTabStyle.Render("2 Tasks")
	if a.activeView == viewDashboard {
		dashTab = activeTabStyle.Render("1 Dashboard")
	} else {
		tasksTab = activeTabStyle.Render("2 Tasks")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, dashTab, tasksTab)

	var content string
	switch a.activeView {
	case viewTasks:
		content = a.tasks.view()
	default:
		content = a.dashboard.view()
	}

	status := a.status
	if a.isErr {
		status = errorStyle.Render(status)
	}
	footer := a.help.View(keys)
	if status != "" {
		footer = status + "\n" + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}
