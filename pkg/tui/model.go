// Package tui renders a live view of the active log that follows changes
// to the data directory.
package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stefanpenner/loiter/pkg/model"
	"github.com/stefanpenner/loiter/pkg/store"
	"github.com/stefanpenner/loiter/pkg/timeparse"
	"github.com/stefanpenner/loiter/pkg/tracker"
)

const tickInterval = time.Second

// StoreChangedMsg is sent when the file watcher detects changes.
type StoreChangedMsg struct{}

type tickMsg time.Time

// Model is the Bubble Tea model for the status view.
type Model struct {
	store  *store.Store
	keys   KeyMap
	width  int
	height int
	now    time.Time

	status  *tracker.LogStatus
	project *model.Project
	task    *model.Task
	today   timeparse.Duration // finished logs started today
	err     error

	showHelpModal bool
}

// NewModel creates a status model and loads the current state from s.
func NewModel(s *store.Store) Model {
	m := Model{
		store: s,
		keys:  DefaultKeyMap(),
	}
	m.reload()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), tick())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case StoreChangedMsg:
		m.reload()
		return m, nil

	case tickMsg:
		m.now = m.store.Now()
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.showHelpModal && msg.String() != "ctrl+c" {
				m.showHelpModal = false
				return m, nil
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelpModal = !m.showHelpModal
		case key.Matches(msg, m.keys.Reload):
			m.reload()
		}
	}
	return m, nil
}

// Active reports whether a log is being tracked.
func (m Model) Active() bool {
	return m.status != nil
}

// Elapsed is how long the active log has been running.
func (m Model) Elapsed() timeparse.Duration {
	if m.status == nil {
		return 0
	}
	return tracker.Elapsed(m.status.Log, m.now)
}

// Today is the time logged today, including the active log.
func (m Model) Today() timeparse.Duration {
	total := m.today
	if m.status != nil && m.status.Log.Start != nil && timeparse.Today().Matches(*m.status.Log.Start, m.now) {
		total += m.Elapsed()
	}
	return total
}

func (m *Model) reload() {
	m.now = m.store.Now()
	m.status, m.project, m.task, m.err = nil, nil, nil, nil

	status, err := tracker.Status(m.store)
	if err != nil {
		m.err = err
		return
	}
	m.status = status

	if status != nil {
		l := status.Log
		if m.project, err = m.store.Project(l.ProjectID); err != nil {
			m.err = err
			return
		}
		if l.HasTask() {
			if m.task, err = m.store.Task(l.ProjectID, l.TaskID); err != nil {
				m.err = err
				return
			}
		}
	}

	logs, err := tracker.ListLogs(m.store, tracker.ListLogsParams{
		Logs: tracker.LogQuery{Start: "today"},
	})
	if err != nil {
		m.err = err
		return
	}
	m.today = 0
	for _, l := range logs {
		if l.Duration != nil {
			m.today += *l.Duration
		}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run shows the status view until the user quits, refreshing whenever
// the data directory changes.
func Run(s *store.Store) error {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen())

	cleanup, err := StartWatcher(s.Root, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file watcher failed: %v\n", err)
	} else {
		defer cleanup()
	}

	_, err = p.Run()
	return err
}
