package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/THRIPURASRI/voicenudge-cli/models"
	"github.com/charmbracelet/bubbles/textinput"
)

// dashboardModel is the authenticated screen: the task list, the completed
// history view, the free-text task composer, the voice-note composer and the
// due-date scheduler.
type dashboardModel struct {
	user    models.User
	tasks   []models.Task
	history []models.HistoryEntry

	showHistory bool
	idx         int
	loading     bool
	status      string

	composing    bool
	newTaskInput textinput.Model

	voiceMode bool
	recorder  recorderModel

	scheduling bool
	dueTaskID  int64
	dueInput   textinput.Model

	confirmClear bool
}

func newDashboardModel(user models.User) dashboardModel {
	taskInput := textinput.New()
	taskInput.Placeholder = "e.g. call the dentist tomorrow at 10am"
	taskInput.CharLimit = 512
	taskInput.Width = 56

	dueInput := textinput.New()
	dueInput.Placeholder = "2026-09-01T10:30"
	dueInput.CharLimit = 19
	dueInput.Width = 24

	return dashboardModel{
		user:         user,
		loading:      true,
		newTaskInput: taskInput,
		recorder:     newRecorderModel(),
		dueInput:     dueInput,
	}
}

func (m dashboardModel) currentTask() (models.Task, bool) {
	if m.showHistory || m.idx < 0 || m.idx >= len(m.tasks) {
		return models.Task{}, false
	}
	return m.tasks[m.idx], true
}

func (m dashboardModel) View(min, max time.Duration) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Signed in as %s <%s>\n\n", m.user.Name, m.user.Email))

	if m.composing {
		b.WriteString("New task │ [")
		b.WriteString(m.newTaskInput.View())
		b.WriteString("]\n\n")
	}
	if m.voiceMode {
		b.WriteString(m.recorder.view(min, max))
		b.WriteString("\n")
	}
	if m.scheduling {
		b.WriteString("Due at (YYYY-MM-DDTHH:MM) │ [")
		b.WriteString(m.dueInput.View())
		b.WriteString("]\n\n")
	}

	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case m.showHistory:
		b.WriteString(m.historyView())
	default:
		b.WriteString(m.tasksView())
	}

	if m.confirmClear {
		b.WriteString("\nClear the whole history? (y/n)\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.status))
		b.WriteString("\n")
	}

	title := "TASKS"
	hotKeys := "n: new │ v: voice │ d: due │ c: complete │ y: copy │ h: history │ r: refresh │ l: log out"
	if m.showHistory {
		title = "HISTORY"
		hotKeys = "h: back to tasks │ x: clear history │ r: refresh │ l: log out"
	}
	switch {
	case m.composing:
		hotKeys = "enter: save task │ esc: cancel"
	case m.voiceMode:
		hotKeys = "enter: create task │ esc: cancel │ " + recorderHotKeys(m.recorder)
	case m.scheduling:
		hotKeys = "enter: set due date │ esc: cancel"
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m dashboardModel) tasksView() string {
	if len(m.tasks) == 0 {
		return "No open tasks. Press n to add one.\n"
	}

	var b strings.Builder
	for i, task := range m.tasks {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-34s %-12s %s\n",
			cursor, fitText(task.Title, 34), valueOrDash(task.Category), valueOrDash(task.DueAt)))
	}
	return b.String()
}

func (m dashboardModel) historyView() string {
	if len(m.history) == 0 {
		return "History is empty.\n"
	}

	var b strings.Builder
	for _, entry := range m.history {
		b.WriteString(fmt.Sprintf("  %-34s %-10s %s\n",
			fitText(entry.Title, 34), entry.Status, valueOrDash(entry.CompletedAt)))
	}
	return b.String()
}
