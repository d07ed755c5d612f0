package tui

import (
	"github.com/THRIPURASRI/voicenudge-cli/models"
)

type loginDoneMsg struct {
	outcome models.Outcome
	err     error
}

type verifyDoneMsg struct {
	outcome models.Outcome
	err     error
}

type registerDoneMsg struct {
	err error
}

// questionDebounceMsg fires after the typing pause on the email field. seq
// guards against stale timers: only the latest scheduled debounce may
// trigger a fetch.
type questionDebounceMsg struct {
	seq int
}

type questionFetchedMsg struct {
	seq      int
	question string
}

type recorderTickMsg struct{}

type sessionCheckMsg struct{}

type tasksLoadedMsg struct {
	tasks []models.Task
	err   error
}

type historyLoadedMsg struct {
	entries []models.HistoryEntry
	err     error
}

type taskSavedMsg struct {
	task models.Task
	err  error
}

type taskScheduledMsg struct {
	schedule models.TaskSchedule
	err      error
}

type taskCompletedMsg struct {
	err error
}

type historyClearedMsg struct {
	err error
}

type logoutDoneMsg struct{}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
