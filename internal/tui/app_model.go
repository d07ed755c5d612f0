package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/THRIPURASRI/voicenudge-cli/internal/adapter"
	"github.com/THRIPURASRI/voicenudge-cli/internal/capture"
	"github.com/THRIPURASRI/voicenudge-cli/internal/config"
	"github.com/THRIPURASRI/voicenudge-cli/internal/service"
	"github.com/THRIPURASRI/voicenudge-cli/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenWelcome screen = iota
	screenLogin
	screenRegister
	screenDashboard
)

type appMode int

const (
	modeLogin appMode = iota
	modeMain
)

const (
	questionDebounceAfter = 500 * time.Millisecond
	recorderTickEvery     = 250 * time.Millisecond
	sessionCheckEvery     = 3 * time.Second
)

type appModel struct {
	ctx      context.Context
	services *service.ClientServices
	engine   *capture.Engine
	slot     *sampleSlot
	policy   config.ClientCapture

	mode          appMode
	currentScreen screen

	welcome   welcomeModel
	login     loginModel
	register  registerModel
	dashboard dashboardModel

	err          error
	showError    bool
	errorOverlay errorOverlayModel

	authenticated bool
	logout        bool
	sessionLost   bool
}

func newLoginAppModel(ctx context.Context, t *TUI, prefillEmail string) appModel {
	return appModel{
		ctx:           ctx,
		services:      t.services,
		engine:        t.engine,
		slot:          t.slot,
		policy:        t.policy,
		mode:          modeLogin,
		currentScreen: screenWelcome,
		welcome:       newWelcomeModel(t.version),
		login:         newLoginModel(prefillEmail),
		register:      newRegisterModel(),
	}
}

func newMainAppModel(ctx context.Context, t *TUI, user models.User) appModel {
	m := newLoginAppModel(ctx, t, "")
	m.mode = modeMain
	m.currentScreen = screenDashboard
	m.dashboard = newDashboardModel(user)
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.mode == modeMain {
		return tea.Batch(m.cmdLoadTasks(), cmdSessionCheck())
	}
	return textinput.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}

	case loginDoneMsg:
		return m.onLoginDone(msg)

	case verifyDoneMsg:
		return m.onVerifyDone(msg)

	case registerDoneMsg:
		m.register.submitting = false
		if msg.err != nil {
			m.showErrorf(humanizeServerUnavailableError(msg.err))
			return m, nil
		}
		// Carry the fresh identity over to the login form.
		email := strings.TrimSpace(m.register.inputs[registerFieldEmail].Value())
		m.login = newLoginModel(email)
		m.login.recorder.notice = "Account created. Sign in with your new credentials."
		m.currentScreen = screenLogin
		return m, textinput.Blink

	case questionDebounceMsg:
		if m.currentScreen != screenLogin || m.login.challenge || msg.seq != m.login.questionSeq {
			return m, nil
		}
		email := strings.TrimSpace(m.login.inputs[loginFieldEmail].Value())
		if !models.IsPlausibleEmail(email) {
			return m, nil
		}
		return m, m.cmdFetchQuestion(msg.seq, email)

	case questionFetchedMsg:
		if m.currentScreen == screenLogin && !m.login.challenge &&
			msg.seq == m.login.questionSeq && msg.question != "" {
			m.login.question = msg.question
		}
		return m, nil

	case recorderTickMsg:
		return m.onRecorderTick()

	case sessionCheckMsg:
		if m.mode != modeMain {
			return m, nil
		}
		if m.services.Session.State() != service.SessionAuthenticated {
			m.sessionLost = true
			return m, tea.Quit
		}
		return m, cmdSessionCheck()

	case tasksLoadedMsg:
		m.dashboard.loading = false
		if msg.err != nil {
			return m.failDashboard(msg.err)
		}
		m.dashboard.tasks = msg.tasks
		if m.dashboard.idx >= len(m.dashboard.tasks) {
			m.dashboard.idx = len(m.dashboard.tasks) - 1
		}
		if m.dashboard.idx < 0 {
			m.dashboard.idx = 0
		}
		return m, nil

	case historyLoadedMsg:
		m.dashboard.loading = false
		if msg.err != nil {
			return m.failDashboard(msg.err)
		}
		m.dashboard.history = msg.entries
		return m, nil

	case taskSavedMsg:
		if msg.err != nil {
			return m.failDashboard(msg.err)
		}
		m.dashboard.composing = false
		m.dashboard.newTaskInput.Reset()
		m.dashboard.newTaskInput.Blur()
		m.dashboard.voiceMode = false
		m.dashboard.recorder.sample = nil
		m.dashboard.recorder.notice = ""
		if msg.task.Note != "" {
			m.dashboard.status = msg.task.Note
		} else {
			m.dashboard.status = "Task added"
		}
		m.dashboard.loading = true
		return m, tea.Batch(m.cmdLoadTasks(), cmdClearStatus())

	case taskScheduledMsg:
		if msg.err != nil {
			if errors.Is(msg.err, models.ErrInvalidDueDate) {
				m.showErrorf("The due time must look like 2026-09-01T10:30")
				return m, nil
			}
			return m.failDashboard(msg.err)
		}
		m.dashboard.scheduling = false
		m.dashboard.dueInput.Reset()
		m.dashboard.dueInput.Blur()
		if msg.schedule.Message != "" {
			m.dashboard.status = msg.schedule.Message
		} else {
			m.dashboard.status = "Due date set"
		}
		m.dashboard.loading = true
		return m, tea.Batch(m.cmdLoadTasks(), cmdClearStatus())

	case taskCompletedMsg:
		if msg.err != nil {
			return m.failDashboard(msg.err)
		}
		m.dashboard.status = "Task completed"
		m.dashboard.loading = true
		return m, tea.Batch(m.cmdLoadTasks(), cmdClearStatus())

	case historyClearedMsg:
		if msg.err != nil {
			return m.failDashboard(msg.err)
		}
		m.dashboard.history = nil
		m.dashboard.status = "History cleared"
		return m, cmdClearStatus()

	case logoutDoneMsg:
		m.logout = true
		return m, tea.Quit

	case copiedMsg:
		if msg.err != nil {
			m.dashboard.status = fmt.Sprintf("Copy failed: %v", msg.err)
		} else {
			m.dashboard.status = "Copied!"
		}
		return m, cmdClearStatus()

	case clearStatusMsg:
		m.dashboard.status = ""
		return m, nil

	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenWelcome:
		return m.updateWelcome(msg)
	case screenLogin:
		return m.updateLogin(msg)
	case screenRegister:
		return m.updateRegister(msg)
	case screenDashboard:
		return m.updateDashboard(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenWelcome:
		body = m.welcome.View()
	case screenLogin:
		body = m.login.view(m.policy.MinSampleDuration, m.policy.MaxSampleDuration)
	case screenRegister:
		body = m.register.view(m.policy.MinSampleDuration, m.policy.MaxSampleDuration)
	case screenDashboard:
		body = m.dashboard.View(m.policy.MinSampleDuration, m.policy.MaxSampleDuration)
	}

	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

// failDashboard routes an error from an authenticated call: a 401/403 means
// the session is gone and the main loop must hand control back to the login
// flow; anything else is surfaced in the overlay.
func (m appModel) failDashboard(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, adapter.ErrUnauthorized) || errors.Is(err, adapter.ErrForbidden) {
		m.sessionLost = true
		return m, tea.Quit
	}
	m.showErrorf(humanizeServerUnavailableError(err))
	return m, nil
}

// ── screen updates ────────────────────────────────────────────────────────────

func (m appModel) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.welcome.idx > 0 {
			m.welcome.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.welcome.idx < len(m.welcome.items)-1 {
			m.welcome.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		if m.welcome.idx == 0 {
			m.currentScreen = screenLogin
		} else {
			m.currentScreen = screenRegister
		}
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.quit):
		m.err = ErrUserQuit
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.login.challenge {
		return m.updateLoginChallenge(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		if rec, cmd, handled := m.updateRecorder(m.login.recorder, keyMsg); handled {
			m.login.recorder = rec
			return m, cmd
		}

		switch {
		case key.Matches(keyMsg, keys.quit):
			m.err = ErrUserQuit
			return m, tea.Quit
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.login = focusNextLogin(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login = focusPrevLogin(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting {
				return m, nil
			}
			email := strings.TrimSpace(m.login.inputs[loginFieldEmail].Value())
			pass := m.login.inputs[loginFieldPassword].Value()
			if email == "" || pass == "" {
				m.showErrorf("Email and password are required")
				return m, nil
			}
			if m.login.recorder.sample == nil {
				m.login.recorder.notice = "No voice sample attached: voice verification will be skipped"
			}
			m.login.submitting = true
			return m, m.cmdLogin(models.Credentials{Email: email, Password: pass}, m.login.recorder.sample)
		}
	}

	before := m.login.inputs[loginFieldEmail].Value()
	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)

	// A typing pause on a plausible address prefetches the security
	// question so the fallback hint shows up before the first submit.
	after := m.login.inputs[loginFieldEmail].Value()
	if after != before && strings.TrimSpace(after) != m.login.lastEmail {
		m.login.lastEmail = strings.TrimSpace(after)
		m.login.question = ""
		if models.IsPlausibleEmail(after) {
			m.login.questionSeq++
			return m, tea.Batch(cmd, cmdQuestionDebounce(m.login.questionSeq))
		}
	}
	return m, cmd
}

func (m appModel) updateLoginChallenge(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.quit):
			m.err = ErrUserQuit
			return m, tea.Quit
		case key.Matches(keyMsg, keys.esc):
			m.login.challenge = false
			m.login.inputs[loginFieldAnswer].Blur()
			m.login.inputs[loginFieldAnswer].Reset()
			m.login.inputs[m.login.focus].Focus()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting {
				return m, nil
			}
			answer := strings.TrimSpace(m.login.inputs[loginFieldAnswer].Value())
			if answer == "" {
				m.showErrorf("The answer must not be empty")
				return m, nil
			}
			email := strings.TrimSpace(m.login.inputs[loginFieldEmail].Value())
			m.login.submitting = true
			return m, m.cmdVerify(email, answer)
		}
	}

	var cmd tea.Cmd
	m.login.inputs[loginFieldAnswer], cmd = m.login.inputs[loginFieldAnswer].Update(msg)
	return m, cmd
}

func (m appModel) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		if rec, cmd, handled := m.updateRecorder(m.register.recorder, keyMsg); handled {
			m.register.recorder = rec
			return m, cmd
		}

		switch {
		case key.Matches(keyMsg, keys.quit):
			m.err = ErrUserQuit
			return m, tea.Quit
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenWelcome
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.register = focusNextRegister(m.register)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.register = focusPrevRegister(m.register)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.register.submitting {
				return m, nil
			}
			return m.submitRegister()
		}
	}

	var cmd tea.Cmd
	m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
	return m, cmd
}

func (m appModel) submitRegister() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.register.inputs[registerFieldName].Value())
	email := strings.TrimSpace(m.register.inputs[registerFieldEmail].Value())
	pass := m.register.inputs[registerFieldPassword].Value()
	repeat := m.register.inputs[registerFieldRepeat].Value()
	question := strings.TrimSpace(m.register.inputs[registerFieldQuestion].Value())
	answer := strings.TrimSpace(m.register.inputs[registerFieldAnswer].Value())
	image := strings.TrimSpace(m.register.inputs[registerFieldImage].Value())

	if name == "" || email == "" || pass == "" {
		m.showErrorf("Name, email and password are required")
		return m, nil
	}
	if pass != repeat {
		m.showErrorf("Passwords do not match")
		return m, nil
	}
	if question == "" || answer == "" {
		m.showErrorf("A security question and answer are required")
		return m, nil
	}
	if m.register.recorder.sample.Empty() {
		m.showErrorf("A voice sample is required to create an account")
		return m, nil
	}

	m.register.submitting = true
	return m, m.cmdRegister(models.Registration{
		Name:             name,
		Email:            email,
		Password:         pass,
		SecurityQuestion: question,
		SecurityAnswer:   answer,
		Voice:            m.register.recorder.sample,
		ProfileImagePath: image,
	})
}

func (m appModel) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.dashboard.confirmClear {
		switch {
		case key.Matches(keyMsg, keys.yes):
			m.dashboard.confirmClear = false
			return m, m.cmdClearHistory()
		case key.Matches(keyMsg, keys.no), key.Matches(keyMsg, keys.esc):
			m.dashboard.confirmClear = false
		}
		return m, nil
	}

	if m.dashboard.voiceMode {
		if rec, cmd, handled := m.updateRecorder(m.dashboard.recorder, keyMsg); handled {
			m.dashboard.recorder = rec
			return m, cmd
		}

		switch {
		case key.Matches(keyMsg, keys.esc):
			m.dashboard.voiceMode = false
			m.dashboard.recorder.notice = ""
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.dashboard.recorder.sample.Empty() {
				m.dashboard.recorder.notice = "Record or upload a voice note first"
				return m, nil
			}
			return m, m.cmdCreateVoiceTask(m.dashboard.recorder.sample)
		case key.Matches(keyMsg, keys.quit):
			return m, tea.Quit
		}
		return m, nil
	}

	if m.dashboard.scheduling {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.dashboard.scheduling = false
			m.dashboard.dueInput.Reset()
			m.dashboard.dueInput.Blur()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			due := strings.TrimSpace(m.dashboard.dueInput.Value())
			if due == "" {
				m.showErrorf("Enter the due time as YYYY-MM-DDTHH:MM")
				return m, nil
			}
			return m, m.cmdScheduleTask(m.dashboard.dueTaskID, due)
		case key.Matches(keyMsg, keys.quit):
			return m, tea.Quit
		}

		var cmd tea.Cmd
		m.dashboard.dueInput, cmd = m.dashboard.dueInput.Update(msg)
		return m, cmd
	}

	if m.dashboard.composing {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.dashboard.composing = false
			m.dashboard.newTaskInput.Reset()
			m.dashboard.newTaskInput.Blur()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			text := strings.TrimSpace(m.dashboard.newTaskInput.Value())
			if text == "" {
				m.showErrorf("The task text must not be empty")
				return m, nil
			}
			return m, m.cmdCreateTask(text)
		case key.Matches(keyMsg, keys.quit):
			return m, tea.Quit
		}

		var cmd tea.Cmd
		m.dashboard.newTaskInput, cmd = m.dashboard.newTaskInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.dashboard.idx > 0 {
			m.dashboard.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.dashboard.idx < len(m.dashboard.tasks)-1 {
			m.dashboard.idx++
		}
	case key.Matches(keyMsg, keys.newTask):
		if !m.dashboard.showHistory {
			m.dashboard.composing = true
			m.dashboard.newTaskInput.Focus()
			return m, textinput.Blink
		}
	case key.Matches(keyMsg, keys.voiceTask):
		if !m.dashboard.showHistory {
			m.dashboard.voiceMode = true
			m.dashboard.recorder.notice = ""
		}
	case key.Matches(keyMsg, keys.due):
		if task, ok := m.dashboard.currentTask(); ok {
			m.dashboard.scheduling = true
			m.dashboard.dueTaskID = task.ID
			m.dashboard.dueInput.Focus()
			return m, textinput.Blink
		}
	case key.Matches(keyMsg, keys.complete):
		if task, ok := m.dashboard.currentTask(); ok {
			return m, m.cmdCompleteTask(task.ID)
		}
	case key.Matches(keyMsg, keys.copyValue):
		if task, ok := m.dashboard.currentTask(); ok {
			return m, cmdCopyToClipboard(task.Title)
		}
	case key.Matches(keyMsg, keys.history):
		m.dashboard.showHistory = !m.dashboard.showHistory
		m.dashboard.loading = true
		if m.dashboard.showHistory {
			return m, m.cmdLoadHistory()
		}
		return m, m.cmdLoadTasks()
	case key.Matches(keyMsg, keys.clearHistory):
		if m.dashboard.showHistory && len(m.dashboard.history) > 0 {
			m.dashboard.confirmClear = true
		}
	case key.Matches(keyMsg, keys.refresh):
		m.dashboard.loading = true
		if m.dashboard.showHistory {
			return m, m.cmdLoadHistory()
		}
		return m, m.cmdLoadTasks()
	case key.Matches(keyMsg, keys.logout):
		return m, m.cmdLogout()
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}

	return m, nil
}

// ── handshake results ─────────────────────────────────────────────────────────

func (m appModel) onLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.login.submitting = false
	if msg.err != nil {
		m.showErrorf(humanizeServerUnavailableError(msg.err))
		return m, nil
	}

	switch outcome := msg.outcome.(type) {
	case models.Authenticated:
		m.authenticated = true
		return m, tea.Quit
	case models.ChallengeRequired:
		m.login.challenge = true
		m.login.question = outcome.Question
		m.login.inputs[m.login.focus].Blur()
		m.login.inputs[loginFieldAnswer].Focus()
		return m, textinput.Blink
	case models.Locked:
		m.showErrorf("The account is locked after repeated voice mismatches. Recovery is handled by support.")
		return m, nil
	case models.Rejected:
		m.showErrorf(rejectionMessage(outcome))
		return m, nil
	}
	return m, nil
}

func (m appModel) onVerifyDone(msg verifyDoneMsg) (tea.Model, tea.Cmd) {
	m.login.submitting = false
	if msg.err != nil {
		m.showErrorf(humanizeServerUnavailableError(msg.err))
		return m, nil
	}

	switch outcome := msg.outcome.(type) {
	case models.Authenticated:
		m.authenticated = true
		return m, tea.Quit
	case models.Rejected:
		m.login.inputs[loginFieldAnswer].Reset()
		m.showErrorf(rejectionMessage(outcome))
		return m, nil
	}
	return m, nil
}

func rejectionMessage(outcome models.Rejected) string {
	if outcome.Network {
		return "Network is down or the server is unreachable. Try again."
	}
	if outcome.Reason != "" {
		return outcome.Reason
	}
	return "The attempt was rejected"
}

// ── recorder panel ────────────────────────────────────────────────────────────

// updateRecorder handles the voice panel hotkeys shared by the login and
// register screens. handled is false when the key belongs to the host form.
func (m appModel) updateRecorder(rec recorderModel, keyMsg tea.KeyMsg) (recorderModel, tea.Cmd, bool) {
	if rec.uploadMode {
		switch {
		case key.Matches(keyMsg, keys.esc):
			rec.uploadMode = false
			rec.upload.Blur()
			return rec, nil, true
		case key.Matches(keyMsg, keys.enter):
			path := strings.TrimSpace(rec.upload.Value())
			if path == "" {
				rec.notice = "Enter the path to an audio file"
				return rec, nil, true
			}
			sample, err := m.engine.AcceptUpload(path)
			if err != nil {
				rec.notice = err.Error()
				return rec, nil, true
			}
			m.slot.take()
			rec.sample = sample
			rec.uploadMode = false
			rec.upload.Blur()
			rec.upload.Reset()
			rec.notice = "File attached. Its duration is not checked client-side."
			return rec, nil, true
		case key.Matches(keyMsg, keys.quit):
			return rec, tea.Quit, true
		}

		var cmd tea.Cmd
		rec.upload, cmd = rec.upload.Update(keyMsg)
		return rec, cmd, true
	}

	switch {
	case key.Matches(keyMsg, keys.record):
		// The auto-stop timer may have finalized the take and parked it in
		// the slot before the tick loop collected it. Collect it here
		// instead of stopping a dead session or opening a second one.
		if sample := m.slot.take(); sample != nil {
			rec.sample = sample
			rec.recording = false
			rec.notice = "Recording stopped at the maximum duration and attached"
			return rec, nil, true
		}

		if m.engine.Recording() {
			sample, err := m.engine.Stop()
			rec.recording = false
			if parked := m.slot.take(); sample == nil && parked != nil {
				// Auto-stop finalized between the Recording check and Stop.
				sample, err = parked, nil
			}
			if errors.Is(err, capture.ErrSampleTooShort) {
				rec.notice = fmt.Sprintf("%s. The rejected take is kept for preview (ctrl+p).", err)
				return rec, nil, true
			}
			if sample != nil {
				rec.sample = sample
				rec.notice = "Recording attached"
			}
			return rec, nil, true
		}

		if err := m.engine.Start(); err != nil {
			rec.notice = captureErrorMessage(err)
			return rec, nil, true
		}
		rec.recording = true
		rec.elapsed = 0
		rec.notice = ""
		return rec, cmdRecorderTick(), true

	case key.Matches(keyMsg, keys.preview):
		if err := m.engine.PlayPreview(); err != nil {
			if errors.Is(err, capture.ErrNoPreview) {
				rec.notice = "Nothing recorded yet"
			} else {
				rec.notice = err.Error()
			}
			return rec, nil, true
		}
		rec.notice = "Playing the last take..."
		return rec, nil, true

	case key.Matches(keyMsg, keys.upload):
		rec.uploadMode = true
		rec.upload.Focus()
		return rec, textinput.Blink, true
	}

	return rec, nil, false
}

func (m appModel) onRecorderTick() (tea.Model, tea.Cmd) {
	rec := m.activeRecorder()
	if rec == nil {
		return m, nil
	}

	if sample := m.slot.take(); sample != nil {
		rec.sample = sample
		rec.notice = "Recording stopped at the maximum duration and attached"
		if m.engine.Recording() {
			// A newer session is active; keep the tick loop alive for it.
			rec.elapsed = m.engine.Elapsed()
			return m, cmdRecorderTick()
		}
		rec.recording = false
		return m, nil
	}

	if !m.engine.Recording() {
		rec.recording = false
		return m, nil
	}

	rec.elapsed = m.engine.Elapsed()
	return m, cmdRecorderTick()
}

// activeRecorder returns the recorder of the visible screen. The pointer is
// into the model copy being updated, which Update returns.
func (m *appModel) activeRecorder() *recorderModel {
	switch m.currentScreen {
	case screenLogin:
		return &m.login.recorder
	case screenRegister:
		return &m.register.recorder
	case screenDashboard:
		if m.dashboard.voiceMode {
			return &m.dashboard.recorder
		}
		return nil
	default:
		return nil
	}
}

func captureErrorMessage(err error) string {
	switch {
	case errors.Is(err, capture.ErrPermissionDenied):
		return "Microphone access denied. Grant the permission and try again."
	case errors.Is(err, capture.ErrDeviceUnavailable):
		return "No microphone available"
	case errors.Is(err, capture.ErrCaptureUnsupported):
		return "Audio capture is not supported on this system. Use ctrl+u to upload a file."
	case errors.Is(err, capture.ErrCaptureBusy):
		return "A recording is already in progress"
	default:
		return err.Error()
	}
}

// ── commands ──────────────────────────────────────────────────────────────────

func (m appModel) cmdLogin(creds models.Credentials, sample *models.VoiceSample) tea.Cmd {
	ctx := m.ctx
	auth := m.services.AuthService
	return func() tea.Msg {
		outcome, err := auth.Submit(ctx, creds, sample)
		return loginDoneMsg{outcome: outcome, err: err}
	}
}

func (m appModel) cmdVerify(email, answer string) tea.Cmd {
	ctx := m.ctx
	fallback := m.services.FallbackService
	return func() tea.Msg {
		outcome, err := fallback.VerifyAnswer(ctx, email, answer)
		return verifyDoneMsg{outcome: outcome, err: err}
	}
}

func (m appModel) cmdRegister(reg models.Registration) tea.Cmd {
	ctx := m.ctx
	auth := m.services.AuthService
	return func() tea.Msg {
		return registerDoneMsg{err: auth.Register(ctx, reg)}
	}
}

func (m appModel) cmdFetchQuestion(seq int, email string) tea.Cmd {
	ctx := m.ctx
	fallback := m.services.FallbackService
	return func() tea.Msg {
		return questionFetchedMsg{seq: seq, question: fallback.FetchQuestion(ctx, email)}
	}
}

func (m appModel) cmdLoadTasks() tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService
	return func() tea.Msg {
		items, err := tasks.Tasks(ctx)
		return tasksLoadedMsg{tasks: items, err: err}
	}
}

func (m appModel) cmdLoadHistory() tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService
	return func() tea.Msg {
		entries, err := tasks.History(ctx)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m appModel) cmdCreateTask(text string) tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService
	return func() tea.Msg {
		task, err := tasks.CreateTask(ctx, text)
		return taskSavedMsg{task: task, err: err}
	}
}

func (m appModel) cmdCreateVoiceTask(sample *models.VoiceSample) tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService
	return func() tea.Msg {
		task, err := tasks.CreateVoiceTask(ctx, sample)
		return taskSavedMsg{task: task, err: err}
	}
}

func (m appModel) cmdScheduleTask(id int64, dueAt string) tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService
	return func() tea.Msg {
		schedule, err := tasks.ScheduleTask(ctx, id, dueAt)
		return taskScheduledMsg{schedule: schedule, err: err}
	}
}

func (m appModel) cmdCompleteTask(id int64) tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService
	return func() tea.Msg {
		return taskCompletedMsg{err: tasks.CompleteTask(ctx, id)}
	}
}

func (m appModel) cmdClearHistory() tea.Cmd {
	ctx := m.ctx
	tasks := m.services.TaskService
	return func() tea.Msg {
		return historyClearedMsg{err: tasks.ClearHistory(ctx)}
	}
}

func (m appModel) cmdLogout() tea.Cmd {
	ctx := m.ctx
	auth := m.services.AuthService
	return func() tea.Msg {
		auth.Logout(ctx)
		return logoutDoneMsg{}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func cmdQuestionDebounce(seq int) tea.Cmd {
	return tea.Tick(questionDebounceAfter, func(time.Time) tea.Msg {
		return questionDebounceMsg{seq: seq}
	})
}

func cmdRecorderTick() tea.Cmd {
	return tea.Tick(recorderTickEvery, func(time.Time) tea.Msg {
		return recorderTickMsg{}
	})
}

func cmdSessionCheck() tea.Cmd {
	return tea.Tick(sessionCheckEvery, func(time.Time) tea.Msg {
		return sessionCheckMsg{}
	})
}

// ── focus cycling ─────────────────────────────────────────────────────────────

// focusNextLogin cycles over the credential inputs only; the answer input is
// reachable solely through the challenge stage.
func focusNextLogin(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % 2
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevLogin(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + 2) % 2
	m.inputs[m.focus].Focus()
	return m
}

func focusNextRegister(m registerModel) registerModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevRegister(m registerModel) registerModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}
