// Package tui is the Bubble Tea terminal interface: the welcome, login and
// register screens of the authentication flow, and the task dashboard shown
// once a session is established.
package tui

import (
	"context"
	"errors"

	"github.com/THRIPURASRI/voicenudge-cli/internal/capture"
	"github.com/THRIPURASRI/voicenudge-cli/internal/config"
	"github.com/THRIPURASRI/voicenudge-cli/internal/logger"
	"github.com/THRIPURASRI/voicenudge-cli/internal/service"
	"github.com/THRIPURASRI/voicenudge-cli/models"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrUserQuit is returned by LoginFlow when the user left the program
// without signing in.
var ErrUserQuit = errors.New("user quit")

type TUI struct {
	services *service.ClientServices
	engine   *capture.Engine
	slot     *sampleSlot
	policy   config.ClientCapture
	version  string
	logger   *logger.Logger
}

// New builds the terminal interface over the service layer and the capture
// engine. The engine's OnSampleReady hook is bound here: samples finalized
// on the auto-stop timer goroutine are parked in a slot the UI polls.
func New(services *service.ClientServices, engine *capture.Engine, cfg *config.ClientConfig, logger *logger.Logger) *TUI {
	slot := &sampleSlot{}
	engine.OnSampleReady = slot.put

	return &TUI{
		services: services,
		engine:   engine,
		slot:     slot,
		policy:   cfg.Capture,
		version:  cfg.App.Version,
		logger:   logger,
	}
}

// LoginFlow runs the welcome/login/register screens until a session is
// established. prefillEmail seeds the login form with the last signed-in
// identity. Returns [ErrUserQuit] when the user quit instead.
func (t *TUI) LoginFlow(ctx context.Context, prefillEmail string) error {
	model := newLoginAppModel(ctx, t, prefillEmail)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return runErr
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.err != nil {
		return result.err
	}
	if !result.authenticated {
		return ErrUserQuit
	}
	return nil
}

// MainLoop runs the task dashboard for user. It ends in one of three ways:
// the user logged out, the session was lost to a server-side invalidation,
// or the user quit the program.
func (t *TUI) MainLoop(ctx context.Context, user models.User) (logout, sessionLost bool, err error) {
	model := newMainAppModel(ctx, t, user)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, false, runErr
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return false, false, tea.ErrProgramKilled
	}
	return result.logout, result.sessionLost, nil
}
