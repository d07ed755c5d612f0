package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/THRIPURASRI/voicenudge-cli/internal/capture"
	"github.com/THRIPURASRI/voicenudge-cli/internal/config"
	"github.com/THRIPURASRI/voicenudge-cli/internal/logger"
	"github.com/THRIPURASRI/voicenudge-cli/internal/service"
	"github.com/THRIPURASRI/voicenudge-cli/internal/store"
	"github.com/THRIPURASRI/voicenudge-cli/internal/tui"
	"github.com/THRIPURASRI/voicenudge-cli/internal/workers"
)

// App is the client application runtime: it owns the session lifecycle and
// alternates between the login flow and the task dashboard until the user
// leaves.
type App struct {
	services *service.ClientServices
	tui      *tui.TUI
	engine   *capture.Engine
	storages *store.ClientStorages
	workers  *workers.Workers
	probe    *probeWorker
	logger   *logger.Logger
}

// NewApp assembles the runtime. storages may be nil when the local identity
// cache could not be opened; the app then runs without email prefill.
func NewApp(services *service.ClientServices, ui *tui.TUI, engine *capture.Engine,
	storages *store.ClientStorages, cfg config.ClientWorkers, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil || engine == nil {
		return nil, errors.New("client app: services, ui and engine are required")
	}

	probe := &probeWorker{job: services.ProbeJob, interval: cfg.ProbeInterval}

	return &App{
		services: services,
		tui:      ui,
		engine:   engine,
		storages: storages,
		workers:  workers.NewWorkers(probe),
		probe:    probe,
		logger:   logger,
	}, nil
}

// Run drives the process lifecycle: restore or establish a session, run the
// dashboard with the keepalive probe alongside, and loop back to the login
// flow after a logout or a lost session. Returns nil when the user quits.
func (a *App) Run() error {
	ctx := context.Background()
	defer a.engine.Close()

	for {
		if !a.services.AuthService.RestoreSession(ctx) {
			err := a.tui.LoginFlow(ctx, a.prefillEmail(ctx))
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("login flow: %w", err)
			}
		}

		user, ok := a.services.Session.User()
		if !ok {
			// The session was invalidated between establishment and
			// here; go around again.
			continue
		}

		a.startProbe(ctx)
		logout, sessionLost, err := a.tui.MainLoop(ctx, user)
		a.services.ProbeJob.Stop()
		if err != nil {
			return fmt.Errorf("main loop: %w", err)
		}

		if sessionLost {
			fmt.Fprintln(os.Stderr, "The session is no longer valid. Sign in again.")
			continue
		}
		if logout {
			continue
		}
		return nil
	}
}

func (a *App) startProbe(ctx context.Context) {
	a.probe.ctx = ctx
	a.workers.Run()
}

// prefillEmail returns the last identity that signed in on this device, or
// an empty string when there is none.
func (a *App) prefillEmail(ctx context.Context) string {
	if a.storages == nil {
		return ""
	}
	email, err := a.storages.Identity.LastIdentity(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrIdentityNotFound) {
			a.logger.Warn().Err(err).Msg("read last identity")
		}
		return ""
	}
	return email
}

// probeWorker adapts the session probe job to the [workers.Worker] contract.
type probeWorker struct {
	ctx      context.Context
	job      service.ClientProbeJob
	interval time.Duration
}

func (w *probeWorker) Run() {
	ctx := w.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	w.job.Start(ctx, w.interval)
}
