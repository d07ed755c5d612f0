package service

import (
	"context"
	"sync"
	"time"

	"github.com/THRIPURASRI/voicenudge-cli/internal/adapter"
	"github.com/THRIPURASRI/voicenudge-cli/internal/logger"
)

type probeJob struct {
	adapter adapter.ServerAdapter
	session SessionStore
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewProbeJob creates the session keepalive worker. The job is idle until
// Start is called.
func NewProbeJob(serverAdapter adapter.ServerAdapter, session SessionStore, logger *logger.Logger) ClientProbeJob {
	return &probeJob{adapter: serverAdapter, session: session, logger: logger}
}

// Start implements [ClientProbeJob]. Each tick pings the profile endpoint
// while a session is established; a 401/403 reply clears the session through
// the adapter's auth-failure hook, so the job itself ignores the result.
func (j *probeJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if j.session.State() != SessionAuthenticated {
					continue
				}
				if _, err := j.adapter.Me(jobCtx); err != nil {
					j.logger.Debug().Err(err).Msg("keepalive probe failed")
				}
			}
		}
	}()
}

// Stop implements [ClientProbeJob]. Safe to call when the job is not running.
func (j *probeJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
