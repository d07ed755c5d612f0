// Package capture records bounded-duration voice samples from the microphone
// or accepts user-supplied audio files, enforcing the duration policy before
// a sample may be attached to a login or registration request.
//
// The microphone is serially exclusive: one session at a time, finalized by
// exactly one of a manual Stop or the automatic stop scheduled at the
// configured ceiling. Recordings below the minimum duration are discarded
// client-side; a preview of the rejected take stays available so the user
// can hear what went wrong.
package capture

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/THRIPURASRI/voicenudge-cli/internal/config"
	"github.com/THRIPURASRI/voicenudge-cli/internal/logger"
	"github.com/THRIPURASRI/voicenudge-cli/models"
	"github.com/google/uuid"
)

// Engine is the audio capture engine. Safe for use from a single goroutine
// driving the UI plus the device's audio thread.
type Engine struct {
	opener  DeviceOpener
	preview PreviewPlayer
	policy  config.ClientCapture
	logger  *logger.Logger

	// OnSampleReady receives every sample that passed the duration policy,
	// recorded or uploaded. Ownership of the sample transfers to the
	// callback; the engine does not retain it.
	OnSampleReady func(sample *models.VoiceSample)

	mu       sync.Mutex
	session  *captureSession
	lastPCM  []byte // most recent finalized recording, kept for preview
	lastRate int
}

type captureSession struct {
	device    Device
	pcm       []byte
	autoStop  *time.Timer
	finalized bool
}

// NewEngine builds a capture engine with the given recording policy. opener
// and preview are seams for the hardware backends; production wiring passes
// [*MalgoOpener] and [*OtoPreviewPlayer].
func NewEngine(opener DeviceOpener, preview PreviewPlayer, policy config.ClientCapture, logger *logger.Logger) *Engine {
	return &Engine{
		opener:  opener,
		preview: preview,
		policy:  policy,
		logger:  logger,
	}
}

// Start acquires the microphone and begins buffering PCM. Returns
// [ErrCaptureBusy] while another session is active. An automatic stop is
// scheduled at the configured maximum duration; manual [Engine.Stop] cancels
// it, and exactly one of the two finalizes the session.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return ErrCaptureBusy
	}

	sess := &captureSession{}
	device, err := e.opener.Open(e.policy.SampleRate, func(pcm []byte) {
		e.mu.Lock()
		if !sess.finalized {
			sess.pcm = append(sess.pcm, pcm...)
		}
		e.mu.Unlock()
	})
	if err != nil {
		return fmt.Errorf("open capture device: %w", err)
	}
	sess.device = device

	if err = device.Start(); err != nil {
		device.Close()
		return fmt.Errorf("start capture device: %w", err)
	}

	sess.autoStop = time.AfterFunc(e.policy.MaxSampleDuration, func() {
		if _, err := e.finalize(sess); err != nil {
			e.logger.Debug().Err(err).Msg("auto-stop finalized a rejected sample")
		}
	})

	e.session = sess
	e.logger.Info().Int("sample_rate", e.policy.SampleRate).
		Dur("max_duration", e.policy.MaxSampleDuration).
		Msg("capture session started")
	return nil
}

// Recording reports whether a capture session is active.
func (e *Engine) Recording() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session != nil
}

// Elapsed returns the audio length buffered so far, derived from the PCM
// byte count. Zero when idle.
func (e *Engine) Elapsed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return 0
	}
	return pcmDuration(len(e.session.pcm), e.policy.SampleRate)
}

// Stop finalizes the active session: the device is released, the buffered
// PCM is encoded to WAV, and the duration policy is applied. A sample at or
// above the minimum duration is delivered through OnSampleReady and
// returned; a shorter one is discarded and [ErrSampleTooShort] is returned,
// with the rejected take still available to [Engine.PlayPreview].
func (e *Engine) Stop() (*models.VoiceSample, error) {
	e.mu.Lock()
	sess := e.session
	e.mu.Unlock()

	if sess == nil {
		return nil, ErrNotRecording
	}
	return e.finalize(sess)
}

// finalize is the single stop path shared by Stop and the auto-stop timer.
// The finalized flag guarantees it runs at most once per session.
func (e *Engine) finalize(sess *captureSession) (*models.VoiceSample, error) {
	e.mu.Lock()
	if sess.finalized {
		e.mu.Unlock()
		return nil, ErrNotRecording
	}
	sess.finalized = true
	sess.autoStop.Stop()
	pcm := sess.pcm
	e.session = nil
	e.lastPCM = pcm
	e.lastRate = e.policy.SampleRate
	e.mu.Unlock()

	_ = sess.device.Stop()
	sess.device.Close()

	duration := pcmDuration(len(pcm), e.policy.SampleRate)
	if duration < e.policy.MinSampleDuration {
		e.logger.Info().Dur("duration", duration).
			Dur("min_duration", e.policy.MinSampleDuration).
			Msg("recording rejected: too short")
		return nil, fmt.Errorf("%w: got %s, need %s",
			ErrSampleTooShort, duration.Round(time.Millisecond), e.policy.MinSampleDuration)
	}

	sample := &models.VoiceSample{
		Payload:   encodeWAV(pcm, e.policy.SampleRate),
		MediaType: "audio/wav",
		FileName:  fmt.Sprintf("voice_%s.wav", uuid.NewString()[:8]),
		Duration:  duration,
	}

	e.logger.Info().Dur("duration", duration).Str("file", sample.FileName).
		Msg("recording finalized")
	if e.OnSampleReady != nil {
		e.OnSampleReady(sample)
	}
	return sample, nil
}

// AcceptUpload reads an audio file from disk and delivers it through
// OnSampleReady. Uploaded files bypass the duration policy: the file is
// trusted as supplied and its length is not inspected client-side.
func (e *Engine) AcceptUpload(path string) (*models.VoiceSample, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("audio file %s is empty", path)
	}

	sample := &models.VoiceSample{
		Payload:   payload,
		MediaType: mediaTypeForFile(path),
		FileName:  filepath.Base(path),
		Uploaded:  true,
	}

	e.logger.Info().Str("file", sample.FileName).Str("media_type", sample.MediaType).
		Msg("uploaded sample accepted")
	if e.OnSampleReady != nil {
		e.OnSampleReady(sample)
	}
	return sample, nil
}

// PlayPreview replays the most recent finalized recording, including a take
// rejected for being too short. Returns [ErrNoPreview] when nothing has
// been recorded yet.
func (e *Engine) PlayPreview() error {
	e.mu.Lock()
	pcm, rate := e.lastPCM, e.lastRate
	e.mu.Unlock()

	if len(pcm) == 0 {
		return ErrNoPreview
	}
	return e.preview.Play(pcm, rate)
}

// Close tears the engine down: an active session is finalized and discarded,
// and the preview handle is released.
func (e *Engine) Close() {
	e.mu.Lock()
	sess := e.session
	e.mu.Unlock()

	if sess != nil {
		_, _ = e.finalize(sess)
	}
	e.preview.Close()
}

func mediaTypeForFile(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return "audio/wav"
	case ".webm":
		return "audio/webm"
	default:
		if mt := mime.TypeByExtension(ext); mt != "" {
			return mt
		}
		return "application/octet-stream"
	}
}
