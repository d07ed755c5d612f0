package capture

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/THRIPURASRI/voicenudge-cli/internal/config"
	"github.com/THRIPURASRI/voicenudge-cli/internal/logger"
	"github.com/THRIPURASRI/voicenudge-cli/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	stopped bool
	closed  bool
}

func (d *fakeDevice) Start() error { return nil }
func (d *fakeDevice) Stop() error  { d.stopped = true; return nil }
func (d *fakeDevice) Close()       { d.closed = true }

// fakeOpener hands out fake devices and exposes the data callback so tests
// can feed scripted PCM.
type fakeOpener struct {
	device  *fakeDevice
	onData  func(pcm []byte)
	openErr error
}

func (o *fakeOpener) Open(_ int, onData func(pcm []byte)) (Device, error) {
	if o.openErr != nil {
		return nil, o.openErr
	}
	o.device = &fakeDevice{}
	o.onData = onData
	return o.device, nil
}

type fakePreview struct {
	played []int // lengths of PCM handed to Play
	closed bool
}

func (p *fakePreview) Play(pcm []byte, _ int) error { p.played = append(p.played, len(pcm)); return nil }
func (p *fakePreview) Close()                       { p.closed = true }

func testPolicy() config.ClientCapture {
	return config.ClientCapture{
		MinSampleDuration: 100 * time.Millisecond,
		MaxSampleDuration: time.Hour, // effectively disabled unless a test shrinks it
		SampleRate:        16000,
	}
}

// pcmOf builds S16LE mono PCM of the given duration at 16 kHz.
func pcmOf(d time.Duration) []byte {
	samples := int(d.Seconds() * 16000)
	return make([]byte, samples*2)
}

func newTestEngine(t *testing.T, policy config.ClientCapture) (*Engine, *fakeOpener, *fakePreview) {
	t.Helper()
	opener := &fakeOpener{}
	preview := &fakePreview{}
	return NewEngine(opener, preview, policy, logger.Nop()), opener, preview
}

func TestStart_WhileRecordingIsBusy(t *testing.T) {
	e, _, _ := newTestEngine(t, testPolicy())

	require.NoError(t, e.Start())
	assert.True(t, e.Recording())

	err := e.Start()
	assert.ErrorIs(t, err, ErrCaptureBusy)
}

func TestStop_AcceptsSampleAtOrAboveMinimum(t *testing.T) {
	e, opener, _ := newTestEngine(t, testPolicy())

	var ready *models.VoiceSample
	e.OnSampleReady = func(s *models.VoiceSample) { ready = s }

	require.NoError(t, e.Start())
	opener.onData(pcmOf(150 * time.Millisecond))

	sample, err := e.Stop()
	require.NoError(t, err)
	require.NotNil(t, ready)
	assert.Same(t, sample, ready)

	assert.Equal(t, "audio/wav", sample.MediaType)
	assert.Equal(t, 150*time.Millisecond, sample.Duration)
	assert.False(t, sample.Uploaded)
	assert.Equal(t, []byte("RIFF"), sample.Payload[:4])

	assert.False(t, e.Recording())
	assert.True(t, opener.device.stopped)
	assert.True(t, opener.device.closed)
}

func TestStop_RejectsShortSampleButKeepsPreview(t *testing.T) {
	e, opener, preview := newTestEngine(t, testPolicy())

	called := false
	e.OnSampleReady = func(*models.VoiceSample) { called = true }

	require.NoError(t, e.Start())
	opener.onData(pcmOf(50 * time.Millisecond))

	sample, err := e.Stop()
	require.ErrorIs(t, err, ErrSampleTooShort)
	assert.Nil(t, sample)
	assert.False(t, called)
	assert.False(t, e.Recording())

	// The rejected take is still previewable.
	require.NoError(t, e.PlayPreview())
	require.Len(t, preview.played, 1)
	assert.Equal(t, len(pcmOf(50*time.Millisecond)), preview.played[0])
}

func TestStop_WithoutSessionFails(t *testing.T) {
	e, _, _ := newTestEngine(t, testPolicy())

	_, err := e.Stop()
	assert.ErrorIs(t, err, ErrNotRecording)
}

func TestStop_SecondStopIsRejected(t *testing.T) {
	e, opener, _ := newTestEngine(t, testPolicy())

	require.NoError(t, e.Start())
	opener.onData(pcmOf(150 * time.Millisecond))

	_, err := e.Stop()
	require.NoError(t, err)

	_, err = e.Stop()
	assert.ErrorIs(t, err, ErrNotRecording)
}

func TestAutoStop_FinalizesAtCeiling(t *testing.T) {
	policy := testPolicy()
	policy.MaxSampleDuration = 20 * time.Millisecond
	e, opener, _ := newTestEngine(t, policy)

	var ready *models.VoiceSample
	e.OnSampleReady = func(s *models.VoiceSample) { ready = s }

	require.NoError(t, e.Start())
	opener.onData(pcmOf(150 * time.Millisecond))

	require.Eventually(t, func() bool { return !e.Recording() }, time.Second, 5*time.Millisecond)
	require.NotNil(t, ready)
	assert.Equal(t, 150*time.Millisecond, ready.Duration)

	// The auto-stopped session is gone; a manual stop has nothing to do.
	_, err := e.Stop()
	assert.ErrorIs(t, err, ErrNotRecording)
}

func TestElapsed_TracksBufferedAudio(t *testing.T) {
	e, opener, _ := newTestEngine(t, testPolicy())

	assert.Zero(t, e.Elapsed())

	require.NoError(t, e.Start())
	opener.onData(pcmOf(40 * time.Millisecond))
	assert.Equal(t, 40*time.Millisecond, e.Elapsed())

	opener.onData(pcmOf(40 * time.Millisecond))
	assert.Equal(t, 80*time.Millisecond, e.Elapsed())
}

func TestStart_PropagatesOpenError(t *testing.T) {
	e, opener, _ := newTestEngine(t, testPolicy())
	opener.openErr = ErrDeviceUnavailable

	err := e.Start()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDeviceUnavailable)
	assert.False(t, e.Recording())
}

func TestAcceptUpload_BypassesDurationGate(t *testing.T) {
	e, _, _ := newTestEngine(t, testPolicy())

	var ready *models.VoiceSample
	e.OnSampleReady = func(s *models.VoiceSample) { ready = s }

	path := filepath.Join(t.TempDir(), "greeting.webm")
	require.NoError(t, os.WriteFile(path, []byte("fake audio"), 0o600))

	sample, err := e.AcceptUpload(path)
	require.NoError(t, err)
	require.NotNil(t, ready)

	assert.Equal(t, "greeting.webm", sample.FileName)
	assert.Equal(t, "audio/webm", sample.MediaType)
	assert.True(t, sample.Uploaded)
	assert.Zero(t, sample.Duration)
}

func TestAcceptUpload_EmptyFileRejected(t *testing.T) {
	e, _, _ := newTestEngine(t, testPolicy())

	path := filepath.Join(t.TempDir(), "empty.wav")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := e.AcceptUpload(path)
	assert.Error(t, err)
}

func TestAcceptUpload_MissingFile(t *testing.T) {
	e, _, _ := newTestEngine(t, testPolicy())

	_, err := e.AcceptUpload(filepath.Join(t.TempDir(), "nope.wav"))
	assert.Error(t, err)
}

func TestPlayPreview_WithoutRecording(t *testing.T) {
	e, _, _ := newTestEngine(t, testPolicy())

	assert.ErrorIs(t, e.PlayPreview(), ErrNoPreview)
}

func TestPlayPreview_SupersededTakes(t *testing.T) {
	e, opener, preview := newTestEngine(t, testPolicy())

	require.NoError(t, e.Start())
	opener.onData(pcmOf(150 * time.Millisecond))
	_, err := e.Stop()
	require.NoError(t, err)

	require.NoError(t, e.Start())
	opener.onData(pcmOf(200 * time.Millisecond))
	_, err = e.Stop()
	require.NoError(t, err)

	require.NoError(t, e.PlayPreview())
	require.Len(t, preview.played, 1)
	assert.Equal(t, len(pcmOf(200*time.Millisecond)), preview.played[0])
}

func TestClose_FinalizesActiveSessionAndReleasesPreview(t *testing.T) {
	e, opener, preview := newTestEngine(t, testPolicy())

	require.NoError(t, e.Start())
	e.Close()

	assert.False(t, e.Recording())
	assert.True(t, opener.device.closed)
	assert.True(t, preview.closed)
}

func TestMediaTypeForFile(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.wav", "audio/wav"},
		{"b.WEBM", "audio/webm"},
		{"c.unknownext", "application/octet-stream"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mediaTypeForFile(tt.path), tt.path)
	}
}
