package capture

import (
	"bytes"
	"fmt"

	"github.com/ebitengine/oto/v3"
)

// PreviewPlayer plays back a finalized recording so the user can judge it
// before submitting. Replays release the previous playback handle first.
type PreviewPlayer interface {
	// Play starts playback of raw S16LE mono PCM, stopping any playback
	// already in progress.
	Play(pcm []byte, sampleRate int) error
	// Close releases the active playback handle, if any.
	Close()
}

// OtoPreviewPlayer plays previews through the system speaker via oto. The
// underlying audio context is created lazily on first Play and is fixed to
// that sample rate for the process lifetime.
type OtoPreviewPlayer struct {
	ctx    *oto.Context
	player *oto.Player
}

// NewOtoPreviewPlayer returns an idle speaker-backed preview player.
func NewOtoPreviewPlayer() *OtoPreviewPlayer {
	return &OtoPreviewPlayer{}
}

// Play implements [PreviewPlayer].
func (p *OtoPreviewPlayer) Play(pcm []byte, sampleRate int) error {
	if p.ctx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: wavChannels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			return fmt.Errorf("init playback: %w", err)
		}
		<-ready
		p.ctx = ctx
	}

	// Release the superseded handle before starting a new one.
	p.Close()

	p.player = p.ctx.NewPlayer(bytes.NewReader(pcm))
	p.player.Play()
	return nil
}

// Close implements [PreviewPlayer].
func (p *OtoPreviewPlayer) Close() {
	if p.player != nil {
		_ = p.player.Close()
		p.player = nil
	}
}
