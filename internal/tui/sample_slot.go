package tui

import (
	"sync"

	"github.com/THRIPURASRI/voicenudge-cli/models"
)

// sampleSlot bridges the capture engine into the Bubble Tea loop. The
// engine's OnSampleReady hook may fire on its auto-stop timer goroutine, so
// the sample is parked here and collected by the recorder tick.
type sampleSlot struct {
	mu     sync.Mutex
	sample *models.VoiceSample
}

func (s *sampleSlot) put(sample *models.VoiceSample) {
	s.mu.Lock()
	s.sample = sample
	s.mu.Unlock()
}

func (s *sampleSlot) take() *models.VoiceSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	sample := s.sample
	s.sample = nil
	return sample
}
