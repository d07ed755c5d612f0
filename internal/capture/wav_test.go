package capture

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWAV_Header(t *testing.T) {
	pcm := make([]byte, 32000) // one second at 16 kHz S16 mono
	wav := encodeWAV(pcm, 16000)

	require.Len(t, wav, wavHeaderSize+len(pcm))

	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, uint32(36+len(pcm)), binary.LittleEndian.Uint32(wav[4:8]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, "fmt ", string(wav[12:16]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[20:22]))  // PCM format
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]))  // mono
	assert.Equal(t, uint32(16000), binary.LittleEndian.Uint32(wav[24:28]))
	assert.Equal(t, uint32(32000), binary.LittleEndian.Uint32(wav[28:32])) // byte rate
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]))   // bits per sample
	assert.Equal(t, "data", string(wav[36:40]))
	assert.Equal(t, uint32(len(pcm)), binary.LittleEndian.Uint32(wav[40:44]))
}

func TestPCMDuration(t *testing.T) {
	assert.Equal(t, time.Second, pcmDuration(32000, 16000))
	assert.Equal(t, 500*time.Millisecond, pcmDuration(16000, 16000))
	assert.Zero(t, pcmDuration(0, 16000))
	assert.Zero(t, pcmDuration(32000, 0))
}
