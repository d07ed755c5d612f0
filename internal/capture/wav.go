package capture

import (
	"bytes"
	"encoding/binary"
	"time"
)

const (
	wavChannels      = 1
	wavBitsPerSample = 16
	wavHeaderSize    = 44
)

// encodeWAV wraps raw S16LE mono PCM in a canonical 44-byte RIFF/WAVE header.
func encodeWAV(pcm []byte, sampleRate int) []byte {
	byteRate := sampleRate * wavChannels * wavBitsPerSample / 8
	blockAlign := wavChannels * wavBitsPerSample / 8

	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+len(pcm)))
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(buf, binary.LittleEndian, uint16(wavChannels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	_ = binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, uint16(wavBitsPerSample))

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}

// pcmDuration computes the audio length of raw S16LE mono PCM from its byte
// count. Duration comes from the data, not from a wall clock, so a stalled
// device cannot inflate it.
func pcmDuration(pcmLen, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	samples := pcmLen / (wavChannels * wavBitsPerSample / 8)
	return time.Duration(samples) * time.Second / time.Duration(sampleRate)
}
