package capture

import (
	"fmt"
	"strings"

	"github.com/gen2brain/malgo"
)

// Device is an open microphone stream. Stop halts data delivery; Close
// releases the hardware. Implementations deliver raw S16LE mono PCM to the
// data callback supplied at open time.
type Device interface {
	Start() error
	Stop() error
	Close()
}

// DeviceOpener abstracts microphone acquisition so tests can inject scripted
// PCM sources. The production implementation is [MalgoOpener].
type DeviceOpener interface {
	// Open prepares a capture device at the given sample rate. onData is
	// invoked from the audio thread with each captured PCM chunk.
	Open(sampleRate int, onData func(pcm []byte)) (Device, error)
}

// MalgoOpener opens real microphone devices through the malgo (miniaudio)
// backend. A single malgo context is shared across capture sessions and
// released by Close.
type MalgoOpener struct {
	ctx *malgo.AllocatedContext
}

// NewMalgoOpener initialises the audio backend. Returns
// [ErrCaptureUnsupported] when no backend can be initialised.
func NewMalgoOpener() (*MalgoOpener, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureUnsupported, err)
	}
	return &MalgoOpener{ctx: ctx}, nil
}

// Open implements [DeviceOpener].
func (o *MalgoOpener) Open(sampleRate int, onData func(pcm []byte)) (Device, error) {
	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = 1
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.PeriodSizeInMilliseconds = 20

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, pInputSamples []byte, _ uint32) {
			onData(pInputSamples)
		},
	}

	device, err := malgo.InitDevice(o.ctx.Context, deviceConfig, callbacks)
	if err != nil {
		return nil, classifyDeviceError(err)
	}

	return &malgoDevice{device: device}, nil
}

// UnavailableOpener is the opener installed when the audio backend could not
// be initialised. Every Open fails with the recorded cause, leaving the
// file-upload path as the only sample source.
type UnavailableOpener struct {
	Err error
}

// Open implements [DeviceOpener].
func (o UnavailableOpener) Open(int, func(pcm []byte)) (Device, error) {
	return nil, o.Err
}

// Close releases the shared audio context.
func (o *MalgoOpener) Close() {
	if o.ctx != nil {
		_ = o.ctx.Uninit()
		o.ctx.Free()
	}
}

// classifyDeviceError maps malgo init failures onto the package sentinels so
// the UI can tell "plug in a microphone" apart from "grant permission".
func classifyDeviceError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "access denied"), strings.Contains(msg, "permission"):
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	case strings.Contains(msg, "no device"), strings.Contains(msg, "does not exist"):
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
}

type malgoDevice struct {
	device *malgo.Device
}

func (d *malgoDevice) Start() error {
	if err := d.device.Start(); err != nil {
		return classifyDeviceError(err)
	}
	return nil
}

func (d *malgoDevice) Stop() error {
	return d.device.Stop()
}

func (d *malgoDevice) Close() {
	d.device.Uninit()
}
