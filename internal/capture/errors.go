package capture

import "errors"

var (
	// ErrPermissionDenied is returned when the OS refuses microphone access.
	ErrPermissionDenied = errors.New("microphone access denied")

	// ErrDeviceUnavailable is returned when no capture device exists.
	ErrDeviceUnavailable = errors.New("no capture device available")

	// ErrCaptureUnsupported is returned when the runtime offers no audio
	// capture backend at all.
	ErrCaptureUnsupported = errors.New("audio capture is not supported on this system")

	// ErrCaptureBusy is returned by Start while a recording session is
	// already active. The microphone is serially exclusive.
	ErrCaptureBusy = errors.New("a capture session is already active")

	// ErrSampleTooShort is returned by Stop when the recording is below the
	// minimum accepted duration. The sample is discarded; a preview of the
	// rejected recording remains available.
	ErrSampleTooShort = errors.New("recorded sample is shorter than the minimum duration")

	// ErrNotRecording is returned by Stop when no session is active.
	ErrNotRecording = errors.New("no capture session is active")

	// ErrNoPreview is returned by PlayPreview when nothing has been
	// recorded yet.
	ErrNoPreview = errors.New("no recording to preview")
)
