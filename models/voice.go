// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Thripura Sri

package models

import "time"

// VoiceSample is a finalized voice recording or user-supplied audio file,
// ready to be attached to a login or registration request.
//
// Ownership: produced by the capture engine and handed over to the auth
// service on submit; the engine does not reuse a sample after hand-off.
type VoiceSample struct {
	// Payload is the encoded audio, WAV for recorded samples.
	Payload []byte

	// MediaType is the MIME type of Payload (e.g. "audio/wav").
	MediaType string

	// FileName is the name the sample is submitted under in the
	// multipart form.
	FileName string

	// Duration is the captured audio length. Zero for uploaded files,
	// whose duration is not inspected client-side.
	Duration time.Duration

	// Uploaded marks samples that came from a file instead of the
	// microphone. Uploaded samples bypass the minimum-duration gate.
	Uploaded bool
}

// Empty reports whether the sample carries no audio data.
func (v *VoiceSample) Empty() bool {
	return v == nil || len(v.Payload) == 0
}
