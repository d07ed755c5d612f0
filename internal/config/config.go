// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Thripura Sri

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for
// voicenudge-cli. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the application version.
	App App `envPrefix:"APP_"`

	// Adapter holds the server address and timeout used by the HTTP
	// transport layer.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Capture holds the microphone recording policy.
	Capture Capture `envPrefix:"CAPTURE_"`

	// Storage holds the local database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Adapter holds network settings for the outbound transport layer.
type Adapter struct {
	// ServerAddress is the base URL of the VoiceNudge server
	// (e.g. "http://localhost:8888").
	// Env: ADAPTER_SERVER_ADDRESS
	ServerAddress string `env:"SERVER_ADDRESS"`

	// RequestTimeout is the maximum duration of a single outbound request,
	// including the multipart voice upload (e.g. "30s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Capture holds the recording policy enforced by the capture engine.
type Capture struct {
	// MinSampleDuration is the floor below which a recorded login sample is
	// discarded (e.g. "15s"). Uploaded files are not checked against it.
	// Env: CAPTURE_MIN_SAMPLE_DURATION
	MinSampleDuration time.Duration `env:"MIN_SAMPLE_DURATION"`

	// MaxSampleDuration is the ceiling at which an automatic stop is
	// scheduled (e.g. "20s").
	// Env: CAPTURE_MAX_SAMPLE_DURATION
	MaxSampleDuration time.Duration `env:"MAX_SAMPLE_DURATION"`

	// SampleRate is the PCM sample rate in Hz used for recording.
	// Env: CAPTURE_SAMPLE_RATE
	SampleRate int `env:"SAMPLE_RATE"`
}

// Storage holds local database connection settings.
type Storage struct {
	// DSN is the SQLite path used for the local identity cache
	// (e.g. "voicenudge.db").
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// ProbeInterval defines how often the session keepalive probe runs
	// (e.g. "5m").
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}
