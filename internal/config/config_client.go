package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// Version is the application version shown on the welcome screen.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// ServerAddress is the base URL of the VoiceNudge server.
	ServerAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientCapture holds the recording policy for the capture engine.
type ClientCapture struct {
	// MinSampleDuration is the minimum accepted length of a recorded login
	// sample; shorter recordings are discarded client-side.
	MinSampleDuration time.Duration
	// MaxSampleDuration bounds a recording session; an automatic stop is
	// scheduled at this ceiling.
	MaxSampleDuration time.Duration
	// SampleRate is the PCM sample rate in Hz.
	SampleRate int
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DSN is the SQLite path for the local identity cache.
	DSN string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// ProbeInterval defines how often the session keepalive probe runs.
	ProbeInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport address and timeout.
	Adapter ClientAdapter
	// Capture contains the recording policy.
	Capture ClientCapture
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// Defaults applied when neither env, flags nor the JSON file set a value.
const (
	DefaultServerAddress     = "http://localhost:8888"
	DefaultRequestTimeout    = 30 * time.Second
	DefaultMinSampleDuration = 15 * time.Second
	DefaultMaxSampleDuration = 20 * time.Second
	DefaultSampleRate        = 16000
	DefaultProbeInterval     = 5 * time.Minute
	DefaultStorageDSN        = "voicenudge.db"
)

// GetClientConfig builds and validates the client config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, applies defaults for unset values, and
// validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			ServerAddress:  cfg.Adapter.ServerAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Capture: ClientCapture{
			MinSampleDuration: cfg.Capture.MinSampleDuration,
			MaxSampleDuration: cfg.Capture.MaxSampleDuration,
			SampleRate:        cfg.Capture.SampleRate,
		},
		Storage: ClientStorage{
			DSN: cfg.Storage.DSN,
		},
		Workers: ClientWorkers{ProbeInterval: cfg.Workers.ProbeInterval},
	}

	clientCfg.applyDefaults()
	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.ServerAddress == "" {
		cfg.Adapter.ServerAddress = DefaultServerAddress
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Capture.MinSampleDuration == 0 {
		cfg.Capture.MinSampleDuration = DefaultMinSampleDuration
	}
	if cfg.Capture.MaxSampleDuration == 0 {
		cfg.Capture.MaxSampleDuration = DefaultMaxSampleDuration
	}
	if cfg.Capture.SampleRate == 0 {
		cfg.Capture.SampleRate = DefaultSampleRate
	}
	if cfg.Workers.ProbeInterval == 0 {
		cfg.Workers.ProbeInterval = DefaultProbeInterval
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = DefaultStorageDSN
	}
}
