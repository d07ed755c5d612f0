// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Thripura Sri

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, envVars map[string]string) {
	t.Helper()
	for k, v := range envVars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_VERSION": "1.2.3",

		"ADAPTER_SERVER_ADDRESS":  "http://localhost:8888",
		"ADAPTER_REQUEST_TIMEOUT": "30s",

		"CAPTURE_MIN_SAMPLE_DURATION": "15s",
		"CAPTURE_MAX_SAMPLE_DURATION": "20s",
		"CAPTURE_SAMPLE_RATE":         "16000",

		"STORAGE_DSN": "/var/lib/voicenudge.db",

		"WORKERS_PROBE_INTERVAL": "5m",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "1.2.3", cfg.App.Version)

	assert.Equal(t, "http://localhost:8888", cfg.Adapter.ServerAddress)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)

	assert.Equal(t, 15*time.Second, cfg.Capture.MinSampleDuration)
	assert.Equal(t, 20*time.Second, cfg.Capture.MaxSampleDuration)
	assert.Equal(t, 16000, cfg.Capture.SampleRate)

	assert.Equal(t, "/var/lib/voicenudge.db", cfg.Storage.DSN)

	assert.Equal(t, 5*time.Minute, cfg.Workers.ProbeInterval)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"ADAPTER_SERVER_ADDRESS": "http://localhost:8888",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8888", cfg.Adapter.ServerAddress)
	assert.Zero(t, cfg.Adapter.RequestTimeout)
	assert.Zero(t, cfg.Capture.MinSampleDuration)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{
		"ADAPTER_REQUEST_TIMEOUT": "not-a-duration",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)
	require.Error(t, err)
}

// ── ClientConfig validation ──────────────────────────────────────────────────

func validClientConfig() *ClientConfig {
	cfg := &ClientConfig{}
	cfg.applyDefaults()
	return cfg
}

func TestClientConfigValidate_DefaultsAreValid(t *testing.T) {
	cfg := validClientConfig()
	require.NoError(t, cfg.validate())
}

func TestClientConfigValidate_MinAboveMax(t *testing.T) {
	cfg := validClientConfig()
	cfg.Capture.MinSampleDuration = 25 * time.Second

	err := cfg.validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCaptureConfigs)
}

func TestClientConfigValidate_MissingServerAddress(t *testing.T) {
	cfg := validClientConfig()
	cfg.Adapter.ServerAddress = ""

	err := cfg.validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}

func TestClientConfigValidate_ZeroProbeInterval(t *testing.T) {
	cfg := validClientConfig()
	cfg.Workers.ProbeInterval = 0

	err := cfg.validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWorkerConfigs)
}

func TestApplyDefaults_DoesNotOverrideSetValues(t *testing.T) {
	cfg := &ClientConfig{}
	cfg.Adapter.ServerAddress = "http://example:9999"
	cfg.Capture.MinSampleDuration = 10 * time.Second
	cfg.applyDefaults()

	assert.Equal(t, "http://example:9999", cfg.Adapter.ServerAddress)
	assert.Equal(t, 10*time.Second, cfg.Capture.MinSampleDuration)
	assert.Equal(t, DefaultMaxSampleDuration, cfg.Capture.MaxSampleDuration)
}
