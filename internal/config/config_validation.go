// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Thripura Sri

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Cross-source consistency is checked on the client view instead, after
// defaults have been applied; see [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.ServerAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Capture.MinSampleDuration <= 0 ||
		cfg.Capture.MaxSampleDuration <= 0 ||
		cfg.Capture.MinSampleDuration > cfg.Capture.MaxSampleDuration ||
		cfg.Capture.SampleRate <= 0 {
		return ErrInvalidCaptureConfigs
	}

	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.ProbeInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
