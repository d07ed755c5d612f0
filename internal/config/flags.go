package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server base URL, e.g. http://localhost:8888
//	-d local SQLite database path
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-min-sample minimum recorded sample duration (e.g., "15s")
//	-max-sample maximum recording duration (e.g., "20s")
//	-sample-rate PCM sample rate in Hz
//	-probe-interval session keepalive probe interval (e.g., "5m")
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var databaseDSN string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var minSample time.Duration
	var maxSample time.Duration
	var sampleRate int
	var probeInterval time.Duration

	flag.StringVar(&serverAddress, "a", "", "Server base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local database path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&minSample, "min-sample", 0, "Minimum recorded sample duration (e.g., 15s)")
	flag.DurationVar(&maxSample, "max-sample", 0, "Maximum recording duration (e.g., 20s)")
	flag.IntVar(&sampleRate, "sample-rate", 0, "PCM sample rate in Hz")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Session keepalive probe interval (e.g., 5m)")

	flag.Parse()

	return &StructuredConfig{
		Adapter: Adapter{
			ServerAddress:  serverAddress,
			RequestTimeout: requestTimeout,
		},
		Capture: Capture{
			MinSampleDuration: minSample,
			MaxSampleDuration: maxSample,
			SampleRate:        sampleRate,
		},
		Storage: Storage{
			DSN: databaseDSN,
		},
		Workers:      Workers{ProbeInterval: probeInterval},
		JSONFilePath: jsonConfigPath,
	}
}
