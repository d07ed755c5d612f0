package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations, so config files can say "30s" instead of
// nanosecond integers.
type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Adapter struct {
		ServerAddress  string   `json:"server_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Capture struct {
		MinSampleDuration Duration `json:"min_sample_duration"`
		MaxSampleDuration Duration `json:"max_sample_duration"`
		SampleRate        int      `json:"sample_rate"`
	} `json:"capture,omitempty"`

	Storage struct {
		DSN string `json:"dsn"`
	} `json:"storage,omitempty"`

	Workers struct {
		ProbeInterval Duration `json:"probe_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version: jsonCfg.App.Version,
		},
		Adapter: Adapter{
			ServerAddress:  jsonCfg.Adapter.ServerAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Capture: Capture{
			MinSampleDuration: time.Duration(jsonCfg.Capture.MinSampleDuration),
			MaxSampleDuration: time.Duration(jsonCfg.Capture.MaxSampleDuration),
			SampleRate:        jsonCfg.Capture.SampleRate,
		},
		Storage: Storage{
			DSN: jsonCfg.Storage.DSN,
		},
		Workers:      Workers{ProbeInterval: time.Duration(jsonCfg.Workers.ProbeInterval)},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
