package domain

import "time"

// Config represents the gs1dm configuration loaded from gs1dm.yaml (or gs1dm.toml).
type Config struct {
	Server   ServerConfig
	HTTP     HTTPConfig
	Export   ExportConfig
	History  HistoryConfig
	Batch    BatchConfig
	StateDir string
}

type ServerConfig struct {
	BaseURL string
}

type HTTPConfig struct {
	// Timeout bounds the whole request. Zero means no timeout.
	Timeout time.Duration
}

type ExportConfig struct {
	DefaultFormat Format
	OutputDir     string
	Open          bool
	Overwrite     bool
	GSToken       string
}

type HistoryConfig struct {
	Enabled     bool
	MaskPayload bool
}

type BatchConfig struct {
	Concurrency int
	RatePerSec  float64
}

// DefaultConfig provides sane defaults if gs1dm.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{BaseURL: "http://localhost:8080"},
		HTTP:   HTTPConfig{Timeout: 0},
		Export: ExportConfig{
			DefaultFormat: DefaultFormat,
			OutputDir:     ".",
			GSToken:       "<GS>",
		},
		History: HistoryConfig{Enabled: true},
		Batch: BatchConfig{
			Concurrency: 4,
			RatePerSec:  5,
		},
		StateDir: ".gs1dm",
	}
}
