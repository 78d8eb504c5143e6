package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
)

// MapConfig applies the parsed file on top of domain.DefaultConfig().
func MapConfig(path string, fc FileConfig) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	y := fc.GS1DM

	if v := strings.TrimSpace(y.Server.BaseURL); v != "" {
		cfg.Server.BaseURL = v
	}

	if v := strings.TrimSpace(y.HTTP.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return domain.Config{}, invalidField(path, "http.timeout", err.Error())
		}
		if d < 0 {
			return domain.Config{}, invalidField(path, "http.timeout", "must not be negative")
		}
		cfg.HTTP.Timeout = d
	}

	if v := strings.TrimSpace(y.Export.DefaultFormat); v != "" {
		f, err := domain.ParseFormat(v)
		if err != nil {
			return domain.Config{}, invalidField(path, "export.default_format", fmt.Sprintf("unsupported format %q", v))
		}
		cfg.Export.DefaultFormat = f
	}
	if v := strings.TrimSpace(y.Export.OutputDir); v != "" {
		cfg.Export.OutputDir = v
	}
	if y.Export.Open != nil {
		cfg.Export.Open = *y.Export.Open
	}
	if y.Export.Overwrite != nil {
		cfg.Export.Overwrite = *y.Export.Overwrite
	}
	if y.Export.GSToken != "" {
		cfg.Export.GSToken = y.Export.GSToken
	}

	if y.History.Enabled != nil {
		cfg.History.Enabled = *y.History.Enabled
	}
	if y.History.MaskPayload != nil {
		cfg.History.MaskPayload = *y.History.MaskPayload
	}

	if y.Batch.Concurrency != nil {
		if *y.Batch.Concurrency < 1 {
			return domain.Config{}, invalidField(path, "batch.concurrency", "must be at least 1")
		}
		cfg.Batch.Concurrency = *y.Batch.Concurrency
	}
	if y.Batch.RatePerSec != nil {
		if *y.Batch.RatePerSec < 0 {
			return domain.Config{}, invalidField(path, "batch.rate_per_sec", "must not be negative")
		}
		cfg.Batch.RatePerSec = *y.Batch.RatePerSec
	}

	if v := strings.TrimSpace(y.StateDir); v != "" {
		cfg.StateDir = v
	}

	return cfg, nil
}

// ApplyEnv lets GS1DM_SERVER override server.base_url.
func ApplyEnv(cfg domain.Config, getenv func(string) string) domain.Config {
	if v := strings.TrimSpace(getenv(EnvServer)); v != "" {
		cfg.Server.BaseURL = v
	}
	return cfg
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
