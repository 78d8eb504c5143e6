package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
)

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "gs1dm.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.BaseURL != "https://labels.example.com" {
		t.Fatalf("expected base url, got %q", cfg.Server.BaseURL)
	}
	if cfg.HTTP.Timeout != 15*time.Second {
		t.Fatalf("expected timeout 15s, got %s", cfg.HTTP.Timeout)
	}
	if cfg.Export.DefaultFormat != domain.FormatPDF {
		t.Fatalf("expected pdf, got %q", cfg.Export.DefaultFormat)
	}
	if cfg.Export.OutputDir != "labels" || !cfg.Export.Open || cfg.Export.GSToken != "|" {
		t.Fatalf("unexpected export section: %+v", cfg.Export)
	}
	if !cfg.History.Enabled || !cfg.History.MaskPayload {
		t.Fatalf("expected history enabled (default) and masked, got %+v", cfg.History)
	}
	if cfg.Batch.Concurrency != 2 || cfg.Batch.RatePerSec != 0.5 {
		t.Fatalf("unexpected batch section: %+v", cfg.Batch)
	}
	if cfg.StateDir != ".gs1dm" {
		t.Fatalf("expected default state dir, got %q", cfg.StateDir)
	}
}

func TestLoadTOML(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "gs1dm.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.BaseURL != "http://printer.local:9000" {
		t.Fatalf("expected base url, got %q", cfg.Server.BaseURL)
	}
	if cfg.History.Enabled {
		t.Fatalf("expected history disabled")
	}
	if cfg.Batch.Concurrency != 8 {
		t.Fatalf("expected concurrency 8, got %d", cfg.Batch.Concurrency)
	}
	if cfg.StateDir != "/var/lib/gs1dm" {
		t.Fatalf("expected state dir, got %q", cfg.StateDir)
	}
	if cfg.Export.DefaultFormat != domain.FormatPNG {
		t.Fatalf("expected default format png, got %q", cfg.Export.DefaultFormat)
	}
}

func TestLoadInvalidFormat(t *testing.T) {
	path := filepath.Join("testdata", "invalid_format.yaml")
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
	if !strings.Contains(err.Error(), "export.default_format") {
		t.Fatalf("expected field in error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected path in error, got %v", err)
	}
}

func TestLoadBrokenYAML(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "broken.yaml"))
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "gs1dm.yaml"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if cfg.Server.BaseURL != domain.DefaultConfig().Server.BaseURL {
		t.Fatalf("expected defaults alongside the error")
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	p := filepath.Join(t.TempDir(), "gs1dm.json")
	if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestLoadDir(t *testing.T) {
	tmp := t.TempDir()

	_, _, err := LoadDir(tmp)
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found for empty dir, got %v", err)
	}

	body := "[gs1dm.server]\nbase_url = \"http://toml\"\n"
	if err := os.WriteFile(filepath.Join(tmp, "gs1dm.toml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, path, err := LoadDir(tmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(tmp, "gs1dm.toml") || cfg.Server.BaseURL != "http://toml" {
		t.Fatalf("expected toml config, got path=%s url=%s", path, cfg.Server.BaseURL)
	}

	// yaml wins over toml when both exist.
	if err := os.WriteFile(filepath.Join(tmp, "gs1dm.yaml"), []byte("gs1dm:\n  server:\n    base_url: http://yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err = LoadDir(tmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.BaseURL != "http://yaml" {
		t.Fatalf("expected yaml to win, got %s", cfg.Server.BaseURL)
	}
}
