package tui

import (
	"context"
	"log/slog"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
)

// Exporter is the export use case as seen by the TUI.
type Exporter interface {
	Execute(ctx context.Context, payload string, format domain.Format) (domain.SavedExport, error)
}

type Deps struct {
	Exporter   Exporter
	Config     domain.Config
	ConfigPath string

	Logger *slog.Logger
	Debug  bool
}
