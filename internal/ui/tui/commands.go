package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
)

// cmdExport runs one export off the UI goroutine. seq lets the model drop
// results of exports it already cancelled.
func cmdExport(ctx context.Context, deps Deps, seq int, payload string, format domain.Format) tea.Cmd {
	return func() tea.Msg {
		if deps.Exporter == nil {
			return exportDoneMsg{seq: seq, format: format, err: errors.New("Exporter is nil")}
		}

		log := deps.Logger
		if log == nil {
			log = slog.Default()
		}
		log.Info("tui.export.start", "format", string(format), "payload_bytes", len(payload))

		saved, err := deps.Exporter.Execute(ctx, payload, format)
		if err != nil {
			log.Error("tui.export.failed", "err", err)
		} else {
			log.Info("tui.export.ok", "location", saved.Location)
		}
		return exportDoneMsg{seq: seq, format: format, saved: saved, err: err}
	}
}
