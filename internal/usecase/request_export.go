package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/ports"
)

// FilenameFunc picks the name handed to the FileSaver.
type FilenameFunc func(f domain.Format) string

// RequestExport sends a GS1 payload to the export server and saves what comes back.
type RequestExport struct {
	client   ports.ExportClient
	saver    ports.FileSaver
	history  ports.HistoryStore
	log      *slog.Logger
	filename FilenameFunc
	now      func() time.Time
}

type RequestExportOption func(*RequestExport)

// WithHistory records every attempt. A nil store disables history.
func WithHistory(h ports.HistoryStore) RequestExportOption {
	return func(uc *RequestExport) { uc.history = h }
}

func WithLogger(l *slog.Logger) RequestExportOption {
	return func(uc *RequestExport) { uc.log = l }
}

// WithFilename overrides the default gs1-dm.<ext> name.
func WithFilename(fn FilenameFunc) RequestExportOption {
	return func(uc *RequestExport) { uc.filename = fn }
}

func NewRequestExport(client ports.ExportClient, saver ports.FileSaver, opts ...RequestExportOption) *RequestExport {
	uc := &RequestExport{
		client:   client,
		saver:    saver,
		log:      slog.Default(),
		filename: domain.Format.Filename,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute performs one export. The zero format means PNG. The payload is sent
// unmodified and the server is called exactly once; errors from the client
// (including *domain.ExportFailedError) are returned as they are.
func (uc *RequestExport) Execute(ctx context.Context, payload string, format domain.Format) (domain.SavedExport, error) {
	req := domain.NewExportRequest(payload, format)
	started := uc.now()

	res, err := uc.client.Generate(ctx, req)
	if err != nil {
		uc.record(failedEntry(req, started, err))
		return domain.SavedExport{}, err
	}

	name := uc.filename(req.Format)
	res.Filename = name

	loc, err := uc.saver.Save(ctx, res.Data, name)
	if err != nil {
		uc.log.Error("export.save_failed", "filename", name, "err", err)
		entry := failedEntry(req, started, err)
		entry.HTTPCode = res.Status
		entry.RequestID = res.RequestID
		uc.record(entry)
		return domain.SavedExport{Result: res}, err
	}

	uc.log.Info("export.saved", "filename", name, "location", loc, "bytes", len(res.Data))
	uc.record(domain.HistoryEntry{
		At:          started,
		Format:      req.Format,
		Payload:     req.Payload,
		Status:      domain.HistoryOK,
		HTTPCode:    res.Status,
		RequestID:   res.RequestID,
		Filename:    name,
		Location:    loc,
		Bytes:       len(res.Data),
		ContentType: res.ContentType,
		DurationMS:  res.Duration.Milliseconds(),
	})

	return domain.SavedExport{Result: res, Location: loc}, nil
}

func (uc *RequestExport) record(e domain.HistoryEntry) {
	if uc.history == nil {
		return
	}
	if err := uc.history.Append(e); err != nil {
		uc.log.Warn("history.append_failed", "err", err)
	}
}

func failedEntry(req domain.ExportRequest, at time.Time, err error) domain.HistoryEntry {
	e := domain.HistoryEntry{
		At:      at,
		Format:  req.Format,
		Payload: req.Payload,
		Status:  domain.HistoryFailed,
		Error:   err.Error(),
	}
	var fe *domain.ExportFailedError
	if errors.As(err, &fe) {
		e.HTTPCode = fe.Status
	}
	return e
}
