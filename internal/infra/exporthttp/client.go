// Package exporthttp talks to the label server's /api/generate endpoint.
package exporthttp

import (
	"context"
	"log/slog"
	"mime"

	"github.com/gabriel-vasile/mimetype"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/gs1"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/infra/httpclient"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/ports"
)

type Client struct {
	baseURL string
	exec    *httpclient.Executor
	log     *slog.Logger
}

type Option func(*Client)

func WithExecutor(exec *httpclient.Executor) Option {
	return func(c *Client) { c.exec = exec }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		exec:    httpclient.NewExecutor(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.ExportClient = (*Client)(nil)

// Generate posts req once. Statuses outside 2xx/3xx become *domain.ExportFailedError
// carrying the body text; transport errors are returned untouched.
func (c *Client) Generate(ctx context.Context, req domain.ExportRequest) (domain.ExportResult, error) {
	req.Format = req.Format.Normalize()

	httpReq, id, err := httpclient.BuildExportRequest(ctx, c.baseURL, req)
	if err != nil {
		return domain.ExportResult{}, err
	}

	c.log.Debug("export.request",
		"request_id", id,
		"url", httpReq.URL.String(),
		"format", string(req.Format),
		"gs1", gs1.Display(req.Payload),
	)

	resp, err := c.exec.Do(ctx, httpReq)
	if err != nil {
		c.log.Error("export.transport_error", "request_id", id, "err", err, "duration_ms", resp.Duration.Milliseconds())
		return domain.ExportResult{}, err
	}

	if !resp.OK() {
		c.log.Warn("export.failed",
			"request_id", id,
			"status", resp.Status,
			"duration_ms", resp.Duration.Milliseconds(),
		)
		return domain.ExportResult{}, &domain.ExportFailedError{
			Status:  resp.Status,
			Message: string(resp.BodyBytes),
		}
	}

	result := domain.ExportResult{
		Format:      req.Format,
		Filename:    req.Format.Filename(),
		ContentType: resp.Headers.Get("Content-Type"),
		Detected:    mimetype.Detect(resp.BodyBytes).String(),
		Data:        resp.BodyBytes,
		Status:      resp.Status,
		RequestID:   id,
		Duration:    resp.Duration,
	}

	if !matchesFormat(result.Detected, req.Format) {
		c.log.Warn("export.unexpected_content",
			"request_id", id,
			"format", string(req.Format),
			"detected", result.Detected,
			"content_type", result.ContentType,
		)
	}

	c.log.Info("export.ok",
		"request_id", id,
		"status", resp.Status,
		"bytes", len(result.Data),
		"duration_ms", resp.Duration.Milliseconds(),
	)
	return result, nil
}

func matchesFormat(detected string, f domain.Format) bool {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return false
	}
	return mt == f.MIMEType()
}
