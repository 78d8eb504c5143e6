package usecase

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/ports"
)

// BatchItem is the outcome of one payload line.
type BatchItem struct {
	Index    int // 1-based line number among non-empty lines
	Payload  string
	Filename string
	Location string
	Err      error
}

// BatchExport runs one RequestExport per payload with bounded concurrency and pacing.
type BatchExport struct {
	client      ports.ExportClient
	saver       ports.FileSaver
	history     ports.HistoryStore
	log         *slog.Logger
	concurrency int
	limiter     *rate.Limiter
}

type BatchOption func(*BatchExport)

func WithConcurrency(n int) BatchOption {
	return func(b *BatchExport) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithRate limits requests per second. Zero or less disables pacing.
func WithRate(perSec float64) BatchOption {
	return func(b *BatchExport) {
		if perSec <= 0 {
			b.limiter = nil
			return
		}
		burst := int(perSec)
		if burst < 1 {
			burst = 1
		}
		b.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
}

func WithBatchHistory(h ports.HistoryStore) BatchOption {
	return func(b *BatchExport) { b.history = h }
}

func WithBatchLogger(l *slog.Logger) BatchOption {
	return func(b *BatchExport) { b.log = l }
}

func NewBatchExport(client ports.ExportClient, saver ports.FileSaver, opts ...BatchOption) *BatchExport {
	b := &BatchExport{
		client:      client,
		saver:       saver,
		log:         slog.Default(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Execute exports every payload. Item failures are reported per item and do
// not stop the others; only context cancellation ends the batch early.
// Results keep input order.
func (b *BatchExport) Execute(ctx context.Context, payloads []string, format domain.Format) ([]BatchItem, error) {
	items := make([]BatchItem, len(payloads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, p := range payloads {
		p := p
		idx := i + 1
		items[i] = BatchItem{Index: idx, Payload: p}

		g.Go(func() error {
			if b.limiter != nil {
				if err := b.limiter.Wait(gctx); err != nil {
					items[idx-1].Err = err
					return err
				}
			}

			uc := NewRequestExport(b.client, b.saver,
				WithHistory(b.history),
				WithLogger(b.log.With("batch_index", idx)),
				WithFilename(func(f domain.Format) string { return f.IndexedFilename(idx) }),
			)

			saved, err := uc.Execute(gctx, p, format)
			items[idx-1].Filename = format.IndexedFilename(idx)
			items[idx-1].Location = saved.Location
			items[idx-1].Err = err
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return items, err
}

// ReadPayloads returns the non-empty lines of r, with surrounding blanks and
// a trailing '\r' removed. Lines starting with '#' are comments.
func ReadPayloads(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		out = append(out, strings.TrimSpace(line))
	}
	return out, sc.Err()
}
