package ports

import (
	"context"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
)

// ExportClient sends one ExportRequest to the export server.
// A non-success answer is reported as *domain.ExportFailedError.
type ExportClient interface {
	Generate(ctx context.Context, req domain.ExportRequest) (domain.ExportResult, error)
}
