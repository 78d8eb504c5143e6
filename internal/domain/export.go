package domain

import "time"

// GeneratePath is the server route that renders a GS1 DataMatrix.
const GeneratePath = "/api/generate"

// ExportRequest is the JSON body posted to GeneratePath.
// Payload is sent exactly as given, including its 0x1D group separators.
type ExportRequest struct {
	Format  Format `json:"format"`
	Payload string `json:"gs1"`
}

// NewExportRequest builds a request with the format defaulted to PNG.
func NewExportRequest(payload string, format Format) ExportRequest {
	return ExportRequest{Format: format.Normalize(), Payload: payload}
}

// ExportResult is the rendered document returned by the server.
type ExportResult struct {
	Format      Format
	Filename    string
	ContentType string // As reported by the server.
	Detected    string // Sniffed from Data.
	Data        []byte

	Status    int
	RequestID string
	Duration  time.Duration
}

// SavedExport describes where a FileSaver put an ExportResult.
type SavedExport struct {
	Result   ExportResult
	Location string
}
