package domain

import "time"

// HistoryStatus is the outcome recorded for an export.
type HistoryStatus string

const (
	HistoryOK     HistoryStatus = "ok"
	HistoryFailed HistoryStatus = "failed"
)

// HistoryEntry is one line of the export history.
type HistoryEntry struct {
	ID        string        `json:"id"`
	At        time.Time     `json:"at"`
	Format    Format        `json:"format"`
	Payload   string        `json:"payload"`
	Status    HistoryStatus `json:"status"`
	HTTPCode  int           `json:"http_status,omitempty"`
	RequestID string        `json:"request_id,omitempty"`

	Filename    string `json:"filename,omitempty"`
	Location    string `json:"location,omitempty"`
	Bytes       int    `json:"bytes,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	DurationMS  int64  `json:"duration_ms,omitempty"`

	Error string `json:"error,omitempty"`
}
