package ports

import "github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"

// HistoryStore persists one entry per export attempt.
type HistoryStore interface {
	Append(entry domain.HistoryEntry) error
	List(limit int) ([]domain.HistoryEntry, error)
}
