package tui

import "github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"

type exportDoneMsg struct {
	seq    int
	format domain.Format
	saved  domain.SavedExport
	err    error
}
