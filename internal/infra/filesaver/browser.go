package filesaver

import (
	"context"
	"log/slog"

	"github.com/pkg/browser"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/ports"
)

// BrowserSaver stores the file through another saver, then asks the system
// browser to open it. A failure to launch the browser is logged, not returned:
// the file is already on disk.
type BrowserSaver struct {
	next ports.FileSaver
	open func(path string) error
	log  *slog.Logger
}

func NewBrowserSaver(next ports.FileSaver, log *slog.Logger) *BrowserSaver {
	if log == nil {
		log = slog.Default()
	}
	return &BrowserSaver{
		next: next,
		open: browser.OpenFile,
		log:  log,
	}
}

var _ ports.FileSaver = (*BrowserSaver)(nil)

func (s *BrowserSaver) Save(ctx context.Context, data []byte, filename string) (string, error) {
	loc, err := s.next.Save(ctx, data, filename)
	if err != nil {
		return "", err
	}

	if err := s.open(loc); err != nil {
		s.log.Warn("filesaver.browser_open_failed", "path", loc, "err", err)
	}
	return loc, nil
}
