package filesaver

import (
	"context"
	"io"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/ports"
)

// WriterSaver streams the document to w (stdout for `--out -`). The filename is
// only echoed back as the location.
type WriterSaver struct {
	w io.Writer
}

func NewWriterSaver(w io.Writer) *WriterSaver {
	return &WriterSaver{w: w}
}

var _ ports.FileSaver = (*WriterSaver)(nil)

func (s *WriterSaver) Save(ctx context.Context, data []byte, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := s.w.Write(data); err != nil {
		return "", &domain.OpError{
			Op:   "filesaver.stream",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	return "<stdout>:" + filename, nil
}
