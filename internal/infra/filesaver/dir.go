// Package filesaver implements ports.FileSaver for the filesystem, the system
// browser and plain writers.
package filesaver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/ports"
)

// maxCollisionSuffix caps the name_N search when overwrite is off.
const maxCollisionSuffix = 10000

type DirSaver struct {
	dir       string
	overwrite bool
	perm      os.FileMode
}

type Option func(*DirSaver)

// WithOverwrite replaces an existing file instead of picking gs1-dm_2.png, gs1-dm_3.png, ...
func WithOverwrite(enabled bool) Option {
	return func(s *DirSaver) { s.overwrite = enabled }
}

func WithPerm(perm os.FileMode) Option {
	return func(s *DirSaver) { s.perm = perm }
}

func NewDirSaver(dir string, opts ...Option) *DirSaver {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	s := &DirSaver{
		dir:  dir,
		perm: 0o644,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.FileSaver = (*DirSaver)(nil)

// Save writes data to a temp file in the target directory and renames it into
// place. The temp file never outlives the call.
func (s *DirSaver) Save(ctx context.Context, data []byte, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", &domain.OpError{
			Op:   "filesaver.save",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("empty filename: %w", domain.ErrInvalidConfig),
		}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "filesaver.mkdir",
			Kind: domain.KindExecution,
			Path: s.dir,
			Err:  err,
		}
	}

	path := filepath.Join(s.dir, name)
	if !s.overwrite {
		p, err := uniquePath(path)
		if err != nil {
			return "", err
		}
		path = p
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return "", &domain.OpError{
			Op:   "filesaver.write",
			Kind: domain.KindExecution,
			Path: s.dir,
			Err:  err,
		}
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", &domain.OpError{
			Op:   "filesaver.write",
			Kind: domain.KindExecution,
			Path: tmpPath,
			Err:  err,
		}
	}
	if err := tmp.Close(); err != nil {
		return "", &domain.OpError{
			Op:   "filesaver.write",
			Kind: domain.KindExecution,
			Path: tmpPath,
			Err:  err,
		}
	}
	if err := os.Chmod(tmpPath, s.perm); err != nil {
		return "", &domain.OpError{
			Op:   "filesaver.chmod",
			Kind: domain.KindExecution,
			Path: tmpPath,
			Err:  err,
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return "", &domain.OpError{
			Op:   "filesaver.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}

func uniquePath(path string) (string, error) {
	if !exists(path) {
		return path, nil
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 2; i <= maxCollisionSuffix; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if !exists(candidate) {
			return candidate, nil
		}
	}
	return "", &domain.OpError{
		Op:   "filesaver.unique",
		Kind: domain.KindExecution,
		Path: path,
		Err:  fmt.Errorf("no free filename after %d attempts", maxCollisionSuffix),
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
