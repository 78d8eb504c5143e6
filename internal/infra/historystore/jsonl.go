package historystore

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/gs1"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/ports"
)

const (
	defaultStateDir = ".gs1dm"
	historyFile     = "history.jsonl"

	// Lines longer than this are skipped when reading.
	maxLineBytes = 1 << 20
)

type JSONLStore struct {
	mu          sync.Mutex
	path        string
	maskPayload bool
	now         func() time.Time
	newID       func() string
}

type Option func(*JSONLStore)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONLStore) { s.now = now }
}

// WithIDs is useful for tests.
func WithIDs(newID func() string) Option {
	return func(s *JSONLStore) { s.newID = newID }
}

// NewJSONLStore keeps history at <root>/<cfg.StateDir>/history.jsonl.
func NewJSONLStore(root string, cfg domain.Config, opts ...Option) *JSONLStore {
	stateDir := cfg.StateDir
	if strings.TrimSpace(stateDir) == "" {
		stateDir = defaultStateDir
	}
	if !filepath.IsAbs(stateDir) {
		stateDir = filepath.Join(root, stateDir)
	}

	s := &JSONLStore{
		path:        filepath.Join(stateDir, historyFile),
		maskPayload: cfg.History.MaskPayload,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.HistoryStore = (*JSONLStore)(nil)

func (s *JSONLStore) Path() string { return s.path }

// Append stores the entry with its payload made printable (and masked when enabled).
// The caller's entry is not modified.
func (s *JSONLStore) Append(entry domain.HistoryEntry) error {
	e := entry
	if e.ID == "" {
		e.ID = s.newID()
	}
	if e.At.IsZero() {
		e.At = s.now()
	}
	e.At = e.At.UTC()
	if s.maskPayload {
		e.Payload = gs1.Mask(e.Payload)
	} else {
		e.Payload = gs1.Display(e.Payload)
	}

	line, err := json.Marshal(e)
	if err != nil {
		return &domain.OpError{
			Op:   "historystore.marshal",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &domain.OpError{
			Op:   "historystore.mkdir",
			Kind: domain.KindExecution,
			Path: filepath.Dir(s.path),
			Err:  err,
		}
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return &domain.OpError{
			Op:   "historystore.open",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return &domain.OpError{
			Op:   "historystore.write",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
// Corrupt lines are skipped.
func (s *JSONLStore) List(limit int) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.HistoryEntry{}, nil
		}
		return nil, &domain.OpError{
			Op:   "historystore.open",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}
	defer f.Close()

	var all []domain.HistoryEntry
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var e domain.HistoryEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		all = append(all, e)
	}
	if err := sc.Err(); err != nil {
		return nil, &domain.OpError{
			Op:   "historystore.read",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}

	out := make([]domain.HistoryEntry, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, all[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
