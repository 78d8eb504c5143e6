package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
)

type fakeClient struct {
	mu    sync.Mutex
	reqs  []domain.ExportRequest
	data  []byte
	err   error
	errOn map[string]error
}

func (c *fakeClient) Generate(_ context.Context, req domain.ExportRequest) (domain.ExportResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reqs = append(c.reqs, req)
	if err, ok := c.errOn[req.Payload]; ok {
		return domain.ExportResult{}, err
	}
	if c.err != nil {
		return domain.ExportResult{}, c.err
	}
	return domain.ExportResult{
		Format:   req.Format,
		Filename: req.Format.Filename(),
		Data:     c.data,
		Status:   200,
	}, nil
}

func (c *fakeClient) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reqs)
}

type saveCall struct {
	data     []byte
	filename string
}

type fakeSaver struct {
	mu    sync.Mutex
	calls []saveCall
	err   error
}

func (s *fakeSaver) Save(_ context.Context, data []byte, filename string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, saveCall{data: data, filename: filename})
	if s.err != nil {
		return "", s.err
	}
	return "/out/" + filename, nil
}

type fakeHistory struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
	err     error
}

func (h *fakeHistory) Append(e domain.HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.entries = append(h.entries, e)
	return nil
}

func (h *fakeHistory) List(int) ([]domain.HistoryEntry, error) {
	return nil, errors.New("not used")
}
