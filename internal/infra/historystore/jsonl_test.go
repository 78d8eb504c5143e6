package historystore

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
)

func newTestStore(t *testing.T, mask bool) (*JSONLStore, string) {
	t.Helper()
	tmp := t.TempDir()

	cfg := domain.DefaultConfig()
	cfg.History.MaskPayload = mask

	n := 0
	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	store := NewJSONLStore(tmp, cfg,
		WithNow(func() time.Time { return start }),
		WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	return store, tmp
}

func TestAppend_CreatesHistoryFile(t *testing.T) {
	store, tmp := newTestStore(t, false)

	err := store.Append(domain.HistoryEntry{
		Format:   domain.FormatPNG,
		Payload:  "(01)01234567890128\x1d(10)ABC",
		Status:   domain.HistoryOK,
		HTTPCode: 200,
		Filename: "gs1-dm.png",
		Bytes:    42,
	})
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}

	wantFile := filepath.Join(tmp, ".gs1dm", "history.jsonl")
	if store.Path() != wantFile {
		t.Fatalf("expected path %s, got %s", wantFile, store.Path())
	}
	if _, err := os.Stat(wantFile); err != nil {
		t.Fatalf("expected file at %s, stat err=%v", wantFile, err)
	}

	got, err := store.List(0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got=%d", len(got))
	}
	e := got[0]
	if e.ID != "id-1" {
		t.Fatalf("expected generated id, got=%q", e.ID)
	}
	if !e.At.Equal(time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)) {
		t.Fatalf("expected timestamp from clock, got=%s", e.At)
	}
	if e.Payload != "(01)01234567890128<GS>(10)ABC" {
		t.Fatalf("expected printable payload, got=%q", e.Payload)
	}
	if e.Bytes != 42 || e.HTTPCode != 200 {
		t.Fatalf("expected fields preserved, got=%+v", e)
	}
}

func TestAppend_MasksPayloadWhenEnabled(t *testing.T) {
	store, _ := newTestStore(t, true)

	entry := domain.HistoryEntry{Payload: "(01)0123\x1d(10)ABC", Status: domain.HistoryOK}
	if err := store.Append(entry); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if entry.Payload != "(01)0123\x1d(10)ABC" {
		t.Fatalf("expected caller entry not mutated")
	}

	got, err := store.List(1)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if got[0].Payload != "(01)****<GS>(10)***" {
		t.Fatalf("expected masked payload, got=%q", got[0].Payload)
	}
}

func TestList_NewestFirstWithLimit(t *testing.T) {
	store, _ := newTestStore(t, false)

	for i := 1; i <= 3; i++ {
		if err := store.Append(domain.HistoryEntry{Payload: fmt.Sprintf("p%d", i)}); err != nil {
			t.Fatalf("Append #%d error: %v", i, err)
		}
	}

	got, err := store.List(2)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got=%d", len(got))
	}
	if got[0].Payload != "p3" || got[1].Payload != "p2" {
		t.Fatalf("expected newest first, got=%q,%q", got[0].Payload, got[1].Payload)
	}
}

func TestList_MissingFileIsEmpty(t *testing.T) {
	store, _ := newTestStore(t, false)

	got, err := store.List(10)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no entries, got=%d", len(got))
	}
}

func TestList_SkipsCorruptLines(t *testing.T) {
	store, _ := newTestStore(t, false)
	if err := store.Append(domain.HistoryEntry{Payload: "good"}); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	f, err := os.OpenFile(store.Path(), os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_, _ = f.WriteString("{not json\n\n")
	_ = f.Close()

	got, err := store.List(0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 || got[0].Payload != "good" {
		t.Fatalf("expected only the good entry, got=%+v", got)
	}
}

func TestNewJSONLStore_AbsoluteStateDir(t *testing.T) {
	abs := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.StateDir = abs

	store := NewJSONLStore("/somewhere/else", cfg)
	if store.Path() != filepath.Join(abs, "history.jsonl") {
		t.Fatalf("expected absolute state dir to be used, got %s", store.Path())
	}
}
