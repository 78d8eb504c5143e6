package filesaver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
)

func TestDirSaver_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	data := []byte{0x89, 'P', 'N', 'G', 0x00, 0x1d}

	loc, err := NewDirSaver(dir).Save(context.Background(), data, "gs1-dm.png")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "gs1-dm.png"), loc)
	got, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	assertNoTempFiles(t, dir)
}

func TestDirSaver_UniqueNameOnCollision(t *testing.T) {
	dir := t.TempDir()
	s := NewDirSaver(dir)

	first, err := s.Save(context.Background(), []byte("1"), "gs1-dm.pdf")
	require.NoError(t, err)
	second, err := s.Save(context.Background(), []byte("2"), "gs1-dm.pdf")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "gs1-dm.pdf"), first)
	assert.Equal(t, filepath.Join(dir, "gs1-dm_2.pdf"), second)

	b, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "1", string(b))
}

func TestDirSaver_Overwrite(t *testing.T) {
	dir := t.TempDir()
	s := NewDirSaver(dir, WithOverwrite(true))

	_, err := s.Save(context.Background(), []byte("old"), "gs1-dm.png")
	require.NoError(t, err)
	loc, err := s.Save(context.Background(), []byte("new"), "gs1-dm.png")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "gs1-dm.png"), loc)
	b, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "new", string(b))
	assertNoTempFiles(t, dir)
}

func TestDirSaver_StripsDirectoriesFromFilename(t *testing.T) {
	dir := t.TempDir()

	loc, err := NewDirSaver(dir).Save(context.Background(), []byte("x"), "../../gs1-dm.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "gs1-dm.png"), loc)
}

func TestDirSaver_EmptyFilename(t *testing.T) {
	_, err := NewDirSaver(t.TempDir()).Save(context.Background(), []byte("x"), "  ")
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig))
}

func TestDirSaver_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDirSaver(t.TempDir()).Save(ctx, []byte("x"), "gs1-dm.png")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBrowserSaver_OpensSavedFile(t *testing.T) {
	dir := t.TempDir()
	var opened []string

	s := NewBrowserSaver(NewDirSaver(dir), nil)
	s.open = func(p string) error {
		opened = append(opened, p)
		return nil
	}

	loc, err := s.Save(context.Background(), []byte("x"), "gs1-dm.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{loc}, opened)
}

func TestBrowserSaver_OpenFailureIsNotFatal(t *testing.T) {
	s := NewBrowserSaver(NewDirSaver(t.TempDir()), nil)
	s.open = func(string) error { return errors.New("no display") }

	loc, err := s.Save(context.Background(), []byte("x"), "gs1-dm.pdf")
	require.NoError(t, err)
	assert.FileExists(t, loc)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriterSaver(t *testing.T) {
	var buf bytes.Buffer
	loc, err := NewWriterSaver(&buf).Save(context.Background(), []byte("pdf-bytes"), "gs1-dm.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", buf.String())
	assert.Equal(t, "<stdout>:gs1-dm.pdf", loc)

	_, err = NewWriterSaver(failingWriter{}).Save(context.Background(), []byte("x"), "gs1-dm.pdf")
	assert.True(t, domain.IsKind(err, domain.KindExecution))
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
