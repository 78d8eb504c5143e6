package ports

import "context"

// FileSaver hands a rendered document to the host (disk, browser, stdout).
// It returns a human-readable location of the saved file.
type FileSaver interface {
	Save(ctx context.Context, data []byte, filename string) (location string, err error)
}
