package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid config")
	ErrExecution     = errors.New("execution error")
	ErrExportFailed  = errors.New("server export failed")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindExecution     ErrorKind = "execution"
	KindExportFailed  ErrorKind = "export_failed"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExportFailedError is returned when the export server answers with a
// non-success status. Message holds the response body as text, unmodified.
type ExportFailedError struct {
	Status  int
	Message string
}

func (e *ExportFailedError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return ErrExportFailed.Error() + ": " + e.Message
}

// Is makes errors.Is(err, ErrExportFailed) hold for any ExportFailedError.
func (e *ExportFailedError) Is(target error) bool {
	return target == ErrExportFailed
}

// Summary returns the first line of the server message, for one-line displays.
func (e *ExportFailedError) Summary() string {
	if e == nil {
		return ""
	}
	msg := strings.TrimSpace(e.Message)
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = strings.TrimSpace(msg[:i])
	}
	if msg == "" {
		return fmt.Sprintf("status %d", e.Status)
	}
	return msg
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	if kind == KindExportFailed {
		var fe *ExportFailedError
		return errors.As(err, &fe)
	}
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
