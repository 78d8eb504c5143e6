package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
)

const (
	HeaderRequestID = "X-Request-ID"

	acceptExport = "image/png, application/pdf, */*"
)

// GenerateURL joins baseURL with domain.GeneratePath, keeping any path prefix
// of baseURL (e.g. https://host/label-service).
func GenerateURL(baseURL string) (string, error) {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		return "", &domain.OpError{
			Op:   "httpclient.url",
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrInvalidConfig,
		}
	}

	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		if err == nil {
			err = domain.ErrInvalidConfig
		}
		return "", &domain.OpError{
			Op:   "httpclient.url",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	u.Path = strings.TrimRight(u.Path, "/") + domain.GeneratePath
	u.RawPath = ""
	return u.String(), nil
}

// ErrPayloadNotUTF8 is returned for payloads JSON cannot carry unchanged.
var ErrPayloadNotUTF8 = errors.New("gs1 payload is not valid UTF-8 and cannot be sent as JSON without altering it")

// BuildExportRequest builds the POST carrying req as JSON. The returned
// request id is also set as the X-Request-ID header.
func BuildExportRequest(ctx context.Context, baseURL string, req domain.ExportRequest) (*http.Request, string, error) {
	target, err := GenerateURL(baseURL)
	if err != nil {
		return nil, "", err
	}

	// encoding/json would turn invalid bytes into U+FFFD.
	if !utf8.ValidString(req.Payload) {
		return nil, "", &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%w: %w", ErrPayloadNotUTF8, domain.ErrInvalidConfig),
		}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, "", &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return nil, "", &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	id := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", acceptExport)
	httpReq.Header.Set(HeaderRequestID, id)

	return httpReq, id, nil
}
