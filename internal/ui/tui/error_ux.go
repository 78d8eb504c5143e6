package tui

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var fe *domain.ExportFailedError
	if errors.As(err, &fe) {
		return "Server error (" + strconv.Itoa(fe.Status) + "): " + clampString(fe.Summary(), 200)
	}

	if errors.Is(err, context.Canceled) {
		return "Export cancelled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Server did not answer in time"
	}

	var ue *url.Error
	if errors.As(err, &ue) {
		return "Cannot reach server " + hostOf(ue.URL)
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case domain.KindInvalidConfig:
			if strings.TrimSpace(oe.Path) != "" {
				return "Invalid config at " + filepath.Base(oe.Path)
			}
			return "Invalid config"
		case domain.KindNotFound:
			return "Not found"
		case domain.KindExecution:
			if strings.HasPrefix(oe.Op, "filesaver") {
				return "Could not save file (see logs)"
			}
		}
	}

	return "Unexpected error (see logs)"
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}
