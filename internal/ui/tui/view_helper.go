package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/gs1"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func renderSaved(s domain.SavedExport) string {
	r := s.Result
	var b strings.Builder
	b.WriteString("Saved: ")
	b.WriteString(s.Location)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s, %d bytes, status %d, %s", r.Format, len(r.Data), r.Status, r.Duration.Round(time.Millisecond)))
	return b.String()
}

// renderFields lists the separator-delimited fields of the expanded payload so
// the user can check where the 0x1D bytes landed.
func renderFields(payload string) string {
	fields := gs1.Fields(payload)
	if len(fields) <= 1 {
		return ""
	}
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString(" " + gs1.DefaultToken + " ")
		}
		b.WriteString(f)
	}
	return b.String()
}
