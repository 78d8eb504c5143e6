package domain

import (
	"fmt"
	"strings"
)

// Format selects the document the export server renders.
// The zero value means the default format, PNG.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"

	DefaultFormat = FormatPNG

	filenameStem = "gs1-dm"
)

// Normalize maps the zero value to DefaultFormat. Other values pass through.
func (f Format) Normalize() Format {
	if f == "" {
		return DefaultFormat
	}
	return f
}

// Extension is "png" for PNG (and the default), "pdf" for everything else.
func (f Format) Extension() string {
	if f.Normalize() == FormatPNG {
		return "png"
	}
	return "pdf"
}

// Filename is the name suggested to the file saver: gs1-dm.png or gs1-dm.pdf.
func (f Format) Filename() string {
	return filenameStem + "." + f.Extension()
}

// IndexedFilename is used when several exports land in the same place (batch mode).
func (f Format) IndexedFilename(n int) string {
	return fmt.Sprintf("%s_%d.%s", filenameStem, n, f.Extension())
}

// MIMEType is the media type the server is expected to answer with.
func (f Format) MIMEType() string {
	if f.Normalize() == FormatPNG {
		return "image/png"
	}
	return "application/pdf"
}

// ParseFormat is strict: it accepts png or pdf (any case) and "" as the default.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultFormat, nil
	case FormatPNG:
		return FormatPNG, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", &OpError{
			Op:   "domain.parse_format",
			Kind: KindInvalidConfig,
			Err:  fmt.Errorf("unsupported format %q (expected png|pdf): %w", s, ErrInvalidConfig),
		}
	}
}
