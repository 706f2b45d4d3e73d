package embedded

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNoDiagram is returned when a file holds no embedded diagram.
var ErrNoDiagram = errors.New("no embedded diagram")

// Format is the container a diagram is stored in.
type Format int

const (
	FormatXML Format = iota
	FormatSVG
	FormatPNG
)

// FormatOf picks the container from the file name.
func FormatOf(name string) Format {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".svg"):
		return FormatSVG
	case strings.HasSuffix(lower, ".png"):
		return FormatPNG
	default:
		return FormatXML
	}
}

// Extract returns the diagram text stored in data. name selects the
// container format.
func Extract(name string, data []byte) (string, error) {
	switch FormatOf(name) {
	case FormatSVG:
		return fromSVG(data)
	case FormatPNG:
		return fromPNG(data)
	default:
		return string(data), nil
	}
}

// unescapeURI undoes the encodeURIComponent applied by some draw.io
// versions. Text that is already markup is returned unchanged.
func unescapeURI(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "%3C") && !strings.HasPrefix(trimmed, "%3c") {
		return s, nil
	}
	out, err := url.PathUnescape(trimmed)
	if err != nil {
		return "", fmt.Errorf("decoding URI-encoded diagram: %w", err)
	}
	return out, nil
}
