package mxfile

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/klauspost/compress/flate"
)

// maxInflatedSize bounds the decoded size of one compressed page.
const maxInflatedSize = 64 << 20

// inflateDiagram decodes the text content of a compressed diagram element:
// base64, then raw DEFLATE, then URI component decoding.
func inflateDiagram(text string) (string, error) {
	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
			return -1
		}
		return r
	}, text)

	data, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return "", fmt.Errorf("base64: %w", err)
	}

	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	raw, err := io.ReadAll(io.LimitReader(r, maxInflatedSize+1))
	if err != nil {
		return "", fmt.Errorf("inflate: %w", err)
	}
	if len(raw) > maxInflatedSize {
		return "", fmt.Errorf("inflate: page exceeds %d bytes", maxInflatedSize)
	}

	xmlText, err := url.PathUnescape(string(raw))
	if err != nil {
		return "", fmt.Errorf("uri decode: %w", err)
	}
	return xmlText, nil
}
