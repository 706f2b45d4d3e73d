package embedded

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

const (
	pngSignature = "\x89PNG\r\n\x1a\n"
	diagramKey   = "mxfile"

	// maxTextSize bounds a decompressed zTXt or iTXt payload.
	maxTextSize = 64 << 20
)

// fromPNG walks the chunk list for a tEXt, zTXt or iTXt chunk keyed
// "mxfile". image/png skips these chunks, so they are read by hand.
func fromPNG(data []byte) (string, error) {
	if !bytes.HasPrefix(data, []byte(pngSignature)) {
		return "", fmt.Errorf("%w: not a PNG file", ErrNoDiagram)
	}
	rest := data[len(pngSignature):]

	for len(rest) >= 12 {
		length := binary.BigEndian.Uint32(rest[:4])
		kind := string(rest[4:8])
		if uint64(length) > uint64(len(rest)-12) {
			return "", fmt.Errorf("png chunk %q is truncated", kind)
		}
		body := rest[8 : 8+length]
		rest = rest[12+length:]

		var (
			text string
			ok   bool
			err  error
		)
		switch kind {
		case "tEXt":
			text, ok = textChunk(body)
		case "zTXt":
			text, ok, err = compressedTextChunk(body)
		case "iTXt":
			text, ok, err = internationalTextChunk(body)
		case "IEND":
			return "", fmt.Errorf("%w: png has no %q text chunk", ErrNoDiagram, diagramKey)
		}
		if err != nil {
			return "", err
		}
		if ok {
			return unescapeURI(text)
		}
	}
	return "", fmt.Errorf("%w: png has no %q text chunk", ErrNoDiagram, diagramKey)
}

// keyword splits a text chunk body at its NUL-terminated keyword and
// reports whether the keyword names a diagram.
func keyword(body []byte) ([]byte, bool) {
	key, after, found := bytes.Cut(body, []byte{0})
	if !found || string(key) != diagramKey {
		return nil, false
	}
	return after, true
}

func textChunk(body []byte) (string, bool) {
	after, ok := keyword(body)
	if !ok {
		return "", false
	}
	return string(after), true
}

func compressedTextChunk(body []byte) (string, bool, error) {
	after, ok := keyword(body)
	if !ok {
		return "", false, nil
	}
	if len(after) < 1 || after[0] != 0 {
		return "", false, fmt.Errorf("zTXt chunk uses an unknown compression method")
	}
	text, err := inflate(after[1:])
	return text, err == nil, err
}

func internationalTextChunk(body []byte) (string, bool, error) {
	after, ok := keyword(body)
	if !ok {
		return "", false, nil
	}
	if len(after) < 2 {
		return "", false, fmt.Errorf("iTXt chunk is truncated")
	}
	compressed, method := after[0] == 1, after[1]
	after = after[2:]
	// Language tag and translated keyword.
	for range 2 {
		_, next, found := bytes.Cut(after, []byte{0})
		if !found {
			return "", false, fmt.Errorf("iTXt chunk is truncated")
		}
		after = next
	}
	if !compressed {
		return string(after), true, nil
	}
	if method != 0 {
		return "", false, fmt.Errorf("iTXt chunk uses an unknown compression method")
	}
	text, err := inflate(after)
	return text, err == nil, err
}

func inflate(b []byte) (string, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("inflating png text chunk: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, maxTextSize+1))
	if err != nil {
		return "", fmt.Errorf("inflating png text chunk: %w", err)
	}
	if len(out) > maxTextSize {
		return "", fmt.Errorf("png text chunk inflates past %d bytes", maxTextSize)
	}
	return string(out), nil
}
