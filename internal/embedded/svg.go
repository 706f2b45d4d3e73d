package embedded

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// fromSVG reads the content attribute of the root <svg> element.
func fromSVG(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: svg has no root element", ErrNoDiagram)
		}
		if err != nil {
			return "", fmt.Errorf("reading svg: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "svg" {
			return "", fmt.Errorf("%w: root element is <%s>, not <svg>", ErrNoDiagram, se.Name.Local)
		}
		for _, a := range se.Attr {
			if a.Name.Local == "content" && a.Name.Space == "" {
				return unescapeURI(a.Value)
			}
		}
		return "", fmt.Errorf("%w: <svg> has no content attribute", ErrNoDiagram)
	}
}
