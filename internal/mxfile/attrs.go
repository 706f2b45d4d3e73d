package mxfile

import (
	"encoding/xml"
	"strings"
)

func attr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// rawAttr returns the text between the quotes of attribute name in tag, a
// well-formed start tag exactly as it appears in the source.
func rawAttr(tag, name string) (string, bool) {
	n := len(tag)
	i := strings.IndexAny(tag, " \t\r\n")
	if i < 0 {
		return "", false
	}
	for i < n {
		for i < n && isSpace(tag[i]) {
			i++
		}
		if i >= n || tag[i] == '/' || tag[i] == '>' {
			return "", false
		}
		j := i
		for j < n && tag[j] != '=' && !isSpace(tag[j]) {
			j++
		}
		key := tag[i:j]
		for j < n && (isSpace(tag[j]) || tag[j] == '=') {
			j++
		}
		if j >= n || (tag[j] != '"' && tag[j] != '\'') {
			return "", false
		}
		q := tag[j]
		end := strings.IndexByte(tag[j+1:], q)
		if end < 0 {
			return "", false
		}
		if key == name {
			return tag[j+1 : j+1+end], true
		}
		i = j + 1 + end + 1
	}
	return "", false
}
