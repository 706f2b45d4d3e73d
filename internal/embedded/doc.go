// Package embedded recovers diagram text from the files draw.io writes:
// plain .drawio documents, .drawio.svg images carrying the document in the
// content attribute of their root element, and .drawio.png images carrying
// it in a text chunk.
package embedded
