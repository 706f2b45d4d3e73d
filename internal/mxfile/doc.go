// Package mxfile loads draw.io documents into typed cell records.
//
// A document is an mxfile envelope holding one or more diagram pages. Each
// page holds an mxGraphModel whose root element contains a flat list of
// mxCell elements, optionally wrapped in UserObject or object elements that
// carry the cell's id and label. A bare mxGraphModel is accepted as a
// single unnamed page, and compressed pages (base64 + raw DEFLATE + URI
// encoding) are inflated transparently.
//
// Loading is two-phase. Prescan looks for a few hand-editing mistakes that
// make XML parsers fail with unhelpful messages and reports them with a
// precise location and hint. Only then is the text decoded. Any failure
// aborts loading: a document that is not well-formed cannot be checked for
// graph integrity.
//
// Loaded values are never mutated and are safe to share between goroutines.
package mxfile
