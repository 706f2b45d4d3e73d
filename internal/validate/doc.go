// Package validate checks loaded draw.io documents and aggregates the
// findings into a report.
//
// Validation runs in three passes over every page, each appending to its
// own report.Collector:
//
//   - structural: identifier uniqueness, the two foundation cells, parent
//     resolution, vertex/edge flags and parent-chain cycles
//   - integrity: edge endpoints and geometry markers
//   - hygiene: advisory findings about how labels and layout are encoded
//
// The collectors are merged in that order, so structural errors always
// come first and, within a pass, issues follow page and cell order. A
// document that cannot be loaded yields a report holding only the load
// error.
//
// A Validator keeps no state between calls. One instance may validate any
// number of documents concurrently.
package validate
