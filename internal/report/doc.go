// Package report defines the result model shared by every validation pass:
// severities, stable issue codes, the Issue record, the Collector used to
// accumulate findings during a pass, and the per-document Report.
//
// Codes are part of the tool's public contract. Tooling that consumes JSON
// or YAML output matches on them, so existing values must never change.
package report
