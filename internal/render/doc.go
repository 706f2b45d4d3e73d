// Package render prints validation results as styled text, JSON or YAML.
package render
