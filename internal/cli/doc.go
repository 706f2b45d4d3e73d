// Package cli is responsible for parsing command-line arguments, merging
// them with the optional configuration file, and handling process-level
// concerns like exit codes.
package cli
