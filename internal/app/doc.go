// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle (discover files, validate
// them, print the results), decoupled from any specific entrypoint like a CLI.
package app
