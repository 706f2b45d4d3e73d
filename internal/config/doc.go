// Package config loads the optional drawcheck.hcl file that tunes a run:
// worker count, discovered extensions, and which hygiene warnings run.
//
// The file is plain HCL. The disable attribute is evaluated with a variable
// named warnings bound to every hygiene code, so a file may write
//
//	disable = warnings
//
// to keep only blocking checks. Opt-in warnings, such as
// missing-xml-declaration, are switched on with the enable attribute.
package config
