//go:build !debug

// Package debug provides assertions that are enabled with the debug build tag
// and compile to no-ops otherwise.
//
// Use them for invariants of the hardware protocol that callers can't violate
// through the public API, never for validating user input.
package debug

// Enabled reports whether assertions are compiled in. Wrap assertions whose
// arguments are expensive to compute in `if debug.Enabled {...}`.
const Enabled = false

// Assert panics with message if b is false.
func Assert(b bool, message string) {}

// Assertf panics with a formatted message if b is false.
func Assertf(b bool, format string, args ...any) {}
