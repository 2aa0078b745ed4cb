//go:build debug

package debug

import "fmt"

// Enabled reports whether assertions are compiled in. Wrap assertions whose
// arguments are expensive to compute in `if debug.Enabled {...}`.
const Enabled = true

func Assert(b bool, message string) {
	if !b {
		panic("assertion failed: " + message)
	}
}

func Assertf(b bool, format string, args ...any) {
	if !b {
		panic("assertion failed: " + fmt.Sprintf(format, args...))
	}
}
